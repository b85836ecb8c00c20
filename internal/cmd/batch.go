package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardlens/statement-enricher/internal/batch"
	"github.com/cardlens/statement-enricher/internal/config"
	"github.com/cardlens/statement-enricher/internal/ui"
)

var (
	batchInputDir    string
	batchOutputDir   string
	batchWorkers     int
	batchTimeout     time.Duration
	batchRetries     int
	batchSkipInvalid bool
	batchPretty      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Enrich a directory of raw statements in parallel",
	Long: `Enrich every .json file in a directory on a worker pool.

Each input produces one enriched document under the same name in the
output directory. A statement that times out is retried; a statement
that fails validation is recorded and, with --skip-invalid, the run
continues. The exit code is non-zero if any statement was not
enriched.

Example:
  stmtenrich batch --input-dir ./raw --output-dir ./enriched
  stmtenrich batch --input-dir ./raw --output-dir ./enriched --workers 8 --timeout 10s`,
	Run: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchInputDir, "input-dir", "", "directory of raw statement files (required)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "directory for enriched documents (required)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", config.BatchWorkers, "parallel workers (0 = one per CPU)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", config.BatchTimeout, "per-statement timeout")
	batchCmd.Flags().IntVar(&batchRetries, "retries", config.BatchRetries, "extra attempts after a timeout")
	batchCmd.Flags().BoolVar(&batchSkipInvalid, "skip-invalid", config.BatchSkipInvalid, "keep going past statements that fail validation")
	batchCmd.Flags().BoolVar(&batchPretty, "pretty", false, "indent the output documents")

	batchCmd.MarkFlagRequired("input-dir")
	batchCmd.MarkFlagRequired("output-dir")
}

func runBatch(cmd *cobra.Command, args []string) {
	u := newUI()

	inputs, err := batch.ListInputs(batchInputDir)
	if err != nil {
		fail(u, err)
	}
	if len(inputs) == 0 {
		u.Println(u.Warning("no .json files in " + batchInputDir))
		return
	}

	// Config supplies the tuning; explicit flags win
	opts := batch.Options{
		Workers:     cfg.Batch.Workers,
		Timeout:     cfg.Batch.Timeout,
		Retries:     cfg.Batch.Retries,
		SkipInvalid: cfg.Batch.SkipInvalid,
		Pretty:      batchPretty,
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = batchWorkers
	}
	if cmd.Flags().Changed("timeout") {
		opts.Timeout = batchTimeout
	}
	if cmd.Flags().Changed("retries") {
		opts.Retries = batchRetries
	}
	if cmd.Flags().Changed("skip-invalid") {
		opts.SkipInvalid = batchSkipInvalid
	}

	pipeline, err := newPipeline()
	if err != nil {
		fail(u, err)
	}

	bar := u.NewProgressBar("Enriching", len(inputs))
	opts.Progress = func(done, total int) {
		bar.Update(done)
	}

	runner := batch.NewRunner(pipeline, opts, log)
	report, err := runner.Run(cmd.Context(), inputs, batchOutputDir)
	if err != nil {
		bar.Fail(err)
		Exit(1)
	}
	bar.Complete()

	for _, res := range report.Results {
		if res.Err != nil {
			u.Println(u.Error(fmt.Sprintf("%s: %v", filepath.Base(res.Input), res.Err)))
		}
	}

	status := u.Success("all statements enriched")
	if !report.Ok() {
		status = u.Error(fmt.Sprintf("%d of %d statements not enriched",
			len(inputs)-report.Enriched, len(inputs)))
	}
	u.Println(u.SummaryBox("Batch Complete", []ui.KV{
		{Key: "Files", Value: fmt.Sprintf("%d", len(inputs))},
		{Key: "Enriched", Value: fmt.Sprintf("%d", report.Enriched)},
		{Key: "Invalid", Value: fmt.Sprintf("%d", report.Invalid)},
		{Key: "Failed", Value: fmt.Sprintf("%d", report.Failed)},
		{Key: "Skipped", Value: fmt.Sprintf("%d", report.Skipped)},
		{Key: "Workers", Value: fmt.Sprintf("%d", batch.WorkerCount(opts.Workers))},
		{Key: "Duration", Value: report.Duration.Round(time.Millisecond).String()},
		{Key: "Status", Value: status},
	}))

	if !report.Ok() {
		Exit(1)
	}
}
