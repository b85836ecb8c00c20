package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardlens/statement-enricher/internal/enrich"
	"github.com/cardlens/statement-enricher/internal/ui"
	"github.com/cardlens/statement-enricher/internal/utils"
)

var (
	enrichInput  string
	enrichOutput string
	enrichPretty bool
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a single raw statement",
	Long: `Enrich one raw statement document.

The input is validated against the statement contract (sections
present, dates inside the period, balances reconciling), then the
derived sections are computed and the assembled document is checked
against the embedded JSON Schema before anything is written.

Without --output the document goes to stdout, so it can be piped;
status chrome always goes to stderr.

Example:
  stmtenrich enrich --input raw.json --output enriched.json
  stmtenrich enrich --input raw.json --pretty > enriched.json`,
	Run: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "raw statement JSON file (required)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "", "write the document here instead of stdout")
	enrichCmd.Flags().BoolVar(&enrichPretty, "pretty", false, "indent the output document")

	enrichCmd.MarkFlagRequired("input")
}

func runEnrich(cmd *cobra.Command, args []string) {
	u := newUI()

	data, err := os.ReadFile(enrichInput)
	if err != nil {
		fail(u, err)
	}

	raw, err := enrich.ParseRaw(data)
	if err != nil {
		reportEnrichFailure(u, err)
	}

	pipeline, err := newPipeline()
	if err != nil {
		fail(u, err)
	}

	spin := u.NewSpinner("Enriching statement")
	spin.Start()
	doc, out, err := pipeline.Run(cmd.Context(), raw)
	if err != nil {
		spin.Error("failed")
		reportEnrichFailure(u, err)
	}
	spin.Success(fmt.Sprintf("%d transactions", len(doc.Transactions)))

	if enrichPretty {
		if out, err = doc.MarshalCanonical(true); err != nil {
			fail(u, err)
		}
	}

	if enrichOutput == "" {
		if _, err := os.Stdout.Write(out); err != nil {
			fail(u, err)
		}
		return
	}

	if err := os.WriteFile(enrichOutput, out, 0o644); err != nil {
		fail(u, err)
	}

	meta := doc.StatementMetadata
	u.Println(u.Success("Enriched statement written to " + enrichOutput))
	u.Println(u.SummaryBox("Enrichment Complete", []ui.KV{
		{Key: "Record ID", Value: meta.RecordID},
		{Key: "Period", Value: fmt.Sprintf("%s to %s", meta.StatementPeriod.StartDate, meta.StatementPeriod.EndDate)},
		{Key: "Transactions", Value: fmt.Sprintf("%d", len(doc.Transactions))},
		{Key: "Closing Balance", Value: utils.FormatAmount(doc.FinancialSummary.ClosingBalance, meta.Currency)},
		{Key: "Document Size", Value: fmt.Sprintf("%d bytes", len(out))},
	}))
}

// reportEnrichFailure itemizes pipeline errors and exits non-zero
func reportEnrichFailure(u *ui.UI, err error) {
	var sve *enrich.SchemaViolationError
	if errors.As(err, &sve) {
		u.Println(u.Error(fmt.Sprintf("document failed schema validation (%d violations)", len(sve.Violations))))
		items := make([]string, len(sve.Violations))
		for i, v := range sve.Violations {
			items[i] = v.Path + ": " + v.Message
		}
		u.Println(u.Itemize(items))
		Exit(1)
	}
	fail(u, err)
}
