// Package batch runs the enrichment pipeline over many statement files
// on a worker pool. Results are reported in input order regardless of
// completion order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cardlens/statement-enricher/internal/enrich"
	"github.com/cardlens/statement-enricher/internal/models"
)

// Options tune a batch run
type Options struct {
	// Workers is the pool size (0 = one per CPU)
	Workers int

	// Timeout bounds a single enrichment attempt. An attempt cut off
	// by the timeout is retried; validation and schema failures are
	// never retried since the input will not change.
	Timeout time.Duration

	// Retries is the number of extra attempts after a timed-out one
	Retries int

	// SkipInvalid records statements rejected by validation and keeps
	// the run going instead of stopping at the first bad file
	SkipInvalid bool

	// Pretty indents the written documents
	Pretty bool

	// Progress, when set, receives the completion count after every
	// finished file
	Progress func(done, total int)
}

// Status classifies one file's outcome
type Status string

const (
	StatusOK      Status = "ok"
	StatusInvalid Status = "invalid"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// FileResult is the outcome for a single input file
type FileResult struct {
	Input    string
	Output   string
	Status   Status
	Err      error
	Attempts int
	Duration time.Duration
}

// Report summarizes a batch run. Results holds one entry per input,
// in input order.
type Report struct {
	Results  []FileResult
	Enriched int
	Invalid  int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// Ok reports whether every input was enriched
func (r *Report) Ok() bool {
	return r.Invalid == 0 && r.Failed == 0 && r.Skipped == 0
}

// WorkerCount resolves a configured worker count, 0 meaning one per CPU
func WorkerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	cpus := runtime.NumCPU()
	if cpus < 1 {
		return 1
	}
	return cpus
}

// ListInputs returns the .json files directly under dir, sorted by name
func ListInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Runner fans statement files out over a worker pool
type Runner struct {
	pipeline *enrich.Pipeline
	opts     Options
	log      zerolog.Logger
}

// NewRunner creates a Runner around an already-wired pipeline
func NewRunner(pipeline *enrich.Pipeline, opts Options, log zerolog.Logger) *Runner {
	opts.Workers = WorkerCount(opts.Workers)
	return &Runner{
		pipeline: pipeline,
		opts:     opts,
		log:      log,
	}
}

// Run enriches every input file, writing one document per input into
// outputDir under the same base name. When SkipInvalid is off the
// first validation failure stops the feed; files already in flight
// finish, unstarted ones are reported as skipped.
func (r *Runner) Run(ctx context.Context, inputs []string, outputDir string) (*Report, error) {
	start := time.Now()
	if len(inputs) == 0 {
		return &Report{}, nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	workers := r.opts.Workers
	if workers > len(inputs) {
		workers = len(inputs)
	}
	r.log.Info().
		Int("files", len(inputs)).
		Int("workers", workers).
		Str("output_dir", outputDir).
		Msg("starting batch run")

	jobs := make(chan int)
	results := make([]FileResult, len(inputs))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		done    int
		stopped bool
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				mu.Lock()
				halt := stopped
				mu.Unlock()
				if halt {
					continue
				}

				res := r.processFile(ctx, inputs[i], outputDir)
				results[i] = res

				mu.Lock()
				done++
				if res.Status == StatusInvalid && !r.opts.SkipInvalid {
					stopped = true
				}
				if r.opts.Progress != nil {
					r.opts.Progress(done, len(inputs))
				}
				mu.Unlock()
			}
		}()
	}

	for i := range inputs {
		mu.Lock()
		halt := stopped
		mu.Unlock()
		if halt || ctx.Err() != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Results: results, Duration: time.Since(start)}
	for i := range results {
		if results[i].Status == "" {
			results[i] = FileResult{Input: inputs[i], Status: StatusSkipped}
		}
		switch results[i].Status {
		case StatusOK:
			report.Enriched++
		case StatusInvalid:
			report.Invalid++
		case StatusFailed:
			report.Failed++
		case StatusSkipped:
			report.Skipped++
		}
	}
	r.log.Info().
		Int("enriched", report.Enriched).
		Int("invalid", report.Invalid).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Dur("duration", report.Duration).
		Msg("batch run finished")
	return report, nil
}

func (r *Runner) processFile(ctx context.Context, input, outputDir string) FileResult {
	start := time.Now()
	result := FileResult{Input: input}

	data, err := os.ReadFile(input)
	if err != nil {
		result.Status = StatusFailed
		result.Err = fmt.Errorf("failed to read input: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	raw, err := enrich.ParseRaw(data)
	if err != nil {
		result.Status = StatusInvalid
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	var doc *models.EnrichedStatement
	var out []byte
	attempts := r.opts.Retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		result.Attempts = attempt
		doc, out, err = r.runOnce(ctx, raw)
		if err == nil || !retryable(err) || attempt == attempts {
			break
		}
		r.log.Warn().
			Str("file", filepath.Base(input)).
			Int("attempt", attempt).
			Err(err).
			Msg("statement timed out, retrying")
	}
	if err != nil {
		if isValidation(err) {
			result.Status = StatusInvalid
		} else {
			result.Status = StatusFailed
		}
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if r.opts.Pretty {
		out, err = doc.MarshalCanonical(true)
		if err != nil {
			result.Status = StatusFailed
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
	}

	outPath := filepath.Join(outputDir, filepath.Base(input))
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		result.Status = StatusFailed
		result.Err = fmt.Errorf("failed to write output: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Output = outPath
	result.Status = StatusOK
	result.Duration = time.Since(start)
	return result
}

// runOnce executes one bounded enrichment attempt
func (r *Runner) runOnce(ctx context.Context, raw *models.RawStatement) (*models.EnrichedStatement, []byte, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}
	return r.pipeline.Run(ctx, raw)
}

// retryable reports whether an attempt is worth repeating. Only
// deadline hits qualify; rejected input will not change on rerun.
func retryable(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func isValidation(err error) bool {
	var verr *enrich.ValidationError
	return errors.As(err, &verr)
}
