package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cardlens/statement-enricher/internal/models"
)

// Pipeline runs the full enrichment flow for one statement: input checks,
// normalization, the three derived sections in parallel, then assembly
// and schema validation.
type Pipeline struct {
	opts      Options
	assembler *Assembler
	log       zerolog.Logger
}

// NewPipeline wires a pipeline from options and a schema validator
func NewPipeline(opts Options, validator DocumentValidator, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		opts:      opts,
		assembler: NewAssembler(validator),
		log:       log,
	}
}

// ParseRaw decodes a raw statement document. Malformed JSON is a
// ValidationError, not an I/O failure.
func ParseRaw(data []byte) (*models.RawStatement, error) {
	var raw models.RawStatement
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{
			Field:  "document",
			Reason: fmt.Sprintf("not valid statement JSON: %v", err),
		}
	}
	return &raw, nil
}

// Run enriches one raw statement. The three derived sections are computed
// concurrently over the immutable normalized snapshot; none of them may
// mutate it. The returned bytes are the canonical document form.
func (p *Pipeline) Run(ctx context.Context, raw *models.RawStatement) (*models.EnrichedStatement, []byte, error) {
	if err := checkSections(raw); err != nil {
		return nil, nil, err
	}

	period := raw.StatementMetadata.StatementPeriod
	txs, err := Normalize(period, raw.Transactions)
	if err != nil {
		return nil, nil, err
	}
	p.log.Debug().
		Int("transactions", len(txs)).
		Str("period_start", period.StartDate.String()).
		Str("period_end", period.EndDate.String()).
		Msg("statement normalized")

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var (
		wg       sync.WaitGroup
		patterns models.SpendingPatterns
		risk     models.RiskMetrics
		features models.EngineeredFeatures
	)
	failures := make(chan *ComputationError, 3)

	run := func(section string, compute func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					failures <- &ComputationError{Section: section, Reason: fmt.Sprint(r)}
				}
			}()
			compute()
		}()
	}

	run("spending_patterns", func() {
		patterns = Aggregate(txs, p.opts)
	})
	run("risk_metrics", func() {
		risk = ScoreRisk(txs, *raw.FinancialSummary, *raw.AccountInfo, p.opts)
	})
	run("engineered_features", func() {
		features = Engineer(txs, *raw.FinancialSummary, period,
			raw.StatementMetadata.StatementDate, raw.MerchantHistory, p.opts)
	})

	wg.Wait()
	close(failures)
	if cerr := <-failures; cerr != nil {
		return nil, nil, cerr
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	doc, data, err := p.assembler.Assemble(raw, txs, patterns, risk, features)
	if err != nil {
		return nil, nil, err
	}
	p.log.Debug().
		Str("record_id", doc.StatementMetadata.RecordID).
		Int("bytes", len(data)).
		Msg("statement enriched")

	return doc, data, nil
}

// checkSections enforces the input contract: the three statement sections
// must be present, and the account must carry a credit limit field
func checkSections(raw *models.RawStatement) error {
	switch {
	case raw == nil:
		return fieldError("document", "empty input")
	case raw.StatementMetadata == nil:
		return fieldError("statement_metadata", "section is required")
	case raw.AccountInfo == nil:
		return fieldError("account_info", "section is required")
	case raw.FinancialSummary == nil:
		return fieldError("financial_summary", "section is required")
	case raw.StatementMetadata.StatementDate.IsZero():
		return fieldError("statement_metadata.statement_date", "must be present")
	case raw.AccountInfo.CreditLimit == nil:
		return fieldError("account_info.credit_limit",
			"must be present (use 0 for accounts without a limit)")
	}
	return nil
}
