package enrich

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-enricher/internal/models"
)

// reconciliationTolerance is the largest closing-balance imbalance a
// statement may carry, matching the cent-level precision of the inputs
var reconciliationTolerance = decimal.NewFromFloat(0.01)

// recordIDNamespace seeds UUIDv5 derivation for inputs that omit a
// record_id, keeping repeated runs byte-identical
var recordIDNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("statement-enricher.cardlens.io"))

// DocumentValidator checks a marshaled document against the published
// statement schema and returns every violated constraint.
type DocumentValidator interface {
	ValidateDocument(doc []byte) ([]SchemaViolation, error)
}

// Assembler merges the normalized input with the computed sections into
// the final document and guards the output contract: the financial
// summary must reconcile and the marshaled document must satisfy the
// schema.
type Assembler struct {
	validator DocumentValidator
}

// NewAssembler returns an Assembler using the given schema validator
func NewAssembler(validator DocumentValidator) *Assembler {
	return &Assembler{validator: validator}
}

// Assemble builds, marshals and validates the enriched document.
// The returned bytes are the canonical serialized form; identical inputs
// always produce identical bytes.
func (a *Assembler) Assemble(
	raw *models.RawStatement,
	txs []models.Transaction,
	patterns models.SpendingPatterns,
	risk models.RiskMetrics,
	features models.EngineeredFeatures,
) (*models.EnrichedStatement, []byte, error) {
	if err := checkReconciliation(raw.FinancialSummary); err != nil {
		return nil, nil, err
	}

	metadata := *raw.StatementMetadata
	if metadata.RecordID == "" {
		metadata.RecordID = deriveRecordID(&metadata)
	}

	doc := &models.EnrichedStatement{
		StatementMetadata:  metadata,
		AccountInfo:        *raw.AccountInfo,
		FinancialSummary:   *raw.FinancialSummary,
		Transactions:       txs,
		SpendingPatterns:   patterns,
		RiskMetrics:        risk,
		EngineeredFeatures: features,
	}

	data, err := doc.MarshalCanonical(false)
	if err != nil {
		return nil, nil, err
	}

	violations, err := a.validator.ValidateDocument(data)
	if err != nil {
		return nil, nil, fmt.Errorf("schema validation: %w", err)
	}
	if len(violations) > 0 {
		return nil, nil, &SchemaViolationError{Violations: violations}
	}

	return doc, data, nil
}

// checkReconciliation enforces the closing-balance formula within the
// cent tolerance
func checkReconciliation(summary *models.FinancialSummary) error {
	delta := summary.ReconciliationDelta()
	if delta.GreaterThan(reconciliationTolerance) {
		return fieldError("financial_summary.closing_balance",
			fmt.Sprintf("does not reconcile: closing %s differs from expected %s by %s",
				summary.ClosingBalance, summary.ExpectedClosingBalance(), delta))
	}
	return nil
}

// deriveRecordID produces a stable UUIDv5 from the statement identity so
// that re-running the pipeline never mints a fresh ID
func deriveRecordID(m *models.StatementMetadata) string {
	seed := fmt.Sprintf("%s|%s|%s|%s",
		m.CardIdentifier, m.StatementDate,
		m.StatementPeriod.StartDate, m.StatementPeriod.EndDate)
	return uuid.NewSHA1(recordIDNamespace, []byte(seed)).String()
}
