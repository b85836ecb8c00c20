package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Statement documents carry amounts as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// EnrichedStatement is the assembled output document: the normalized input
// sections plus the three computed sections. Field order here fixes the
// top-level key order of the marshaled document.
type EnrichedStatement struct {
	StatementMetadata  StatementMetadata  `json:"statement_metadata"`
	AccountInfo        AccountInfo        `json:"account_info"`
	FinancialSummary   FinancialSummary   `json:"financial_summary"`
	Transactions       []Transaction      `json:"transactions"`
	SpendingPatterns   SpendingPatterns   `json:"spending_patterns"`
	RiskMetrics        RiskMetrics        `json:"risk_metrics"`
	EngineeredFeatures EngineeredFeatures `json:"engineered_features"`
}

// MarshalCanonical renders the document as deterministic JSON: struct
// fields in declaration order, map keys sorted, no HTML escaping. The
// same document always yields identical bytes.
func (e *EnrichedStatement) MarshalCanonical(indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("marshal enriched statement: %w", err)
	}
	return buf.Bytes(), nil
}
