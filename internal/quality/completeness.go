package quality

// Completeness tiers, weighted toward the fields downstream consumers
// cannot work without
var (
	tier1Fields = []string{
		"statement_metadata.record_id",
		"statement_metadata.statement_date",
		"statement_metadata.statement_period.start_date",
		"statement_metadata.statement_period.end_date",
		"financial_summary.previous_balance",
		"financial_summary.closing_balance",
		"financial_summary.purchases",
		"financial_summary.payments_credits",
		"transactions",
	}
	tier2Fields = []string{
		"account_info.card_brand",
		"account_info.credit_limit",
		"account_info.available_credit",
		"financial_summary.fees_charged",
		"financial_summary.interest_charged",
	}
	tier3Fields = []string{
		"spending_patterns.total_transactions",
		"spending_patterns.average_transaction_amount",
		"risk_metrics.credit_utilization_ratio",
		"engineered_features.spending_trend",
		"engineered_features.merchant_diversity_score",
	}
)

const (
	tier1Weight = 0.60
	tier2Weight = 0.25
	tier3Weight = 0.15

	// A document at or above this weighted score counts as complete
	completeThreshold = 0.8
)

// Completeness is the tiered field-presence assessment
type Completeness struct {
	Score    float64 `json:"score"`
	Tier1    float64 `json:"tier1_score"`
	Tier2    float64 `json:"tier2_score"`
	Tier3    float64 `json:"tier3_score"`
	Complete bool    `json:"complete"`

	MissingTier1 []string `json:"missing_tier1,omitempty"`
	MissingTier2 []string `json:"missing_tier2,omitempty"`
	MissingTier3 []string `json:"missing_tier3,omitempty"`
}

// assessCompleteness scores field presence across the three tiers
func assessCompleteness(doc map[string]any) Completeness {
	t1, m1 := tierScore(doc, tier1Fields)
	t2, m2 := tierScore(doc, tier2Fields)
	t3, m3 := tierScore(doc, tier3Fields)

	overall := tier1Weight*t1 + tier2Weight*t2 + tier3Weight*t3

	return Completeness{
		Score:        overall,
		Tier1:        t1,
		Tier2:        t2,
		Tier3:        t3,
		Complete:     overall >= completeThreshold,
		MissingTier1: m1,
		MissingTier2: m2,
		MissingTier3: m3,
	}
}

func tierScore(doc map[string]any, fields []string) (float64, []string) {
	var missing []string
	for _, path := range fields {
		if !hasValue(doc, path) {
			missing = append(missing, path)
		}
	}
	present := len(fields) - len(missing)
	return float64(present) / float64(len(fields)), missing
}

// hasValue reports whether the dot-separated path resolves to a non-null
// value. The transactions list must additionally be non-empty.
func hasValue(doc map[string]any, path string) bool {
	v, ok := lookup(doc, path)
	if !ok || v == nil {
		return false
	}
	if path == "transactions" {
		list, isList := v.([]any)
		return isList && len(list) > 0
	}
	return true
}
