package models

// SpendingTrend compares spend between the two halves of the statement
// period
type SpendingTrend string

const (
	TrendIncreasing SpendingTrend = "INCREASING"
	TrendDecreasing SpendingTrend = "DECREASING"
	TrendStable     SpendingTrend = "STABLE"
)

// EngineeredFeatures is the ML-facing section of an enriched statement.
// All scores and ratios live in [0,1]; fields that depend on data the
// input cannot supply (prior-statement history, payment activity) are
// null rather than defaulted.
type EngineeredFeatures struct {
	// Days from the last transaction / last payment to the statement
	// date. Null when no transaction (or no payment) exists.
	DaysSinceLastTransaction *int `json:"days_since_last_transaction"`
	DaysSinceLastPayment     *int `json:"days_since_last_payment"`

	SpendingTrend SpendingTrend `json:"spending_trend"`

	// Unique merchants / spend transactions
	MerchantDiversityScore float64 `json:"merchant_diversity_score"`

	// Merchants absent from the supplied history / unique merchants.
	// Null when the input carries no merchant history at all.
	NewMerchantRatio *float64 `json:"new_merchant_ratio"`

	// Amount shares of essential vs discretionary purchase categories
	EssentialSpendingRatio     float64 `json:"essential_spending_ratio"`
	DiscretionarySpendingRatio float64 `json:"discretionary_spending_ratio"`

	// Recurring share of spend amount
	SubscriptionSpendingRatio float64 `json:"subscription_spending_ratio"`

	// 1/(1+CV) over daily spend totals across the whole period
	SpendingConsistencyScore float64 `json:"spending_consistency_score"`

	// Payments relative to the balance owed, 1 when nothing was owed
	PaymentReliabilityScore float64 `json:"payment_reliability_score"`

	// Share of spend transactions at repeat merchants
	MerchantLoyaltyScore float64 `json:"merchant_loyalty_score"`
}
