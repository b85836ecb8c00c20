package models

import (
	"github.com/shopspring/decimal"
)

// DistributionBucket is one slice of a categorical distribution.
// Percentage is a raw count quotient so bucket percentages across a
// distribution always sum to 1 (within float error) when any
// transactions exist.
type DistributionBucket struct {
	Count      int             `json:"count"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// SpendingPatterns is the statistical profile of a statement's
// transactions. Statistics are computed over the spend set (positive,
// non-payment amounts); the distributions cover every transaction.
// Nullable statistics are nil when the statement has no qualifying
// transactions, never zero-filled.
type SpendingPatterns struct {
	TotalTransactions int             `json:"total_transactions"`
	TotalSpend        decimal.Decimal `json:"total_spend"`

	AverageTransactionAmount *decimal.Decimal `json:"average_transaction_amount"`
	StdDevTransactionAmount  *decimal.Decimal `json:"std_dev_transaction_amount"`
	MedianTransactionAmount  *decimal.Decimal `json:"median_transaction_amount"`
	MaxTransactionAmount     *decimal.Decimal `json:"max_transaction_amount"`
	MinTransactionAmount     *decimal.Decimal `json:"min_transaction_amount"`

	CategoryDistribution map[string]DistributionBucket `json:"category_distribution"`
	ChannelDistribution  map[string]DistributionBucket `json:"channel_distribution"`

	// Share of spend amount that occurred on Saturday or Sunday
	WeekendSpendingRatio float64 `json:"weekend_spending_ratio"`

	// NightSpendingRatio is always 0 with NightSpendingAvailable false:
	// statement lines carry no time of day, and the field is never
	// fabricated from one.
	NightSpendingRatio     float64 `json:"night_spending_ratio"`
	NightSpendingAvailable bool    `json:"night_spending_available"`
}
