package models

import (
	"github.com/shopspring/decimal"
)

// VelocityIndicators summarize how concentrated spending was in time
type VelocityIndicators struct {
	// Busiest single calendar day by spend-transaction count
	MaxDailyTransactions int `json:"max_daily_transactions"`

	// Largest single-day spend total
	MaxDailyAmount decimal.Decimal `json:"max_daily_amount"`

	// Mean spend across days that saw any spend activity
	MeanDailyAmount decimal.Decimal `json:"mean_daily_amount"`

	// Set when the busiest day exceeds the configured multiple of the
	// mean across the other active days
	UnusualActivityFlag bool `json:"unusual_activity_flag"`
}

// RiskMetrics is the credit-behavior section of an enriched statement.
// Every ratio is clamped to [0,1]; ratios whose denominator does not
// exist are null only where documented (credit utilization), otherwise 0.
type RiskMetrics struct {
	// ClosingBalance / CreditLimit. Null when the credit limit is zero or
	// unknown (charge cards) because utilization is undefined, not zero.
	CreditUtilizationRatio *float64 `json:"credit_utilization_ratio"`

	// PaymentsCredits / PreviousBalance, 0 when nothing was owed
	PaymentRatio float64 `json:"payment_ratio"`

	// Cash-advance share of total spend amount
	CashAdvanceRatio float64 `json:"cash_advance_ratio"`

	// International share of transaction count
	InternationalTransactionRatio float64 `json:"international_transaction_ratio"`

	// Share of transactions in configured high-risk categories
	HighRiskMerchantRatio float64 `json:"high_risk_merchant_ratio"`

	VelocityIndicators VelocityIndicators `json:"velocity_indicators"`
}
