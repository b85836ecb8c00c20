package enrich

import (
	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-enricher/internal/models"
)

// ScoreRisk computes the risk_metrics section. It never fails; undefined
// ratios fall back to the documented defaults and only credit utilization
// may be null (no credit limit means utilization does not exist).
func ScoreRisk(
	txs []models.Transaction,
	summary models.FinancialSummary,
	account models.AccountInfo,
	opts Options,
) models.RiskMetrics {
	opts = opts.normalized()

	metrics := models.RiskMetrics{
		CreditUtilizationRatio: utilizationRatio(summary.ClosingBalance, account.CreditLimit),
		PaymentRatio:           paymentRatio(summary.PaymentsCredits, summary.PreviousBalance),
	}

	var (
		totalSpend   = decimal.Zero
		advanceSpend = decimal.Zero
		intlCount    int
		riskCount    int
	)
	for i := range txs {
		tx := &txs[i]
		if tx.IsSpend() {
			totalSpend = totalSpend.Add(tx.Amount)
			if tx.Type == models.TxTypeCashAdvance {
				advanceSpend = advanceSpend.Add(tx.Amount)
			}
		}
		if tx.IsInternational {
			intlCount++
		}
		if opts.isHighRisk(tx.CategoryPrimary) {
			riskCount++
		}
	}

	metrics.CashAdvanceRatio = amountRatio(advanceSpend, totalSpend)
	metrics.InternationalTransactionRatio = countRatio(intlCount, len(txs))
	metrics.HighRiskMerchantRatio = countRatio(riskCount, len(txs))
	metrics.VelocityIndicators = velocity(txs, opts)

	return metrics
}

// utilizationRatio is closing balance over credit limit, clamped to [0,1].
// Null when the limit is absent or zero: utilization against no limit is
// undefined, not zero.
func utilizationRatio(closing decimal.Decimal, limit *decimal.Decimal) *float64 {
	if limit == nil || !limit.IsPositive() {
		return nil
	}
	r := clamp01(closing.Div(*limit).InexactFloat64())
	return &r
}

// paymentRatio is payments over the balance owed at period start, clamped
// to [0,1]. Nothing owed means nothing to measure, so 0.
func paymentRatio(payments, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	return clamp01(payments.Div(previous).InexactFloat64())
}

// velocity groups spend by calendar day. The unusual-activity flag
// compares the busiest day against the mean of the other active days, so
// a sparse statement with one normal purchase does not read as a burst;
// fewer than two active days never flags.
func velocity(txs []models.Transaction, opts Options) models.VelocityIndicators {
	dayCounts := map[string]int{}
	dayAmounts := map[string]decimal.Decimal{}
	for i := range txs {
		tx := &txs[i]
		if !tx.IsSpend() {
			continue
		}
		day := tx.TransactionDate.String()
		dayCounts[day]++
		dayAmounts[day] = dayAmounts[day].Add(tx.Amount)
	}

	ind := models.VelocityIndicators{
		MaxDailyAmount:  decimal.Zero,
		MeanDailyAmount: decimal.Zero,
	}
	for _, c := range dayCounts {
		if c > ind.MaxDailyTransactions {
			ind.MaxDailyTransactions = c
		}
	}

	activeTotal := decimal.Zero
	for _, amt := range dayAmounts {
		activeTotal = activeTotal.Add(amt)
		if amt.GreaterThan(ind.MaxDailyAmount) {
			ind.MaxDailyAmount = amt
		}
	}

	activeDays := len(dayAmounts)
	if activeDays > 0 {
		ind.MeanDailyAmount = activeTotal.Div(decimal.NewFromInt(int64(activeDays)))
	}
	if activeDays >= 2 {
		restMean := activeTotal.Sub(ind.MaxDailyAmount).
			Div(decimal.NewFromInt(int64(activeDays - 1)))
		if restMean.IsPositive() {
			threshold := restMean.Mul(decimal.NewFromFloat(opts.VelocityMultiplier))
			ind.UnusualActivityFlag = ind.MaxDailyAmount.GreaterThan(threshold)
		}
	}

	ind.MaxDailyAmount = roundMoney(ind.MaxDailyAmount)
	ind.MeanDailyAmount = roundMoney(ind.MeanDailyAmount)
	return ind
}
