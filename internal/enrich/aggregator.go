package enrich

import (
	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-enricher/internal/models"
)

// Aggregate computes the spending_patterns section. It never fails:
// degenerate inputs produce documented defaults (null statistics, empty
// distributions) instead of errors.
//
// Statistics cover the spend set (positive, non-payment amounts) unless
// Options.IncludePayments widens them; both distributions always cover
// every transaction so their percentages total 1.
func Aggregate(txs []models.Transaction, opts Options) models.SpendingPatterns {
	opts = opts.normalized()

	patterns := models.SpendingPatterns{
		TotalTransactions:    len(txs),
		TotalSpend:           decimal.Zero,
		CategoryDistribution: map[string]models.DistributionBucket{},
		ChannelDistribution:  map[string]models.DistributionBucket{},
		// Statement lines carry no time of day
		NightSpendingRatio:     0,
		NightSpendingAvailable: false,
	}

	var (
		statAmounts  []decimal.Decimal
		totalSpend   = decimal.Zero
		weekendSpend = decimal.Zero
	)

	for i := range txs {
		tx := &txs[i]

		if tx.IsSpend() {
			totalSpend = totalSpend.Add(tx.Amount)
			if tx.IsWeekend {
				weekendSpend = weekendSpend.Add(tx.Amount)
			}
		}

		if tx.IsSpend() || opts.IncludePayments {
			statAmounts = append(statAmounts, tx.AbsAmount())
		}

		addToBucket(patterns.CategoryDistribution, tx.CategoryPrimary, tx.Amount)
		addToBucket(patterns.ChannelDistribution, string(tx.Channel), tx.Amount)
	}

	patterns.TotalSpend = roundMoney(totalSpend)
	patterns.WeekendSpendingRatio = amountRatio(weekendSpend, totalSpend)

	if mean, ok := meanDecimal(statAmounts); ok {
		patterns.AverageTransactionAmount = roundMoneyPtr(mean)
	}
	if std, ok := sampleStdDev(statAmounts); ok {
		patterns.StdDevTransactionAmount = roundMoneyPtr(std)
	}
	if median, ok := medianDecimal(statAmounts); ok {
		patterns.MedianTransactionAmount = roundMoneyPtr(median)
	}
	if len(statAmounts) > 0 {
		patterns.MaxTransactionAmount = roundMoneyPtr(maxDecimal(statAmounts))
		patterns.MinTransactionAmount = roundMoneyPtr(minDecimal(statAmounts))
	}

	finalizePercentages(patterns.CategoryDistribution, len(txs))
	finalizePercentages(patterns.ChannelDistribution, len(txs))

	return patterns
}

// addToBucket accumulates one transaction into a distribution bucket
func addToBucket(dist map[string]models.DistributionBucket, key string, amount decimal.Decimal) {
	b := dist[key]
	b.Count++
	b.Amount = b.Amount.Add(amount)
	dist[key] = b
}

// finalizePercentages converts bucket counts into raw count quotients and
// rounds bucket amounts to cents. Quotients stay unrounded so the bucket
// percentages of a distribution sum to 1 within float error.
func finalizePercentages(dist map[string]models.DistributionBucket, total int) {
	for key, b := range dist {
		if total > 0 {
			b.Percentage = float64(b.Count) / float64(total)
		}
		b.Amount = roundMoney(b.Amount)
		dist[key] = b
	}
}

func maxDecimal(values []decimal.Decimal) decimal.Decimal {
	m := values[0]
	for _, v := range values[1:] {
		if v.GreaterThan(m) {
			m = v
		}
	}
	return m
}

func minDecimal(values []decimal.Decimal) decimal.Decimal {
	m := values[0]
	for _, v := range values[1:] {
		if v.LessThan(m) {
			m = v
		}
	}
	return m
}
