package enrich

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-enricher/internal/models"
)

// Engineer computes the engineered_features section. It never fails;
// features whose inputs do not exist (no transactions, no payment, no
// merchant history) are null or take documented defaults.
func Engineer(
	txs []models.Transaction,
	summary models.FinancialSummary,
	period models.StatementPeriod,
	statementDate models.Date,
	merchantHistory []string,
	opts Options,
) models.EngineeredFeatures {
	opts = opts.normalized()

	features := models.EngineeredFeatures{
		DaysSinceLastTransaction: daysSinceLast(txs, statementDate, func(t *models.Transaction) bool { return true }),
		DaysSinceLastPayment:     daysSinceLast(txs, statementDate, (*models.Transaction).IsPayment),
		SpendingTrend:            spendingTrend(txs, period, opts.TrendThreshold),
		PaymentReliabilityScore:  paymentReliability(summary),
		SpendingConsistencyScore: spendingConsistency(txs, period),
	}

	var (
		spendCount     int
		totalSpend     = decimal.Zero
		recurringSpend = decimal.Zero
		purchaseTotal  = decimal.Zero
		essentialTotal = decimal.Zero
		merchantVisits = map[string]int{}
	)
	for i := range txs {
		tx := &txs[i]
		if !tx.IsSpend() {
			continue
		}
		spendCount++
		totalSpend = totalSpend.Add(tx.Amount)
		merchantVisits[tx.MerchantKey()]++
		if tx.IsRecurring {
			recurringSpend = recurringSpend.Add(tx.Amount)
		}
		if tx.Type == models.TxTypePurchase {
			purchaseTotal = purchaseTotal.Add(tx.Amount)
			if opts.isEssential(tx.CategoryPrimary) {
				essentialTotal = essentialTotal.Add(tx.Amount)
			}
		}
	}

	features.MerchantDiversityScore = countRatio(len(merchantVisits), spendCount)
	features.NewMerchantRatio = newMerchantRatio(merchantVisits, merchantHistory)
	features.SubscriptionSpendingRatio = amountRatio(recurringSpend, totalSpend)
	features.EssentialSpendingRatio = amountRatio(essentialTotal, purchaseTotal)
	if purchaseTotal.IsPositive() {
		features.DiscretionarySpendingRatio = amountRatio(purchaseTotal.Sub(essentialTotal), purchaseTotal)
	}
	features.MerchantLoyaltyScore = loyaltyScore(merchantVisits, spendCount)

	return features
}

// daysSinceLast measures the gap from the newest qualifying transaction to
// the statement date, nil when nothing qualifies. Transactions cannot
// postdate the statement period, so the gap never goes negative.
func daysSinceLast(txs []models.Transaction, statementDate models.Date, qualifies func(*models.Transaction) bool) *int {
	var last models.Date
	found := false
	for i := range txs {
		tx := &txs[i]
		if !qualifies(tx) {
			continue
		}
		if !found || tx.TransactionDate.After(last) {
			last = tx.TransactionDate
			found = true
		}
	}
	if !found {
		return nil
	}
	days := statementDate.DaysSince(last)
	if days < 0 {
		days = 0
	}
	return &days
}

// spendingTrend compares spend between the two halves of the period
func spendingTrend(txs []models.Transaction, period models.StatementPeriod, threshold float64) models.SpendingTrend {
	mid := period.Midpoint()
	first, second := decimal.Zero, decimal.Zero
	for i := range txs {
		tx := &txs[i]
		if !tx.IsSpend() {
			continue
		}
		if tx.TransactionDate.Before(mid) {
			first = first.Add(tx.Amount)
		} else {
			second = second.Add(tx.Amount)
		}
	}

	switch {
	case first.IsZero() && second.IsZero():
		return models.TrendStable
	case first.IsZero():
		return models.TrendIncreasing
	}

	change := second.Sub(first).Div(first).InexactFloat64()
	switch {
	case change > threshold:
		return models.TrendIncreasing
	case change < -threshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// newMerchantRatio is nil when no history was supplied at all; with
// history it is the share of this period's merchants not seen before
func newMerchantRatio(visits map[string]int, history []string) *float64 {
	if history == nil {
		return nil
	}
	known := make(map[string]bool, len(history))
	for _, m := range history {
		known[strings.ToUpper(strings.TrimSpace(m))] = true
	}
	newCount := 0
	for merchant := range visits {
		if !known[merchant] {
			newCount++
		}
	}
	r := countRatio(newCount, len(visits))
	return &r
}

// paymentReliability is payments over the balance owed; owing nothing is
// treated as fully reliable
func paymentReliability(summary models.FinancialSummary) float64 {
	if !summary.PreviousBalance.IsPositive() {
		return 1
	}
	return clamp01(summary.PaymentsCredits.Div(summary.PreviousBalance).InexactFloat64())
}

// spendingConsistency maps day-to-day variability onto (0,1] via
// 1/(1+CV) over daily spend totals, zero-spend days included. A
// statement with no spend scores 0.
func spendingConsistency(txs []models.Transaction, period models.StatementPeriod) float64 {
	days := period.Days()
	if days <= 0 {
		return 0
	}

	byDay := map[string]decimal.Decimal{}
	any := false
	for i := range txs {
		tx := &txs[i]
		if !tx.IsSpend() {
			continue
		}
		day := tx.TransactionDate.String()
		byDay[day] = byDay[day].Add(tx.Amount)
		any = true
	}
	if !any {
		return 0
	}

	totals := make([]decimal.Decimal, 0, days)
	for d := period.StartDate; !d.After(period.EndDate); d = d.AddDays(1) {
		totals = append(totals, byDay[d.String()])
	}

	mean, _ := meanDecimal(totals)
	if !mean.IsPositive() {
		return 0
	}
	cv := populationStdDev(totals).Div(mean).InexactFloat64()
	return clamp01(1 / (1 + cv))
}

// loyaltyScore is the share of spend transactions made at merchants
// visited more than once this period
func loyaltyScore(visits map[string]int, spendCount int) float64 {
	repeat := 0
	for _, n := range visits {
		if n >= 2 {
			repeat += n
		}
	}
	return countRatio(repeat, spendCount)
}
