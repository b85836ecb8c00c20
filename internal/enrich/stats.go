package enrich

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the rounding applied to money-denominated outputs
const moneyPlaces = 2

var two = decimal.NewFromInt(2)

// sumDecimals adds a slice of amounts exactly
func sumDecimals(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// meanDecimal returns the arithmetic mean, false when the slice is empty
func meanDecimal(values []decimal.Decimal) (decimal.Decimal, bool) {
	if len(values) == 0 {
		return decimal.Zero, false
	}
	return sumDecimals(values).Div(decimal.NewFromInt(int64(len(values)))), true
}

// medianDecimal returns the middle value (mean of the two middle values
// for even counts), false when the slice is empty
func medianDecimal(values []decimal.Decimal) (decimal.Decimal, bool) {
	n := len(values)
	if n == 0 {
		return decimal.Zero, false
	}
	sorted := make([]decimal.Decimal, n)
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})
	if n%2 == 1 {
		return sorted[n/2], true
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(two), true
}

// sampleStdDev returns the sample standard deviation (n-1 denominator).
// A single observation has no spread and returns zero.
func sampleStdDev(values []decimal.Decimal) (decimal.Decimal, bool) {
	n := len(values)
	if n == 0 {
		return decimal.Zero, false
	}
	if n == 1 {
		return decimal.Zero, true
	}
	mean, _ := meanDecimal(values)
	ssq := decimal.Zero
	for _, v := range values {
		d := v.Sub(mean)
		ssq = ssq.Add(d.Mul(d))
	}
	variance := ssq.Div(decimal.NewFromInt(int64(n - 1)))
	return decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64())), true
}

// populationStdDev divides by n; used for day-level variability where the
// period itself is the whole population
func populationStdDev(values []decimal.Decimal) decimal.Decimal {
	n := len(values)
	if n == 0 {
		return decimal.Zero
	}
	mean, _ := meanDecimal(values)
	ssq := decimal.Zero
	for _, v := range values {
		d := v.Sub(mean)
		ssq = ssq.Add(d.Mul(d))
	}
	variance := ssq.Div(decimal.NewFromInt(int64(n)))
	return decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
}

// clamp01 pins a ratio into [0,1]
func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// amountRatio divides two amounts as a clamped ratio, 0 when the
// denominator is not positive
func amountRatio(num, den decimal.Decimal) float64 {
	if !den.IsPositive() {
		return 0
	}
	return clamp01(num.Div(den).InexactFloat64())
}

// countRatio divides two counts as a clamped ratio, 0 when the
// denominator is not positive
func countRatio(num, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clamp01(float64(num) / float64(total))
}

// roundMoney rounds an amount to cents
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// roundMoneyPtr rounds and boxes an amount for nullable output fields
func roundMoneyPtr(d decimal.Decimal) *decimal.Decimal {
	r := roundMoney(d)
	return &r
}
