package enrich

import (
	"strings"
)

// Options are the tunable thresholds of the derived-section computations.
// Zero values are not meaningful; start from DefaultOptions.
type Options struct {
	// IncludePayments widens spending statistics to every transaction
	// instead of the spend set (positive, non-payment amounts)
	IncludePayments bool

	// VelocityMultiplier flags unusual activity when the busiest day
	// exceeds this multiple of mean daily spend
	VelocityMultiplier float64

	// TrendThreshold is the relative half-over-half change below which
	// the spending trend reads STABLE
	TrendThreshold float64

	// HighRiskCategories counts toward the high-risk merchant ratio
	HighRiskCategories []string

	// EssentialCategories divides purchase spend into essential and
	// discretionary shares
	EssentialCategories []string

	highRisk  map[string]bool
	essential map[string]bool
}

// DefaultOptions returns the standard thresholds
func DefaultOptions() Options {
	return Options{
		IncludePayments:    false,
		VelocityMultiplier: 3.0,
		TrendThreshold:     0.10,
		HighRiskCategories: []string{
			"GAMBLING",
			"CRYPTO",
			"PAWN",
			"WIRE_TRANSFER",
			"MONEY_TRANSFER",
			"CASH_ADVANCE",
		},
		EssentialCategories: []string{
			"GROCERIES",
			"UTILITIES",
			"HEALTHCARE",
			"PHARMACY",
			"TRANSPORT",
			"FUEL",
			"INSURANCE",
			"EDUCATION",
			"RENT",
		},
	}
}

// normalized returns a copy with category lookup sets built. Category
// matching is case-insensitive against normalized labels.
func (o Options) normalized() Options {
	o.highRisk = categorySet(o.HighRiskCategories)
	o.essential = categorySet(o.EssentialCategories)
	return o
}

func (o *Options) isHighRisk(category string) bool {
	return o.highRisk[strings.ToUpper(category)]
}

func (o *Options) isEssential(category string) bool {
	return o.essential[strings.ToUpper(category)]
}

func categorySet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[strings.ToUpper(strings.TrimSpace(l))] = true
	}
	return set
}
