// Package config contains configuration for the statement enricher.
// Compile-time defaults live here; edit and recompile to tune behavior,
// or override per run via config file, environment, or flags.
package config

import "time"

// =============================================================================
// ENRICHMENT DEFAULTS
// =============================================================================

const (
	// IncludePayments widens spending statistics from the spend set
	// (positive, non-payment amounts) to every transaction
	IncludePayments = false

	// VelocityMultiplier flags unusual activity when the busiest spend day
	// exceeds this multiple of the mean across the other active days
	VelocityMultiplier = 3.0

	// TrendThreshold is the relative half-over-half spend change below
	// which the spending trend reads STABLE (0.10 = 10%)
	TrendThreshold = 0.10
)

// HighRiskCategories count toward the high-risk merchant ratio
var HighRiskCategories = []string{
	"GAMBLING",
	"CRYPTO",
	"PAWN",
	"WIRE_TRANSFER",
	"MONEY_TRANSFER",
	"CASH_ADVANCE",
}

// EssentialCategories split purchase spend into essential and
// discretionary shares
var EssentialCategories = []string{
	"GROCERIES",
	"UTILITIES",
	"HEALTHCARE",
	"PHARMACY",
	"TRANSPORT",
	"FUEL",
	"INSURANCE",
	"EDUCATION",
	"RENT",
}

// =============================================================================
// BATCH PROCESSING DEFAULTS
// =============================================================================

const (
	// BatchWorkers is the parallel worker count (0 = auto-detect CPUs)
	BatchWorkers = 0

	// BatchTimeout is the per-statement processing budget; statements
	// that exceed it count as retryable failures
	BatchTimeout = 30 * time.Second

	// BatchRetries is how many extra attempts a timed-out or transiently
	// failing statement gets
	BatchRetries = 1

	// BatchSkipInvalid keeps a batch running past statements that fail
	// validation instead of aborting the whole run
	BatchSkipInvalid = true
)

// =============================================================================
// SAMPLE GENERATION DEFAULTS
// =============================================================================

const (
	// SampleTransactions is the transaction count for generated samples
	SampleTransactions = 25

	// SampleCreditLimit is the credit limit on generated accounts
	SampleCreditLimit = 5000.0

	// SampleCurrency is the ISO 4217 currency for generated statements
	SampleCurrency = "USD"

	// SampleCountryCode is the ISO 3166-1 alpha-2 country for generated
	// statements
	SampleCountryCode = "US"
)
