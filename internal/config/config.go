package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/cardlens/statement-enricher/internal/enrich"
)

// Config holds all configuration for the statement enricher
type Config struct {
	// Enrichment pipeline tuning
	Enrich EnrichConfig `mapstructure:"enrich"`

	// Batch processing settings
	Batch BatchConfig `mapstructure:"batch"`

	// Sample statement generation settings
	Sample SampleConfig `mapstructure:"sample"`

	// Logging
	Verbose bool `mapstructure:"verbose"`
}

// EnrichConfig holds enrichment pipeline settings
type EnrichConfig struct {
	// Include payments and refunds in spending statistics
	IncludePayments bool `mapstructure:"include_payments"`

	// Busiest-day spend above this multiple of the other active days
	// raises the unusual activity flag
	VelocityMultiplier float64 `mapstructure:"velocity_multiplier"`

	// Relative spend change below this reads as a STABLE trend
	TrendThreshold float64 `mapstructure:"trend_threshold"`

	// Category overrides (empty = built-in lists)
	HighRiskCategories  []string `mapstructure:"high_risk_categories"`
	EssentialCategories []string `mapstructure:"essential_categories"`
}

// BatchConfig holds batch processing settings
type BatchConfig struct {
	// Parallel workers (0 = one per CPU)
	Workers int `mapstructure:"workers"`

	// Per-statement processing budget
	Timeout time.Duration `mapstructure:"timeout"`

	// Extra attempts for timed-out statements
	Retries int `mapstructure:"retries"`

	// Keep going past statements that fail validation
	SkipInvalid bool `mapstructure:"skip_invalid"`
}

// SampleConfig holds sample generation settings
type SampleConfig struct {
	// Random seed for reproducibility (0 = random)
	Seed int64 `mapstructure:"seed"`

	// Transactions per generated statement
	Transactions int `mapstructure:"transactions"`

	// Credit limit on the generated account
	CreditLimit float64 `mapstructure:"credit_limit"`

	// ISO 4217 currency code
	Currency string `mapstructure:"currency"`

	// ISO 3166-1 alpha-2 country code
	CountryCode string `mapstructure:"country_code"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Enrich: EnrichConfig{
			IncludePayments:    IncludePayments,
			VelocityMultiplier: VelocityMultiplier,
			TrendThreshold:     TrendThreshold,
		},
		Batch: BatchConfig{
			Workers:     BatchWorkers,
			Timeout:     BatchTimeout,
			Retries:     BatchRetries,
			SkipInvalid: BatchSkipInvalid,
		},
		Sample: SampleConfig{
			Seed:         0,
			Transactions: SampleTransactions,
			CreditLimit:  SampleCreditLimit,
			Currency:     SampleCurrency,
			CountryCode:  SampleCountryCode,
		},
		Verbose: false,
	}
}

// Load reads configuration from viper into a Config struct
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Unmarshal viper config into struct
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Options converts the enrichment settings into pipeline options.
// Empty category lists fall back to the built-in defaults.
func (c *EnrichConfig) Options() enrich.Options {
	opts := enrich.DefaultOptions()
	opts.IncludePayments = c.IncludePayments
	opts.VelocityMultiplier = c.VelocityMultiplier
	opts.TrendThreshold = c.TrendThreshold
	if len(c.HighRiskCategories) > 0 {
		opts.HighRiskCategories = c.HighRiskCategories
	}
	if len(c.EssentialCategories) > 0 {
		opts.EssentialCategories = c.EssentialCategories
	}
	return opts
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	// Validate enrichment config
	if c.Enrich.VelocityMultiplier < 1 {
		errs = append(errs, "enrich.velocity_multiplier must be >= 1.0")
	}
	if c.Enrich.TrendThreshold < 0 || c.Enrich.TrendThreshold > 1 {
		errs = append(errs, "enrich.trend_threshold must be between 0.0 and 1.0")
	}

	// Validate batch config
	if c.Batch.Workers < 0 {
		errs = append(errs, "batch.workers must be non-negative (0 = auto)")
	}
	if c.Batch.Timeout <= 0 {
		errs = append(errs, "batch.timeout must be positive")
	}
	if c.Batch.Retries < 0 {
		errs = append(errs, "batch.retries must be non-negative")
	}

	// Validate sample config
	if c.Sample.Transactions < 0 {
		errs = append(errs, "sample.transactions must be non-negative")
	}
	if c.Sample.CreditLimit < 0 {
		errs = append(errs, "sample.credit_limit must be non-negative")
	}
	if len(c.Sample.Currency) != 3 {
		errs = append(errs, "sample.currency must be a 3-letter ISO 4217 code")
	}
	if len(c.Sample.CountryCode) != 2 {
		errs = append(errs, "sample.country_code must be a 2-letter ISO 3166-1 code")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	result := errs[0]
	for i := 1; i < len(errs); i++ {
		result += "\n  - " + errs[i]
	}
	return result
}
