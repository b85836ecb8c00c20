package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cardlens/statement-enricher/internal/config"
	"github.com/cardlens/statement-enricher/internal/enrich"
	"github.com/cardlens/statement-enricher/internal/logger"
	"github.com/cardlens/statement-enricher/internal/schema"
	"github.com/cardlens/statement-enricher/internal/ui"
)

var (
	verbose bool
	noColor bool
	cfgFile string

	cfg = config.DefaultConfig()
	log zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stmtenrich",
	Short: "Feature enrichment for credit card statements",
	Long: `Statement enrichment pipeline for credit card data.

Takes raw statement JSON (metadata, account info, financial summary,
transactions), validates it against the input contract, and derives
spending patterns, risk metrics and engineered features. The output
document is schema-validated and byte-stable: the same input always
produces the same bytes.

Tunable thresholds live in a stmtenrich.yaml config file or
STMTENRICH_* environment variables; defaults are in
internal/config/defaults.go.

Example usage:
  stmtenrich enrich --input raw.json --output enriched.json
  stmtenrich batch --input-dir ./raw --output-dir ./enriched
  stmtenrich sample --seed 42 --output raw.json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors and animations")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default stmtenrich.yaml in . or $HOME/.config/stmtenrich)")

	// Silence usage on error - we print our own messages
	rootCmd.SilenceUsage = true

	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// initConfig wires viper: explicit file, then working dir, then user
// config dir, with STMTENRICH_* environment variables over everything
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("stmtenrich")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "stmtenrich"))
		}
	}

	viper.SetEnvPrefix("STMTENRICH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if err := loaded.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
	cfg.Verbose = cfg.Verbose || verbose

	log = logger.New(cfg.Verbose)
}

// newUI builds the terminal UI honoring --no-color
func newUI() *ui.UI {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}
	return u
}

// newPipeline wires the enrichment pipeline from config
func newPipeline() (*enrich.Pipeline, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return enrich.NewPipeline(cfg.Enrich.Options(), validator, log), nil
}

// fail prints an error line and exits non-zero
func fail(u *ui.UI, err error) {
	u.Println(u.Error(err.Error()))
	Exit(1)
}

// Exit with code
func Exit(code int) {
	os.Exit(code)
}
