package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardlens/statement-enricher/internal/schema"
)

var validateInput string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Schema-validate an enriched document",
	Long: `Check an existing enriched document against the embedded
JSON Schema and itemize every violation, not just the first.

Example:
  stmtenrich validate --input enriched.json`,
	Run: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateInput, "input", "", "enriched document to check (required)")

	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) {
	u := newUI()

	data, err := os.ReadFile(validateInput)
	if err != nil {
		fail(u, err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		fail(u, err)
	}

	violations, err := validator.ValidateDocument(data)
	if err != nil {
		fail(u, err)
	}

	if len(violations) == 0 {
		u.Println(u.Success(validateInput + " conforms to the schema"))
		return
	}

	u.Println(u.Error(fmt.Sprintf("%s: %d schema violations", validateInput, len(violations))))
	items := make([]string, len(violations))
	for i, v := range violations {
		items[i] = v.Path + ": " + v.Message
	}
	u.Println(u.Itemize(items))
	Exit(1)
}
