package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cardlens/statement-enricher/internal/schema"
)

var schemaOutput string

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the enriched-statement JSON Schema",
	Long: `Print the embedded JSON Schema (draft-07) that every
enriched document is validated against, for use by downstream
consumers.

Example:
  stmtenrich schema > enriched_statement.schema.json
  stmtenrich schema --output enriched_statement.schema.json`,
	Run: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVar(&schemaOutput, "output", "", "write the schema here instead of stdout")
}

func runSchema(cmd *cobra.Command, args []string) {
	u := newUI()

	raw := schema.Raw()
	if schemaOutput == "" {
		if _, err := os.Stdout.Write(raw); err != nil {
			fail(u, err)
		}
		return
	}

	if err := os.WriteFile(schemaOutput, raw, 0o644); err != nil {
		fail(u, err)
	}
	u.Println(u.Success("Schema written to " + schemaOutput))
}
