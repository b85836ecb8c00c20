package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardlens/statement-enricher/internal/quality"
	"github.com/cardlens/statement-enricher/internal/ui"
)

var (
	scoreInput  string
	scoreOutput string
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score the data quality of an enriched document",
	Long: `Assess an enriched document: a 100-point quality score
(transaction volume, diversity, detail, core statement fields, account
completeness, financial consistency), authenticity checks (card number
masking, Luhn, brand consistency), a PII scan over free-text fields,
and tiered field completeness.

Scoring is read-only. A low score never rejects a document; it tells
you what the document is missing.

Example:
  stmtenrich score --input enriched.json
  stmtenrich score --input enriched.json --output report.json`,
	Run: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreInput, "input", "", "enriched document to score (required)")
	scoreCmd.Flags().StringVar(&scoreOutput, "output", "", "also write the full report as JSON")

	scoreCmd.MarkFlagRequired("input")
}

func runScore(cmd *cobra.Command, args []string) {
	u := newUI()

	data, err := os.ReadFile(scoreInput)
	if err != nil {
		fail(u, err)
	}

	report, err := quality.Evaluate(data)
	if err != nil {
		fail(u, err)
	}

	authentic := u.Success("no indicators")
	if !report.Authenticity.Authentic {
		names := make([]string, len(report.Authenticity.Indicators))
		for i, ind := range report.Authenticity.Indicators {
			names[i] = ind.Type
		}
		authentic = u.Error(strings.Join(names, ", "))
	}

	pii := u.Success("clean")
	if !report.PII.Clean {
		pii = u.Error(fmt.Sprintf("%d findings: %s", report.PII.Count, strings.Join(report.PII.Types, ", ")))
	}

	b := report.Breakdown
	u.Println(u.SummaryBox("Quality Report", []ui.KV{
		{Key: "Score", Value: ui.Grade(fmt.Sprintf("%.0f / 100", report.TotalPoints), report.Score, 0.8, 0.5)},
		{Key: "Volume", Value: fmt.Sprintf("%.0f / 25", b.TransactionVolume)},
		{Key: "Diversity", Value: fmt.Sprintf("%.1f / 20", b.TransactionDiversity)},
		{Key: "Detail", Value: fmt.Sprintf("%.1f / 15", b.TransactionDetail)},
		{Key: "Core Statement", Value: fmt.Sprintf("%.0f / 25", b.CoreStatement)},
		{Key: "Account", Value: fmt.Sprintf("%.0f / 10", b.AccountCompleteness)},
		{Key: "Consistency", Value: fmt.Sprintf("%.0f / 5", b.FinancialConsistency)},
		{Key: "Authenticity", Value: authentic},
		{Key: "PII Scan", Value: pii},
		{Key: "Completeness", Value: fmt.Sprintf("%.0f%%", report.Completeness.Score*100)},
	}))

	for _, missing := range report.Completeness.MissingTier1 {
		u.Println(u.Warning("missing required field: " + missing))
	}

	if scoreOutput != "" {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fail(u, err)
		}
		if err := os.WriteFile(scoreOutput, append(out, '\n'), 0o644); err != nil {
			fail(u, err)
		}
		u.Println(u.Success("Report written to " + scoreOutput))
	}

	if !report.Valid {
		Exit(1)
	}
}
