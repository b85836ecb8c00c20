// Package quality scores enriched statement documents on a 100-point
// scale: how much transaction signal they carry, how complete the
// supporting sections are, whether the card identifier looks authentic,
// and whether obvious PII leaked into free-text fields.
//
// Scoring is heuristic and read-only. A low score never rejects a
// document; callers decide what to do with the report.
package quality

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/cardlens/statement-enricher/internal/models"
)

// Point ceilings per scoring component
const (
	maxVolumePoints      = 25.0
	maxDiversityPoints   = 20.0
	maxDetailPoints      = 15.0
	maxCorePoints        = 25.0
	maxAccountPoints     = 10.0
	maxConsistencyPoints = 5.0
)

// Report is the full quality assessment for one enriched document
type Report struct {
	// Score is TotalPoints normalized to 0..1
	Score       float64 `json:"score"`
	TotalPoints float64 `json:"total_points"`

	// Valid is false when the document carries authenticity indicators
	// or leaked PII, regardless of its point score
	Valid bool `json:"valid"`

	Breakdown    Breakdown    `json:"breakdown"`
	Authenticity Authenticity `json:"authenticity"`
	PII          PIIScan      `json:"pii"`
	Completeness Completeness `json:"completeness"`
}

// Breakdown itemizes the point score per component
type Breakdown struct {
	TransactionVolume    float64 `json:"transaction_volume"`
	TransactionDiversity float64 `json:"transaction_diversity"`
	TransactionDetail    float64 `json:"transaction_detail"`
	TransactionTotal     float64 `json:"transaction_total"`

	CoreStatement        float64 `json:"core_statement"`
	AccountCompleteness  float64 `json:"account_completeness"`
	FinancialConsistency float64 `json:"financial_consistency"`
	SupportingTotal      float64 `json:"supporting_total"`
}

// Evaluate parses an enriched statement document and scores it.
// The only error is malformed JSON; everything else is reported.
func Evaluate(doc []byte) (*Report, error) {
	var parsed map[string]any
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return evaluate(parsed), nil
}

func evaluate(doc map[string]any) *Report {
	txs := transactionsOf(doc)

	breakdown := Breakdown{
		TransactionVolume:    volumePoints(txs),
		TransactionDiversity: diversityPoints(txs),
		TransactionDetail:    detailPoints(txs),
		CoreStatement:        corePoints(doc, len(txs)),
		AccountCompleteness:  accountPoints(doc),
		FinancialConsistency: consistencyPoints(doc),
	}
	breakdown.TransactionTotal = breakdown.TransactionVolume +
		breakdown.TransactionDiversity + breakdown.TransactionDetail
	breakdown.SupportingTotal = breakdown.CoreStatement +
		breakdown.AccountCompleteness + breakdown.FinancialConsistency

	total := breakdown.TransactionTotal + breakdown.SupportingTotal

	auth := checkAuthenticity(doc)
	pii := scanPII(txs)

	return &Report{
		Score:        total / 100,
		TotalPoints:  total,
		Valid:        auth.Authentic && pii.Clean,
		Breakdown:    breakdown,
		Authenticity: auth,
		PII:          pii,
		Completeness: assessCompleteness(doc),
	}
}

// volumePoints awards banded points on the raw transaction count.
// The bands reward statements with real usage over single-purchase stubs.
func volumePoints(txs []map[string]any) float64 {
	count := len(txs)
	switch {
	case count >= 50:
		return maxVolumePoints
	case count >= 30:
		return 22
	case count >= 20:
		return 18
	case count >= 10:
		return 12
	case count >= 5:
		return 6
	case count >= 1:
		return 2
	}
	return 0
}

// diversityPoints scores merchant variety (8), amount variety (7) and
// date spread (5). Merchants come from raw descriptions, not enriched
// merchant names, so upstream enrichment cannot inflate the score.
func diversityPoints(txs []map[string]any) float64 {
	if len(txs) == 0 {
		return 0
	}

	merchantRatio := float64(uniqueMerchants(txs)) / float64(len(txs))

	cents := make(map[int64]bool)
	for _, tx := range txs {
		cents[int64(math.Round(math.Abs(numberAt(tx, "amount"))*100))] = true
	}
	amountVariety := math.Min(float64(len(cents))/10, 1)

	return math.Min(maxDiversityPoints, merchantRatio*8+amountVariety*7+dateSpread(txs)*5)
}

// dateSpread normalizes the observed date range against a 30-day month
func dateSpread(txs []map[string]any) float64 {
	var earliest, latest models.Date
	seen := 0
	for _, tx := range txs {
		raw, _ := tx["transaction_date"].(string)
		d, err := models.ParseDate(raw)
		if err != nil {
			continue
		}
		if seen == 0 || d.Before(earliest) {
			earliest = d
		}
		if seen == 0 || d.After(latest) {
			latest = d
		}
		seen++
	}
	if seen < 2 {
		return 0
	}
	return math.Min(float64(latest.DaysSince(earliest))/30, 1)
}

// detailPoints scores description richness (10) and amount realism (5)
func detailPoints(txs []map[string]any) float64 {
	if len(txs) == 0 {
		return 0
	}

	var detailed, realistic int
	for _, tx := range txs {
		if desc, _ := tx["description"].(string); len(desc) > 20 {
			detailed++
		}
		if amt := math.Abs(numberAt(tx, "amount")); amt >= 1 && amt <= 5000 {
			realistic++
		}
	}

	n := float64(len(txs))
	return float64(detailed)/n*10 + float64(realistic)/n*5
}

// corePoints checks the core statement fields are present
func corePoints(doc map[string]any, txCount int) float64 {
	meta := subsection(doc, "statement_metadata")
	account := subsection(doc, "account_info")

	var score float64
	if stringAt(meta, "statement_date") != "" {
		score += 5
	}
	if stringAt(account, "account_number_masked") != "" {
		score += 5
	}
	if v, ok := account["credit_limit"].(float64); ok && v != 0 {
		score += 5
	}
	if txCount > 0 {
		score += 5
	}
	if _, ok := lookup(doc, "statement_metadata.statement_period.start_date"); ok {
		if _, ok := lookup(doc, "statement_metadata.statement_period.end_date"); ok {
			score += 3
		}
	}
	if account["current_balance"] != nil {
		score += 2
	}
	return math.Min(score, maxCorePoints)
}

// accountPoints checks the account section fields are present
func accountPoints(doc map[string]any) float64 {
	account := subsection(doc, "account_info")

	var score float64
	if stringAt(account, "card_brand") != "" {
		score += 3
	}
	if stringAt(account, "card_type") != "" {
		score += 2
	}
	if v, ok := account["credit_limit"].(float64); ok && v != 0 {
		score += 3
	}
	if v, ok := account["available_credit"].(float64); ok && v != 0 {
		score += 2
	}
	return math.Min(score, maxAccountPoints)
}

// consistencyPoints rewards statements that carry enough balance data
// to cross-check the financial summary
func consistencyPoints(doc map[string]any) float64 {
	account := subsection(doc, "account_info")

	hasBalance := account["current_balance"] != nil
	hasLimit := account["credit_limit"] != nil

	switch {
	case hasBalance && hasLimit:
		return maxConsistencyPoints
	case hasBalance:
		return 3
	}
	return 1
}

// --- Merchant extraction from raw descriptions ---

// Bank formatting stripped before extracting a merchant key
var (
	bankPrefixes = []string{
		"DEBIT CARD PURCHASE ",
		"ONLINE PAYMENT ",
		"RECURRING PAYMENT ",
		"ATM WITHDRAWAL ",
		"CHECK CARD PURCHASE ",
	}
	refNumberPattern  = regexp.MustCompile(`\*\w+\d+`)
	longDigitsPattern = regexp.MustCompile(`\d{6,}`)
)

// uniqueMerchants counts distinct merchant keys in the raw descriptions
func uniqueMerchants(txs []map[string]any) int {
	keys := make(map[string]bool)
	for _, tx := range txs {
		desc, _ := tx["description"].(string)
		if key := merchantKey(cleanDescription(strings.ToUpper(desc))); len(key) >= 3 {
			keys[key] = true
		}
	}
	return len(keys)
}

func cleanDescription(desc string) string {
	for _, prefix := range bankPrefixes {
		desc = strings.ReplaceAll(desc, prefix, "")
	}
	desc = refNumberPattern.ReplaceAllString(desc, "")
	desc = longDigitsPattern.ReplaceAllString(desc, "")
	return strings.TrimSpace(desc)
}

// merchantKey takes the first one or two words, capped at 15 characters
func merchantKey(cleaned string) string {
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return ""
	}
	key := words[0]
	if len(words) > 1 {
		key = words[0] + " " + words[1]
	}
	if len(key) > 15 {
		key = key[:15]
	}
	return key
}

// --- Generic document access ---

// lookup walks a dot-separated path through nested JSON objects
func lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// subsection returns a nested object, or an empty map when absent
func subsection(doc map[string]any, name string) map[string]any {
	if m, ok := doc[name].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func numberAt(m map[string]any, key string) float64 {
	v, _ := m[key].(float64)
	return v
}

// transactionsOf returns the transaction objects of the document
func transactionsOf(doc map[string]any) []map[string]any {
	raw, _ := doc["transactions"].([]any)
	txs := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if tx, ok := item.(map[string]any); ok {
			txs = append(txs, tx)
		}
	}
	return txs
}
