package quality

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// qualityDoc builds a well-formed enriched document and lets the caller
// mutate it before marshaling
func qualityDoc(t *testing.T, txs []map[string]any, mutate func(doc map[string]any)) []byte {
	t.Helper()

	doc := map[string]any{
		"statement_metadata": map[string]any{
			"record_id":      "5f0b3e9e-8c1a-4b6f-9d2e-7a1c2b3d4e5f",
			"statement_date": "2024-03-31",
			"statement_period": map[string]any{
				"start_date": "2024-03-01",
				"end_date":   "2024-03-31",
			},
			"card_identifier": "****1234",
			"country_code":    "US",
			"currency":        "USD",
		},
		"account_info": map[string]any{
			"account_number_masked": "****5678",
			"card_brand":            "VISA",
			"card_type":             "CREDIT",
			"credit_limit":          5000.0,
			"available_credit":      4200.0,
			"current_balance":       800.0,
		},
		"financial_summary": map[string]any{
			"previous_balance":  500.0,
			"payments_credits":  500.0,
			"purchases":         800.0,
			"cash_advances":     0.0,
			"balance_transfers": 0.0,
			"fees_charged":      0.0,
			"interest_charged":  0.0,
			"closing_balance":   800.0,
		},
		"transactions": toAnySlice(txs),
		"spending_patterns": map[string]any{
			"total_transactions":         float64(len(txs)),
			"average_transaction_amount": 40.0,
		},
		"risk_metrics": map[string]any{
			"credit_utilization_ratio": 0.16,
		},
		"engineered_features": map[string]any{
			"spending_trend":           "STABLE",
			"merchant_diversity_score": 0.8,
		},
	}
	if mutate != nil {
		mutate(doc)
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func toAnySlice(txs []map[string]any) []any {
	out := make([]any, len(txs))
	for i, tx := range txs {
		out[i] = tx
	}
	return out
}

// richTransactions spreads n distinct transactions across March 2024
func richTransactions(n int) []map[string]any {
	txs := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		txs = append(txs, map[string]any{
			"transaction_id":   fmt.Sprintf("tx-%03d", i),
			"transaction_date": fmt.Sprintf("2024-03-%02d", i),
			"description":      fmt.Sprintf("DEBIT CARD PURCHASE STORE%02d MAIN STREET LOCATION", i),
			"merchant_name":    fmt.Sprintf("Store %02d", i),
			"amount":           10.0 + float64(i)*3.17,
		})
	}
	return txs
}

func TestVolumePoints(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 0},
		{1, 2},
		{4, 2},
		{5, 6},
		{9, 6},
		{10, 12},
		{19, 12},
		{20, 18},
		{29, 18},
		{30, 22},
		{49, 22},
		{50, 25},
		{80, 25},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d transactions", tt.count), func(t *testing.T) {
			assert.Equal(t, tt.want, volumePoints(richTransactions(tt.count)))
		})
	}
}

func TestEvaluateRichStatement(t *testing.T) {
	report, err := Evaluate(qualityDoc(t, richTransactions(25), nil))
	require.NoError(t, err)

	// 25 distinct merchants, 25 distinct amounts, 24-day spread:
	// 1.0*8 + 1.0*7 + (24/30)*5 = 19
	assert.Equal(t, 18.0, report.Breakdown.TransactionVolume)
	assert.InDelta(t, 19.0, report.Breakdown.TransactionDiversity, 1e-9)
	assert.InDelta(t, 15.0, report.Breakdown.TransactionDetail, 1e-9)
	assert.Equal(t, 25.0, report.Breakdown.CoreStatement)
	assert.Equal(t, 10.0, report.Breakdown.AccountCompleteness)
	assert.Equal(t, 5.0, report.Breakdown.FinancialConsistency)

	assert.InDelta(t, 92.0, report.TotalPoints, 1e-9)
	assert.InDelta(t, 0.92, report.Score, 1e-9)
	assert.True(t, report.Valid)
	assert.True(t, report.Authenticity.Authentic)
	assert.True(t, report.PII.Clean)
	assert.Equal(t, 1.0, report.Completeness.Score)
}

func TestEvaluateSparseStatement(t *testing.T) {
	single := []map[string]any{{
		"transaction_id":   "tx-001",
		"transaction_date": "2024-03-05",
		"description":      "COFFEE",
		"amount":           5.75,
	}}

	report, err := Evaluate(qualityDoc(t, single, nil))
	require.NoError(t, err)

	assert.Equal(t, 2.0, report.Breakdown.TransactionVolume)
	// Short description scores no detail points, realistic amount still counts
	assert.InDelta(t, 5.0, report.Breakdown.TransactionDetail, 1e-9)
	// Single date means no spread component
	assert.InDelta(t, 8.0+0.7,
		report.Breakdown.TransactionDiversity, 1e-9)

	rich, err := Evaluate(qualityDoc(t, richTransactions(25), nil))
	require.NoError(t, err)
	assert.Less(t, report.TotalPoints, rich.TotalPoints)
}

func TestEvaluateEmptyStatement(t *testing.T) {
	report, err := Evaluate(qualityDoc(t, nil, nil))
	require.NoError(t, err)

	assert.Zero(t, report.Breakdown.TransactionVolume)
	assert.Zero(t, report.Breakdown.TransactionDiversity)
	assert.Zero(t, report.Breakdown.TransactionDetail)
	// Core loses the 5 transaction points but keeps the section checks
	assert.Equal(t, 20.0, report.Breakdown.CoreStatement)
}

func TestEvaluateRejectsMalformedJSON(t *testing.T) {
	_, err := Evaluate([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse document")
}

func TestZeroCreditLimitScoresNoLimitPoints(t *testing.T) {
	report, err := Evaluate(qualityDoc(t, richTransactions(5), func(doc map[string]any) {
		doc["account_info"].(map[string]any)["credit_limit"] = 0.0
	}))
	require.NoError(t, err)

	// Core drops from 25 to 20, account from 10 to 7
	assert.Equal(t, 20.0, report.Breakdown.CoreStatement)
	assert.Equal(t, 7.0, report.Breakdown.AccountCompleteness)
	// The field is present, so consistency and completeness are unaffected
	assert.Equal(t, 5.0, report.Breakdown.FinancialConsistency)
	assert.Equal(t, 1.0, report.Completeness.Tier2)
}

func TestMerchantExtraction(t *testing.T) {
	t.Run("strips bank prefixes and reference numbers", func(t *testing.T) {
		cleaned := cleanDescription("DEBIT CARD PURCHASE AMAZON MARKETPLACE *1X3456789")
		assert.Equal(t, "AMAZON MARKETPLACE", cleaned)
		assert.Equal(t, "AMAZON MARKETPL", merchantKey(cleaned))
	})

	t.Run("strips long digit runs", func(t *testing.T) {
		cleaned := cleanDescription("RECURRING PAYMENT NETFLIX 880123456")
		assert.Equal(t, "NETFLIX", cleaned)
	})

	t.Run("single word keys pass the length gate", func(t *testing.T) {
		txs := []map[string]any{
			{"description": "NETFLIX"},
			{"description": "netflix"},
			{"description": "AB"},
		}
		// Case-folded duplicate collapses, two-char key is ignored
		assert.Equal(t, 1, uniqueMerchants(txs))
	})
}
