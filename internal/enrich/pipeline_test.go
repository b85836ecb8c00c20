package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardlens/statement-enricher/internal/models"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(DefaultOptions(), &mockValidator{}, zerolog.Nop())
}

func TestPipelineRun(t *testing.T) {
	doc, data, err := newTestPipeline().Run(context.Background(), validRawStatement())
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.NotEmpty(t, data)

	t.Run("transactions are normalized and ordered", func(t *testing.T) {
		require.Len(t, doc.Transactions, 4)
		assert.Equal(t, "tx-001", doc.Transactions[0].TransactionID)
		assert.Equal(t, "tx-004", doc.Transactions[3].TransactionID)
		assert.Equal(t, "GROCERIES", doc.Transactions[0].CategoryPrimary)
		assert.Equal(t, models.ChannelPOS, doc.Transactions[0].Channel)
		assert.NotZero(t, doc.Transactions[0].DayOfWeek)
	})

	t.Run("all derived sections are populated", func(t *testing.T) {
		assert.Equal(t, 4, doc.SpendingPatterns.TotalTransactions)
		assert.Equal(t, "150.25", doc.SpendingPatterns.TotalSpend.String())
		require.NotNil(t, doc.RiskMetrics.CreditUtilizationRatio)
		assert.InDelta(t, 150.25/5000, *doc.RiskMetrics.CreditUtilizationRatio, 1e-9)
		assert.Equal(t, 1.0, doc.RiskMetrics.PaymentRatio)
		require.NotNil(t, doc.EngineeredFeatures.DaysSinceLastPayment)
		assert.Equal(t, 6, *doc.EngineeredFeatures.DaysSinceLastPayment)
	})
}

func TestPipelineIdempotence(t *testing.T) {
	p := newTestPipeline()

	_, first, err := p.Run(context.Background(), validRawStatement())
	require.NoError(t, err)
	_, second, err := p.Run(context.Background(), validRawStatement())
	require.NoError(t, err)

	assert.Equal(t, first, second, "same input must produce byte-identical output")
}

func TestPipelineZeroTransactions(t *testing.T) {
	raw := validRawStatement()
	raw.Transactions = nil
	raw.FinancialSummary.Purchases = dec(0)
	raw.FinancialSummary.PaymentsCredits = dec(500.00)
	raw.FinancialSummary.ClosingBalance = dec(0)

	doc, _, err := newTestPipeline().Run(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 0, doc.SpendingPatterns.TotalTransactions)
	assert.Nil(t, doc.SpendingPatterns.AverageTransactionAmount)
	assert.Empty(t, doc.SpendingPatterns.CategoryDistribution)
	assert.Nil(t, doc.EngineeredFeatures.DaysSinceLastTransaction)
	assert.Equal(t, models.TrendStable, doc.EngineeredFeatures.SpendingTrend)
}

func TestPipelineRejectsMissingSections(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*models.RawStatement)
		wantField string
	}{
		{
			name:      "missing metadata",
			mutate:    func(r *models.RawStatement) { r.StatementMetadata = nil },
			wantField: "statement_metadata",
		},
		{
			name:      "missing account info",
			mutate:    func(r *models.RawStatement) { r.AccountInfo = nil },
			wantField: "account_info",
		},
		{
			name:      "missing financial summary",
			mutate:    func(r *models.RawStatement) { r.FinancialSummary = nil },
			wantField: "financial_summary",
		},
		{
			name:      "missing credit limit",
			mutate:    func(r *models.RawStatement) { r.AccountInfo.CreditLimit = nil },
			wantField: "account_info.credit_limit",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRawStatement()
			tc.mutate(raw)

			_, _, err := newTestPipeline().Run(context.Background(), raw)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}
}

func TestPipelineRejectsOutOfPeriodTransaction(t *testing.T) {
	raw := validRawStatement()
	raw.Transactions = append(raw.Transactions, models.RawTransaction{
		TransactionID:   "tx-999",
		TransactionDate: models.NewDate(2024, time.April, 2),
		Description:     "LATE CHARGE",
		Amount:          dec(10.00),
		TransactionType: "PURCHASE",
	})

	_, _, err := newTestPipeline().Run(context.Background(), raw)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tx-999", verr.TransactionID)
	assert.Contains(t, verr.Error(), "tx-999")
}

func TestPipelineContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newTestPipeline().Run(ctx, validRawStatement())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseRaw(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		raw, err := ParseRaw([]byte(`{
			"statement_metadata": {
				"statement_date": "2024-03-31",
				"statement_period": {"start_date": "2024-03-01", "end_date": "2024-03-31"}
			},
			"account_info": {"credit_limit": 5000},
			"financial_summary": {"previous_balance": 0, "closing_balance": 0},
			"transactions": []
		}`))
		require.NoError(t, err)
		require.NotNil(t, raw.StatementMetadata)
		assert.Equal(t, "2024-03-31", raw.StatementMetadata.StatementDate.String())
		require.NotNil(t, raw.AccountInfo.CreditLimit)
		assert.Equal(t, "5000", raw.AccountInfo.CreditLimit.String())
	})

	t.Run("malformed json is a validation error", func(t *testing.T) {
		_, err := ParseRaw([]byte(`{not json`))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "document", verr.Field)
	})
}
