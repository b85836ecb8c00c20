package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardlens/statement-enricher/internal/models"
)

func TestNormalizeDerivesCalendarFields(t *testing.T) {
	// 2024-03-16 was a Saturday
	txs, err := Normalize(marchPeriod(), []models.RawTransaction{
		rawTx("tx-1", "2024-03-16", 25.00, "PURCHASE"),
	})
	require.NoError(t, err)
	require.Len(t, txs, 1)

	got := txs[0]
	assert.Equal(t, 6, got.DayOfWeek)
	assert.Equal(t, 16, got.DayOfMonth)
	assert.True(t, got.IsWeekend)
	assert.Equal(t, models.TxTypePurchase, got.Type)
}

func TestNormalizeDefaultsAndBuckets(t *testing.T) {
	raw := rawTx("tx-1", "2024-03-04", 10.00, "purchase")
	raw.Channel = ""
	raw.CategoryPrimary = ""

	txs, err := Normalize(marchPeriod(), []models.RawTransaction{raw})
	require.NoError(t, err)

	assert.Equal(t, models.ChannelOther, txs[0].Channel)
	assert.Equal(t, models.CategoryUncategorized, txs[0].CategoryPrimary)
}

func TestNormalizeSortsByDateThenID(t *testing.T) {
	txs, err := Normalize(marchPeriod(), []models.RawTransaction{
		rawTx("tx-b", "2024-03-10", 10.00, "PURCHASE"),
		rawTx("tx-a", "2024-03-10", 20.00, "PURCHASE"),
		rawTx("tx-z", "2024-03-02", 30.00, "PURCHASE"),
	})
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, "tx-z", txs[0].TransactionID)
	assert.Equal(t, "tx-a", txs[1].TransactionID)
	assert.Equal(t, "tx-b", txs[2].TransactionID)
}

func TestNormalizeRejectsOutOfPeriodDates(t *testing.T) {
	cases := []struct {
		name string
		date string
	}{
		{"before period", "2024-02-29"},
		{"after period", "2024-04-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(marchPeriod(), []models.RawTransaction{
				rawTx("tx-bad", tc.date, 12.00, "PURCHASE"),
			})
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "tx-bad", verr.TransactionID)
			assert.Contains(t, verr.Field, "transaction_date")
			assert.Contains(t, verr.Error(), "tx-bad")
		})
	}
}

func TestNormalizeRejectsMalformedLines(t *testing.T) {
	t.Run("missing transaction id", func(t *testing.T) {
		raw := rawTx("", "2024-03-10", 5.00, "PURCHASE")
		_, err := Normalize(marchPeriod(), []models.RawTransaction{raw})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Field, "transaction_id")
	})

	t.Run("duplicate transaction id", func(t *testing.T) {
		_, err := Normalize(marchPeriod(), []models.RawTransaction{
			rawTx("tx-1", "2024-03-10", 5.00, "PURCHASE"),
			rawTx("tx-1", "2024-03-11", 6.00, "PURCHASE"),
		})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "tx-1", verr.TransactionID)
		assert.Contains(t, verr.Reason, "duplicate")
	})

	t.Run("unknown transaction type", func(t *testing.T) {
		_, err := Normalize(marchPeriod(), []models.RawTransaction{
			rawTx("tx-1", "2024-03-10", 5.00, "CHARGEBACK"),
		})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Field, "transaction_type")
		assert.Equal(t, "CHARGEBACK", verr.Value)
	})

	t.Run("invalid period", func(t *testing.T) {
		bad := models.StatementPeriod{
			StartDate: marchPeriod().EndDate,
			EndDate:   marchPeriod().StartDate,
		}
		_, err := Normalize(bad, nil)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Field, "statement_period")
	})
}

func TestNormalizeEmptyInput(t *testing.T) {
	txs, err := Normalize(marchPeriod(), nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
