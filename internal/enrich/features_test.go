package enrich

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardlens/statement-enricher/internal/models"
)

func engineerWith(txs []models.Transaction, history []string) models.EngineeredFeatures {
	return Engineer(txs, balancedSummary(), marchPeriod(), marchStatementDate(), history, DefaultOptions())
}

func TestDaysSinceLast(t *testing.T) {
	t.Run("transaction and payment gaps", func(t *testing.T) {
		features := engineerWith([]models.Transaction{
			tx("tx-1", 5, 20.00, models.TxTypePurchase),
			tx("tx-2", 12, 30.00, models.TxTypePurchase),
			tx("tx-3", 25, -200.00, models.TxTypePayment),
		}, nil)

		require.NotNil(t, features.DaysSinceLastTransaction)
		assert.Equal(t, 6, *features.DaysSinceLastTransaction) // Mar 25 -> Mar 31
		require.NotNil(t, features.DaysSinceLastPayment)
		assert.Equal(t, 6, *features.DaysSinceLastPayment)
	})

	t.Run("no payment means null", func(t *testing.T) {
		features := engineerWith([]models.Transaction{
			tx("tx-1", 12, 30.00, models.TxTypePurchase),
		}, nil)

		require.NotNil(t, features.DaysSinceLastTransaction)
		assert.Equal(t, 19, *features.DaysSinceLastTransaction)
		assert.Nil(t, features.DaysSinceLastPayment)
	})

	t.Run("empty statement means both null", func(t *testing.T) {
		features := engineerWith(nil, nil)
		assert.Nil(t, features.DaysSinceLastTransaction)
		assert.Nil(t, features.DaysSinceLastPayment)
	})
}

func TestSpendingTrend(t *testing.T) {
	// Period midpoint is Mar 17: days 1-16 are the first half
	cases := []struct {
		name string
		txs  []models.Transaction
		want models.SpendingTrend
	}{
		{
			name: "spend shifts to second half",
			txs: []models.Transaction{
				tx("tx-1", 5, 100.00, models.TxTypePurchase),
				tx("tx-2", 25, 200.00, models.TxTypePurchase),
			},
			want: models.TrendIncreasing,
		},
		{
			name: "spend shifts to first half",
			txs: []models.Transaction{
				tx("tx-1", 5, 200.00, models.TxTypePurchase),
				tx("tx-2", 25, 100.00, models.TxTypePurchase),
			},
			want: models.TrendDecreasing,
		},
		{
			name: "small change is stable",
			txs: []models.Transaction{
				tx("tx-1", 5, 100.00, models.TxTypePurchase),
				tx("tx-2", 25, 105.00, models.TxTypePurchase),
			},
			want: models.TrendStable,
		},
		{
			name: "no spend is stable",
			txs:  nil,
			want: models.TrendStable,
		},
		{
			name: "from nothing to something is increasing",
			txs: []models.Transaction{
				tx("tx-1", 25, 50.00, models.TxTypePurchase),
			},
			want: models.TrendIncreasing,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			features := engineerWith(tc.txs, nil)
			assert.Equal(t, tc.want, features.SpendingTrend)
		})
	}
}

func TestMerchantDiversityAndLoyalty(t *testing.T) {
	features := engineerWith([]models.Transaction{
		tx("tx-1", 2, 10.00, models.TxTypePurchase, withMerchant("Corner Cafe")),
		tx("tx-2", 9, 12.00, models.TxTypePurchase, withMerchant("Corner Cafe")),
		tx("tx-3", 16, 40.00, models.TxTypePurchase, withMerchant("Grocery Mart")),
		tx("tx-4", 23, 9.00, models.TxTypePurchase, withMerchant("Streamflix")),
	}, nil)

	// 3 unique merchants over 4 spend transactions
	assert.InDelta(t, 0.75, features.MerchantDiversityScore, 1e-9)
	// 2 of 4 transactions hit a repeat merchant
	assert.InDelta(t, 0.5, features.MerchantLoyaltyScore, 1e-9)

	t.Run("empty statement scores zero", func(t *testing.T) {
		features := engineerWith(nil, nil)
		assert.Zero(t, features.MerchantDiversityScore)
		assert.Zero(t, features.MerchantLoyaltyScore)
	})
}

func TestNewMerchantRatio(t *testing.T) {
	txs := []models.Transaction{
		tx("tx-1", 2, 10.00, models.TxTypePurchase, withMerchant("Corner Cafe")),
		tx("tx-2", 9, 40.00, models.TxTypePurchase, withMerchant("Grocery Mart")),
		tx("tx-3", 16, 9.00, models.TxTypePurchase, withMerchant("Streamflix")),
	}

	t.Run("null without history", func(t *testing.T) {
		features := engineerWith(txs, nil)
		assert.Nil(t, features.NewMerchantRatio)
	})

	t.Run("computed against supplied history", func(t *testing.T) {
		features := engineerWith(txs, []string{"corner cafe", "GROCERY MART"})
		require.NotNil(t, features.NewMerchantRatio)
		assert.InDelta(t, 1.0/3.0, *features.NewMerchantRatio, 1e-9)
	})

	t.Run("empty history marks everything new", func(t *testing.T) {
		features := engineerWith(txs, []string{})
		require.NotNil(t, features.NewMerchantRatio)
		assert.Equal(t, 1.0, *features.NewMerchantRatio)
	})
}

func TestSpendingComposition(t *testing.T) {
	features := engineerWith([]models.Transaction{
		tx("tx-1", 2, 60.00, models.TxTypePurchase, withCategory("GROCERIES")),
		tx("tx-2", 9, 40.00, models.TxTypePurchase, withCategory("DINING")),
		tx("tx-3", 16, 35.00, models.TxTypeFee, withCategory("FEES")),
	}, nil)

	// Fees are spend but not purchases; composition covers purchases only
	assert.InDelta(t, 0.6, features.EssentialSpendingRatio, 1e-9)
	assert.InDelta(t, 0.4, features.DiscretionarySpendingRatio, 1e-9)

	t.Run("no purchases means both zero", func(t *testing.T) {
		features := engineerWith([]models.Transaction{
			tx("tx-1", 16, 35.00, models.TxTypeFee, withCategory("FEES")),
		}, nil)
		assert.Zero(t, features.EssentialSpendingRatio)
		assert.Zero(t, features.DiscretionarySpendingRatio)
	})
}

func TestSubscriptionSpendingRatio(t *testing.T) {
	features := engineerWith([]models.Transaction{
		tx("tx-1", 2, 25.00, models.TxTypePurchase, withRecurring()),
		tx("tx-2", 9, 75.00, models.TxTypePurchase),
	}, nil)

	assert.InDelta(t, 0.25, features.SubscriptionSpendingRatio, 1e-9)
}

func TestSpendingConsistency(t *testing.T) {
	t.Run("perfectly even spend scores 1", func(t *testing.T) {
		var txs []models.Transaction
		for day := 1; day <= 31; day++ {
			txs = append(txs, tx(fmt.Sprintf("tx-%02d", day), day, 10.00, models.TxTypePurchase))
		}
		features := engineerWith(txs, nil)
		assert.InDelta(t, 1.0, features.SpendingConsistencyScore, 1e-9)
	})

	t.Run("one-day spike scores low", func(t *testing.T) {
		features := engineerWith([]models.Transaction{
			tx("tx-1", 10, 310.00, models.TxTypePurchase),
		}, nil)
		assert.Greater(t, features.SpendingConsistencyScore, 0.0)
		assert.Less(t, features.SpendingConsistencyScore, 0.3)
	})

	t.Run("no spend scores zero", func(t *testing.T) {
		features := engineerWith(nil, nil)
		assert.Zero(t, features.SpendingConsistencyScore)
	})
}

func TestPaymentReliability(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		features := engineerWith(nil, nil) // balancedSummary: 950 paid on 1000 owed
		assert.InDelta(t, 0.95, features.PaymentReliabilityScore, 1e-9)
	})

	t.Run("nothing owed is fully reliable", func(t *testing.T) {
		summary := models.FinancialSummary{
			PreviousBalance: decimal.Zero,
			PaymentsCredits: decimal.Zero,
		}
		features := Engineer(nil, summary, marchPeriod(), marchStatementDate(), nil, DefaultOptions())
		assert.Equal(t, 1.0, features.PaymentReliabilityScore)
	})
}

func TestAllScoresStayInBounds(t *testing.T) {
	features := engineerWith([]models.Transaction{
		tx("tx-1", 2, 100.00, models.TxTypePurchase, withCategory("GROCERIES"), withRecurring()),
		tx("tx-2", 16, 5000.00, models.TxTypeCashAdvance, withCategory("CASH_ADVANCE")),
		tx("tx-3", 30, -9000.00, models.TxTypePayment),
	}, []string{})

	for name, score := range map[string]float64{
		"merchant_diversity_score":     features.MerchantDiversityScore,
		"essential_spending_ratio":     features.EssentialSpendingRatio,
		"discretionary_spending_ratio": features.DiscretionarySpendingRatio,
		"subscription_spending_ratio":  features.SubscriptionSpendingRatio,
		"spending_consistency_score":   features.SpendingConsistencyScore,
		"payment_reliability_score":    features.PaymentReliabilityScore,
		"merchant_loyalty_score":       features.MerchantLoyaltyScore,
		"new_merchant_ratio":           *features.NewMerchantRatio,
	} {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 1.0, name)
	}
}
