package enrich

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-enricher/internal/models"
)

// marchPeriod is the default statement period used across these tests
func marchPeriod() models.StatementPeriod {
	return models.StatementPeriod{
		StartDate: models.NewDate(2024, time.March, 1),
		EndDate:   models.NewDate(2024, time.March, 31),
	}
}

func marchStatementDate() models.Date {
	return models.NewDate(2024, time.March, 31)
}

// txOption mutates a fixture transaction
type txOption func(*models.Transaction)

func withCategory(c string) txOption {
	return func(t *models.Transaction) { t.CategoryPrimary = c }
}

func withChannel(c models.Channel) txOption {
	return func(t *models.Transaction) { t.Channel = c }
}

func withMerchant(name string) txOption {
	return func(t *models.Transaction) { t.MerchantName = name }
}

func withRecurring() txOption {
	return func(t *models.Transaction) { t.IsRecurring = true }
}

func withInternational() txOption {
	return func(t *models.Transaction) { t.IsInternational = true }
}

// tx builds a normalized transaction the way the Normalizer would emit it
func tx(id string, day int, amount float64, txType models.TransactionType, opts ...txOption) models.Transaction {
	date := models.NewDate(2024, time.March, day)
	t := models.Transaction{
		TransactionID:   id,
		TransactionDate: date,
		Description:     "fixture " + id,
		Amount:          decimal.NewFromFloat(amount),
		Type:            txType,
		CategoryPrimary: "DINING",
		Channel:         models.ChannelPOS,
		DayOfWeek:       date.ISOWeekday(),
		DayOfMonth:      date.DayOfMonth(),
		IsWeekend:       date.IsWeekend(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// rawTx builds a raw input line
func rawTx(id string, date string, amount float64, txType string) models.RawTransaction {
	d, err := models.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return models.RawTransaction{
		TransactionID:   id,
		TransactionDate: d,
		Description:     "fixture " + id,
		Amount:          decimal.NewFromFloat(amount),
		TransactionType: txType,
	}
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// balancedSummary returns a summary that reconciles exactly
func balancedSummary() models.FinancialSummary {
	return models.FinancialSummary{
		PreviousBalance:  dec(1000.00),
		PaymentsCredits:  dec(950.00),
		Purchases:        dec(420.50),
		CashAdvances:     dec(100.00),
		BalanceTransfers: decimal.Zero,
		FeesCharged:      dec(35.00),
		InterestCharged:  dec(12.25),
		ClosingBalance:   dec(617.75),
	}
}

// validRawStatement returns a complete, reconciling raw statement with a
// small transaction set
func validRawStatement() *models.RawStatement {
	summary := models.FinancialSummary{
		PreviousBalance:  dec(500.00),
		PaymentsCredits:  dec(500.00),
		Purchases:        dec(150.25),
		CashAdvances:     decimal.Zero,
		BalanceTransfers: decimal.Zero,
		FeesCharged:      decimal.Zero,
		InterestCharged:  decimal.Zero,
		ClosingBalance:   dec(150.25),
	}
	return &models.RawStatement{
		StatementMetadata: &models.StatementMetadata{
			RecordID:      "5f0b3e9e-8c1a-4b6f-9d2e-7a1c2b3d4e5f",
			StatementDate: marchStatementDate(),
			StatementPeriod: models.StatementPeriod{
				StartDate: models.NewDate(2024, time.March, 1),
				EndDate:   models.NewDate(2024, time.March, 31),
			},
			CountryCode:    "US",
			CardIdentifier: "****4242",
			Currency:       "USD",
		},
		AccountInfo: &models.AccountInfo{
			AccountNumberMasked: "****4242",
			CardBrand:           models.BrandVisa,
			CreditLimit:         decPtr(5000.00),
		},
		FinancialSummary: &summary,
		Transactions: []models.RawTransaction{
			{
				TransactionID:   "tx-001",
				TransactionDate: models.NewDate(2024, time.March, 5),
				Description:     "GROCERY MART 104",
				MerchantName:    "Grocery Mart",
				Amount:          dec(85.50),
				TransactionType: "PURCHASE",
				CategoryPrimary: "groceries",
				Channel:         "pos",
			},
			{
				TransactionID:   "tx-002",
				TransactionDate: models.NewDate(2024, time.March, 12),
				Description:     "STREAMFLIX MONTHLY",
				MerchantName:    "Streamflix",
				Amount:          dec(15.99),
				TransactionType: "PURCHASE",
				CategoryPrimary: "entertainment",
				Channel:         "online",
				IsRecurring:     true,
			},
			{
				TransactionID:   "tx-003",
				TransactionDate: models.NewDate(2024, time.March, 20),
				Description:     "CORNER CAFE",
				MerchantName:    "Corner Cafe",
				Amount:          dec(48.76),
				TransactionType: "PURCHASE",
				CategoryPrimary: "dining",
				Channel:         "pos",
			},
			{
				TransactionID:   "tx-004",
				TransactionDate: models.NewDate(2024, time.March, 25),
				Description:     "PAYMENT RECEIVED - THANK YOU",
				Amount:          dec(-500.00),
				TransactionType: "PAYMENT",
				Channel:         "online",
			},
		},
	}
}

// --- Mock implementations ---

// mockValidator implements DocumentValidator with pluggable behavior
type mockValidator struct {
	validateFunc func(doc []byte) ([]SchemaViolation, error)
}

func (m *mockValidator) ValidateDocument(doc []byte) ([]SchemaViolation, error) {
	if m.validateFunc != nil {
		return m.validateFunc(doc)
	}
	return nil, nil
}
