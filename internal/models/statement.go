package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CardBrand represents the card network printed on the statement
type CardBrand string

const (
	BrandVisa       CardBrand = "VISA"
	BrandMastercard CardBrand = "MASTERCARD"
	BrandAmex       CardBrand = "AMEX"
	BrandDiscover   CardBrand = "DISCOVER"
	BrandOther      CardBrand = "OTHER"
)

// BrandFromCardNumber infers the brand from the leading digits of a card
// number (masked or not). Returns BrandOther when no prefix matches.
func BrandFromCardNumber(number string) CardBrand {
	digits := strings.TrimSpace(number)
	switch {
	case strings.HasPrefix(digits, "4"):
		return BrandVisa
	case strings.HasPrefix(digits, "5"), strings.HasPrefix(digits, "2"):
		return BrandMastercard
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return BrandAmex
	case strings.HasPrefix(digits, "6"):
		return BrandDiscover
	default:
		return BrandOther
	}
}

// StatementPeriod is the inclusive date range a statement covers
type StatementPeriod struct {
	StartDate Date `json:"start_date"`
	EndDate   Date `json:"end_date"`
}

// Days returns the inclusive length of the period in days
func (p StatementPeriod) Days() int {
	return p.EndDate.DaysSince(p.StartDate) + 1
}

// Contains reports whether d falls inside the period (inclusive)
func (p StatementPeriod) Contains(d Date) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// Midpoint returns the first day of the second half of the period.
// For odd-length periods the extra day lands in the first half.
func (p StatementPeriod) Midpoint() Date {
	return p.StartDate.AddDays((p.Days() + 1) / 2)
}

// IsValid reports whether both dates are set and ordered
func (p StatementPeriod) IsValid() bool {
	return !p.StartDate.IsZero() && !p.EndDate.IsZero() && !p.EndDate.Before(p.StartDate)
}

// StatementMetadata identifies a single statement document
type StatementMetadata struct {
	// RecordID is a UUID. When the input omits it, the pipeline derives a
	// stable UUIDv5 from card identifier and statement date so repeated
	// runs emit identical documents.
	RecordID string `json:"record_id"`

	StatementDate   Date            `json:"statement_date"`
	StatementPeriod StatementPeriod `json:"statement_period"`

	// ISO 3166-1 alpha-2, e.g. "US"
	CountryCode string `json:"country_code,omitempty"`

	// Masked card reference, e.g. "****1234"
	CardIdentifier string `json:"card_identifier,omitempty"`

	// ISO 4217, e.g. "USD"
	Currency string `json:"currency,omitempty"`
}

// AccountInfo carries the account-level facts printed on the statement
type AccountInfo struct {
	AccountNumberMasked string    `json:"account_number_masked,omitempty"`
	CardBrand           CardBrand `json:"card_brand,omitempty"`
	CardType            string    `json:"card_type,omitempty"`

	// CreditLimit is required by the input contract. A pointer
	// distinguishes an absent field from a genuine zero-limit account
	// (charge cards report 0).
	CreditLimit *decimal.Decimal `json:"credit_limit"`

	AvailableCredit *decimal.Decimal `json:"available_credit,omitempty"`
	CurrentBalance  *decimal.Decimal `json:"current_balance,omitempty"`
}

// FinancialSummary is the statement-level balance reconciliation block.
// Flow fields (purchases, fees, ...) are magnitudes; the closing balance
// must reconcile as previous + purchases + cash advances + balance
// transfers + fees + interest - payments.
type FinancialSummary struct {
	PreviousBalance  decimal.Decimal `json:"previous_balance"`
	PaymentsCredits  decimal.Decimal `json:"payments_credits"`
	Purchases        decimal.Decimal `json:"purchases"`
	CashAdvances     decimal.Decimal `json:"cash_advances"`
	BalanceTransfers decimal.Decimal `json:"balance_transfers"`
	FeesCharged      decimal.Decimal `json:"fees_charged"`
	InterestCharged  decimal.Decimal `json:"interest_charged"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`

	MinimumPaymentDue *decimal.Decimal `json:"minimum_payment_due,omitempty"`
	PaymentDueDate    *Date            `json:"payment_due_date,omitempty"`
}

// ExpectedClosingBalance applies the reconciliation formula to the flows
func (f *FinancialSummary) ExpectedClosingBalance() decimal.Decimal {
	return f.PreviousBalance.
		Add(f.Purchases).
		Add(f.CashAdvances).
		Add(f.BalanceTransfers).
		Add(f.FeesCharged).
		Add(f.InterestCharged).
		Sub(f.PaymentsCredits)
}

// ReconciliationDelta returns |closing - expected closing|
func (f *FinancialSummary) ReconciliationDelta() decimal.Decimal {
	return f.ClosingBalance.Sub(f.ExpectedClosingBalance()).Abs()
}

// RawStatement is the pipeline input document. Section pointers distinguish
// a missing section (fatal) from an empty one.
type RawStatement struct {
	StatementMetadata *StatementMetadata `json:"statement_metadata"`
	AccountInfo       *AccountInfo       `json:"account_info"`
	FinancialSummary  *FinancialSummary  `json:"financial_summary"`
	Transactions      []RawTransaction   `json:"transactions"`

	// MerchantHistory lists merchant keys seen on prior statements.
	// Absent history keeps new_merchant_ratio null rather than zero.
	MerchantHistory []string `json:"merchant_history,omitempty"`
}
