package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of statement line item
type TransactionType string

const (
	// Spend-side types (positive amounts increase the balance owed)
	TxTypePurchase        TransactionType = "PURCHASE"
	TxTypeCashAdvance     TransactionType = "CASH_ADVANCE"
	TxTypeBalanceTransfer TransactionType = "BALANCE_TRANSFER"
	TxTypeFee             TransactionType = "FEE"
	TxTypeInterest        TransactionType = "INTEREST"

	// Credit-side type (payments and refunds reduce the balance owed)
	TxTypePayment TransactionType = "PAYMENT"
)

// transactionTypes is the closed set accepted on input
var transactionTypes = map[TransactionType]bool{
	TxTypePurchase:        true,
	TxTypeCashAdvance:     true,
	TxTypeBalanceTransfer: true,
	TxTypeFee:             true,
	TxTypeInterest:        true,
	TxTypePayment:         true,
}

// ParseTransactionType normalizes a raw type string (case and surrounding
// space are forgiven) and reports whether it names a known type.
func ParseTransactionType(s string) (TransactionType, bool) {
	tt := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	return tt, transactionTypes[tt]
}

// Channel represents how the transaction was initiated
type Channel string

const (
	ChannelPOS    Channel = "POS"    // Card-present point of sale
	ChannelOnline Channel = "ONLINE" // E-commerce / card-not-present
	ChannelATM    Channel = "ATM"    // Cash advance at an ATM
	ChannelOther  Channel = "OTHER"  // Unknown or unmapped channel
)

// ParseChannel maps a raw channel string onto the closed channel set.
// Anything missing or unrecognized lands in OTHER so channel distributions
// always cover every transaction.
func ParseChannel(s string) Channel {
	switch Channel(strings.ToUpper(strings.TrimSpace(s))) {
	case ChannelPOS:
		return ChannelPOS
	case ChannelOnline:
		return ChannelOnline
	case ChannelATM:
		return ChannelATM
	default:
		return ChannelOther
	}
}

// CategoryUncategorized is the bucket for transactions without a category,
// so category distributions always cover every transaction
const CategoryUncategorized = "UNCATEGORIZED"

// NormalizeCategory maps a raw category label to its canonical upper-snake
// form, or to UNCATEGORIZED when blank
func NormalizeCategory(s string) string {
	c := strings.ToUpper(strings.TrimSpace(s))
	if c == "" {
		return CategoryUncategorized
	}
	return strings.ReplaceAll(c, " ", "_")
}

// RawTransaction is a statement line as it arrives from the upstream
// extractor. Only identity, timing, amount and type are trusted; everything
// else is optional and may be blank.
type RawTransaction struct {
	TransactionID    string          `json:"transaction_id"`
	TransactionDate  Date            `json:"transaction_date"`
	PostingDate      *Date           `json:"posting_date,omitempty"`
	Description      string          `json:"description"`
	MerchantName     string          `json:"merchant_name,omitempty"`
	MerchantID       string          `json:"merchant_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionType  string          `json:"transaction_type"`
	CategoryPrimary  string          `json:"category_primary,omitempty"`
	CategoryDetailed string          `json:"category_detailed,omitempty"`
	Channel          string          `json:"channel,omitempty"`
	IsInternational  bool            `json:"is_international,omitempty"`
	IsRecurring      bool            `json:"is_recurring,omitempty"`
}

// Transaction is the canonical, enriched form of a statement line.
// Derived calendar fields are computed from TransactionDate during
// normalization and are never taken from input.
type Transaction struct {
	TransactionID   string `json:"transaction_id"`
	TransactionDate Date   `json:"transaction_date"`
	PostingDate     *Date  `json:"posting_date,omitempty"`

	Description  string `json:"description"`
	MerchantName string `json:"merchant_name,omitempty"`
	MerchantID   string `json:"merchant_id,omitempty"`

	// Amount is signed: positive increases the balance owed, negative
	// amounts are credits (payments, refunds)
	Amount decimal.Decimal `json:"amount"`

	Type             TransactionType `json:"transaction_type"`
	CategoryPrimary  string          `json:"category_primary"`
	CategoryDetailed string          `json:"category_detailed,omitempty"`
	Channel          Channel         `json:"channel"`

	IsInternational bool `json:"is_international"`
	IsRecurring     bool `json:"is_recurring"`

	// Derived calendar fields
	DayOfWeek  int  `json:"day_of_week"`  // ISO-8601: 1=Monday .. 7=Sunday
	DayOfMonth int  `json:"day_of_month"` // 1-31
	IsWeekend  bool `json:"is_weekend"`   // DayOfWeek 6 or 7
}

// IsPayment reports whether this line is a payment or credit
func (t *Transaction) IsPayment() bool {
	return t.Type == TxTypePayment
}

// IsSpend reports whether this line counts toward spending statistics:
// a positive amount that is not a payment. Refunds (negative purchases)
// and payments are excluded so spend-based ratios stay within [0,1].
func (t *Transaction) IsSpend() bool {
	return !t.IsPayment() && t.Amount.IsPositive()
}

// AbsAmount returns the magnitude of the line amount
func (t *Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// MerchantKey returns the best available merchant identity for diversity
// and loyalty scoring: merchant ID, then merchant name, then the
// description, normalized for case and whitespace.
func (t *Transaction) MerchantKey() string {
	switch {
	case t.MerchantID != "":
		return strings.ToUpper(strings.TrimSpace(t.MerchantID))
	case t.MerchantName != "":
		return strings.ToUpper(strings.TrimSpace(t.MerchantName))
	default:
		return strings.ToUpper(strings.TrimSpace(t.Description))
	}
}
