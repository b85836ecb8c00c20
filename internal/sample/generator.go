// Package sample generates synthetic raw statements for demos and
// pipeline testing. Generated summaries always reconcile against the
// generated lines, so the pipeline accepts its own samples.
package sample

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-enricher/internal/models"
	"github.com/cardlens/statement-enricher/internal/utils"
)

// Options control sample generation
type Options struct {
	// Seed for reproducibility (0 = random)
	Seed int64

	// Transactions is the purchase count before recurring charges,
	// fees, interest and payments are added on top
	Transactions int

	// CreditLimit on the generated account. Zero is kept as a genuine
	// zero-limit account, not replaced by a default.
	CreditLimit decimal.Decimal

	Currency    string
	CountryCode string

	// StatementDate fixes the statement period (first of its month
	// through this date). Zero picks the last day of the previous
	// calendar month.
	StatementDate models.Date
}

// DefaultOptions returns the generation defaults
func DefaultOptions() Options {
	return Options{
		Transactions: 25,
		CreditLimit:  decimal.NewFromInt(5000),
		Currency:     "USD",
		CountryCode:  "US",
	}
}

// Generator produces synthetic raw statements
type Generator struct {
	opts Options
	rng  *utils.Random
	ref  *Reference
}

// New creates a Generator. Empty string fields and a non-positive
// transaction count fall back to DefaultOptions; CreditLimit is taken
// as given.
func New(opts Options) (*Generator, error) {
	ref, err := LoadReference()
	if err != nil {
		return nil, err
	}

	def := DefaultOptions()
	if opts.Transactions <= 0 {
		opts.Transactions = def.Transactions
	}
	if opts.Currency == "" {
		opts.Currency = def.Currency
	}
	if opts.CountryCode == "" {
		opts.CountryCode = def.CountryCode
	}
	if opts.StatementDate.IsZero() {
		now := time.Now().UTC()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		opts.StatementDate = models.DateOf(firstOfMonth.AddDate(0, 0, -1))
	}

	return &Generator{
		opts: opts,
		rng:  utils.NewRandom(opts.Seed),
		ref:  ref,
	}, nil
}

// Seed returns the seed in use, so auto-seeded runs can be reproduced
func (g *Generator) Seed() uint64 {
	return g.rng.Seed()
}

// Generate produces one raw statement
func (g *Generator) Generate() (*models.RawStatement, error) {
	return g.generate(g.rng)
}

// GenerateN produces n statements on independent derived streams
func (g *Generator) GenerateN(n int) ([]*models.RawStatement, error) {
	statements := make([]*models.RawStatement, 0, n)
	for _, rng := range g.rng.ForkN(n) {
		st, err := g.generate(rng)
		if err != nil {
			return nil, err
		}
		statements = append(statements, st)
	}
	return statements, nil
}

// Card brand mix for generated accounts
var (
	cardBrands       = []models.CardBrand{models.BrandVisa, models.BrandMastercard, models.BrandAmex, models.BrandDiscover}
	cardBrandWeights = []int{45, 35, 12, 8}
)

// weekdayWeights tilts purchase days toward weekdays, Friday heaviest
// (index 0 = Monday .. 6 = Sunday)
var weekdayWeights = [7]int{12, 10, 10, 10, 13, 8, 5}

// paymentDescriptions vary how issuers label incoming payments
var paymentDescriptions = []string{
	"PAYMENT RECEIVED - THANK YOU",
	"ONLINE PAYMENT - THANK YOU",
	"AUTOPAY PAYMENT RECEIVED",
}

func (g *Generator) generate(rng *utils.Random) (*models.RawStatement, error) {
	statementDate := g.opts.StatementDate
	period := models.StatementPeriod{
		StartDate: models.NewDate(statementDate.Year(), statementDate.Month(), 1),
		EndDate:   statementDate,
	}

	recordID, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to derive record id: %w", err)
	}

	previous := g.previousBalance(rng)
	txs := g.transactions(rng, period, previous)
	summary := summarize(txs, previous)

	closing := summary.ClosingBalance
	available := g.opts.CreditLimit.Sub(closing)
	if available.IsNegative() {
		available = decimal.Zero
	}
	summary.MinimumPaymentDue = minimumPayment(closing)
	dueDate := statementDate.AddDays(21)
	summary.PaymentDueDate = &dueDate

	limit := g.opts.CreditLimit

	return &models.RawStatement{
		StatementMetadata: &models.StatementMetadata{
			RecordID:        recordID.String(),
			StatementDate:   statementDate,
			StatementPeriod: period,
			CountryCode:     g.opts.CountryCode,
			CardIdentifier:  "****" + rng.NumericString(4),
			Currency:        g.opts.Currency,
		},
		AccountInfo: &models.AccountInfo{
			AccountNumberMasked: "****" + rng.NumericString(4),
			CardBrand:           cardBrands[rng.WeightedPick(cardBrandWeights)],
			CardType:            "CREDIT",
			CreditLimit:         &limit,
			AvailableCredit:     &available,
			CurrentBalance:      &closing,
		},
		FinancialSummary: summary,
		Transactions:     txs,
		MerchantHistory:  merchantHistory(rng, txs),
	}, nil
}

// previousBalance carries a balance into the period for most accounts;
// a quarter of statements start clean
func (g *Generator) previousBalance(rng *utils.Random) decimal.Decimal {
	if rng.Probability(0.25) {
		return decimal.Zero
	}
	ceiling := 150000.0
	if g.opts.CreditLimit.IsPositive() {
		ceiling = g.opts.CreditLimit.InexactFloat64() * 100 * 0.6
	}
	cents := int64(rng.Float64Range(2000, ceiling))
	return decimal.New((cents/25)*25, -2)
}

func (g *Generator) transactions(rng *utils.Random, period models.StatementPeriod, previous decimal.Decimal) []models.RawTransaction {
	var txs []models.RawTransaction
	seq := 0
	nextID := func() string {
		seq++
		return fmt.Sprintf("txn-%03d-%s", seq, rng.String(6))
	}

	dayWeights := purchaseDayWeights(period)
	pickDay := func() models.Date {
		return period.StartDate.AddDays(rng.WeightedPick(dayWeights))
	}

	// Everyday purchases
	for i := 0; i < g.opts.Transactions; i++ {
		category := g.ref.Categories[rng.WeightedPick(g.ref.CategoryWeights())]
		merchant := category.Merchants[rng.IntN(len(category.Merchants))]
		date := pickDay()

		tx := models.RawTransaction{
			TransactionID:   nextID(),
			TransactionDate: date,
			Description:     purchaseDescription(rng, category, merchant),
			MerchantName:    merchant.Name,
			MerchantID:      merchant.ID,
			Amount:          amountProfiles[category.Profile].amount(rng),
			TransactionType: string(models.TxTypePurchase),
			CategoryPrimary: category.Name,
			Channel:         category.Channel,
			IsInternational: rng.Probability(category.IntlRate),
		}
		// Half the purchases clear same-day, the rest a day or two later
		if rng.Bool() {
			posted := clampToPeriod(date.AddDays(rng.IntRange(1, 2)), period)
			tx.PostingDate = &posted
		}
		txs = append(txs, tx)
	}

	// Recurring subscriptions land on a fixed day of the month
	for _, sub := range pickSubscriptions(rng, g.ref.Subscriptions) {
		date := clampToPeriod(period.StartDate.AddDays(rng.IntRange(2, 26)-1), period)
		txs = append(txs, models.RawTransaction{
			TransactionID:   nextID(),
			TransactionDate: date,
			Description:     "RECURRING PAYMENT " + strings.ToUpper(sub.Name),
			MerchantName:    sub.Name,
			Amount:          decimal.NewFromFloat(sub.Amount),
			TransactionType: string(models.TxTypePurchase),
			CategoryPrimary: "ENTERTAINMENT",
			Channel:         string(models.ChannelOnline),
			IsRecurring:     true,
		})
	}

	// Occasional cash advance, $40 to $200 in $20 steps
	if rng.Probability(0.15) {
		atm := g.ref.ATMNetworks[rng.IntN(len(g.ref.ATMNetworks))]
		txs = append(txs, models.RawTransaction{
			TransactionID:   nextID(),
			TransactionDate: pickDay(),
			Description:     "ATM WITHDRAWAL " + strings.ToUpper(atm.Name) + " " + atm.City,
			Amount:          decimal.New(int64(rng.IntRange(2, 10))*2000, -2),
			TransactionType: string(models.TxTypeCashAdvance),
			CategoryPrimary: "CASH_ADVANCE",
			Channel:         string(models.ChannelATM),
		})
	}

	// Late fee on the statement date
	if rng.Probability(0.12) {
		fees := []int64{2500, 3500, 3900}
		txs = append(txs, models.RawTransaction{
			TransactionID:   nextID(),
			TransactionDate: period.EndDate,
			Description:     "LATE PAYMENT FEE",
			Amount:          decimal.New(fees[rng.IntN(len(fees))], -2),
			TransactionType: string(models.TxTypeFee),
			CategoryPrimary: "FEES",
			Channel:         string(models.ChannelOther),
		})
	}

	// Interest accrues only on carried balances
	if previous.IsPositive() && rng.Probability(0.5) {
		rate := decimal.NewFromFloat(rng.Float64Range(0.012, 0.022))
		interest := previous.Mul(rate).Round(2)
		if interest.GreaterThanOrEqual(decimal.New(1, -2)) {
			txs = append(txs, models.RawTransaction{
				TransactionID:   nextID(),
				TransactionDate: period.EndDate,
				Description:     "INTEREST CHARGE ON PURCHASES",
				Amount:          interest,
				TransactionType: string(models.TxTypeInterest),
				CategoryPrimary: "INTEREST",
				Channel:         string(models.ChannelOther),
			})
		}
	}

	// Payment against the carried balance, full or partial
	if previous.IsPositive() {
		payment := previous
		if !rng.Probability(0.55) {
			frac := decimal.NewFromFloat(rng.Float64Range(0.3, 0.95))
			payment = previous.Mul(frac).Round(2)
		}
		if payment.IsPositive() {
			date := clampToPeriod(period.StartDate.AddDays(rng.IntRange(4, 24)), period)
			txs = append(txs, models.RawTransaction{
				TransactionID:   nextID(),
				TransactionDate: date,
				Description:     rng.PickString(paymentDescriptions),
				Amount:          payment.Neg(),
				TransactionType: string(models.TxTypePayment),
				CategoryPrimary: "PAYMENT",
				Channel:         string(models.ChannelOnline),
			})
		}
	}

	return txs
}

// pickSubscriptions selects 1 to 3 distinct subscriptions
func pickSubscriptions(rng *utils.Random, subs []Subscription) []Subscription {
	count := rng.IntRange(1, 3)
	if count > len(subs) {
		count = len(subs)
	}
	picked := make([]Subscription, 0, count)
	used := make(map[int]bool)
	for len(picked) < count {
		i := rng.IntN(len(subs))
		if used[i] {
			continue
		}
		used[i] = true
		picked = append(picked, subs[i])
	}
	return picked
}

// purchaseDayWeights tilts day selection toward weekdays across the period
func purchaseDayWeights(period models.StatementPeriod) []int {
	weights := make([]int, period.Days())
	for i := range weights {
		weights[i] = weekdayWeights[period.StartDate.AddDays(i).ISOWeekday()-1]
	}
	return weights
}

func purchaseDescription(rng *utils.Random, category Category, merchant Merchant) string {
	name := strings.ToUpper(merchant.Name)
	if models.ParseChannel(category.Channel) == models.ChannelOnline {
		return "ONLINE PAYMENT " + name + " " + merchant.City
	}
	return "DEBIT CARD PURCHASE " + name + " #" + rng.NumericString(4) + " " + merchant.City
}

func clampToPeriod(d models.Date, period models.StatementPeriod) models.Date {
	if d.After(period.EndDate) {
		return period.EndDate
	}
	return d
}

// summarize folds the generated lines into a reconciled summary
func summarize(txs []models.RawTransaction, previous decimal.Decimal) *models.FinancialSummary {
	s := &models.FinancialSummary{PreviousBalance: previous}
	for _, tx := range txs {
		t, _ := models.ParseTransactionType(tx.TransactionType)
		switch t {
		case models.TxTypePurchase:
			s.Purchases = s.Purchases.Add(tx.Amount)
		case models.TxTypeCashAdvance:
			s.CashAdvances = s.CashAdvances.Add(tx.Amount)
		case models.TxTypeBalanceTransfer:
			s.BalanceTransfers = s.BalanceTransfers.Add(tx.Amount)
		case models.TxTypeFee:
			s.FeesCharged = s.FeesCharged.Add(tx.Amount)
		case models.TxTypeInterest:
			s.InterestCharged = s.InterestCharged.Add(tx.Amount)
		case models.TxTypePayment:
			s.PaymentsCredits = s.PaymentsCredits.Add(tx.Amount.Abs())
		}
	}
	s.ClosingBalance = s.ExpectedClosingBalance()
	return s
}

// minimumPayment is 2% of the closing balance with a $25 floor,
// capped at the balance itself
func minimumPayment(closing decimal.Decimal) *decimal.Decimal {
	if !closing.IsPositive() {
		return nil
	}
	due := closing.Mul(decimal.NewFromFloat(0.02)).Round(2)
	floor := decimal.NewFromInt(25)
	if due.LessThan(floor) {
		due = floor
	}
	if due.GreaterThan(closing) {
		due = closing
	}
	return &due
}

// merchantHistory emits prior-statement merchant keys for roughly six
// of ten statements; the rest omit history so the new-merchant ratio
// stays null downstream
func merchantHistory(rng *utils.Random, txs []models.RawTransaction) []string {
	if !rng.Probability(0.6) {
		return nil
	}

	seen := make(map[string]bool)
	var history []string
	for _, tx := range txs {
		var key string
		switch {
		case tx.MerchantID != "":
			key = strings.ToUpper(tx.MerchantID)
		case tx.MerchantName != "":
			key = strings.ToUpper(tx.MerchantName)
		default:
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		if rng.Probability(0.7) {
			history = append(history, key)
		}
	}
	sort.Strings(history)
	return history
}
