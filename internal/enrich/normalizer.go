package enrich

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cardlens/statement-enricher/internal/models"
)

// Normalize converts raw statement lines into canonical transactions:
// closed enums, category buckets, derived calendar fields, deterministic
// order. It is the only place derived fields are computed; downstream
// sections treat the result as immutable.
//
// Returns a *ValidationError naming the offending transaction when a line
// is malformed or dated outside the statement period.
func Normalize(period models.StatementPeriod, raw []models.RawTransaction) ([]models.Transaction, error) {
	if !period.IsValid() {
		return nil, fieldError("statement_metadata.statement_period",
			fmt.Sprintf("start and end dates must be present and ordered (got %s .. %s)",
				period.StartDate, period.EndDate))
	}

	txs := make([]models.Transaction, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for i, r := range raw {
		txID := r.TransactionID
		if txID == "" {
			return nil, fieldError(
				fmt.Sprintf("transactions[%d].transaction_id", i), "must be present")
		}
		if seen[txID] {
			return nil, transactionError(txID,
				fmt.Sprintf("transactions[%d].transaction_id", i), txID,
				"duplicate transaction_id within statement")
		}
		seen[txID] = true

		if r.TransactionDate.IsZero() {
			return nil, transactionError(txID,
				fmt.Sprintf("transactions[%d].transaction_date", i), "",
				"must be present")
		}
		if !period.Contains(r.TransactionDate) {
			return nil, transactionError(txID,
				fmt.Sprintf("transactions[%d].transaction_date", i),
				r.TransactionDate.String(),
				fmt.Sprintf("outside statement period %s .. %s",
					period.StartDate, period.EndDate))
		}

		txType, ok := models.ParseTransactionType(r.TransactionType)
		if !ok {
			return nil, transactionError(txID,
				fmt.Sprintf("transactions[%d].transaction_type", i),
				r.TransactionType, "unknown transaction type")
		}

		date := r.TransactionDate
		txs = append(txs, models.Transaction{
			TransactionID:    txID,
			TransactionDate:  date,
			PostingDate:      r.PostingDate,
			Description:      r.Description,
			MerchantName:     r.MerchantName,
			MerchantID:       r.MerchantID,
			Amount:           r.Amount,
			Type:             txType,
			CategoryPrimary:  models.NormalizeCategory(r.CategoryPrimary),
			CategoryDetailed: normalizeDetailed(r.CategoryDetailed),
			Channel:          models.ParseChannel(r.Channel),
			IsInternational:  r.IsInternational,
			IsRecurring:      r.IsRecurring,
			DayOfWeek:        date.ISOWeekday(),
			DayOfMonth:       date.DayOfMonth(),
			IsWeekend:        date.IsWeekend(),
		})
	}

	// Date order with transaction ID as tiebreak keeps same-day lines in a
	// stable order, which the byte-identical output guarantee relies on
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].TransactionDate.Equal(txs[j].TransactionDate) {
			return txs[i].TransactionDate.Before(txs[j].TransactionDate)
		}
		return txs[i].TransactionID < txs[j].TransactionID
	})

	return txs, nil
}

// normalizeDetailed keeps the detailed category optional: blank stays
// blank instead of falling into the UNCATEGORIZED bucket
func normalizeDetailed(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return models.NormalizeCategory(s)
}
