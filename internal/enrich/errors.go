package enrich

import (
	"fmt"
	"strings"
)

// ValidationError reports input that violates the statement contract:
// missing sections, malformed fields, or transactions outside the
// statement period. It is recoverable; batch processing may skip the
// statement and continue.
type ValidationError struct {
	// TransactionID is set when the problem is a specific transaction
	TransactionID string

	// Field is the dotted path of the offending field
	Field string

	// Value is the offending value as it appeared in the input
	Value string

	// Reason describes what the contract expected
	Reason string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	if e.TransactionID != "" {
		fmt.Fprintf(&b, " (transaction %s)", e.TransactionID)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (got %q)", e.Value)
	}
	return b.String()
}

// fieldError builds a ValidationError for a statement-level field
func fieldError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// transactionError builds a ValidationError against one transaction
func transactionError(txID, field, value, reason string) *ValidationError {
	return &ValidationError{TransactionID: txID, Field: field, Value: value, Reason: reason}
}

// ComputationError reports an internal failure while computing a derived
// section. Degenerate inputs (empty statements, zero denominators) are
// handled by documented defaults and never raise it; it surfaces only
// genuinely impossible states, such as a panicking section worker.
type ComputationError struct {
	// Section names the derived section that failed
	Section string

	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computing %s: %s", e.Section, e.Reason)
}

// SchemaViolation is a single failed constraint from document validation
type SchemaViolation struct {
	// Path is the JSON pointer-ish field path, e.g. "risk_metrics.payment_ratio"
	Path string

	// Message is the validator's description of the failure
	Message string
}

// SchemaViolationError reports that an assembled document failed schema
// validation. It always carries every violation, not just the first, so
// a caller can itemize the full repair list.
type SchemaViolationError struct {
	Violations []SchemaViolation
}

func (e *SchemaViolationError) Error() string {
	if len(e.Violations) == 0 {
		return "document failed schema validation"
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Path, v.Message)
	}
	return fmt.Sprintf("document failed schema validation (%d violations): %s",
		len(e.Violations), strings.Join(parts, "; "))
}
