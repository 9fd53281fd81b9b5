package domain

import "github.com/shopspring/decimal"

// ErrorCode identifies a class of validation failure. Codes are stable and
// machine-readable; messages are for display only.
type ErrorCode string

const (
	CodeMissingAccount     ErrorCode = "MISSING_ACCOUNT"
	CodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	CodeHeaderFieldInvalid ErrorCode = "HEADER_FIELD_INVALID"
	CodeUnbalanced         ErrorCode = "UNBALANCED"
	CodeMalformedRow       ErrorCode = "MALFORMED_ROW"
)

// FieldError describes one validation failure on a single field.
type FieldError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// LineErrors collects field-level failures for one journal line,
// keyed by field name ("accountID", "amount").
type LineErrors map[string]FieldError

// BalanceSummary is the outcome of the balance check over a set of lines.
// Totals are rounded to the currency minor unit before comparison.
type BalanceSummary struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Difference  decimal.Decimal `json:"difference"` // TotalDebit - TotalCredit after rounding
	IsBalanced  bool            `json:"isBalanced"`
}

// ValidationResult is the verdict for one journal entry. It is a value,
// produced fresh per validation call and never mutated afterwards.
// LineErrors are keyed by line ID, not index, so callers can still locate
// the offending line after rows are reordered or removed.
type ValidationResult struct {
	Valid        bool                  `json:"valid"`
	HeaderErrors map[string]FieldError `json:"headerErrors,omitempty"`
	LineErrors   map[string]LineErrors `json:"lineErrors,omitempty"`
	Balance      BalanceSummary        `json:"balance"`
}

// NewValidationResult returns an empty result with allocated error maps.
func NewValidationResult() ValidationResult {
	return ValidationResult{
		HeaderErrors: make(map[string]FieldError),
		LineErrors:   make(map[string]LineErrors),
	}
}

// HasErrors reports whether any header or line error was recorded.
func (r ValidationResult) HasErrors() bool {
	return len(r.HeaderErrors) > 0 || len(r.LineErrors) > 0
}
