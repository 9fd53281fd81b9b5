package domain

import "time"

// BatchFormat names a supported tabular upload format.
type BatchFormat string

const (
	FormatCSV  BatchFormat = "csv"
	FormatXLSX BatchFormat = "xlsx"
)

// RawRow is one successfully parsed row of a batch file, before account
// resolution. RowNo is 1-based and counts the header row, matching what the
// user sees in a spreadsheet.
type RawRow struct {
	RowNo       int
	Date        time.Time
	Reference   string
	Description string
	AccountCode string
	AccountName string // advisory only, never drives matching
	Debit       string // raw cell text; parsed to decimal during entry assembly
	Credit      string
	Memo        string
}

// RowError records a row that could not be parsed into the expected columns.
// Malformed rows never abort the file; they surface here so the caller can
// correct everything in one pass.
type RowError struct {
	RowNo   int       `json:"rowNo"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// BatchGroup is the validation outcome for all rows sharing one reference.
type BatchGroup struct {
	Reference string           `json:"reference"`
	Entry     *JournalEntry    `json:"entry,omitempty"`
	RowErrors []RowError       `json:"rowErrors,omitempty"`
	Result    ValidationResult `json:"result"`
}

// BatchReport covers a whole file ingestion. Groups appear in
// first-appearance order of their reference regardless of how the
// validation work was scheduled. Built once; read-only afterwards.
type BatchReport struct {
	Groups       []BatchGroup `json:"groups"`
	RowErrors    []RowError   `json:"rowErrors,omitempty"` // rows with no usable reference
	OverallValid bool         `json:"overallValid"`
	Partial      bool         `json:"partial,omitempty"` // set when ingestion was cancelled mid-run
}
