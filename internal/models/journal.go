package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus for DB storage.
type EntryStatus string

// JournalEntry is the database representation of an entry header.
type JournalEntry struct {
	EntryID     string      `db:"entry_id"`
	EntryDate   time.Time   `db:"entry_date"`
	Reference   string      `db:"reference"` // Unique index enforces store-side uniqueness
	Description string      `db:"description"`
	Status      EntryStatus `db:"status"`
	AuditFields
}

// JournalLine is the database representation of one debit/credit line.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	LineNo       int             `db:"line_no"`
}
