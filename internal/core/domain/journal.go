package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates where a journal entry sits in the approval workflow.
type EntryStatus string

const (
	Draft           EntryStatus = "DRAFT"
	PendingApproval EntryStatus = "PENDING_APPROVAL"
	Posted          EntryStatus = "POSTED"
)

// IsTerminal reports whether no transition may leave this status.
// POSTED is terminal; a reversal is a new compensating entry, never a
// mutation of the posted one.
func (s EntryStatus) IsTerminal() bool {
	return s == Posted
}

// JournalLine is a single debit or credit against one account.
// Exactly one of DebitAmount/CreditAmount must be positive; the other zero.
type JournalLine struct {
	LineID       string          `json:"lineID"`      // Primary Key (e.g., UUID)
	AccountID    string          `json:"accountID"`   // FK -> Account.accountID
	Description  string          `json:"description"` // Nullable per-line memo
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineNo       int             `json:"lineNo"` // Display order within the entry
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// JournalEntry represents one balanced group of debit/credit lines sharing a
// transaction reference. The engine evaluates entries; storing them belongs
// to the external system of record.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`     // Primary Key (e.g., UUID)
	EntryDate   time.Time     `json:"entryDate"`   // Date the event occurred
	Reference   string        `json:"reference"`   // Grouping key; uniqueness enforced by the store
	Description string        `json:"description"` // Nullable user description
	Status      EntryStatus   `json:"status"`      // Default: Draft
	Lines       []JournalLine `json:"lines"`
	AuditFields
}
