package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
)

// EntryLineRequest is one debit or credit line as submitted by a caller.
// Amounts are optional in the DTO; the engine reports INVALID_AMOUNT rather
// than rejecting the request at the binding layer, so the caller gets the
// full structured error set in one pass.
type EntryLineRequest struct {
	LineID       string          `json:"lineID"` // Optional; assigned when empty
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// CreateEntryRequest defines the data needed to create a journal entry draft.
type CreateEntryRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	Reference   string             `json:"reference" binding:"required"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"required"`
}

// ValidateEntryRequest carries an entry for on-demand validation without
// persisting anything. Header fields are deliberately unbound: a missing
// reference must come back as a HEADER_FIELD_INVALID result, not a 400.
type ValidateEntryRequest struct {
	Date        time.Time          `json:"date"`
	Reference   string             `json:"reference"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines"`
}

// ToDomainEntry builds a domain.JournalEntry draft from the request.
// Line IDs are preserved when the caller supplied them (so validation
// results map back onto the caller's rows) and generated otherwise.
func (r ValidateEntryRequest) ToDomainEntry() domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryDate:   r.Date,
		Reference:   r.Reference,
		Description: r.Description,
		Status:      domain.Draft,
		Lines:       make([]domain.JournalLine, len(r.Lines)),
	}
	for i, line := range r.Lines {
		lineID := line.LineID
		if lineID == "" {
			lineID = uuid.NewString()
		}
		entry.Lines[i] = domain.JournalLine{
			LineID:       lineID,
			AccountID:    line.AccountID,
			Description:  line.Description,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
			LineNo:       i + 1,
		}
	}
	return entry
}

// ToDomainEntry builds a domain draft from a create request.
func (r CreateEntryRequest) ToDomainEntry() domain.JournalEntry {
	return ValidateEntryRequest{
		Date:        r.Date,
		Reference:   r.Reference,
		Description: r.Description,
		Lines:       r.Lines,
	}.ToDomainEntry()
}

// EntryLineResponse mirrors domain.JournalLine.
type EntryLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineNo       int             `json:"lineNo"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string              `json:"entryID"`
	Date        time.Time           `json:"date"`
	Reference   string              `json:"reference"`
	Description string              `json:"description,omitempty"`
	Status      domain.EntryStatus  `json:"status"`
	Lines       []EntryLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
}

// CreateEntryResponse pairs the stored draft with its validation verdict.
type CreateEntryResponse struct {
	Entry  EntryResponse           `json:"entry"`
	Result domain.ValidationResult `json:"result"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:       l.LineID,
			AccountID:    l.AccountID,
			Description:  l.Description,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			LineNo:       l.LineNo,
		}
	}
	return EntryResponse{
		EntryID:     e.EntryID,
		Date:        e.EntryDate,
		Reference:   e.Reference,
		Description: e.Description,
		Status:      e.Status,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}
