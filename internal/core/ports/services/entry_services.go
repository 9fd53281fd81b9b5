package services

import (
	"context"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	"github.com/entrybatch/journal_entry_app/internal/dto"
)

// EntrySvcFacade manages journal entry drafts in the system of record.
type EntrySvcFacade interface {
	// CreateDraft validates and stores a new entry in DRAFT status. The
	// entry is stored even when invalid; the result tells the caller what
	// to fix before it can progress through the workflow.
	CreateDraft(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, domain.ValidationResult, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, limit int, offset int) ([]domain.JournalEntry, error)
}
