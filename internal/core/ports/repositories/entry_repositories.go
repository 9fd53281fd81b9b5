package repositories

import (
	"context"
	"time"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
)

// EntryRepository defines persistence operations for journal entries.
// The engine itself is stateless; this is the thin store the workflow
// service records state changes against.
type EntryRepository interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, limit int, offset int) ([]domain.JournalEntry, error)
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error
}
