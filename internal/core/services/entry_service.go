package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	portsrepo "github.com/entrybatch/journal_entry_app/internal/core/ports/repositories"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/dto"
	"github.com/entrybatch/journal_entry_app/internal/middleware"
)

// entryService manages journal entry drafts in the system of record.
type entryService struct {
	entryRepo portsrepo.EntryRepository
	validator portssvc.ValidationSvcFacade
}

// NewEntryService creates a new entry draft service.
func NewEntryService(entryRepo portsrepo.EntryRepository, validator portssvc.ValidationSvcFacade) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo: entryRepo,
		validator: validator,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// CreateDraft validates and stores a new entry in DRAFT status. Invalid
// drafts are stored too: the workflow guard, not the store, keeps them from
// progressing, and the caller gets the structured errors to display.
func (s *entryService) CreateDraft(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, domain.ValidationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry := req.ToDomainEntry()
	now := time.Now().UTC()
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	result, err := s.validator.ValidateEntryLive(ctx, entry)
	if err != nil {
		return nil, domain.ValidationResult{}, fmt.Errorf("failed to validate entry: %w", err)
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save entry draft", slog.String("reference", entry.Reference), slog.String("error", err.Error()))
		return nil, domain.ValidationResult{}, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry draft created",
		slog.String("entry_id", entry.EntryID),
		slog.String("reference", entry.Reference),
		slog.Bool("valid", result.Valid),
	)
	return &entry, result, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a paginated list of entries.
func (s *entryService) ListEntries(ctx context.Context, limit int, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.entryRepo.ListEntries(ctx, limit, offset)
}
