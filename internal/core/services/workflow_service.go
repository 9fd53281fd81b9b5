package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/entrybatch/journal_entry_app/internal/apperrors"
	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	portsrepo "github.com/entrybatch/journal_entry_app/internal/core/ports/repositories"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/middleware"
)

// ErrNilEntry is a contract violation, not a validation outcome: callers
// must never hand the workflow a nil entry.
var ErrNilEntry = errors.New("workflow: entry must not be nil")

// workflowService governs the DRAFT -> PENDING_APPROVAL -> POSTED lifecycle.
// POSTED is terminal; reversing a posted entry means creating a new
// compensating entry, which is the caller's job.
type workflowService struct {
	validator          portssvc.ValidationSvcFacade
	entryRepo          portsrepo.EntryRepository
	allowDirectPosting bool
}

// NewWorkflowService creates the workflow state machine. allowDirectPosting
// enables the DRAFT -> POSTED shortcut for callers whose policy permits
// posting without a separate approval step.
func NewWorkflowService(validator portssvc.ValidationSvcFacade, entryRepo portsrepo.EntryRepository, allowDirectPosting bool) portssvc.WorkflowSvcFacade {
	return &workflowService{
		validator:          validator,
		entryRepo:          entryRepo,
		allowDirectPosting: allowDirectPosting,
	}
}

var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

// transitionAllowed checks the bare state graph, ignoring validation guards.
func (s *workflowService) transitionAllowed(current, target domain.EntryStatus) bool {
	if current.IsTerminal() {
		return false
	}
	switch current {
	case domain.Draft:
		if target == domain.PendingApproval {
			return true
		}
		return target == domain.Posted && s.allowDirectPosting
	case domain.PendingApproval:
		return target == domain.Posted
	}
	return false
}

// CanTransition implements portssvc.WorkflowSvcFacade. Transitions into
// PENDING_APPROVAL or POSTED require the entry to validate against a
// directory snapshot taken now, never a cached verdict.
func (s *workflowService) CanTransition(ctx context.Context, entry domain.JournalEntry, target domain.EntryStatus) bool {
	if !s.transitionAllowed(entry.Status, target) {
		return false
	}
	if target == domain.PendingApproval || target == domain.Posted {
		result, err := s.validator.ValidateEntryLive(ctx, entry)
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Re-validation failed during transition check",
				slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
			return false
		}
		return result.Valid
	}
	return true
}

// Transition implements portssvc.WorkflowSvcFacade. On success the entry's
// status is updated in place and persisted; on failure the entry is left
// untouched.
func (s *workflowService) Transition(ctx context.Context, entry *domain.JournalEntry, target domain.EntryStatus, userID string) (*domain.JournalEntry, error) {
	if entry == nil {
		return nil, ErrNilEntry
	}
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("entry_id", entry.EntryID),
		slog.String("from", string(entry.Status)),
		slog.String("to", string(target)),
	)

	if !s.transitionAllowed(entry.Status, target) {
		logger.Warn("Illegal workflow transition attempted")
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrIllegalTransition, entry.Status, target)
	}

	if target == domain.PendingApproval || target == domain.Posted {
		result, err := s.validator.ValidateEntryLive(ctx, *entry)
		if err != nil {
			return nil, fmt.Errorf("failed to re-validate entry %s: %w", entry.EntryID, err)
		}
		if !result.Valid {
			logger.Warn("Transition blocked by validation",
				slog.Int("header_errors", len(result.HeaderErrors)),
				slog.Int("line_errors", len(result.LineErrors)))
			return nil, fmt.Errorf("%w: entry %s does not validate", apperrors.ErrIllegalTransition, entry.EntryID)
		}
	}

	now := time.Now().UTC()
	if err := s.entryRepo.UpdateEntryStatus(ctx, entry.EntryID, target, userID, now); err != nil {
		logger.Error("Failed to persist status change", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist status change for entry %s: %w", entry.EntryID, err)
	}

	entry.Status = target
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	logger.Info("Workflow transition applied")
	return entry, nil
}
