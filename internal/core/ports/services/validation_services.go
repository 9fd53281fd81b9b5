package services

import (
	"context"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
)

// ValidationSvcFacade is the journal entry validation engine. It is a pure
// evaluator: it never mutates the entry and never persists anything. The
// caller decides what to do with an invalid result.
type ValidationSvcFacade interface {
	// ValidateEntry runs header, line and balance validation against the
	// given directory snapshot and returns a fresh ValidationResult.
	ValidateEntry(entry domain.JournalEntry, accounts domain.AccountSet) domain.ValidationResult

	// ValidateEntryLive is ValidateEntry against a snapshot taken at call
	// time. Used where staleness is unacceptable, e.g. workflow guards.
	ValidateEntryLive(ctx context.Context, entry domain.JournalEntry) (domain.ValidationResult, error)
}

// BatchSvcFacade ingests a tabular upload into grouped journal entries and
// validates every group, producing a consolidated report.
type BatchSvcFacade interface {
	// Ingest parses fileBytes in the declared format, groups rows by
	// reference and validates each group. A single bad row or group never
	// aborts the file. Returns apperrors.ErrUnsupportedFormat for formats
	// other than CSV/XLSX.
	Ingest(ctx context.Context, fileBytes []byte, format domain.BatchFormat) (*domain.BatchReport, error)
}

// WorkflowSvcFacade governs legal transitions between entry statuses.
type WorkflowSvcFacade interface {
	// CanTransition reports whether the entry may move to target, including
	// the re-validation guard for PENDING_APPROVAL and POSTED.
	CanTransition(ctx context.Context, entry domain.JournalEntry, target domain.EntryStatus) bool

	// Transition moves the entry to target and records the change in the
	// store. Illegal moves return apperrors.ErrIllegalTransition and leave
	// the entry untouched.
	Transition(ctx context.Context, entry *domain.JournalEntry, target domain.EntryStatus, userID string) (*domain.JournalEntry, error)
}
