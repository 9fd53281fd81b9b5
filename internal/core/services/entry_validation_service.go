package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
)

// MinEntryLines is the smallest number of lines a double-entry journal
// entry can carry.
const MinEntryLines = 2

// entryValidationService composes header, line and balance validation into
// one pass/fail verdict. It holds no mutable state; concurrent calls are
// safe by construction.
type entryValidationService struct {
	directory portssvc.AccountDirectory
	policy    BalancePolicy
}

// NewEntryValidationService creates the validation engine. The directory is
// only used by ValidateEntryLive; ValidateEntry works purely against the
// snapshot the caller supplies.
func NewEntryValidationService(directory portssvc.AccountDirectory, policy BalancePolicy) portssvc.ValidationSvcFacade {
	return &entryValidationService{
		directory: directory,
		policy:    policy,
	}
}

var _ portssvc.ValidationSvcFacade = (*entryValidationService)(nil)

// ValidateEntry evaluates the entry against the given directory snapshot.
// Malformed lines are excluded from the balance sum so one bad line does not
// mask an imbalance across the rest, but any line failure still makes the
// whole entry invalid.
func (s *entryValidationService) ValidateEntry(entry domain.JournalEntry, accounts domain.AccountSet) domain.ValidationResult {
	result := domain.NewValidationResult()

	s.validateHeader(entry, &result)

	cleanLines := make([]domain.JournalLine, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		if lineErrs := ValidateLine(line, accounts); lineErrs != nil {
			result.LineErrors[line.LineID] = lineErrs
			continue
		}
		cleanLines = append(cleanLines, line)
	}

	result.Balance = s.policy.CheckBalance(cleanLines)
	if len(cleanLines) > 0 && !result.Balance.IsBalanced {
		result.HeaderErrors["balance"] = domain.FieldError{
			Code: domain.CodeUnbalanced,
			Message: fmt.Sprintf("debits (%s) do not equal credits (%s), difference %s",
				result.Balance.TotalDebit, result.Balance.TotalCredit, result.Balance.Difference),
		}
	}

	result.Valid = !result.HasErrors() && result.Balance.IsBalanced
	return result
}

// ValidateEntryLive takes a fresh directory snapshot and validates against
// it. Workflow guards use this so a previously valid entry whose accounts
// changed underneath is never trusted from a stale result.
func (s *entryValidationService) ValidateEntryLive(ctx context.Context, entry domain.JournalEntry) (domain.ValidationResult, error) {
	accounts, err := s.directory.Snapshot(ctx)
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("failed to snapshot account directory: %w", err)
	}
	return s.ValidateEntry(entry, accounts), nil
}

func (s *entryValidationService) validateHeader(entry domain.JournalEntry, result *domain.ValidationResult) {
	if strings.TrimSpace(entry.Reference) == "" {
		result.HeaderErrors["reference"] = domain.FieldError{
			Code:    domain.CodeHeaderFieldInvalid,
			Message: "reference must not be empty",
		}
	}
	if entry.EntryDate.IsZero() {
		result.HeaderErrors["date"] = domain.FieldError{
			Code:    domain.CodeHeaderFieldInvalid,
			Message: "entry date is missing or not a valid calendar date",
		}
	}
	if len(entry.Lines) < MinEntryLines {
		result.HeaderErrors["lines"] = domain.FieldError{
			Code:    domain.CodeHeaderFieldInvalid,
			Message: fmt.Sprintf("entry must have at least %d lines, got %d", MinEntryLines, len(entry.Lines)),
		}
	}
}
