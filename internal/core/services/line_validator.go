package services

import (
	"fmt"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
)

// ValidateLine checks a single journal line against the directory snapshot.
// It is a pure function of its inputs; a nil-length result means the line is
// well-formed. Errors are keyed by field so a caller can highlight the exact
// input that needs fixing.
func ValidateLine(line domain.JournalLine, accounts domain.AccountSet) domain.LineErrors {
	errs := domain.LineErrors{}

	if line.AccountID == "" {
		errs["accountID"] = domain.FieldError{
			Code:    domain.CodeMissingAccount,
			Message: "line has no account reference",
		}
	} else if _, found := accounts.ByID(line.AccountID); !found {
		errs["accountID"] = domain.FieldError{
			Code:    domain.CodeMissingAccount,
			Message: fmt.Sprintf("account %s not found in directory", line.AccountID),
		}
	}

	debit := line.DebitAmount
	credit := line.CreditAmount
	switch {
	case debit.IsNegative() || credit.IsNegative():
		errs["amount"] = domain.FieldError{
			Code:    domain.CodeInvalidAmount,
			Message: "amounts must not be negative",
		}
	case debit.IsZero() && credit.IsZero():
		errs["amount"] = domain.FieldError{
			Code:    domain.CodeInvalidAmount,
			Message: "line must carry a debit or a credit amount",
		}
	case !debit.IsZero() && !credit.IsZero():
		errs["amount"] = domain.FieldError{
			Code:    domain.CodeInvalidAmount,
			Message: "line must be purely a debit or purely a credit, not both",
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
