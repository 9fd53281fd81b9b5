package services

import (
	"context"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	"github.com/entrybatch/journal_entry_app/internal/dto"
)

// AccountDirectory is the read surface the validation engine consumes.
// Lookup is by chart-of-accounts code; Snapshot captures the directory for
// one validation pass so concurrent workers never see it change mid-run.
type AccountDirectory interface {
	// Lookup resolves an account by its code (exact match).
	Lookup(ctx context.Context, code string) (*domain.Account, error)

	// ListByType returns the accounts of one fundamental type.
	ListByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)

	// Snapshot returns a read-only view of all active accounts.
	Snapshot(ctx context.Context) (domain.AccountSet, error)
}

// AccountWriterSvc defines write operations for the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
}

// AccountReaderSvc defines read operations beyond the directory surface.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountDirectory
	AccountReaderSvc
	AccountWriterSvc
}
