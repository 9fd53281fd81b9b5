package repositories

import (
	"context"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
)

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)
	// ListActiveAccounts returns every active account; used to build the
	// read-only directory snapshot for a validation pass.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
}
