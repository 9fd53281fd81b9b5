package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/entrybatch/journal_entry_app/internal/apperrors"
	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	portsrepo "github.com/entrybatch/journal_entry_app/internal/core/ports/repositories"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/dto"
	"github.com/entrybatch/journal_entry_app/internal/middleware"
)

// accountService backs the Account Directory with the accounts repository.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account directory service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// Lookup resolves an account by code, exact match only.
func (s *accountService) Lookup(ctx context.Context, code string) (*domain.Account, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: account code must not be empty", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account by code %s: %w", code, err)
	}
	return account, nil
}

// ListByType returns the accounts of one fundamental type.
func (s *accountService) ListByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	return s.accountRepo.ListAccountsByType(ctx, accountType)
}

// Snapshot captures the active accounts as a read-only set for one
// validation pass.
func (s *accountService) Snapshot(ctx context.Context) (domain.AccountSet, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx)
	if err != nil {
		return domain.AccountSet{}, fmt.Errorf("failed to list active accounts: %w", err)
	}
	return domain.NewAccountSet(accounts), nil
}

// GetAccountByID retrieves a specific account by its unique identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// CreateAccount persists a new account in the directory.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		AccountCode:    req.AccountCode,
		Name:           req.Name,
		AccountType:    req.AccountType,
		AccountSubtype: req.AccountSubtype,
		IsSubledger:    req.IsSubledger,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("account_code", req.AccountCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_code", account.AccountCode))
	return &account, nil
}
