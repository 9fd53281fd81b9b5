package dto

import (
	"time"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountCode    string             `json:"accountCode" binding:"required"`
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AccountSubtype string             `json:"accountSubtype"` // Optional
	IsSubledger    bool               `json:"isSubledger"`
	Description    string             `json:"description"` // Optional
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	AccountCode    string             `json:"accountCode"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	AccountSubtype string             `json:"accountSubtype,omitempty"`
	IsSubledger    bool               `json:"isSubledger"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
	Type   string `form:"type"` // Optional filter by account type
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		AccountCode:    acc.AccountCode,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		AccountSubtype: acc.AccountSubtype,
		IsSubledger:    acc.IsSubledger,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
