package models

import "time"

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account is the database representation of a chart-of-accounts entry.
type Account struct {
	AccountID      string      `db:"account_id"`
	AccountCode    string      `db:"account_code"` // Unique; authoritative batch lookup key
	Name           string      `db:"name"`
	AccountType    AccountType `db:"account_type"`
	AccountSubtype string      `db:"account_subtype"` // Nullable
	IsSubledger    bool        `db:"is_subledger"`
	IsActive       bool        `db:"is_active"`
	AuditFields
}

// AuditFields holds standard audit columns.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
