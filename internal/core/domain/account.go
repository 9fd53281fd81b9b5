package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents one entry in the chart of accounts. The validation
// engine only reads accounts; the directory that owns them is external.
type Account struct {
	AccountID      string      `json:"accountID"`      // Primary Key (e.g., UUID)
	AccountCode    string      `json:"accountCode"`    // Authoritative lookup key for batch rows
	Name           string      `json:"name"`           // User-defined name, advisory in batch files
	AccountType    AccountType `json:"accountType"`    // ASSET, LIABILITY, etc.
	AccountSubtype string      `json:"accountSubtype"` // Nullable finer classification
	IsSubledger    bool        `json:"isSubledger"`    // Account carries a subledger
	IsActive       bool        `json:"isActive"`       // Soft delete or status flag
	AuditFields
}
