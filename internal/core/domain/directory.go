package domain

// AccountSet is a read-only snapshot of the account directory taken for one
// validation pass. Concurrent validations may share a snapshot freely since
// nothing mutates it after construction.
type AccountSet struct {
	byID   map[string]Account
	byCode map[string]Account
}

// NewAccountSet builds a snapshot from the given accounts. Later duplicates
// of an ID or code win, matching directory listing order.
func NewAccountSet(accounts []Account) AccountSet {
	s := AccountSet{
		byID:   make(map[string]Account, len(accounts)),
		byCode: make(map[string]Account, len(accounts)),
	}
	for _, acc := range accounts {
		s.byID[acc.AccountID] = acc
		if acc.AccountCode != "" {
			s.byCode[acc.AccountCode] = acc
		}
	}
	return s
}

// ByID resolves an account by its primary identifier.
func (s AccountSet) ByID(accountID string) (Account, bool) {
	acc, ok := s.byID[accountID]
	return acc, ok
}

// ByCode resolves an account by its chart-of-accounts code (exact match).
func (s AccountSet) ByCode(code string) (Account, bool) {
	acc, ok := s.byCode[code]
	return acc, ok
}

// Len returns the number of accounts in the snapshot.
func (s AccountSet) Len() int {
	return len(s.byID)
}
