package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	"github.com/entrybatch/journal_entry_app/internal/core/services"
)

func testAccountSet() domain.AccountSet {
	return domain.NewAccountSet([]domain.Account{
		{AccountID: "acc-cash", AccountCode: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
		{AccountID: "acc-rev", AccountCode: "4000", Name: "Revenue", AccountType: domain.Revenue, IsActive: true},
	})
}

func TestValidateLine(t *testing.T) {
	accounts := testAccountSet()

	tests := []struct {
		name      string
		line      domain.JournalLine
		wantCodes map[string]domain.ErrorCode
	}{
		{
			name:      "valid debit line",
			line:      debitLine(t, "l1", "acc-cash", "100.00"),
			wantCodes: nil,
		},
		{
			name:      "valid credit line",
			line:      creditLine(t, "l1", "acc-rev", "100.00"),
			wantCodes: nil,
		},
		{
			name:      "empty account reference",
			line:      debitLine(t, "l1", "", "100.00"),
			wantCodes: map[string]domain.ErrorCode{"accountID": domain.CodeMissingAccount},
		},
		{
			name:      "unknown account",
			line:      debitLine(t, "l1", "acc-nope", "100.00"),
			wantCodes: map[string]domain.ErrorCode{"accountID": domain.CodeMissingAccount},
		},
		{
			name:      "negative amount",
			line:      debitLine(t, "l1", "acc-cash", "-5.00"),
			wantCodes: map[string]domain.ErrorCode{"amount": domain.CodeInvalidAmount},
		},
		{
			name:      "neither debit nor credit",
			line:      domain.JournalLine{LineID: "l1", AccountID: "acc-cash"},
			wantCodes: map[string]domain.ErrorCode{"amount": domain.CodeInvalidAmount},
		},
		{
			name: "both debit and credit set",
			line: domain.JournalLine{
				LineID:       "l1",
				AccountID:    "acc-cash",
				DebitAmount:  dec(t, "10.00"),
				CreditAmount: dec(t, "10.00"),
			},
			wantCodes: map[string]domain.ErrorCode{"amount": domain.CodeInvalidAmount},
		},
		{
			name: "unknown account and bad amount reported together",
			line: domain.JournalLine{LineID: "l1", AccountID: "acc-nope"},
			wantCodes: map[string]domain.ErrorCode{
				"accountID": domain.CodeMissingAccount,
				"amount":    domain.CodeInvalidAmount,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := services.ValidateLine(tt.line, accounts)
			if tt.wantCodes == nil {
				assert.Nil(t, errs)
				return
			}
			assert.Len(t, errs, len(tt.wantCodes))
			for field, code := range tt.wantCodes {
				assert.Equal(t, code, errs[field].Code, "field %s", field)
			}
		})
	}
}

func TestValidateLine_UnknownAccountMessageCarriesReference(t *testing.T) {
	errs := services.ValidateLine(debitLine(t, "l1", "9999", "50.00"), testAccountSet())

	assert.Contains(t, errs["accountID"].Message, "9999")
}
