package services

import (
	"github.com/shopspring/decimal"

	"github.com/entrybatch/journal_entry_app/internal/core/domain"
)

// BalancePolicy controls how the balance check compares debit and credit
// totals. Epsilon is an absolute tolerance in currency units; MinorUnits is
// the currency's minor-unit precision (2 for USD-like currencies, 0 for
// JPY-like ones). Both are policy parameters rather than constants so
// zero-decimal currencies can supply their own.
type BalancePolicy struct {
	Epsilon    decimal.Decimal
	MinorUnits int32
}

// DefaultBalancePolicy returns the 2-decimal, 0.001-tolerance policy.
func DefaultBalancePolicy() BalancePolicy {
	return BalancePolicy{
		Epsilon:    decimal.NewFromFloat(0.001),
		MinorUnits: 2,
	}
}

// CheckBalance sums the debit and credit sides of the given lines and
// reports whether they agree under the policy. Both sums are rounded to the
// minor-unit precision before comparison; amounts are never compared at
// intermediate precision. An all-zero set of lines is not balanced: the
// common total must be positive.
func (p BalancePolicy) CheckBalance(lines []domain.JournalLine) domain.BalanceSummary {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}

	totalDebit = totalDebit.Round(p.MinorUnits)
	totalCredit = totalCredit.Round(p.MinorUnits)
	difference := totalDebit.Sub(totalCredit)

	return domain.BalanceSummary{
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Difference:  difference,
		IsBalanced:  difference.Abs().LessThan(p.Epsilon) && totalDebit.IsPositive(),
	}
}
