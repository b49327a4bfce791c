package payroll

import (
	"github.com/shopspring/decimal"
)

// DistributeLoanPayment spreads a payslip's loan-deduction total across
// the employee's active loans, oldest start date first. Each loan
// absorbs min(monthly deduction, remaining balance, amount left to
// distribute); a loan whose balance reaches zero is deactivated.
//
// Returned loans carry updated balances and flags; the caller persists
// them. Apply exactly once per payslip: the paid-run guard is the only
// thing standing between this and a double deduction.
func DistributeLoanPayment(loans []Loan, amount decimal.Decimal) []Loan {
	remaining := amount
	updated := make([]Loan, 0, len(loans))

	for _, loan := range loans {
		if !remaining.IsPositive() {
			break
		}
		if !loan.IsActive || !loan.RemainingBalance.IsPositive() {
			continue
		}

		payment := loan.MonthlyDeduction
		if loan.RemainingBalance.LessThan(payment) {
			payment = loan.RemainingBalance
		}
		if remaining.LessThan(payment) {
			payment = remaining
		}

		loan.RemainingBalance = loan.RemainingBalance.Sub(payment).Round(2)
		if !loan.RemainingBalance.IsPositive() {
			loan.RemainingBalance = decimal.Zero
			loan.IsActive = false
		}
		remaining = remaining.Sub(payment)
		updated = append(updated, loan)
	}

	return updated
}
