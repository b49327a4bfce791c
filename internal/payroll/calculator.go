package payroll

import (
	"context"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/contribution"
	"go-payroll/internal/employee"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Pay derivation constants. The daily rate always divides by 22
// working days per month regardless of the actual calendar.
var (
	workingDaysPerMonth = decimal.NewFromInt(22)
	hoursPerDay         = decimal.NewFromInt(8)
	overtimeMultiplier  = decimal.NewFromFloat(1.25)
)

// AttendanceSummarizer is the slice of the attendance service the
// calculator consumes.
type AttendanceSummarizer interface {
	Summarize(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error)
}

// ContributionResolver is the slice of the contribution service the
// calculator consumes.
type ContributionResolver interface {
	Resolve(ctx context.Context, monthlyEarnings decimal.Decimal) (contribution.Breakdown, error)
	MonthlyWithholdingTax(ctx context.Context, monthlyTaxable decimal.Decimal) (decimal.Decimal, error)
}

// Calculator produces one payslip per employee per period. It reads
// loans without mutating them; one-time other deductions are
// deactivated through the repository it is handed, so callers decide
// the transaction boundary.
type Calculator struct {
	attendance    AttendanceSummarizer
	contributions ContributionResolver
	logger        *zap.Logger
}

func NewCalculator(att AttendanceSummarizer, contrib ContributionResolver, logger ...*zap.Logger) *Calculator {
	l := zap.L().Named("payroll.calculator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.calculator")
	}
	return &Calculator{attendance: att, contributions: contrib, logger: l}
}

// ComputePayslip builds the full breakdown for one employee over an
// inclusive period. Every monetary value is rounded to 2 decimal
// places at the step that produces it.
//
// With no attendance rows at all, gross pay falls back to daily rate
// times the calendar days in the period. Loan deductions are capped at
// each loan's remaining balance and nothing is written back to loans
// here. One-time other deductions ARE consumed here: computing the
// same period twice applies them only once.
func (c *Calculator) ComputePayslip(
	ctx context.Context,
	repo Repository,
	emp employee.Employee,
	periodStart, periodEnd time.Time,
) (*Payslip, error) {
	if emp.SalaryGrade == nil {
		return nil, payrollerrors.ErrEmployeeHasNoGrade
	}

	dailyRate := emp.SalaryGrade.BasePay.Div(workingDaysPerMonth).Round(2)
	hourlyRate := dailyRate.Div(hoursPerDay).Round(2)

	summary, err := c.attendance.Summarize(ctx, emp.ID.String(), periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	days := summary.DaysWorked
	if days == 0 {
		days = calendarDays(periodStart, periodEnd)
		c.logger.Warn("no attendance in period, prorating by calendar days",
			zap.String("employee_id", emp.ID.String()),
			zap.Int("calendar_days", days),
		)
	}

	grossPay := dailyRate.Mul(decimal.NewFromInt(int64(days))).Round(2)
	overtimePay := summary.OvertimeHours.Mul(hourlyRate).Mul(overtimeMultiplier).Round(2)
	totalEarnings := grossPay.Add(overtimePay)

	breakdown, err := c.contributions.Resolve(ctx, totalEarnings)
	if err != nil {
		return nil, err
	}

	mandatory := breakdown.SocialInsurance.EmployeeShare.
		Add(breakdown.HealthInsurance.EmployeeShare).
		Add(breakdown.HousingFund.EmployeeShare)

	tax, err := c.contributions.MonthlyWithholdingTax(ctx, totalEarnings.Sub(mandatory))
	if err != nil {
		return nil, err
	}

	loanDeductions, err := c.resolveLoanDeductions(ctx, repo, emp.ID)
	if err != nil {
		return nil, err
	}

	otherDeductions, err := c.consumeOtherDeductions(ctx, repo, emp.ID)
	if err != nil {
		return nil, err
	}

	netPay := totalEarnings.
		Sub(mandatory).
		Sub(tax).
		Sub(loanDeductions).
		Sub(otherDeductions).
		Round(2)

	return &Payslip{
		ID:         uuid.New(),
		EmployeeID: emp.ID,

		DaysWorked:    summary.DaysWorked,
		OvertimeHours: summary.OvertimeHours,

		GrossPay:    grossPay,
		OvertimePay: overtimePay,

		SocialInsuranceEE:   breakdown.SocialInsurance.EmployeeShare,
		SocialInsuranceER:   breakdown.SocialInsurance.EmployerShare,
		SocialInsuranceSupp: breakdown.SocialInsurance.SupplementaryShare,
		HealthInsuranceEE:   breakdown.HealthInsurance.EmployeeShare,
		HealthInsuranceER:   breakdown.HealthInsurance.EmployerShare,
		HousingFundEE:       breakdown.HousingFund.EmployeeShare,
		HousingFundER:       breakdown.HousingFund.EmployerShare,
		WithholdingTax:      tax,

		LoanDeductions:  loanDeductions,
		OtherDeductions: otherDeductions,

		NetPay: netPay,
	}, nil
}

// resolveLoanDeductions sums min(monthly deduction, remaining balance)
// over the employee's active loans. Read-only by contract: balances
// change only when the run is marked paid.
func (c *Calculator) resolveLoanDeductions(ctx context.Context, repo Repository, employeeID uuid.UUID) (decimal.Decimal, error) {
	loans, err := repo.FindActiveLoansByEmployee(ctx, employeeID.String())
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, loan := range loans {
		if !loan.RemainingBalance.IsPositive() {
			continue
		}
		installment := loan.MonthlyDeduction
		if loan.RemainingBalance.LessThan(installment) {
			installment = loan.RemainingBalance
		}
		total = total.Add(installment)
	}
	return total.Round(2), nil
}

// consumeOtherDeductions sums active deductions and deactivates the
// one-time ones as a side effect of the calculation.
func (c *Calculator) consumeOtherDeductions(ctx context.Context, repo Repository, employeeID uuid.UUID) (decimal.Decimal, error) {
	rows, err := repo.FindActiveDeductionsByEmployee(ctx, employeeID.String())
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range rows {
		row := &rows[i]
		total = total.Add(row.Amount)
		if row.IsRecurring {
			continue
		}
		row.IsActive = false
		if err := repo.UpdateOtherDeduction(ctx, row); err != nil {
			return decimal.Zero, err
		}
	}
	return total.Round(2), nil
}

// calendarDays counts inclusive days between two dates.
func calendarDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
