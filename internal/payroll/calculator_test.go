package payroll_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/contribution"
	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testEmployee(basePay string) employee.Employee {
	return employee.Employee{
		ID:         uuid.New(),
		EmployeeNo: "EMP-001",
		FirstName:  "Maria",
		LastName:   "Santos",
		Active:     true,
		SalaryGrade: &employee.SalaryGrade{
			ID:      uuid.New(),
			Code:    "SG-1",
			Step:    1,
			BasePay: dec(basePay),
		},
	}
}

func fixedBreakdown() contribution.Breakdown {
	b := zeroBreakdown()
	b.SocialInsurance.EmployeeShare = dec("900")
	b.SocialInsurance.EmployerShare = dec("1700")
	b.SocialInsurance.SupplementaryShare = dec("10")
	b.SocialInsurance.Total = dec("2610")
	b.HealthInsurance.EmployeeShare = dec("500")
	b.HealthInsurance.EmployerShare = dec("500")
	b.HealthInsurance.Total = dec("1000")
	b.HousingFund.EmployeeShare = dec("100")
	b.HousingFund.EmployerShare = dec("100")
	b.HousingFund.Total = dec("200")
	return b
}

func march(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculator_TwentyDaysNoOvertime(t *testing.T) {
	ctx := context.Background()
	repo := &fakePayrollRepository{}
	summarizer := &fakeSummarizer{
		summarizeFn: func(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
			return attendance.Summary{DaysWorked: 20, OvertimeHours: decimal.Zero}, nil
		},
	}
	var taxableSeen decimal.Decimal
	resolver := &fakeContributionResolver{
		resolveFn: func(ctx context.Context, earnings decimal.Decimal) (contribution.Breakdown, error) {
			assert.True(t, earnings.Equal(dec("20000")))
			return fixedBreakdown(), nil
		},
		taxFn: func(ctx context.Context, taxable decimal.Decimal) (decimal.Decimal, error) {
			taxableSeen = taxable
			return dec("308.33"), nil
		},
	}

	calc := payroll.NewCalculator(summarizer, resolver)
	slip, err := calc.ComputePayslip(ctx, repo, testEmployee("22000"), march(1), march(31))

	assert.NoError(t, err)
	// daily rate 22000/22 = 1000, 20 days
	assert.True(t, slip.GrossPay.Equal(dec("20000")))
	assert.True(t, slip.OvertimePay.IsZero())
	assert.Equal(t, 20, slip.DaysWorked)

	// tax base = earnings minus mandatory employee shares
	assert.True(t, taxableSeen.Equal(dec("18500")))

	// 20000 - 900 - 500 - 100 - 308.33
	assert.True(t, slip.NetPay.Equal(dec("18191.67")), "net pay was %s", slip.NetPay)
	assert.True(t, slip.TotalDeductions().Equal(dec("1808.33")))
}

func TestCalculator_OvertimePaidAtTimeAndAQuarter(t *testing.T) {
	ctx := context.Background()
	repo := &fakePayrollRepository{}
	summarizer := &fakeSummarizer{
		summarizeFn: func(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
			return attendance.Summary{DaysWorked: 20, OvertimeHours: dec("4")}, nil
		},
	}
	resolver := &fakeContributionResolver{}

	calc := payroll.NewCalculator(summarizer, resolver)
	slip, err := calc.ComputePayslip(ctx, repo, testEmployee("22000"), march(1), march(31))

	assert.NoError(t, err)
	// hourly 1000/8 = 125; 4h * 125 * 1.25 = 625
	assert.True(t, slip.OvertimePay.Equal(dec("625")))
	assert.True(t, slip.TotalEarnings().Equal(dec("20625")))
}

func TestCalculator_ZeroAttendanceFallsBackToCalendarDays(t *testing.T) {
	ctx := context.Background()
	repo := &fakePayrollRepository{}
	summarizer := &fakeSummarizer{} // zero days
	resolver := &fakeContributionResolver{}

	calc := payroll.NewCalculator(summarizer, resolver)
	slip, err := calc.ComputePayslip(ctx, repo, testEmployee("22000"), march(1), march(15))

	assert.NoError(t, err)
	// 15 calendar days at daily rate 1000
	assert.True(t, slip.GrossPay.Equal(dec("15000")))
	assert.Equal(t, 0, slip.DaysWorked)
}

func TestCalculator_RoundsDailyRateHalfUp(t *testing.T) {
	ctx := context.Background()
	repo := &fakePayrollRepository{}
	summarizer := &fakeSummarizer{
		summarizeFn: func(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
			return attendance.Summary{DaysWorked: 22, OvertimeHours: decimal.Zero}, nil
		},
	}

	calc := payroll.NewCalculator(summarizer, &fakeContributionResolver{})
	slip, err := calc.ComputePayslip(ctx, repo, testEmployee("20000"), march(1), march(31))

	assert.NoError(t, err)
	// 20000/22 = 909.0909... -> 909.09; 22 days -> 19999.98
	assert.True(t, slip.GrossPay.Equal(dec("19999.98")), "gross was %s", slip.GrossPay)
}

func TestCalculator_LoanDeductionCappedAtBalance(t *testing.T) {
	ctx := context.Background()
	loanID := uuid.New()
	var updatedLoans []payroll.Loan
	repo := &fakePayrollRepository{
		findActiveLoansFn: func(ctx context.Context, employeeID string) ([]payroll.Loan, error) {
			return []payroll.Loan{{
				ID:               loanID,
				MonthlyDeduction: dec("2000"),
				RemainingBalance: dec("1500"),
				IsActive:         true,
			}}, nil
		},
		updateLoanFn: func(ctx context.Context, loan *payroll.Loan) error {
			updatedLoans = append(updatedLoans, *loan)
			return nil
		},
	}
	summarizer := &fakeSummarizer{
		summarizeFn: func(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
			return attendance.Summary{DaysWorked: 20, OvertimeHours: decimal.Zero}, nil
		},
	}

	calc := payroll.NewCalculator(summarizer, &fakeContributionResolver{})
	slip, err := calc.ComputePayslip(ctx, repo, testEmployee("22000"), march(1), march(31))

	assert.NoError(t, err)
	assert.True(t, slip.LoanDeductions.Equal(dec("1500")))
	assert.Empty(t, updatedLoans, "calculation must not touch loan balances")
}

func TestCalculator_OneTimeDeductionConsumedOnce(t *testing.T) {
	ctx := context.Background()
	oneTime := payroll.OtherDeduction{
		ID:          uuid.New(),
		Description: "uniform",
		Amount:      dec("350"),
		IsRecurring: false,
		IsActive:    true,
	}
	recurring := payroll.OtherDeduction{
		ID:          uuid.New(),
		Description: "cooperative dues",
		Amount:      dec("100"),
		IsRecurring: true,
		IsActive:    true,
	}

	active := []payroll.OtherDeduction{oneTime, recurring}
	repo := &fakePayrollRepository{
		findActiveDeductionFn: func(ctx context.Context, employeeID string) ([]payroll.OtherDeduction, error) {
			out := make([]payroll.OtherDeduction, len(active))
			copy(out, active)
			return out, nil
		},
		updateDeductionFn: func(ctx context.Context, d *payroll.OtherDeduction) error {
			// mirror the deactivation the way the database would
			kept := active[:0]
			for _, row := range active {
				if row.ID != d.ID {
					kept = append(kept, row)
				}
			}
			active = kept
			return nil
		},
	}
	summarizer := &fakeSummarizer{
		summarizeFn: func(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
			return attendance.Summary{DaysWorked: 20, OvertimeHours: decimal.Zero}, nil
		},
	}

	calc := payroll.NewCalculator(summarizer, &fakeContributionResolver{})
	emp := testEmployee("22000")

	first, err := calc.ComputePayslip(ctx, repo, emp, march(1), march(31))
	assert.NoError(t, err)
	assert.True(t, first.OtherDeductions.Equal(dec("450")))

	second, err := calc.ComputePayslip(ctx, repo, emp, march(1), march(31))
	assert.NoError(t, err)
	assert.True(t, second.OtherDeductions.Equal(dec("100")), "one-time deduction must not apply twice")
}

func TestCalculator_MissingGradeRejected(t *testing.T) {
	ctx := context.Background()
	emp := testEmployee("22000")
	emp.SalaryGrade = nil

	calc := payroll.NewCalculator(&fakeSummarizer{}, &fakeContributionResolver{})
	_, err := calc.ComputePayslip(ctx, &fakePayrollRepository{}, emp, march(1), march(31))

	assert.Error(t, err)
}
