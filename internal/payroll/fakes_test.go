package payroll_test

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/contribution"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"

	"github.com/shopspring/decimal"
)

type fakePayrollRepository struct {
	createRunFn           func(ctx context.Context, run *payroll.PayrollRun) error
	findAllRunsFn         func(ctx context.Context) ([]payroll.PayrollRun, error)
	findRunByIDFn         func(ctx context.Context, id string) (*payroll.PayrollRun, error)
	updateRunFn           func(ctx context.Context, run *payroll.PayrollRun) error
	createPayslipFn       func(ctx context.Context, slip *payroll.Payslip) error
	deletePayslipsFn      func(ctx context.Context, runID string) error
	findPayslipsByRunFn   func(ctx context.Context, runID string) ([]payroll.Payslip, error)
	findPayslipByIDFn     func(ctx context.Context, id string) (*payroll.Payslip, error)
	findPayslipsByEmpFn   func(ctx context.Context, employeeID string) ([]payroll.Payslip, error)
	updatePayslipFn       func(ctx context.Context, slip *payroll.Payslip) error
	createLoanFn          func(ctx context.Context, loan *payroll.Loan) error
	findLoansFn           func(ctx context.Context, employeeID string) ([]payroll.Loan, error)
	findActiveLoansFn     func(ctx context.Context, employeeID string) ([]payroll.Loan, error)
	updateLoanFn          func(ctx context.Context, loan *payroll.Loan) error
	createDeductionFn     func(ctx context.Context, deduction *payroll.OtherDeduction) error
	findDeductionsFn      func(ctx context.Context, employeeID string) ([]payroll.OtherDeduction, error)
	findActiveDeductionFn func(ctx context.Context, employeeID string) ([]payroll.OtherDeduction, error)
	updateDeductionFn     func(ctx context.Context, deduction *payroll.OtherDeduction) error
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakePayrollRepository) CreateRun(ctx context.Context, run *payroll.PayrollRun) error {
	if f.createRunFn != nil {
		return f.createRunFn(ctx, run)
	}
	return nil
}

func (f *fakePayrollRepository) FindAllRuns(ctx context.Context) ([]payroll.PayrollRun, error) {
	if f.findAllRunsFn != nil {
		return f.findAllRunsFn(ctx)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindRunByID(ctx context.Context, id string) (*payroll.PayrollRun, error) {
	if f.findRunByIDFn != nil {
		return f.findRunByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePayrollRepository) UpdateRun(ctx context.Context, run *payroll.PayrollRun) error {
	if f.updateRunFn != nil {
		return f.updateRunFn(ctx, run)
	}
	return nil
}

func (f *fakePayrollRepository) CreatePayslip(ctx context.Context, slip *payroll.Payslip) error {
	if f.createPayslipFn != nil {
		return f.createPayslipFn(ctx, slip)
	}
	return nil
}

func (f *fakePayrollRepository) DeletePayslipsByRun(ctx context.Context, runID string) error {
	if f.deletePayslipsFn != nil {
		return f.deletePayslipsFn(ctx, runID)
	}
	return nil
}

func (f *fakePayrollRepository) FindPayslipsByRun(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	if f.findPayslipsByRunFn != nil {
		return f.findPayslipsByRunFn(ctx, runID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindPayslipByID(ctx context.Context, id string) (*payroll.Payslip, error) {
	if f.findPayslipByIDFn != nil {
		return f.findPayslipByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindPayslipsByEmployee(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	if f.findPayslipsByEmpFn != nil {
		return f.findPayslipsByEmpFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) UpdatePayslip(ctx context.Context, slip *payroll.Payslip) error {
	if f.updatePayslipFn != nil {
		return f.updatePayslipFn(ctx, slip)
	}
	return nil
}

func (f *fakePayrollRepository) CreateLoan(ctx context.Context, loan *payroll.Loan) error {
	if f.createLoanFn != nil {
		return f.createLoanFn(ctx, loan)
	}
	return nil
}

func (f *fakePayrollRepository) FindLoansByEmployee(ctx context.Context, employeeID string) ([]payroll.Loan, error) {
	if f.findLoansFn != nil {
		return f.findLoansFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindActiveLoansByEmployee(ctx context.Context, employeeID string) ([]payroll.Loan, error) {
	if f.findActiveLoansFn != nil {
		return f.findActiveLoansFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) UpdateLoan(ctx context.Context, loan *payroll.Loan) error {
	if f.updateLoanFn != nil {
		return f.updateLoanFn(ctx, loan)
	}
	return nil
}

func (f *fakePayrollRepository) CreateOtherDeduction(ctx context.Context, deduction *payroll.OtherDeduction) error {
	if f.createDeductionFn != nil {
		return f.createDeductionFn(ctx, deduction)
	}
	return nil
}

func (f *fakePayrollRepository) FindDeductionsByEmployee(ctx context.Context, employeeID string) ([]payroll.OtherDeduction, error) {
	if f.findDeductionsFn != nil {
		return f.findDeductionsFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindActiveDeductionsByEmployee(ctx context.Context, employeeID string) ([]payroll.OtherDeduction, error) {
	if f.findActiveDeductionFn != nil {
		return f.findActiveDeductionFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) UpdateOtherDeduction(ctx context.Context, deduction *payroll.OtherDeduction) error {
	if f.updateDeductionFn != nil {
		return f.updateDeductionFn(ctx, deduction)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findAllFn func(ctx context.Context, activeOnly bool) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, activeOnly)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepository) HasPayslips(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (f *fakeEmployeeRepository) CreateGrade(ctx context.Context, g *employee.SalaryGrade) error {
	return nil
}

func (f *fakeEmployeeRepository) FindAllGrades(ctx context.Context) ([]employee.SalaryGrade, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindGradeByID(ctx context.Context, id string) (*employee.SalaryGrade, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) GradeIsReferenced(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (f *fakeEmployeeRepository) DeleteGrade(ctx context.Context, id string) error { return nil }

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeSummarizer struct {
	summarizeFn func(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error)
}

func (f *fakeSummarizer) Summarize(ctx context.Context, employeeID string, start, end time.Time) (attendance.Summary, error) {
	if f.summarizeFn != nil {
		return f.summarizeFn(ctx, employeeID, start, end)
	}
	return attendance.Summary{OvertimeHours: decimal.Zero}, nil
}

type fakeContributionResolver struct {
	resolveFn func(ctx context.Context, monthlyEarnings decimal.Decimal) (contribution.Breakdown, error)
	taxFn     func(ctx context.Context, monthlyTaxable decimal.Decimal) (decimal.Decimal, error)
}

func (f *fakeContributionResolver) Resolve(ctx context.Context, monthlyEarnings decimal.Decimal) (contribution.Breakdown, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, monthlyEarnings)
	}
	return zeroBreakdown(), nil
}

func (f *fakeContributionResolver) MonthlyWithholdingTax(ctx context.Context, monthlyTaxable decimal.Decimal) (decimal.Decimal, error) {
	if f.taxFn != nil {
		return f.taxFn(ctx, monthlyTaxable)
	}
	return decimal.Zero, nil
}

func zeroBreakdown() contribution.Breakdown {
	return contribution.Breakdown{
		SocialInsurance: contribution.SocialInsuranceResult{
			EmployeeShare:      decimal.Zero,
			EmployerShare:      decimal.Zero,
			SupplementaryShare: decimal.Zero,
			Total:              decimal.Zero,
		},
		HealthInsurance: contribution.SharedContributionResult{
			EmployeeShare: decimal.Zero,
			EmployerShare: decimal.Zero,
			Total:         decimal.Zero,
		},
		HousingFund: contribution.SharedContributionResult{
			EmployeeShare: decimal.Zero,
			EmployerShare: decimal.Zero,
			Total:         decimal.Zero,
		},
	}
}
