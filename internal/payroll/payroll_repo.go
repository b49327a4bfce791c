package payroll

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateRun(ctx context.Context, run *PayrollRun) error
	FindAllRuns(ctx context.Context) ([]PayrollRun, error)
	FindRunByID(ctx context.Context, id string) (*PayrollRun, error)
	UpdateRun(ctx context.Context, run *PayrollRun) error

	CreatePayslip(ctx context.Context, slip *Payslip) error
	DeletePayslipsByRun(ctx context.Context, runID string) error
	FindPayslipsByRun(ctx context.Context, runID string) ([]Payslip, error)
	FindPayslipByID(ctx context.Context, id string) (*Payslip, error)
	FindPayslipsByEmployee(ctx context.Context, employeeID string) ([]Payslip, error)
	UpdatePayslip(ctx context.Context, slip *Payslip) error

	CreateLoan(ctx context.Context, loan *Loan) error
	FindLoansByEmployee(ctx context.Context, employeeID string) ([]Loan, error)
	FindActiveLoansByEmployee(ctx context.Context, employeeID string) ([]Loan, error)
	UpdateLoan(ctx context.Context, loan *Loan) error

	CreateOtherDeduction(ctx context.Context, deduction *OtherDeduction) error
	FindDeductionsByEmployee(ctx context.Context, employeeID string) ([]OtherDeduction, error)
	FindActiveDeductionsByEmployee(ctx context.Context, employeeID string) ([]OtherDeduction, error)
	UpdateOtherDeduction(ctx context.Context, deduction *OtherDeduction) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction so that payslip
// replacement and loan-balance writes commit or roll back as one unit.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: db}
}

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) FindAllRuns(ctx context.Context) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Order("period_start DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindRunByID(ctx context.Context, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) UpdateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *repository) CreatePayslip(ctx context.Context, slip *Payslip) error {
	return r.db.WithContext(ctx).Create(slip).Error
}

func (r *repository) DeletePayslipsByRun(ctx context.Context, runID string) error {
	return r.db.WithContext(ctx).
		Delete(&Payslip{}, "payroll_run_id = ?", runID).Error
}

func (r *repository) FindPayslipsByRun(ctx context.Context, runID string) ([]Payslip, error) {
	var slips []Payslip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.SalaryGrade").
		Where("payroll_run_id = ?", runID).
		Order("employee_id ASC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) FindPayslipByID(ctx context.Context, id string) (*Payslip, error) {
	var slip Payslip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.SalaryGrade").
		First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) FindPayslipsByEmployee(ctx context.Context, employeeID string) ([]Payslip, error) {
	var slips []Payslip
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) UpdatePayslip(ctx context.Context, slip *Payslip) error {
	return r.db.WithContext(ctx).Save(slip).Error
}

func (r *repository) CreateLoan(ctx context.Context, loan *Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *repository) FindLoansByEmployee(ctx context.Context, employeeID string) ([]Loan, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date ASC").
		Find(&loans).Error
	return loans, err
}

// FindActiveLoansByEmployee orders by start date so payments hit the
// oldest loan first.
func (r *repository) FindActiveLoansByEmployee(ctx context.Context, employeeID string) ([]Loan, error) {
	var loans []Loan
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND is_active = ?", employeeID, true).
		Order("start_date ASC").
		Find(&loans).Error
	return loans, err
}

func (r *repository) UpdateLoan(ctx context.Context, loan *Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

func (r *repository) CreateOtherDeduction(ctx context.Context, deduction *OtherDeduction) error {
	return r.db.WithContext(ctx).Create(deduction).Error
}

func (r *repository) FindDeductionsByEmployee(ctx context.Context, employeeID string) ([]OtherDeduction, error) {
	var rows []OtherDeduction
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindActiveDeductionsByEmployee(ctx context.Context, employeeID string) ([]OtherDeduction, error) {
	var rows []OtherDeduction
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND is_active = ?", employeeID, true).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateOtherDeduction(ctx context.Context, deduction *OtherDeduction) error {
	return r.db.WithContext(ctx).Save(deduction).Error
}
