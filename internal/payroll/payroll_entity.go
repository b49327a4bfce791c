package payroll

import (
	"time"

	"go-payroll/internal/employee"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan is a cash advance repaid through payroll. RemainingBalance is
// mutated only when a run is marked paid, never during calculation.
type Loan struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	LoanType         string          `gorm:"type:varchar(50);not null"`
	Principal        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MonthlyDeduction decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RemainingBalance decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StartDate        time.Time       `gorm:"type:date;not null"`
	IsActive         bool            `gorm:"not null;default:true;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Loan) TableName() string {
	return "loans"
}

// OtherDeduction is a recurring or one-time deduction. One-time rows
// (IsRecurring=false) are deactivated the first time a calculation
// applies them.
type OtherDeduction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsRecurring bool            `gorm:"not null;default:false"`
	IsActive    bool            `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OtherDeduction) TableName() string {
	return "other_deductions"
}

type PayrollRun struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodStart time.Time  `gorm:"type:date;not null"`
	PeriodEnd   time.Time  `gorm:"type:date;not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Notes       string     `gorm:"type:text"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt  *time.Time
	PaidBy      *uuid.UUID `gorm:"type:uuid"`
	PaidAt      *time.Time
	CancelledBy *uuid.UUID `gorm:"type:uuid"`
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// Payslip is one employee's breakdown within a run. Employer shares
// are carried for reporting but are not deductions from pay.
type Payslip struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollRunID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_run_employee"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_run_employee"`

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID;references:ID"`

	DaysWorked    int             `gorm:"not null"`
	OvertimeHours decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	GrossPay    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	OvertimePay decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	SocialInsuranceEE   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	SocialInsuranceER   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	SocialInsuranceSupp decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	HealthInsuranceEE   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	HealthInsuranceER   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	HousingFundEE       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	HousingFundER       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	WithholdingTax      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	LoanDeductions  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	NetPay decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	BankFileGenerated bool `gorm:"not null;default:false"`
	BankFileSent      bool `gorm:"not null;default:false"`
	SalaryDeposited   bool `gorm:"not null;default:false"`
	DepositDate       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}

func (p Payslip) TotalEarnings() decimal.Decimal {
	return p.GrossPay.Add(p.OvertimePay)
}

// TotalDeductions sums the employee-side line items.
func (p Payslip) TotalDeductions() decimal.Decimal {
	return p.SocialInsuranceEE.
		Add(p.HealthInsuranceEE).
		Add(p.HousingFundEE).
		Add(p.WithholdingTax).
		Add(p.LoanDeductions).
		Add(p.OtherDeductions)
}
