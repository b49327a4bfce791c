package payroll

import (
	"time"

	"github.com/google/uuid"
)

type CreateRunRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	Notes       string `json:"notes"`
}

type CreateLoanRequest struct {
	EmployeeID       string `json:"employee_id" binding:"required,uuid"`
	LoanType         string `json:"loan_type" binding:"required"`
	Principal        string `json:"principal" binding:"required"`
	MonthlyDeduction string `json:"monthly_deduction" binding:"required"`
	StartDate        string `json:"start_date" binding:"required"`
}

type CreateDeductionRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	IsRecurring bool   `json:"is_recurring"`
}

type RunResponse struct {
	ID          string  `json:"id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes,omitempty"`
	CreatedBy   string  `json:"created_by"`
	ReviewedBy  *string `json:"reviewed_by,omitempty"`
	ReviewedAt  *string `json:"reviewed_at,omitempty"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	PaidBy      *string `json:"paid_by,omitempty"`
	PaidAt      *string `json:"paid_at,omitempty"`
	CancelledBy *string `json:"cancelled_by,omitempty"`
	CancelledAt *string `json:"cancelled_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type RunDetailResponse struct {
	RunResponse
	Payslips []PayslipResponse `json:"payslips"`
}

type PayslipResponse struct {
	ID           string `json:"id"`
	PayrollRunID string `json:"payroll_run_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeNo   string `json:"employee_no,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`

	DaysWorked    int    `json:"days_worked"`
	OvertimeHours string `json:"overtime_hours"`

	GrossPay    string `json:"gross_pay"`
	OvertimePay string `json:"overtime_pay"`

	SocialInsuranceEE   string `json:"social_insurance_ee"`
	SocialInsuranceER   string `json:"social_insurance_er"`
	SocialInsuranceSupp string `json:"social_insurance_supp"`
	HealthInsuranceEE   string `json:"health_insurance_ee"`
	HealthInsuranceER   string `json:"health_insurance_er"`
	HousingFundEE       string `json:"housing_fund_ee"`
	HousingFundER       string `json:"housing_fund_er"`
	WithholdingTax      string `json:"withholding_tax"`

	LoanDeductions  string `json:"loan_deductions"`
	OtherDeductions string `json:"other_deductions"`

	TotalEarnings   string `json:"total_earnings"`
	TotalDeductions string `json:"total_deductions"`
	NetPay          string `json:"net_pay"`

	BankFileGenerated bool    `json:"bank_file_generated"`
	BankFileSent      bool    `json:"bank_file_sent"`
	SalaryDeposited   bool    `json:"salary_deposited"`
	DepositDate       *string `json:"deposit_date,omitempty"`
}

type LoanResponse struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	LoanType         string `json:"loan_type"`
	Principal        string `json:"principal"`
	MonthlyDeduction string `json:"monthly_deduction"`
	RemainingBalance string `json:"remaining_balance"`
	StartDate        string `json:"start_date"`
	IsActive         bool   `json:"is_active"`
}

type DeductionResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	IsRecurring bool   `json:"is_recurring"`
	IsActive    bool   `json:"is_active"`
}

type DepositStatusResponse struct {
	PayslipID       string  `json:"payslip_id"`
	PeriodNetPay    string  `json:"net_pay"`
	SalaryDeposited bool    `json:"salary_deposited"`
	DepositDate     *string `json:"deposit_date,omitempty"`
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func fmtUUIDPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}
