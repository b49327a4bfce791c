package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusReview    = "REVIEW"
	StatusApproved  = "APPROVED"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

// allowedTransitions is the closed set of run status moves. PAID and
// CANCELLED are terminal.
var allowedTransitions = map[string][]string{
	StatusDraft:    {StatusReview, StatusCancelled},
	StatusReview:   {StatusApproved, StatusCancelled},
	StatusApproved: {StatusPaid, StatusCancelled},
}

func isAllowedStatusTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Service interface {
	CreateRun(ctx context.Context, actorID string, req CreateRunRequest) (RunResponse, []string, error)
	GetAllRuns(ctx context.Context) ([]RunResponse, error)
	GetRun(ctx context.Context, id string) (RunDetailResponse, error)
	Recalculate(ctx context.Context, actorID, id string) (RunResponse, []string, error)
	SubmitForReview(ctx context.Context, actorID, id string) (RunResponse, error)
	Approve(ctx context.Context, actorID, id string) (RunResponse, error)
	MarkPaid(ctx context.Context, actorID, id string) (RunResponse, error)
	Cancel(ctx context.Context, actorID, id string) (RunResponse, error)

	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	GetPayslipsByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error)

	CreateLoan(ctx context.Context, req CreateLoanRequest) (LoanResponse, error)
	GetLoansByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error)
	CreateOtherDeduction(ctx context.Context, req CreateDeductionRequest) (DeductionResponse, error)
	GetDeductionsByEmployee(ctx context.Context, employeeID string) ([]DeductionResponse, error)

	GenerateBankFile(ctx context.Context, runID, bank string) (BankFile, error)
	ExportRunCSV(ctx context.Context, runID string) (BankFile, error)
	GeneratePayslipPDF(ctx context.Context, payslipID string) (BankFile, error)
	GenerateEmployeePayslipPDF(ctx context.Context, employeeID, payslipID string) (BankFile, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  employee.Repository
	calculator *Calculator
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	calculator *Calculator,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		calculator: calculator,
		outbox:     outbox,
		logger:     l,
	}
}

// CreateRun opens a DRAFT run and computes one payslip per active
// employee. A failure for one employee is reported as a warning and
// skipped, never aborting the batch.
func (s *service) CreateRun(ctx context.Context, actorID string, req CreateRunRequest) (RunResponse, []string, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, nil, payrollerrors.ErrInvalidActorID
	}

	periodStart, periodEnd, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return RunResponse{}, nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run := &PayrollRun{
		ID:          uuid.New(),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      StatusDraft,
		Notes:       req.Notes,
		CreatedBy:   actorUUID,
	}
	if err := qtx.CreateRun(ctx, run); err != nil {
		return RunResponse{}, nil, err
	}

	warnings, err := s.generatePayslips(ctx, qtx, run)
	if err != nil {
		return RunResponse{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, nil, err
	}

	return mapRunToResponse(*run), warnings, nil
}

// generatePayslips runs the calculator for every active employee and
// persists the results against the run.
func (s *service) generatePayslips(ctx context.Context, qtx Repository, run *PayrollRun) ([]string, error) {
	staff, err := s.employees.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, emp := range staff {
		slip, err := s.calculator.ComputePayslip(ctx, qtx, emp, run.PeriodStart, run.PeriodEnd)
		if err != nil {
			s.logger.Warn("payslip calculation failed, employee skipped",
				zap.String("run_id", run.ID.String()),
				zap.String("employee_id", emp.ID.String()),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("employee %s (%s): %v", emp.EmployeeNo, emp.FullName(), err))
			continue
		}

		slip.PayrollRunID = run.ID
		if err := qtx.CreatePayslip(ctx, slip); err != nil {
			return nil, err
		}
	}
	return warnings, nil
}

func (s *service) GetAllRuns(ctx context.Context) ([]RunResponse, error) {
	runs, err := s.repo.FindAllRuns(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]RunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapRunToResponse(run)
	}
	return resp, nil
}

func (s *service) GetRun(ctx context.Context, id string) (RunDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RunDetailResponse{}, payrollerrors.ErrInvalidRunID
	}

	run, err := s.repo.FindRunByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunDetailResponse{}, payrollerrors.ErrRunNotFound
		}
		return RunDetailResponse{}, err
	}

	slips, err := s.repo.FindPayslipsByRun(ctx, id)
	if err != nil {
		return RunDetailResponse{}, err
	}

	detail := RunDetailResponse{
		RunResponse: mapRunToResponse(*run),
		Payslips:    make([]PayslipResponse, len(slips)),
	}
	for i, slip := range slips {
		detail.Payslips[i] = mapPayslipToResponse(slip)
	}
	return detail, nil
}

// Recalculate replaces every payslip of a DRAFT run from scratch.
func (s *service) Recalculate(ctx context.Context, actorID, id string) (RunResponse, []string, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return RunResponse{}, nil, payrollerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return RunResponse{}, nil, payrollerrors.ErrInvalidRunID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunResponse{}, nil, payrollerrors.ErrRunNotFound
		}
		return RunResponse{}, nil, err
	}
	if run.Status != StatusDraft {
		return RunResponse{}, nil, payrollerrors.ErrRunNotEditable
	}

	if err := qtx.DeletePayslipsByRun(ctx, id); err != nil {
		return RunResponse{}, nil, err
	}

	warnings, err := s.generatePayslips(ctx, qtx, run)
	if err != nil {
		return RunResponse{}, nil, err
	}

	if err := qtx.UpdateRun(ctx, run); err != nil {
		return RunResponse{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, nil, err
	}
	return mapRunToResponse(*run), warnings, nil
}

func (s *service) SubmitForReview(ctx context.Context, actorID, id string) (RunResponse, error) {
	return s.transition(ctx, actorID, id, StatusReview)
}

func (s *service) Approve(ctx context.Context, actorID, id string) (RunResponse, error) {
	return s.transition(ctx, actorID, id, StatusApproved)
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (RunResponse, error) {
	return s.transition(ctx, actorID, id, StatusCancelled)
}

// transition moves a run to a non-PAID status, recording who and when.
func (s *service) transition(ctx context.Context, actorID, id, target string) (RunResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidRunID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunResponse{}, payrollerrors.ErrRunNotFound
		}
		return RunResponse{}, err
	}

	if !isAllowedStatusTransition(run.Status, target) {
		return RunResponse{}, payrollerrors.ErrInvalidTransition
	}

	now := time.Now()
	run.Status = target
	switch target {
	case StatusReview:
		run.ReviewedBy = &actorUUID
		run.ReviewedAt = &now
	case StatusApproved:
		run.ApprovedBy = &actorUUID
		run.ApprovedAt = &now
	case StatusCancelled:
		run.CancelledBy = &actorUUID
		run.CancelledAt = &now
	}

	if err := qtx.UpdateRun(ctx, run); err != nil {
		return RunResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}
	return mapRunToResponse(*run), nil
}

// MarkPaid performs the one and only balance-mutating transition. For
// every payslip not yet deposited it flags the deposit, distributes
// the loan deduction across the employee's loans, and emits a paid
// event through the outbox — all in one transaction. A run that is
// already PAID is rejected before any state changes.
func (s *service) MarkPaid(ctx context.Context, actorID, id string) (RunResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidRunID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RunResponse{}, payrollerrors.ErrRunNotFound
		}
		return RunResponse{}, err
	}

	if run.Status == StatusPaid {
		return RunResponse{}, payrollerrors.ErrRunAlreadyPaid
	}
	if !isAllowedStatusTransition(run.Status, StatusPaid) {
		return RunResponse{}, payrollerrors.ErrInvalidTransition
	}

	slips, err := qtx.FindPayslipsByRun(ctx, id)
	if err != nil {
		return RunResponse{}, err
	}

	now := time.Now()
	totalNet := decimal.Zero

	for i := range slips {
		slip := &slips[i]
		totalNet = totalNet.Add(slip.NetPay)
		if slip.SalaryDeposited {
			continue
		}

		if slip.LoanDeductions.IsPositive() {
			loans, err := qtx.FindActiveLoansByEmployee(ctx, slip.EmployeeID.String())
			if err != nil {
				return RunResponse{}, err
			}
			for _, loan := range DistributeLoanPayment(loans, slip.LoanDeductions) {
				loan := loan
				if err := qtx.UpdateLoan(ctx, &loan); err != nil {
					return RunResponse{}, err
				}
			}
		}

		slip.SalaryDeposited = true
		slip.DepositDate = &now
		if err := qtx.UpdatePayslip(ctx, slip); err != nil {
			return RunResponse{}, err
		}
	}

	run.Status = StatusPaid
	run.PaidBy = &actorUUID
	run.PaidAt = &now
	if err := qtx.UpdateRun(ctx, run); err != nil {
		return RunResponse{}, err
	}

	if err := s.enqueueRunPaidEvent(ctx, tx, run, totalNet); err != nil {
		return RunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	s.logger.Info("payroll run paid",
		zap.String("run_id", run.ID.String()),
		zap.Int("payslips", len(slips)),
		zap.String("total_net_pay", totalNet.StringFixed(2)),
	)
	return mapRunToResponse(*run), nil
}

func (s *service) enqueueRunPaidEvent(ctx context.Context, tx *sql.Tx, run *PayrollRun, totalNet decimal.Decimal) error {
	event := events.PayrollRunPaidEvent{
		EventType:   "payroll.run.paid",
		RunID:       run.ID.String(),
		PeriodStart: run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   run.PeriodEnd.Format("2006-01-02"),
		TotalNetPay: totalNet.StringFixed(2),
		PaidBy:      run.PaidBy.String(),
		OccurredAt:  time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_run",
		AggregateID:   run.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollRunPaidTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, outboxEvent)
}

func (s *service) GetPayslip(ctx context.Context, id string) (PayslipResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidPayslipID
	}

	slip, err := s.repo.FindPayslipByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}
	return mapPayslipToResponse(*slip), nil
}

func (s *service) GetPayslipsByEmployee(ctx context.Context, employeeID string) ([]PayslipResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	slips, err := s.repo.FindPayslipsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, len(slips))
	for i, slip := range slips {
		resp[i] = mapPayslipToResponse(slip)
	}
	return resp, nil
}

func (s *service) CreateLoan(ctx context.Context, req CreateLoanRequest) (LoanResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LoanResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	principal, err := parsePositiveAmount(req.Principal)
	if err != nil {
		return LoanResponse{}, err
	}
	monthly, err := parsePositiveAmount(req.MonthlyDeduction)
	if err != nil {
		return LoanResponse{}, err
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LoanResponse{}, payrollerrors.ErrInvalidDateFormat
	}

	loan := &Loan{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		LoanType:         req.LoanType,
		Principal:        principal,
		MonthlyDeduction: monthly,
		RemainingBalance: principal,
		StartDate:        startDate,
		IsActive:         true,
	}
	if err := s.repo.CreateLoan(ctx, loan); err != nil {
		return LoanResponse{}, err
	}
	return mapLoanToResponse(*loan), nil
}

func (s *service) GetLoansByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	loans, err := s.repo.FindLoansByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]LoanResponse, len(loans))
	for i, loan := range loans {
		resp[i] = mapLoanToResponse(loan)
	}
	return resp, nil
}

func (s *service) CreateOtherDeduction(ctx context.Context, req CreateDeductionRequest) (DeductionResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DeductionResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	amount, err := parsePositiveAmount(req.Amount)
	if err != nil {
		return DeductionResponse{}, err
	}

	deduction := &OtherDeduction{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Description: req.Description,
		Amount:      amount,
		IsRecurring: req.IsRecurring,
		IsActive:    true,
	}
	if err := s.repo.CreateOtherDeduction(ctx, deduction); err != nil {
		return DeductionResponse{}, err
	}
	return mapDeductionToResponse(*deduction), nil
}

func (s *service) GetDeductionsByEmployee(ctx context.Context, employeeID string) ([]DeductionResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	rows, err := s.repo.FindDeductionsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]DeductionResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapDeductionToResponse(row)
	}
	return resp, nil
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	periodStart, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	periodEnd, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	if periodStart.After(periodEnd) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateRange
	}
	return periodStart, periodEnd, nil
}

func parsePositiveAmount(v string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(v)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, payrollerrors.ErrInvalidAmount
	}
	return amount.Round(2), nil
}

func mapRunToResponse(run PayrollRun) RunResponse {
	return RunResponse{
		ID:          run.ID.String(),
		PeriodStart: run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   run.PeriodEnd.Format("2006-01-02"),
		Status:      run.Status,
		Notes:       run.Notes,
		CreatedBy:   run.CreatedBy.String(),
		ReviewedBy:  fmtUUIDPtr(run.ReviewedBy),
		ReviewedAt:  fmtTimePtr(run.ReviewedAt),
		ApprovedBy:  fmtUUIDPtr(run.ApprovedBy),
		ApprovedAt:  fmtTimePtr(run.ApprovedAt),
		PaidBy:      fmtUUIDPtr(run.PaidBy),
		PaidAt:      fmtTimePtr(run.PaidAt),
		CancelledBy: fmtUUIDPtr(run.CancelledBy),
		CancelledAt: fmtTimePtr(run.CancelledAt),
		CreatedAt:   run.CreatedAt.Format(time.RFC3339),
	}
}

func mapPayslipToResponse(slip Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:           slip.ID.String(),
		PayrollRunID: slip.PayrollRunID.String(),
		EmployeeID:   slip.EmployeeID.String(),

		DaysWorked:    slip.DaysWorked,
		OvertimeHours: slip.OvertimeHours.StringFixed(2),

		GrossPay:    slip.GrossPay.StringFixed(2),
		OvertimePay: slip.OvertimePay.StringFixed(2),

		SocialInsuranceEE:   slip.SocialInsuranceEE.StringFixed(2),
		SocialInsuranceER:   slip.SocialInsuranceER.StringFixed(2),
		SocialInsuranceSupp: slip.SocialInsuranceSupp.StringFixed(2),
		HealthInsuranceEE:   slip.HealthInsuranceEE.StringFixed(2),
		HealthInsuranceER:   slip.HealthInsuranceER.StringFixed(2),
		HousingFundEE:       slip.HousingFundEE.StringFixed(2),
		HousingFundER:       slip.HousingFundER.StringFixed(2),
		WithholdingTax:      slip.WithholdingTax.StringFixed(2),

		LoanDeductions:  slip.LoanDeductions.StringFixed(2),
		OtherDeductions: slip.OtherDeductions.StringFixed(2),

		TotalEarnings:   slip.TotalEarnings().StringFixed(2),
		TotalDeductions: slip.TotalDeductions().StringFixed(2),
		NetPay:          slip.NetPay.StringFixed(2),

		BankFileGenerated: slip.BankFileGenerated,
		BankFileSent:      slip.BankFileSent,
		SalaryDeposited:   slip.SalaryDeposited,
	}

	if slip.DepositDate != nil {
		v := slip.DepositDate.Format("2006-01-02")
		resp.DepositDate = &v
	}
	if slip.Employee != nil {
		resp.EmployeeNo = slip.Employee.EmployeeNo
		resp.EmployeeName = slip.Employee.FullName()
	}
	return resp
}

func mapLoanToResponse(loan Loan) LoanResponse {
	return LoanResponse{
		ID:               loan.ID.String(),
		EmployeeID:       loan.EmployeeID.String(),
		LoanType:         loan.LoanType,
		Principal:        loan.Principal.StringFixed(2),
		MonthlyDeduction: loan.MonthlyDeduction.StringFixed(2),
		RemainingBalance: loan.RemainingBalance.StringFixed(2),
		StartDate:        loan.StartDate.Format("2006-01-02"),
		IsActive:         loan.IsActive,
	}
}

func mapDeductionToResponse(row OtherDeduction) DeductionResponse {
	return DeductionResponse{
		ID:          row.ID.String(),
		EmployeeID:  row.EmployeeID.String(),
		Description: row.Description,
		Amount:      row.Amount.StringFixed(2),
		IsRecurring: row.IsRecurring,
		IsActive:    row.IsActive,
	}
}
