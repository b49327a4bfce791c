package payroll_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func exportRun(runID uuid.UUID) *payroll.PayrollRun {
	return &payroll.PayrollRun{
		ID:          runID,
		Status:      payroll.StatusApproved,
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func exportSlip(runID uuid.UUID, bankName, account, net string, deposited bool) payroll.Payslip {
	return payroll.Payslip{
		ID:              uuid.New(),
		PayrollRunID:    runID,
		EmployeeID:      uuid.New(),
		NetPay:          dec(net),
		SalaryDeposited: deposited,
		Employee: &employee.Employee{
			EmployeeNo:  "EMP-010",
			FirstName:   "Jose",
			LastName:    "Reyes",
			BankName:    bankName,
			BankAccount: account,
		},
	}
}

func TestGenerateBankFile_PipeDelimitedForBDO(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	runID := uuid.New()
	deps.repo.findRunByIDFn = func(ctx context.Context, id string) (*payroll.PayrollRun, error) {
		return exportRun(runID), nil
	}
	deps.repo.findPayslipsByRunFn = func(ctx context.Context, id string) ([]payroll.Payslip, error) {
		return []payroll.Payslip{
			exportSlip(runID, "BDO Unibank", "001122334455", "18191.67", false),
			exportSlip(runID, "BPI", "998877665544", "15000.00", false),
		}, nil
	}

	var flagged []payroll.Payslip
	deps.repo.updatePayslipFn = func(ctx context.Context, slip *payroll.Payslip) error {
		flagged = append(flagged, *slip)
		return nil
	}

	file, err := deps.service.GenerateBankFile(ctx, runID.String(), "BDO")

	assert.NoError(t, err)
	assert.Contains(t, file.Filename, "bdo")

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	assert.Len(t, lines, 2, "header plus the single BDO payslip")
	assert.Contains(t, lines[1], "EMP-010|Reyes, Jose|BDO Unibank|001122334455|18191.67|PAYROLL-20260331")

	assert.Len(t, flagged, 1)
	assert.True(t, flagged[0].BankFileGenerated)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestGenerateBankFile_CommaDefaultIncludesAllUndeposited(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	runID := uuid.New()
	deps.repo.findRunByIDFn = func(ctx context.Context, id string) (*payroll.PayrollRun, error) {
		return exportRun(runID), nil
	}
	deps.repo.findPayslipsByRunFn = func(ctx context.Context, id string) ([]payroll.Payslip, error) {
		return []payroll.Payslip{
			exportSlip(runID, "BPI", "998877665544", "15000.00", false),
			exportSlip(runID, "Metrobank", "556677889900", "20000.00", false),
			exportSlip(runID, "BPI", "111122223333", "9000.00", true), // already deposited
		}, nil
	}
	deps.repo.updatePayslipFn = func(ctx context.Context, slip *payroll.Payslip) error {
		return nil
	}

	file, err := deps.service.GenerateBankFile(ctx, runID.String(), "")

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	assert.Len(t, lines, 3, "header plus the two undeposited payslips")
	assert.Contains(t, lines[1], ",")
	assert.NotContains(t, lines[1], "|")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestGenerateBankFile_NothingEligible(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	runID := uuid.New()
	deps.repo.findRunByIDFn = func(ctx context.Context, id string) (*payroll.PayrollRun, error) {
		return exportRun(runID), nil
	}
	deps.repo.findPayslipsByRunFn = func(ctx context.Context, id string) ([]payroll.Payslip, error) {
		return []payroll.Payslip{
			exportSlip(runID, "BPI", "998877665544", "15000.00", true),
		}, nil
	}

	_, err := deps.service.GenerateBankFile(ctx, runID.String(), "")

	assert.ErrorIs(t, err, payrollerrors.ErrNothingToExport)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestExportRunCSV_OneRowPerPayslip(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	runID := uuid.New()
	deps.repo.findRunByIDFn = func(ctx context.Context, id string) (*payroll.PayrollRun, error) {
		return exportRun(runID), nil
	}
	slip := exportSlip(runID, "BPI", "998877665544", "15000.00", false)
	slip.GrossPay = dec("16000")
	slip.WithholdingTax = dec("1000")
	deps.repo.findPayslipsByRunFn = func(ctx context.Context, id string) ([]payroll.Payslip, error) {
		return []payroll.Payslip{slip}, nil
	}

	file, err := deps.service.ExportRunCSV(ctx, runID.String())

	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Net Pay")
	assert.Contains(t, lines[1], "16000.00")
	assert.Contains(t, lines[1], "1000.00")
}

func TestGeneratePayslipPDF_ContainsBreakdown(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	runID := uuid.New()
	slip := exportSlip(runID, "BPI", "998877665544", "15000.00", false)
	slip.GrossPay = dec("16000")
	slip.DaysWorked = 20

	deps.repo.findPayslipByIDFn = func(ctx context.Context, id string) (*payroll.Payslip, error) {
		return &slip, nil
	}
	deps.repo.findRunByIDFn = func(ctx context.Context, id string) (*payroll.PayrollRun, error) {
		return exportRun(runID), nil
	}

	file, err := deps.service.GeneratePayslipPDF(ctx, slip.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)

	content := string(file.Content)
	assert.True(t, strings.HasPrefix(content, "%PDF-1.4"))
	assert.Contains(t, content, "Reyes, Jose")
	assert.Contains(t, content, "NET PAY")
	assert.Contains(t, content, "15000.00")
}

func TestGenerateEmployeePayslipPDF_WrongEmployeeRejected(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	runID := uuid.New()
	slip := exportSlip(runID, "BPI", "998877665544", "15000.00", false)

	deps.repo.findPayslipByIDFn = func(ctx context.Context, id string) (*payroll.Payslip, error) {
		return &slip, nil
	}

	_, err := deps.service.GenerateEmployeePayslipPDF(ctx, uuid.NewString(), slip.ID.String())

	assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotFound)
}

func TestGenerateEmployeePayslipPDF_OwnerAllowed(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	runID := uuid.New()
	slip := exportSlip(runID, "BPI", "998877665544", "15000.00", false)

	deps.repo.findPayslipByIDFn = func(ctx context.Context, id string) (*payroll.Payslip, error) {
		return &slip, nil
	}
	deps.repo.findRunByIDFn = func(ctx context.Context, id string) (*payroll.PayrollRun, error) {
		return exportRun(runID), nil
	}

	file, err := deps.service.GenerateEmployeePayslipPDF(ctx, slip.EmployeeID.String(), slip.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
}
