package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BankFile is a generated download: bank-transfer file, spreadsheet
// export or payslip PDF.
type BankFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// bankFileDelimiter matches the receiving bank by name substring.
// BDO's upload format is pipe-delimited; everything else takes plain
// commas.
func bankFileDelimiter(bank string) rune {
	if strings.Contains(strings.ToUpper(bank), "BDO") {
		return '|'
	}
	return ','
}

// GenerateBankFile writes the transfer rows for every payslip in the
// run that has not yet been deposited, optionally filtered to one bank
// by name substring. Included payslips are flagged as generated so a
// later export can tell them apart.
func (s *service) GenerateBankFile(ctx context.Context, runID, bank string) (BankFile, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return BankFile{}, payrollerrors.ErrInvalidRunID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BankFile{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByID(ctx, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BankFile{}, payrollerrors.ErrRunNotFound
		}
		return BankFile{}, err
	}

	slips, err := qtx.FindPayslipsByRun(ctx, runID)
	if err != nil {
		return BankFile{}, err
	}

	reference := fmt.Sprintf("PAYROLL-%s", run.PeriodEnd.Format("20060102"))

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = bankFileDelimiter(bank)

	header := []string{"Employee No", "Employee Name", "Bank Name", "Account Number", "Amount", "Reference"}
	if err := w.Write(header); err != nil {
		return BankFile{}, err
	}

	included := 0
	for i := range slips {
		slip := &slips[i]
		if slip.SalaryDeposited || slip.Employee == nil {
			continue
		}
		if bank != "" && !strings.Contains(
			strings.ToUpper(slip.Employee.BankName),
			strings.ToUpper(bank),
		) {
			continue
		}

		record := []string{
			slip.Employee.EmployeeNo,
			slip.Employee.FullName(),
			slip.Employee.BankName,
			slip.Employee.BankAccount,
			slip.NetPay.StringFixed(2),
			reference,
		}
		if err := w.Write(record); err != nil {
			return BankFile{}, err
		}

		slip.BankFileGenerated = true
		if err := qtx.UpdatePayslip(ctx, slip); err != nil {
			return BankFile{}, err
		}
		included++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return BankFile{}, err
	}
	if included == 0 {
		return BankFile{}, payrollerrors.ErrNothingToExport
	}

	if err := tx.Commit(); err != nil {
		return BankFile{}, err
	}

	s.logger.Info("bank transfer file generated",
		zap.String("run_id", runID),
		zap.String("bank", bank),
		zap.Int("payslips", included),
	)

	name := fmt.Sprintf("bank-transfer-%s.csv", run.PeriodEnd.Format("2006-01-02"))
	if bank != "" {
		name = fmt.Sprintf("bank-transfer-%s-%s.csv", strings.ToLower(bank), run.PeriodEnd.Format("2006-01-02"))
	}
	return BankFile{
		Filename:    name,
		ContentType: "text/csv",
		Content:     buf.Bytes(),
	}, nil
}

// ExportRunCSV dumps every payslip of a run as one spreadsheet row
// with plain decimal values. Read-only.
func (s *service) ExportRunCSV(ctx context.Context, runID string) (BankFile, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return BankFile{}, payrollerrors.ErrInvalidRunID
	}

	run, err := s.repo.FindRunByID(ctx, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BankFile{}, payrollerrors.ErrRunNotFound
		}
		return BankFile{}, err
	}

	slips, err := s.repo.FindPayslipsByRun(ctx, runID)
	if err != nil {
		return BankFile{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Employee No", "Employee Name", "Days Worked", "Overtime Hours",
		"Gross Pay", "Overtime Pay", "Total Earnings",
		"Social Insurance EE", "Health Insurance EE", "Housing Fund EE",
		"Withholding Tax", "Loan Deductions", "Other Deductions",
		"Total Deductions", "Net Pay",
	}
	if err := w.Write(header); err != nil {
		return BankFile{}, err
	}

	for _, slip := range slips {
		employeeNo, employeeName := "", ""
		if slip.Employee != nil {
			employeeNo = slip.Employee.EmployeeNo
			employeeName = slip.Employee.FullName()
		}

		record := []string{
			employeeNo,
			employeeName,
			fmt.Sprintf("%d", slip.DaysWorked),
			slip.OvertimeHours.StringFixed(2),
			slip.GrossPay.StringFixed(2),
			slip.OvertimePay.StringFixed(2),
			slip.TotalEarnings().StringFixed(2),
			slip.SocialInsuranceEE.StringFixed(2),
			slip.HealthInsuranceEE.StringFixed(2),
			slip.HousingFundEE.StringFixed(2),
			slip.WithholdingTax.StringFixed(2),
			slip.LoanDeductions.StringFixed(2),
			slip.OtherDeductions.StringFixed(2),
			slip.TotalDeductions().StringFixed(2),
			slip.NetPay.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return BankFile{}, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return BankFile{}, err
	}

	return BankFile{
		Filename:    fmt.Sprintf("payroll-%s.csv", run.PeriodEnd.Format("2006-01-02")),
		ContentType: "text/csv",
		Content:     buf.Bytes(),
	}, nil
}
