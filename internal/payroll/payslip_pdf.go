package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratePayslipPDF renders one payslip as a single-page PDF with
// employee info, attendance summary, itemized earnings and deductions,
// and the net pay on its own emphasized line.
func (s *service) GeneratePayslipPDF(ctx context.Context, payslipID string) (BankFile, error) {
	if _, err := uuid.Parse(payslipID); err != nil {
		return BankFile{}, payrollerrors.ErrInvalidPayslipID
	}

	slip, err := s.repo.FindPayslipByID(ctx, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BankFile{}, payrollerrors.ErrPayslipNotFound
		}
		return BankFile{}, err
	}

	run, err := s.repo.FindRunByID(ctx, slip.PayrollRunID.String())
	if err != nil {
		return BankFile{}, err
	}

	content, err := buildPayslipPDF(payslipLines(slip, run))
	if err != nil {
		return BankFile{}, err
	}

	return BankFile{
		Filename:    fmt.Sprintf("payslip-%s.pdf", slip.ID),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// GenerateEmployeePayslipPDF is the self-service variant: the payslip
// must belong to the requesting employee, anything else reads as not found.
func (s *service) GenerateEmployeePayslipPDF(ctx context.Context, employeeID, payslipID string) (BankFile, error) {
	if _, err := uuid.Parse(payslipID); err != nil {
		return BankFile{}, payrollerrors.ErrInvalidPayslipID
	}

	slip, err := s.repo.FindPayslipByID(ctx, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BankFile{}, payrollerrors.ErrPayslipNotFound
		}
		return BankFile{}, err
	}
	if slip.EmployeeID.String() != employeeID {
		return BankFile{}, payrollerrors.ErrPayslipNotFound
	}

	return s.GeneratePayslipPDF(ctx, payslipID)
}

func payslipLines(slip *Payslip, run *PayrollRun) []string {
	employeeNo, employeeName := "-", "-"
	if slip.Employee != nil {
		employeeNo = slip.Employee.EmployeeNo
		employeeName = slip.Employee.FullName()
	}

	lines := []string{
		"PAYSLIP",
		fmt.Sprintf("Period: %s to %s",
			run.PeriodStart.Format("2006-01-02"),
			run.PeriodEnd.Format("2006-01-02")),
		fmt.Sprintf("Employee: %s (%s)", employeeName, employeeNo),
		"",
		fmt.Sprintf("Days Worked: %d    Overtime Hours: %s",
			slip.DaysWorked, slip.OvertimeHours.StringFixed(2)),
		"",
		"EARNINGS",
		fmt.Sprintf("  Gross Pay           %12s", slip.GrossPay.StringFixed(2)),
		fmt.Sprintf("  Overtime Pay        %12s", slip.OvertimePay.StringFixed(2)),
		fmt.Sprintf("  Total Earnings      %12s", slip.TotalEarnings().StringFixed(2)),
		"",
		"DEDUCTIONS",
		fmt.Sprintf("  Social Insurance    %12s", slip.SocialInsuranceEE.StringFixed(2)),
		fmt.Sprintf("  Health Insurance    %12s", slip.HealthInsuranceEE.StringFixed(2)),
		fmt.Sprintf("  Housing Fund        %12s", slip.HousingFundEE.StringFixed(2)),
		fmt.Sprintf("  Withholding Tax     %12s", slip.WithholdingTax.StringFixed(2)),
		fmt.Sprintf("  Loan Deductions     %12s", slip.LoanDeductions.StringFixed(2)),
		fmt.Sprintf("  Other Deductions    %12s", slip.OtherDeductions.StringFixed(2)),
		fmt.Sprintf("  Total Deductions    %12s", slip.TotalDeductions().StringFixed(2)),
		"",
		fmt.Sprintf("NET PAY               %12s", slip.NetPay.StringFixed(2)),
	}
	return lines
}

// buildPayslipPDF emits a minimal single-page PDF: one Helvetica text
// block, one line per entry.
func buildPayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n50 790 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
