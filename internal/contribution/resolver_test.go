package contribution_test

import (
	"testing"
	"time"

	"go-payroll/internal/contribution"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func socialBrackets() []contribution.SocialInsuranceBracket {
	return []contribution.SocialInsuranceBracket{
		{
			MinSalary:          dec("0"),
			MaxSalary:          dec("9999.99"),
			EmployeeShare:      dec("450"),
			EmployerShare:      dec("850"),
			SupplementaryShare: dec("10"),
			Total:              dec("1310"),
			IsActive:           true,
		},
		{
			MinSalary:          dec("10000"),
			MaxSalary:          dec("19999.99"),
			EmployeeShare:      dec("675"),
			EmployerShare:      dec("1275"),
			SupplementaryShare: dec("10"),
			Total:              dec("1960"),
			IsActive:           true,
		},
		{
			MinSalary:          dec("20000"),
			MaxSalary:          dec("24999.99"),
			EmployeeShare:      dec("900"),
			EmployerShare:      dec("1700"),
			SupplementaryShare: dec("10"),
			Total:              dec("2610"),
			IsActive:           true,
		},
	}
}

func TestResolveSocialInsurance_RangeMatch(t *testing.T) {
	res := contribution.ResolveSocialInsurance(socialBrackets(), dec("15000"))

	assert.True(t, res.EmployeeShare.Equal(dec("675")))
	assert.True(t, res.EmployerShare.Equal(dec("1275")))
	assert.True(t, res.SupplementaryShare.Equal(dec("10")))
	assert.True(t, res.Total.Equal(res.EmployeeShare.Add(res.EmployerShare).Add(res.SupplementaryShare)))
}

func TestResolveSocialInsurance_AboveAllBracketsFallsBackToHighest(t *testing.T) {
	res := contribution.ResolveSocialInsurance(socialBrackets(), dec("90000"))

	assert.True(t, res.EmployeeShare.Equal(dec("900")))
	assert.True(t, res.Total.Equal(dec("2610")))
}

func TestResolveSocialInsurance_NoActiveRowsYieldsZero(t *testing.T) {
	rows := socialBrackets()
	for i := range rows {
		rows[i].IsActive = false
	}

	res := contribution.ResolveSocialInsurance(rows, dec("15000"))

	assert.True(t, res.EmployeeShare.IsZero())
	assert.True(t, res.EmployerShare.IsZero())
	assert.True(t, res.Total.IsZero())
}

func TestResolveHealthInsurance_LatestRateCappedAndSplit(t *testing.T) {
	cap := dec("5000")
	rows := []contribution.HealthInsuranceTable{
		{PremiumRate: dec("0.04"), EffectiveDate: date(2023, 1, 1), IsActive: true},
		{PremiumRate: dec("0.05"), MaxContribution: &cap, EffectiveDate: date(2024, 1, 1), IsActive: true},
	}

	res := contribution.ResolveHealthInsurance(rows, dec("20000"))

	// 20000 * 5% = 1000, split 50/50
	assert.True(t, res.EmployeeShare.Equal(dec("500")))
	assert.True(t, res.EmployerShare.Equal(dec("500")))
	assert.True(t, res.Total.Equal(dec("1000")))

	// 200000 * 5% = 10000, capped at 5000
	capped := contribution.ResolveHealthInsurance(rows, dec("200000"))
	assert.True(t, capped.Total.Equal(dec("5000")))
	assert.True(t, capped.EmployeeShare.Equal(dec("2500")))
}

func TestResolveHousingFund_IndependentCaps(t *testing.T) {
	eeCap := dec("100")
	erCap := dec("200")
	rows := []contribution.HousingFundTable{
		{
			EmployeeRate:            dec("0.02"),
			EmployerRate:            dec("0.02"),
			MaxEmployeeContribution: &eeCap,
			MaxEmployerContribution: &erCap,
			EffectiveDate:           date(2024, 1, 1),
			IsActive:                true,
		},
	}

	res := contribution.ResolveHousingFund(rows, dec("20000"))

	// 20000 * 2% = 400, employee capped at 100, employer at 200
	assert.True(t, res.EmployeeShare.Equal(dec("100")))
	assert.True(t, res.EmployerShare.Equal(dec("200")))
	assert.True(t, res.Total.Equal(dec("300")))
}

func taxBrackets() []contribution.TaxBracket {
	return []contribution.TaxBracket{
		{MinCompensation: dec("250000"), BaseTax: dec("0"), TaxRate: dec("0.15"), IsActive: true},
		{MinCompensation: dec("400000"), BaseTax: dec("22500"), TaxRate: dec("0.20"), IsActive: true},
		{MinCompensation: dec("800000"), BaseTax: dec("102500"), TaxRate: dec("0.25"), IsActive: true},
	}
}

func TestResolveWithholdingTax_ExemptAtOrBelowThreshold(t *testing.T) {
	assert.True(t, contribution.ResolveWithholdingTax(taxBrackets(), dec("250000")).IsZero())
	assert.True(t, contribution.ResolveWithholdingTax(taxBrackets(), dec("100000")).IsZero())
}

func TestResolveWithholdingTax_DeepestBracketApplies(t *testing.T) {
	// 500000 falls in the 400000 bracket: 22500 + 100000 * 20% = 42500
	tax := contribution.ResolveWithholdingTax(taxBrackets(), dec("500000"))
	assert.True(t, tax.Equal(dec("42500")))

	// 900000 falls in the 800000 bracket: 102500 + 100000 * 25% = 127500
	tax = contribution.ResolveWithholdingTax(taxBrackets(), dec("900000"))
	assert.True(t, tax.Equal(dec("127500")))
}

func TestResolveWithholdingTax_StrictlyIncreasingAboveThreshold(t *testing.T) {
	prev := decimal.Zero
	for _, income := range []string{"260000", "300000", "400001", "500000", "800001", "1200000"} {
		tax := contribution.ResolveWithholdingTax(taxBrackets(), dec(income))
		assert.True(t, tax.GreaterThan(prev), "tax at %s should exceed tax at lower income", income)
		prev = tax
	}
}

func TestResolveWithholdingTax_NoBracketsYieldsZero(t *testing.T) {
	assert.True(t, contribution.ResolveWithholdingTax(nil, dec("500000")).IsZero())
}
