package contribution

import (
	"github.com/shopspring/decimal"
)

// annualTaxExemptThreshold: annual taxable income at or below this owes
// no withholding tax.
var annualTaxExemptThreshold = decimal.NewFromInt(250000)

// SocialInsuranceResult carries the fixed shares of the matched bracket.
// A zero value means "no usable configuration", never an error.
type SocialInsuranceResult struct {
	EmployeeShare      decimal.Decimal
	EmployerShare      decimal.Decimal
	SupplementaryShare decimal.Decimal
	Total              decimal.Decimal
}

// SharedContributionResult is the employee/employer split used by the
// health-insurance and housing-fund lookups.
type SharedContributionResult struct {
	EmployeeShare decimal.Decimal
	EmployerShare decimal.Decimal
	Total         decimal.Decimal
}

// ResolveSocialInsurance picks the active bracket whose range contains
// the salary. A salary above every bracket falls back to the bracket
// with the highest max, matching how statutory tables top out.
func ResolveSocialInsurance(rows []SocialInsuranceBracket, salary decimal.Decimal) SocialInsuranceResult {
	var match *SocialInsuranceBracket
	var highest *SocialInsuranceBracket

	for i := range rows {
		row := &rows[i]
		if !row.IsActive {
			continue
		}
		if highest == nil || row.MaxSalary.GreaterThan(highest.MaxSalary) {
			highest = row
		}
		if match == nil && salary.GreaterThanOrEqual(row.MinSalary) && salary.LessThanOrEqual(row.MaxSalary) {
			match = row
		}
	}

	if match == nil {
		match = highest
	}
	if match == nil {
		return SocialInsuranceResult{
			EmployeeShare:      decimal.Zero,
			EmployerShare:      decimal.Zero,
			SupplementaryShare: decimal.Zero,
			Total:              decimal.Zero,
		}
	}

	return SocialInsuranceResult{
		EmployeeShare:      match.EmployeeShare,
		EmployerShare:      match.EmployerShare,
		SupplementaryShare: match.SupplementaryShare,
		Total:              match.Total,
	}
}

// ResolveHealthInsurance applies the latest active rate to the salary,
// caps the premium if a cap is configured, and splits it 50/50.
func ResolveHealthInsurance(rows []HealthInsuranceTable, salary decimal.Decimal) SharedContributionResult {
	table := latestHealthTable(rows)
	if table == nil {
		return zeroShared()
	}

	premium := salary.Mul(table.PremiumRate)
	if table.MaxContribution != nil && premium.GreaterThan(*table.MaxContribution) {
		premium = *table.MaxContribution
	}

	half := premium.Div(decimal.NewFromInt(2)).Round(2)
	return SharedContributionResult{
		EmployeeShare: half,
		EmployerShare: half,
		Total:         premium.Round(2),
	}
}

// ResolveHousingFund applies the latest active employee and employer
// rates, each capped independently.
func ResolveHousingFund(rows []HousingFundTable, salary decimal.Decimal) SharedContributionResult {
	table := latestHousingTable(rows)
	if table == nil {
		return zeroShared()
	}

	employee := salary.Mul(table.EmployeeRate)
	if table.MaxEmployeeContribution != nil && employee.GreaterThan(*table.MaxEmployeeContribution) {
		employee = *table.MaxEmployeeContribution
	}

	employer := salary.Mul(table.EmployerRate)
	if table.MaxEmployerContribution != nil && employer.GreaterThan(*table.MaxEmployerContribution) {
		employer = *table.MaxEmployerContribution
	}

	employee = employee.Round(2)
	employer = employer.Round(2)
	return SharedContributionResult{
		EmployeeShare: employee,
		EmployerShare: employer,
		Total:         employee.Add(employer).Round(2),
	}
}

// ResolveWithholdingTax computes ANNUAL tax from annual taxable income:
// zero at or below the exempt threshold, otherwise base tax of the
// deepest bracket whose floor is at or below the income plus the rate
// applied to the excess. Callers divide by 12 for a monthly figure.
func ResolveWithholdingTax(rows []TaxBracket, annualTaxableIncome decimal.Decimal) decimal.Decimal {
	if annualTaxableIncome.LessThanOrEqual(annualTaxExemptThreshold) {
		return decimal.Zero
	}

	var bracket *TaxBracket
	for i := range rows {
		row := &rows[i]
		if !row.IsActive {
			continue
		}
		if row.MinCompensation.GreaterThan(annualTaxableIncome) {
			continue
		}
		if bracket == nil || row.MinCompensation.GreaterThan(bracket.MinCompensation) {
			bracket = row
		}
	}

	if bracket == nil {
		return decimal.Zero
	}

	excess := annualTaxableIncome.Sub(bracket.MinCompensation)
	return bracket.BaseTax.Add(excess.Mul(bracket.TaxRate)).Round(2)
}

func latestHealthTable(rows []HealthInsuranceTable) *HealthInsuranceTable {
	var latest *HealthInsuranceTable
	for i := range rows {
		row := &rows[i]
		if !row.IsActive {
			continue
		}
		if latest == nil || row.EffectiveDate.After(latest.EffectiveDate) {
			latest = row
		}
	}
	return latest
}

func latestHousingTable(rows []HousingFundTable) *HousingFundTable {
	var latest *HousingFundTable
	for i := range rows {
		row := &rows[i]
		if !row.IsActive {
			continue
		}
		if latest == nil || row.EffectiveDate.After(latest.EffectiveDate) {
			latest = row
		}
	}
	return latest
}

func zeroShared() SharedContributionResult {
	return SharedContributionResult{
		EmployeeShare: decimal.Zero,
		EmployerShare: decimal.Zero,
		Total:         decimal.Zero,
	}
}
