package contribution

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Breakdown is everything the payroll calculator needs from the
// statutory tables for one employee's monthly earnings.
type Breakdown struct {
	SocialInsurance SocialInsuranceResult
	HealthInsurance SharedContributionResult
	HousingFund     SharedContributionResult
}

type Service interface {
	Resolve(ctx context.Context, monthlyEarnings decimal.Decimal) (Breakdown, error)
	MonthlyWithholdingTax(ctx context.Context, monthlyTaxable decimal.Decimal) (decimal.Decimal, error)
	ListSocialInsuranceBrackets(ctx context.Context) ([]SocialInsuranceBracket, error)
	ListHealthInsuranceTables(ctx context.Context) ([]HealthInsuranceTable, error)
	ListHousingFundTables(ctx context.Context) ([]HousingFundTable, error)
	ListTaxBrackets(ctx context.Context) ([]TaxBracket, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("contribution.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contribution.service")
	}
	return &service{repo: repo, logger: l}
}

// Resolve looks up all mandatory contributions for the given monthly
// earnings. Missing configuration resolves to zero amounts and a
// warning log, never an error; payroll must not fail because a table
// has not been seeded yet.
func (s *service) Resolve(ctx context.Context, monthlyEarnings decimal.Decimal) (Breakdown, error) {
	social, err := s.repo.ActiveSocialInsuranceBrackets(ctx)
	if err != nil {
		return Breakdown{}, err
	}
	health, err := s.repo.ActiveHealthInsuranceTables(ctx)
	if err != nil {
		return Breakdown{}, err
	}
	housing, err := s.repo.ActiveHousingFundTables(ctx)
	if err != nil {
		return Breakdown{}, err
	}

	if len(social) == 0 {
		s.logger.Warn("no active social insurance brackets, contribution defaults to zero")
	}
	if len(health) == 0 {
		s.logger.Warn("no active health insurance table, contribution defaults to zero")
	}
	if len(housing) == 0 {
		s.logger.Warn("no active housing fund table, contribution defaults to zero")
	}

	return Breakdown{
		SocialInsurance: ResolveSocialInsurance(social, monthlyEarnings),
		HealthInsurance: ResolveHealthInsurance(health, monthlyEarnings),
		HousingFund:     ResolveHousingFund(housing, monthlyEarnings),
	}, nil
}

// MonthlyWithholdingTax annualizes the monthly taxable income, applies
// the bracket table and returns one twelfth of the annual tax.
func (s *service) MonthlyWithholdingTax(ctx context.Context, monthlyTaxable decimal.Decimal) (decimal.Decimal, error) {
	brackets, err := s.repo.ActiveTaxBrackets(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(brackets) == 0 {
		s.logger.Warn("no active tax brackets, withholding tax defaults to zero")
	}

	annual := monthlyTaxable.Mul(decimal.NewFromInt(12))
	annualTax := ResolveWithholdingTax(brackets, annual)
	return annualTax.Div(decimal.NewFromInt(12)).Round(2), nil
}

func (s *service) ListSocialInsuranceBrackets(ctx context.Context) ([]SocialInsuranceBracket, error) {
	return s.repo.ActiveSocialInsuranceBrackets(ctx)
}

func (s *service) ListHealthInsuranceTables(ctx context.Context) ([]HealthInsuranceTable, error) {
	return s.repo.ActiveHealthInsuranceTables(ctx)
}

func (s *service) ListHousingFundTables(ctx context.Context) ([]HousingFundTable, error) {
	return s.repo.ActiveHousingFundTables(ctx)
}

func (s *service) ListTaxBrackets(ctx context.Context) ([]TaxBracket, error) {
	return s.repo.ActiveTaxBrackets(ctx)
}
