package contribution

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SocialInsuranceBracket is one salary band of the social-insurance
// table. Shares are fixed amounts per band, not rates.
type SocialInsuranceBracket struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MinSalary          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	MaxSalary          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EmployeeShare      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EmployerShare      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SupplementaryShare decimal.Decimal `gorm:"type:numeric(12,2);not null"` // employer-only top-up
	Total              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EffectiveDate      time.Time       `gorm:"type:date;not null"`
	IsActive           bool            `gorm:"not null;default:true;index"`
	CreatedAt          time.Time
}

func (SocialInsuranceBracket) TableName() string {
	return "social_insurance_brackets"
}

// HealthInsuranceTable is rate-based: premium on salary, optionally
// capped, split evenly between employee and employer.
type HealthInsuranceTable struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PremiumRate     decimal.Decimal  `gorm:"type:numeric(6,4);not null"` // e.g. 0.05 for 5%
	MaxContribution *decimal.Decimal `gorm:"type:numeric(12,2)"`
	EffectiveDate   time.Time        `gorm:"type:date;not null"`
	IsActive        bool             `gorm:"not null;default:true;index"`
	CreatedAt       time.Time
}

func (HealthInsuranceTable) TableName() string {
	return "health_insurance_tables"
}

// HousingFundTable carries independent employee/employer rates with
// independent caps.
type HousingFundTable struct {
	ID                      uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeRate            decimal.Decimal  `gorm:"type:numeric(6,4);not null"`
	EmployerRate            decimal.Decimal  `gorm:"type:numeric(6,4);not null"`
	MaxEmployeeContribution *decimal.Decimal `gorm:"type:numeric(12,2)"`
	MaxEmployerContribution *decimal.Decimal `gorm:"type:numeric(12,2)"`
	EffectiveDate           time.Time        `gorm:"type:date;not null"`
	IsActive                bool             `gorm:"not null;default:true;index"`
	CreatedAt               time.Time
}

func (HousingFundTable) TableName() string {
	return "housing_fund_tables"
}

// TaxBracket is a progressive withholding bracket over ANNUAL taxable
// income: tax = base + (income - min) * rate.
type TaxBracket struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MinCompensation decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	MaxCompensation *decimal.Decimal `gorm:"type:numeric(12,2)"`
	BaseTax         decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0"`
	TaxRate         decimal.Decimal  `gorm:"type:numeric(6,4);not null"`
	EffectiveDate   time.Time        `gorm:"type:date;not null"`
	IsActive        bool             `gorm:"not null;default:true;index"`
	CreatedAt       time.Time
}

func (TaxBracket) TableName() string {
	return "tax_brackets"
}
