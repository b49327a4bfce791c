package contribution

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ActiveSocialInsuranceBrackets(ctx context.Context) ([]SocialInsuranceBracket, error)
	ActiveHealthInsuranceTables(ctx context.Context) ([]HealthInsuranceTable, error)
	ActiveHousingFundTables(ctx context.Context) ([]HousingFundTable, error)
	ActiveTaxBrackets(ctx context.Context) ([]TaxBracket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ActiveSocialInsuranceBrackets(ctx context.Context) ([]SocialInsuranceBracket, error) {
	var rows []SocialInsuranceBracket
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("min_salary ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ActiveHealthInsuranceTables(ctx context.Context) ([]HealthInsuranceTable, error) {
	var rows []HealthInsuranceTable
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("effective_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ActiveHousingFundTables(ctx context.Context) ([]HousingFundTable, error) {
	var rows []HousingFundTable
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("effective_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ActiveTaxBrackets(ctx context.Context) ([]TaxBracket, error) {
	var rows []TaxBracket
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("min_compensation ASC").
		Find(&rows).Error
	return rows, err
}
