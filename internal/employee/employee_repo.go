package employee

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context, activeOnly bool) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	HasPayslips(ctx context.Context, id string) (bool, error)

	CreateGrade(ctx context.Context, g *SalaryGrade) error
	FindAllGrades(ctx context.Context) ([]SalaryGrade, error)
	FindGradeByID(ctx context.Context, id string) (*SalaryGrade, error)
	GradeIsReferenced(ctx context.Context, id string) (bool, error)
	DeleteGrade(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]Employee, error) {
	var rows []Employee
	q := r.db.WithContext(ctx).Preload("SalaryGrade").Order("employee_no ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Preload("SalaryGrade").
		Where("id = ?", id).
		First(&e).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Employee{}).Error
}

func (r *repository) HasPayslips(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("payslips").
		Where("employee_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateGrade(ctx context.Context, g *SalaryGrade) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindAllGrades(ctx context.Context) ([]SalaryGrade, error) {
	var rows []SalaryGrade
	err := r.db.WithContext(ctx).Order("code ASC, step ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindGradeByID(ctx context.Context, id string) (*SalaryGrade, error) {
	var g SalaryGrade
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	return &g, err
}

func (r *repository) GradeIsReferenced(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Employee{}).
		Where("salary_grade_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DeleteGrade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&SalaryGrade{}).Error
}
