package employee

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	CreateGrade(ctx context.Context, req CreateSalaryGradeRequest) (SalaryGradeResponse, error)
	GetAllGrades(ctx context.Context) ([]SalaryGradeResponse, error)
	DeleteGrade(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	gradeID, err := uuid.Parse(req.SalaryGradeID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidGradeID
	}

	grade, err := qtx.FindGradeByID(ctx, gradeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrGradeNotFound
		}
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:            uuid.New(),
		EmployeeNo:    req.EmployeeNo,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Department:    req.Department,
		Position:      req.Position,
		SalaryGradeID: grade.ID,
		BankName:      req.BankName,
		BankAccount:   req.BankAccount,
		Active:        true,
	}

	if req.DateHired != "" {
		hired, err := time.Parse("2006-01-02", req.DateHired)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
		}
		e.DateHired = &hired
	}

	if err := qtx.Create(ctx, e); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNoTaken
		}
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	e.SalaryGrade = grade
	s.logger.Info("employee created",
		zap.String("employee_id", e.ID.String()),
		zap.String("employee_no", e.EmployeeNo),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	gradeID, err := uuid.Parse(req.SalaryGradeID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidGradeID
	}
	grade, err := qtx.FindGradeByID(ctx, gradeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrGradeNotFound
		}
		return EmployeeResponse{}, err
	}

	e.FirstName = req.FirstName
	e.LastName = req.LastName
	e.Department = req.Department
	e.Position = req.Position
	e.SalaryGradeID = grade.ID
	e.SalaryGrade = grade
	e.BankName = req.BankName
	e.BankAccount = req.BankAccount
	if req.Active != nil {
		e.Active = *req.Active
	}

	if err := qtx.Update(ctx, e); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

// Deactivate never hard-deletes: employees with payroll history stay on
// record with Active=false so historical payslips keep a valid reference.
func (s *service) Deactivate(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	e.Active = false
	if err := qtx.Update(ctx, e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("employee deactivated", zap.String("employee_id", id))
	return nil
}

// Delete hard-deletes an employee only while no payslip references them;
// once payroll history exists the record can only be deactivated.
func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	referenced, err := qtx.HasPayslips(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return employeeerrors.ErrEmployeeHasPayslips
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("employee deleted", zap.String("employee_id", id))
	return nil
}

func (s *service) CreateGrade(ctx context.Context, req CreateSalaryGradeRequest) (SalaryGradeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryGradeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	basePay, err := decimal.NewFromString(req.BasePay)
	if err != nil || basePay.IsNegative() {
		return SalaryGradeResponse{}, employeeerrors.ErrInvalidBasePay
	}

	g := &SalaryGrade{
		ID:      uuid.New(),
		Code:    req.Code,
		Step:    req.Step,
		BasePay: basePay.Round(2),
	}

	if err := qtx.CreateGrade(ctx, g); err != nil {
		return SalaryGradeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SalaryGradeResponse{}, err
	}
	return mapGradeToResponse(*g), nil
}

func (s *service) GetAllGrades(ctx context.Context) ([]SalaryGradeResponse, error) {
	rows, err := s.repo.FindAllGrades(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]SalaryGradeResponse, len(rows))
	for i, g := range rows {
		res[i] = mapGradeToResponse(g)
	}
	return res, nil
}

// DeleteGrade enforces protect-on-delete: a grade referenced by any
// employee (and therefore by payroll history) is immutable.
func (s *service) DeleteGrade(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidGradeID
	}

	referenced, err := qtx.GradeIsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return employeeerrors.ErrGradeReferenced
	}

	if err := qtx.DeleteGrade(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          e.ID.String(),
		EmployeeNo:  e.EmployeeNo,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Department:  e.Department,
		Position:    e.Position,
		BankName:    e.BankName,
		BankAccount: e.BankAccount,
		Active:      e.Active,
	}
	if e.SalaryGrade != nil {
		resp.SalaryGrade = e.SalaryGrade.Code
		resp.BasePay = e.SalaryGrade.BasePay.StringFixed(2)
	}
	if e.DateHired != nil {
		v := e.DateHired.Format("2006-01-02")
		resp.DateHired = &v
	}
	return resp
}

func mapGradeToResponse(g SalaryGrade) SalaryGradeResponse {
	return SalaryGradeResponse{
		ID:      g.ID.String(),
		Code:    g.Code,
		Step:    g.Step,
		BasePay: g.BasePay.StringFixed(2),
	}
}
