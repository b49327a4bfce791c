package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// standardHoursPerDay is the threshold beyond which hours count as overtime.
var standardHoursPerDay = decimal.NewFromInt(8)

// Summary is the attendance aggregate the payroll calculator consumes.
type Summary struct {
	DaysWorked    int
	OvertimeHours decimal.Decimal
}

type Service interface {
	UpsertLog(ctx context.Context, req UpsertLogRequest) (LogResponse, error)
	GetByEmployee(ctx context.Context, employeeID, start, end string) ([]LogResponse, error)
	Summarize(ctx context.Context, employeeID string, start, end time.Time) (Summary, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// UpsertLog creates or amends the single log row for (employee, date).
func (s *service) UpsertLog(ctx context.Context, req UpsertLogRequest) (LogResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LogResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return LogResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	timeIn, err := parseClock(date, req.TimeIn)
	if err != nil {
		return LogResponse{}, attendanceerrors.ErrInvalidTimeFormat
	}
	timeOut, err := parseClock(date, req.TimeOut)
	if err != nil {
		return LogResponse{}, attendanceerrors.ErrInvalidTimeFormat
	}

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID.String(), date)
	switch {
	case err == nil:
		row.TimeIn = timeIn
		row.TimeOut = timeOut
		row.Remarks = req.Remarks
		if err := qtx.Update(ctx, row); err != nil {
			return LogResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &AttendanceLog{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Date:       date,
			TimeIn:     timeIn,
			TimeOut:    timeOut,
			Remarks:    req.Remarks,
		}
		if err := qtx.Create(ctx, row); err != nil {
			return LogResponse{}, err
		}
	default:
		return LogResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LogResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID, start, end string) ([]LogResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}

	rows, err := s.repo.FindByEmployeeAndRange(ctx, employeeID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	res := make([]LogResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// Summarize aggregates attendance over an inclusive date range.
func (s *service) Summarize(ctx context.Context, employeeID string, start, end time.Time) (Summary, error) {
	rows, err := s.repo.FindByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(rows), nil
}

// Aggregate derives days worked and overtime hours from raw log rows.
//
// A row counts toward days worked when at least one of time in/out was
// punched; a bare row (remark only) records nothing payable. Overtime
// needs both punches: hours beyond the 8-hour standard, with time out
// earlier than time in read as an overnight shift (+24h).
func Aggregate(rows []AttendanceLog) Summary {
	var summary Summary
	overtime := decimal.Zero

	for _, row := range rows {
		if row.TimeIn == nil && row.TimeOut == nil {
			continue
		}
		summary.DaysWorked++

		if row.TimeIn == nil || row.TimeOut == nil {
			continue
		}

		worked := row.TimeOut.Sub(*row.TimeIn)
		if worked < 0 {
			worked += 24 * time.Hour
		}

		hours := decimal.NewFromFloat(worked.Hours())
		if hours.GreaterThan(standardHoursPerDay) {
			overtime = overtime.Add(hours.Sub(standardHoursPerDay))
		}
	}

	summary.OvertimeHours = overtime.Round(2)
	return summary
}

func parseClock(date time.Time, v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	clock, err := time.Parse("15:04", *v)
	if err != nil {
		return nil, err
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	return &t, nil
}

func mapToResponse(a AttendanceLog) LogResponse {
	resp := LogResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Date:       a.Date.Format("2006-01-02"),
		Remarks:    a.Remarks,
	}
	if a.TimeIn != nil {
		v := a.TimeIn.Format("15:04")
		resp.TimeIn = &v
	}
	if a.TimeOut != nil {
		v := a.TimeOut.Format("15:04")
		resp.TimeOut = &v
	}
	return resp
}
