package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/leave"
	leaveerrors "go-payroll/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepository struct {
	createFn     func(ctx context.Context, l *leave.LeaveRequest) error
	findAllFn    func(ctx context.Context) ([]leave.LeaveRequest, error)
	findByIDFn   func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	findByEmpFn  func(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error)
	hasOverlapFn func(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)
	updateFn     func(ctx context.Context, l *leave.LeaveRequest) error
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	if f.findByEmpFn != nil {
		return f.findByEmpFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	if f.hasOverlapFn != nil {
		return f.hasOverlapFn(ctx, employeeID, start, end, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	svc := leave.NewService(db, repo)

	return &leaveServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	var created *leave.LeaveRequest
	deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
		created = l
		return nil
	}

	resp, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		LeaveType:  "vacation",
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-08",
		Reason:     "family trip",
	})

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.NotNil(t, created)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_Create_OverlapRejected(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	deps.repo.hasOverlapFn = func(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
		return true, nil
	}

	_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID: uuid.NewString(),
		LeaveType:  "sick",
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-08",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_ApproveRecordsDecision(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	leaveID := uuid.New()
	actorID := uuid.New()
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
		return &leave.LeaveRequest{ID: leaveID, Status: leave.StatusPending}, nil
	}

	var updated *leave.LeaveRequest
	deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
		updated = l
		return nil
	}

	resp, err := deps.service.Approve(ctx, actorID.String(), leaveID.String())

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.NotNil(t, updated.DecidedBy)
	assert.Equal(t, actorID, *updated.DecidedBy)
	assert.NotNil(t, updated.DecidedAt)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_DecideTwiceRejected(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	leaveID := uuid.New()
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
		return &leave.LeaveRequest{ID: leaveID, Status: leave.StatusApproved}, nil
	}

	_, err := deps.service.Reject(ctx, uuid.NewString(), leaveID.String())

	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
