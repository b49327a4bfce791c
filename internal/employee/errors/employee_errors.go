package employeeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidGradeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary grade id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidBasePay = apperror.New(
		apperror.CodeInvalidInput,
		"base_pay must be a non-negative decimal",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrGradeNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary grade not found",
		http.StatusNotFound,
	)
	ErrEmployeeNoTaken = apperror.New(
		apperror.CodeConflict,
		"employee number already in use",
		http.StatusConflict,
	)
	ErrEmployeeHasPayslips = apperror.New(
		apperror.CodeConflict,
		"employee has payroll history and can only be deactivated",
		http.StatusConflict,
	)
	ErrGradeReferenced = apperror.New(
		apperror.CodeConflict,
		"salary grade is referenced by employees and cannot be deleted",
		http.StatusConflict,
	)
)
