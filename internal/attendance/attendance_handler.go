package attendance

import (
	"net/http"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) UpsertLog(c *gin.Context) {
	var req UpsertLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.UpsertLog(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	resp, err := h.service.GetByEmployee(
		c.Request.Context(),
		c.Param("id"),
		c.Query("start"),
		c.Query("end"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSummary(c *gin.Context) {
	employeeID := c.Param("id")

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), employeeID, start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, SummaryResponse{
		EmployeeID:    employeeID,
		PeriodStart:   start.Format("2006-01-02"),
		PeriodEnd:     end.Format("2006-01-02"),
		DaysWorked:    summary.DaysWorked,
		OvertimeHours: summary.OvertimeHours.StringFixed(2),
	}, nil)
}
