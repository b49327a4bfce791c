package payroll

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// releaseIdempotencyLock drops the in-flight lock; cacheIdempotentResult
// stores the successful payload so a replayed Idempotency-Key answers
// from cache instead of re-running the operation.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		h.rdb.Del(c.Request.Context(), lk)
	}
}

func (h *Handler) cacheIdempotentResult(c *gin.Context, result any) {
	if h.rdb == nil {
		return
	}
	ck := c.GetString("idempotency_cache_key")
	if ck == "" {
		return
	}
	if payload, err := json.Marshal(result); err == nil {
		_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
	}
}

func (h *Handler) CreateRun(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, warnings, err := h.service.CreateRun(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResult(c, resp)
	response.SuccessWithWarnings(c, http.StatusCreated, resp, warnings)
}

func (h *Handler) GetAllRuns(c *gin.Context) {
	resp, err := h.service.GetAllRuns(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetRun(c *gin.Context) {
	resp, err := h.service.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Recalculate(c *gin.Context) {
	resp, warnings, err := h.service.Recalculate(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithWarnings(c, http.StatusOK, resp, warnings)
}

func (h *Handler) SubmitForReview(c *gin.Context) {
	h.transition(c, h.service.SubmitForReview)
}

func (h *Handler) Approve(c *gin.Context) {
	h.transition(c, h.service.Approve)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, actorID, id string) (RunResponse, error)) {
	resp, err := op(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	resp, err := h.service.MarkPaid(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResult(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPayslip(c *gin.Context) {
	resp, err := h.service.GetPayslip(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPayslipsByEmployee(c *gin.Context) {
	resp, err := h.service.GetPayslipsByEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetMyPayslips serves the self-service view. An account without an
// employee record sees an empty list, not an error.
func (h *Handler) GetMyPayslips(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		response.Success(c, http.StatusOK, []PayslipResponse{}, nil)
		return
	}

	resp, err := h.service.GetPayslipsByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMyDepositStatus(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		response.Success(c, http.StatusOK, []DepositStatusResponse{}, nil)
		return
	}

	slips, err := h.service.GetPayslipsByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := make([]DepositStatusResponse, len(slips))
	for i, slip := range slips {
		status[i] = DepositStatusResponse{
			PayslipID:       slip.ID,
			PeriodNetPay:    slip.NetPay,
			SalaryDeposited: slip.SalaryDeposited,
			DepositDate:     slip.DepositDate,
		}
	}
	response.Success(c, http.StatusOK, status, nil)
}

func (h *Handler) GetMyPayslipPDF(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		h.writeServiceError(c, payrollerrors.ErrPayslipNotFound)
		return
	}

	file, err := h.service.GenerateEmployeePayslipPDF(c.Request.Context(), employeeID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writeDownload(c, file)
}

func (h *Handler) CreateLoan(c *gin.Context) {
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CreateLoan(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetLoansByEmployee(c *gin.Context) {
	resp, err := h.service.GetLoansByEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateOtherDeduction(c *gin.Context) {
	var req CreateDeductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CreateOtherDeduction(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetDeductionsByEmployee(c *gin.Context) {
	resp, err := h.service.GetDeductionsByEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GenerateBankFile(c *gin.Context) {
	file, err := h.service.GenerateBankFile(c.Request.Context(), c.Param("id"), c.Query("bank"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writeDownload(c, file)
}

func (h *Handler) ExportRunCSV(c *gin.Context) {
	file, err := h.service.ExportRunCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writeDownload(c, file)
}

func (h *Handler) GetPayslipPDF(c *gin.Context) {
	file, err := h.service.GeneratePayslipPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writeDownload(c, file)
}

func writeDownload(c *gin.Context, file BankFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
