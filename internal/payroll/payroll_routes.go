package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	group := r.Group("/payroll")
	group.Use(middleware.AuthMiddleware())

	admin := group.Group("")
	admin.Use(middleware.RoleMiddleware("admin"))
	{
		admin.POST("/runs", middleware.Idempotency(rdb), handler.CreateRun)
		admin.POST("/runs/:id/recalculate", handler.Recalculate)
		admin.POST("/runs/:id/review", handler.SubmitForReview)
		admin.POST("/runs/:id/approve", handler.Approve)
		admin.POST("/runs/:id/pay", middleware.Idempotency(rdb), handler.MarkPaid)
		admin.POST("/runs/:id/cancel", handler.Cancel)
		admin.GET("/runs/:id/bank-file", handler.GenerateBankFile)

		admin.POST("/loans", handler.CreateLoan)
		admin.POST("/deductions", handler.CreateOtherDeduction)
	}

	staff := group.Group("")
	staff.Use(middleware.RoleMiddleware("staff", "admin"))
	{
		staff.GET("/runs", handler.GetAllRuns)
		staff.GET("/runs/:id", handler.GetRun)
		staff.GET("/runs/:id/export", handler.ExportRunCSV)
		staff.GET("/payslips/:id", handler.GetPayslip)
		staff.GET("/payslips/:id/pdf", handler.GetPayslipPDF)
		staff.GET("/employees/:id/payslips", handler.GetPayslipsByEmployee)
		staff.GET("/employees/:id/loans", handler.GetLoansByEmployee)
		staff.GET("/employees/:id/deductions", handler.GetDeductionsByEmployee)
	}

	// self-service, any authenticated role
	group.GET("/my/payslips", handler.GetMyPayslips)
	group.GET("/my/payslips/:id/pdf", handler.GetMyPayslipPDF)
	group.GET("/my/deposit-status", handler.GetMyDepositStatus)
}
