package app

import (
	"database/sql"

	"go-payroll/internal/attendance"
	"go-payroll/internal/contribution"
	"go-payroll/internal/employee"
	"go-payroll/internal/leave"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	contributionRepo := contribution.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	leaveService := leave.NewService(db, leaveRepo)
	contributionService := contribution.NewService(contributionRepo)
	calculator := payroll.NewCalculator(attendanceService, contributionService)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo, calculator, outboxRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	contributionHandler := contribution.NewHandler(contributionService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)

	router.Use(middleware.RequestID())

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
		leave.RegisterRoutes(api, leaveHandler)
		contribution.RegisterRoutes(api, contributionHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
	}

	return nil
}
