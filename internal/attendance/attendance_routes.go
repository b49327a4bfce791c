package attendance

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	logs := r.Group("/attendance")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.POST("/logs", middleware.RoleMiddleware("staff", "admin"), handler.UpsertLog)
		logs.GET("/employees/:id/logs", middleware.RoleMiddleware("staff", "admin"), handler.GetByEmployee)
		logs.GET("/employees/:id/summary", middleware.RoleMiddleware("staff", "admin"), handler.GetSummary)
	}
}
