package employee

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RoleMiddleware("staff", "admin"), handler.GetAll)
		employees.GET("/:id", middleware.RoleMiddleware("staff", "admin"), handler.GetByID)
		employees.POST("", middleware.RoleMiddleware("staff", "admin"), handler.Create)
		employees.PUT("/:id", middleware.RoleMiddleware("staff", "admin"), handler.Update)
		employees.POST("/:id/deactivate", middleware.RoleMiddleware("admin"), handler.Deactivate)
		employees.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.Delete)
	}

	grades := r.Group("/salary-grades")
	grades.Use(middleware.AuthMiddleware())
	{
		grades.GET("", middleware.RoleMiddleware("staff", "admin"), handler.GetAllGrades)
		grades.POST("", middleware.RoleMiddleware("admin"), handler.CreateGrade)
		grades.DELETE("/:id", middleware.RoleMiddleware("admin"), handler.DeleteGrade)
	}
}
