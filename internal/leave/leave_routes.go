package leave

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", handler.Create)
		leaves.GET("/mine", handler.GetMine)
		leaves.GET("", middleware.RoleMiddleware("staff", "admin"), handler.GetAll)
		leaves.GET("/:id", middleware.RoleMiddleware("staff", "admin"), handler.GetByID)
		leaves.POST("/:id/approve", middleware.RoleMiddleware("staff", "admin"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RoleMiddleware("staff", "admin"), handler.Reject)
	}
}
