package contribution

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	tables := r.Group("/contributions")
	tables.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("staff", "admin"))
	{
		tables.GET("/social-insurance", handler.ListSocialInsurance)
		tables.GET("/health-insurance", handler.ListHealthInsurance)
		tables.GET("/housing-fund", handler.ListHousingFund)
		tables.GET("/tax-brackets", handler.ListTaxBrackets)
	}
}
