package export

import (
	"go-nexushr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	authMiddleware gin.HandlerFunc,
) {
	exports := r.Group("/exports")
	exports.Use(authMiddleware, middleware.RBACAuthorize(rbacService, "export", "read"))
	{
		exports.GET("/team.csv", handler.TeamCSV)
		exports.GET("/team.xlsx", handler.TeamXLSX)
		exports.GET("/team.pdf", handler.TeamPDF)
		exports.GET("/employees/:file", handler.Employee)
	}
}
