package dashboard

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
	dashboard := r.Group("/dashboard")
	dashboard.Use(authMiddleware, middleware.RBACAuthorize(rbacService, "dashboard", "read"))
	{
		dashboard.GET("/stats", handler.Stats)
		dashboard.GET("/charts", handler.Charts)
		dashboard.GET("/active", handler.Active)
	}
}
