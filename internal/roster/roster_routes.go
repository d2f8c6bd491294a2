package roster

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
	roster := r.Group("/roster")
	roster.Use(authMiddleware)
	{
		roster.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.Get)
		roster.POST("/refresh", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.Refresh)
		roster.PATCH("/:id/workload", middleware.RBACAuthorize(rbacService, "employee", "update"), handler.AdjustWorkload)
	}
}
