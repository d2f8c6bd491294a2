package employee

import (
	"go-nexushr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	authMiddleware gin.HandlerFunc,
	idempotency gin.HandlerFunc,
) {
	employees := r.Group("/employees")
	employees.Use(authMiddleware)
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetAll)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetById)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employee", "create"), idempotency, handler.Create)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "update"), handler.Update)
		employees.PATCH("/:id/workload", middleware.RBACAuthorize(rbacService, "employee", "update"), handler.UpdateWorkload)
		employees.POST("/:id/disable", middleware.RBACAuthorize(rbacService, "employee", "update"), handler.Disable)
		employees.POST("/:id/enable", middleware.RBACAuthorize(rbacService, "employee", "update"), handler.Enable)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "delete"), handler.Delete)
	}

	maintenance := r.Group("/maintenance")
	maintenance.Use(authMiddleware)
	{
		maintenance.POST("/repair", middleware.RBACAuthorize(rbacService, "maintenance", "repair"), handler.Repair)
	}
}
