package realtime

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
	r.GET("/employees/changes",
		authMiddleware,
		middleware.RBACAuthorize(rbacService, "employee", "read"),
		handler.Stream,
	)
}
