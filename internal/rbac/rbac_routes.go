package rbac

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes policy checks to the signed-in UI. Both endpoints
// answer for the token's role only.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	rbacGroup := r.Group("/rbac", authMiddleware)
	rbacGroup.GET("/permissions", handler.Permissions)
	rbacGroup.POST("/enforce", handler.Enforce)
}
