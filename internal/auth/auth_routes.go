package auth

import (
	"go-nexushr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-in", middleware.RateLimitByIP(0.2, 5), handler.SignIn)
		auth.POST("/sign-up", middleware.RateLimitByIP(0.1, 3), handler.SignUp)
		auth.POST("/recover", middleware.RateLimitByIP(0.05, 2), handler.Recover)
		auth.POST("/update-password", middleware.RateLimitByIP(0.1, 3), handler.UpdatePassword)

		auth.GET("/me", authMiddleware, middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/sign-out", authMiddleware, handler.SignOut)
		auth.PUT("/password", authMiddleware, middleware.RateLimitByUser(0.2, 3), handler.ChangePassword)
	}
}
