package middleware

import (
	"go-nexushr/internal/rbac"
	"go-nexushr/internal/shared/apperror"
	"go-nexushr/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service and its mocks.
type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.AbortError(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context")
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.AbortError(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error())
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
