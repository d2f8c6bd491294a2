package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-nexushr/internal/middleware"
	"go-nexushr/internal/rbac"
	rbacMock "go-nexushr/internal/rbac/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := rbacMock.NewMockService(ctrl)

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.DELETE("/employees/:id", func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		}, middleware.RBACAuthorize(svc, "employee", "delete"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	serve := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/1", nil))
		return w
	}

	t.Run("allowed", func(t *testing.T) {
		svc.EXPECT().
			Enforce(rbac.EnforceRequest{Role: "authenticated", Resource: "employee", Action: "delete"}).
			Return(true, nil)

		assert.Equal(t, http.StatusNoContent, serve(newRouter("authenticated")).Code)
	})

	t.Run("denied", func(t *testing.T) {
		svc.EXPECT().Enforce(gomock.Any()).Return(false, nil)

		w := serve(newRouter("anon"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, w))
	})

	t.Run("enforcer error", func(t *testing.T) {
		svc.EXPECT().Enforce(gomock.Any()).Return(false, errors.New("model not loaded"))

		assert.Equal(t, http.StatusInternalServerError, serve(newRouter("authenticated")).Code)
	})

	t.Run("no role", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(newRouter("")).Code)
	})
}
