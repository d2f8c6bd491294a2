package rbac

import (
	"go-nexushr/internal/shared/apperror"
	"go-nexushr/internal/shared/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers whether the caller's role may perform an action. The role
// always comes from the token, never from the body.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	req.Role = c.GetString("role")
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	allowed, err := h.service.Enforce(req)
	if err != nil {
		h.logger.Warn("rbac enforce failed", zap.String("role", req.Role), zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) Permissions(c *gin.Context) {
	resp, err := h.service.Permissions(c.GetString("role"))
	if err != nil {
		h.logger.Warn("rbac permissions failed", zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
