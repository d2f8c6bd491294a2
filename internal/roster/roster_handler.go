package roster

import (
	"net/http"
	"time"

	employeeerrors "go-nexushr/internal/employee/errors"
	"go-nexushr/internal/shared/apperror"
	"go-nexushr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type adjustRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

type Handler struct {
	roster *Roster
	logger *zap.Logger
}

func NewHandler(roster *Roster, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("roster.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.handler")
	}
	return &Handler{roster: roster, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("roster request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Get(c *gin.Context) {
	records, err := h.roster.Records(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("X-Roster-Loaded-At", h.roster.LoadedAt().UTC().Format(time.RFC3339))
	response.Success(c, http.StatusOK, records, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.roster.Refresh(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.roster.Snapshot(), nil)
}

// AdjustWorkload is the +/- button path. On failure the roster has already
// been refetched, so the client should reload it.
func (h *Handler) AdjustWorkload(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, employeeerrors.ErrWorkloadChangeMissing)
		return
	}

	resp, err := h.roster.AdjustWorkload(c.Request.Context(), c.Param("id"), *req.Delta)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
