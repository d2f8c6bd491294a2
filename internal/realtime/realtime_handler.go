package realtime

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	hub       *Hub
	heartbeat time.Duration
	logger    *zap.Logger
}

func NewHandler(hub *Hub, heartbeat time.Duration, logger ...*zap.Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	l := zap.L().Named("realtime.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("realtime.handler")
	}
	return &Handler{hub: hub, heartbeat: heartbeat, logger: l}
}

// Stream pushes employee changes as Server-Sent Events until the client
// goes away or the hub closes.
func (h *Handler) Stream(c *gin.Context) {
	ch, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	h.logger.Debug("change stream opened", zap.String("client_ip", c.ClientIP()))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("employee_change", event)
			return true
		case t := <-ticker.C:
			c.SSEvent("ping", t.UTC().Format(time.RFC3339))
			return true
		}
	})

	h.logger.Debug("change stream closed", zap.String("client_ip", c.ClientIP()))
}
