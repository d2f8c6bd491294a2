package export

import (
	"path"
	"strings"

	"go-nexushr/internal/shared/apperror"
	"go-nexushr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("export.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("export request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) send(c *gin.Context, doc Document, err error) {
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Attachment(c, doc.ContentType, doc.Filename, doc.Body)
}

func (h *Handler) bindTeamQuery(c *gin.Context) (TeamQuery, bool) {
	var q TeamQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return q, false
	}
	return q, true
}

func (h *Handler) TeamCSV(c *gin.Context) {
	if q, ok := h.bindTeamQuery(c); ok {
		doc, err := h.service.TeamCSV(c.Request.Context(), q)
		h.send(c, doc, err)
	}
}

func (h *Handler) TeamXLSX(c *gin.Context) {
	if q, ok := h.bindTeamQuery(c); ok {
		doc, err := h.service.TeamXLSX(c.Request.Context(), q)
		h.send(c, doc, err)
	}
}

func (h *Handler) TeamPDF(c *gin.Context) {
	if q, ok := h.bindTeamQuery(c); ok {
		doc, err := h.service.TeamPDF(c.Request.Context(), q)
		h.send(c, doc, err)
	}
}

// Employee serves /exports/employees/<id>.csv and /exports/employees/<id>.pdf.
func (h *Handler) Employee(c *gin.Context) {
	file := c.Param("file")
	ext := path.Ext(file)
	id := strings.TrimSuffix(file, ext)

	switch ext {
	case ".csv":
		doc, err := h.service.EmployeeCSV(c.Request.Context(), id)
		h.send(c, doc, err)
	case ".pdf":
		doc, err := h.service.EmployeePDF(c.Request.Context(), id)
		h.send(c, doc, err)
	default:
		h.writeServiceError(c, apperror.InvalidField("Format"))
	}
}
