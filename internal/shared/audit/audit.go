package audit

import (
	"context"
	"time"

	"go-nexushr/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Entry is one operator-visible event: shutdowns, data repairs, disabling or
// deleting staff.
type Entry struct {
	Action  string
	Message string
	Meta    map[string]any
}

type Logger interface {
	Log(ctx context.Context, entry Entry)
}

type StdoutLogger struct {
	logger *zap.Logger
}

func NewStdoutLogger(logger *zap.Logger) *StdoutLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &StdoutLogger{logger: logger.Named("audit")}
}

func (l *StdoutLogger) Log(ctx context.Context, entry Entry) {
	meta := contextutil.ExtractMetadata(ctx)
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.String("request_id", meta.RequestID),
		zap.String("user_id", meta.UserID),
		zap.String("role", meta.Role),
		zap.Any("meta", entry.Meta),
	)
}

// Nop discards entries.
type Nop struct{}

func (Nop) Log(context.Context, Entry) {}
