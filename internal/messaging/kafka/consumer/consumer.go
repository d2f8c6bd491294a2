package consumer

import (
	"context"
	"encoding/json"
	"go-nexushr/internal/events"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// EmployeeChangeHandler receives every decoded change event.
type EmployeeChangeHandler func(ctx context.Context, event events.EmployeeChangedEvent)

const (
	defaultMinBackoff = 200 * time.Millisecond
	defaultMaxBackoff = 5 * time.Second
)

type options struct {
	minBackoff time.Duration
	maxBackoff time.Duration
}

type Option func(*options)

// WithFetchBackoff sets the wait after a failed fetch. It doubles per
// consecutive failure up to limit and resets after a successful fetch.
func WithFetchBackoff(initial, limit time.Duration) Option {
	return func(o *options) {
		o.minBackoff = initial
		o.maxBackoff = limit
	}
}

// ConsumeEmployeeChanges feeds the change topic into handle until ctx ends.
// Undecodable messages are committed and skipped.
func ConsumeEmployeeChanges(
	ctx context.Context,
	reader MessageReader,
	handle EmployeeChangeHandler,
	logger *zap.Logger,
	opts ...Option,
) {
	o := options{minBackoff: defaultMinBackoff, maxBackoff: defaultMaxBackoff}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.Named("kafka.consumer.employee_changes")
	log.Info("employee changes consumer started")

	backoff := o.minBackoff
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee changes consumer stopped")
				return
			}
			log.Error("fetch employee change message failed",
				zap.Duration("retry_in", backoff),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				log.Info("employee changes consumer stopped")
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, o.maxBackoff)
			continue
		}
		backoff = o.minBackoff

		var event events.EmployeeChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee change event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if event.EmployeeID == "" {
			event.EmployeeID = string(msg.Key)
		}

		handle(ctx, event)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee change message failed", zap.Error(err))
			continue
		}

		log.Debug("employee change delivered",
			zap.String("event_type", event.EventType),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
