package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-nexushr/internal/events"
	"go-nexushr/internal/messaging/kafka"
	kafkaMock "go-nexushr/internal/messaging/kafka/mock"
	"go-nexushr/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func pendingEvent(id string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "req-" + id,
		AggregateType: "employee",
		AggregateID:   "emp-" + id,
		EventType:     events.ChangeUpdate,
		Topic:         events.EmployeeChangesTopic,
		Payload:       []byte(`{"event_type":"UPDATE"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{pendingEvent("1"), pendingEvent("2")}, nil)
		repo.EXPECT().MarkSent(ctx, "1").Return(nil)
		repo.EXPECT().MarkSent(ctx, "2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Len(t, writer.msgs, 2)
		assert.Equal(t, events.EmployeeChangesTopic, writer.msgs[0].Topic)
		assert.Equal(t, "emp-1", string(writer.msgs[0].Key))

		headers := map[string]string{}
		for _, h := range writer.msgs[0].Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "UPDATE", headers["event_type"])
		assert.Equal(t, "req-1", headers["request_id"])
	})

	t.Run("publish error marks failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{err: errors.New("broker down")}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{pendingEvent("1")}, nil)
		repo.EXPECT().MarkFailed(ctx, "1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), gomock.Any()).Times(0)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 0, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.EqualError(t, err, "db down")
	})
}
