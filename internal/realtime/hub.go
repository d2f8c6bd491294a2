package realtime

import (
	"sync"

	"go-nexushr/internal/events"

	"go.uber.org/zap"
)

const defaultBuffer = 16

// Hub fans employee change events out to in-process subscribers. A slow
// subscriber loses events instead of blocking the feed.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]chan events.EmployeeChangedEvent
	nextID uint64
	buffer int
	closed bool
	logger *zap.Logger
}

func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Hub{
		subs:   make(map[uint64]chan events.EmployeeChangedEvent),
		buffer: buffer,
		logger: logger.Named("realtime.hub"),
	}
}

// Subscribe registers a listener. The returned func unsubscribes and closes
// the channel; calling it twice is safe.
func (h *Hub) Subscribe() (<-chan events.EmployeeChangedEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan events.EmployeeChangedEvent, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.unsubscribe(id) })
	}
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *Hub) Broadcast(event events.EmployeeChangedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.logger.Warn("subscriber too slow, change event dropped",
				zap.Uint64("subscriber_id", id),
				zap.String("employee_id", event.EmployeeID),
			)
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription. Later Subscribe calls get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
