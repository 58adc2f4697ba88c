package events

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
)

var _ ports.EventPublisher = (*Hub)(nil)

// DefaultSubscriberBuffer is the per-subscriber queue length.
const DefaultSubscriberBuffer = 16

// Hub fans events out to in-process subscribers such as websocket connections.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription
	nextID uint64
	buffer int
	logger *slog.Logger
}

type subscription struct {
	ch     chan Envelope
	number string
}

// HubOption configures the hub.
type HubOption func(*Hub)

// WithHubLogger reports dropped events.
func WithHubLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithSubscriberBuffer overrides DefaultSubscriberBuffer.
func WithSubscriberBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs:   map[uint64]*subscription{},
		buffer: DefaultSubscriberBuffer,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Subscribe registers a listener. A non-empty orderNumber restricts delivery to that order.
// The returned cancel function closes the channel and is safe to call more than once.
func (h *Hub) Subscribe(orderNumber string) (<-chan Envelope, func()) {
	sub := &subscription{ch: make(chan Envelope, h.buffer), number: strings.TrimSpace(orderNumber)}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
}

// Subscribers reports how many listeners are registered.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Publish(ctx context.Context, event domain.Event) error {
	env := NewEnvelope(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.number != "" && !strings.EqualFold(sub.number, env.OrderNumber) {
			continue
		}
		select {
		case sub.ch <- env:
		default:
			h.logger.LogAttrs(ctx, slog.LevelWarn, "dropping order event for slow subscriber",
				slog.String("event", env.Event), slog.String("order.number", env.OrderNumber))
		}
	}
	return nil
}
