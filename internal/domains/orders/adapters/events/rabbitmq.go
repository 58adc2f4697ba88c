package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
)

// ConfirmPublisher is the broker capability the publisher needs.
type ConfirmPublisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table, contentType string, persistent bool) error
}

var _ ports.EventPublisher = (*BrokerPublisher)(nil)

const publishTimeout = 5 * time.Second

// BrokerPublisher sends events as JSON to a topic exchange.
// Routing keys are orders.placed and orders.status.<status>.
type BrokerPublisher struct {
	client   ConfirmPublisher
	exchange string
	logger   *slog.Logger
}

func NewBrokerPublisher(client ConfirmPublisher, exchange string, logger *slog.Logger) *BrokerPublisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BrokerPublisher{client: client, exchange: exchange, logger: logger}
}

func (p *BrokerPublisher) Publish(ctx context.Context, event domain.Event) error {
	env := NewEnvelope(event)
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}
	key := RoutingKey(event)
	// the request context may already be done once the response is written
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	headers := amqp.Table{"event": env.Event, "order_number": env.OrderNumber}
	if err := p.client.Publish(ctx, p.exchange, key, body, headers, "application/json", true); err != nil {
		p.logger.LogAttrs(ctx, slog.LevelError, "failed to publish order event",
			slog.String("event", env.Event),
			slog.String("routing_key", key),
			slog.String("order.number", env.OrderNumber),
			slog.String("error", err.Error()))
		return err
	}
	p.logger.LogAttrs(ctx, slog.LevelDebug, "order event published", slog.String("routing_key", key), slog.String("order.number", env.OrderNumber))
	return nil
}

// RoutingKey derives the topic routing key for an event.
func RoutingKey(event domain.Event) string {
	switch e := event.(type) {
	case domain.OrderPlaced:
		return "orders.placed"
	case domain.OrderStatusChanged:
		return "orders.status." + strings.ToLower(string(e.To))
	default:
		return "orders.event"
	}
}
