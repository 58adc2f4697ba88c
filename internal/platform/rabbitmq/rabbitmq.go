// Package rabbitmq wraps an AMQP connection with publisher confirms enabled.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the topic exchange order events are published to.
const DefaultExchange = "orders_topic"

// Client owns one connection and one confirm-mode channel.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	acks <-chan amqp.Confirmation
	// publishes are serialized so each confirmation matches its message
	mu sync.Mutex
}

// Dial connects to url (amqp:// or amqps://) and enables publisher confirms.
func Dial(url string) (*Client, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("rabbitmq url is empty")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	return &Client{conn: conn, ch: ch, acks: acks}, nil
}

// DeclareTopicExchange declares a durable topic exchange.
func (c *Client) DeclareTopicExchange(name string) error {
	if c == nil || c.ch == nil {
		return errors.New("rabbitmq channel not configured")
	}
	return c.ch.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil)
}

// Ping reports whether the connection is still open.
func (c *Client) Ping() error {
	if c == nil || c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// Publish sends one message and waits for the broker to ack it.
func (c *Client) Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table, contentType string, persistent bool) error {
	if c == nil || c.ch == nil {
		return errors.New("rabbitmq channel not configured")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	mode := amqp.Transient
	if persistent {
		mode = amqp.Persistent
	}
	if err := c.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		DeliveryMode: mode,
		ContentType:  contentType,
		Timestamp:    time.Now().UTC(),
		Headers:      headers,
		Body:         body,
	}); err != nil {
		return err
	}
	select {
	case conf, ok := <-c.acks:
		if !ok {
			return errors.New("rabbitmq confirmation channel closed")
		}
		if !conf.Ack {
			return fmt.Errorf("rabbitmq nacked delivery %d", conf.DeliveryTag)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the channel and connection.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
