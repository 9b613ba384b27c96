package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// DefaultExchange is the topic exchange lead events are published to.
	DefaultExchange = "realty.events"
	// LeadCreatedKey is the routing key for new leads.
	LeadCreatedKey = "lead.created"
)

// publisher is the subset of *amqp.Channel used for publishing.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier publishes lead events for downstream consumers.
type AMQPNotifier struct {
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   publisher
}

// NewAMQPNotifier connects to url and declares a durable topic exchange.
func NewAMQPNotifier(url, exchange string) (*AMQPNotifier, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp exchange declare: %w", err)
	}

	return &AMQPNotifier{exchange: exchange, conn: conn, ch: ch}, nil
}

func (a *AMQPNotifier) Name() string { return "amqp" }

// NotifyLead publishes a lead.created event.
func (a *AMQPNotifier) NotifyLead(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding lead event: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ch == nil {
		return errors.New("amqp channel not ready")
	}
	return a.ch.PublishWithContext(ctx, a.exchange, LeadCreatedKey, false, false, amqp.Publishing{
		MessageId:    n.LeadID,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Ready reports whether the broker connection is open.
func (a *AMQPNotifier) Ready() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ch == nil {
		return errors.New("amqp channel not ready")
	}
	if a.conn != nil && a.conn.IsClosed() {
		return errors.New("amqp connection closed")
	}
	return nil
}

// Close releases the channel and connection.
func (a *AMQPNotifier) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.ch.(*amqp.Channel); ok && c != nil {
		_ = c.Close()
	}
	a.ch = nil
	if a.conn != nil {
		err := a.conn.Close()
		a.conn = nil
		return err
	}
	return nil
}

// Compile-time interface check
var _ Notifier = (*AMQPNotifier)(nil)
