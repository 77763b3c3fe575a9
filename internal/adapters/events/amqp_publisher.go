package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ride-dispatch-service/internal/ports"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// publishChannel is the subset of *amqp.Channel used for publishing.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher sends ride events as JSON to a RabbitMQ topic exchange.
// The routing key is derived from the event type, e.g. RIDE_DISPATCHED
// becomes ride.dispatched.
type AMQPPublisher struct {
	exchange string
	log      *zap.Logger

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     publishChannel
	closed bool
}

// DialAMQP connects to the broker and declares a durable topic exchange.
func DialAMQP(url, exchange string, log *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	p := newAMQPPublisher(ch, exchange, log)
	p.conn = conn
	return p, nil
}

func newAMQPPublisher(ch publishChannel, exchange string, log *zap.Logger) *AMQPPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPPublisher{exchange: exchange, log: log, ch: ch}
}

// RoutingKey maps an event type to its topic routing key.
func RoutingKey(eventType string) string {
	return strings.ToLower(strings.Replace(eventType, "_", ".", 1))
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev ports.RideEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("publish %s: marshal event: %w", ev.Type, err)
	}

	p.mu.Lock()
	ch, closed := p.ch, p.closed
	p.mu.Unlock()

	if closed || ch == nil {
		return errors.New("publish: rabbitmq channel not available")
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	key := RoutingKey(ev.Type)
	err = ch.PublishWithContext(
		publishCtx,
		p.exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.RideID,
			Timestamp:    ev.OccurredAt,
			Type:         ev.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s to %s/%s: %w", ev.Type, p.exchange, key, err)
	}

	p.log.Debug("event published",
		zap.String("exchange", p.exchange),
		zap.String("routing_key", key),
		zap.String("ride_id", ev.RideID),
	)
	return nil
}

// Close releases the channel and connection. It is safe to call twice.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
