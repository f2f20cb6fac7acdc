package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"expenseapi/internal/config"
	"expenseapi/internal/model"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends expense events to a durable direct exchange.
type Publisher struct {
	conn     *amqp091.Connection
	ch       channel
	exchange string
	queue    string
	log      *zap.Logger
	now      func() time.Time
}

// NewPublisher dials the broker and declares the exchange, queue and binding.
func NewPublisher(cfg config.AMQPConfig, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declare(ch, cfg.Exchange, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: cfg.Exchange,
		queue:    cfg.Queue,
		log:      log,
		now:      time.Now,
	}, nil
}

func declare(ch *amqp091.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	// The queue name doubles as the routing key on the direct exchange.
	if err := ch.QueueBind(queue, queue, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// PublishExpenseCreated publishes a persistent expense.created message.
func (p *Publisher) PublishExpenseCreated(ctx context.Context, e model.Expense) error {
	now := p.now()
	body, err := newExpenseCreatedMessage(e, now).encode()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, p.exchange, p.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    now,
		Type:         TypeExpenseCreated,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.log.Debug("expense event published",
		zap.String("component", "events"),
		zap.String("expense_id", e.ID),
		zap.String("exchange", p.exchange),
		zap.String("queue", p.queue),
	)
	return nil
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) PublishExpenseCreated(context.Context, model.Expense) error { return nil }

func (Noop) Close() error { return nil }
