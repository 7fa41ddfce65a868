package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the publisher uses
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher sends budget alerts and bill reminders to a durable queue
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	queue    string
	logger   zerolog.Logger
}

// NewAMQPPublisher dials the broker and declares the exchange and queue
func NewAMQPPublisher(url, exchange, queue string, logger zerolog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newAMQPPublisher(ch, exchange, queue, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newAMQPPublisher(ch channel, exchange, queue string, logger zerolog.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		channel:  ch,
		exchange: exchange,
		queue:    queue,
		logger:   logger.With().Str("component", "amqp_publisher").Logger(),
	}
	if err := p.setup(); err != nil {
		ch.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return p, nil
}

func (p *AMQPPublisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Routing key is the queue name on a direct exchange
	if err := p.channel.QueueBind(p.queue, p.queue, p.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// NotifyBudgetAlerts publishes one budget.exceeded message
func (p *AMQPPublisher) NotifyBudgetAlerts(ctx context.Context, alerts []domain.BudgetAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	return p.publish(ctx, Message{Type: MessageBudgetExceeded, Timestamp: time.Now().UTC(), Alerts: alerts})
}

// NotifyUpcomingBills publishes one bill.upcoming message
func (p *AMQPPublisher) NotifyUpcomingBills(ctx context.Context, bills []domain.Bill) error {
	if len(bills) == 0 {
		return nil
	}
	return p.publish(ctx, Message{Type: MessageBillsUpcoming, Timestamp: time.Now().UTC(), Bills: bills})
}

func (p *AMQPPublisher) publish(ctx context.Context, msg Message) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		p.queue,    // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Type:         msg.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.Debug().
		Str("type", msg.Type).
		Str("exchange", p.exchange).
		Str("queue", p.queue).
		Msg("Published notification")
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
