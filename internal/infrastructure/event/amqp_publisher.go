package event

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tinymillion/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// amqpChannel is the subset of *amqp.Channel the publisher uses
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes integration events to a topic exchange.
// The event type is used as the routing key.
type AMQPPublisher struct {
	conn       *amqp.Connection
	ch         amqpChannel
	exchange   string
	serializer *EventSerializer
	logger     *zap.Logger
}

// NewAMQPPublisher dials url and declares a durable topic exchange
func NewAMQPPublisher(url, exchange string, serializer *EventSerializer, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	logger.Info("Connected to message broker", zap.String("exchange", exchange))
	return &AMQPPublisher{
		conn:       conn,
		ch:         ch,
		exchange:   exchange,
		serializer: serializer,
		logger:     logger,
	}, nil
}

func newAMQPPublisherWithChannel(ch amqpChannel, exchange string, serializer *EventSerializer, logger *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange, serializer: serializer, logger: logger}
}

// Publish sends each event as a persistent JSON message. Types the
// serializer cannot decode again are skipped.
func (p *AMQPPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		if !p.serializer.IsRegistered(event.EventType()) {
			p.logger.Warn("Skipping unregistered integration event", zap.String("event_type", event.EventType()))
			continue
		}
		body, err := p.serializer.Marshal(event)
		if err != nil {
			return err
		}
		msg := amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID().String(),
			Type:         event.EventType(),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		}
		if err := p.ch.PublishWithContext(ctx, p.exchange, event.EventType(), false, false, msg); err != nil {
			return fmt.Errorf("publish %s: %w", event.EventType(), err)
		}
		p.logger.Debug("Published integration event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
		)
	}
	return nil
}

// Close closes the channel and connection
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

var _ shared.EventPublisher = (*AMQPPublisher)(nil)
