// Package events publishes committed ledger events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher sends events to a durable topic exchange, using the event type as routing key.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  channel
	reopen   func() (channel, error)
	exchange string
}

var _ portssvc.EventPublisher = (*AMQPPublisher)(nil)

func validateAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(amqpURL, exchange string) (*AMQPPublisher, error) {
	cleanURL, err := validateAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	// Bounded dial timeout so startup does not hang
	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	reopen := func() (channel, error) {
		return conn.Channel()
	}
	p, err := newPublisher(reopen, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(reopen func() (channel, error), exchange string) (*AMQPPublisher, error) {
	ch, err := reopen()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := declare(ch, exchange); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &AMQPPublisher{channel: ch, reopen: reopen, exchange: exchange}, nil
}

func declare(ch channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return nil
}

// Publish sends one event. A failed publish reopens the channel and retries once.
func (p *AMQPPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type, err)
	}
	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg)
	if err == nil {
		return nil
	}

	middleware.GetLoggerFromCtx(ctx).Warn("Publish failed, reopening channel",
		slog.String("exchange", p.exchange),
		slog.String("routing_key", event.Type),
		slog.String("error", err.Error()))

	ch, chErr := p.reopen()
	if chErr != nil {
		return errors.Join(err, chErr)
	}
	if declErr := declare(ch, p.exchange); declErr != nil {
		_ = ch.Close()
		return errors.Join(err, declErr)
	}
	_ = p.channel.Close()
	p.channel = ch
	return p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, msg)
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

// NoopPublisher drops events. It is used when no broker is configured.
type NoopPublisher struct {
	Logger *slog.Logger
}

var _ portssvc.EventPublisher = NoopPublisher{}

func (p NoopPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	logger := p.Logger
	if logger == nil {
		logger = middleware.GetLoggerFromCtx(ctx)
	}
	logger.Debug("Event publish skipped, no broker configured", slog.String("event_type", event.Type))
	return nil
}

func (NoopPublisher) Close() error { return nil }
