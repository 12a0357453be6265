package amqpadapter

import (
	"context"
	"encoding/json"

	"github.com/streadway/amqp"

	"guestpost/internal/core/port"
)

// Publisher delivers pipeline events to an AMQP topic exchange, routed by
// event kind. It implements port.EventPublisher.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher dials the broker and declares the durable topic exchange.
// The caller must Close the publisher on shutdown.
func NewPublisher(addr, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, err
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err = channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// Publish sends one event, routed by its kind.
func (p *Publisher) Publish(_ context.Context, event port.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.channel.Publish(p.exchange, event.Kind, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   event.ID,
		Timestamp:   event.OccurredAt,
		Body:        body,
	})
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

// Publish implements port.EventPublisher.
func (NoopPublisher) Publish(context.Context, port.Event) error { return nil }
