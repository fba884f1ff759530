// Package events publishes insight lifecycle updates to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadolammi/careerinsights/internal/slug"
	"github.com/streadway/amqp"
)

const Exchange = "insight_updates"

const (
	StatusCreated   = "created"
	StatusRefreshed = "refreshed"
)

type Update struct {
	Industry  string    `json:"industry"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, update Update) error
}

// Nop drops updates. Used when RabbitMQ is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, Update) error { return nil }

// AMQPPublisher publishes JSON updates on the insight_updates topic exchange.
type AMQPPublisher struct {
	conn *amqp.Connection
}

// NewAMQPPublisher dials url and declares the exchange.
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error connecting to rabbitmq channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn}, nil
}

// RoutingKey is insight.<industry-slug>.
func RoutingKey(industry string) string {
	return "insight." + slug.Make(industry)
}

// publishing builds the message for update.
func publishing(update Update) (amqp.Publishing, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   update.Timestamp,
		Body:        body,
	}, nil
}

func (p *AMQPPublisher) Publish(_ context.Context, update Update) error {
	msg, err := publishing(update)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(
		Exchange,
		RoutingKey(update.Industry),
		false,
		false,
		msg,
	)
}

func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}
