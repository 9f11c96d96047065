package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers events to out-of-scope subscribers. Delivery is
// best-effort and happens after commit; a failed publish never rolls back the
// booking it describes.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// AMQPPublisher fans events out on a topic exchange with the event type as
// routing key, so housekeeping can bind booking.transitioned and notifications
// can bind booking.*.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
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
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, e.Type, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   e.ID,
		Body:        body,
	})
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher is the fallback when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, e Event) error {
	log.Printf("event %s booking=%d room=%d from=%s to=%s", e.Type, e.BookingID, e.RoomID, e.From, e.To)
	return nil
}

func (LogPublisher) Close() error { return nil }
