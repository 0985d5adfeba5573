package interaction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPSink publishes interactions as JSON onto a durable queue.
type AMQPSink struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewAMQPSink dials url and declares queue.
func NewAMQPSink(url, queue string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPSink{conn: conn, ch: ch, queue: queue}, nil
}

// Enabled reports whether the connection is still open.
func (s *AMQPSink) Enabled() bool {
	return s != nil && s.conn != nil && !s.conn.IsClosed()
}

// Send publishes one interaction to the default exchange.
func (s *AMQPSink) Send(ctx context.Context, item Interaction) error {
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkTransport, err)
	}

	err = s.ch.PublishWithContext(ctx,
		"",      // default exchange
		s.queue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkTransport, err)
	}
	return nil
}

// Close releases the channel and the connection.
func (s *AMQPSink) Close() error {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
