package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher pushes invoice events onto the notification queue.
type Publisher struct {
	conn              *amqp.Connection
	channel           *amqp.Channel
	messagesPublished int64
	messagesFailed    int64
}

func NewPublisher(amqpURL string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

// Publish declares the queue and enqueues the event. Publishing is
// best-effort from the invoice flow's perspective: a failure here must not
// fail the originating write, the caller logs and moves on.
func (p *Publisher) Publish(ctx context.Context, evt InvoiceEvent) error {
	_, err := p.channel.QueueDeclare(
		InvoiceQueue,       // queue name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		invoiceQueueArgs(), // dead-letter routing
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(evt)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal invoice event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",           // exchange
		InvoiceQueue, // routing key (queue name)
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish invoice event: %w", err)
	}

	p.messagesPublished++
	slog.Info("invoice event published",
		"queue", InvoiceQueue,
		"type", evt.Type,
		"invoice_id", evt.InvoiceID,
	)

	return nil
}

// GetMetrics returns publisher metrics
func (p *Publisher) GetMetrics() map[string]any {
	return map[string]any{
		"messages_published": p.messagesPublished,
		"messages_failed":    p.messagesFailed,
		"queue":              InvoiceQueue,
	}
}

func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
