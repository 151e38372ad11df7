package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailSender delivers the client-facing email for an invoice event.
// Implemented by the mail package.
type EmailSender interface {
	SendInvoiceEmail(evt InvoiceEvent) error
}

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	sender  EmailSender
}

type ConsumerConfig struct {
	RabbitMQURL   string
	PrefetchCount int
}

func NewConsumer(cfg *ConsumerConfig, sender EmailSender) (*Consumer, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if _, err := ch.QueueDeclare(InvoiceQueue, true, false, false, false, invoiceQueueArgs()); err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if _, err := ch.QueueDeclare(DeadLetterQueue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare DLQ: %w", err)
	}

	return &Consumer{conn: conn, channel: ch, sender: sender}, nil
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		InvoiceQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	return c.consumeLoop(ctx, msgs)
}

// consumeLoop drains deliveries until the context ends or the broker closes
// the channel. A closed channel yields zero-value deliveries forever, so it
// must return rather than spin.
func (c *Consumer) consumeLoop(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed by broker")
			}
			if err := c.processMessage(msg); err != nil {
				slog.Error("failed to process invoice event", "error", err)

				retryCount := 0
				if val, ok := msg.Headers["x-retry-count"].(int32); ok {
					retryCount = int(val)
				}

				if retryCount < 3 {
					if rerr := c.requeueMessage(msg, retryCount+1); rerr != nil {
						slog.Error("failed to requeue invoice event", "error", rerr)
					}
					msg.Ack(false)
				} else {
					msg.Nack(false, false)
					slog.Warn("invoice event sent to DLQ", "retries", retryCount)
				}
			} else {
				msg.Ack(false)
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Consumer) processMessage(msg amqp.Delivery) error {
	var evt InvoiceEvent
	if err := json.Unmarshal(msg.Body, &evt); err != nil {
		return fmt.Errorf("failed to unmarshal invoice event: %w", err)
	}

	slog.Info("invoice event received", "type", evt.Type, "invoice_id", evt.InvoiceID)

	if evt.ClientEmail == "" {
		slog.Warn("invoice event without client email, skipping", "invoice_id", evt.InvoiceID)
		return nil
	}

	if err := c.sender.SendInvoiceEmail(evt); err != nil {
		return fmt.Errorf("failed to send invoice email: %w", err)
	}
	return nil
}

func (c *Consumer) requeueMessage(msg amqp.Delivery, retryCount int) error {
	headers := msg.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-retry-count"] = int32(retryCount)

	// Quadratic backoff via per-message TTL.
	delay := time.Duration(retryCount*retryCount) * time.Second

	return c.channel.PublishWithContext(
		context.Background(),
		"",           // exchange
		InvoiceQueue, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        msg.Body,
			Headers:     headers,
			Expiration:  fmt.Sprintf("%d", delay.Milliseconds()),
		},
	)
}

func (c *Consumer) Close() error {
	if err := c.channel.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}
