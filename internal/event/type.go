package event

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type InvoiceEventType string

const (
	TypeInvoiceCreated  InvoiceEventType = "invoice.created"
	TypeInvoicePaid     InvoiceEventType = "invoice.paid"
	TypePaymentReceived InvoiceEventType = "invoice.payment_received"
	TypeInvoiceReminder InvoiceEventType = "invoice.reminder"
)

const (
	InvoiceQueue    = "invoice_notifications"
	DeadLetterQueue = "invoice_notifications.dlq"
)

// invoiceQueueArgs routes rejected deliveries to the dead-letter queue
// through the default exchange. Publisher and consumer must declare the
// queue with identical arguments or the broker rejects the redeclaration.
func invoiceQueueArgs() amqp.Table {
	return amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": DeadLetterQueue,
	}
}

// InvoiceEvent is the wire payload carried over the notification queue. The
// consumer turns it into a client-facing email; everything it needs is
// denormalized here so it never reads the document store.
type InvoiceEvent struct {
	ID            string           `json:"id"`
	Type          InvoiceEventType `json:"type"`
	UserID        string           `json:"user_id"`
	InvoiceID     string           `json:"invoice_id"`
	InvoiceNumber string           `json:"invoice_number"`
	BusinessName  string           `json:"business_name"`
	ClientName    string           `json:"client_name"`
	ClientEmail   string           `json:"client_email"`
	Amount        float64          `json:"amount"`
	Currency      string           `json:"currency"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}
