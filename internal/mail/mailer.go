package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/event"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/template"
)

type Mailer struct {
	dialer *gomail.Dialer
}

func NewMailer(email, password string) *Mailer {
	d := gomail.NewDialer("smtp.gmail.com", 587, email, password)
	return &Mailer{dialer: d}
}

// SendInvoiceEmail picks the template matching the event type and sends it
// to the invoice's client.
func (m *Mailer) SendInvoiceEmail(evt event.InvoiceEvent) error {
	var subject, body string
	switch evt.Type {
	case event.TypeInvoiceCreated:
		subject = fmt.Sprintf("Invoice %s from %s", evt.InvoiceNumber, evt.BusinessName)
		body = template.InvoiceCreatedTemplate(evt.ClientName, evt.BusinessName, evt.InvoiceNumber, evt.Amount, evt.Currency, evt.DueDate)
	case event.TypePaymentReceived, event.TypeInvoicePaid:
		subject = fmt.Sprintf("Payment received for invoice %s", evt.InvoiceNumber)
		body = template.PaymentReceivedTemplate(evt.ClientName, evt.BusinessName, evt.InvoiceNumber, evt.Amount, evt.Currency)
	case event.TypeInvoiceReminder:
		subject = fmt.Sprintf("Reminder: invoice %s is due", evt.InvoiceNumber)
		body = template.InvoiceReminderTemplate(evt.ClientName, evt.BusinessName, evt.InvoiceNumber, evt.Amount, evt.Currency, evt.DueDate)
	default:
		return fmt.Errorf("unsupported invoice event type: %s", evt.Type)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.dialer.Username)
	msg.SetHeader("To", evt.ClientEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}
