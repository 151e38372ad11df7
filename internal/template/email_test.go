package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceCreatedTemplate(t *testing.T) {
	due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	body := InvoiceCreatedTemplate("Jane", "Acme Studio", "INV-0042", 260, "EUR", &due)

	assert.Contains(t, body, "Dear Jane,")
	assert.Contains(t, body, "Acme Studio")
	assert.Contains(t, body, "INV-0042")
	assert.Contains(t, body, "EUR 260.00")
	assert.Contains(t, body, "July 1, 2026")
}

func TestInvoiceCreatedTemplateWithoutDueDate(t *testing.T) {
	body := InvoiceCreatedTemplate("Jane", "Acme Studio", "INV-0042", 260, "", nil)

	assert.Contains(t, body, "USD 260.00")
	assert.Contains(t, body, "upon receipt")
}

func TestPaymentReceivedTemplate(t *testing.T) {
	body := PaymentReceivedTemplate("Jane", "Acme Studio", "INV-0042", 100, "EUR")

	assert.Contains(t, body, "Payment received")
	assert.Contains(t, body, "EUR 100.00")
	assert.Contains(t, body, "INV-0042")
}

func TestInvoiceReminderTemplate(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	body := InvoiceReminderTemplate("Jane", "Acme Studio", "INV-0042", 160, "EUR", &due)

	assert.Contains(t, body, "reminder")
	assert.Contains(t, body, "June 1, 2026")
	assert.Contains(t, body, "EUR 160.00")
}
