package template

import (
	"fmt"
	"time"
)

func formatAmount(amount float64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %.2f", currency, amount)
}

func formatDueDate(due *time.Time) string {
	if due == nil || due.IsZero() {
		return "upon receipt"
	}
	return due.UTC().Format("January 2, 2006")
}

func InvoiceCreatedTemplate(clientName, businessName, number string, amount float64, currency string, due *time.Time) string {
	return fmt.Sprintf(`
		<html>
        <body>
            <h2>Invoice %s</h2>
            <p>Dear %s,</p>
            <p>%s has sent you invoice <strong>%s</strong> for <strong>%s</strong>, due %s.</p>
            <br>
            <p>Best regards,<br>%s</p>
        </body>
        </html>
		`, number, clientName, businessName, number, formatAmount(amount, currency), formatDueDate(due), businessName)
}

func PaymentReceivedTemplate(clientName, businessName, number string, amount float64, currency string) string {
	return fmt.Sprintf(`
		<html>
        <body>
            <h2>Payment received</h2>
            <p>Dear %s,</p>
            <p>We received your payment of <strong>%s</strong> toward invoice <strong>%s</strong>. Thank you!</p>
            <br>
            <p>Best regards,<br>%s</p>
        </body>
        </html>
		`, clientName, formatAmount(amount, currency), number, businessName)
}

func InvoiceReminderTemplate(clientName, businessName, number string, amount float64, currency string, due *time.Time) string {
	return fmt.Sprintf(`
		<html>
        <body>
            <h2>Payment reminder</h2>
            <p>Dear %s,</p>
            <p>This is a friendly reminder that invoice <strong>%s</strong> for <strong>%s</strong> was due %s.</p>
            <br>
            <p>Best regards,<br>%s</p>
        </body>
        </html>
		`, clientName, number, formatAmount(amount, currency), formatDueDate(due), businessName)
}
