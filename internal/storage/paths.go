package storage

import "fmt"

// Object paths are deterministic templates under the owning user; binary
// payloads have no identity beyond them.

func ProfileImagePath(userID, filename string) string {
	return fmt.Sprintf("users/%s/profile/%s", userID, filename)
}

func BusinessLogoPath(userID, filename string) string {
	return fmt.Sprintf("users/%s/logo/%s", userID, filename)
}

func InvoiceAttachmentPath(userID, invoiceID, filename string) string {
	return fmt.Sprintf("users/%s/invoices/%s/attachments/%s", userID, invoiceID, filename)
}

func InvoicePDFPath(userID, invoiceID, filename string) string {
	return fmt.Sprintf("users/%s/invoices/%s/pdf/%s", userID, invoiceID, filename)
}

func ExpenseReceiptPath(userID, expenseID, filename string) string {
	return fmt.Sprintf("users/%s/expenses/%s/receipts/%s", userID, expenseID, filename)
}
