package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathTemplates(t *testing.T) {
	assert.Equal(t, "users/u1/profile/avatar.png", ProfileImagePath("u1", "avatar.png"))
	assert.Equal(t, "users/u1/logo/logo.svg", BusinessLogoPath("u1", "logo.svg"))
	assert.Equal(t, "users/u1/invoices/inv9/attachments/contract.pdf",
		InvoiceAttachmentPath("u1", "inv9", "contract.pdf"))
	assert.Equal(t, "users/u1/invoices/inv9/pdf/invoice-0042.pdf",
		InvoicePDFPath("u1", "inv9", "invoice-0042.pdf"))
	assert.Equal(t, "users/u1/expenses/exp3/receipts/receipt.jpg",
		ExpenseReceiptPath("u1", "exp3", "receipt.jpg"))
}
