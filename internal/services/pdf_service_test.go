package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
)

func TestBuildRenderInputFlattensRecords(t *testing.T) {
	due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	inv := &models.Invoice{
		UserID:   "user-1",
		Number:   "INV-0042",
		Status:   models.InvoiceStatusPending,
		Currency: "EUR",
		DueDate:  &due,
		LineItems: []models.LineItem{
			{Description: "Design", Quantity: 2, UnitPrice: 100, TaxRate: 0.1, Discount: 10, Total: 210},
		},
		Subtotal: 250, TaxTotal: 20, DiscountTotal: 10, Total: 260, AmountPaid: 100,
		Notes: "Net 30",
	}
	inv.ID = "inv-1"
	client := &models.Client{Name: "Jane Doe", Email: "jane@example.test", Company: "Doe LLC"}
	profile := &models.BusinessProfile{BusinessName: "Acme Studio", Email: "billing@acme.test", LogoURL: "http://cdn/logo.png"}

	input := buildRenderInput(inv, client, profile)

	assert.Equal(t, "Acme Studio", input.Business.Name)
	assert.Equal(t, "Jane Doe", input.Client.Name)
	assert.Equal(t, "INV-0042", input.Invoice.Number)
	assert.Equal(t, "pending", input.Invoice.Status)
	assert.InDelta(t, 160, input.Invoice.BalanceDue, 1e-9)
	require.Len(t, input.Items, 1)
	assert.InDelta(t, 210, input.Items[0].Total, 1e-9)
}

func TestBuildRenderInputFallsBackToProfileCurrency(t *testing.T) {
	inv := &models.Invoice{}
	profile := &models.BusinessProfile{Currency: "GBP"}

	input := buildRenderInput(inv, &models.Client{}, profile)

	assert.Equal(t, "GBP", input.Invoice.Currency)
}
