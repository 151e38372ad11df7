package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() RenderInput {
	due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	return RenderInput{
		Business: BusinessView{Name: "Acme Studio", Email: "billing@acme.test"},
		Client:   ClientView{Name: "Jane Doe", Email: "jane@example.test", Company: "Doe LLC"},
		Invoice: InvoiceView{
			Number:        "INV-0042",
			Status:        "pending",
			Currency:      "EUR",
			DueDate:       &due,
			Subtotal:      250,
			TaxTotal:      20,
			DiscountTotal: 10,
			Total:         260,
			BalanceDue:    160,
		},
		Items: []LineItemView{
			{Description: "Design work", Quantity: 2, UnitPrice: 100, TaxRate: 0.1, Discount: 10, Total: 210},
			{Description: "Hosting", Quantity: 1, UnitPrice: 50, Total: 50},
		},
	}
}

func TestRenderHTMLContainsComputedTotals(t *testing.T) {
	html, err := NewHTMLRenderer().RenderHTML(sampleInput())
	require.NoError(t, err)

	assert.Contains(t, html, "INV-0042")
	assert.Contains(t, html, "Acme Studio")
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "EUR 260.00")
	assert.Contains(t, html, "EUR 160.00")
	assert.Contains(t, html, "2026-07-01")
	assert.Contains(t, html, "Design work")
}

func TestRenderHTMLDefaultsBusinessName(t *testing.T) {
	input := sampleInput()
	input.Business.Name = ""

	html, err := NewHTMLRenderer().RenderHTML(input)
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Invoice</strong>")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "USD 12.50", formatMoney(12.5, ""))
	assert.Equal(t, "EUR 0.00", formatMoney(0, "eur"))
	assert.Equal(t, "-", formatDate(nil))
	assert.Equal(t, "2", formatQuantity(2))
	assert.Equal(t, "1.5", formatQuantity(1.5))
	assert.Equal(t, "10%", formatRate(0.1))
	assert.Equal(t, "0%", formatRate(0))
}
