package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
)

func TestLineItemTotal(t *testing.T) {
	tests := []struct {
		name     string
		item     models.LineItem
		expected float64
	}{
		{
			name:     "tax applied to extended price before discount",
			item:     models.LineItem{Quantity: 2, UnitPrice: 100, TaxRate: 0.1, Discount: 10},
			expected: 2*100*(1+0.1) - 10,
		},
		{
			name:     "no tax no discount",
			item:     models.LineItem{Quantity: 3, UnitPrice: 40},
			expected: 120,
		},
		{
			name:     "zero quantity",
			item:     models.LineItem{Quantity: 0, UnitPrice: 99.99, TaxRate: 0.2},
			expected: 0,
		},
		{
			name:     "discount exceeding the extended price goes negative",
			item:     models.LineItem{Quantity: 1, UnitPrice: 5, Discount: 10},
			expected: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, LineItemTotal(tt.item), 1e-9)
		})
	}
}

func TestInvoiceTotals_Empty(t *testing.T) {
	totals := InvoiceTotals(nil)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.TaxTotal)
	assert.Zero(t, totals.DiscountTotal)
	assert.Zero(t, totals.Total)
}

func TestInvoiceTotals_MixedItems(t *testing.T) {
	items := []models.LineItem{
		{Quantity: 2, UnitPrice: 100, TaxRate: 0.1, Discount: 10},
		{Quantity: 1, UnitPrice: 50},
	}

	totals := InvoiceTotals(items)

	assert.InDelta(t, 250.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 20.0, totals.TaxTotal, 1e-9)
	assert.InDelta(t, 10.0, totals.DiscountTotal, 1e-9)
	assert.InDelta(t, 260.0, totals.Total, 1e-9)
}

func TestInvoiceTotals_MatchesPerLineTotals(t *testing.T) {
	items := []models.LineItem{
		{Quantity: 4, UnitPrice: 12.5, TaxRate: 0.18, Discount: 3},
		{Quantity: 1.5, UnitPrice: 80, TaxRate: 0.07},
		{Quantity: 10, UnitPrice: 9.99, Discount: 5.5},
	}

	var sum float64
	for _, item := range items {
		sum += LineItemTotal(item)
	}

	assert.InDelta(t, sum, InvoiceTotals(items).Total, 1e-9)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(50, 0), "zero total must not divide")
	assert.False(t, math.IsNaN(Percentage(0, 0)))
	assert.InDelta(t, 25.0, Percentage(50, 200), 1e-9)
	assert.InDelta(t, 150.0, Percentage(300, 200), 1e-9)
}

func TestTaxHelpers(t *testing.T) {
	assert.InDelta(t, 18.0, Tax(100, 0.18), 1e-9)
	assert.InDelta(t, 118.0, TotalWithTax(100, 0.18), 1e-9)
}

func TestDiscountHelpers(t *testing.T) {
	assert.InDelta(t, 10.0, DiscountAmount(100, 0.1), 1e-9)
	assert.InDelta(t, 90.0, TotalAfterDiscount(100, 0.1), 1e-9)
}
