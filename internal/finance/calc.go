// Package finance holds the pure calculation engine used across invoices,
// budgets and payments. Every function is total: no I/O, no rounding, no
// faults for finite inputs. Callers validate quantity/price/rate domains
// before invoking; negative inputs produce numerically meaningless results
// rather than errors. Rounding and display formatting are presentation
// concerns and happen elsewhere.
package finance

import "github.com/webdroid21/fin-beacon-pro-sub001/internal/models"

// Totals aggregates the derived money fields of an invoice.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	TaxTotal      float64 `json:"tax_total"`
	DiscountTotal float64 `json:"discount_total"`
	Total         float64 `json:"total"`
}

// LineItemTotal computes quantity*unitPrice*(1+taxRate) - discount. Tax
// applies to the pre-discount extended price; the discount is a flat
// currency amount, not a rate.
func LineItemTotal(item models.LineItem) float64 {
	extended := item.Quantity * item.UnitPrice
	return extended + extended*item.TaxRate - item.Discount
}

// InvoiceTotals derives the aggregate totals for a sequence of line items.
// The empty sequence yields all-zero fields.
func InvoiceTotals(items []models.LineItem) Totals {
	var t Totals
	for _, item := range items {
		extended := item.Quantity * item.UnitPrice
		t.Subtotal += extended
		t.TaxTotal += extended * item.TaxRate
		t.DiscountTotal += item.Discount
	}
	t.Total = t.Subtotal + t.TaxTotal - t.DiscountTotal
	return t
}

// Percentage returns value/total*100, or 0 when total is 0.
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}

func Tax(amount, rate float64) float64 {
	return amount * rate
}

func TotalWithTax(amount, rate float64) float64 {
	return amount + Tax(amount, rate)
}

func DiscountAmount(amount, rate float64) float64 {
	return amount * rate
}

func TotalAfterDiscount(amount, rate float64) float64 {
	return amount - DiscountAmount(amount, rate)
}
