package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
)

func TestDecorateTotalsRecomputesDerivedFields(t *testing.T) {
	svc := NewInvoiceService(nil, nil)
	inv := &models.Invoice{
		LineItems: []models.LineItem{
			{Description: "Design", Quantity: 2, UnitPrice: 100, TaxRate: 0.1, Discount: 10, Total: 999},
			{Description: "Hosting", Quantity: 1, UnitPrice: 50},
		},
		Subtotal: 1, TaxTotal: 1, DiscountTotal: 1, Total: 1,
	}

	svc.decorateTotals(inv)

	assert.InDelta(t, 210, inv.LineItems[0].Total, 1e-9)
	assert.InDelta(t, 50, inv.LineItems[1].Total, 1e-9)
	assert.InDelta(t, 250, inv.Subtotal, 1e-9)
	assert.InDelta(t, 20, inv.TaxTotal, 1e-9)
	assert.InDelta(t, 10, inv.DiscountTotal, 1e-9)
	assert.InDelta(t, 260, inv.Total, 1e-9)
}

func TestDecorateTotalsEmptyInvoiceZeroesEverything(t *testing.T) {
	svc := NewInvoiceService(nil, nil)
	inv := &models.Invoice{Subtotal: 42, TaxTotal: 7, DiscountTotal: 3, Total: 46}

	svc.decorateTotals(inv)

	assert.Zero(t, inv.Subtotal)
	assert.Zero(t, inv.TaxTotal)
	assert.Zero(t, inv.DiscountTotal)
	assert.Zero(t, inv.Total)
}

func TestApplyPaymentPartialKeepsStatus(t *testing.T) {
	svc := NewInvoiceService(nil, nil)
	inv := &models.Invoice{Status: models.InvoiceStatusPending, Total: 260, AmountPaid: 0}

	paid, status := svc.applyPayment(inv, 100)

	assert.InDelta(t, 100, paid, 1e-9)
	assert.Equal(t, models.InvoiceStatusPending, status)
}

func TestApplyPaymentSettlingBalanceFlipsToPaid(t *testing.T) {
	svc := NewInvoiceService(nil, nil)
	inv := &models.Invoice{Status: models.InvoiceStatusOverdue, Total: 260, AmountPaid: 160}

	paid, status := svc.applyPayment(inv, 100)

	assert.InDelta(t, 260, paid, 1e-9)
	assert.Equal(t, models.InvoiceStatusPaid, status)
}

func TestApplyPaymentOverpaymentStillPaid(t *testing.T) {
	svc := NewInvoiceService(nil, nil)
	inv := &models.Invoice{Status: models.InvoiceStatusPending, Total: 100}

	paid, status := svc.applyPayment(inv, 150)

	assert.InDelta(t, 150, paid, 1e-9)
	assert.Equal(t, models.InvoiceStatusPaid, status)
}
