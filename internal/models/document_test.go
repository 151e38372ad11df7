package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStamp(t *testing.T) {
	var d Document
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	d.Stamp(first)

	assert.Equal(t, first, d.CreatedAt)
	assert.Equal(t, first, d.UpdatedAt)

	later := first.Add(time.Hour)
	d.Stamp(later)

	assert.Equal(t, first, d.CreatedAt, "createdAt is assigned once")
	assert.Equal(t, later, d.UpdatedAt)
	assert.True(t, !d.UpdatedAt.Before(d.CreatedAt))
}

func TestInvoiceBalanceDue(t *testing.T) {
	inv := Invoice{Total: 260, AmountPaid: 100}
	assert.InDelta(t, 160.0, inv.BalanceDue(), 1e-9)

	inv.AmountPaid = 260
	assert.Zero(t, inv.BalanceDue())
}

func TestInvoiceIsPastDue(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	due := now.Add(-24 * time.Hour)

	inv := Invoice{Total: 100, DueDate: &due}
	assert.True(t, inv.IsPastDue(now))

	inv.AmountPaid = 100
	assert.False(t, inv.IsPastDue(now), "settled invoices are never past due")

	inv = Invoice{Total: 100}
	assert.False(t, inv.IsPastDue(now), "no due date, no overdue")
}
