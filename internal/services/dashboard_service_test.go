package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
)

func TestSummarizeAggregatesMoneyPosition(t *testing.T) {
	svc := NewDashboardService(nil, nil)

	invoices := []*models.Invoice{
		{Status: models.InvoiceStatusPending, Total: 260, AmountPaid: 100},
		{Status: models.InvoiceStatusOverdue, Total: 500, AmountPaid: 0},
		{Status: models.InvoiceStatusPaid, Total: 300, AmountPaid: 300},
		{Status: models.InvoiceStatusDraft, Total: 999},
	}
	expenses := []*models.Expense{
		{Category: "software", Amount: 40},
		{Category: "travel", Amount: 110},
	}
	budgets := []*models.Budget{
		{Category: "software", Limit: 200, Spent: 40},
		{Category: "travel", Limit: 0, Spent: 110},
	}

	summary := svc.summarize("user-1", invoices, expenses, budgets)

	assert.Equal(t, "user-1", summary.UserID)
	assert.Equal(t, 4, summary.InvoiceCount)
	assert.Equal(t, 1, summary.OverdueCount)
	assert.InDelta(t, 660, summary.OutstandingTotal, 1e-9)
	assert.InDelta(t, 400, summary.CollectedTotal, 1e-9)
	assert.InDelta(t, 150, summary.ExpenseTotal, 1e-9)
	assert.InDelta(t, 20, summary.BudgetUsage["software"], 1e-9)
	assert.Zero(t, summary.BudgetUsage["travel"])
}

func TestSummarizeEmptyUser(t *testing.T) {
	svc := NewDashboardService(nil, nil)

	summary := svc.summarize("user-2", nil, nil, nil)

	assert.Zero(t, summary.InvoiceCount)
	assert.Zero(t, summary.OutstandingTotal)
	assert.Empty(t, summary.BudgetUsage)
	assert.False(t, summary.GeneratedAt.IsZero())
}
