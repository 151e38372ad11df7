// Package repository binds each entity to its Firestore collection through
// the generic store adapter. All entities share the same persistence
// contract; only invoices, payments and expenses add query helpers.
package repository

import (
	"cloud.google.com/go/firestore"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

const (
	CollectionClients  = "clients"
	CollectionInvoices = "invoices"
	CollectionPayments = "payments"
	CollectionExpenses = "expenses"
	CollectionBudgets  = "budgets"
	CollectionTickets  = "support_tickets"
	CollectionProfiles = "business_profiles"
)

type Repositories struct {
	Clients  *store.Collection[models.Client, *models.Client]
	Invoices *InvoiceRepository
	Payments *PaymentRepository
	Expenses *ExpenseRepository
	Budgets  *store.Collection[models.Budget, *models.Budget]
	Tickets  *store.Collection[models.SupportTicket, *models.SupportTicket]
	Profiles *store.Collection[models.BusinessProfile, *models.BusinessProfile]
}

func New(client *firestore.Client) *Repositories {
	return &Repositories{
		Clients:  store.NewCollection[models.Client](client, CollectionClients),
		Invoices: NewInvoiceRepository(client),
		Payments: NewPaymentRepository(client),
		Expenses: NewExpenseRepository(client),
		Budgets:  store.NewCollection[models.Budget](client, CollectionBudgets),
		Tickets:  store.NewCollection[models.SupportTicket](client, CollectionTickets),
		Profiles: store.NewCollection[models.BusinessProfile](client, CollectionProfiles),
	}
}
