package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

type InvoiceRepository struct {
	*store.Collection[models.Invoice, *models.Invoice]
}

func NewInvoiceRepository(client *firestore.Client) *InvoiceRepository {
	return &InvoiceRepository{
		Collection: store.NewCollection[models.Invoice](client, CollectionInvoices),
	}
}

func (r *InvoiceRepository) ListByUser(ctx context.Context, userID string) ([]*models.Invoice, error) {
	return r.Query(ctx,
		[]store.Filter{{Field: "userId", Op: "==", Value: userID}},
		store.OrderBy("createdAt", "desc"))
}

func (r *InvoiceRepository) ListByClient(ctx context.Context, userID, clientID string) ([]*models.Invoice, error) {
	return r.Query(ctx, []store.Filter{
		{Field: "userId", Op: "==", Value: userID},
		{Field: "clientId", Op: "==", Value: clientID},
	}, store.OrderBy("createdAt", "desc"))
}

// ListOutstanding returns invoices still carrying a balance, oldest due first.
func (r *InvoiceRepository) ListOutstanding(ctx context.Context, userID string) ([]*models.Invoice, error) {
	return r.Query(ctx, []store.Filter{
		{Field: "userId", Op: "==", Value: userID},
		{Field: "status", Op: "in", Value: []models.InvoiceStatus{
			models.InvoiceStatusPending,
			models.InvoiceStatusOverdue,
		}},
	}, store.OrderBy("dueDate", "asc"))
}

// ListDueBefore returns unpaid invoices whose due date falls before cutoff,
// capped at limit; the overdue-reminder job feeds on it.
func (r *InvoiceRepository) ListDueBefore(ctx context.Context, userID string, cutoff time.Time, limit int) ([]*models.Invoice, error) {
	return r.Query(ctx, []store.Filter{
		{Field: "userId", Op: "==", Value: userID},
		{Field: "status", Op: "==", Value: models.InvoiceStatusPending},
		{Field: "dueDate", Op: "<", Value: cutoff},
	}, store.OrderBy("dueDate", "asc"), store.Limit(limit))
}
