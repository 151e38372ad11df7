package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

type PaymentRepository struct {
	*store.Collection[models.Payment, *models.Payment]
}

func NewPaymentRepository(client *firestore.Client) *PaymentRepository {
	return &PaymentRepository{
		Collection: store.NewCollection[models.Payment](client, CollectionPayments),
	}
}

func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*models.Payment, error) {
	return r.Query(ctx,
		[]store.Filter{{Field: "invoiceId", Op: "==", Value: invoiceID}},
		store.OrderBy("createdAt", "asc"))
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]*models.Payment, error) {
	return r.Query(ctx,
		[]store.Filter{{Field: "userId", Op: "==", Value: userID}},
		store.OrderBy("createdAt", "desc"))
}
