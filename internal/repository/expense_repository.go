package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

type ExpenseRepository struct {
	*store.Collection[models.Expense, *models.Expense]
}

func NewExpenseRepository(client *firestore.Client) *ExpenseRepository {
	return &ExpenseRepository{
		Collection: store.NewCollection[models.Expense](client, CollectionExpenses),
	}
}

func (r *ExpenseRepository) ListByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	return r.Query(ctx,
		[]store.Filter{{Field: "userId", Op: "==", Value: userID}},
		store.OrderBy("incurredAt", "desc"))
}

func (r *ExpenseRepository) ListByCategory(ctx context.Context, userID, category string) ([]*models.Expense, error) {
	return r.Query(ctx, []store.Filter{
		{Field: "userId", Op: "==", Value: userID},
		{Field: "category", Op: "==", Value: category},
	}, store.OrderBy("incurredAt", "desc"))
}
