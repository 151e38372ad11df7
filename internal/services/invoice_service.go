package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/event"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/finance"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/repository"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

var (
	ErrInvoiceNotFound = errors.New("invoice_not_found")
	ErrClientNotFound  = errors.New("client_not_found")
	ErrInvalidAmount   = errors.New("invalid_payment_amount")
)

// EventPublisher decouples the invoice flow from the broker; publishing is
// best-effort and never fails the originating write.
type EventPublisher interface {
	Publish(ctx context.Context, evt event.InvoiceEvent) error
}

type InvoiceService struct {
	repos     *repository.Repositories
	publisher EventPublisher
	now       func() time.Time
}

func NewInvoiceService(repos *repository.Repositories, publisher EventPublisher) *InvoiceService {
	return &InvoiceService{
		repos:     repos,
		publisher: publisher,
		now:       time.Now,
	}
}

// decorateTotals recomputes every derived money field from the line items'
// source fields. Stored line-item totals are never trusted.
func (s *InvoiceService) decorateTotals(inv *models.Invoice) {
	for i := range inv.LineItems {
		inv.LineItems[i].Total = finance.LineItemTotal(inv.LineItems[i])
	}
	totals := finance.InvoiceTotals(inv.LineItems)
	inv.Subtotal = totals.Subtotal
	inv.TaxTotal = totals.TaxTotal
	inv.DiscountTotal = totals.DiscountTotal
	inv.Total = totals.Total
}

// applyPayment derives the post-payment amountPaid and status. Pure; the
// caller persists the result.
func (s *InvoiceService) applyPayment(inv *models.Invoice, amount float64) (float64, models.InvoiceStatus) {
	paid := inv.AmountPaid + amount
	status := inv.Status
	if paid >= inv.Total {
		status = models.InvoiceStatusPaid
	}
	return paid, status
}

// CreateInvoice derives totals, persists the invoice and notifies the client.
func (s *InvoiceService) CreateInvoice(ctx context.Context, inv *models.Invoice) (string, error) {
	client, err := s.repos.Clients.Get(ctx, inv.ClientID)
	if err != nil {
		return "", fmt.Errorf("failed to load client %s: %w", inv.ClientID, err)
	}
	if client == nil {
		return "", ErrClientNotFound
	}

	s.decorateTotals(inv)
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusPending
	}

	id, err := s.repos.Invoices.Create(ctx, inv)
	if err != nil {
		return "", fmt.Errorf("failed to create invoice: %w", err)
	}

	s.publish(ctx, event.TypeInvoiceCreated, inv, client, inv.Total)
	return id, nil
}

// SaveLineItems replaces the invoice's line items, recomputing all derived
// fields before the write.
func (s *InvoiceService) SaveLineItems(ctx context.Context, invoiceID string, items []models.LineItem) (*models.Invoice, error) {
	inv, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	inv.LineItems = items
	s.decorateTotals(inv)

	err = s.repos.Invoices.Update(ctx, invoiceID, map[string]any{
		"lineItems":     inv.LineItems,
		"subtotal":      inv.Subtotal,
		"taxTotal":      inv.TaxTotal,
		"discountTotal": inv.DiscountTotal,
		"total":         inv.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save line items: %w", err)
	}
	return inv, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	inv, err := s.repos.Invoices.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice %s: %w", id, err)
	}
	if inv == nil {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}

// RecordPayment persists the payment and applies it to the invoice balance.
// The invoice flips to paid once amountPaid reaches the total.
func (s *InvoiceService) RecordPayment(ctx context.Context, payment *models.Payment) (*models.Invoice, error) {
	if payment.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	inv, err := s.GetInvoice(ctx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}

	if payment.Status == "" {
		payment.Status = models.PaymentStatusConfirmed
	}
	if payment.Currency == "" {
		payment.Currency = inv.Currency
	}
	payment.UserID = inv.UserID
	if payment.Reference == "" {
		payment.Reference = uuid.NewString()
	}

	if _, err := s.repos.Payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	paid, status := s.applyPayment(inv, payment.Amount)
	err = s.repos.Invoices.Update(ctx, inv.ID, map[string]any{
		"amountPaid": paid,
		"status":     status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply payment to invoice %s: %w", inv.ID, err)
	}
	inv.AmountPaid = paid
	inv.Status = status

	client, cerr := s.repos.Clients.Get(ctx, inv.ClientID)
	if cerr != nil || client == nil {
		slog.Warn("payment recorded without client notification", "invoice_id", inv.ID, "error", cerr)
		return inv, nil
	}

	eventType := event.TypePaymentReceived
	if status == models.InvoiceStatusPaid {
		eventType = event.TypeInvoicePaid
	}
	s.publish(ctx, eventType, inv, client, payment.Amount)

	return inv, nil
}

// MarkOverdue flags every pending invoice whose due date has passed with a
// balance outstanding, and queues a reminder for each.
func (s *InvoiceService) MarkOverdue(ctx context.Context, userID string) (int, error) {
	now := s.now().UTC()
	invoices, err := s.repos.Invoices.ListOutstanding(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list outstanding invoices: %w", err)
	}

	flagged := 0
	for _, inv := range invoices {
		if inv.Status != models.InvoiceStatusPending || !inv.IsPastDue(now) {
			continue
		}
		err := s.repos.Invoices.Update(ctx, inv.ID, map[string]any{
			"status": models.InvoiceStatusOverdue,
		})
		if err != nil {
			return flagged, fmt.Errorf("failed to flag invoice %s overdue: %w", inv.ID, err)
		}
		flagged++

		client, cerr := s.repos.Clients.Get(ctx, inv.ClientID)
		if cerr != nil || client == nil {
			continue
		}
		inv.Status = models.InvoiceStatusOverdue
		s.publish(ctx, event.TypeInvoiceReminder, inv, client, inv.BalanceDue())
	}
	return flagged, nil
}

func (s *InvoiceService) publish(ctx context.Context, eventType event.InvoiceEventType, inv *models.Invoice, client *models.Client, amount float64) {
	if s.publisher == nil {
		return
	}

	businessName := ""
	if profile, err := s.businessProfile(ctx, inv.UserID); err == nil && profile != nil {
		businessName = profile.BusinessName
	}

	evt := event.InvoiceEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		UserID:        inv.UserID,
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.Number,
		BusinessName:  businessName,
		ClientName:    client.Name,
		ClientEmail:   client.Email,
		Amount:        amount,
		Currency:      inv.Currency,
		DueDate:       inv.DueDate,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		slog.Error("failed to publish invoice event", "type", eventType, "invoice_id", inv.ID, "error", err)
	}
}

func (s *InvoiceService) businessProfile(ctx context.Context, userID string) (*models.BusinessProfile, error) {
	profiles, err := s.repos.Profiles.Query(ctx,
		[]store.Filter{{Field: "userId", Op: "==", Value: userID}},
		store.Limit(1),
	)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return profiles[0], nil
}
