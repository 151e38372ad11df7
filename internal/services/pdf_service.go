package services

import (
	"context"
	"fmt"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/render"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/repository"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/storage"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

// PDFService renders an invoice document, uploads it and stamps the resulting
// URL back on the invoice record.
type PDFService struct {
	repos    *repository.Repositories
	objects  *storage.ObjectStore
	renderer render.Renderer
	html     render.HTMLRenderer
}

func NewPDFService(repos *repository.Repositories, objects *storage.ObjectStore) *PDFService {
	return &PDFService{
		repos:    repos,
		objects:  objects,
		renderer: render.NewPDFRenderer(),
		html:     render.NewHTMLRenderer(),
	}
}

// GenerateInvoicePDF renders the invoice, stores the bytes and updates the
// invoice's pdfUrl. Regenerating overwrites the previous object.
func (s *PDFService) GenerateInvoicePDF(ctx context.Context, invoiceID string) (string, error) {
	input, inv, err := s.renderInput(ctx, invoiceID)
	if err != nil {
		return "", err
	}

	pdf, err := s.renderer.Render(input)
	if err != nil {
		return "", fmt.Errorf("failed to render invoice %s: %w", invoiceID, err)
	}

	path := storage.InvoicePDFPath(inv.UserID, inv.ID, fmt.Sprintf("%s.pdf", inv.Number))
	url, err := s.objects.Upload(ctx, path, pdf, "application/pdf")
	if err != nil {
		return "", fmt.Errorf("failed to store invoice pdf: %w", err)
	}

	if err := s.repos.Invoices.Update(ctx, inv.ID, map[string]any{"pdfUrl": url}); err != nil {
		return "", fmt.Errorf("failed to record pdf url on invoice %s: %w", inv.ID, err)
	}
	return url, nil
}

// RenderInvoiceHTML produces the browser preview without touching storage.
func (s *PDFService) RenderInvoiceHTML(ctx context.Context, invoiceID string) (string, error) {
	input, _, err := s.renderInput(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	return s.html.RenderHTML(input)
}

func (s *PDFService) renderInput(ctx context.Context, invoiceID string) (render.RenderInput, *models.Invoice, error) {
	inv, err := s.repos.Invoices.Get(ctx, invoiceID)
	if err != nil {
		return render.RenderInput{}, nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}
	if inv == nil {
		return render.RenderInput{}, nil, ErrInvoiceNotFound
	}

	client, err := s.repos.Clients.Get(ctx, inv.ClientID)
	if err != nil {
		return render.RenderInput{}, nil, fmt.Errorf("failed to load client %s: %w", inv.ClientID, err)
	}
	if client == nil {
		client = &models.Client{}
	}

	profile := &models.BusinessProfile{}
	profiles, err := s.repos.Profiles.Query(ctx,
		[]store.Filter{{Field: "userId", Op: "==", Value: inv.UserID}},
		store.Limit(1),
	)
	if err == nil && len(profiles) > 0 {
		profile = profiles[0]
	}

	return buildRenderInput(inv, client, profile), inv, nil
}

// buildRenderInput flattens the three records into the renderer's view model.
func buildRenderInput(inv *models.Invoice, client *models.Client, profile *models.BusinessProfile) render.RenderInput {
	items := make([]render.LineItemView, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		items = append(items, render.LineItemView{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
			Discount:    item.Discount,
			Total:       item.Total,
		})
	}

	currency := inv.Currency
	if currency == "" {
		currency = profile.Currency
	}

	return render.RenderInput{
		Business: render.BusinessView{
			Name:    profile.BusinessName,
			Email:   profile.Email,
			Address: profile.Address,
			LogoURL: profile.LogoURL,
		},
		Invoice: render.InvoiceView{
			ID:            inv.ID,
			Number:        inv.Number,
			Status:        string(inv.Status),
			Currency:      currency,
			IssuedAt:      inv.IssuedAt,
			DueDate:       inv.DueDate,
			Subtotal:      inv.Subtotal,
			TaxTotal:      inv.TaxTotal,
			DiscountTotal: inv.DiscountTotal,
			Total:         inv.Total,
			BalanceDue:    inv.BalanceDue(),
			Notes:         inv.Notes,
		},
		Client: render.ClientView{
			Name:    client.Name,
			Email:   client.Email,
			Company: client.Company,
		},
		Items: items,
	}
}
