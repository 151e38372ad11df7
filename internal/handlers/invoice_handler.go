package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/httputil"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/repository"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/services"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/storage"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
	pdfService     *services.PDFService
	repos          *repository.Repositories
	objects        *storage.ObjectStore
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, pdfService *services.PDFService, repos *repository.Repositories, objects *storage.ObjectStore) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		pdfService:     pdfService,
		repos:          repos,
		objects:        objects,
	}
}

func (h *InvoiceHandler) Register(app *fiber.App) {
	gr := app.Group("/invoicing/api/v1")

	invoiceGr := gr.Group("/invoices")
	invoiceGr.Post("/", h.CreateInvoice)
	invoiceGr.Get("/", h.ListInvoices)
	invoiceGr.Get("/:id", h.GetInvoice)
	invoiceGr.Put("/:id/line-items", h.SaveLineItems)
	invoiceGr.Delete("/:id", h.DeleteInvoice)
	invoiceGr.Post("/:id/payments", h.RecordPayment)
	invoiceGr.Get("/:id/payments", h.ListPayments)
	invoiceGr.Post("/:id/pdf", h.GeneratePDF)
	invoiceGr.Get("/:id/preview", h.PreviewHTML)
	invoiceGr.Post("/:id/attachments", h.UploadAttachment)
	invoiceGr.Get("/:id/attachments/:filename/url", h.ResolveAttachmentURL)
	invoiceGr.Post("/mark-overdue", h.MarkOverdue)
}

func (h *InvoiceHandler) CreateInvoice(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var inv models.Invoice
	if err := c.Bind().Body(&inv); err != nil {
		slog.Error("error parsing invoice request", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	inv.UserID = userID

	id, err := h.invoiceService.CreateInvoice(c.Context(), &inv)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return c.Status(http.StatusUnprocessableEntity).JSON(
				httputil.CreateErrorResponse("CLIENT_NOT_FOUND", "Invoice references an unknown client"))
		}
		slog.Error("failed to create invoice", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("CREATE_FAILED", "Failed to create invoice"))
	}

	return c.Status(http.StatusCreated).JSON(httputil.CreateSuccessResponse(fiber.Map{"id": id}))
}

// ListInvoices supports status/client filters plus orderBy, direction and
// limit query parameters.
func (h *InvoiceHandler) ListInvoices(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	filters := []store.Filter{{Field: "userId", Op: "==", Value: userID}}
	if status := c.Query("status"); status != "" {
		filters = append(filters, store.Filter{Field: "status", Op: "==", Value: status})
	}
	if clientID := c.Query("client_id"); clientID != "" {
		filters = append(filters, store.Filter{Field: "clientId", Op: "==", Value: clientID})
	}

	var opts []store.QueryOption
	if orderBy := c.Query("order_by"); orderBy != "" {
		opts = append(opts, store.OrderBy(orderBy, c.Query("direction")))
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return c.Status(http.StatusBadRequest).JSON(
				httputil.CreateErrorResponse("INVALID_REQUEST", "limit must be a non-negative integer"))
		}
		opts = append(opts, store.Limit(limit))
	}

	invoices, err := h.repos.Invoices.Query(c.Context(), filters, opts...)
	if err != nil {
		slog.Error("failed to list invoices", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("QUERY_FAILED", "Failed to list invoices"))
	}

	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(invoices))
}

func (h *InvoiceHandler) GetInvoice(c fiber.Ctx) error {
	inv, err := h.invoiceService.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Invoice not found"))
		}
		slog.Error("failed to load invoice", "invoice_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("READ_FAILED", "Failed to load invoice"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(inv))
}

func (h *InvoiceHandler) SaveLineItems(c fiber.Ctx) error {
	var req struct {
		Items []models.LineItem `json:"items"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}

	inv, err := h.invoiceService.SaveLineItems(c.Context(), c.Params("id"), req.Items)
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Invoice not found"))
		}
		slog.Error("failed to save line items", "invoice_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to save line items"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(inv))
}

// DeleteInvoice removes the record; deleting an already-removed invoice
// succeeds.
func (h *InvoiceHandler) DeleteInvoice(c fiber.Ctx) error {
	if err := h.repos.Invoices.Remove(c.Context(), c.Params("id")); err != nil {
		slog.Error("failed to delete invoice", "invoice_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("DELETE_FAILED", "Failed to delete invoice"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"deleted": true}))
}

func (h *InvoiceHandler) RecordPayment(c fiber.Ctx) error {
	var payment models.Payment
	if err := c.Bind().Body(&payment); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	payment.InvoiceID = c.Params("id")

	inv, err := h.invoiceService.RecordPayment(c.Context(), &payment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvoiceNotFound):
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Invoice not found"))
		case errors.Is(err, services.ErrInvalidAmount):
			return c.Status(http.StatusBadRequest).JSON(
				httputil.CreateErrorResponse("INVALID_AMOUNT", "Payment amount must be positive"))
		}
		slog.Error("failed to record payment", "invoice_id", payment.InvoiceID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("PAYMENT_FAILED", "Failed to record payment"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(inv))
}

func (h *InvoiceHandler) ListPayments(c fiber.Ctx) error {
	payments, err := h.repos.Payments.ListByInvoice(c.Context(), c.Params("id"))
	if err != nil {
		slog.Error("failed to list payments", "invoice_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("QUERY_FAILED", "Failed to list payments"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(payments))
}

func (h *InvoiceHandler) GeneratePDF(c fiber.Ctx) error {
	url, err := h.pdfService.GenerateInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Invoice not found"))
		}
		slog.Error("failed to generate invoice pdf", "invoice_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("PDF_FAILED", "Failed to generate invoice PDF"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"pdf_url": url}))
}

func (h *InvoiceHandler) PreviewHTML(c fiber.Ctx) error {
	html, err := h.pdfService.RenderInvoiceHTML(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Invoice not found"))
		}
		slog.Error("failed to render invoice preview", "invoice_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("RENDER_FAILED", "Failed to render invoice preview"))
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).SendString(html)
}

// UploadAttachment stores a multipart file against the invoice and appends
// its URL to the attachments list.
func (h *InvoiceHandler) UploadAttachment(c fiber.Ctx) error {
	inv, err := h.invoiceService.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Invoice not found"))
		}
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("READ_FAILED", "Failed to load invoice"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Multipart field 'file' is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Failed to open uploaded file"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPLOAD_FAILED", "Failed to read uploaded file"))
	}

	path := storage.InvoiceAttachmentPath(inv.UserID, inv.ID, fileHeader.Filename)
	url, err := h.objects.Upload(c.Context(), path, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("failed to upload attachment", "invoice_id", inv.ID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPLOAD_FAILED", "Failed to store attachment"))
	}

	attachments := append(inv.Attachments, url)
	if err := h.repos.Invoices.Update(c.Context(), inv.ID, map[string]any{"attachments": attachments}); err != nil {
		slog.Error("failed to record attachment", "invoice_id", inv.ID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to record attachment"))
	}

	return c.Status(http.StatusCreated).JSON(httputil.CreateSuccessResponse(fiber.Map{"url": url}))
}

// ResolveAttachmentURL returns a time-limited download link for a stored
// attachment without exposing the bucket layout to clients.
func (h *InvoiceHandler) ResolveAttachmentURL(c fiber.Ctx) error {
	inv, err := h.invoiceService.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Invoice not found"))
		}
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("READ_FAILED", "Failed to load invoice"))
	}

	path := storage.InvoiceAttachmentPath(inv.UserID, inv.ID, c.Params("filename"))
	url, err := h.objects.ResolveURL(c.Context(), path)
	if err != nil {
		var notFound *storage.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Attachment not found"))
		}
		slog.Error("failed to resolve attachment url", "invoice_id", inv.ID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("RESOLVE_FAILED", "Failed to resolve attachment URL"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"url": url}))
}

func (h *InvoiceHandler) MarkOverdue(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	flagged, err := h.invoiceService.MarkOverdue(c.Context(), userID)
	if err != nil {
		slog.Error("failed to mark overdue invoices", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to mark overdue invoices"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"flagged": flagged}))
}
