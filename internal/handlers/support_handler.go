package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/httputil"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/repository"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

type SupportHandler struct {
	repos *repository.Repositories
}

func NewSupportHandler(repos *repository.Repositories) *SupportHandler {
	return &SupportHandler{repos: repos}
}

func (h *SupportHandler) Register(app *fiber.App) {
	gr := app.Group("/invoicing/api/v1/support/tickets")

	gr.Post("/", h.CreateTicket)
	gr.Get("/", h.ListTickets)
	gr.Get("/:id", h.GetTicket)
	gr.Patch("/:id/status", h.UpdateStatus)
}

func (h *SupportHandler) CreateTicket(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var ticket models.SupportTicket
	if err := c.Bind().Body(&ticket); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if ticket.Subject == "" {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("VALIDATION_FAILED", "Ticket subject is required"))
	}
	ticket.UserID = userID
	if ticket.Status == "" {
		ticket.Status = models.TicketStatusOpen
	}

	id, err := h.repos.Tickets.Create(c.Context(), &ticket)
	if err != nil {
		slog.Error("failed to create support ticket", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("CREATE_FAILED", "Failed to create support ticket"))
	}
	return c.Status(http.StatusCreated).JSON(httputil.CreateSuccessResponse(fiber.Map{"id": id}))
}

func (h *SupportHandler) ListTickets(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	filters := []store.Filter{{Field: "userId", Op: "==", Value: userID}}
	if status := c.Query("status"); status != "" {
		filters = append(filters, store.Filter{Field: "status", Op: "==", Value: status})
	}

	tickets, err := h.repos.Tickets.Query(c.Context(), filters, store.OrderBy("createdAt", "desc"))
	if err != nil {
		slog.Error("failed to list support tickets", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("QUERY_FAILED", "Failed to list support tickets"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(tickets))
}

func (h *SupportHandler) GetTicket(c fiber.Ctx) error {
	ticket, err := h.repos.Tickets.Get(c.Context(), c.Params("id"))
	if err != nil {
		slog.Error("failed to load support ticket", "ticket_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("READ_FAILED", "Failed to load support ticket"))
	}
	if ticket == nil {
		return c.Status(http.StatusNotFound).JSON(
			httputil.CreateErrorResponse("NOT_FOUND", "Support ticket not found"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(ticket))
}

func (h *SupportHandler) UpdateStatus(c fiber.Ctx) error {
	var req struct {
		Status models.TicketStatus `json:"status"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	switch req.Status {
	case models.TicketStatusOpen, models.TicketStatusPending, models.TicketStatusResolved, models.TicketStatusClosed:
	default:
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("VALIDATION_FAILED", "Unknown ticket status"))
	}

	if err := h.repos.Tickets.Update(c.Context(), c.Params("id"), map[string]any{"status": req.Status}); err != nil {
		if store.IsNotFound(err) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Support ticket not found"))
		}
		slog.Error("failed to update ticket status", "ticket_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to update ticket status"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"updated": true}))
}
