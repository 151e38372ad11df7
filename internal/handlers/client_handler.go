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

type ClientHandler struct {
	repos *repository.Repositories
}

func NewClientHandler(repos *repository.Repositories) *ClientHandler {
	return &ClientHandler{repos: repos}
}

func (h *ClientHandler) Register(app *fiber.App) {
	gr := app.Group("/invoicing/api/v1/clients")

	gr.Post("/", h.CreateClient)
	gr.Get("/", h.ListClients)
	gr.Get("/:id", h.GetClient)
	gr.Patch("/:id", h.UpdateClient)
	gr.Delete("/:id", h.DeleteClient)
}

func (h *ClientHandler) CreateClient(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var client models.Client
	if err := c.Bind().Body(&client); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if client.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("VALIDATION_FAILED", "Client name is required"))
	}
	client.UserID = userID

	id, err := h.repos.Clients.Create(c.Context(), &client)
	if err != nil {
		slog.Error("failed to create client", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("CREATE_FAILED", "Failed to create client"))
	}
	return c.Status(http.StatusCreated).JSON(httputil.CreateSuccessResponse(fiber.Map{"id": id}))
}

func (h *ClientHandler) ListClients(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	clients, err := h.repos.Clients.Query(c.Context(),
		[]store.Filter{{Field: "userId", Op: "==", Value: userID}},
		store.OrderBy("name", "asc"))
	if err != nil {
		slog.Error("failed to list clients", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("QUERY_FAILED", "Failed to list clients"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(clients))
}

func (h *ClientHandler) GetClient(c fiber.Ctx) error {
	client, err := h.repos.Clients.Get(c.Context(), c.Params("id"))
	if err != nil {
		slog.Error("failed to load client", "client_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("READ_FAILED", "Failed to load client"))
	}
	if client == nil {
		return c.Status(http.StatusNotFound).JSON(
			httputil.CreateErrorResponse("NOT_FOUND", "Client not found"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(client))
}

func (h *ClientHandler) UpdateClient(c fiber.Ctx) error {
	var fields map[string]any
	if err := c.Bind().Body(&fields); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	delete(fields, "userId")
	delete(fields, "user_id")

	if err := h.repos.Clients.Update(c.Context(), c.Params("id"), fields); err != nil {
		if store.IsNotFound(err) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Client not found"))
		}
		slog.Error("failed to update client", "client_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to update client"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"updated": true}))
}

func (h *ClientHandler) DeleteClient(c fiber.Ctx) error {
	if err := h.repos.Clients.Remove(c.Context(), c.Params("id")); err != nil {
		slog.Error("failed to delete client", "client_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("DELETE_FAILED", "Failed to delete client"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"deleted": true}))
}
