package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/httputil"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/models"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/repository"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/services"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/storage"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/store"
)

// FinanceHandler serves expenses, budgets and the dashboard summary.
type FinanceHandler struct {
	repos     *repository.Repositories
	dashboard *services.DashboardService
	objects   *storage.ObjectStore
}

func NewFinanceHandler(repos *repository.Repositories, dashboard *services.DashboardService, objects *storage.ObjectStore) *FinanceHandler {
	return &FinanceHandler{
		repos:     repos,
		dashboard: dashboard,
		objects:   objects,
	}
}

func (h *FinanceHandler) Register(app *fiber.App) {
	gr := app.Group("/invoicing/api/v1")

	expenseGr := gr.Group("/expenses")
	expenseGr.Post("/", h.CreateExpense)
	expenseGr.Get("/", h.ListExpenses)
	expenseGr.Post("/:id/receipt", h.UploadReceipt)
	expenseGr.Delete("/:id", h.DeleteExpense)

	budgetGr := gr.Group("/budgets")
	budgetGr.Post("/", h.CreateBudget)
	budgetGr.Get("/", h.ListBudgets)
	budgetGr.Patch("/:id", h.UpdateBudget)
	budgetGr.Delete("/:id", h.DeleteBudget)

	gr.Get("/dashboard/summary", h.Summary)
}

func (h *FinanceHandler) CreateExpense(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var expense models.Expense
	if err := c.Bind().Body(&expense); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if expense.Amount <= 0 {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("VALIDATION_FAILED", "Expense amount must be positive"))
	}
	expense.UserID = userID

	id, err := h.repos.Expenses.Create(c.Context(), &expense)
	if err != nil {
		slog.Error("failed to create expense", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("CREATE_FAILED", "Failed to create expense"))
	}

	h.dashboard.Invalidate(c.Context(), userID)
	return c.Status(http.StatusCreated).JSON(httputil.CreateSuccessResponse(fiber.Map{"id": id}))
}

func (h *FinanceHandler) ListExpenses(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var (
		expenses []*models.Expense
		err      error
	)
	if category := c.Query("category"); category != "" {
		expenses, err = h.repos.Expenses.ListByCategory(c.Context(), userID, category)
	} else {
		expenses, err = h.repos.Expenses.ListByUser(c.Context(), userID)
	}
	if err != nil {
		slog.Error("failed to list expenses", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("QUERY_FAILED", "Failed to list expenses"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(expenses))
}

// UploadReceipt attaches a receipt image to an expense.
func (h *FinanceHandler) UploadReceipt(c fiber.Ctx) error {
	expense, err := h.repos.Expenses.Get(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("READ_FAILED", "Failed to load expense"))
	}
	if expense == nil {
		return c.Status(http.StatusNotFound).JSON(
			httputil.CreateErrorResponse("NOT_FOUND", "Expense not found"))
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

	path := storage.ExpenseReceiptPath(expense.UserID, expense.ID, fileHeader.Filename)
	url, err := h.objects.Upload(c.Context(), path, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("failed to upload receipt", "expense_id", expense.ID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPLOAD_FAILED", "Failed to store receipt"))
	}

	if err := h.repos.Expenses.Update(c.Context(), expense.ID, map[string]any{"receiptUrl": url}); err != nil {
		slog.Error("failed to record receipt", "expense_id", expense.ID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to record receipt"))
	}
	return c.Status(http.StatusCreated).JSON(httputil.CreateSuccessResponse(fiber.Map{"url": url}))
}

func (h *FinanceHandler) DeleteExpense(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if err := h.repos.Expenses.Remove(c.Context(), c.Params("id")); err != nil {
		slog.Error("failed to delete expense", "expense_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("DELETE_FAILED", "Failed to delete expense"))
	}
	h.dashboard.Invalidate(c.Context(), userID)
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"deleted": true}))
}

func (h *FinanceHandler) CreateBudget(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var budget models.Budget
	if err := c.Bind().Body(&budget); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	if budget.Category == "" {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("VALIDATION_FAILED", "Budget category is required"))
	}
	budget.UserID = userID

	id, err := h.repos.Budgets.Create(c.Context(), &budget)
	if err != nil {
		slog.Error("failed to create budget", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("CREATE_FAILED", "Failed to create budget"))
	}

	h.dashboard.Invalidate(c.Context(), userID)
	return c.Status(http.StatusCreated).JSON(httputil.CreateSuccessResponse(fiber.Map{"id": id}))
}

func (h *FinanceHandler) ListBudgets(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	budgets, err := h.repos.Budgets.Query(c.Context(),
		[]store.Filter{{Field: "userId", Op: "==", Value: userID}},
		store.OrderBy("category", "asc"))
	if err != nil {
		slog.Error("failed to list budgets", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("QUERY_FAILED", "Failed to list budgets"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(budgets))
}

func (h *FinanceHandler) UpdateBudget(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")

	var fields map[string]any
	if err := c.Bind().Body(&fields); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	delete(fields, "userId")
	delete(fields, "user_id")

	if err := h.repos.Budgets.Update(c.Context(), c.Params("id"), fields); err != nil {
		if store.IsNotFound(err) {
			return c.Status(http.StatusNotFound).JSON(
				httputil.CreateErrorResponse("NOT_FOUND", "Budget not found"))
		}
		slog.Error("failed to update budget", "budget_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to update budget"))
	}

	h.dashboard.Invalidate(c.Context(), userID)
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"updated": true}))
}

func (h *FinanceHandler) DeleteBudget(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if err := h.repos.Budgets.Remove(c.Context(), c.Params("id")); err != nil {
		slog.Error("failed to delete budget", "budget_id", c.Params("id"), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("DELETE_FAILED", "Failed to delete budget"))
	}
	h.dashboard.Invalidate(c.Context(), userID)
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"deleted": true}))
}

func (h *FinanceHandler) Summary(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	summary, err := h.dashboard.Summary(c.Context(), userID)
	if err != nil {
		slog.Error("failed to build dashboard summary", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("QUERY_FAILED", "Failed to build dashboard summary"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(summary))
}
