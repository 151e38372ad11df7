package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/webdroid21/fin-beacon-pro-sub001/internal/httputil"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/repository"
	"github.com/webdroid21/fin-beacon-pro-sub001/internal/storage"
)

// ProfileHandler serves the per-user business profile. The profile document
// id is the user id, so writes are natural upserts.
type ProfileHandler struct {
	repos   *repository.Repositories
	objects *storage.ObjectStore
}

func NewProfileHandler(repos *repository.Repositories, objects *storage.ObjectStore) *ProfileHandler {
	return &ProfileHandler{repos: repos, objects: objects}
}

func (h *ProfileHandler) Register(app *fiber.App) {
	gr := app.Group("/invoicing/api/v1/profile")

	gr.Get("/", h.GetProfile)
	gr.Put("/", h.UpsertProfile)
	gr.Post("/logo", h.UploadLogo)
	gr.Post("/image", h.UploadImage)
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	profile, err := h.repos.Profiles.Get(c.Context(), userID)
	if err != nil {
		slog.Error("failed to load business profile", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("READ_FAILED", "Failed to load business profile"))
	}
	if profile == nil {
		return c.Status(http.StatusNotFound).JSON(
			httputil.CreateErrorResponse("NOT_FOUND", "Business profile not found"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(profile))
}

// UpsertProfile merges the supplied fields into the profile, creating it on
// first write.
func (h *ProfileHandler) UpsertProfile(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var fields map[string]any
	if err := c.Bind().Body(&fields); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			httputil.CreateErrorResponse("INVALID_REQUEST", "Invalid request body: "+err.Error()))
	}
	fields["userId"] = userID

	if err := h.repos.Profiles.Upsert(c.Context(), userID, fields, true); err != nil {
		slog.Error("failed to upsert business profile", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to save business profile"))
	}
	return c.Status(http.StatusOK).JSON(httputil.CreateSuccessResponse(fiber.Map{"saved": true}))
}

func (h *ProfileHandler) UploadLogo(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
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

	path := storage.BusinessLogoPath(userID, fileHeader.Filename)
	handle := h.objects.UploadWithProgress(c.Context(), path, data, func(pct float64) {
		slog.Debug("logo upload progress", "user_id", userID, "percent", pct)
	}, fileHeader.Header.Get("Content-Type"))

	url, err := handle.Wait()
	if err != nil {
		slog.Error("failed to upload logo", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPLOAD_FAILED", "Failed to store logo"))
	}

	err = h.repos.Profiles.Upsert(c.Context(), userID, map[string]any{
		"userId":  userID,
		"logoUrl": url,
	}, true)
	if err != nil {
		slog.Error("failed to record logo url", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to record logo URL"))
	}
	return c.Status(http.StatusCreated).JSON(httputil.CreateSuccessResponse(fiber.Map{"url": url}))
}

// UploadImage stores the owner's profile picture, shown in the app shell
// rather than on invoices.
func (h *ProfileHandler) UploadImage(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			httputil.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
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

	path := storage.ProfileImagePath(userID, fileHeader.Filename)
	url, err := h.objects.Upload(c.Context(), path, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("failed to upload profile image", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPLOAD_FAILED", "Failed to store profile image"))
	}

	err = h.repos.Profiles.Upsert(c.Context(), userID, map[string]any{
		"userId":   userID,
		"imageUrl": url,
	}, true)
	if err != nil {
		slog.Error("failed to record profile image url", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			httputil.CreateErrorResponse("UPDATE_FAILED", "Failed to record profile image URL"))
	}
	return c.Status(http.StatusCreated).JSON(httputil.CreateSuccessResponse(fiber.Map{"url": url}))
}
