package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/service"
)

// SettingsHandler manages the upstream API keys.
type SettingsHandler struct {
	svc *service.APIKeyService
}

func NewSettingsHandler(svc *service.APIKeyService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// ListKeys handles GET /api/settings/api-keys
func (h *SettingsHandler) ListKeys(c fiber.Ctx) error {
	keys, err := h.svc.List(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to list API keys")
	}
	return c.JSON(keys)
}

// AddKey handles POST /api/settings/api-keys
func (h *SettingsHandler) AddKey(c fiber.Ctx) error {
	var req model.AddAPIKeyRequest
	if errMsg := middleware.BindJSON(c, &req); errMsg != "" {
		return badRequest(c, errMsg)
	}
	k, err := h.svc.Add(c.Context(), req.KeyValue)
	if err != nil {
		return respondError(c, err, "", "Failed to add API key")
	}
	return c.Status(fiber.StatusCreated).JSON(k)
}

// ToggleKey handles PUT /api/settings/api-keys/:id/toggle
func (h *SettingsHandler) ToggleKey(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	k, err := h.svc.Toggle(c.Context(), id)
	if err != nil {
		return respondError(c, err, "API key not found", "Failed to toggle API key")
	}
	return c.JSON(k)
}

// DeleteKey handles DELETE /api/settings/api-keys/:id
func (h *SettingsHandler) DeleteKey(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return respondError(c, err, "API key not found", "Failed to delete API key")
	}
	return c.JSON(fiber.Map{"success": true})
}
