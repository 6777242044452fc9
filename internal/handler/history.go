package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/service"
)

type HistoryHandler struct {
	svc *service.HistoryService
}

func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// List handles GET /api/history?limit=&offset=
func (h *HistoryHandler) List(c fiber.Ctx) error {
	limit := fiber.Query[int](c, "limit", service.DefaultHistoryLimit)
	offset := fiber.Query[int](c, "offset", 0)

	page, err := h.svc.Page(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "", "Failed to load history")
	}
	return c.JSON(page)
}

// Stats handles GET /api/history/stats
func (h *HistoryHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to load watch statistics")
	}
	return c.JSON(stats)
}

// Delete handles DELETE /api/history/:id
func (h *HistoryHandler) Delete(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return respondError(c, err, "History entry not found", "Failed to delete history entry")
	}
	return c.JSON(fiber.Map{"success": true})
}

// Clear handles DELETE /api/history
func (h *HistoryHandler) Clear(c fiber.Ctx) error {
	n, err := h.svc.Clear(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to clear history")
	}
	return c.JSON(fiber.Map{"success": true, "deleted": n})
}
