package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/service"
)

type KeywordHandler struct {
	svc *service.KeywordService
}

func NewKeywordHandler(svc *service.KeywordService) *KeywordHandler {
	return &KeywordHandler{svc: svc}
}

// List handles GET /api/keywords
func (h *KeywordHandler) List(c fiber.Ctx) error {
	kws, err := h.svc.List(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to list keywords")
	}
	return c.JSON(kws)
}

// Add handles POST /api/keywords
func (h *KeywordHandler) Add(c fiber.Ctx) error {
	var req model.AddKeywordRequest
	if errMsg := middleware.BindJSON(c, &req); errMsg != "" {
		return badRequest(c, errMsg)
	}
	kw, err := h.svc.Add(c.Context(), req.Keyword)
	if err != nil {
		return respondError(c, err, "", "Failed to add keyword")
	}
	return c.Status(fiber.StatusCreated).JSON(kw)
}

// AddBulk handles POST /api/keywords/bulk
func (h *KeywordHandler) AddBulk(c fiber.Ctx) error {
	var req model.BulkKeywordRequest
	if errMsg := middleware.BindJSON(c, &req); errMsg != "" {
		return badRequest(c, errMsg)
	}
	res, err := h.svc.AddBulk(c.Context(), req.Keywords)
	if err != nil {
		return respondError(c, err, "", "Failed to add keywords")
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Remove handles DELETE /api/keywords/:id
func (h *KeywordHandler) Remove(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Remove(c.Context(), id); err != nil {
		return respondError(c, err, "Keyword not found", "Failed to remove keyword")
	}
	return c.JSON(fiber.Map{"success": true})
}
