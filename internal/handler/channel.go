package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/service"
)

type ChannelHandler struct {
	svc *service.ChannelService
}

func NewChannelHandler(svc *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// List handles GET /api/channels
func (h *ChannelHandler) List(c fiber.Ctx) error {
	channels, err := h.svc.List(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to list channels")
	}
	return c.JSON(channels)
}

// Add handles POST /api/channels
func (h *ChannelHandler) Add(c fiber.Ctx) error {
	var req model.AddChannelRequest
	if errMsg := middleware.BindJSON(c, &req); errMsg != "" {
		return badRequest(c, errMsg)
	}
	channelID, errMsg := middleware.ValidateChannelID(req.ChannelID)
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	req.ChannelID = channelID

	ch, err := h.svc.Add(c.Context(), req)
	if err != nil {
		return respondError(c, err, "", "Failed to add channel")
	}
	return c.Status(fiber.StatusCreated).JSON(ch)
}

// Remove handles DELETE /api/channels/:id
func (h *ChannelHandler) Remove(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Remove(c.Context(), id); err != nil {
		return respondError(c, err, "Channel not found", "Failed to remove channel")
	}
	return c.JSON(fiber.Map{"success": true})
}

// Search handles GET /api/channels/search?query=
func (h *ChannelHandler) Search(c fiber.Ctx) error {
	query, errMsg := middleware.ValidateQuery(c.Query("query"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	candidates, err := h.svc.Discover(c.Context(), query)
	if err != nil {
		return respondError(c, err, "", "Failed to search channels")
	}
	return c.JSON(candidates)
}
