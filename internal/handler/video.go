package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/service"
)

type VideoHandler struct {
	svc        *service.VideoService
	defaultMax int
	limit      int
}

func NewVideoHandler(svc *service.VideoService, defaultMax, limit int) *VideoHandler {
	return &VideoHandler{svc: svc, defaultMax: defaultMax, limit: limit}
}

// Search handles GET /api/videos/search?query=&maxResults=
// An empty query lists the approved channels' videos.
func (h *VideoHandler) Search(c fiber.Ctx) error {
	query, errMsg := middleware.ValidateOptionalQuery(c.Query("query"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	maxResults, errMsg := middleware.ParseLimit(c.Query("maxResults"), h.defaultMax, h.limit)
	if errMsg != "" {
		return badRequest(c, "maxResults "+errMsg)
	}

	resp, err := h.svc.Search(c.Context(), query, maxResults)
	if err != nil {
		return respondError(c, err, "No videos found", "Failed to search videos")
	}
	return c.JSON(resp)
}

// Latest handles GET /api/videos/latest?maxResults=
func (h *VideoHandler) Latest(c fiber.Ctx) error {
	maxResults, errMsg := middleware.ParseLimit(c.Query("maxResults"), h.defaultMax, h.limit)
	if errMsg != "" {
		return badRequest(c, "maxResults "+errMsg)
	}

	resp, err := h.svc.Latest(c.Context(), maxResults)
	if err != nil {
		return respondError(c, err, "No videos found", "Failed to load latest videos")
	}
	return c.JSON(resp)
}

// Details handles GET /api/videos/details/:videoId
func (h *VideoHandler) Details(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}

	d, err := h.svc.Details(c.Context(), videoID)
	if err != nil {
		return respondError(c, err, "Video not found", "Failed to load video details")
	}
	return c.JSON(d)
}
