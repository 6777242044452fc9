package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/service"
)

type RequestHandler struct {
	svc *service.RequestService
}

func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// Submit handles POST /api/requests/submit
func (h *RequestHandler) Submit(c fiber.Ctx) error {
	var req model.SubmitRequest
	if errMsg := middleware.BindJSON(c, &req); errMsg != "" {
		return badRequest(c, errMsg)
	}
	created, err := h.svc.Submit(c.Context(), req.VideoURL)
	if err != nil {
		return respondError(c, err, "", "Failed to submit request")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Mine handles GET /api/requests/my-requests
func (h *RequestHandler) Mine(c fiber.Ctx) error {
	reqs, err := h.svc.List(c.Context(), "")
	if err != nil {
		return respondError(c, err, "", "Failed to list requests")
	}
	return c.JSON(reqs)
}

// List handles GET /api/requests?status=
func (h *RequestHandler) List(c fiber.Ctx) error {
	status := model.RequestStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return badRequest(c, "status must be one of: pending, approved, rejected")
	}
	reqs, err := h.svc.ListWithDetails(c.Context(), status)
	if err != nil {
		return respondError(c, err, "", "Failed to list requests")
	}
	return c.JSON(reqs)
}

// Approve handles PUT /api/requests/:id/approve
func (h *RequestHandler) Approve(c fiber.Ctx) error {
	return h.review(c, h.svc.Approve)
}

// Reject handles PUT /api/requests/:id/reject
func (h *RequestHandler) Reject(c fiber.Ctx) error {
	return h.review(c, h.svc.Reject)
}

func (h *RequestHandler) review(c fiber.Ctx, apply func(ctx context.Context, id int64) (*model.VideoRequest, error)) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	req, err := apply(c.Context(), id)
	if err != nil {
		return respondError(c, err, "Request not found", "Failed to review request")
	}
	return c.JSON(req)
}

// Delete handles DELETE /api/requests/:id
func (h *RequestHandler) Delete(c fiber.Ctx) error {
	id, errMsg := middleware.ParseID(c.Params("id"))
	if errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return respondError(c, err, "Request not found", "Failed to delete request")
	}
	return c.JSON(fiber.Map{"success": true})
}
