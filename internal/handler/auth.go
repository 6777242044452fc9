package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/model"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// InitializePIN handles POST /api/auth/initialize-pin
func (h *AuthHandler) InitializePIN(c fiber.Ctx) error {
	var req model.PINRequest
	if errMsg := middleware.BindJSON(c, &req); errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.InitializePIN(c.Context(), req.PIN); err != nil {
		return respondError(c, err, "", "Failed to set PIN")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// VerifyPIN handles POST /api/auth/verify-pin
func (h *AuthHandler) VerifyPIN(c fiber.Ctx) error {
	var req model.PINRequest
	if errMsg := middleware.BindJSON(c, &req); errMsg != "" {
		return badRequest(c, errMsg)
	}
	tok, err := h.svc.VerifyPIN(c.Context(), req.PIN)
	if err != nil {
		return respondError(c, err, "", "Failed to verify PIN")
	}
	return c.JSON(tok)
}

// CheckPIN handles GET /api/auth/check-pin
func (h *AuthHandler) CheckPIN(c fiber.Ctx) error {
	exists, err := h.svc.HasPIN(c.Context())
	if err != nil {
		return respondError(c, err, "", "Failed to check PIN")
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// ChangePIN handles POST /api/auth/change-pin
func (h *AuthHandler) ChangePIN(c fiber.Ctx) error {
	var req model.ChangePINRequest
	if errMsg := middleware.BindJSON(c, &req); errMsg != "" {
		return badRequest(c, errMsg)
	}
	if err := h.svc.ChangePIN(c.Context(), req.CurrentPIN, req.NewPIN); err != nil {
		return respondError(c, err, "", "Failed to change PIN")
	}
	return c.JSON(fiber.Map{"success": true})
}
