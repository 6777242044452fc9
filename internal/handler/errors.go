package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/repository"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/service"
)

// respondError maps a service error onto the API error envelope. notFound
// names the resource for 404s; failure is the generic 500 message.
func respondError(c fiber.Ctx, err error, notFound, failure string) error {
	if bq, ok := service.IsBlockedQuery(err); ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": fiber.Map{
				"code":           "BLOCKED_KEYWORD",
				"message":        "This search contains a blocked word",
				"blockedKeyword": bq.Keyword,
			},
		})
	}

	var dup *service.DuplicateRequestError
	switch {
	case errors.Is(err, service.ErrNoKeysAvailable):
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Video search is temporarily unavailable")
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, service.ErrVideoNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", notFound)
	case errors.As(err, &dup):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE", dup.Error())
	case errors.Is(err, repository.ErrDuplicate):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE", "Already exists")
	case errors.Is(err, service.ErrInvalidTransition):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, service.ErrInvalidVideoURL),
		errors.Is(err, service.ErrInvalidAPIKey),
		errors.Is(err, service.ErrEmptyKeyword),
		errors.Is(err, service.ErrPINNotSet):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
	case errors.Is(err, service.ErrPINAlreadySet):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "PIN_EXISTS", err.Error())
	case errors.Is(err, service.ErrInvalidPIN):
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "INVALID_PIN", "Invalid PIN")
	}

	middleware.Logger.Error().Err(err).
		Str("request_id", middleware.RequestIDFrom(c)).
		Str("path", c.Route().Path).
		Msg("request failed")
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", failure)
}

func badRequest(c fiber.Ctx, msg string) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", msg)
}
