package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	VideoIDLen      = 11 // YouTube video ids are always 11 characters
	MaxChannelIDLen = 64 // approved_channels.channel_id VARCHAR(64)
	MaxQueryLen     = 200
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// channelIDRe matches YouTube channel IDs: alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// BindJSON decodes the request body into out and runs its validate tags.
// It returns a client-facing message on failure, or "".
func BindJSON(c fiber.Ctx, out any) string {
	if err := c.Bind().JSON(out); err != nil {
		return "Invalid request body"
	}
	return ValidateStruct(out)
}

// ValidateStruct runs validate tags on s and describes the first failure.
func ValidateStruct(s any) string {
	err := validate.Struct(s)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	return describe(verrs[0])
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "numeric":
		return field + " must contain only digits"
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}

// ValidateVideoID checks that a video ID is well-formed.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) != VideoIDLen {
		return "", "videoId must be 11 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateChannelID checks that a channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 64 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateQuery trims a search query and enforces its length.
func ValidateQuery(q string) (string, string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", "query is required"
	}
	if len(q) > MaxQueryLen {
		return "", "query must be at most 200 characters"
	}
	return q, ""
}

// ValidateOptionalQuery trims a search query that may be empty and
// enforces its length.
func ValidateOptionalQuery(q string) (string, string) {
	q = strings.TrimSpace(q)
	if len(q) > MaxQueryLen {
		return "", "query must be at most 200 characters"
	}
	return q, ""
}

// ParseID parses a positive integer path parameter.
func ParseID(raw string) (int64, string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, "id must be a positive integer"
	}
	return id, ""
}

// ParseLimit parses an optional positive integer, falling back to def and
// clamping to ceiling.
func ParseLimit(raw string, def, ceiling int) (int, string) {
	if raw == "" {
		return def, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, "must be a positive integer"
	}
	return min(n, ceiling), ""
}
