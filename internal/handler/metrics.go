package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/metrics"
)

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next(). Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/videos/details/"):
		return "/api/videos/details/:videoId"
	case strings.HasPrefix(path, "/api/requests/") && strings.HasSuffix(path, "/approve"):
		return "/api/requests/:id/approve"
	case strings.HasPrefix(path, "/api/requests/") && strings.HasSuffix(path, "/reject"):
		return "/api/requests/:id/reject"
	case strings.HasPrefix(path, "/api/settings/api-keys/") && strings.HasSuffix(path, "/toggle"):
		return "/api/settings/api-keys/:id/toggle"
	}

	for _, group := range []string{"/api/channels/", "/api/keywords/", "/api/history/", "/api/requests/", "/api/settings/api-keys/"} {
		rest, ok := strings.CutPrefix(path, group)
		if !ok || rest == "" {
			continue
		}
		if _, err := strconv.ParseInt(rest, 10, 64); err == nil {
			return group + ":id"
		}
	}
	return path
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
