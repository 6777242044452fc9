package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/handler"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Video    *handler.VideoHandler
	Channel  *handler.ChannelHandler
	Keyword  *handler.KeywordHandler
	History  *handler.HistoryHandler
	Request  *handler.RequestHandler
	Settings *handler.SettingsHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
// Parent routes are guarded by tokens checked against auth.
func Setup(app *fiber.App, h *Handlers, auth middleware.TokenValidator, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health and metrics (no auth needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")
	parent := middleware.RequireParent(auth)

	searchLimit := middleware.NewSearchRateLimiter().Handler()
	submitLimit := middleware.NewSubmitRateLimiter().Handler()
	pinLimit := middleware.NewPINRateLimiter().Handler()

	// Auth routes
	api.Post("/auth/initialize-pin", h.Auth.InitializePIN)
	api.Post("/auth/verify-pin", pinLimit, h.Auth.VerifyPIN)
	api.Get("/auth/check-pin", h.Auth.CheckPIN)
	api.Post("/auth/change-pin", parent, pinLimit, h.Auth.ChangePIN)

	// Kid-facing video routes
	api.Get("/videos/search", searchLimit, h.Video.Search)
	api.Get("/videos/latest", searchLimit, h.Video.Latest)
	api.Get("/videos/details/:videoId", h.Video.Details)

	// Video requests
	api.Post("/requests/submit", submitLimit, h.Request.Submit)
	api.Get("/requests/my-requests", h.Request.Mine)
	api.Get("/requests", parent, h.Request.List)
	api.Put("/requests/:id/approve", parent, h.Request.Approve)
	api.Put("/requests/:id/reject", parent, h.Request.Reject)
	api.Delete("/requests/:id", parent, h.Request.Delete)

	// Channel routes
	api.Get("/channels", parent, h.Channel.List)
	api.Get("/channels/search", parent, h.Channel.Search)
	api.Post("/channels", parent, h.Channel.Add)
	api.Delete("/channels/:id", parent, h.Channel.Remove)

	// Keyword routes
	api.Get("/keywords", parent, h.Keyword.List)
	api.Post("/keywords", parent, h.Keyword.Add)
	api.Post("/keywords/bulk", parent, h.Keyword.AddBulk)
	api.Delete("/keywords/:id", parent, h.Keyword.Remove)

	// History routes
	api.Get("/history", parent, h.History.List)
	api.Get("/history/stats", parent, h.History.Stats)
	api.Delete("/history", parent, h.History.Clear)
	api.Delete("/history/:id", parent, h.History.Delete)

	// API key settings
	api.Get("/settings/api-keys", parent, h.Settings.ListKeys)
	api.Post("/settings/api-keys", parent, h.Settings.AddKey)
	api.Put("/settings/api-keys/:id/toggle", parent, h.Settings.ToggleKey)
	api.Delete("/settings/api-keys/:id", parent, h.Settings.DeleteKey)
}
