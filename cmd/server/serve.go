package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/config"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/db"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/handler"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/metrics"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/repository"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/router"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/service"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/youtube"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(configFlag *string) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, !skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply the schema on startup")
	return cmd
}

func serve(parent context.Context, cfg *config.Config, migrate bool) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := middleware.InitLogger(cfg.LogLevel, "kidstube", cfg.Environment)

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if migrate {
		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	metrics.Register(pool)

	rdb := service.ConnectRedis(cfg.RedisURL, log)
	if rdb != nil {
		defer rdb.Close()
	}

	yt, err := youtube.NewClient(ctx, cfg.YouTube.BaseURL, cfg.YouTube.Timeout)
	if err != nil {
		return fmt.Errorf("youtube client: %w", err)
	}

	// Repositories
	apiKeyRepo := repository.NewAPIKeyRepo(pool)
	channelRepo := repository.NewChannelRepo(pool)
	keywordRepo := repository.NewKeywordRepo(pool)
	historyRepo := repository.NewHistoryRepo(pool)
	requestRepo := repository.NewRequestRepo(pool)
	settingsRepo := repository.NewSettingsRepo(pool)

	// Core pipeline
	rotator := service.NewKeyRotator(apiKeyRepo, cfg.YouTube.APIKeys, log)
	cache := service.NewResultCache(rdb, cfg.Cache.TTL, cfg.Cache.MaxEntries, log)
	directory := service.NewDirectoryService(yt, rotator, cache, log)
	planner := service.NewPlanner(directory, log)

	// Services
	videoSvc := service.NewVideoService(channelRepo, keywordRepo, historyRepo, planner, directory, log)
	authSvc := service.NewAuthService(settingsRepo, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.PINCost)

	handlers := &router.Handlers{
		Health:   handler.NewHealthHandler(pool, rdb, version),
		Auth:     handler.NewAuthHandler(authSvc),
		Video:    handler.NewVideoHandler(videoSvc, cfg.Search.DefaultMaxResults, cfg.Search.MaxResultsLimit),
		Channel:  handler.NewChannelHandler(service.NewChannelService(channelRepo, directory)),
		Keyword:  handler.NewKeywordHandler(service.NewKeywordService(keywordRepo)),
		History:  handler.NewHistoryHandler(service.NewHistoryService(historyRepo)),
		Request:  handler.NewRequestHandler(service.NewRequestService(requestRepo, directory, log)),
		Settings: handler.NewSettingsHandler(service.NewAPIKeyService(apiKeyRepo, rotator, log)),
	}

	app := fiber.New(fiber.Config{
		AppName:      "KidsTube API",
		ServerHeader: "KidsTube",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	router.Setup(app, handlers, authSvc, cfg.CORSOrigins)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("KidsTube API starting")
		errCh <- app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
