package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limelightseychelles-git/KidsTube-filter/internal/config"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/db"
	"github.com/limelightseychelles-git/KidsTube-filter/internal/middleware"
)

func newMigrateCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			log := middleware.InitLogger(cfg.LogLevel, "kidstube", cfg.Environment)

			pool, err := db.NewPool(cmd.Context(), cfg.DatabaseURL, log)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close()

			if err := db.Migrate(cmd.Context(), pool); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info().Msg("schema applied")
			return nil
		},
	}
}
