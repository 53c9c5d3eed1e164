package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xiaot623/adgenie/internal/config"
	"github.com/xiaot623/adgenie/internal/logging"
	"github.com/xiaot623/adgenie/internal/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(v)
		logger := logging.New(cfg.LogLevel, cfg.IsDevelopment())

		db, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(cmd.Context()); err != nil {
			return err
		}
		logger.Info().Str("dialect", db.Dialect()).Msg("migrations applied")
		return nil
	},
}
