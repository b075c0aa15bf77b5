package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelmindrum/insulin-prescription-app/internal/db"
	"github.com/michaelmindrum/insulin-prescription-app/internal/exitcode"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or RXCALC_DSN is required")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.ImportError)
	}

	log.Info().Msg("all migrations applied successfully")
	return nil
}
