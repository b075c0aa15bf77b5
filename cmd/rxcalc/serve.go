package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/michaelmindrum/insulin-prescription-app/internal/api"
	"github.com/michaelmindrum/insulin-prescription-app/internal/exitcode"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog and calculator as a JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&cfg.Addr, "addr", "", "Listen address (default :8080, or RXCALC_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := setup()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.DataFileMissing)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := newCalculator(ctx, log)
	e := api.NewServer(c, log)

	if err := api.Serve(ctx, e, cfg.Addr, log); err != nil {
		log.Error().Err(err).Msg("server failed")
		stop()
		os.Exit(exitcode.UsageError)
	}
	return nil
}
