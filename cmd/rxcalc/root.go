package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/michaelmindrum/insulin-prescription-app/internal/config"
	"github.com/michaelmindrum/insulin-prescription-app/internal/exitcode"
	"github.com/michaelmindrum/insulin-prescription-app/internal/logging"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "rxcalc",
	Short: "Insulin prescription calculator",
	Long: "Computes insulin starting and titration doses, 90-day supply quantities and " +
		"prescription wording from a catalog of insulin products.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", "", "Postgres connection string (or set RXCALC_DSN / DATABASE_URL)")
	pf.StringVar(&cfg.CatalogPath, "catalog", "", "Catalog file: .xlsx, .csv or .parquet (default: embedded catalog)")
	pf.StringVar(&cfg.PolicyPath, "config", "", "YAML policy file (titration exceptions, catalog path)")
	pf.StringVar(&cfg.LogFormat, "log-format", "", "Log format: text or json (default text)")
	pf.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn or error (default info)")
}

// setup applies environment defaults and the policy file, then returns the
// logger for the command.
func setup() zerolog.Logger {
	cfg.LoadEnv()
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if cfg.PolicyPath != "" {
		if err := cfg.LoadFromFile(cfg.PolicyPath); err != nil {
			log.Error().Err(err).Str("file", cfg.PolicyPath).Msg("policy file invalid")
			os.Exit(exitcode.UsageError)
		}
		log.Debug().
			Str("file", cfg.PolicyPath).
			Int("titration_exceptions", len(cfg.TitrationExceptions)).
			Msg("policy file loaded")
	}
	return log
}
