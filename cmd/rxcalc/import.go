package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelmindrum/insulin-prescription-app/internal/catalogsrc"
	"github.com/michaelmindrum/insulin-prescription-app/internal/db"
	"github.com/michaelmindrum/insulin-prescription-app/internal/exitcode"
	"github.com/michaelmindrum/insulin-prescription-app/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a catalog file into Postgres and make it the active catalog",
	Long: "COPY-loads catalog rows from --file (or the embedded catalog) into Postgres. " +
		"Files already imported are skipped unless --force is given.",
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&cfg.CatalogPath, "file", "", "Catalog file to import (default: embedded catalog)")
	f.BoolVar(&cfg.Force, "force", false, "Re-import even if file SHA already exists")
	f.IntVar(&cfg.KeepImports, "keep", 3, "Inactive imports to keep after activation (-1 keeps all)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	log := setup()
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := ingest.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("import failed")
			if errors.Is(pe.Err, catalogsrc.ErrUnavailable) {
				os.Exit(exitcode.DataFileMissing)
			}
			switch pe.Phase {
			case ingest.PhasePreflight:
				os.Exit(exitcode.ValidationError)
			default:
				os.Exit(exitcode.ImportError)
			}
		}
		log.Error().Err(err).Msg("import failed")
		os.Exit(exitcode.ImportError)
	}

	if summary.AlreadyLoaded {
		fmt.Printf("Catalog %s already active (import %d), nothing to do\n", summary.FilePath, summary.ImportID)
		return nil
	}
	fmt.Printf("Import complete: %d rows staged, %d usable, %d old imports pruned (%.1fs)\n",
		summary.RowsStaged, summary.RowsUsable, summary.ImportsPruned, summary.DurationTotal.Seconds())
	return nil
}
