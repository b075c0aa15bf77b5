package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/michaelmindrum/insulin-prescription-app/internal/calc"
	"github.com/michaelmindrum/insulin-prescription-app/internal/catalog"
	"github.com/michaelmindrum/insulin-prescription-app/internal/catalogsrc"
	"github.com/michaelmindrum/insulin-prescription-app/internal/db"
	"github.com/michaelmindrum/insulin-prescription-app/internal/dosing"
	"github.com/michaelmindrum/insulin-prescription-app/internal/exitcode"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// loadCatalog builds the catalog from the active Postgres import when a DSN
// is set, else from --catalog, else from the embedded table. Failures exit.
func loadCatalog(ctx context.Context, log zerolog.Logger) *catalog.Catalog {
	rows, source, err := loadRows(ctx, log)
	if err != nil {
		log.Error().Err(err).Str("source", source).Msg("failed to load catalog")
		switch {
		case errors.Is(err, errDBConn):
			os.Exit(exitcode.DBConnError)
		case errors.Is(err, catalogsrc.ErrUnavailable), errors.Is(err, db.ErrNoActiveCatalog):
			os.Exit(exitcode.DataFileMissing)
		default:
			os.Exit(exitcode.DataError)
		}
	}

	cat, stats := catalog.Build(rows)
	log.Debug().
		Str("source", source).
		Int("rows_read", stats.RowsRead).
		Int("rows_used", stats.RowsUsed).
		Int("rows_dropped", stats.RowsDropped).
		Int("overwrites", stats.Overwrites).
		Int("insulins", cat.Len()).
		Msg("catalog loaded")
	if stats.RowsUsed == 0 {
		log.Error().Str("source", source).Msg("catalog has no usable rows")
		os.Exit(exitcode.DataError)
	}
	return cat
}

var errDBConn = errors.New("database connection failed")

func loadRows(ctx context.Context, log zerolog.Logger) ([]model.CatalogRow, string, error) {
	switch {
	case cfg.DSN != "":
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			return nil, "postgres", fmt.Errorf("%w: %v", errDBConn, err)
		}
		defer pool.Close()

		active, err := db.LoadActiveImport(ctx, pool)
		if err != nil {
			return nil, "postgres", err
		}
		log.Debug().
			Int64("import_id", active.ImportID).
			Str("file", active.SourceFileName).
			Msg("using active catalog import")
		rows, err := db.LoadActiveCatalog(ctx, pool)
		return rows, "postgres:" + active.SourceFileName, err
	case cfg.CatalogPath != "":
		rows, err := catalogsrc.Load(cfg.CatalogPath)
		return rows, cfg.CatalogPath, err
	default:
		rows, err := catalogsrc.Default()
		return rows, catalogsrc.DefaultName, err
	}
}

// newCalculator loads the catalog and applies configured titration
// exceptions on top of the built-in ones.
func newCalculator(ctx context.Context, log zerolog.Logger) *calc.Calculator {
	cat := loadCatalog(ctx, log)
	return calc.New(cat, dosing.NewEngine(cfg.TitrationOverrides()...))
}
