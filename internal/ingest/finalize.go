package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/michaelmindrum/insulin-prescription-app/internal/sql"
)

// Finalize deactivates the previous catalog and activates this import in one
// transaction, then runs ANALYZE.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, importID, rowsStaged int64) (time.Duration, error) {
	start := time.Now()

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, embedsql.DeactivateImports, importID)
		if err != nil {
			return fmt.Errorf("deactivate previous imports: %w", err)
		}
		log.Info().Int64("deactivated", tag.RowsAffected()).Msg("previous catalog deactivated")

		if _, err := tx.Exec(ctx, embedsql.ActivateImport, importID, rowsStaged); err != nil {
			return fmt.Errorf("activate import: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Info().Int64("import_id", importID).Msg("catalog activated")

	if _, err := pool.Exec(ctx, embedsql.AnalyzeRows); err != nil {
		return 0, fmt.Errorf("analyze rows: %w", err)
	}

	return time.Since(start), nil
}
