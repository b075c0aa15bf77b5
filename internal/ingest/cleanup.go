package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/michaelmindrum/insulin-prescription-app/internal/sql"
)

// Cleanup deletes the rows of a failed batch.
func Cleanup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.DeleteImportRows, batchID)
	if err != nil {
		return err
	}

	log.Info().
		Int64("rows_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("batch cleanup complete")

	return nil
}

// Prune deletes inactive and failed imports beyond the newest keep, with
// their rows. The active import is never pruned.
func Prune(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, keep int) (int64, error) {
	tag, err := pool.Exec(ctx, embedsql.PruneImports, keep)
	if err != nil {
		return 0, err
	}
	log.Info().
		Int64("imports_pruned", tag.RowsAffected()).
		Int("kept", keep).
		Msg("old imports pruned")
	return tag.RowsAffected(), nil
}
