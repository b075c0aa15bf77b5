package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/michaelmindrum/insulin-prescription-app/internal/catalog"
	"github.com/michaelmindrum/insulin-prescription-app/internal/db"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/normalize"
	embedsql "github.com/michaelmindrum/insulin-prescription-app/internal/sql"
)

// Import statuses stored in catalog.imports.status.
const (
	StatusPending  = "pending"
	StatusStaging  = "staging"
	StatusStaged   = "staged"
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusFailed   = "failed"
)

const readBatchSize = 256

// StageResult holds metrics from the staging phase.
type StageResult struct {
	RowsRead     int64
	RowsStaged   int64
	RowsUsable   int64
	DurationRead time.Duration
	Duration     time.Duration
}

// Stage streams rows from the source, normalizes them, and COPY-loads them
// into catalog.insulin_rows via a channel-backed CopyFromSource. Incomplete
// rows are stored too; RowsUsable counts the ones the catalog will keep.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) (*StageResult, error) {
	start := time.Now()

	reader, err := pf.Source.Open()
	if err != nil {
		return nil, fmt.Errorf("stage open: %w", err)
	}
	defer reader.Close()

	ch := make(chan *model.StagingRow, readBatchSize)
	errCh := make(chan error, 1)

	var rowsRead, rowsUsable int64
	var readDur time.Duration

	// Producer goroutine: read source → normalize → push to channel
	go func() {
		defer close(ch)
		buf := make([]model.CatalogRow, readBatchSize)
		var rowNum int64

		for {
			readStart := time.Now()
			n, readErr := reader.Read(buf)
			readDur += time.Since(readStart)
			for i := 0; i < n; i++ {
				rowNum++
				rowsRead++
				if catalog.Usable(&buf[i]) {
					rowsUsable++
				}

				select {
				case ch <- normalize.ToStagingRow(&buf[i], pf.ImportBatchID, rowNum):
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				errCh <- fmt.Errorf("read source at row %d: %w", rowNum, readErr)
				return
			}
		}
		errCh <- nil
	}()

	// Consumer: COPY from channel into the rows table
	source := db.NewChannelSource(ctx, ch)
	rowsStaged, err := pool.CopyFrom(ctx,
		pgx.Identifier{"catalog", "insulin_rows"},
		model.StagingColumns(),
		source,
	)
	if err != nil {
		// Unblock the producer if COPY stopped early.
		for range ch {
		}
	}

	prodErr := <-errCh
	if prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("stage copy: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_read", rowsRead).
		Int64("rows_staged", rowsStaged).
		Int64("rows_usable", rowsUsable).
		Str("duration", dur.String()).
		Msg("staging complete")

	return &StageResult{
		RowsRead:     rowsRead,
		RowsStaged:   rowsStaged,
		RowsUsable:   rowsUsable,
		DurationRead: readDur,
		Duration:     dur,
	}, nil
}

// UpdateStatus updates the import status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, importID int64, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateImportStatus, importID, status)
	return err
}
