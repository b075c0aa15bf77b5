package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/michaelmindrum/insulin-prescription-app/internal/catalogsrc"
	"github.com/michaelmindrum/insulin-prescription-app/internal/normalize"
	embedsql "github.com/michaelmindrum/insulin-prescription-app/internal/sql"
)

// Source is a catalog file to import.
type Source struct {
	// Name is stored as the import's source_file_name.
	Name   string
	SHA256 string
	Size   int64
	Open   func() (catalogsrc.RowReader, error)
}

// FileSource hashes the file at path and opens it through catalogsrc.
func FileSource(path string) (*Source, error) {
	if _, err := catalogsrc.FormatOf(path); err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalogsrc.ErrUnavailable, err)
	}
	sha, err := normalize.FileHash(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalogsrc.ErrUnavailable, err)
	}
	return &Source{
		Name:   filepath.Base(path),
		SHA256: sha,
		Size:   stat.Size(),
		Open:   func() (catalogsrc.RowReader, error) { return catalogsrc.Open(path) },
	}, nil
}

// EmbeddedSource is the catalog table shipped with the binary.
func EmbeddedSource() *Source {
	data := catalogsrc.DefaultBytes()
	return &Source{
		Name:   catalogsrc.DefaultName,
		SHA256: normalize.BytesHash(data),
		Size:   int64(len(data)),
		Open:   catalogsrc.OpenDefault,
	}
}

// SourceFor returns FileSource(path), or EmbeddedSource for an empty path.
func SourceFor(path string) (*Source, error) {
	if path == "" {
		return EmbeddedSource(), nil
	}
	return FileSource(path)
}

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	Source *Source
	// ImportID is the catalog.imports primary key, inserted or looked up by
	// file SHA-256.
	ImportID int64
	// ImportBatchID tags this run's rows in catalog.insulin_rows.
	ImportBatchID uuid.UUID
	// AlreadyLoaded is true when the file is already the active catalog and
	// force mode is off.
	AlreadyLoaded bool
}

// Preflight validates the source header and registers the import.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, src *Source, force bool) (*PreflightResult, error) {
	start := time.Now()

	reader, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}
	reader.Close()

	log.Info().
		Str("file", src.Name).
		Str("sha256", src.SHA256).
		Int64("size", src.Size).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	batchID := uuid.New()
	importID, alreadyLoaded, err := registerImport(ctx, pool, src, batchID, force)
	if err != nil {
		return nil, fmt.Errorf("preflight register import: %w", err)
	}

	return &PreflightResult{
		Source:        src,
		ImportID:      importID,
		ImportBatchID: batchID,
		AlreadyLoaded: alreadyLoaded,
	}, nil
}

func registerImport(ctx context.Context, pool *pgxpool.Pool, src *Source, batchID uuid.UUID, force bool) (int64, bool, error) {
	var importID int64
	err := pool.QueryRow(ctx, embedsql.RegisterImport, src.Name, src.SHA256, src.Size, batchID).Scan(&importID)
	if err == nil {
		return importID, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("register import: %w", err)
	}

	// Already exists (ON CONFLICT DO NOTHING returned no rows)
	var status string
	var oldBatch uuid.UUID
	if err := pool.QueryRow(ctx, embedsql.LookupImport, src.SHA256).Scan(&importID, &status, &oldBatch); err != nil {
		return 0, false, fmt.Errorf("lookup existing import: %w", err)
	}
	if !force && status == StatusActive {
		return importID, true, nil
	}

	// Re-import: drop the previous run's rows and take a fresh batch ID.
	if _, err := pool.Exec(ctx, embedsql.DeleteImportRows, oldBatch); err != nil {
		return 0, false, fmt.Errorf("delete previous rows: %w", err)
	}
	if _, err := pool.Exec(ctx, embedsql.ResetImport, importID, batchID, StatusPending); err != nil {
		return 0, false, fmt.Errorf("reset import: %w", err)
	}
	return importID, false, nil
}
