package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	embedsql "github.com/michaelmindrum/insulin-prescription-app/internal/sql"
)

// ErrNoActiveCatalog is returned when no catalog import has been activated.
var ErrNoActiveCatalog = errors.New("no active catalog import")

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ActiveImport describes the import currently serving the catalog.
type ActiveImport struct {
	ImportID       int64
	SourceFileName string
	SHA256         string
	RowsStaged     *int64
	ActivatedAt    *time.Time
}

// LoadActiveImport returns the active import record.
func LoadActiveImport(ctx context.Context, q Querier) (*ActiveImport, error) {
	var a ActiveImport
	err := q.QueryRow(ctx, embedsql.ActiveImport).
		Scan(&a.ImportID, &a.SourceFileName, &a.SHA256, &a.RowsStaged, &a.ActivatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveCatalog
	}
	if err != nil {
		return nil, fmt.Errorf("query active import: %w", err)
	}
	return &a, nil
}

// LoadActiveCatalog returns the rows of the active import in source order,
// so duplicate products resolve the same way they do when read from a file.
func LoadActiveCatalog(ctx context.Context, q Querier) ([]model.CatalogRow, error) {
	rows, err := q.Query(ctx, embedsql.LoadActiveCatalog)
	if err != nil {
		return nil, fmt.Errorf("query active catalog: %w", err)
	}
	defer rows.Close()

	var out []model.CatalogRow
	for rows.Next() {
		var r model.CatalogRow
		if err := rows.Scan(&r.InsulinType, &r.ConcentrationUPerML, &r.Form, &r.AmountPerDevice); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read catalog rows: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoActiveCatalog
	}
	return out, nil
}
