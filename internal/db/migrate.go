package db

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/michaelmindrum/insulin-prescription-app/internal/normalize"
	embedsql "github.com/michaelmindrum/insulin-prescription-app/internal/sql"
)

// TxStarter is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ApplyMigrations runs every embedded .sql migration in filename order, each
// in its own transaction. All DDL uses IF NOT EXISTS so reruns are no-ops.
func ApplyMigrations(ctx context.Context, db TxStarter, log zerolog.Logger) error {
	return applyMigrations(ctx, db, log, embedsql.Migrations, "migrations")
}

func applyMigrations(ctx context.Context, db TxStarter, log zerolog.Logger, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		log.Info().
			Str("migration", name).
			Str("sha256", normalize.BytesHash(data)[:12]).
			Msg("applying migration")
		err = pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, string(data))
			return err
		})
		if err != nil {
			return fmt.Errorf("execute migration %s: %w", name, err)
		}
	}

	log.Info().Int("count", len(names)).Msg("all migrations applied")
	return nil
}
