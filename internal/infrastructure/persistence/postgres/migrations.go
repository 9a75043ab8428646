package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATIONS
// ══════════════════════════════════════════════════════════════════════════════

// Migration is one forward schema change.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
}

const migrationTable = "studentbook_schema_migrations"

// Migrations returns the embedded migrations in version order.
func Migrations() []Migration {
	return []Migration{
		{Version: 1, Name: "create_persons", UpSQL: migration001Up},
	}
}

// Migrate applies every migration not yet recorded, each in its own
// transaction.
func Migrate(ctx context.Context, conn *Connection) error {
	if _, err := conn.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`, migrationTable)); err != nil {
		return fmt.Errorf("%w: create migrations table: %v", ErrMigrationFailed, err)
	}

	rows, err := conn.Query(ctx, fmt.Sprintf("SELECT version FROM %s", migrationTable))
	if err != nil {
		return fmt.Errorf("%w: query applied migrations: %v", ErrMigrationFailed, err)
	}
	applied, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return fmt.Errorf("%w: scan applied migrations: %v", ErrMigrationFailed, err)
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, mig := range Migrations() {
		if done[mig.Version] {
			continue
		}
		err := conn.WithTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.UpSQL); err != nil {
				return fmt.Errorf("execute migration %d: %w", mig.Version, err)
			}
			_, err := tx.Exec(ctx,
				fmt.Sprintf("INSERT INTO %s (version, name) VALUES ($1, $2)", migrationTable),
				mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE PERSONS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- One row per person, position is the display order.
CREATE TABLE IF NOT EXISTS studentbook_persons (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    record JSONB NOT NULL
);

-- Single-row table tracking the last saved snapshot.
CREATE TABLE IF NOT EXISTS studentbook_revision (
    id BOOLEAN PRIMARY KEY DEFAULT TRUE,
    revision UUID NOT NULL,
    fingerprint TEXT NOT NULL,
    saved_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT single_row CHECK (id)
);
`
