package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/snapshot"
	"github.com/studentbook/studentbook/pkg/logger"
	"github.com/studentbook/studentbook/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADDRESS BOOK STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store implements addressbook.Repository for PostgreSQL.
type Store struct {
	conn *Connection
	log  *logger.Logger
}

// Open connects to databaseURL with retries and applies migrations.
func Open(ctx context.Context, databaseURL string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("postgres"))

	var conn *Connection
	r := retry.StoreRetrier(func(attempt int, err error, delay time.Duration) {
		log.Warn("postgres connect failed, retrying",
			logger.Int("attempt", attempt), logger.Err(err), logger.Duration("delay", delay))
	})
	err := r.Do(ctx, func(ctx context.Context) error {
		c, err := Connect(ctx, databaseURL)
		if err != nil {
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, shared.WrapError("postgres", "Open", shared.ErrStorage, "could not connect to PostgreSQL", err)
	}

	if err := Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, shared.WrapError("postgres", "Open", shared.ErrStorage, "could not migrate PostgreSQL schema", err)
	}
	log.Info("opened postgres store")
	return &Store{conn: conn, log: log}, nil
}

// NewStore wraps an existing connection. Migrations must already be applied.
func NewStore(conn *Connection, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{conn: conn, log: log.With(logger.Component("postgres"))}
}

// Load returns the persons ordered by position.
func (s *Store) Load(ctx context.Context) ([]*person.Person, error) {
	rows, err := s.conn.Query(ctx, `SELECT record FROM studentbook_persons ORDER BY position`)
	if err != nil {
		return nil, shared.WrapError("postgres", "Load", shared.ErrStorage, "could not read address book", err)
	}
	raws, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, shared.WrapError("postgres", "Load", shared.ErrStorage, "could not read address book", err)
	}

	records := make([]snapshot.PersonRecord, len(raws))
	for i, raw := range raws {
		if err := json.Unmarshal(raw, &records[i]); err != nil {
			return nil, shared.WrapError("postgres", "Load", shared.ErrStorage, "stored address book is corrupt",
				fmt.Errorf("row %d: %w", i+1, err))
		}
	}
	persons, err := snapshot.Persons(records)
	if err != nil {
		return nil, shared.WrapError("postgres", "Load", shared.ErrStorage, "stored address book is corrupt", err)
	}
	s.log.Info("loaded address book", logger.PersonCount(len(persons)))
	return persons, nil
}

// Save replaces every row and bumps the revision in one transaction.
func (s *Store) Save(ctx context.Context, persons []*person.Person) error {
	records := snapshot.Records(persons)
	rows := make([][]any, len(records))
	for i, r := range records {
		raw, err := json.Marshal(r)
		if err != nil {
			return shared.WrapError("postgres", "Save", shared.ErrStorage, "could not encode address book", err)
		}
		rows[i] = []any{i, r.Name, raw}
	}
	fingerprint, err := snapshot.FingerprintOf(persons)
	if err != nil {
		return shared.WrapError("postgres", "Save", shared.ErrStorage, "could not encode address book", err)
	}
	revision := uuid.New()

	err = s.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM studentbook_persons`); err != nil {
			return fmt.Errorf("clear persons: %w", err)
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"studentbook_persons"},
			[]string{"position", "name", "record"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("copy persons: %w", err)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO studentbook_revision (id, revision, fingerprint, saved_at)
			VALUES (TRUE, $1, $2, NOW())
			ON CONFLICT (id) DO UPDATE
			SET revision = EXCLUDED.revision, fingerprint = EXCLUDED.fingerprint, saved_at = EXCLUDED.saved_at
		`, revision, fingerprint)
		return err
	})
	if err != nil {
		return shared.WrapError("postgres", "Save", shared.ErrStorage, "could not write address book", err)
	}
	s.log.Debug("saved address book",
		logger.PersonCount(len(persons)), logger.String("revision", revision.String()), logger.Fingerprint(fingerprint))
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.conn.Close()
	return nil
}
