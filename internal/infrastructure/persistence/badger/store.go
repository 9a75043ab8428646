// Package badger stores the address book in an embedded BadgerDB, one key
// per person under a common prefix.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/snapshot"
	"github.com/studentbook/studentbook/pkg/logger"
)

// personPrefix is followed by a zero-padded position so key order is list order.
const personPrefix = "person/"

// Config configures the embedded database.
type Config struct {
	// Path is the database directory. Required unless InMemory is set.
	Path string

	// InMemory keeps all data in memory. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Logger receives badger's internal messages. Nil disables them.
	Logger *logger.Logger
}

// DefaultConfig returns a durable on-disk configuration for path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration that never touches disk.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts logger.Logger to badger.Logger.
type badgerLogger struct {
	log *logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.log.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.log.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.log.Debugf(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.log.Debugf(format, args...) }

// Store is an addressbook.Repository backed by BadgerDB.
type Store struct {
	db  *badger.DB
	log *logger.Logger
}

// Open opens or creates the database described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger: path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("badger: create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
		opts = opts.WithLogger(nil)
	} else {
		log = log.With(logger.Component("badger"))
		opts = opts.WithLogger(&badgerLogger{log: log})
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open database: %w", err)
	}
	log.Info("opened badger store", logger.String("path", cfg.Path), logger.Bool("in_memory", cfg.InMemory))
	return &Store{db: db, log: log}, nil
}

// Load returns the persons in stored order.
func (s *Store) Load(ctx context.Context) ([]*person.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []snapshot.PersonRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(personPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r snapshot.PersonRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			records = append(records, r)
		}
		return nil
	})
	if err != nil {
		return nil, shared.WrapError("badger", "Load", shared.ErrStorage, "could not read address book", err)
	}

	persons, err := snapshot.Persons(records)
	if err != nil {
		return nil, shared.WrapError("badger", "Load", shared.ErrStorage, "stored address book is corrupt", err)
	}
	s.log.Info("loaded address book", logger.PersonCount(len(persons)))
	return persons, nil
}

// Save replaces every stored person in one transaction.
func (s *Store) Save(ctx context.Context, persons []*person.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := deletePrefix(txn, []byte(personPrefix)); err != nil {
			return err
		}
		for i, r := range snapshot.Records(persons) {
			val, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("encode person %d: %w", i+1, err)
			}
			if err := txn.Set(personKey(i), val); err != nil {
				return fmt.Errorf("set person %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return shared.WrapError("badger", "Save", shared.ErrStorage, "could not write address book", err)
	}
	s.log.Debug("saved address book", logger.PersonCount(len(persons)))
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func personKey(i int) []byte {
	return []byte(fmt.Sprintf("%s%08d", personPrefix, i))
}

func deletePrefix(txn *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}
