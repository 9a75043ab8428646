// Package jsonfile stores the address book as a single JSON file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/snapshot"
	"github.com/studentbook/studentbook/pkg/logger"
)

// Store reads and writes one JSON document at Path.
type Store struct {
	path string
	log  *logger.Logger
}

// New creates a Store. The file is created on the first Save.
func New(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{path: path, log: log.With(logger.Component("jsonfile"))}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the document. A missing file is an empty address book.
func (s *Store) Load(ctx context.Context) ([]*person.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Info("data file not found, starting empty", logger.String("path", s.path))
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapError("jsonfile", "Load", shared.ErrStorage, "could not read data file", err)
	}
	persons, err := snapshot.Decode(data)
	if err != nil {
		return nil, shared.WrapError("jsonfile", "Load", shared.ErrStorage, "data file is corrupt", err)
	}
	s.log.Info("loaded address book", logger.String("path", s.path), logger.PersonCount(len(persons)))
	return persons, nil
}

// Save writes the document atomically through a temp file and rename.
func (s *Store) Save(ctx context.Context, persons []*person.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := snapshot.Encode(persons)
	if err != nil {
		return shared.WrapError("jsonfile", "Save", shared.ErrStorage, "could not encode address book", err)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return shared.WrapError("jsonfile", "Save", shared.ErrStorage, "could not write data file", err)
	}
	s.log.Debug("saved address book", logger.String("path", s.path), logger.PersonCount(len(persons)))
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (s *Store) Close() error { return nil }

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".addressbook-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	success = true
	return nil
}
