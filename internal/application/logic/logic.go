// Package logic is the entry point the user interfaces talk to. It parses a
// command line, executes the command against the address book and persists
// the result when it changed.
package logic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/addressbook"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/internal/infrastructure/persistence/snapshot"
	"github.com/studentbook/studentbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Parser turns a command line into a command.
type Parser interface {
	Parse(input string) (command.Command, error)
}

// Config wires the collaborators of Logic.
type Config struct {
	// Store loads the address book on start and receives every change.
	Store addressbook.Repository

	// Parser parses command lines.
	Parser Parser

	// Logger receives one entry per executed line. Nil discards.
	Logger *logger.Logger
}

// ErrPanic wraps a panic recovered while executing a command.
var ErrPanic = errors.New("command panicked")

// ══════════════════════════════════════════════════════════════════════════════
// LOGIC
// ══════════════════════════════════════════════════════════════════════════════

// Logic serializes command execution over one address book.
type Logic struct {
	mu sync.Mutex

	book   *addressbook.AddressBook
	parser Parser
	store  addressbook.Repository
	log    *logger.Logger

	// savedFingerprint is the fingerprint of what the store last held.
	savedFingerprint string
}

// New loads the address book from cfg.Store.
func New(ctx context.Context, cfg Config) (*Logic, error) {
	if cfg.Store == nil || cfg.Parser == nil {
		return nil, errors.New("logic: store and parser are required")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	persons, err := cfg.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	book := addressbook.New(persons...)

	fp, err := snapshot.FingerprintOf(book.Persons())
	if err != nil {
		return nil, shared.WrapError("logic", "New", shared.ErrStorage, "could not encode address book", err)
	}

	log.Info("address book ready", logger.PersonCount(book.Len()), logger.Fingerprint(fp))
	return &Logic{
		book:             book,
		parser:           cfg.Parser,
		store:            cfg.Store,
		log:              log,
		savedFingerprint: fp,
	}, nil
}

// Execute parses and runs one command line. A failed parse or command leaves
// the address book unchanged. When the change cannot be saved, the result is
// returned together with the storage error.
func (l *Logic) Execute(ctx context.Context, line string) (command.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	log := l.log.WithCorrelationID(uuid.NewString())

	cmd, err := l.parser.Parse(line)
	if err != nil {
		log.Warn("command rejected", logger.Input(line), logger.Err(err), logger.Latency(time.Since(start)))
		return command.Result{}, err
	}
	log = log.With(logger.Command(cmd.Word()))

	res, err := l.run(cmd)
	if err != nil {
		log.Warn("command failed", logger.Input(line), logger.Err(err), logger.Latency(time.Since(start)))
		return command.Result{}, err
	}

	if res.Mutating {
		if err := l.persist(ctx, log); err != nil {
			log.Error("command applied but not saved", logger.Err(err), logger.Latency(time.Since(start)))
			return res, err
		}
	}

	log.Info("command executed", logger.Result(res.Feedback), logger.Latency(time.Since(start)))
	return res, nil
}

// run executes cmd, turning a panic into an error.
func (l *Logic) run(cmd command.Command) (res command.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrPanic, cmd.Word(), r)
		}
	}()
	return cmd.Execute(l.book)
}

// persist saves the address book unless it matches what was last saved.
func (l *Logic) persist(ctx context.Context, log *logger.Logger) error {
	persons := l.book.Persons()
	fp, err := snapshot.FingerprintOf(persons)
	if err != nil {
		return shared.WrapError("logic", "Save", shared.ErrStorage, "could not encode address book", err)
	}
	if fp == l.savedFingerprint {
		log.Debug("address book unchanged, skipping save", logger.Fingerprint(fp))
		return nil
	}
	if err := l.store.Save(ctx, persons); err != nil {
		return err
	}
	l.savedFingerprint = fp
	log.Debug("address book saved", logger.PersonCount(len(persons)), logger.Fingerprint(fp))
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// VIEW
// ══════════════════════════════════════════════════════════════════════════════

// FilteredPersons returns the persons currently displayed.
func (l *Logic) FilteredPersons() []*person.Person {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.FilteredPersons()
}

// Filter shows only persons matching any keyword. No keywords shows all.
func (l *Logic) Filter(keywords ...string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.book.UpdateFilter(person.ContainsKeywords(keywords...))
	return len(l.book.FilteredPersons())
}

// ShowAll removes the display filter.
func (l *Logic) ShowAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.book.UpdateFilter(person.ShowAll)
}

// Close closes the store.
func (l *Logic) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Close()
}
