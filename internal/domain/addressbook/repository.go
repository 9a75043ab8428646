package addressbook

import (
	"context"

	"github.com/studentbook/studentbook/internal/domain/person"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository loads and stores the whole address book as one snapshot.
type Repository interface {
	// Load returns every stored person in order. An empty store yields an
	// empty slice and no error.
	Load(ctx context.Context) ([]*person.Person, error)

	// Save replaces the stored snapshot with persons.
	Save(ctx context.Context, persons []*person.Person) error

	// Close releases the underlying connection or file handle.
	Close() error
}
