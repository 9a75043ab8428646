// Package addressbook holds the in-memory list of persons and the filtered
// view that commands index into.
package addressbook

import (
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// AddressBook is a list of unique persons plus a display filter. It is owned
// by the command execution flow and is not safe for concurrent use.
type AddressBook struct {
	persons   []*person.Person
	predicate person.Predicate
	filtered  []*person.Person
}

// New creates an AddressBook seeded with persons. Later duplicates (same
// name) are dropped.
func New(persons ...*person.Person) *AddressBook {
	ab := &AddressBook{predicate: person.ShowAll}
	for _, p := range persons {
		if p == nil || ab.HasPerson(p) {
			continue
		}
		ab.persons = append(ab.persons, p)
	}
	ab.refilter()
	return ab
}

// ──────────────────────────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────────────────────────

// Persons returns a copy of every person in insertion order.
func (ab *AddressBook) Persons() []*person.Person {
	out := make([]*person.Person, len(ab.persons))
	copy(out, ab.persons)
	return out
}

// FilteredPersons returns a copy of the persons matching the current filter.
func (ab *AddressBook) FilteredPersons() []*person.Person {
	out := make([]*person.Person, len(ab.filtered))
	copy(out, ab.filtered)
	return out
}

// Len returns the number of persons, ignoring the filter.
func (ab *AddressBook) Len() int { return len(ab.persons) }

// HasPerson reports whether a person with the same identity exists.
func (ab *AddressBook) HasPerson(p *person.Person) bool {
	for _, existing := range ab.persons {
		if existing.IsSamePerson(p) {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutations
// ──────────────────────────────────────────────────────────────────────────────

// AddPerson appends p. Fails with ErrDuplicatePerson if an equivalent person
// exists.
func (ab *AddressBook) AddPerson(p *person.Person) error {
	if ab.HasPerson(p) {
		return shared.ErrPersonExists
	}
	ab.persons = append(ab.persons, p)
	ab.refilter()
	return nil
}

// SetPerson replaces target with edited. target is matched by identity of
// the pointer, so callers must pass a value obtained from this AddressBook.
// Renaming onto another existing person fails with ErrDuplicatePerson.
func (ab *AddressBook) SetPerson(target, edited *person.Person) error {
	i := ab.indexOf(target)
	if i < 0 {
		return shared.ErrPersonMissing
	}
	if !target.IsSamePerson(edited) && ab.HasPerson(edited) {
		return shared.ErrPersonExists
	}
	ab.persons[i] = edited
	ab.refilter()
	return nil
}

// DeletePerson removes target.
func (ab *AddressBook) DeletePerson(target *person.Person) error {
	i := ab.indexOf(target)
	if i < 0 {
		return shared.ErrPersonMissing
	}
	ab.persons = append(ab.persons[:i:i], ab.persons[i+1:]...)
	ab.refilter()
	return nil
}

// Reset replaces every person and keeps the current filter.
func (ab *AddressBook) Reset(persons []*person.Person) {
	ab.persons = nil
	for _, p := range persons {
		if p == nil || ab.HasPerson(p) {
			continue
		}
		ab.persons = append(ab.persons, p)
	}
	ab.refilter()
}

// Clear removes every person.
func (ab *AddressBook) Clear() {
	ab.persons = nil
	ab.refilter()
}

// UpdateFilter replaces the display filter. A nil predicate shows everyone.
func (ab *AddressBook) UpdateFilter(predicate person.Predicate) {
	if predicate == nil {
		predicate = person.ShowAll
	}
	ab.predicate = predicate
	ab.refilter()
}

func (ab *AddressBook) indexOf(target *person.Person) int {
	for i, p := range ab.persons {
		if p == target {
			return i
		}
	}
	return -1
}

func (ab *AddressBook) refilter() {
	ab.filtered = ab.filtered[:0]
	for _, p := range ab.persons {
		if ab.predicate(p) {
			ab.filtered = append(ab.filtered, p)
		}
	}
}
