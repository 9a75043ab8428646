// Package command contains the write operations issued from the command line.
// A command is built by a parser, fully validated, and then executed against
// a Model. Execution either succeeds with a Result or fails with a
// *shared.DomainError and leaves the Model unchanged.
package command

import (
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PORTS
// ══════════════════════════════════════════════════════════════════════════════

// Model is the list of persons commands read from and write to.
// addressbook.AddressBook is the production implementation.
type Model interface {
	// FilteredPersons returns the persons currently displayed, in order.
	FilteredPersons() []*person.Person

	// SetPerson replaces target, which must come from FilteredPersons.
	SetPerson(target, edited *person.Person) error

	// AddPerson appends a new person.
	AddPerson(p *person.Person) error

	// DeletePerson removes target.
	DeletePerson(target *person.Person) error

	// HasPerson reports whether an equivalent person exists.
	HasPerson(p *person.Person) bool

	// UpdateFilter replaces the display filter.
	UpdateFilter(predicate person.Predicate)

	// Clear removes every person.
	Clear()
}

// Command is a parsed, validated intent.
type Command interface {
	// Word returns the command word that produced this command.
	Word() string

	// Execute applies the command to m.
	Execute(m Model) (Result, error)
}

// Result is the outcome of a successful command.
type Result struct {
	// Feedback is shown to the user.
	Feedback string

	// ShowHelp asks the shell to display the help text.
	ShowHelp bool

	// Exit asks the shell to terminate.
	Exit bool

	// Mutating reports whether the command may have changed stored data.
	Mutating bool
}

// personAt returns the displayed person at idx.
func personAt(m Model, idx shared.Index) (*person.Person, error) {
	list := m.FilteredPersons()
	if !idx.InRange(len(list)) {
		return nil, shared.ErrIndexOutOfRange
	}
	return list[idx.ZeroBased()], nil
}

// replace swaps target for edited and resets the display filter.
func replace(m Model, target, edited *person.Person) error {
	if err := m.SetPerson(target, edited); err != nil {
		return err
	}
	m.UpdateFilter(person.ShowAll)
	return nil
}
