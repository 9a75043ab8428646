package command

import (
	"fmt"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// WordAdd is the command word.
const WordAdd = "add"

// AddUsage is shown when the command text is malformed.
const AddUsage = WordAdd + ": Adds a person to the address book.\n" +
	"Parameters: n/NAME p/PHONE e/EMAIL a/ADDRESS [t/TAG]...\n" +
	"Example: " + WordAdd + " n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2, #02-25 t/friends"

// MessageAddSuccess reports the added person.
const MessageAddSuccess = "New person added: %s"

// AddCommand appends a new person.
type AddCommand struct {
	Person *person.Person
}

// Word implements Command.
func (c *AddCommand) Word() string { return WordAdd }

// Execute implements Command.
func (c *AddCommand) Execute(m Model) (Result, error) {
	if m.HasPerson(c.Person) {
		return Result{}, shared.ErrPersonExists
	}
	if err := m.AddPerson(c.Person); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageAddSuccess, c.Person), Mutating: true}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// EDIT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// WordEdit is the command word.
const WordEdit = "edit"

// EditUsage is shown when the command text is malformed.
const EditUsage = WordEdit + ": Edits the details of the person identified by the index number. " +
	"Existing values will be overwritten by the input values.\n" +
	"Parameters: INDEX (must be a positive integer) [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]...\n" +
	"Example: " + WordEdit + " 1 p/91234567 e/johndoe@example.com"

// Edit messages.
const (
	MessageEditSuccess   = "Edited Person: %s"
	MessageNothingToEdit = "At least one field to edit must be provided."
)

// EditDescriptor holds the fields to change. Nil means unchanged; a non-nil
// empty Tags clears every tag.
type EditDescriptor struct {
	Name    *person.Name
	Phone   *person.Phone
	Email   *person.Email
	Address *person.Address
	Tags    *[]person.Tag
}

// IsAnyFieldEdited reports whether at least one field is set.
func (d EditDescriptor) IsAnyFieldEdited() bool {
	return d.Name != nil || d.Phone != nil || d.Email != nil || d.Address != nil || d.Tags != nil
}

// apply builds the edited person. Remark, attributes, lessons and grades are
// carried over.
func (d EditDescriptor) apply(p *person.Person) *person.Person {
	f := p.Fields()
	if d.Name != nil {
		f.Name = *d.Name
	}
	if d.Phone != nil {
		f.Phone = *d.Phone
	}
	if d.Email != nil {
		f.Email = *d.Email
	}
	if d.Address != nil {
		f.Address = *d.Address
	}
	if d.Tags != nil {
		f.Tags = *d.Tags
	}
	return person.FromFields(f)
}

// EditCommand edits identity fields and tags of one person.
type EditCommand struct {
	Index      shared.Index
	Descriptor EditDescriptor
}

// Word implements Command.
func (c *EditCommand) Word() string { return WordEdit }

// Execute implements Command.
func (c *EditCommand) Execute(m Model) (Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	edited := c.Descriptor.apply(target)
	if !target.IsSamePerson(edited) && m.HasPerson(edited) {
		return Result{}, shared.ErrPersonExists
	}
	if err := replace(m, target, edited); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageEditSuccess, edited), Mutating: true}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// WordDelete is the command word.
const WordDelete = "delete"

// DeleteUsage is shown when the command text is malformed.
const DeleteUsage = WordDelete + ": Deletes the person identified by the index number used in the displayed person list.\n" +
	"Parameters: INDEX (must be a positive integer)\n" +
	"Example: " + WordDelete + " 1"

// MessageDeleteSuccess reports the deleted person.
const MessageDeleteSuccess = "Deleted Person: %s"

// DeleteCommand removes one person.
type DeleteCommand struct {
	Index shared.Index
}

// Word implements Command.
func (c *DeleteCommand) Word() string { return WordDelete }

// Execute implements Command.
func (c *DeleteCommand) Execute(m Model) (Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := m.DeletePerson(target); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageDeleteSuccess, target), Mutating: true}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// REMARK COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// WordRemark is the command word.
const WordRemark = "remark"

// RemarkUsage is shown when the command text is malformed.
const RemarkUsage = WordRemark + ": Edits the remark of the person identified by the index number. " +
	"Existing remark will be overwritten by the input.\n" +
	"Parameters: INDEX (must be a positive integer) r/[REMARK]\n" +
	"Example: " + WordRemark + " 1 r/Likes to swim."

// Remark messages.
const (
	MessageAddRemarkSuccess    = "Added remark to Person: %s"
	MessageDeleteRemarkSuccess = "Removed remark from Person: %s"
)

// RemarkCommand replaces the remark of one person. An empty remark clears it.
type RemarkCommand struct {
	Index  shared.Index
	Remark person.Remark
}

// Word implements Command.
func (c *RemarkCommand) Word() string { return WordRemark }

// Execute implements Command.
func (c *RemarkCommand) Execute(m Model) (Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	edited := target.WithRemark(c.Remark)
	if err := replace(m, target, edited); err != nil {
		return Result{}, err
	}
	msg := MessageAddRemarkSuccess
	if c.Remark == "" {
		msg = MessageDeleteRemarkSuccess
	}
	return Result{Feedback: fmt.Sprintf(msg, edited), Mutating: true}, nil
}
