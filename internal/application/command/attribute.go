package command

import (
	"fmt"
	"strings"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// TAG COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// WordTag is the command word.
const WordTag = "tag"

// TagUsage is shown when the command text is malformed.
const TagUsage = WordTag + ": Adds or replaces attributes of the person identified by the index number.\n" +
	"Parameters: INDEX (must be a positive integer) attr/KEY=VALUE[,VALUE2]... [attr/KEY2=VALUE]...\n" +
	"Example: " + WordTag + " 1 attr/subject=math,physics attr/level=sec3"

// MessageTagSuccess reports the person's name and the resulting attributes.
const MessageTagSuccess = "Attributes updated for %s: %s"

// TagCommand merges attributes into one person. Attrs has at most one entry
// per key.
type TagCommand struct {
	Index shared.Index
	Attrs []person.Attribute
}

// Word implements Command.
func (c *TagCommand) Word() string { return WordTag }

// Execute merges the attributes, overwriting values of existing keys.
func (c *TagCommand) Execute(m Model) (Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	edited := target.WithAttributes(target.Attributes().Merge(c.Attrs...))
	if err := replace(m, target, edited); err != nil {
		return Result{}, err
	}
	return Result{
		Feedback: fmt.Sprintf(MessageTagSuccess, edited.Name(), edited.Attributes()),
		Mutating: true,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE ATTRIBUTE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// WordDeleteAttribute is the command word.
const WordDeleteAttribute = "deleteattr"

// DeleteAttributeUsage is shown when the command text is malformed.
const DeleteAttributeUsage = WordDeleteAttribute + ": Deletes attributes of the person identified by the index number.\n" +
	"Parameters: INDEX (must be a positive integer) attr/KEY [attr/KEY2]...\n" +
	"Example: " + WordDeleteAttribute + " 1 attr/subject attr/level"

// MessageDeleteAttributeSuccess reports the requested keys and the person's name.
const MessageDeleteAttributeSuccess = "Deleted attributes [%s] from %s"

// DeleteAttributeCommand removes attributes by key. Keys absent from the
// person are ignored.
type DeleteAttributeCommand struct {
	Index shared.Index
	Keys  []string
}

// Word implements Command.
func (c *DeleteAttributeCommand) Word() string { return WordDeleteAttribute }

// Execute removes the keys that exist and succeeds regardless.
func (c *DeleteAttributeCommand) Execute(m Model) (Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	edited := target.WithAttributes(target.Attributes().Remove(c.Keys...))
	if err := replace(m, target, edited); err != nil {
		return Result{}, err
	}
	return Result{
		Feedback: fmt.Sprintf(MessageDeleteAttributeSuccess, strings.Join(c.Keys, ", "), edited.Name()),
		Mutating: true,
	}, nil
}
