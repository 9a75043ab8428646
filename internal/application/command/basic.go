package command

import (
	"fmt"
	"strings"

	"github.com/studentbook/studentbook/internal/domain/person"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST / SEARCH
// ══════════════════════════════════════════════════════════════════════════════

// Command words without index arguments.
const (
	WordList        = "list"
	WordSearch      = "search"
	WordSearchSlash = "/search"
	WordClear       = "clear"
	WordHelp        = "help"
	WordExit        = "exit"
)

// SearchUsage is shown when the command text is malformed.
const SearchUsage = WordSearch + ": Finds all persons whose details contain any of " +
	"the specified keywords (case-insensitive) and displays them as a list with index numbers.\n" +
	"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
	"Example: " + WordSearch + " alice math"

// Result messages of the basic commands.
const (
	MessageListSuccess   = "Listed all persons"
	MessagePersonsListed = "%d persons listed!"
	MessageClearSuccess  = "Address book has been cleared!"
	MessageExit          = "Exiting Address Book as requested ..."
)

// ListCommand shows every person.
type ListCommand struct{}

// Word implements Command.
func (ListCommand) Word() string { return WordList }

// Execute implements Command.
func (ListCommand) Execute(m Model) (Result, error) {
	m.UpdateFilter(person.ShowAll)
	return Result{Feedback: MessageListSuccess}, nil
}

// SearchCommand narrows the displayed persons to those matching any keyword.
type SearchCommand struct {
	Keywords []string
}

// Word implements Command.
func (c *SearchCommand) Word() string { return WordSearch }

// Execute implements Command.
func (c *SearchCommand) Execute(m Model) (Result, error) {
	m.UpdateFilter(person.ContainsKeywords(c.Keywords...))
	return Result{Feedback: fmt.Sprintf(MessagePersonsListed, len(m.FilteredPersons()))}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CLEAR / HELP / EXIT
// ══════════════════════════════════════════════════════════════════════════════

// ClearCommand removes every person.
type ClearCommand struct{}

// Word implements Command.
func (ClearCommand) Word() string { return WordClear }

// Execute implements Command.
func (ClearCommand) Execute(m Model) (Result, error) {
	m.Clear()
	m.UpdateFilter(person.ShowAll)
	return Result{Feedback: MessageClearSuccess, Mutating: true}, nil
}

// HelpCommand lists the usage of every command.
type HelpCommand struct{}

// Word implements Command.
func (HelpCommand) Word() string { return WordHelp }

// Execute implements Command.
func (HelpCommand) Execute(Model) (Result, error) {
	return Result{Feedback: HelpText(), ShowHelp: true}, nil
}

// HelpText joins the usage of every command.
func HelpText() string {
	return strings.Join([]string{
		AddUsage,
		EditUsage,
		DeleteUsage,
		RemarkUsage,
		GradeUsage,
		TagUsage,
		DeleteAttributeUsage,
		ScheduleUsage,
		UnscheduleUsage,
		AttendUsage,
		SearchUsage,
		WordList + ": Lists all persons.",
		WordClear + ": Deletes all persons.",
		WordExit + ": Exits the program.",
	}, "\n\n")
}

// ExitCommand ends the session.
type ExitCommand struct{}

// Word implements Command.
func (ExitCommand) Word() string { return WordExit }

// Execute implements Command.
func (ExitCommand) Execute(Model) (Result, error) {
	return Result{Feedback: MessageExit, Exit: true}, nil
}
