package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/internal/interface/cli/parser"
)

// RunLines executes one command per input line, writing feedback to out and
// errors to errOut. It returns when input ends, an exit command runs or ctx
// is cancelled. Command failures never stop it.
func RunLines(ctx context.Context, exec Executor, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if isBlank(line) {
			continue
		}

		res, err := exec.Execute(ctx, line)
		if res.Feedback != "" {
			fmt.Fprintln(out, res.Feedback)
		}
		if err != nil {
			fmt.Fprintln(errOut, shared.UserMessage(err))
			continue
		}
		if listsPersons(line) {
			WritePersons(out, exec.FilteredPersons())
		}
		if res.Exit {
			return nil
		}
	}
	return scanner.Err()
}

// WritePersons prints persons as a numbered list.
func WritePersons(w io.Writer, persons []*person.Person) {
	for i, p := range persons {
		fmt.Fprintf(w, "%d. %s\n", i+1, p)
	}
}

func listsPersons(line string) bool {
	word, _ := parser.SplitCommandWord(line)
	switch word {
	case command.WordList, command.WordSearch, command.WordSearchSlash:
		return true
	}
	return false
}

func isBlank(line string) bool {
	word, _ := parser.SplitCommandWord(line)
	return word == ""
}
