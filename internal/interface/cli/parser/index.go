package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/studentbook/studentbook/internal/domain/shared"
)

var unsignedInteger = regexp.MustCompile(`^\d+$`)

// ParseIndex parses a 1-based positive integer into an Index. Signs, blanks
// and values that overflow int are rejected.
func ParseIndex(text string) (shared.Index, error) {
	text = strings.TrimSpace(text)
	if !unsignedInteger.MatchString(text) {
		return 0, shared.ErrIndexNotPositive
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, shared.ErrIndexNotPositive
	}
	return shared.IndexFromOneBased(n)
}

// RequireSingleIndex fails with InvalidCommandFormat unless preamble is a
// single non-empty token.
func RequireSingleIndex(domain, preamble, usage string) error {
	preamble = strings.TrimSpace(preamble)
	if preamble == "" || strings.ContainsAny(preamble, " \t\r\n") {
		return shared.InvalidCommandFormat(domain, usage)
	}
	return nil
}

// parseIndexAsFormat parses preamble as an index and reports any failure as
// InvalidCommandFormat, for commands whose usage text is the better hint.
func parseIndexAsFormat(domain, preamble, usage string) (shared.Index, error) {
	idx, err := ParseIndex(preamble)
	if err != nil {
		return 0, shared.InvalidCommandFormat(domain, usage)
	}
	return idx, nil
}
