// Package parser turns a single line of command text into a validated
// command.Command.
package parser

import (
	"sort"
	"strings"

	"github.com/studentbook/studentbook/internal/domain/shared"
)

// Prefix marks the start of an argument, e.g. "sub/".
type Prefix string

// Recognized prefixes.
const (
	PrefixSubject   Prefix = "sub/"
	PrefixAttribute Prefix = "attr/"
	PrefixStart     Prefix = "start/"
	PrefixEnd       Prefix = "end/"
	PrefixDate      Prefix = "date/"
	PrefixName      Prefix = "n/"
	PrefixPhone     Prefix = "p/"
	PrefixEmail     Prefix = "e/"
	PrefixAddress   Prefix = "a/"
	PrefixTag       Prefix = "t/"
	PrefixRemark    Prefix = "r/"
	PrefixLesson    Prefix = "lesson/"
	PrefixStatus    Prefix = "status/"
)

// String returns the prefix text.
func (p Prefix) String() string { return string(p) }

// ══════════════════════════════════════════════════════════════════════════════
// ARGUMENT MULTIMAP
// ══════════════════════════════════════════════════════════════════════════════

// ArgumentMultimap is the result of Tokenize: the preamble plus every value
// given for each recognized prefix, in order of appearance.
type ArgumentMultimap struct {
	preamble string
	values   map[Prefix][]string
}

// Preamble returns the trimmed text before the first recognized prefix.
func (m ArgumentMultimap) Preamble() string { return m.preamble }

// Value returns the last value given for p.
func (m ArgumentMultimap) Value(p Prefix) (string, bool) {
	vs := m.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// AllValues returns every value given for p, in order.
func (m ArgumentMultimap) AllValues(p Prefix) []string {
	vs := m.values[p]
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// Count returns how many times p occurred.
func (m ArgumentMultimap) Count(p Prefix) int { return len(m.values[p]) }

// Counts returns the occurrence count of every prefix that occurred.
func (m ArgumentMultimap) Counts() map[Prefix]int {
	out := make(map[Prefix]int, len(m.values))
	for p, vs := range m.values {
		out[p] = len(vs)
	}
	return out
}

// ArePrefixesPresent reports whether every prefix occurred at least once.
func (m ArgumentMultimap) ArePrefixesPresent(prefixes ...Prefix) bool {
	for _, p := range prefixes {
		if m.Count(p) == 0 {
			return false
		}
	}
	return true
}

// VerifyNoDuplicatePrefixesFor fails with DuplicatePrefix naming every prefix
// among prefixes that occurred more than once.
func (m ArgumentMultimap) VerifyNoDuplicatePrefixesFor(domain string, prefixes ...Prefix) error {
	var dups []string
	for _, p := range prefixes {
		if m.Count(p) > 1 {
			dups = append(dups, p.String())
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return shared.DuplicatePrefix(domain, dups...)
}

// ══════════════════════════════════════════════════════════════════════════════
// TOKENIZER
// ══════════════════════════════════════════════════════════════════════════════

type prefixPosition struct {
	prefix Prefix
	start  int
}

// Tokenize splits args into a preamble and per-prefix values. A prefix is
// recognized only at the start of args or after whitespace. Values run up to
// the next recognized prefix and are not trimmed; text that looks like an
// unrecognized prefix stays part of the preceding value.
func Tokenize(args string, prefixes ...Prefix) ArgumentMultimap {
	positions := findPrefixPositions(args, prefixes)
	sort.SliceStable(positions, func(i, j int) bool { return positions[i].start < positions[j].start })

	m := ArgumentMultimap{values: make(map[Prefix][]string)}
	if len(positions) == 0 {
		m.preamble = strings.TrimSpace(args)
		return m
	}

	m.preamble = strings.TrimSpace(args[:positions[0].start])
	for i, pos := range positions {
		end := len(args)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		valueStart := pos.start + len(pos.prefix)
		m.values[pos.prefix] = append(m.values[pos.prefix], args[valueStart:end])
	}
	return m
}

func findPrefixPositions(args string, prefixes []Prefix) []prefixPosition {
	var out []prefixPosition
	for _, p := range prefixes {
		s := string(p)
		from := 0
		for {
			i := strings.Index(args[from:], s)
			if i < 0 {
				break
			}
			at := from + i
			if at == 0 || isSpace(args[at-1]) {
				out = append(out, prefixPosition{prefix: p, start: at})
			}
			from = at + 1
		}
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
