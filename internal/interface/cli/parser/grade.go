package parser

import (
	"strings"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// Grade segment messages.
const (
	MessageAssessmentMissing = "Assessment is missing. Use sub/SUBJECT/ASSESSMENT[/SCORE]"
	MessageTooManyParts      = "Too many parts. Use sub/SUBJECT/ASSESSMENT[/SCORE]"
	MessageSubjectEmpty      = "Subject cannot be empty."
	MessageAssessmentEmpty   = "Assessment cannot be empty."
	MessageScoreEmpty        = "Score cannot be empty."
)

// orderedMap keeps the position of a key's first insertion while letting
// later insertions replace its value.
type orderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{values: make(map[K]V)}
}

func (o *orderedMap[K, V]) Put(k K, v V) {
	if _, ok := o.values[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v
}

func (o *orderedMap[K, V]) Len() int { return len(o.keys) }

func (o *orderedMap[K, V]) Keys() []K {
	out := make([]K, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *orderedMap[K, V]) Values() []V {
	out := make([]V, len(o.keys))
	for i, k := range o.keys {
		out[i] = o.values[k]
	}
	return out
}

// ParseGrade parses `INDEX sub/SUBJECT/ASSESSMENT[/SCORE]...`. A segment with
// a score adds or overwrites a grade; one without deletes it. Repeated keys
// collapse: the last add wins and deletes are a set.
func ParseGrade(args string) (command.Command, error) {
	m := Tokenize(args, PrefixSubject)

	adds := newOrderedMap[person.GradeKey, person.Grade]()
	deletes := newOrderedMap[person.GradeKey, struct{}]()
	for _, segment := range m.AllValues(PrefixSubject) {
		if err := parseGradeSegment(segment, adds, deletes); err != nil {
			return nil, err
		}
	}
	if adds.Len() == 0 && deletes.Len() == 0 {
		return nil, shared.InvalidCommandFormat(command.WordGrade, command.GradeUsage)
	}

	preamble := m.Preamble()
	if err := RequireSingleIndex(command.WordGrade, preamble, command.GradeUsage); err != nil {
		return nil, err
	}
	if strings.HasPrefix(preamble, PrefixSubject.String()) {
		return nil, shared.InvalidCommandFormat(command.WordGrade, command.GradeUsage)
	}
	idx, err := ParseIndex(preamble)
	if err != nil {
		return nil, err
	}

	return &command.GradeCommand{
		Index:  idx,
		Add:    adds.Values(),
		Delete: deletes.Keys(),
	}, nil
}

func parseGradeSegment(
	segment string,
	adds *orderedMap[person.GradeKey, person.Grade],
	deletes *orderedMap[person.GradeKey, struct{}],
) error {
	parts := strings.Split(segment, "/")
	switch {
	case len(parts) < 2:
		return shared.NewDomainError(command.WordGrade, "ParseSegment", shared.ErrInvalidCommandFormat, MessageAssessmentMissing)
	case len(parts) > 3:
		return shared.NewDomainError(command.WordGrade, "ParseSegment", shared.ErrInvalidCommandFormat, MessageTooManyParts)
	}

	subject := strings.TrimSpace(parts[0])
	if subject == "" {
		return shared.InvalidFieldValue(command.WordGrade, "Subject", MessageSubjectEmpty)
	}
	if !person.IsValidSubject(subject) {
		return shared.InvalidFieldValue(command.WordGrade, "Subject", person.SubjectConstraints)
	}
	assessment := strings.TrimSpace(parts[1])
	if assessment == "" {
		return shared.InvalidFieldValue(command.WordGrade, "Assessment", MessageAssessmentEmpty)
	}
	if !person.IsValidAssessment(assessment) {
		return shared.InvalidFieldValue(command.WordGrade, "Assessment", person.AssessmentConstraints)
	}
	key := person.GradeKey{Subject: subject, Assessment: assessment}

	if len(parts) == 2 {
		deletes.Put(key, struct{}{})
		return nil
	}

	score := strings.TrimSpace(parts[2])
	if score == "" {
		return shared.InvalidFieldValue(command.WordGrade, "Score", MessageScoreEmpty)
	}
	g, err := person.NewGrade(subject, assessment, score)
	if err != nil {
		return err
	}
	adds.Put(key, g)
	return nil
}
