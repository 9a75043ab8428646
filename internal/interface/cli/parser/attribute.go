package parser

import (
	"strings"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// ParseTag parses `INDEX attr/KEY=VALUE[,VALUE2]...`. A later segment for the
// same key replaces the values of an earlier one.
func ParseTag(args string) (command.Command, error) {
	m := Tokenize(args, PrefixAttribute)

	attrs := newOrderedMap[string, person.Attribute]()
	for _, segment := range m.AllValues(PrefixAttribute) {
		attr, err := parseAttribute(segment)
		if err != nil {
			return nil, err
		}
		attrs.Put(attr.Key(), attr)
	}
	if attrs.Len() == 0 {
		return nil, shared.InvalidCommandFormat(command.WordTag, command.TagUsage)
	}

	preamble := m.Preamble()
	if err := RequireSingleIndex(command.WordTag, preamble, command.TagUsage); err != nil {
		return nil, err
	}
	if strings.HasPrefix(preamble, PrefixAttribute.String()) {
		return nil, shared.InvalidCommandFormat(command.WordTag, command.TagUsage)
	}
	idx, err := ParseIndex(preamble)
	if err != nil {
		return nil, err
	}
	return &command.TagCommand{Index: idx, Attrs: attrs.Values()}, nil
}

func parseAttribute(segment string) (person.Attribute, error) {
	segment = strings.TrimSpace(segment)
	key, rest, found := strings.Cut(segment, "=")
	if !found {
		return person.Attribute{}, shared.NewDomainError(command.WordTag, "ParseSegment",
			shared.ErrInvalidCommandFormat, person.AttributeFormatConstraints)
	}
	return person.NewAttribute(key, strings.Split(rest, ",")...)
}

// ParseDeleteAttribute parses `INDEX attr/KEY [attr/KEY2]...`. Keys are
// lower-cased and repeated keys collapse.
func ParseDeleteAttribute(args string) (command.Command, error) {
	m := Tokenize(args, PrefixAttribute)

	preamble := m.Preamble()
	if err := RequireSingleIndex(command.WordDeleteAttribute, preamble, command.DeleteAttributeUsage); err != nil {
		return nil, err
	}

	keys := newOrderedMap[string, struct{}]()
	for _, raw := range m.AllValues(PrefixAttribute) {
		if k := strings.ToLower(strings.TrimSpace(raw)); k != "" {
			keys.Put(k, struct{}{})
		}
	}
	if keys.Len() == 0 {
		return nil, shared.InvalidCommandFormat(command.WordDeleteAttribute, command.DeleteAttributeUsage)
	}

	idx, err := ParseIndex(preamble)
	if err != nil {
		return nil, err
	}
	return &command.DeleteAttributeCommand{Index: idx, Keys: keys.Keys()}, nil
}
