package parser

import (
	"strings"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// ParseAdd parses `n/NAME p/PHONE e/EMAIL a/ADDRESS [t/TAG]...`.
func ParseAdd(args string) (command.Command, error) {
	m := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag)
	if !m.ArePrefixesPresent(PrefixName, PrefixPhone, PrefixEmail, PrefixAddress) || m.Preamble() != "" {
		return nil, shared.InvalidCommandFormat(command.WordAdd, command.AddUsage)
	}
	if err := m.VerifyNoDuplicatePrefixesFor(command.WordAdd, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress); err != nil {
		return nil, err
	}

	name, err := person.NewName(mustValue(m, PrefixName))
	if err != nil {
		return nil, err
	}
	phone, err := person.NewPhone(mustValue(m, PrefixPhone))
	if err != nil {
		return nil, err
	}
	email, err := person.NewEmail(mustValue(m, PrefixEmail))
	if err != nil {
		return nil, err
	}
	address, err := person.NewAddress(mustValue(m, PrefixAddress))
	if err != nil {
		return nil, err
	}
	tags, err := parseTags(m.AllValues(PrefixTag))
	if err != nil {
		return nil, err
	}
	return &command.AddCommand{Person: person.New(name, phone, email, address, tags...)}, nil
}

// ParseEdit parses `INDEX [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]...`.
// A single empty t/ clears the tags.
func ParseEdit(args string) (command.Command, error) {
	m := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixTag)
	idx, err := parseIndexAsFormat(command.WordEdit, m.Preamble(), command.EditUsage)
	if err != nil {
		return nil, err
	}
	if err := m.VerifyNoDuplicatePrefixesFor(command.WordEdit, PrefixName, PrefixPhone, PrefixEmail, PrefixAddress); err != nil {
		return nil, err
	}

	var d command.EditDescriptor
	if raw, ok := m.Value(PrefixName); ok {
		v, err := person.NewName(raw)
		if err != nil {
			return nil, err
		}
		d.Name = &v
	}
	if raw, ok := m.Value(PrefixPhone); ok {
		v, err := person.NewPhone(raw)
		if err != nil {
			return nil, err
		}
		d.Phone = &v
	}
	if raw, ok := m.Value(PrefixEmail); ok {
		v, err := person.NewEmail(raw)
		if err != nil {
			return nil, err
		}
		d.Email = &v
	}
	if raw, ok := m.Value(PrefixAddress); ok {
		v, err := person.NewAddress(raw)
		if err != nil {
			return nil, err
		}
		d.Address = &v
	}
	if raws := m.AllValues(PrefixTag); len(raws) > 0 {
		var tags []person.Tag
		if !(len(raws) == 1 && strings.TrimSpace(raws[0]) == "") {
			if tags, err = parseTags(raws); err != nil {
				return nil, err
			}
		}
		if tags == nil {
			tags = []person.Tag{}
		}
		d.Tags = &tags
	}

	if !d.IsAnyFieldEdited() {
		return nil, shared.NewDomainError(command.WordEdit, "Parse", shared.ErrInvalidCommandFormat, command.MessageNothingToEdit)
	}
	return &command.EditCommand{Index: idx, Descriptor: d}, nil
}

func parseTags(raws []string) ([]person.Tag, error) {
	tags := make([]person.Tag, 0, len(raws))
	for _, raw := range raws {
		t, err := person.NewTag(raw)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// ParseDelete parses `INDEX`.
func ParseDelete(args string) (command.Command, error) {
	idx, err := parseIndexAsFormat(command.WordDelete, args, command.DeleteUsage)
	if err != nil {
		return nil, err
	}
	return &command.DeleteCommand{Index: idx}, nil
}

// ParseRemark parses `INDEX r/[REMARK]`.
func ParseRemark(args string) (command.Command, error) {
	m := Tokenize(args, PrefixRemark)
	if !m.ArePrefixesPresent(PrefixRemark) {
		return nil, shared.InvalidCommandFormat(command.WordRemark, command.RemarkUsage)
	}
	idx, err := parseIndexAsFormat(command.WordRemark, m.Preamble(), command.RemarkUsage)
	if err != nil {
		return nil, err
	}
	if err := m.VerifyNoDuplicatePrefixesFor(command.WordRemark, PrefixRemark); err != nil {
		return nil, err
	}
	return &command.RemarkCommand{Index: idx, Remark: person.NewRemark(mustValue(m, PrefixRemark))}, nil
}

// ParseSearch parses `KEYWORD [MORE_KEYWORDS]...`.
func ParseSearch(args string) (command.Command, error) {
	keywords := strings.Fields(args)
	if len(keywords) == 0 {
		return nil, shared.InvalidCommandFormat(command.WordSearch, command.SearchUsage)
	}
	return &command.SearchCommand{Keywords: keywords}, nil
}
