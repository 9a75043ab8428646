package parser

import (
	"errors"
	"strings"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/pkg/timeutil"
)

// Schedule field messages, in validation order.
const (
	MessageInvalidStartTimeFormat = "Start time must be in HH:MM format."
	MessageInvalidStartTimeValue  = "Start time must be a valid time between 00:00 and 23:59."
	MessageInvalidEndTimeFormat   = "End time must be in HH:MM format."
	MessageInvalidEndTimeValue    = "End time must be a valid time between 00:00 and 23:59."
	MessageInvalidDateFormat      = "Date must be in YYYY-MM-DD format."
	MessageInvalidDateValue       = "Date must be a valid calendar date."
	MessageEndTimeBeforeStart     = "End time must be after start time."
	MessageInvalidStatus          = "Status must be either present or absent."
)

// ParseSchedule parses `INDEX start/HH:MM end/HH:MM date/YYYY-MM-DD sub/SUBJECT`.
// Every prefix is required exactly once. Fields are validated in a fixed
// order and the first failure is returned.
func ParseSchedule(args string, allowOverlap bool) (command.Command, error) {
	m := Tokenize(args, PrefixStart, PrefixEnd, PrefixDate, PrefixSubject)

	if !m.ArePrefixesPresent(PrefixStart, PrefixEnd, PrefixDate, PrefixSubject) || m.Preamble() == "" {
		return nil, shared.InvalidCommandFormat(command.WordSchedule, command.ScheduleUsage)
	}
	if err := m.VerifyNoDuplicatePrefixesFor(command.WordSchedule, PrefixStart, PrefixEnd, PrefixDate, PrefixSubject); err != nil {
		return nil, err
	}
	idx, err := parseIndexAsFormat(command.WordSchedule, m.Preamble(), command.ScheduleUsage)
	if err != nil {
		return nil, err
	}

	startRaw, _ := m.Value(PrefixStart)
	start, err := parseClockField("Start", startRaw, MessageInvalidStartTimeFormat, MessageInvalidStartTimeValue)
	if err != nil {
		return nil, err
	}
	endRaw, _ := m.Value(PrefixEnd)
	end, err := parseClockField("End", endRaw, MessageInvalidEndTimeFormat, MessageInvalidEndTimeValue)
	if err != nil {
		return nil, err
	}
	dateRaw, _ := m.Value(PrefixDate)
	date, err := timeutil.ParseDate(strings.TrimSpace(dateRaw))
	switch {
	case errors.Is(err, timeutil.ErrDateFormat):
		return nil, shared.InvalidFieldValue(command.WordSchedule, "Date", MessageInvalidDateFormat)
	case err != nil:
		return nil, shared.InvalidFieldValue(command.WordSchedule, "Date", MessageInvalidDateValue)
	}
	if !end.After(start) {
		return nil, shared.NewDomainError(command.WordSchedule, "Parse", shared.ErrEndBeforeStart, MessageEndTimeBeforeStart)
	}

	subject := strings.TrimSpace(mustValue(m, PrefixSubject))
	if !person.IsValidSubject(subject) {
		return nil, shared.InvalidFieldValue(command.WordSchedule, "Subject", person.SubjectConstraints)
	}

	lesson, err := person.NewLesson(start, end, date, subject)
	if err != nil {
		return nil, shared.InvalidCommandFormat(command.WordSchedule, command.ScheduleUsage)
	}
	return &command.ScheduleCommand{Index: idx, Lesson: lesson, AllowOverlap: allowOverlap}, nil
}

func parseClockField(field, raw, formatMsg, valueMsg string) (timeutil.Clock, error) {
	c, err := timeutil.ParseClock(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, timeutil.ErrClockFormat):
		return timeutil.Clock{}, shared.InvalidFieldValue(command.WordSchedule, field+"Time", formatMsg)
	case err != nil:
		return timeutil.Clock{}, shared.InvalidFieldValue(command.WordSchedule, field+"Time", valueMsg)
	}
	return c, nil
}

func mustValue(m ArgumentMultimap, p Prefix) string {
	v, _ := m.Value(p)
	return v
}

// ParseUnschedule parses `INDEX lesson/LESSON_INDEX`.
func ParseUnschedule(args string) (command.Command, error) {
	m := Tokenize(args, PrefixLesson)
	if err := RequireSingleIndex(command.WordUnschedule, m.Preamble(), command.UnscheduleUsage); err != nil {
		return nil, err
	}
	if !m.ArePrefixesPresent(PrefixLesson) {
		return nil, shared.InvalidCommandFormat(command.WordUnschedule, command.UnscheduleUsage)
	}
	if err := m.VerifyNoDuplicatePrefixesFor(command.WordUnschedule, PrefixLesson); err != nil {
		return nil, err
	}
	idx, err := ParseIndex(m.Preamble())
	if err != nil {
		return nil, err
	}
	lesson, err := parseLessonIndex(command.WordUnschedule, mustValue(m, PrefixLesson))
	if err != nil {
		return nil, err
	}
	return &command.UnscheduleCommand{Index: idx, Lesson: lesson}, nil
}

// ParseAttend parses `INDEX lesson/LESSON_INDEX [status/present|absent]`.
// Status defaults to present.
func ParseAttend(args string) (command.Command, error) {
	m := Tokenize(args, PrefixLesson, PrefixStatus)
	if err := RequireSingleIndex(command.WordAttend, m.Preamble(), command.AttendUsage); err != nil {
		return nil, err
	}
	if !m.ArePrefixesPresent(PrefixLesson) {
		return nil, shared.InvalidCommandFormat(command.WordAttend, command.AttendUsage)
	}
	if err := m.VerifyNoDuplicatePrefixesFor(command.WordAttend, PrefixLesson, PrefixStatus); err != nil {
		return nil, err
	}
	idx, err := ParseIndex(m.Preamble())
	if err != nil {
		return nil, err
	}
	lesson, err := parseLessonIndex(command.WordAttend, mustValue(m, PrefixLesson))
	if err != nil {
		return nil, err
	}

	present := true
	if raw, ok := m.Value(PrefixStatus); ok {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "present":
		case "absent":
			present = false
		default:
			return nil, shared.InvalidFieldValue(command.WordAttend, "Status", MessageInvalidStatus)
		}
	}
	return &command.AttendCommand{Index: idx, Lesson: lesson, Present: present}, nil
}

func parseLessonIndex(domain, raw string) (shared.Index, error) {
	idx, err := ParseIndex(raw)
	if err != nil {
		return 0, shared.NewDomainError(domain, "ParseLessonIndex", shared.ErrInvalidIndex, shared.MessageInvalidLessonIndex)
	}
	return idx, nil
}
