// Package shared contains common domain types and errors that are used across
// all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Base error kinds that can be used for error checking with errors.Is().
var (
	// Parse errors
	ErrInvalidCommandFormat = errors.New("invalid command format")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrInvalidIndex         = errors.New("invalid index")
	ErrInvalidFieldValue    = errors.New("invalid field value")
	ErrDuplicatePrefix      = errors.New("duplicate prefix")
	ErrEndBeforeStart       = errors.New("end time not after start time")

	// Execution errors
	ErrInvalidDisplayedIndex = errors.New("index out of displayed range")
	ErrInvalidLessonIndex    = errors.New("lesson index out of range")
	ErrGradeNotFound         = errors.New("grade not found")
	ErrLessonOverlap         = errors.New("lesson overlap")
	ErrDuplicatePerson       = errors.New("duplicate person")
	ErrPersonNotFound        = errors.New("person not found")

	// Infrastructure errors
	ErrStorage = errors.New("storage error")
)

// User-facing message texts. These are matched verbatim by callers and tests.
const (
	MessageInvalidCommandFormat  = "Invalid command format! \n%s"
	MessageUnknownCommand        = "Unknown command"
	MessageInvalidIndex          = "The person index provided is invalid"
	MessageInvalidDisplayedIndex = "The person index provided is invalid"
	MessageInvalidLessonIndex    = "The lesson index provided is invalid"
	MessageDuplicatePrefix       = "Multiple values specified for the following single-valued field(s): %s"
	MessageGradeNotFound         = "Grade not found: %s/%s"
	MessageDuplicatePerson       = "This person already exists in the address book"
	MessageLessonOverlap         = "This lesson overlaps with an existing lesson: %s"
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "parser", "grade", "schedule"
	Op      string // Operation that failed, e.g., "Parse", "Execute"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message shown to the user
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// InvalidCommandFormat builds the structural parse failure carrying the usage text.
func InvalidCommandFormat(domain, usage string) *DomainError {
	return NewDomainError(domain, "Parse", ErrInvalidCommandFormat, fmt.Sprintf(MessageInvalidCommandFormat, usage))
}

// InvalidFieldValue builds a scalar validation failure with the violated rule's message.
func InvalidFieldValue(domain, field, rule string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      "Validate" + field,
		Kind:    ErrInvalidFieldValue,
		Message: rule,
	}
}

// DuplicatePrefix builds the failure for a single-valued prefix given more than once.
func DuplicatePrefix(domain string, prefixes ...string) *DomainError {
	return NewDomainError(domain, "Parse", ErrDuplicatePrefix,
		fmt.Sprintf(MessageDuplicatePrefix, strings.Join(prefixes, " ")))
}

// GradeNotFound builds the strict-deletion failure for a missing grade key.
func GradeNotFound(subject, assessment string) *DomainError {
	return NewDomainError("grade", "Execute", ErrGradeNotFound, fmt.Sprintf(MessageGradeNotFound, subject, assessment))
}

// LessonOverlap builds the scheduling conflict failure naming the existing lesson.
func LessonOverlap(existing string) *DomainError {
	return NewDomainError("schedule", "Execute", ErrLessonOverlap, fmt.Sprintf(MessageLessonOverlap, existing))
}

// Predefined failures without parameters.
var (
	ErrIndexNotPositive = NewDomainError("parser", "ParseIndex", ErrInvalidIndex, MessageInvalidIndex)
	ErrIndexOutOfRange  = NewDomainError("model", "Lookup", ErrInvalidDisplayedIndex, MessageInvalidDisplayedIndex)
	ErrLessonOutOfRange = NewDomainError("lesson", "Lookup", ErrInvalidLessonIndex, MessageInvalidLessonIndex)
	ErrCommandUnknown   = NewDomainError("parser", "Dispatch", ErrUnknownCommand, MessageUnknownCommand)
	ErrPersonExists     = NewDomainError("addressbook", "Add", ErrDuplicatePerson, MessageDuplicatePerson)
	ErrPersonMissing    = NewDomainError("addressbook", "Set", ErrPersonNotFound, "The person is not in the address book")
)

// UserMessage returns the human-readable text for err. Domain errors yield
// their Message verbatim; anything else falls back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// IsUserError reports whether err is a recoverable input or command error
// rather than an infrastructure failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidCommandFormat) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidIndex) ||
		errors.Is(err, ErrInvalidFieldValue) ||
		errors.Is(err, ErrDuplicatePrefix) ||
		errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrInvalidDisplayedIndex) ||
		errors.Is(err, ErrInvalidLessonIndex) ||
		errors.Is(err, ErrGradeNotFound) ||
		errors.Is(err, ErrLessonOverlap) ||
		errors.Is(err, ErrDuplicatePerson) ||
		errors.Is(err, ErrPersonNotFound)
}

// IsParseError reports whether err was raised while parsing command text.
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidCommandFormat) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidIndex) ||
		errors.Is(err, ErrInvalidFieldValue) ||
		errors.Is(err, ErrDuplicatePrefix) ||
		errors.Is(err, ErrEndBeforeStart)
}
