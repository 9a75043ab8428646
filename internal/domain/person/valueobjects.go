// Package person contains the domain model of a student record: identity
// fields, tags, attributes, lessons and grades. Every type here is immutable;
// mutators return new values and leave the receiver untouched.
package person

import (
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/studentbook/studentbook/internal/domain/shared"
)

// validate is shared by all value objects; validator.Validate is safe for
// concurrent use once constructed.
var validate = validator.New()

// Constraint messages shown to the user when a field fails validation.
const (
	NameConstraints    = "Names should only contain alphanumeric characters and spaces, and it should not be blank"
	PhoneConstraints   = "Phone numbers should only contain numbers, and it should be at least 3 digits long"
	EmailConstraints   = "Emails should be of the format local-part@domain"
	AddressConstraints = "Addresses can take any values, and it should not be blank"
	TagConstraints     = "Tags names should be alphanumeric"
)

var (
	nameRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	tagRegex  = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
)

// ══════════════════════════════════════════════════════════════════════════════
// NAME
// ══════════════════════════════════════════════════════════════════════════════

// Name is a person's full name.
type Name string

// IsValidName reports whether s is an acceptable name.
func IsValidName(s string) bool {
	return nameRegex.MatchString(s)
}

// NewName creates a Name with validation. Input is trimmed.
func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if !IsValidName(s) {
		return "", shared.InvalidFieldValue("person", "Name", NameConstraints)
	}
	return Name(s), nil
}

// String returns the string representation.
func (n Name) String() string { return string(n) }

// ══════════════════════════════════════════════════════════════════════════════
// PHONE
// ══════════════════════════════════════════════════════════════════════════════

// Phone is a phone number made of digits only.
type Phone string

// IsValidPhone reports whether s is an acceptable phone number.
func IsValidPhone(s string) bool {
	return validate.Var(s, "required,number,min=3") == nil
}

// NewPhone creates a Phone with validation. Input is trimmed.
func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if !IsValidPhone(s) {
		return "", shared.InvalidFieldValue("person", "Phone", PhoneConstraints)
	}
	return Phone(s), nil
}

// String returns the string representation.
func (p Phone) String() string { return string(p) }

// ══════════════════════════════════════════════════════════════════════════════
// EMAIL
// ══════════════════════════════════════════════════════════════════════════════

// Email is an e-mail address.
type Email string

// IsValidEmail reports whether s is an acceptable e-mail address.
func IsValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// NewEmail creates an Email with validation. Input is trimmed.
func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !IsValidEmail(s) {
		return "", shared.InvalidFieldValue("person", "Email", EmailConstraints)
	}
	return Email(s), nil
}

// String returns the string representation.
func (e Email) String() string { return string(e) }

// ══════════════════════════════════════════════════════════════════════════════
// ADDRESS
// ══════════════════════════════════════════════════════════════════════════════

// Address is a free-form postal address.
type Address string

// IsValidAddress reports whether s is an acceptable address.
func IsValidAddress(s string) bool {
	return strings.TrimSpace(s) != ""
}

// NewAddress creates an Address with validation. Input is trimmed.
func NewAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !IsValidAddress(s) {
		return "", shared.InvalidFieldValue("person", "Address", AddressConstraints)
	}
	return Address(s), nil
}

// String returns the string representation.
func (a Address) String() string { return string(a) }

// ══════════════════════════════════════════════════════════════════════════════
// REMARK
// ══════════════════════════════════════════════════════════════════════════════

// Remark is an optional free-text note. The empty remark is valid.
type Remark string

// NewRemark trims s into a Remark.
func NewRemark(s string) Remark {
	return Remark(strings.TrimSpace(s))
}

// String returns the string representation.
func (r Remark) String() string { return string(r) }

// ══════════════════════════════════════════════════════════════════════════════
// TAG
// ══════════════════════════════════════════════════════════════════════════════

// Tag is a single alphanumeric label.
type Tag string

// IsValidTag reports whether s is an acceptable tag name.
func IsValidTag(s string) bool {
	return tagRegex.MatchString(s)
}

// NewTag creates a Tag with validation. Input is trimmed.
func NewTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if !IsValidTag(s) {
		return "", shared.InvalidFieldValue("person", "Tag", TagConstraints)
	}
	return Tag(s), nil
}

// String renders the tag in brackets.
func (t Tag) String() string { return "[" + string(t) + "]" }

// normalizeTags returns a sorted copy without duplicates.
func normalizeTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[Tag]struct{}, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// FIXTURE HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// MustName is NewName for values known to be valid. It panics otherwise.
func MustName(s string) Name { return must(NewName(s)) }

// MustPhone is NewPhone for values known to be valid. It panics otherwise.
func MustPhone(s string) Phone { return must(NewPhone(s)) }

// MustEmail is NewEmail for values known to be valid. It panics otherwise.
func MustEmail(s string) Email { return must(NewEmail(s)) }

// MustAddress is NewAddress for values known to be valid. It panics otherwise.
func MustAddress(s string) Address { return must(NewAddress(s)) }

// MustTag is NewTag for values known to be valid. It panics otherwise.
func MustTag(s string) Tag { return must(NewTag(s)) }
