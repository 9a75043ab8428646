package person

import (
	"sort"
	"strings"

	"github.com/studentbook/studentbook/internal/domain/shared"
)

// Attribute validation messages.
const (
	AttributeFormatConstraints = "Incorrect format. Use attr/key=value[,value2]..."
	AttributeKeyConstraints    = "Attribute key cannot be empty."
	AttributeValueConstraints  = "Attribute must have at least one value."
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTRIBUTE
// ══════════════════════════════════════════════════════════════════════════════

// Attribute is a lower-cased key with a set of values, e.g. subject=math,physics.
type Attribute struct {
	key    string
	values []string
}

// NewAttribute creates an Attribute. The key is trimmed and lower-cased;
// values are trimmed, blanks dropped and duplicates collapsed.
func NewAttribute(key string, values ...string) (Attribute, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return Attribute{}, shared.InvalidFieldValue("attribute", "Key", AttributeKeyConstraints)
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return Attribute{}, shared.InvalidFieldValue("attribute", "Values", AttributeValueConstraints)
	}
	sort.Strings(out)
	return Attribute{key: key, values: out}, nil
}

// Key returns the lower-cased key.
func (a Attribute) Key() string { return a.key }

// Values returns a sorted copy of the values.
func (a Attribute) Values() []string {
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}

// HasValue reports whether v is one of the values.
func (a Attribute) HasValue(v string) bool {
	i := sort.SearchStrings(a.values, v)
	return i < len(a.values) && a.values[i] == v
}

// Equal compares key and values.
func (a Attribute) Equal(other Attribute) bool {
	if a.key != other.key || len(a.values) != len(other.values) {
		return false
	}
	for i := range a.values {
		if a.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// String renders key=v1,v2.
func (a Attribute) String() string {
	return a.key + "=" + strings.Join(a.values, ",")
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTRIBUTE SET
// ══════════════════════════════════════════════════════════════════════════════

// AttributeSet holds at most one Attribute per key, in order of first
// insertion. The zero value is an empty set.
type AttributeSet struct {
	attrs []Attribute
}

// NewAttributeSet builds a set; later attributes overwrite earlier ones with
// the same key.
func NewAttributeSet(attrs ...Attribute) AttributeSet {
	return AttributeSet{}.Merge(attrs...)
}

// Merge returns a new set with attrs applied. Keys already present keep their
// position and take the new values.
func (s AttributeSet) Merge(attrs ...Attribute) AttributeSet {
	out := make([]Attribute, len(s.attrs), len(s.attrs)+len(attrs))
	copy(out, s.attrs)
	for _, a := range attrs {
		replaced := false
		for i := range out {
			if out[i].key == a.key {
				out[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, a)
		}
	}
	return AttributeSet{attrs: out}
}

// Remove returns a new set without the given keys. Absent keys are ignored.
func (s AttributeSet) Remove(keys ...string) AttributeSet {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}
	out := make([]Attribute, 0, len(s.attrs))
	for _, a := range s.attrs {
		if _, ok := drop[a.key]; !ok {
			out = append(out, a)
		}
	}
	return AttributeSet{attrs: out}
}

// Get returns the attribute stored under key.
func (s AttributeSet) Get(key string) (Attribute, bool) {
	for _, a := range s.attrs {
		if a.key == key {
			return a, true
		}
	}
	return Attribute{}, false
}

// Has reports whether key is present.
func (s AttributeSet) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Attributes returns a copy in insertion order.
func (s AttributeSet) Attributes() []Attribute {
	out := make([]Attribute, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Keys returns the keys in insertion order.
func (s AttributeSet) Keys() []string {
	out := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		out[i] = a.key
	}
	return out
}

// Len returns the number of attributes.
func (s AttributeSet) Len() int { return len(s.attrs) }

// Equal compares two sets element by element, order included.
func (s AttributeSet) Equal(other AttributeSet) bool {
	if len(s.attrs) != len(other.attrs) {
		return false
	}
	for i := range s.attrs {
		if !s.attrs[i].Equal(other.attrs[i]) {
			return false
		}
	}
	return true
}

// String joins the attributes with "; ", or returns "None".
func (s AttributeSet) String() string {
	if len(s.attrs) == 0 {
		return "None"
	}
	parts := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, "; ")
}
