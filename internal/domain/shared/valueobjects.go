// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages.
package shared

import "fmt"

// ═══════════════════════════════════════════════════════════════════════════
// Index Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Index addresses an element of a displayed list. It is stored zero-based and
// entered by users one-based.
type Index int

// IndexFromOneBased creates an Index from a user-entered 1-based position.
func IndexFromOneBased(n int) (Index, error) {
	if n < 1 {
		return 0, ErrIndexNotPositive
	}
	return Index(n - 1), nil
}

// IndexFromZeroBased creates an Index from a 0-based position.
func IndexFromZeroBased(n int) (Index, error) {
	if n < 0 {
		return 0, ErrIndexNotPositive
	}
	return Index(n), nil
}

// MustOneBased is IndexFromOneBased for constants in tests and fixtures.
func MustOneBased(n int) Index {
	idx, err := IndexFromOneBased(n)
	if err != nil {
		panic(err)
	}
	return idx
}

// ZeroBased returns the 0-based position.
func (i Index) ZeroBased() int {
	return int(i)
}

// OneBased returns the 1-based position.
func (i Index) OneBased() int {
	return int(i) + 1
}

// InRange reports whether the index addresses an element of a list of length n.
func (i Index) InRange(n int) bool {
	return i >= 0 && int(i) < n
}

// String returns the 1-based representation users see.
func (i Index) String() string {
	return fmt.Sprintf("%d", i.OneBased())
}
