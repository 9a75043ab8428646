// Package timeutil provides wall-clock and calendar-date helpers for lessons.
// Lesson times carry no timezone: a Clock is a minute of the day and a date is
// a calendar day anchored at UTC midnight.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// DateLayout is the on-the-wire date layout (YYYY-MM-DD).
	DateLayout = "2006-01-02"

	// ClockLayout is the on-the-wire time-of-day layout (HH:MM).
	ClockLayout = "15:04"

	minutesPerDay = 24 * 60
)

var (
	clockFormat = regexp.MustCompile(`^\d{2}:\d{2}$`)
	dateFormat  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// ErrClockFormat is returned when a time of day is not shaped HH:MM.
	ErrClockFormat = errors.New("timeutil: time must be HH:MM")

	// ErrClockRange is returned when HH or MM is out of range.
	ErrClockRange = errors.New("timeutil: time out of range")

	// ErrDateFormat is returned when a date is not shaped YYYY-MM-DD.
	ErrDateFormat = errors.New("timeutil: date must be YYYY-MM-DD")

	// ErrDateValue is returned when a well-shaped date does not exist.
	ErrDateValue = errors.New("timeutil: date does not exist")
)

// ═══════════════════════════════════════════════════════════════════════════
// Clock
// ═══════════════════════════════════════════════════════════════════════════

// Clock is a time of day with minute precision.
type Clock struct {
	minutes int
}

// NewClock creates a Clock from hour and minute.
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, ErrClockRange
	}
	return Clock{minutes: hour*60 + minute}, nil
}

// MustClock parses s and panics on failure. Intended for fixtures.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsClockFormat reports whether s is shaped HH:MM, regardless of range.
func IsClockFormat(s string) bool {
	return clockFormat.MatchString(s)
}

// ParseClock parses HH:MM. Shape is checked before range so callers can tell
// the two failures apart.
func ParseClock(s string) (Clock, error) {
	if !IsClockFormat(s) {
		return Clock{}, ErrClockFormat
	}
	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[3:])
	return NewClock(hour, minute)
}

// Hour returns the hour component.
func (c Clock) Hour() int { return c.minutes / 60 }

// Minute returns the minute component.
func (c Clock) Minute() int { return c.minutes % 60 }

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int { return c.minutes }

// Before reports whether c is strictly earlier than other.
func (c Clock) Before(other Clock) bool { return c.minutes < other.minutes }

// After reports whether c is strictly later than other.
func (c Clock) After(other Clock) bool { return c.minutes > other.minutes }

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// ═══════════════════════════════════════════════════════════════════════════
// Dates
// ═══════════════════════════════════════════════════════════════════════════

// IsDateFormat reports whether s is shaped YYYY-MM-DD, regardless of validity.
func IsDateFormat(s string) bool {
	return dateFormat.MatchString(s)
}

// ParseDate parses YYYY-MM-DD into a date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	if !IsDateFormat(s) {
		return time.Time{}, ErrDateFormat
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrDateValue
	}
	return t, nil
}

// MustDate parses s and panics on failure. Intended for fixtures.
func MustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Date returns the calendar date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay truncates t to its calendar date at UTC midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// At anchors a clock to a date.
func At(date time.Time, c Clock) time.Time {
	return StartOfDay(date).Add(time.Duration(c.minutes) * time.Minute)
}

// IsSameDay checks if two times fall on the same calendar date.
func IsSameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateClock formats a date and clock as "YYYY-MM-DD HH:MM".
func FormatDateClock(date time.Time, c Clock) string {
	return FormatDate(date) + " " + c.String()
}
