package person

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/pkg/timeutil"
)

// ErrIncompleteLesson is returned when a lesson is built without a date or subject.
var ErrIncompleteLesson = errors.New("lesson: dates and subject are required")

// ══════════════════════════════════════════════════════════════════════════════
// LESSON
// ══════════════════════════════════════════════════════════════════════════════

// Lesson is a scheduled block of teaching time with an attendance flag.
// Ordering of start and end is validated by the parser, not here.
type Lesson struct {
	start     timeutil.Clock
	end       timeutil.Clock
	startDate time.Time
	endDate   time.Time
	subject   string
	present   bool
}

// NewLesson creates a single-day lesson with attendance unset.
func NewLesson(start, end timeutil.Clock, date time.Time, subject string) (Lesson, error) {
	return NewLessonSpan(start, end, date, date, subject, false)
}

// NewLessonSpan creates a lesson with explicit start and end dates.
func NewLessonSpan(start, end timeutil.Clock, startDate, endDate time.Time, subject string, present bool) (Lesson, error) {
	if startDate.IsZero() || endDate.IsZero() || strings.TrimSpace(subject) == "" {
		return Lesson{}, ErrIncompleteLesson
	}
	return Lesson{
		start:     start,
		end:       end,
		startDate: timeutil.StartOfDay(startDate),
		endDate:   timeutil.StartOfDay(endDate),
		subject:   subject,
		present:   present,
	}, nil
}

// MustLesson builds a single-day lesson from wire strings. Intended for fixtures.
func MustLesson(start, end, date, subject string) Lesson {
	l, err := NewLesson(timeutil.MustClock(start), timeutil.MustClock(end), timeutil.MustDate(date), subject)
	if err != nil {
		panic(err)
	}
	return l
}

// Start returns the start time of day.
func (l Lesson) Start() timeutil.Clock { return l.start }

// End returns the end time of day.
func (l Lesson) End() timeutil.Clock { return l.end }

// Date returns the start date.
func (l Lesson) Date() time.Time { return l.startDate }

// EndDate returns the end date.
func (l Lesson) EndDate() time.Time { return l.endDate }

// Subject returns the lesson subject.
func (l Lesson) Subject() string { return l.subject }

// IsPresent reports whether the student attended.
func (l Lesson) IsPresent() bool { return l.present }

// StartDateTime anchors the start time to the start date.
func (l Lesson) StartDateTime() time.Time { return timeutil.At(l.startDate, l.start) }

// EndDateTime anchors the end time to the end date.
func (l Lesson) EndDateTime() time.Time { return timeutil.At(l.endDate, l.end) }

// OverlapsWith reports whether the [start, end) intervals of l and other
// intersect. Lessons that touch at a boundary instant do not overlap.
func (l Lesson) OverlapsWith(other Lesson) bool {
	return l.StartDateTime().Before(other.EndDateTime()) &&
		l.EndDateTime().After(other.StartDateTime())
}

// Compare orders lessons chronologically by start date and time.
func (l Lesson) Compare(other Lesson) int {
	return l.StartDateTime().Compare(other.StartDateTime())
}

// WithAttendance returns a copy with the attendance flag set.
func (l Lesson) WithAttendance(present bool) Lesson {
	l.present = present
	return l
}

// Equal compares every field, attendance included.
func (l Lesson) Equal(other Lesson) bool {
	return l.start == other.start &&
		l.end == other.end &&
		l.startDate.Equal(other.startDate) &&
		l.endDate.Equal(other.endDate) &&
		l.subject == other.subject &&
		l.present == other.present
}

// Details renders the lesson without attendance.
func (l Lesson) Details() string {
	return l.subject + " from " + timeutil.FormatDateClock(l.startDate, l.start) +
		" to " + timeutil.FormatDateClock(l.endDate, l.end)
}

// String renders SUBJECT : DATE HH:MM to DATE HH:MM[Present].
func (l Lesson) String() string {
	attendance := "[Not Present]"
	if l.present {
		attendance = "[Present]"
	}
	return l.subject + " : " + timeutil.FormatDateClock(l.startDate, l.start) +
		" to " + timeutil.FormatDateClock(l.endDate, l.end) + attendance
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSON LIST
// ══════════════════════════════════════════════════════════════════════════════

// LessonList is a chronologically ordered list of lessons. The zero value is
// an empty list.
type LessonList struct {
	lessons []Lesson
}

// NewLessonList builds a sorted list from lessons.
func NewLessonList(lessons ...Lesson) LessonList {
	out := make([]Lesson, len(lessons))
	copy(out, lessons)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return LessonList{lessons: out}
}

// Add returns a new list with lesson inserted in chronological position.
func (l LessonList) Add(lesson Lesson) LessonList {
	out := make([]Lesson, len(l.lessons), len(l.lessons)+1)
	copy(out, l.lessons)
	out = append(out, lesson)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return LessonList{lessons: out}
}

// Get returns the lesson at idx.
func (l LessonList) Get(idx shared.Index) (Lesson, error) {
	if !idx.InRange(len(l.lessons)) {
		return Lesson{}, shared.ErrLessonOutOfRange
	}
	return l.lessons[idx.ZeroBased()], nil
}

// Remove returns a new list without the lesson at idx.
func (l LessonList) Remove(idx shared.Index) (LessonList, error) {
	if !idx.InRange(len(l.lessons)) {
		return l, shared.ErrLessonOutOfRange
	}
	i := idx.ZeroBased()
	out := make([]Lesson, 0, len(l.lessons)-1)
	out = append(out, l.lessons[:i]...)
	out = append(out, l.lessons[i+1:]...)
	return LessonList{lessons: out}, nil
}

// SetAttendance returns a new list with the attendance of the lesson at idx set.
func (l LessonList) SetAttendance(idx shared.Index, present bool) (LessonList, error) {
	if !idx.InRange(len(l.lessons)) {
		return l, shared.ErrLessonOutOfRange
	}
	out := make([]Lesson, len(l.lessons))
	copy(out, l.lessons)
	out[idx.ZeroBased()] = out[idx.ZeroBased()].WithAttendance(present)
	return LessonList{lessons: out}, nil
}

// FindOverlap returns the first existing lesson that overlaps candidate.
func (l LessonList) FindOverlap(candidate Lesson) (Lesson, bool) {
	for _, existing := range l.lessons {
		if existing.OverlapsWith(candidate) {
			return existing, true
		}
	}
	return Lesson{}, false
}

// Lessons returns a copy of the lessons in chronological order.
func (l LessonList) Lessons() []Lesson {
	out := make([]Lesson, len(l.lessons))
	copy(out, l.lessons)
	return out
}

// Len returns the number of lessons.
func (l LessonList) Len() int { return len(l.lessons) }

// Equal compares two lists element by element.
func (l LessonList) Equal(other LessonList) bool {
	if len(l.lessons) != len(other.lessons) {
		return false
	}
	for i := range l.lessons {
		if !l.lessons[i].Equal(other.lessons[i]) {
			return false
		}
	}
	return true
}

// String renders one lesson per line, or "None".
func (l LessonList) String() string {
	if len(l.lessons) == 0 {
		return "None"
	}
	parts := make([]string, len(l.lessons))
	for i, lesson := range l.lessons {
		parts[i] = lesson.String()
	}
	return strings.Join(parts, "\n")
}
