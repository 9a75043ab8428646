package person

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/internal/domain/shared"
	"github.com/studentbook/studentbook/pkg/timeutil"
)

func TestNewLesson_Incomplete(t *testing.T) {
	start, end := timeutil.MustClock("10:00"), timeutil.MustClock("12:00")

	_, err := NewLesson(start, end, timeutil.MustDate("2025-10-20"), "  ")
	assert.ErrorIs(t, err, ErrIncompleteLesson)
}

func TestLesson_String(t *testing.T) {
	l := MustLesson("10:00", "12:00", "2025-10-20", "Math")

	assert.Equal(t, "Math : 2025-10-20 10:00 to 2025-10-20 12:00[Not Present]", l.String())
	assert.Equal(t, "Math : 2025-10-20 10:00 to 2025-10-20 12:00[Present]", l.WithAttendance(true).String())
}

func TestLesson_Overlap(t *testing.T) {
	base := MustLesson("10:00", "12:00", "2025-10-20", "Math")

	tests := []struct {
		name  string
		other Lesson
		want  bool
	}{
		{"identical", MustLesson("10:00", "12:00", "2025-10-20", "Physics"), true},
		{"starts inside", MustLesson("11:00", "13:00", "2025-10-20", "Physics"), true},
		{"ends inside", MustLesson("09:00", "10:30", "2025-10-20", "Physics"), true},
		{"contains", MustLesson("09:00", "13:00", "2025-10-20", "Physics"), true},
		{"touches end", MustLesson("12:00", "13:00", "2025-10-20", "Physics"), false},
		{"touches start", MustLesson("08:00", "10:00", "2025-10-20", "Physics"), false},
		{"other day", MustLesson("10:00", "12:00", "2025-10-21", "Physics"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.OverlapsWith(tt.other))
			assert.Equal(t, tt.want, tt.other.OverlapsWith(base), "overlap must be symmetric")
		})
	}
}

func TestLesson_OverlapAcrossMidnight(t *testing.T) {
	night, err := NewLessonSpan(
		timeutil.MustClock("23:00"), timeutil.MustClock("01:00"),
		timeutil.MustDate("2025-10-20"), timeutil.MustDate("2025-10-21"),
		"Astronomy", false,
	)
	require.NoError(t, err)

	early := MustLesson("00:30", "02:00", "2025-10-21", "Math")
	assert.True(t, night.OverlapsWith(early))
	assert.True(t, early.OverlapsWith(night))
}

func TestLessonList_SortedAndIndexed(t *testing.T) {
	later := MustLesson("14:00", "15:00", "2025-10-20", "Physics")
	earlier := MustLesson("09:00", "10:00", "2025-10-20", "Math")
	nextDay := MustLesson("08:00", "09:00", "2025-10-21", "Chemistry")

	l := NewLessonList(later, nextDay).Add(earlier)
	require.Equal(t, 3, l.Len())

	first, err := l.Get(shared.MustOneBased(1))
	require.NoError(t, err)
	assert.Equal(t, "Math", first.Subject())

	l, err = l.Remove(shared.MustOneBased(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Chemistry"}, subjects(l))

	_, err = l.Get(shared.MustOneBased(3))
	assert.ErrorIs(t, err, shared.ErrInvalidLessonIndex)

	_, err = l.Remove(shared.MustOneBased(3))
	assert.ErrorIs(t, err, shared.ErrInvalidLessonIndex)
}

func TestLessonList_SetAttendance(t *testing.T) {
	l := NewLessonList(MustLesson("09:00", "10:00", "2025-10-20", "Math"))

	marked, err := l.SetAttendance(shared.MustOneBased(1), true)
	require.NoError(t, err)

	got, _ := marked.Get(shared.MustOneBased(1))
	assert.True(t, got.IsPresent())
	orig, _ := l.Get(shared.MustOneBased(1))
	assert.False(t, orig.IsPresent())

	_, err = l.SetAttendance(shared.MustOneBased(2), true)
	assert.ErrorIs(t, err, shared.ErrInvalidLessonIndex)
}

func TestLessonList_FindOverlap(t *testing.T) {
	existing := MustLesson("10:00", "12:00", "2025-10-20", "Math")
	l := NewLessonList(existing)

	found, ok := l.FindOverlap(MustLesson("11:00", "13:00", "2025-10-20", "Physics"))
	require.True(t, ok)
	assert.True(t, found.Equal(existing))

	_, ok = l.FindOverlap(MustLesson("12:00", "13:00", "2025-10-20", "Physics"))
	assert.False(t, ok)
}

func TestLessonList_String(t *testing.T) {
	assert.Equal(t, "None", LessonList{}.String())

	l := NewLessonList(
		MustLesson("14:00", "15:00", "2025-10-20", "Physics"),
		MustLesson("09:00", "10:00", "2025-10-20", "Math"),
	)
	assert.Equal(t,
		"Math : 2025-10-20 09:00 to 2025-10-20 10:00[Not Present]\n"+
			"Physics : 2025-10-20 14:00 to 2025-10-20 15:00[Not Present]",
		l.String())
}

func subjects(l LessonList) []string {
	var out []string
	for _, lesson := range l.Lessons() {
		out = append(out, lesson.Subject())
	}
	return out
}
