package person

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/internal/domain/shared"
)

func TestNewGrade_Validation(t *testing.T) {
	tests := []struct {
		name                       string
		subject, assessment, score string
		wantErr                    bool
	}{
		{"simple", "MATH", "WA1", "89", false},
		{"decimal score", "Science", "Quiz 1", "72.5", false},
		{"max score", "MATH", "Final", "100", false},
		{"zero score", "MATH", "Final", "0", false},
		{"score above max", "MATH", "Final", "100.01", true},
		{"negative score", "MATH", "Final", "-1", true},
		{"score with letters", "MATH", "Final", "A+", true},
		{"too many decimals", "MATH", "Final", "1.234", true},
		{"subject with slash", "MA/TH", "WA1", "50", true},
		{"empty subject", "", "WA1", "50", true},
		{"assessment starts with space", "MATH", " WA1", "50", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrade(tt.subject, tt.assessment, tt.score)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, shared.ErrInvalidFieldValue)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGradeList_AddReplacesInPlace(t *testing.T) {
	l := NewGradeList(
		MustGrade("MATH", "WA1", "80"),
		MustGrade("SCIENCE", "Quiz1", "70"),
	)

	l = l.AddGrade(MustGrade("MATH", "WA1", "95"))
	l = l.AddGrade(MustGrade("ENGLISH", "Essay", "60"))

	assert.Equal(t, "MATH/WA1: 95, SCIENCE/Quiz1: 70, ENGLISH/Essay: 60", l.String())
	assert.Equal(t, 3, l.Len())
}

func TestGradeList_Remove(t *testing.T) {
	orig := NewGradeList(MustGrade("MATH", "WA1", "80"), MustGrade("MATH", "WA2", "90"))

	l := orig.RemoveGrade("MATH", "WA1")
	assert.False(t, l.HasGrade("MATH", "WA1"))
	assert.True(t, l.HasGrade("MATH", "WA2"))

	// The original list is untouched.
	assert.Equal(t, 2, orig.Len())

	// Keys compare case-sensitively.
	assert.True(t, orig.RemoveGrade("math", "wa1").Equal(orig))
}

func TestGradeList_EmptyString(t *testing.T) {
	var l GradeList
	assert.Equal(t, "None", l.String())
	assert.True(t, l.IsEmpty())
}

func TestGradeList_Get(t *testing.T) {
	l := NewGradeList(MustGrade("MATH", "WA1", "80"))

	g, ok := l.Get(GradeKey{Subject: "MATH", Assessment: "WA1"})
	require.True(t, ok)
	assert.Equal(t, "80", g.Score())
	assert.Equal(t, "MATH", g.Subject())
	assert.Equal(t, "WA1", g.Assessment())

	_, ok = l.Get(GradeKey{Subject: "MATH", Assessment: "WA2"})
	assert.False(t, ok)
}
