package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

func parseGrade(t *testing.T, args string) *command.GradeCommand {
	t.Helper()
	c, err := ParseGrade(args)
	require.NoError(t, err)
	gc, ok := c.(*command.GradeCommand)
	require.True(t, ok)
	return gc
}

func TestParseGrade_AddsAndDeletes(t *testing.T) {
	gc := parseGrade(t, " 2 sub/MATH/WA1/89 sub/SCIENCE/Quiz1/95 sub/ENGLISH/Essay")

	assert.Equal(t, 1, gc.Index.ZeroBased())
	assert.Equal(t, []person.Grade{
		person.MustGrade("MATH", "WA1", "89"),
		person.MustGrade("SCIENCE", "Quiz1", "95"),
	}, gc.Add)
	assert.Equal(t, []person.GradeKey{{Subject: "ENGLISH", Assessment: "Essay"}}, gc.Delete)
}

func TestParseGrade_DuplicatesCollapse(t *testing.T) {
	gc := parseGrade(t, "1 sub/MATH/WA1/50 sub/MATH/WA1 sub/MATH/WA1/90 sub/MATH/WA1")

	assert.Equal(t, []person.Grade{person.MustGrade("MATH", "WA1", "90")}, gc.Add)
	assert.Equal(t, []person.GradeKey{{Subject: "MATH", Assessment: "WA1"}}, gc.Delete)
}

func TestParseGrade_TrimsParts(t *testing.T) {
	gc := parseGrade(t, "1 sub/ MATH / WA1 / 89 ")

	assert.Equal(t, []person.Grade{person.MustGrade("MATH", "WA1", "89")}, gc.Add)
}

func TestParseGrade_Failures(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		kind    error
		message string
	}{
		{"no segments", "1", shared.ErrInvalidCommandFormat, ""},
		{"empty args", "", shared.ErrInvalidCommandFormat, ""},
		{"assessment missing", "1 sub/MATH", shared.ErrInvalidCommandFormat, MessageAssessmentMissing},
		{"too many parts", "1 sub/MATH/WA1/89/1", shared.ErrInvalidCommandFormat, MessageTooManyParts},
		{"empty subject", "1 sub/ /WA1/89", shared.ErrInvalidFieldValue, MessageSubjectEmpty},
		{"empty assessment", "1 sub/MATH//89", shared.ErrInvalidFieldValue, MessageAssessmentEmpty},
		{"empty score", "1 sub/MATH/WA1/", shared.ErrInvalidFieldValue, MessageScoreEmpty},
		{"invalid subject", "1 sub/M@TH/WA1/89", shared.ErrInvalidFieldValue, person.SubjectConstraints},
		{"invalid score", "1 sub/MATH/WA1/101", shared.ErrInvalidFieldValue, person.ScoreConstraints},
		{"missing index", "sub/MATH/WA1/89", shared.ErrInvalidCommandFormat, ""},
		{"two indexes", "1 2 sub/MATH/WA1/89", shared.ErrInvalidCommandFormat, ""},
		{"zero index", "0 sub/MATH/WA1/89", shared.ErrInvalidIndex, shared.MessageInvalidIndex},
		{"negative index", "-1 sub/MATH/WA1/89", shared.ErrInvalidIndex, shared.MessageInvalidIndex},
		{"word index", "abc sub/MATH/WA1/89", shared.ErrInvalidIndex, shared.MessageInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrade(tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, shared.UserMessage(err))
			}
		})
	}
}

func TestParseGrade_FormatErrorCarriesUsage(t *testing.T) {
	_, err := ParseGrade("1")
	require.Error(t, err)
	assert.Contains(t, shared.UserMessage(err), "Invalid command format!")
	assert.Contains(t, shared.UserMessage(err), command.GradeUsage)
}
