package person

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/internal/domain/shared"
)

func alice() *Person {
	return New(
		MustName("Alice Pauline"),
		MustPhone("94351253"),
		MustEmail("alice@example.com"),
		MustAddress("123, Jurong West Ave 6, #08-111"),
		MustTag("friends"),
	)
}

func TestPerson_String(t *testing.T) {
	p := alice().
		WithGrades(NewGradeList(MustGrade("MATH", "WA1", "89"))).
		WithAttributes(NewAttributeSet(must(NewAttribute("subject", "math"))))

	assert.Equal(t,
		"Alice Pauline; Phone: 94351253; Email: alice@example.com; Address: 123, Jurong West Ave 6, #08-111; "+
			"Tags: [friends]; Attributes: subject=math; Grades: MATH/WA1: 89",
		p.String())

	withRemark := p.WithRemark(NewRemark(" likes maths "))
	assert.Contains(t, withRemark.String(), "; Remark: likes maths; Tags: ")
}

func TestPerson_WithLeavesReceiverUntouched(t *testing.T) {
	p := alice()
	graded := p.WithGrades(NewGradeList(MustGrade("MATH", "WA1", "89")))
	scheduled := p.WithLessons(NewLessonList(MustLesson("10:00", "12:00", "2025-10-20", "Math")))

	assert.True(t, p.Grades().IsEmpty())
	assert.Equal(t, 0, p.Lessons().Len())
	assert.Equal(t, 1, graded.Grades().Len())
	assert.Equal(t, 1, scheduled.Lessons().Len())
	assert.False(t, p.Equal(graded))
}

func TestPerson_Identity(t *testing.T) {
	p := alice()
	other := New(MustName("Alice Pauline"), MustPhone("999"), MustEmail("a@b.co"), MustAddress("Elsewhere"))

	assert.True(t, p.IsSamePerson(other))
	assert.False(t, p.Equal(other))
	assert.False(t, p.IsSamePerson(nil))
	assert.False(t, p.Equal(nil))

	assert.True(t, p.Equal(FromFields(p.Fields())))
}

func TestPerson_TagsNormalised(t *testing.T) {
	p := New(MustName("Bob"), MustPhone("123"), MustEmail("bob@example.com"), MustAddress("x"),
		MustTag("zeta"), MustTag("alpha"), MustTag("zeta"))

	assert.Equal(t, []Tag{"alpha", "zeta"}, p.Tags())
}

func TestValueObjects_Validation(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		ok   bool
	}{
		{"name", func() error { _, err := NewName("John Doe 2"); return err }, true},
		{"blank name", func() error { _, err := NewName("  "); return err }, false},
		{"name with symbol", func() error { _, err := NewName("J*hn"); return err }, false},
		{"phone", func() error { _, err := NewPhone("911"); return err }, true},
		{"short phone", func() error { _, err := NewPhone("91"); return err }, false},
		{"phone with letters", func() error { _, err := NewPhone("91a1"); return err }, false},
		{"email", func() error { _, err := NewEmail("peter@example.com"); return err }, true},
		{"email without domain", func() error { _, err := NewEmail("peter@"); return err }, false},
		{"address", func() error { _, err := NewAddress("Blk 1"); return err }, true},
		{"blank address", func() error { _, err := NewAddress(" "); return err }, false},
		{"tag", func() error { _, err := NewTag("colleague"); return err }, true},
		{"tag with space", func() error { _, err := NewTag("best friend"); return err }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrInvalidFieldValue)
		})
	}
}

func TestContainsKeywords(t *testing.T) {
	p := alice().
		WithAttributes(NewAttributeSet(must(NewAttribute("subject", "Physics")))).
		WithLessons(NewLessonList(MustLesson("10:00", "12:00", "2025-10-20", "Chemistry")))

	tests := []struct {
		keywords []string
		want     bool
	}{
		{[]string{"alice"}, true},
		{[]string{"PAULINE"}, true},
		{[]string{"9435"}, true},
		{[]string{"example.com"}, true},
		{[]string{"jurong"}, true},
		{[]string{"friend"}, true},
		{[]string{"subject"}, true},
		{[]string{"physics"}, true},
		{[]string{"chem"}, true},
		{[]string{"bob", "alice"}, true},
		{[]string{"bob"}, false},
		{nil, true},
		{[]string{"  "}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsKeywords(tt.keywords...)(p), "keywords %q", tt.keywords)
	}
}
