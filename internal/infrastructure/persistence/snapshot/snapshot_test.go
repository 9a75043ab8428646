package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/pkg/timeutil"
)

func fullPerson(t *testing.T) *person.Person {
	t.Helper()
	attr, err := person.NewAttribute("subject", "math", "physics")
	require.NoError(t, err)
	night, err := person.NewLessonSpan(
		timeutil.MustClock("23:00"), timeutil.MustClock("01:00"),
		timeutil.MustDate("2025-10-20"), timeutil.MustDate("2025-10-21"),
		"Astronomy", true,
	)
	require.NoError(t, err)

	return person.New(
		person.MustName("Alice Pauline"),
		person.MustPhone("94351253"),
		person.MustEmail("alice@example.com"),
		person.MustAddress("123, Jurong West Ave 6"),
		person.MustTag("friends"),
	).
		WithRemark(person.NewRemark("quiet")).
		WithAttributes(person.NewAttributeSet(attr)).
		WithLessons(person.NewLessonList(night, person.MustLesson("10:00", "12:00", "2025-10-20", "Math"))).
		WithGrades(person.NewGradeList(person.MustGrade("MATH", "WA1", "89.5")))
}

func TestEncodeDecode_PreservesEveryField(t *testing.T) {
	in := []*person.Person{fullPerson(t), person.New(
		person.MustName("Bob"), person.MustPhone("123"), person.MustEmail("bob@example.com"), person.MustAddress("x"),
	)}

	data, err := Encode(in)
	require.NoError(t, err)
	out, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, out, 2)
	for i := range in {
		assert.True(t, in[i].Equal(out[i]), "person %d: %s != %s", i, in[i], out[i])
	}
}

func TestEncode_WritesVersion(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, Version, doc.Version)
	assert.Empty(t, doc.Persons)
}

func TestDecode_Empty(t *testing.T) {
	persons, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, persons)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"version":`},
		{"newer version", `{"version": 99, "persons": []}`},
		{"invalid phone", `{"version": 1, "persons": [{"name":"A","phone":"x","email":"a@b.co","address":"y"}]}`},
		{"invalid grade", `{"version": 1, "persons": [{"name":"A","phone":"123","email":"a@b.co","address":"y",
			"grades":[{"subject":"MATH","assessment":"WA1","score":"500"}]}]}`},
		{"invalid lesson", `{"version": 1, "persons": [{"name":"A","phone":"123","email":"a@b.co","address":"y",
			"lessons":[{"subject":"Math","start":"1000","end":"12:00","start_date":"2025-10-20"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecode_MissingEndDateDefaultsToStartDate(t *testing.T) {
	data := `{"version": 1, "persons": [{"name":"A","phone":"123","email":"a@b.co","address":"y",
		"lessons":[{"subject":"Math","start":"10:00","end":"12:00","start_date":"2025-10-20"}]}]}`

	persons, err := Decode([]byte(data))
	require.NoError(t, err)
	lessons := persons[0].Lessons().Lessons()
	require.Len(t, lessons, 1)
	assert.Equal(t, lessons[0].Date(), lessons[0].EndDate())
}

func TestFingerprint(t *testing.T) {
	a, err := FingerprintOf([]*person.Person{fullPerson(t)})
	require.NoError(t, err)
	b, err := FingerprintOf([]*person.Person{fullPerson(t)})
	require.NoError(t, err)
	c, err := FingerprintOf(nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
