package addressbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

func newPerson(name string) *person.Person {
	return person.New(
		person.MustName(name),
		person.MustPhone("12345678"),
		person.MustEmail("someone@example.com"),
		person.MustAddress("Somewhere 1"),
	)
}

func names(persons []*person.Person) []string {
	out := make([]string, len(persons))
	for i, p := range persons {
		out[i] = p.Name().String()
	}
	return out
}

func TestNew_DropsDuplicates(t *testing.T) {
	ab := New(newPerson("Alice"), nil, newPerson("Bob"), newPerson("Alice"))

	assert.Equal(t, []string{"Alice", "Bob"}, names(ab.Persons()))
	assert.Equal(t, 2, ab.Len())
}

func TestAddPerson(t *testing.T) {
	ab := New()
	require.NoError(t, ab.AddPerson(newPerson("Alice")))

	err := ab.AddPerson(newPerson("Alice"))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrDuplicatePerson)
	assert.Equal(t, 1, ab.Len())
}

func TestSetPerson(t *testing.T) {
	alice, bob := newPerson("Alice"), newPerson("Bob")
	ab := New(alice, bob)

	graded := alice.WithGrades(person.NewGradeList(person.MustGrade("MATH", "WA1", "90")))
	require.NoError(t, ab.SetPerson(alice, graded))
	assert.Same(t, graded, ab.Persons()[0])

	t.Run("rename onto existing person", func(t *testing.T) {
		err := ab.SetPerson(graded, newPerson("Bob"))
		assert.ErrorIs(t, err, shared.ErrDuplicatePerson)
	})

	t.Run("stale target", func(t *testing.T) {
		err := ab.SetPerson(alice, graded)
		assert.ErrorIs(t, err, shared.ErrPersonNotFound)
	})
}

func TestDeletePerson(t *testing.T) {
	alice, bob, carl := newPerson("Alice"), newPerson("Bob"), newPerson("Carl")
	ab := New(alice, bob, carl)

	require.NoError(t, ab.DeletePerson(bob))
	assert.Equal(t, []string{"Alice", "Carl"}, names(ab.Persons()))
	assert.ErrorIs(t, ab.DeletePerson(bob), shared.ErrPersonNotFound)
}

func TestFilter(t *testing.T) {
	ab := New(newPerson("Alice Tan"), newPerson("Bob Lim"), newPerson("Alicia Ng"))

	ab.UpdateFilter(person.ContainsKeywords("ali"))
	assert.Equal(t, []string{"Alice Tan", "Alicia Ng"}, names(ab.FilteredPersons()))

	// The filter follows mutations.
	require.NoError(t, ab.AddPerson(newPerson("Ali Baba")))
	assert.Len(t, ab.FilteredPersons(), 3)

	ab.UpdateFilter(nil)
	assert.Len(t, ab.FilteredPersons(), 4)
}

func TestResetAndClear(t *testing.T) {
	ab := New(newPerson("Alice"))
	ab.UpdateFilter(person.ContainsKeywords("bob"))

	ab.Reset([]*person.Person{newPerson("Bob"), newPerson("Carl"), newPerson("Bob")})
	assert.Equal(t, []string{"Bob", "Carl"}, names(ab.Persons()))
	assert.Equal(t, []string{"Bob"}, names(ab.FilteredPersons()))

	ab.Clear()
	assert.Zero(t, ab.Len())
	assert.Empty(t, ab.FilteredPersons())
}

func TestFilteredPersons_ReturnsCopy(t *testing.T) {
	ab := New(newPerson("Alice"), newPerson("Bob"))

	view := ab.FilteredPersons()
	view[0] = nil
	assert.NotNil(t, ab.FilteredPersons()[0])
}
