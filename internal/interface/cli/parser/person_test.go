package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

func TestParseAdd(t *testing.T) {
	c, err := ParseAdd(" n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2, #02-25 t/friends t/owesMoney")
	require.NoError(t, err)
	p := c.(*command.AddCommand).Person

	assert.Equal(t, person.Name("John Doe"), p.Name())
	assert.Equal(t, person.Address("311, Clementi Ave 2, #02-25"), p.Address())
	assert.Equal(t, []person.Tag{"friends", "owesMoney"}, p.Tags())
}

func TestParseAdd_Failures(t *testing.T) {
	tests := []struct {
		name string
		args string
		kind error
	}{
		{"missing email", "n/John p/123 a/x", shared.ErrInvalidCommandFormat},
		{"preamble present", "hello n/John p/123 e/j@x.com a/x", shared.ErrInvalidCommandFormat},
		{"duplicate name", "n/John n/Jack p/123 e/j@x.com a/x", shared.ErrDuplicatePrefix},
		{"bad phone", "n/John p/12 e/j@x.com a/x", shared.ErrInvalidFieldValue},
		{"bad tag", "n/John p/123 e/j@x.com a/x t/best friend", shared.ErrInvalidFieldValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAdd(tt.args)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestParseEdit(t *testing.T) {
	c, err := ParseEdit("2 p/91234567 t/")
	require.NoError(t, err)
	ec := c.(*command.EditCommand)

	assert.Equal(t, 1, ec.Index.ZeroBased())
	require.NotNil(t, ec.Descriptor.Phone)
	assert.Equal(t, person.Phone("91234567"), *ec.Descriptor.Phone)
	assert.Nil(t, ec.Descriptor.Name)
	require.NotNil(t, ec.Descriptor.Tags)
	assert.Empty(t, *ec.Descriptor.Tags)
}

func TestParseEdit_Failures(t *testing.T) {
	_, err := ParseEdit("1")
	require.Error(t, err)
	assert.Equal(t, command.MessageNothingToEdit, shared.UserMessage(err))

	_, err = ParseEdit("n/John")
	assert.ErrorIs(t, err, shared.ErrInvalidCommandFormat)

	_, err = ParseEdit("0 n/John")
	assert.ErrorIs(t, err, shared.ErrInvalidCommandFormat)

	_, err = ParseEdit("1 e/not-an-email")
	assert.ErrorIs(t, err, shared.ErrInvalidFieldValue)
}

func TestParseDeleteAndRemark(t *testing.T) {
	c, err := ParseDelete(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 2, c.(*command.DeleteCommand).Index.ZeroBased())

	_, err = ParseDelete("a")
	assert.ErrorIs(t, err, shared.ErrInvalidCommandFormat)

	c, err = ParseRemark("1 r/ Likes to swim. ")
	require.NoError(t, err)
	assert.Equal(t, person.Remark("Likes to swim."), c.(*command.RemarkCommand).Remark)

	c, err = ParseRemark("1 r/")
	require.NoError(t, err)
	assert.Empty(t, c.(*command.RemarkCommand).Remark)

	_, err = ParseRemark("1")
	assert.ErrorIs(t, err, shared.ErrInvalidCommandFormat)
}

func TestParseSearch(t *testing.T) {
	c, err := ParseSearch("  alice   bob ")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, c.(*command.SearchCommand).Keywords)

	_, err = ParseSearch("   ")
	assert.ErrorIs(t, err, shared.ErrInvalidCommandFormat)
}
