package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

func TestParseTag(t *testing.T) {
	c, err := ParseTag("3 attr/Subject=Math, Physics attr/age=16 attr/SUBJECT=chemistry,,")
	require.NoError(t, err)
	tc := c.(*command.TagCommand)

	assert.Equal(t, 2, tc.Index.ZeroBased())
	require.Len(t, tc.Attrs, 2)
	assert.Equal(t, "subject=chemistry", tc.Attrs[0].String())
	assert.Equal(t, "age=16", tc.Attrs[1].String())
}

func TestParseTag_Failures(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		kind    error
		message string
	}{
		{"no attributes", "1", shared.ErrInvalidCommandFormat, ""},
		{"no equals", "1 attr/subject", shared.ErrInvalidCommandFormat, person.AttributeFormatConstraints},
		{"empty key", "1 attr/=math", shared.ErrInvalidFieldValue, person.AttributeKeyConstraints},
		{"no values", "1 attr/subject= , ", shared.ErrInvalidFieldValue, person.AttributeValueConstraints},
		{"missing index", "attr/subject=math", shared.ErrInvalidCommandFormat, ""},
		{"bad index", "x attr/subject=math", shared.ErrInvalidIndex, shared.MessageInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTag(tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, shared.UserMessage(err))
			}
		})
	}
}

func TestParseDeleteAttribute(t *testing.T) {
	c, err := ParseDeleteAttribute("1 attr/Subject attr/ age  attr/subject")
	require.NoError(t, err)
	dc := c.(*command.DeleteAttributeCommand)

	assert.Equal(t, 0, dc.Index.ZeroBased())
	assert.Equal(t, []string{"subject", "age"}, dc.Keys)
}

func TestParseDeleteAttribute_Failures(t *testing.T) {
	_, err := ParseDeleteAttribute("1")
	assert.ErrorIs(t, err, shared.ErrInvalidCommandFormat)

	_, err = ParseDeleteAttribute("1 attr/ ")
	assert.ErrorIs(t, err, shared.ErrInvalidCommandFormat)

	_, err = ParseDeleteAttribute("attr/subject")
	assert.ErrorIs(t, err, shared.ErrInvalidCommandFormat)

	_, err = ParseDeleteAttribute("0 attr/subject")
	assert.ErrorIs(t, err, shared.ErrInvalidIndex)
}
