package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type joinInput struct {
	RoomId string `json:"roomId" validate:"required,min=4,max=64,lowercase,alphanum"`
	Name   string `json:"name" validate:"required,max=32"`
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	errs, ok := v.Validate(joinInput{RoomId: "room-1!", Name: "alice"})
	require.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "roomId", errs[0].Field)
	assert.Equal(t, "ALPHANUM", errs[0].Code)
	assert.Equal(t, "roomId must contain only letters and digits", errs[0].Message)

	errs, ok = v.Validate(joinInput{RoomId: "abc", Name: ""})
	require.False(t, ok)
	require.Len(t, errs, 2)
	assert.Equal(t, "MIN", errs[0].Code)
	assert.Equal(t, "roomId must be at least 4 characters long", errs[0].Message)
	assert.Equal(t, "name", errs[1].Field)
	assert.Equal(t, "REQUIRED", errs[1].Code)

	_, ok = v.Validate(joinInput{RoomId: "abcd42", Name: "alice"})
	assert.True(t, ok)
}
