package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string  `json:"username" validate:"required,min=3,max=50,username"`
	Email    string  `json:"email" validate:"required,simple_email"`
	Color    *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Site     string  `json:"site" validate:"omitempty,http_url"`
	UserID   int64   `validate:"gt=0"`
}

func TestValidate_OK(t *testing.T) {
	c := "#3B82F6"
	err := New().Validate(sample{Username: "alice_1", Email: "a@b.io", Color: &c, Site: "https://go.dev", UserID: 1})
	assert.NoError(t, err)
}

func TestValidate_FieldMessages(t *testing.T) {
	bad := "blue"
	err := New().Validate(sample{Username: "al ice", Email: "nope", Color: &bad, Site: "go.dev"})
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, Errors{
		"username": "may contain only letters, digits and underscores",
		"email":    "must be a valid email address",
		"color":    "must be a hex color like #3B82F6",
		"site":     "must be an absolute http(s) URL",
		"UserID":   "must be greater than 0",
	}, verrs)
}

func TestValidate_FirstRuleWins(t *testing.T) {
	err := New().Validate(sample{Email: "a@b.io", UserID: 1})
	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "is required", verrs["username"])

	err = New().Validate(sample{Username: "ab", Email: "a@b.io", UserID: 1})
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "must be at least 3 characters", verrs["username"])
}

func TestErrors_ErrorIsSorted(t *testing.T) {
	e := Errors{"title": "is required", "url": "must be an absolute http(s) URL", "name": "is required"}
	assert.Equal(t, "name is required; title is required; url must be an absolute http(s) URL", e.Error())
}
