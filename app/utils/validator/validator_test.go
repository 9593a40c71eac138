package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginRequest struct {
	Code        string `json:"code" validate:"required"`
	RedirectURI string `json:"redirect_uri" validate:"required,url"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	t.Run("valid struct passes", func(t *testing.T) {
		err := v.Validate(&loginRequest{
			Code:        "valid-code",
			RedirectURI: "https://app.example/cb",
		})
		assert.NoError(t, err)
	})

	t.Run("missing required fields use JSON names", func(t *testing.T) {
		err := v.Validate(&loginRequest{})
		require.Error(t, err)

		validationErr, ok := err.(ValidationError)
		require.True(t, ok)
		assert.Equal(t, "is required", validationErr.Errors["code"])
		assert.Equal(t, "is required", validationErr.Errors["redirect_uri"])
	})

	t.Run("malformed URL is reported on the JSON field", func(t *testing.T) {
		err := v.Validate(&loginRequest{
			Code:        "valid-code",
			RedirectURI: "not a url",
		})
		require.Error(t, err)

		validationErr, ok := err.(ValidationError)
		require.True(t, ok)
		assert.Equal(t, "must be a valid URL", validationErr.Errors["redirect_uri"])
		assert.NotContains(t, validationErr.Errors, "code")
	})

	t.Run("error message joins field problems", func(t *testing.T) {
		err := v.Validate(&loginRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code: is required")
	})
}
