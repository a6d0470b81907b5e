package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"ann@x.com",
		"first.last+tag@sub.domain.org",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"a@b",
		"@x.com",
		"a@.com.",
		"a b@c.com",
		"a@b c.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestContactEmailBindingTag(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	type payload struct {
		Email string `validate:"contact_email"`
	}

	require.NoError(t, v.Struct(payload{Email: "ann@x.com"}))
	assert.Error(t, v.Struct(payload{Email: "not-an-email"}))
}
