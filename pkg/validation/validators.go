package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Deliberately loose email check: one @, no whitespace, a dotted domain.
// The mail provider is the real authority on deliverability; this only
// filters out obvious garbage. Client and server share this pattern.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like a deliverable address.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ContactEmail)
}

// ContactEmail validates an email field against the shared pattern.
func ContactEmail(fl validator.FieldLevel) bool {
	return ValidEmail(fl.Field().String())
}
