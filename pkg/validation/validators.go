package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Deliberately permissive email shape (local@domain.tld). Not RFC 5322 - the
// front end uses the same pattern, so the two sides agree on what passes.
// Tightening this is a product decision, not a bug fix.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// HTTP(S) URL shape for project links. Loose on purpose.
var urlRegex = regexp.MustCompile(`^https?://\S+$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ContactEmail)
	_ = v.RegisterValidation("http_url", HTTPURL)
}

// ContactEmail validates an address against the permissive contact-form
// pattern rather than the stricter built-in "email" tag.
func ContactEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return emailRegex.MatchString(val)
}

// HTTPURL validates that a string looks like an http(s) URL
func HTTPURL(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return urlRegex.MatchString(val)
}
