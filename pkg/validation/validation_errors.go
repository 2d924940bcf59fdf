package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"Name":        "Name",
	"Email":       "Email",
	"Message":     "Message",
	"Title":       "Title",
	"Content":     "Content",
	"Description": "Description",
	"TechStack":   "Tech stack",
	"LiveURL":     "Live URL",
	"RepoURL":     "Repository URL",
}

// fieldKeys maps struct field names to their JSON wire names so per-field
// errors line up with what the front end submitted.
var fieldKeys = map[string]string{
	"Name":        "name",
	"Email":       "email",
	"Message":     "message",
	"Title":       "title",
	"Content":     "content",
	"Description": "description",
	"TechStack":   "tech_stack",
	"LiveURL":     "live_url",
	"RepoURL":     "repo_url",
}

// Errors is the full set of field failures from a single validation pass.
// The zero-length check distinguishes it from transport or server errors.
type Errors struct {
	Fields map[string]string // wire field name -> message
	order  []string
}

func (e *Errors) Error() string {
	msgs := make([]string, 0, len(e.order))
	for _, key := range e.order {
		msgs = append(msgs, e.Fields[key])
	}
	return strings.Join(msgs, "; ")
}

func (e *Errors) add(key, msg string) {
	if _, seen := e.Fields[key]; seen {
		return // keep the first message per field
	}
	e.Fields[key] = msg
	e.order = append(e.order, key)
}

// Check runs the validator and converts the result to *Errors, reporting
// every failing field, not just the first one encountered.
func Check(v *validator.Validate, s any) *Errors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	out := &Errors{Fields: make(map[string]string)}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		out.add("_", err.Error())
		return out
	}

	for _, e := range validationErrors {
		key := fieldKeys[e.Field()]
		if key == "" {
			key = strings.ToLower(e.Field())
		}
		out.add(key, formatSingleError(e))
	}

	return out
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, e.Param())

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, e.Param())

	case "contact_email":
		return "Please enter a valid email address"

	case "http_url":
		return fmt.Sprintf("%s must be a valid http(s) URL", label)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
