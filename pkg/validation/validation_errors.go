package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Name":           "Name",
	"Email":          "Email",
	"Phone":          "Phone",
	"LinkedIn":       "LinkedIn",
	"City":           "City",
	"TotalExp":       "Total experience",
	"Skills":         "Skills",
	"Certifications": "Certifications",
	"CollegeName":    "College name",
	"DegreeName":     "Degree name",
	"PassedOutYear":  "Passed out year",
	"CompanyName":    "Company name",
	"Role":           "Role",
	"TotalYears":     "Years in role",
}

// FormatValidationErrors converts validator.ValidationErrors to readable messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// FirstField returns the namespace-free name of the first failing field, or ""
func FirstField(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return ""
	}
	return validationErrors[0].Field()
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.StructField())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "gte":
		return fmt.Sprintf("%s: must not be less than %s", label, param)
	case "unique":
		return fmt.Sprintf("%s: must not contain duplicates", label)
	case "collapsed":
		return fmt.Sprintf("%s: must not have surrounding or repeated whitespace", label)
	case "max_current_year":
		return fmt.Sprintf("%s: must not be later than next year", label)
	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

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
