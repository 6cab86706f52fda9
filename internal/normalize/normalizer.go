// Package normalize validates raw LLM profiles and converts them into canonical candidate records.
package normalize

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/schema"
	"go-resume-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
)

const minPlausibleYear = 1900

type Normalizer struct {
	validate *validator.Validate
}

var _ domain.ProfileNormalizer = (*Normalizer)(nil)

// NewNormalizer expects a validator with the rules of pkg/validation registered.
func NewNormalizer(validate *validator.Validate) *Normalizer {
	if validate == nil {
		validate = validation.New()
	}
	return &Normalizer{validate: validate}
}

// CollapseSpace trims s and replaces every whitespace run with a single space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CanonicalKey is the comparison key of dictionary values such as skills.
// A fresh Caser is used per call since cases.Caser is not safe for concurrent use.
func CanonicalKey(s string) string {
	return cases.Fold().String(CollapseSpace(s))
}

// CanonicalList collapses whitespace, drops empty entries and removes entries
// whose canonical key was already seen. The first display form wins.
func CanonicalList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		display := CollapseSpace(item)
		if display == "" {
			continue
		}
		key := CanonicalKey(display)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, display)
	}
	return out
}

// Normalize checks the structure of raw against the profile schema and returns
// the canonical record. Failures are *domain.ValidationError.
func (n *Normalizer) Normalize(raw map[string]any) (*domain.Candidate, error) {
	if raw == nil {
		return nil, &domain.ValidationError{Message: "profile must be a JSON object"}
	}

	if err := schema.Validate(raw); err != nil {
		var serr *schema.ValidationError
		if errors.As(err, &serr) && len(serr.Errors) > 0 {
			return nil, &domain.ValidationError{Field: serr.Errors[0].Field, Message: serr.Errors[0].Message}
		}
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	name, _ := raw["name"].(string)
	candidate := &domain.Candidate{
		Name:           CollapseSpace(name),
		Email:          text(lookup(raw, "email")),
		Phone:          text(lookup(raw, "phone")),
		LinkedIn:       text(lookup(raw, "linkedin", "linkedin_url")),
		City:           collapsedOptional(lookup(raw, "city")),
		TotalExp:       years(lookup(raw, "total_exp", "total_experience_years")),
		Skills:         CanonicalList(stringItems(lookup(raw, "skills"))),
		Certifications: CanonicalList(stringItems(lookup(raw, "certifications"))),
		Degrees:        degrees(lookup(raw, "degrees")),
		Experiences:    experiences(lookup(raw, "experience", "experiences")),
	}

	if candidate.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "must not be blank"}
	}
	if err := n.validate.Struct(candidate); err != nil {
		return nil, &domain.ValidationError{
			Field:   validation.FirstField(err),
			Message: strings.Join(validation.FormatValidationErrors(err), "; "),
		}
	}
	return candidate, nil
}

// lookup returns the first non-null value among keys
func lookup(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// text renders an optional scalar as trimmed text. Numbers are formatted
// without exponent so a phone given as a number survives. Booleans, objects
// and arrays are dropped.
func text(v any) *string {
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		s = t.String()
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}

// number parses numbers and numeric strings. ok is false for anything that is
// not a finite number.
func number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func roundTenth(f float64) float64 {
	return math.Round(f*10) / 10
}

// years coerces an experience value: invalid, missing or negative become 0
func years(v any) float64 {
	f, ok := number(v)
	if !ok || f < 0 {
		return 0
	}
	return roundTenth(f)
}

func optionalYears(v any) *float64 {
	f, ok := number(v)
	if !ok {
		return nil
	}
	if f < 0 {
		f = 0
	}
	f = roundTenth(f)
	return &f
}

// stringItems reads a list of strings. A single string is split on commas,
// semicolons and line breaks; other shapes and non-string items are dropped.
func stringItems(v any) []string {
	if s, ok := v.(string); ok {
		return strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ';' || r == '\n' || r == '\r'
		})
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// objectItems reads a list of objects. A single object is read as a list of one.
func objectItems(v any) []map[string]any {
	if obj, ok := v.(map[string]any); ok {
		return []map[string]any{obj}
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// collapsedOptional is text with inner whitespace runs collapsed, so facet
// values compare equal to the filters built from them.
func collapsedOptional(v any) *string {
	s := text(v)
	if s == nil {
		return nil
	}
	collapsed := CollapseSpace(*s)
	return &collapsed
}

func collapsedText(v any) string {
	if s := text(v); s != nil {
		return CollapseSpace(*s)
	}
	return ""
}

// degrees keeps entries that name a college
func degrees(v any) []domain.Degree {
	var out []domain.Degree
	for _, obj := range objectItems(v) {
		college := collapsedText(obj["college_name"])
		if college == "" {
			continue
		}
		out = append(out, domain.Degree{
			CollegeName:   college,
			DegreeName:    text(obj["degree_name"]),
			PassedOutYear: year(obj["passed_out_year"]),
		})
	}
	return out
}

func year(v any) *int {
	f, ok := number(v)
	if !ok || f != math.Trunc(f) {
		return nil
	}
	y := int(f)
	if y < minPlausibleYear || y > time.Now().Year()+1 {
		return nil
	}
	return &y
}

// experiences keeps entries that name a company
func experiences(v any) []domain.Experience {
	var out []domain.Experience
	for _, obj := range objectItems(v) {
		company := collapsedText(obj["company_name"])
		if company == "" {
			continue
		}
		out = append(out, domain.Experience{
			CompanyName: company,
			Role:        text(obj["role"]),
			TotalYears:  optionalYears(obj["total_years"]),
			Description: text(obj["description"]),
		})
	}
	return out
}
