// Package schema holds the versioned target schema of an extracted candidate profile.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Version identifies the profile schema the prompt asks for and the validator enforces
const Version = "candidate-profile/v1"

// rawSchema describes every field to the model. Only rawContract is enforced:
// the normalizer coerces optional fields of the wrong type instead of
// rejecting the profile.
//
//go:embed candidate_profile.v1.json
var rawSchema string

//go:embed candidate_profile.v1.contract.json
var rawContract string

// topLevelOrder fixes the order fields are described in the prompt
var topLevelOrder = []string{
	"name", "email", "phone", "linkedin", "city", "total_exp",
	"skills", "certifications", "degrees", "experience",
}

type property struct {
	Type        typeList            `json:"type"`
	Description string              `json:"description"`
	Items       *property           `json:"items"`
	Properties  map[string]property `json:"properties"`
}

type document struct {
	Required   []string            `json:"required"`
	Properties map[string]property `json:"properties"`
}

// typeList accepts both "type": "string" and "type": ["string", "null"]
type typeList []string

func (t *typeList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = typeList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*t = many
	return nil
}

// FieldError is one structural violation at a JSON path
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(rawContract))
	})
	return compiled, compileErr
}

// Raw returns the JSON Schema document
func Raw() string {
	return rawSchema
}

// Validate checks the hard requirements of a decoded profile: an object with a
// string name. Everything else, including blank names, is left to the normalizer.
func Validate(profile map[string]any) error {
	s, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load profile schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(profile))
	if err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}

// Describe renders the schema as a field list for the extraction prompt:
// one line per field with its type, cardinality and meaning.
func Describe() (string, error) {
	var doc document
	if err := json.Unmarshal([]byte(rawSchema), &doc); err != nil {
		return "", fmt.Errorf("decode profile schema: %w", err)
	}

	required := make(map[string]bool, len(doc.Required))
	for _, r := range doc.Required {
		required[r] = true
	}

	var sb strings.Builder
	for _, name := range topLevelOrder {
		prop, ok := doc.Properties[name]
		if !ok {
			continue
		}
		writeField(&sb, "", name, prop, required[name])

		if prop.Items != nil && len(prop.Items.Properties) > 0 {
			keys := make([]string, 0, len(prop.Items.Properties))
			for k := range prop.Items.Properties {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				writeField(&sb, "    ", k, prop.Items.Properties[k], false)
			}
		}
	}
	return sb.String(), nil
}

func writeField(sb *strings.Builder, indent, name string, prop property, required bool) {
	presence := "optional"
	if required {
		presence = "required"
	}
	fmt.Fprintf(sb, "%s- %s (%s, %s): %s\n", indent, name, renderType(prop), presence, prop.Description)
}

func renderType(prop property) string {
	types := make([]string, 0, len(prop.Type))
	nullable := false
	for _, t := range prop.Type {
		switch t {
		case "null":
			nullable = true
		case "array":
			if prop.Items != nil && len(prop.Items.Properties) > 0 {
				types = append(types, "list of objects")
			} else {
				types = append(types, "list of strings")
			}
		default:
			types = append(types, t)
		}
	}
	out := strings.Join(types, " or ")
	if nullable {
		out += ", may be null"
	}
	return out
}
