package schema_test

import (
	"strings"
	"testing"

	"go-resume-backend/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("accepts a minimal profile", func(t *testing.T) {
		err := schema.Validate(map[string]any{"name": "Ada Lovelace"})
		assert.NoError(t, err)
	})

	t.Run("accepts null list fields and numeric phone", func(t *testing.T) {
		err := schema.Validate(map[string]any{
			"name":      "Ada",
			"phone":     float64(5551234),
			"skills":    nil,
			"total_exp": "4.5",
			"degrees": []any{
				map[string]any{"college_name": "MIT", "passed_out_year": float64(2019)},
			},
		})
		assert.NoError(t, err)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		err := schema.Validate(map[string]any{"email": "a@b.c"})
		require.Error(t, err)

		var verr *schema.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Errors)
		assert.Contains(t, verr.Error(), "name")
	})

	t.Run("leaves mistyped optional fields to the normalizer", func(t *testing.T) {
		for _, raw := range []map[string]any{
			{"name": "Ada", "skills": "Go, Rust"},
			{"name": "Ada", "total_exp": true},
			{"name": "Ada", "total_exp": map[string]any{"years": float64(5)}},
			{"name": "Ada", "total_exp": []any{float64(3)}},
			{"name": "Ada", "email": false, "city": []any{"Berlin"}, "linkedin": float64(1)},
			{"name": "Ada", "degrees": map[string]any{"college_name": "MIT"}},
		} {
			assert.NoError(t, schema.Validate(raw), "%v", raw)
		}
	})

	t.Run("rejects a non-string name", func(t *testing.T) {
		err := schema.Validate(map[string]any{"name": float64(42)})
		assert.Error(t, err)
	})
}

func TestDescribe(t *testing.T) {
	desc, err := schema.Describe()
	require.NoError(t, err)

	assert.Contains(t, desc, "- name (string, required)")
	assert.Contains(t, desc, "- skills (list of strings, may be null, optional)")
	assert.Contains(t, desc, "- degrees (list of objects, may be null, optional)")
	assert.Contains(t, desc, "    - college_name (string, may be null, optional)")
	assert.Less(t, strings.Index(desc, "- name"), strings.Index(desc, "- total_exp"))
}
