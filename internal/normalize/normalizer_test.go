package normalize_test

import (
	"strings"
	"testing"

	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/normalize"
	"go-resume-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer() *normalize.Normalizer {
	return normalize.NewNormalizer(validation.New())
}

func TestNormalizeSkillsDedup(t *testing.T) {
	n := newNormalizer()

	c, err := n.Normalize(map[string]any{
		"name":   "Jane Doe",
		"skills": []any{"Python", "python ", "PYTHON", "Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Go"}, c.Skills)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := newNormalizer()
	raw := map[string]any{
		"name":           "  Jane   Doe ",
		"skills":         []any{"Machine  Learning", "machine learning", " SQL", 42, "", "sql"},
		"certifications": []any{"AWS  SAA", "aws saa"},
		"total_exp":      "7.36",
	}

	first, err := n.Normalize(raw)
	require.NoError(t, err)

	again, err := n.Normalize(map[string]any{
		"name":           first.Name,
		"skills":         toAny(first.Skills),
		"certifications": toAny(first.Certifications),
		"total_exp":      first.TotalExp,
	})
	require.NoError(t, err)

	assert.Equal(t, first.Name, again.Name)
	assert.Equal(t, first.Skills, again.Skills)
	assert.Equal(t, first.Certifications, again.Certifications)
	assert.Equal(t, first.TotalExp, again.TotalExp)
	assert.Equal(t, []string{"Machine Learning", "SQL"}, first.Skills)
	assert.Equal(t, "Jane Doe", first.Name)
}

func TestNormalizeTotalExperience(t *testing.T) {
	n := newNormalizer()

	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"negative", float64(-5), 0},
		{"non numeric", "unknown", 0},
		{"rounds to one decimal", 7.36, 7.4},
		{"numeric string", " 3.25 ", 3.3},
		{"missing", nil, 0},
		{"zero", float64(0), 0},
		{"boolean", true, 0},
		{"object", map[string]any{"years": float64(5)}, 0},
		{"array", []any{float64(3)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"name": "Jane"}
			if tt.in != nil {
				raw["total_exp"] = tt.in
			}
			c, err := n.Normalize(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.TotalExp)
		})
	}

	t.Run("alias key", func(t *testing.T) {
		c, err := n.Normalize(map[string]any{"name": "Jane", "total_experience_years": float64(4)})
		require.NoError(t, err)
		assert.Equal(t, float64(4), c.TotalExp)
	})
}

func TestNormalizeRejectsInvalidProfiles(t *testing.T) {
	n := newNormalizer()

	tests := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{"nil profile", nil, ""},
		{"missing name", map[string]any{"email": "jane@example.com"}, ""},
		{"blank name", map[string]any{"name": "   "}, "name"},
		{"non string name", map[string]any{"name": float64(7)}, ""},
		{"overlong name", map[string]any{"name": strings.Repeat("a", 600)}, "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.raw)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			if tt.field != "" {
				assert.Equal(t, tt.field, verr.Field)
			}
		})
	}
}

func TestNormalizeScalarsAndNested(t *testing.T) {
	n := newNormalizer()

	c, err := n.Normalize(map[string]any{
		"name":         "Jane",
		"email":        " jane@example.com ",
		"phone":        float64(5551234567),
		"linkedin_url": "https://linkedin.com/in/jane",
		"city":         "",
		"degrees": []any{
			map[string]any{"college_name": " MIT ", "degree_name": "BSc", "passed_out_year": "2015"},
			map[string]any{"degree_name": "no college"},
			"not an object",
		},
		"experience": []any{
			map[string]any{"company_name": "Acme  Corp", "role": "Engineer", "total_years": 2.44},
			map[string]any{"company_name": "Initech"},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, c.Email)
	assert.Equal(t, "jane@example.com", *c.Email)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "5551234567", *c.Phone)
	require.NotNil(t, c.LinkedIn)
	assert.Equal(t, "https://linkedin.com/in/jane", *c.LinkedIn)
	assert.Nil(t, c.City)

	require.Len(t, c.Degrees, 1)
	assert.Equal(t, "MIT", c.Degrees[0].CollegeName)
	require.NotNil(t, c.Degrees[0].PassedOutYear)
	assert.Equal(t, 2015, *c.Degrees[0].PassedOutYear)

	require.Len(t, c.Experiences, 2)
	assert.Equal(t, "Acme Corp", c.Experiences[0].CompanyName)
	require.NotNil(t, c.Experiences[0].TotalYears)
	assert.Equal(t, 2.4, *c.Experiences[0].TotalYears)
	assert.Nil(t, c.Experiences[1].TotalYears)
}

func TestNormalizeCoercesMistypedOptionalFields(t *testing.T) {
	n := newNormalizer()

	c, err := n.Normalize(map[string]any{
		"name":           "Jane",
		"email":          false,
		"linkedin":       map[string]any{"url": "https://linkedin.com/in/jane"},
		"city":           []any{"Berlin"},
		"skills":         "Go, Rust;\nGO ,",
		"certifications": float64(3),
		"degrees":        map[string]any{"college_name": "MIT"},
		"experience":     "Acme",
	})
	require.NoError(t, err)

	assert.Nil(t, c.Email)
	assert.Nil(t, c.LinkedIn)
	assert.Nil(t, c.City)
	assert.Equal(t, []string{"Go", "Rust"}, c.Skills)
	assert.Empty(t, c.Certifications)
	require.Len(t, c.Degrees, 1)
	assert.Equal(t, "MIT", c.Degrees[0].CollegeName)
	assert.Empty(t, c.Experiences)
}

func TestNormalizeCollapsesCity(t *testing.T) {
	c, err := newNormalizer().Normalize(map[string]any{"name": "Jane", "city": "  New \t York "})
	require.NoError(t, err)

	require.NotNil(t, c.City)
	assert.Equal(t, "New York", *c.City)
}

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, normalize.CanonicalKey("Machine   Learning"), normalize.CanonicalKey(" machine learning"))
	assert.Equal(t, normalize.CanonicalKey("STRASSE"), normalize.CanonicalKey("strasse"))
	assert.NotEqual(t, normalize.CanonicalKey("Go"), normalize.CanonicalKey("Rust"))
}

func toAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
