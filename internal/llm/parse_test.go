package llm

import (
	"testing"

	"go-resume-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"unfenced", "  {\"a\":1}  ", `{"a":1}`},
		{"fence without newline", "```{\"a\":1}```", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestParseCompletion(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		obj, err := ParseCompletion(`{"name": "Jane", "skills": ["Go"]}`)
		require.NoError(t, err)
		assert.Equal(t, "Jane", obj["name"])
	})

	rejects := map[string]string{
		"prose around object": `Sure! {"name": "Jane"}`,
		"array":               `[{"name": "Jane"}]`,
		"scalar":              `"Jane"`,
		"empty":               "   ",
		"truncated":           `{"name": "Ja`,
	}
	for name, in := range rejects {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCompletion(in)
			var parseErr *domain.LLMParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Jane Doe\nGo developer")

	assert.Contains(t, prompt, "candidate-profile/v1")
	assert.Contains(t, prompt, "- name (string, required)")
	assert.Contains(t, prompt, "Jane Doe\nGo developer")
}
