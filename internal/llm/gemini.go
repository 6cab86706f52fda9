package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

var ErrEmptyCompletion = errors.New("gemini api returned empty response")

// contentGenerator is the subset of genai.Models used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiCompleter asks Gemini for a JSON completion at low temperature.
type GeminiCompleter struct {
	models contentGenerator
	model  string
}

var _ Completer = (*GeminiCompleter)(nil)

func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGeminiCompleter(client.Models, model), nil
}

func newGeminiCompleter(models contentGenerator, model string) *GeminiCompleter {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &GeminiCompleter{models: models, model: model}
}

func (g *GeminiCompleter) Model() string {
	return g.model
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1),
		ResponseMIMEType: "application/json",
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			sb.WriteString(part.Text)
		}
		// only the first candidate with content is used
		if sb.Len() > 0 {
			break
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
