package llm

import (
	"encoding/json"
	"strings"

	"go-resume-backend/internal/domain"
)

const fence = "```"

// StripCodeFence removes one surrounding markdown code fence, with or without
// a language tag. Text that is not fenced is returned trimmed.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text
	}

	body := strings.TrimPrefix(text, fence)
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		tag := strings.TrimSpace(body[:nl])
		if tag == "" || isLanguageTag(tag) {
			body = body[nl+1:]
		}
	}
	if idx := strings.LastIndex(body, fence); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

func isLanguageTag(s string) bool {
	if len(s) > 16 {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

// ParseCompletion decodes a completion into a JSON object. Only a surrounding
// code fence is tolerated; prose around the object, arrays and scalars are
// rejected with *domain.LLMParseError.
func ParseCompletion(completion string) (map[string]any, error) {
	cleaned := StripCodeFence(completion)
	if cleaned == "" {
		return nil, &domain.LLMParseError{Message: "empty completion", Raw: completion}
	}

	var decoded any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, &domain.LLMParseError{Message: "completion is not valid JSON", Raw: completion, Cause: err}
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, &domain.LLMParseError{Message: "completion is not a JSON object", Raw: completion}
	}
	return obj, nil
}
