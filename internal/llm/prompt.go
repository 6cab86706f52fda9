// Package llm turns resume text into a raw profile object through a language model.
package llm

import (
	"strings"
	"sync"

	"go-resume-backend/internal/schema"
)

const instructions = `You are a resume parser. Read the resume below and extract the candidate profile.
Copy values as written in the resume; do not invent, translate or summarize.
Use null for any field the resume does not state. Lists must not repeat an entry.
total_exp is the total professional experience in years as a number with one decimal.`

var schemaFields = sync.OnceValues(schema.Describe)

// BuildPrompt returns the self-contained extraction prompt for one document
func BuildPrompt(resumeText string) string {
	var sb strings.Builder

	sb.WriteString(instructions)
	sb.WriteString("\n\nTarget schema: ")
	sb.WriteString(schema.Version)
	sb.WriteString("\nFields:\n")
	if fields, err := schemaFields(); err == nil {
		sb.WriteString(fields)
	} else {
		sb.WriteString(schema.Raw())
		sb.WriteString("\n")
	}

	sb.WriteString("\nReturn ONLY one JSON object with these fields. No markdown, no explanation.\n\n")
	sb.WriteString("Resume:\n\"\"\"\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}
