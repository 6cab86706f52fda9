package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrResumeFileNotFound = errors.New("no resume file stored for candidate")
)

// UnsupportedFormatError is returned when the declared mime type is not PDF or DOCX.
type UnsupportedFormatError struct {
	MIMEType string
}

func (e *UnsupportedFormatError) Error() string {
	if e.MIMEType == "" {
		return "unsupported file format: unknown type"
	}
	return fmt.Sprintf("unsupported file format: %s", e.MIMEType)
}

// ExtractionError is returned when the bytes cannot be read as the declared format.
type ExtractionError struct {
	MIMEType string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("text extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// LLMInvocationError covers connectivity, timeout and rate-limit failures of the LLM call.
// Attempts counts the calls made before giving up.
type LLMInvocationError struct {
	Attempts int
	Cause    error
}

func (e *LLMInvocationError) Error() string {
	return fmt.Sprintf("llm invocation failed after %d attempt(s): %v", e.Attempts, e.Cause)
}

func (e *LLMInvocationError) Unwrap() error {
	return e.Cause
}

// LLMParseError is returned when the completion is not a JSON object. It is never retried.
type LLMParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *LLMParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm response parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm response parse error: %s", e.Message)
}

func (e *LLMParseError) Unwrap() error {
	return e.Cause
}

// ValidationError is returned when the parsed profile lacks a required field
// or has a structurally invalid shape.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// PersistenceError wraps a failure of the atomic candidate write.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error (%s): %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
