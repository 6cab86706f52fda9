// Package document converts uploaded resume files into plain text.
package document

import (
	"bytes"
	"context"
	"io"
	"mime"
	"strings"

	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/security"

	"code.sajari.com/docconv"
)

// ConvertFunc converts a document stream into its body text
type ConvertFunc func(r io.Reader) (string, map[string]string, error)

// Extractor dispatches on the declared mime type. PDF conversion shells out to
// pdftotext (poppler-utils), so the binary must be present in the runtime image.
type Extractor struct {
	converters map[string]ConvertFunc
}

var _ domain.DocumentExtractor = (*Extractor)(nil)

func NewExtractor() *Extractor {
	return NewExtractorWithConverters(map[string]ConvertFunc{
		domain.MIMETypePDF:  docconv.ConvertPDF,
		domain.MIMETypeDOCX: docconv.ConvertDocx,
	})
}

// NewExtractorWithConverters builds an extractor over a custom converter table.
// Types missing from the table are reported as unsupported.
func NewExtractorWithConverters(converters map[string]ConvertFunc) *Extractor {
	table := make(map[string]ConvertFunc, len(converters))
	for mimeType, fn := range converters {
		table[mimeType] = fn
	}
	return &Extractor{converters: table}
}

// Extract returns the trimmed text of data. A document that parses but holds no
// text yields "" and a nil error.
func (e *Extractor) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	convert, ok := e.converters[mimeType]
	if !ok {
		return "", &domain.UnsupportedFormatError{MIMEType: mimeType}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", &domain.ExtractionError{MIMEType: mimeType, Message: "file is empty"}
	}
	if !security.MatchesSignature(mimeType, data) {
		return "", &domain.ExtractionError{MIMEType: mimeType, Message: "file content does not match declared type"}
	}

	body, _, err := convert(bytes.NewReader(data))
	if err != nil {
		return "", &domain.ExtractionError{MIMEType: mimeType, Message: "could not parse document", Cause: err}
	}
	return strings.TrimSpace(body), nil
}

// DeclaredType resolves the declared mime type of an uploaded part. A specific
// Content-Type header wins; an empty or generic header falls back to the
// filename extension. Unknown inputs return the header value unchanged so the
// extractor can report it.
func DeclaredType(filename, headerType string) string {
	mediaType := strings.TrimSpace(headerType)
	if parsed, _, err := mime.ParseMediaType(headerType); err == nil {
		mediaType = parsed
	}

	switch mediaType {
	case domain.MIMETypePDF, domain.MIMETypeDOCX:
		return mediaType
	case "", "application/octet-stream", "binary/octet-stream", "application/zip":
		if byExt := security.TypeForFilename(filename); byExt != "" {
			return byExt
		}
	}
	return mediaType
}
