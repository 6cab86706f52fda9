package security

import (
	"bytes"
	"path/filepath"
	"strings"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Magic byte signatures for accepted document types, keyed by mime type
var magicBytes = map[string][][]byte{
	mimePDF:  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	mimeDOCX: {{0x50, 0x4B, 0x03, 0x04}}, // ZIP (PK..)
}

// Extension whitelist mapped to the mime type it declares
var extensionTypes = map[string]string{
	".pdf":  mimePDF,
	".docx": mimeDOCX,
}

// MatchesSignature reports whether data starts with one of the magic byte
// prefixes registered for mimeType. Unknown types never match.
func MatchesSignature(mimeType string, data []byte) bool {
	signatures, ok := magicBytes[mimeType]
	if !ok {
		return false
	}
	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// TypeForFilename returns the mime type declared by the filename extension,
// or "" when the extension is not whitelisted.
func TypeForFilename(filename string) string {
	return extensionTypes[strings.ToLower(filepath.Ext(filename))]
}

// ExtensionForType is the inverse of TypeForFilename
func ExtensionForType(mimeType string) string {
	for ext, t := range extensionTypes {
		if t == mimeType {
			return ext
		}
	}
	return ""
}

// SanitizeFilename strips any directory component and control characters from
// a client supplied filename.
func SanitizeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
