package domain

import "context"

// UploadedFile is one document of an upload batch
type UploadedFile struct {
	Filename string
	MIMEType string
	Data     []byte
}

// IngestResult reports the outcome of a batch. CandidateIDs keeps submission
// order; Errors holds one "<filename>: <message>" entry per failed file.
type IngestResult struct {
	CandidateIDs []int64  `json:"processed_files"`
	Errors       []string `json:"errors"`
}

// DocumentExtractor turns raw bytes of a declared format into plain text
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

// ProfileExtractor turns resume text into the raw JSON object produced by the LLM
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, resumeText string) (map[string]any, error)
}

// ProfileNormalizer validates and canonicalizes a raw profile
type ProfileNormalizer interface {
	Normalize(raw map[string]any) (*Candidate, error)
}

// UploadScanner rejects malicious files before they are parsed
type UploadScanner interface {
	Scan(ctx context.Context, filename string, data []byte) error
}

type IngestUsecase interface {
	IngestBatch(ctx context.Context, files []UploadedFile) (*IngestResult, error)
}
