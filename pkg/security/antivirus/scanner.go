package antivirus

import (
	"context"
	"errors"
	"fmt"
)

// ErrInfected is matched by every ThreatError
var ErrInfected = errors.New("malware detected")

// ThreatError rejects a file the scanner flagged
type ThreatError struct {
	Filename string
	Threat   string
}

func (e *ThreatError) Error() string {
	if e.Threat == "" {
		return "file rejected by malware scan"
	}
	return fmt.Sprintf("file rejected by malware scan: %s", e.Threat)
}

func (e *ThreatError) Is(target error) bool {
	return target == ErrInfected
}

// Scanner checks an uploaded document before it is parsed. Scan returns nil
// for clean files, a *ThreatError for infected ones and any other error when
// the scan could not complete; callers treat both errors as a rejection.
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) error
	Ping(ctx context.Context) error
}
