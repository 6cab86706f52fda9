package antivirus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
)

// clamdClient is the subset of *clamd.Clamd used by ClamdScanner
type clamdClient interface {
	Ping() error
	ScanStream(r io.Reader, abort chan bool) (chan *clamd.ScanResult, error)
}

// ClamdScanner streams files to a clamd daemon with INSTREAM
type ClamdScanner struct {
	client  clamdClient
	timeout time.Duration
}

var _ Scanner = (*ClamdScanner)(nil)

// NewClamdScanner accepts "tcp://host:3310", "host:3310" or a unix socket path.
func NewClamdScanner(address string, timeout time.Duration) *ClamdScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamdScanner{client: clamd.NewClamd(clamdAddress(address)), timeout: timeout}
}

func clamdAddress(address string) string {
	switch {
	case strings.Contains(address, "://"):
		return address
	case strings.HasPrefix(address, "/"):
		return "unix://" + address
	default:
		return "tcp://" + address
	}
}

// Ping checks that the daemon answers
func (s *ClamdScanner) Ping(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- s.client.Ping() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("clamd ping: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Scan fails closed: daemon errors and timeouts reject the file.
func (s *ClamdScanner) Scan(ctx context.Context, filename string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	abort := make(chan bool)
	defer close(abort)

	results, err := s.client.ScanStream(bytes.NewReader(data), abort)
	if err != nil {
		return fmt.Errorf("malware scan unavailable: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("malware scan interrupted: %w", ctx.Err())
		case res, ok := <-results:
			if !ok {
				return nil
			}
			switch res.Status {
			case clamd.RES_OK:
			case clamd.RES_FOUND:
				return &ThreatError{Filename: filename, Threat: res.Description}
			default:
				return fmt.Errorf("malware scan failed: %s", strings.TrimSpace(res.Raw))
			}
		}
	}
}
