package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/zerr"
)

// claimInfix separates a request path from its claim suffix.
const claimInfix = ".claim-"

// RequestReader implements ports.RequestReader on the local filesystem.
type RequestReader struct {
	attempts int
	delay    time.Duration
	readFile func(name string) ([]byte, error)
	remove   func(name string) error
}

// NewRequestReader creates a reader that retries locked files attempts times, delay apart.
func NewRequestReader(attempts int, delay time.Duration) *RequestReader {
	return &RequestReader{
		attempts: attempts,
		delay:    delay,
		readFile: os.ReadFile,
		remove:   os.Remove,
	}
}

// Read returns the content of the request file. Permission errors are treated as a
// writer still holding the file and retried; any other failure is permanent.
func (r *RequestReader) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := backoff.Retry(ctx, func() ([]byte, error) {
		data, err := r.readFile(path)
		if err == nil {
			return data, nil
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, err
		}
		return nil, backoff.Permanent(zerr.With(zerr.With(
			zerr.Wrap(domain.ErrRequestParse, "read request"), "path", path), "cause", err.Error()))
	}, retryOptions(r.attempts, backoff.NewConstantBackOff(r.delay))...)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, domain.ErrRequestParse) || ctx.Err() != nil {
		return nil, err
	}
	return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrFileLock, "read request"), "path", path), "attempts", r.attempts)
}

// Claim renames the request to a name unique to this agent and removes it.
// A failed rename means another consumer already took the file. Once the rename
// succeeds the request belongs to this agent, so a leftover claim file is not an error.
func (r *RequestReader) Claim(_ context.Context, path string) error {
	claimed := path + claimInfix + uuid.NewString()
	if err := os.Rename(path, claimed); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrClaimFailed, "claim request"), "path", path), "cause", err.Error())
	}
	// The claim suffix keeps a leftover file out of the inbox scan.
	_ = r.remove(claimed)
	return nil
}
