package fs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/zerr"
)

// ResponseWriter implements ports.ResponseWriter. Responses are staged in a tmp
// directory next to the destination and renamed into place.
type ResponseWriter struct {
	attempts int
	delay    time.Duration
	rename   func(oldpath, newpath string) error
}

// NewResponseWriter creates a writer that retries the final rename attempts times
// with a linearly growing delay.
func NewResponseWriter(attempts int, delay time.Duration) *ResponseWriter {
	return &ResponseWriter{
		attempts: attempts,
		delay:    delay,
		rename:   os.Rename,
	}
}

// Write stages records as CSV and atomically renames them onto path.
func (w *ResponseWriter) Write(ctx context.Context, path string, records [][]string) error {
	staging := filepath.Join(filepath.Dir(path), domain.StagingDirName)
	if err := os.MkdirAll(staging, domain.DirPerm); err != nil {
		return writeError(err, "create staging directory", path)
	}

	tmp := filepath.Join(staging, uuid.NewString()+"-"+filepath.Base(path))
	if err := writeCSV(tmp, records); err != nil {
		_ = os.Remove(tmp)
		return writeError(err, "stage response", path)
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, w.rename(tmp, path)
	}, retryOptions(w.attempts, &linearBackOff{step: w.delay})...)
	if err != nil {
		_ = os.Remove(tmp)
		return zerr.With(writeError(err, "publish response", path), "attempts", w.attempts)
	}
	return nil
}

func writeCSV(path string, records [][]string) (err error) {
	// #nosec G304 -- staging path is built from a fresh uuid
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.FilePerm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	return f.Sync()
}

func writeError(err error, msg, path string) error {
	out := zerr.With(zerr.Wrap(domain.ErrResponseWrite, msg), "path", path)
	return zerr.With(out, "cause", err.Error())
}
