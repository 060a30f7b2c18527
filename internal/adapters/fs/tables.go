package fs

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/zerr"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReader implements ports.TableReader for comma separated files with a header row.
type CSVReader struct {
	now func() time.Time
}

// NewCSVReader creates a new CSVReader.
func NewCSVReader() *CSVReader {
	return &CSVReader{now: time.Now}
}

// Read loads the table stored at path. The table version is the load time.
func (r *CSVReader) Read(_ context.Context, path string) (*domain.DataTable, error) {
	loaded := r.now()

	// #nosec G304 -- table paths come from the project map
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tableError(err, "read data table", path)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.NewDataTable(filepath.Base(path), path, nil, nil, loaded), nil
	}
	if err != nil {
		return nil, tableError(err, "parse data table header", path)
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, tableError(err, "parse data table", path)
	}
	return domain.NewDataTable(filepath.Base(path), path, header, rows, loaded), nil
}

// Version returns the modification time of the table file.
func (r *CSVReader) Version(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, tableError(err, "stat data table", path)
	}
	return info.ModTime(), nil
}

func tableError(err error, msg, path string) error {
	out := zerr.With(zerr.Wrap(domain.ErrTableLoad, msg), "path", path)
	return zerr.With(out, "cause", err.Error())
}
