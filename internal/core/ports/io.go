package ports

import "context"

// RequestReader reads and claims inbox request files.
//
//go:generate go run go.uber.org/mock/mockgen -source=io.go -destination=mocks/mock_io.go -package=mocks
type RequestReader interface {
	// Read returns the content of the request file, retrying while it is locked.
	Read(ctx context.Context, path string) ([]byte, error)
	// Claim takes exclusive ownership of the request file and removes it.
	// It fails when another consumer claimed it first.
	Claim(ctx context.Context, path string) error
}

// ResponseWriter publishes response files.
type ResponseWriter interface {
	// Write stages records as CSV and atomically renames them onto path.
	Write(ctx context.Context, path string, records [][]string) error
}
