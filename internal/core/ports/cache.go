package ports

import (
	"context"

	"go.trai.ch/tri/internal/core/domain"
)

// ProjectCatalog serves the cached project map.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ProjectCatalog interface {
	// TablePath resolves project to its data table path.
	TablePath(ctx context.Context, project string) (string, error)
	// Refresh reloads the project map when its file changed. It reports whether a reload happened.
	Refresh(ctx context.Context) (bool, error)
}

// VPSCache serves per-project virtual settings, reloading stale entries.
type VPSCache interface {
	Get(ctx context.Context, project string) (*domain.VPS, error)
}

// TableCache serves raw data tables, reloading stale entries.
type TableCache interface {
	Get(ctx context.Context, path string) (*domain.DataTable, error)
}
