package ports

import (
	"context"
	"time"

	"go.trai.ch/tri/internal/core/domain"
)

// ProjectFiles loads the JSON files describing projects.
//
//go:generate go run go.uber.org/mock/mockgen -source=project.go -destination=mocks/mock_project.go -package=mocks
type ProjectFiles interface {
	// ProjectMap loads the shared project map.
	ProjectMap(ctx context.Context) (*domain.ProjectMap, error)
	// ProjectMapVersion returns the modification time of the project map file.
	ProjectMapVersion() (time.Time, error)
	// VPS loads the virtual project settings of project.
	VPS(ctx context.Context, project string) (*domain.VPS, error)
	// VPSVersion returns the newest modification time of the project's settings files.
	VPSVersion(project string) (time.Time, error)
	// GeneralSettings loads the explicit date window of project.
	GeneralSettings(ctx context.Context, project string) (domain.ProjectSettings, error)
}

// TableReader reads raw data tables.
type TableReader interface {
	// Read loads the table stored at path.
	Read(ctx context.Context, path string) (*domain.DataTable, error)
	// Version returns the modification time of the table file.
	Version(path string) (time.Time, error)
}
