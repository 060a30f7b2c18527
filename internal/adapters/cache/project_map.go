package cache

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
	"go.trai.ch/zerr"
)

// ProjectMapStore implements ports.ProjectCatalog. The map is replaced wholesale on reload.
type ProjectMapStore struct {
	files   ports.ProjectFiles
	metrics ports.Metrics
	logger  ports.Logger

	mu      sync.RWMutex
	current *domain.ProjectMap
}

// NewProjectMapStore creates an empty store; the map is loaded on first use.
func NewProjectMapStore(files ports.ProjectFiles, metrics ports.Metrics, logger ports.Logger) *ProjectMapStore {
	return &ProjectMapStore{
		files:   files,
		metrics: metrics,
		logger:  logger,
	}
}

// TablePath resolves project to its data table path.
func (s *ProjectMapStore) TablePath(ctx context.Context, project string) (string, error) {
	m, err := s.get(ctx)
	if err != nil {
		return "", err
	}
	path, ok := m.TablePath(project)
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownProject, "lookup project"), domain.KeyName, project)
	}
	return path, nil
}

// Refresh reloads the map when its file was modified after the last load.
func (s *ProjectMapStore) Refresh(ctx context.Context) (bool, error) {
	mtime, err := s.files.ProjectMapVersion()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !mtime.After(s.current.Version) {
		return false, nil
	}
	event := ports.CacheReload
	if s.current == nil {
		event = ports.CacheMiss
	}
	if err := s.loadLocked(ctx); err != nil {
		return false, err
	}
	s.metrics.CacheAccess(StoreProjectMap, event)
	return true, nil
}

func (s *ProjectMapStore) get(ctx context.Context) (*domain.ProjectMap, error) {
	s.mu.RLock()
	m := s.current
	s.mu.RUnlock()
	if m != nil {
		s.metrics.CacheAccess(StoreProjectMap, ports.CacheHit)
		return m, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		if err := s.loadLocked(ctx); err != nil {
			return nil, err
		}
		s.metrics.CacheAccess(StoreProjectMap, ports.CacheMiss)
	}
	return s.current, nil
}

func (s *ProjectMapStore) loadLocked(ctx context.Context) error {
	m, err := s.files.ProjectMap(ctx)
	if err != nil {
		return err
	}
	s.current = m
	s.logger.Info(fmt.Sprintf("loaded project map with %d projects", len(m.Names)))
	return nil
}
