package cache

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
)

// VPSStore implements ports.VPSCache. An entry is reloaded when any of the
// project's settings files is newer than the entry.
type VPSStore struct {
	files   ports.ProjectFiles
	metrics ports.Metrics
	logger  ports.Logger

	mu      sync.RWMutex
	entries map[string]*domain.VPS
}

// NewVPSStore creates an empty store.
func NewVPSStore(files ports.ProjectFiles, metrics ports.Metrics, logger ports.Logger) *VPSStore {
	return &VPSStore{
		files:   files,
		metrics: metrics,
		logger:  logger,
		entries: make(map[string]*domain.VPS),
	}
}

// Get returns the settings of project, loading them if absent or stale.
func (s *VPSStore) Get(ctx context.Context, project string) (*domain.VPS, error) {
	version, err := s.files.VPSVersion(project)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	vps, ok := s.entries[project]
	s.mu.RUnlock()
	if ok && !version.After(vps.Version) {
		s.metrics.CacheAccess(StoreVPS, ports.CacheHit)
		return vps, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have reloaded it while we waited for the lock.
	vps, ok = s.entries[project]
	if ok && !version.After(vps.Version) {
		s.metrics.CacheAccess(StoreVPS, ports.CacheHit)
		return vps, nil
	}

	loaded, err := s.files.VPS(ctx, project)
	if err != nil {
		return nil, err
	}
	s.entries[project] = loaded

	event := ports.CacheMiss
	if ok {
		event = ports.CacheReload
	}
	s.metrics.CacheAccess(StoreVPS, event)
	s.logger.Info(fmt.Sprintf("loaded settings for project %s", project))
	return loaded, nil
}
