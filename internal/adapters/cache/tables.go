package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxTables is the number of data tables kept in memory.
const DefaultMaxTables = 10

type tableEntry struct {
	table  *domain.DataTable
	loaded time.Time
}

// TableStore implements ports.TableCache. Tables are keyed by file basename and
// evicted in insertion order once the cap is reached.
type TableStore struct {
	reader  ports.TableReader
	metrics ports.Metrics
	logger  ports.Logger
	max     int
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]tableEntry
	order   []string

	loads singleflight.Group
}

// NewTableStore creates an empty store holding at most maxTables tables.
func NewTableStore(
	reader ports.TableReader,
	metrics ports.Metrics,
	logger ports.Logger,
	maxTables int,
) *TableStore {
	if maxTables < 1 {
		maxTables = DefaultMaxTables
	}
	return &TableStore{
		reader:  reader,
		metrics: metrics,
		logger:  logger,
		max:     maxTables,
		now:     time.Now,
		entries: make(map[string]tableEntry),
	}
}

// Get returns the table stored at path, loading it if absent or modified since it was loaded.
func (s *TableStore) Get(ctx context.Context, path string) (*domain.DataTable, error) {
	key := filepath.Base(path)
	mtime, err := s.reader.Version(path)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok && e.table.Path == path && !mtime.After(e.loaded) {
		s.metrics.CacheAccess(StoreTable, ports.CacheHit)
		return e.table, nil
	}

	v, err, _ := s.loads.Do(key, func() (any, error) {
		s.mu.RLock()
		e, ok := s.entries[key]
		s.mu.RUnlock()
		if ok && e.table.Path == path && !mtime.After(e.loaded) {
			s.metrics.CacheAccess(StoreTable, ports.CacheHit)
			return e.table, nil
		}

		// Stamp before reading so a write racing the read triggers another reload.
		loaded := s.now()
		s.logger.Info(fmt.Sprintf("loading data table %s", key))
		table, err := s.reader.Read(ctx, path)
		if err != nil {
			return nil, err
		}
		s.insert(key, tableEntry{table: table, loaded: loaded}, ok)
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.DataTable), nil
}

// Keys returns the cached table keys, oldest first.
func (s *TableStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

func (s *TableStore) insert(key string, e tableEntry, stale bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, present := s.entries[key]; !present {
		for len(s.order) >= s.max {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.entries, oldest)
			s.metrics.CacheAccess(StoreTable, ports.CacheEvict)
			s.logger.Debug(fmt.Sprintf("evicted data table %s", oldest))
		}
		s.order = append(s.order, key)
	}
	s.entries[key] = e

	if stale {
		s.metrics.CacheAccess(StoreTable, ports.CacheReload)
	} else {
		s.metrics.CacheAccess(StoreTable, ports.CacheMiss)
	}
}
