// Package settings resolves the date window of a project.
package settings

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
)

// Fallback is the date window used when neither configuration nor data provide one.
var Fallback = domain.ProjectSettings{
	OriginStart: 201701,
	OriginEnd:   202612,
	DevEnd:      202601,
}

// Sample is the optional data a window can be derived from.
type Sample struct {
	Table  *domain.DataTable
	Schema domain.Schema
}

// Resolver memoizes the date window of each project for the process lifetime.
// The first resolution of a project wins.
type Resolver struct {
	files  ports.ProjectFiles
	logger ports.Logger

	mu    sync.Mutex
	cache map[string]domain.ProjectSettings
}

// NewResolver creates a Resolver reading explicit settings through files.
func NewResolver(files ports.ProjectFiles, logger ports.Logger) *Resolver {
	return &Resolver{
		files:  files,
		logger: logger,
		cache:  make(map[string]domain.ProjectSettings),
	}
}

// Resolve returns the window of project, preferring the project's general settings
// file, then the data sample, then Fallback.
func (r *Resolver) Resolve(ctx context.Context, project string, sample *Sample) domain.ProjectSettings {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.cache[project]; ok {
		return s
	}

	s, source := r.resolve(ctx, project, sample)
	r.logger.Debug(fmt.Sprintf("project %s settings from %s: origin %d-%d, dev end %d",
		project, source, s.OriginStart, s.OriginEnd, s.DevEnd))
	r.cache[project] = s
	return s
}

func (r *Resolver) resolve(ctx context.Context, project string, sample *Sample) (domain.ProjectSettings, string) {
	s, err := r.files.GeneralSettings(ctx, project)
	if err == nil {
		return s, "configuration"
	}
	r.logger.Debug(fmt.Sprintf("project %s has no usable general settings: %v", project, err))

	if sample != nil && sample.Table != nil {
		if s, ok := derive(sample); ok {
			return s, "data"
		}
	}
	return Fallback, "defaults"
}

func derive(sample *Sample) (domain.ProjectSettings, bool) {
	originMin, originMax, ok := columnRange(sample.Table, sample.Schema.OriginColumn)
	if !ok {
		return domain.ProjectSettings{}, false
	}
	_, devMax, ok := columnRange(sample.Table, sample.Schema.DevelopmentColumn)
	if !ok {
		return domain.ProjectSettings{}, false
	}
	return domain.ProjectSettings{OriginStart: originMin, OriginEnd: originMax, DevEnd: devMax}, true
}

func columnRange(t *domain.DataTable, column string) (lo, hi domain.Month, ok bool) {
	c, found := t.Column(column)
	if !found {
		return 0, 0, false
	}
	for i := range t.Len() {
		m, err := domain.ParseMonth(t.Cell(i, c))
		if err != nil {
			continue
		}
		if !ok || m < lo {
			lo = m
		}
		if !ok || m > hi {
			hi = m
		}
		ok = true
	}
	return lo, hi, ok
}
