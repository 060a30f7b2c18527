package watcher

import (
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/tri/internal/core/ports"
)

// ConvertEvent exposes convertEvent for testing.
func ConvertEvent(event fsnotify.Event) *ports.WatchEvent {
	return convertEvent(event)
}

// Backlog exposes the scan deduplication for testing.
type Backlog = backlog

// NewBacklog exposes newBacklog for testing.
func NewBacklog(paths []string) Backlog {
	return newBacklog(paths)
}

// Duplicate exposes backlog.duplicate for testing.
func (b Backlog) Duplicate(event ports.WatchEvent) bool {
	return b.duplicate(event)
}
