// Package watcher notifies the agent of request files dropped into the inbox.
package watcher

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements inbox watching using fsnotify. Only the inbox itself is
// watched, and only request files are reported.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	events    chan ports.WatchEvent
}

// NewWatcher creates a new inbox watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInboxWatch, "create watcher"), "cause", err.Error())
	}
	return &Watcher{
		fsWatcher: watcher,
		logger:    logger,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching dir. Request files already waiting in dir are reported
// as created before any live event. A file that lands between the watch and the
// scan is reported once.
func (w *Watcher) Start(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInboxWatch, "create inbox"), "dir", dir), "cause", err.Error())
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInboxWatch, "watch inbox"), "dir", dir), "cause", err.Error())
	}

	backlog, err := pending(dir)
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInboxWatch, "scan inbox"), "dir", dir), "cause", err.Error())
	}

	go w.processEvents(ctx, backlog)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of inbox events. It ends when the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// pending lists the request files present in dir, oldest name first.
func pending(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && isRequest(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)
	return paths, nil
}

func (w *Watcher) processEvents(ctx context.Context, backlog []string) {
	defer close(w.events)

	seen := newBacklog(backlog)
	for _, path := range backlog {
		if !w.send(ctx, ports.WatchEvent{Path: path, Operation: ports.OpCreate}) {
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := convertEvent(event)
			if watchEvent == nil || seen.duplicate(*watchEvent) {
				continue
			}
			if !w.send(ctx, *watchEvent) {
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("inbox watcher: %v", err))
		}
	}
}

func (w *Watcher) send(ctx context.Context, event ports.WatchEvent) bool {
	select {
	case w.events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

// backlog tracks scanned paths whose live create may still be queued.
type backlog map[string]struct{}

func newBacklog(paths []string) backlog {
	b := make(backlog, len(paths))
	for _, p := range paths {
		b[p] = struct{}{}
	}
	return b
}

// duplicate reports whether event is the live create of a path already sent
// from the scan. Any other event on the path ends its tracking.
func (b backlog) duplicate(event ports.WatchEvent) bool {
	if _, ok := b[event.Path]; !ok {
		return false
	}
	delete(b, event.Path)
	return event.Operation == ports.OpCreate
}

// convertEvent converts an fsnotify event on a request file to a ports.WatchEvent.
// A file moved into the inbox arrives as a create.
func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	if !isRequest(filepath.Base(event.Name)) {
		return nil
	}

	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return nil
	}
	return &ports.WatchEvent{Path: event.Name, Operation: op}
}

func isRequest(name string) bool {
	return strings.EqualFold(filepath.Ext(name), domain.RequestExt) && !strings.HasPrefix(name, ".")
}
