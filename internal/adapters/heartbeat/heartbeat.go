// Package heartbeat keeps the liveness file of an agent instance current and
// watches for the signals that stop it.
package heartbeat

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	idTimeLayout   = "20060102150405"
	seenTimeLayout = "2006-01-02 15:04:05"
)

// InstanceID names an agent instance as host@user@timestamp.
func InstanceID(now time.Time) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	name := os.Getenv("USER")
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	if name == "" {
		name = "unknown"
	}
	// Domain accounts carry a DOMAIN\ prefix that is not valid in file names.
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}
	return fmt.Sprintf("%s@%s@%s", host, name, now.Format(idTimeLayout))
}

// Heartbeat owns the liveness file of one agent instance.
type Heartbeat struct {
	cfg     *domain.Config
	configs ports.ConfigLoader
	catalog ports.ProjectCatalog
	metrics ports.Metrics
	logger  ports.Logger
	now     func() time.Time

	id   string
	path string

	mu       sync.Mutex
	lastSeen time.Time
}

// New creates the heartbeat of a fresh instance.
func New(
	cfg *domain.Config,
	configs ports.ConfigLoader,
	catalog ports.ProjectCatalog,
	metrics ports.Metrics,
	logger ports.Logger,
) *Heartbeat {
	id := InstanceID(time.Now())
	return &Heartbeat{
		cfg:     cfg,
		configs: configs,
		catalog: catalog,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		id:      id,
		path:    filepath.Join(cfg.Instances, id+domain.RequestExt),
	}
}

// ID returns the instance id.
func (h *Heartbeat) ID() string {
	return h.id
}

// Path returns the liveness file of the instance.
func (h *Heartbeat) Path() string {
	return h.path
}

// LastSeen returns the time of the latest successful beat.
func (h *Heartbeat) LastSeen() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastSeen
}

// Run publishes the liveness file and beats every interval until ctx ends, the
// liveness file disappears or the configuration requests a kill. The liveness
// file is removed on return. Losing the file and a kill request are reported as
// domain.ErrLivenessLost and domain.ErrKillRequested.
func (h *Heartbeat) Run(ctx context.Context) error {
	if err := h.start(); err != nil {
		return err
	}
	defer h.remove()

	h.logger.Info(fmt.Sprintf("agent %s is live", h.id))

	ticker := time.NewTicker(h.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		if err := h.beat(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (h *Heartbeat) start() error {
	if err := os.MkdirAll(h.cfg.Instances, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "create instances directory"), "dir", h.cfg.Instances)
	}
	h.removeStale()
	return h.write()
}

// removeStale deletes liveness files last touched before today.
func (h *Heartbeat) removeStale() {
	entries, err := os.ReadDir(h.cfg.Instances)
	if err != nil {
		h.logger.Warn(fmt.Sprintf("list instances: %v", err))
		return
	}
	now := h.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(today) {
			continue
		}
		path := filepath.Join(h.cfg.Instances, e.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			h.logger.Warn(fmt.Sprintf("remove stale instance %s: %v", e.Name(), err))
			continue
		}
		h.logger.Debug(fmt.Sprintf("removed stale instance %s", e.Name()))
	}
}

func (h *Heartbeat) beat(ctx context.Context) error {
	if _, err := os.Stat(h.path); errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrLivenessLost, "check liveness file"), "path", h.path)
	}

	kill, err := h.configs.KillRequested(h.cfg)
	if err != nil {
		h.logger.Warn(fmt.Sprintf("read kill switch: %v", err))
	}
	if kill {
		return zerr.With(zerr.Wrap(domain.ErrKillRequested, "check kill switch"), "config", h.cfg.Path)
	}

	if err := h.write(); err != nil {
		h.logger.Error(err)
	}

	reloaded, err := h.catalog.Refresh(ctx)
	switch {
	case err != nil:
		h.logger.Warn(fmt.Sprintf("refresh project map: %v", err))
	case reloaded:
		h.logger.Info("project map updated")
	}

	h.metrics.Beat()
	if err := h.metrics.Flush(); err != nil {
		h.logger.Warn(fmt.Sprintf("export metrics: %v", err))
	}
	return nil
}

func (h *Heartbeat) write() error {
	seen := h.now()
	content := fmt.Sprintf("Server = %s\nLast seen = %s\n", h.id, seen.Format(seenTimeLayout))
	if err := os.WriteFile(h.path, []byte(content), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "write liveness file"), "path", h.path)
	}
	h.mu.Lock()
	h.lastSeen = seen
	h.mu.Unlock()
	return nil
}

func (h *Heartbeat) remove() {
	if err := os.Remove(h.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		h.logger.Warn(fmt.Sprintf("remove liveness file: %v", err))
	}
}
