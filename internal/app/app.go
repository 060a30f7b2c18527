// Package app implements the application layer for tri.
package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"runtime"

	"go.trai.ch/tri/internal/adapters/cache"     //nolint:depguard // Wired in app layer
	"go.trai.ch/tri/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tri/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/tri/internal/adapters/heartbeat" //nolint:depguard // Wired in app layer
	"go.trai.ch/tri/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
	"go.trai.ch/tri/internal/engine/handler"
	"go.trai.ch/tri/internal/engine/settings"
	"go.trai.ch/tri/internal/engine/triangle"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// LogControl is implemented by loggers whose output can be tuned at runtime.
type LogControl interface {
	SetJSON(enable bool)
	SetLevel(name string) error
}

// MetricsExporter is the metrics recorder as the app drives it.
type MetricsExporter interface {
	ports.Metrics
	SetTextfile(path string)
}

// App represents the main application logic.
type App struct {
	configs ports.ConfigLoader
	watcher ports.Watcher
	metrics MetricsExporter
	tracer  ports.Tracer
	logger  ports.Logger
}

// New creates a new App instance.
func New(
	configs ports.ConfigLoader,
	watcher ports.Watcher,
	metrics MetricsExporter,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configs: configs,
		watcher: watcher,
		metrics: metrics,
		tracer:  tracer,
		logger:  log,
	}
}

// Options select the agent configuration.
type Options struct {
	// Root is the project root. Empty means the root named by the config file.
	Root string
	// ConfigPath is the agent config file. Empty means <root>/tri.yaml.
	ConfigPath string
	// JSON forces JSON log output.
	JSON bool
}

// agent is the request pipeline built from one configuration.
type agent struct {
	cfg     *domain.Config
	catalog *cache.ProjectMapStore
	handler *handler.Handler
}

// load reads the configuration, applies its logging options and builds the agent.
func (a *App) load(opts Options) (*agent, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	cfg, err := a.configs.Load(root, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if lc, ok := a.logger.(LogControl); ok {
		if opts.JSON {
			lc.SetJSON(true)
		}
		if err := lc.SetLevel(cfg.LogLevel); err != nil {
			a.logger.Warn(fmt.Sprintf("log level %q ignored", cfg.LogLevel))
		}
	}
	a.metrics.SetTextfile(cfg.MetricsTextfile)

	files := config.NewProjectFiles(cfg)
	catalog := cache.NewProjectMapStore(files, a.metrics, a.logger)
	builder := triangle.NewBuilder(triangle.Options{
		Div0AsZero:      cfg.Div0AsZero,
		ExposureMeasure: cfg.ExposureMeasure,
		ExposureLevel:   cfg.ExposureLevel,
	}, a.tracer, a.logger)

	return &agent{
		cfg:     cfg,
		catalog: catalog,
		handler: handler.New(
			fs.NewRequestReader(cfg.ReadAttempts, cfg.ReadDelay),
			fs.NewResponseWriter(cfg.WriteAttempts, cfg.WriteDelay),
			catalog,
			cache.NewVPSStore(files, a.metrics, a.logger),
			cache.NewTableStore(fs.NewCSVReader(), a.metrics, a.logger, cfg.MaxTables),
			settings.NewResolver(files, a.logger),
			builder,
			a.metrics,
			a.tracer,
			a.logger,
		),
	}, nil
}

// Serve runs the agent until ctx ends, its liveness file is removed or the
// configuration requests a kill.
func (a *App) Serve(ctx context.Context, opts Options) error {
	ag, err := a.load(opts)
	if err != nil {
		return err
	}

	shutdown := telemetry.Setup(telemetry.NewBridge(a.logger))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	beat := heartbeat.New(ag.cfg, a.configs, ag.catalog, a.metrics, a.logger)

	g, gctx := errgroup.WithContext(ctx)

	if err := a.watcher.Start(gctx, ag.cfg.Inbox); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()
	a.logger.Info(fmt.Sprintf("watching %s", ag.cfg.Inbox))

	// Heartbeat Routine
	g.Go(func() error {
		return beat.Run(gctx)
	})

	// Request Routine
	g.Go(func() error {
		return a.dispatch(gctx, ag.handler)
	})

	err = g.Wait()
	switch {
	case errors.Is(err, domain.ErrLivenessLost):
		a.logger.Info(fmt.Sprintf("liveness file of %s removed, stopping", beat.ID()))
		return nil
	case errors.Is(err, domain.ErrKillRequested):
		a.logger.Info("kill requested, stopping")
		return nil
	default:
		return err
	}
}

// dispatch hands every request that appears in the inbox to h. Requests for
// different projects run concurrently.
func (a *App) dispatch(ctx context.Context, h *handler.Handler) error {
	var requests errgroup.Group
	requests.SetLimit(runtime.NumCPU())

	for event := range a.watcher.Events() {
		if event.Operation != ports.OpCreate {
			continue
		}
		requests.Go(func() error {
			a.handle(ctx, h, event.Path)
			return nil
		})
	}
	return requests.Wait()
}

// handle processes one request. The agent outlives any single bad request.
func (a *App) handle(ctx context.Context, h *handler.Handler, path string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error(zerr.With(zerr.New("request handler panicked"), "panic", fmt.Sprint(r)))
		}
	}()

	if err := h.Handle(ctx, path); err != nil {
		a.logger.Error(err)
	}
}

// Process handles the single request file at path without watching the inbox.
func (a *App) Process(ctx context.Context, path string, opts Options) error {
	ag, err := a.load(opts)
	if err != nil {
		return err
	}
	return ag.handler.Handle(ctx, path)
}

// Headers writes the labels of a header request as one CSV row to w.
func (a *App) Headers(ctx context.Context, w io.Writer, req domain.HeadersRequest, opts Options) error {
	ag, err := a.load(opts)
	if err != nil {
		return err
	}
	rows, err := ag.handler.Headers(ctx, req)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return zerr.Wrap(err, "write headers")
	}
	return nil
}
