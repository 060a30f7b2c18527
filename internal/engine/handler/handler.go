// Package handler turns inbox request files into response files.
package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
	"go.trai.ch/tri/internal/engine/settings"
	"go.trai.ch/tri/internal/engine/triangle"
	"go.trai.ch/zerr"
)

// Handler processes one request file at a time. It is safe for concurrent use.
type Handler struct {
	reader   ports.RequestReader
	writer   ports.ResponseWriter
	catalog  ports.ProjectCatalog
	vps      ports.VPSCache
	tables   ports.TableCache
	settings *settings.Resolver
	builder  *triangle.Builder
	metrics  ports.Metrics
	tracer   ports.Tracer
	logger   ports.Logger
}

// New creates a Handler with the given dependencies.
func New(
	reader ports.RequestReader,
	writer ports.ResponseWriter,
	catalog ports.ProjectCatalog,
	vps ports.VPSCache,
	tables ports.TableCache,
	resolver *settings.Resolver,
	builder *triangle.Builder,
	metrics ports.Metrics,
	tracer ports.Tracer,
	logger ports.Logger,
) *Handler {
	return &Handler{
		reader:   reader,
		writer:   writer,
		catalog:  catalog,
		vps:      vps,
		tables:   tables,
		settings: resolver,
		builder:  builder,
		metrics:  metrics,
		tracer:   tracer,
		logger:   logger,
	}
}

// Handle processes the request file at path. Requests that cannot be read or parsed
// are left for another consumer. Every claimed request ends with a response file;
// the returned error reports only a response that could not be published.
func (h *Handler) Handle(ctx context.Context, path string) error {
	start := time.Now()

	content, err := h.reader.Read(ctx, path)
	if err != nil {
		h.logger.Debug(fmt.Sprintf("request %s left for another agent: %v", path, err))
		h.metrics.RequestHandled("", ports.OutcomeDropped, time.Since(start))
		return nil
	}
	req, err := domain.ParseRequest(content)
	if err != nil {
		h.logger.Debug(fmt.Sprintf("request %s left for another agent: %v", path, err))
		h.metrics.RequestHandled("", ports.OutcomeDropped, time.Since(start))
		return nil
	}

	id := Fingerprint(content)
	ctx, span := h.tracer.Start(ctx, "request",
		ports.WithAttribute("request.id", id),
		ports.WithAttribute("request.function", string(req.Function())),
		ports.WithAttribute("request.project", req.ProjectName()))
	defer span.End()

	outcome, err := h.serve(ctx, path, id, req)
	span.SetAttribute("request.outcome", string(outcome))
	if err != nil {
		span.RecordError(err)
	}
	h.metrics.RequestHandled(string(req.Function()), outcome, time.Since(start))
	return err
}

func (h *Handler) serve(ctx context.Context, path, id string, req *domain.Request) (ports.Outcome, error) {
	project := req.ProjectName()

	tablePath, err := h.catalog.TablePath(ctx, project)
	if err != nil {
		return h.fail(ctx, req, err)
	}

	if err := h.reader.Claim(ctx, path); err != nil {
		h.logger.Debug(fmt.Sprintf("request %s claimed by another agent", id))
		return ports.OutcomeDropped, nil
	}

	user := req.UserName()
	if user == "" {
		user = "unknown"
	}
	h.logger.Info(fmt.Sprintf("request %s: %s on %s from %s", id, req.Function(), project, user))

	records, err := h.dispatch(ctx, req, tablePath)
	if err != nil {
		return h.fail(ctx, req, err)
	}
	if err := h.writer.Write(ctx, req.DataPath(), records); err != nil {
		return ports.OutcomeSentinel, err
	}
	h.logger.Debug(fmt.Sprintf("request %s completed", id))
	return ports.OutcomeOK, nil
}

// fail publishes the error row for err.
func (h *Handler) fail(ctx context.Context, req *domain.Request, err error) (ports.Outcome, error) {
	rows, descriptive := domain.ErrorRow(err)
	outcome := ports.OutcomeErrorRow
	if descriptive {
		h.logger.Warn(fmt.Sprintf("%s on %s: %s", req.Function(), req.ProjectName(), rows[0][0]))
	} else {
		outcome = ports.OutcomeSentinel
		h.logger.Error(err)
	}

	if werr := h.writer.Write(ctx, req.DataPath(), rows); werr != nil {
		return outcome, werr
	}
	return outcome, nil
}

// dispatch runs the requested function. A panic is converted into an error so the
// client still receives the generic sentinel.
func (h *Handler) dispatch(ctx context.Context, req *domain.Request, tablePath string) (records [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = zerr.With(zerr.New("request handling panicked"), "panic", fmt.Sprint(r))
		}
	}()

	switch req.Function() {
	case domain.FunctionTriangle, domain.FunctionVector:
		return h.triangle(ctx, req, tablePath)
	case domain.FunctionHeaders:
		return h.headers(ctx, req, tablePath)
	case domain.FunctionProjectSettings:
		return h.projectSettings(ctx, req, tablePath)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFunction, "dispatch request"), "function", string(req.Function()))
	}
}

// project loads everything a function needs about one project.
type project struct {
	vps    *domain.VPS
	table  *domain.DataTable
	window domain.ProjectSettings
}

func (h *Handler) load(ctx context.Context, name, tablePath string) (*project, error) {
	vps, err := h.vps.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	table, err := h.tables.Get(ctx, tablePath)
	if err != nil {
		return nil, err
	}

	sample := &settings.Sample{Table: table}
	if schema, err := vps.Schema(); err == nil {
		sample.Schema = schema
	} else {
		sample = nil
	}
	return &project{
		vps:    vps,
		table:  table,
		window: h.settings.Resolve(ctx, name, sample),
	}, nil
}

func (h *Handler) triangle(ctx context.Context, req *domain.Request, tablePath string) ([][]string, error) {
	treq, err := req.Triangle()
	if err != nil {
		return nil, err
	}
	p, err := h.load(ctx, treq.Project, tablePath)
	if err != nil {
		return nil, err
	}

	m, err := h.builder.Build(ctx, triangle.Input{
		Request:  treq,
		Table:    p.table,
		VPS:      p.vps,
		Settings: p.window,
	})
	if err != nil {
		return nil, err
	}
	return m.Records(), nil
}

func (h *Handler) headers(ctx context.Context, req *domain.Request, tablePath string) ([][]string, error) {
	hreq, err := req.Headers()
	if err != nil {
		return nil, err
	}
	return h.headerRows(ctx, hreq, tablePath)
}

// Headers returns the labels a header request for req.Project would receive.
func (h *Handler) Headers(ctx context.Context, req domain.HeadersRequest) ([][]string, error) {
	tablePath, err := h.catalog.TablePath(ctx, req.Project)
	if err != nil {
		return nil, err
	}
	return h.headerRows(ctx, req, tablePath)
}

func (h *Handler) headerRows(ctx context.Context, req domain.HeadersRequest, tablePath string) ([][]string, error) {
	p, err := h.load(ctx, req.Project, tablePath)
	if err != nil {
		return nil, err
	}
	return triangle.Headers(p.window, req)
}

func (h *Handler) projectSettings(ctx context.Context, req *domain.Request, tablePath string) ([][]string, error) {
	sreq, err := req.Settings()
	if err != nil {
		return nil, err
	}
	p, err := h.load(ctx, sreq.Project, tablePath)
	if err != nil {
		return nil, err
	}
	return SettingsRows(sreq.Project, p.window), nil
}

// SettingsRows renders the resolved window of project as name/value rows.
func SettingsRows(project string, s domain.ProjectSettings) [][]string {
	const day = "2006-01-02"
	return [][]string{
		{"Name", project},
		{"Origin Type", "Accident"},
		{"Origin Start Date", s.OriginStart.FirstDay().Format(day)},
		{"Origin End Date", s.OriginEnd.LastDay().Format(day)},
		{"Development End Date", s.DevEnd.LastDay().Format(day)},
		{"Origin Length", "12"},
		{"Development Length", "12"},
		{"Folder", "ADAS Virtual Project"},
	}
}

// Fingerprint identifies a request by its content for log and trace correlation.
func Fingerprint(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}
