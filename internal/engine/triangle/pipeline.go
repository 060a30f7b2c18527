// Package triangle aggregates raw transaction rows into development triangles.
package triangle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
	"go.trai.ch/tri/internal/engine/formula"
	"go.trai.ch/tri/internal/engine/hierarchy"
	"go.trai.ch/zerr"
)

// Options tune the pipeline.
type Options struct {
	// Div0AsZero replaces division results that are not finite with 0.
	Div0AsZero bool
	// ExposureMeasure is the measure zeroed for adjusted categories.
	ExposureMeasure string
	// ExposureLevel is the 1-based hierarchy level whose adjusted set applies.
	ExposureLevel int
}

// DefaultOptions match the reserving workbook conventions.
var DefaultOptions = Options{
	Div0AsZero:      true,
	ExposureMeasure: "Earned_Exposure",
	ExposureLevel:   5,
}

// Input is everything one triangle build reads.
type Input struct {
	Request  domain.TriangleRequest
	Table    *domain.DataTable
	VPS      *domain.VPS
	Settings domain.ProjectSettings
}

// Builder runs the aggregation pipeline.
type Builder struct {
	opts   Options
	tracer ports.Tracer
	logger ports.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options, tracer ports.Tracer, logger ports.Logger) *Builder {
	return &Builder{opts: opts, tracer: tracer, logger: logger}
}

// plan is the resolved shape of one build.
type plan struct {
	dataset  domain.DatasetType
	expr     *formula.Expr
	schema   domain.Schema
	levels   []hierarchy.Level
	periods  *Periods
	measures []string

	originCol   int
	devCol      int
	levelCols   []int
	measureCols []int
	exposure    int
}

// Build produces the output matrix for in.
func (b *Builder) Build(ctx context.Context, in Input) (*domain.Matrix, error) {
	ctx, span := b.tracer.Start(ctx, "triangle.build",
		ports.WithAttribute("dataset", in.Request.Dataset),
		ports.WithAttribute("table", in.Table.Name))
	defer span.End()

	p, err := b.plan(in)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	sums, err := b.aggregate(ctx, in, p)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	rows, cols := p.periods.OriginLabels(), p.periods.DevLabels()
	// Vectors stay constant across development age.
	for name, m := range sums {
		if in.Request.Cumulative {
			cumulate(m)
		}
		if in.VPS.FormatOf(name) == domain.FormatVector {
			broadcastFirstColumn(m)
		}
	}

	out, err := p.expr.Eval(sums, rows, cols, formula.Options{Div0AsZero: b.opts.Div0AsZero})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	for i, row := range out.Values {
		for j := p.periods.Observed(i); j < len(row); j++ {
			row[j] = domain.Missing
		}
	}

	if p.dataset.Format == domain.FormatVector || in.Request.Vector {
		out = out.FirstColumn()
	}
	span.SetAttribute("rows", len(out.Rows))
	span.SetAttribute("cols", len(out.Cols))
	return out, nil
}

func (b *Builder) plan(in Input) (*plan, error) {
	p := &plan{exposure: -1}

	var err error
	if p.dataset, err = in.VPS.Dataset(in.Request.Dataset); err != nil {
		return nil, err
	}
	if p.expr, err = formula.Compile(p.dataset.Source); err != nil {
		return nil, err
	}
	if p.schema, err = in.VPS.Schema(); err != nil {
		return nil, err
	}
	if p.levels, err = hierarchy.Resolve(in.Request.Path, p.schema.ClassColumns, in.VPS); err != nil {
		return nil, err
	}
	if p.periods, err = NewPeriods(in.Settings, in.Request.OriginLength, in.Request.DevelopmentLength); err != nil {
		return nil, err
	}

	if p.originCol, err = column(in.Table, p.schema.OriginColumn); err != nil {
		return nil, err
	}
	if p.devCol, err = column(in.Table, p.schema.DevelopmentColumn); err != nil {
		return nil, err
	}
	for _, l := range p.levels {
		c, err := column(in.Table, l.Column)
		if err != nil {
			return nil, err
		}
		p.levelCols = append(p.levelCols, c)
	}

	p.measures = p.expr.Names()
	for i, name := range p.measures {
		c, err := column(in.Table, name)
		if err != nil {
			return nil, err
		}
		p.measureCols = append(p.measureCols, c)
		if name == b.opts.ExposureMeasure && b.opts.ExposureLevel >= 1 && b.opts.ExposureLevel <= len(p.levels) {
			p.exposure = i
		}
	}
	return p, nil
}

func column(t *domain.DataTable, name string) (int, error) {
	c, ok := t.Column(name)
	if !ok {
		return 0, zerr.With(zerr.With(zerr.Wrap(domain.ErrMissingColumn, "resolve data column"), domain.KeyName, name), "table", t.Name)
	}
	return c, nil
}

// aggregate filters, adjusts and buckets every row, summing measures per cell.
func (b *Builder) aggregate(ctx context.Context, in Input, p *plan) (map[string]*domain.Matrix, error) {
	_, span := b.tracer.Start(ctx, "triangle.aggregate")
	defer span.End()

	rows, cols := p.periods.OriginLabels(), p.periods.DevLabels()
	sums := make(map[string]*domain.Matrix, len(p.measures))
	for _, name := range p.measures {
		sums[name] = domain.NewMatrix(rows, cols)
	}

	var kept, outside int
	t := in.Table
rows:
	for r := range t.Len() {
		for i, l := range p.levels {
			if !l.Includes(t.Cell(r, p.levelCols[i])) {
				continue rows
			}
		}

		origin, err := domain.ParseMonth(t.Cell(r, p.originCol))
		if err != nil {
			return nil, zerr.With(err, "row", r+1)
		}
		dev, err := domain.ParseMonth(t.Cell(r, p.devCol))
		if err != nil {
			return nil, zerr.With(err, "row", r+1)
		}

		o, ok := p.periods.Bucket(origin)
		if !ok {
			outside++
			continue
		}
		d, ok := p.periods.AgeIndex(domain.Age(p.periods.Origins[o].Start, dev))
		if !ok {
			outside++
			continue
		}

		sign := 1.0
		for i, l := range p.levels {
			if l.Excludes(t.Cell(r, p.levelCols[i])) {
				sign = -sign
			}
		}
		zeroExposure := p.exposure >= 0 &&
			p.levels[b.opts.ExposureLevel-1].Adjusts(t.Cell(r, p.levelCols[b.opts.ExposureLevel-1]))

		for k, name := range p.measures {
			v, err := measure(t.Cell(r, p.measureCols[k]))
			if err != nil {
				return nil, zerr.With(zerr.With(err, "row", r+1), "column", name)
			}
			v *= sign
			if zeroExposure && k == p.exposure {
				v *= 0
			}
			sums[name].Values[o][d] += v
		}
		kept++
	}

	span.SetAttribute("rows_kept", kept)
	if outside > 0 {
		b.logger.Debug(fmt.Sprintf("%d rows of %s fall outside the project window", outside, t.Name))
	}
	return sums, nil
}

func measure(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "non-numeric measure value"), "value", cell)
	}
	return v, nil
}

func cumulate(m *domain.Matrix) {
	for _, row := range m.Values {
		for j := 1; j < len(row); j++ {
			row[j] += row[j-1]
		}
	}
}

func broadcastFirstColumn(m *domain.Matrix) {
	for _, row := range m.Values {
		for j := 1; j < len(row); j++ {
			row[j] = row[0]
		}
	}
}
