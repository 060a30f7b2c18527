package triangle_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tri/internal/adapters/telemetry"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports/mocks"
	"go.trai.ch/tri/internal/engine/triangle"
	"go.uber.org/mock/gomock"
)

var nan = math.NaN()

func vps() *domain.VPS {
	return &domain.VPS{
		Project: "Motor",
		Columns: []domain.SourceColumn{
			{Name: "AccMonth", Significance: domain.SignificanceOrigin},
			{Name: "ValMonth", Significance: domain.SignificanceDevelopment},
			{Name: "LOB", Significance: domain.SignificanceReservingClass, Level: 1},
			{Name: "Paid", Significance: "Measure"},
		},
		Datasets: []domain.DatasetType{
			{Name: "Both", Source: "A + B", Format: domain.FormatTriangle},
			{Name: "Paid", Source: "Paid", Format: domain.FormatTriangle},
			{Name: "Premium", Source: "EP", Format: domain.FormatVector},
			{Name: "Loss Ratio", Source: "LR = Paid / EP", Format: domain.FormatTriangle},
			{Name: "Broken", Source: "Incurred", Format: domain.FormatTriangle},
		},
		Classes: []domain.ReservingClassType{
			{Name: "Net", Formula: "Gross - Ceded", EEXFormula: "Gross"},
			{Name: "Gross"},
			{Name: "Ceded"},
		},
	}
}

func table(rows ...[]string) *domain.DataTable {
	return domain.NewDataTable("motor.csv", "/data/motor.csv",
		[]string{"AccMonth", "ValMonth", "LOB", "Paid", "EP", "A", "B"},
		rows, time.Now())
}

func newBuilder(t *testing.T, opts triangle.Options) *triangle.Builder {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return triangle.NewBuilder(opts, telemetry.NewNoOpTracer(), log)
}

func request(dataset string, org, dev int) domain.TriangleRequest {
	return domain.TriangleRequest{Project: "Motor", Dataset: dataset, OriginLength: org, DevelopmentLength: dev}
}

func assertMatrix(t *testing.T, want, got *domain.Matrix) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("matrix mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SingleOriginBucket(t *testing.T) {
	b := newBuilder(t, triangle.DefaultOptions)

	got, err := b.Build(context.Background(), triangle.Input{
		Request:  request("Both", 12, 12),
		Table:    table([]string{"201703", "201712", "Gross", "0", "0", "1", "1"}),
		VPS:      vps(),
		Settings: window(201701, 201712, 201712),
	})
	require.NoError(t, err)

	assertMatrix(t, &domain.Matrix{
		Rows:   []string{"2017"},
		Cols:   []string{"12m"},
		Values: [][]float64{{2}},
	}, got)
}

func yearlyRows() *domain.DataTable {
	return table(
		[]string{"201701", "201703", "Gross", "1", "10", "0", "0"},
		[]string{"201702", "201805", "Gross", "2", "0", "0", "0"},
		[]string{"201803", "201806", "Gross", "4", "20", "0", "0"},
		[]string{"201901", "201902", "Gross", "100", "0", "0", "0"},
	)
}

func TestBuild_IncrementalAndCumulative(t *testing.T) {
	b := newBuilder(t, triangle.DefaultOptions)
	in := triangle.Input{
		Request:  request("Paid", 12, 12),
		Table:    yearlyRows(),
		VPS:      vps(),
		Settings: window(201701, 201812, 201812),
	}

	got, err := b.Build(context.Background(), in)
	require.NoError(t, err)
	assertMatrix(t, &domain.Matrix{
		Rows:   []string{"2017", "2018"},
		Cols:   []string{"12m", "24m"},
		Values: [][]float64{{1, 2}, {4, nan}},
	}, got)

	in.Request.Cumulative = true
	got, err = b.Build(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "3"}, {"4", ""}}, got.Records())
}

func TestBuild_Idempotent(t *testing.T) {
	b := newBuilder(t, triangle.DefaultOptions)
	in := triangle.Input{
		Request:  request("Paid", 12, 12),
		Table:    yearlyRows(),
		VPS:      vps(),
		Settings: window(201701, 201812, 201812),
	}

	first, err := b.Build(context.Background(), in)
	require.NoError(t, err)
	second, err := b.Build(context.Background(), in)
	require.NoError(t, err)
	assertMatrix(t, first, second)
}

func TestBuild_VectorDataset(t *testing.T) {
	b := newBuilder(t, triangle.DefaultOptions)

	got, err := b.Build(context.Background(), triangle.Input{
		Request:  request("Premium", 12, 12),
		Table:    yearlyRows(),
		VPS:      vps(),
		Settings: window(201701, 201812, 201812),
	})
	require.NoError(t, err)
	assertMatrix(t, &domain.Matrix{
		Rows:   []string{"2017", "2018"},
		Cols:   []string{"12m"},
		Values: [][]float64{{10}, {20}},
	}, got)
}

func TestBuild_VectorRequest(t *testing.T) {
	b := newBuilder(t, triangle.DefaultOptions)
	req := request("Paid", 12, 12)
	req.Vector = true

	got, err := b.Build(context.Background(), triangle.Input{
		Request:  req,
		Table:    yearlyRows(),
		VPS:      vps(),
		Settings: window(201701, 201812, 201812),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"12m"}, got.Cols)
	assert.Equal(t, [][]float64{{1}, {4}}, got.Values)
}

func TestBuild_VectorMeasureBroadcastsIntoFormula(t *testing.T) {
	b := newBuilder(t, triangle.DefaultOptions)

	got, err := b.Build(context.Background(), triangle.Input{
		Request: request("Loss Ratio", 12, 12),
		Table: table(
			[]string{"201701", "201703", "Gross", "5", "10", "0", "0"},
			[]string{"201701", "201805", "Gross", "2", "0", "0", "0"},
			[]string{"201803", "201806", "Gross", "4", "0", "0", "0"},
		),
		VPS:      vps(),
		Settings: window(201701, 201812, 201812),
	})
	require.NoError(t, err)

	// The 2018 premium is zero, so its ratio is a division by zero.
	assertMatrix(t, &domain.Matrix{
		Rows:   []string{"2017", "2018"},
		Cols:   []string{"12m", "24m"},
		Values: [][]float64{{0.5, 0.2}, {0, nan}},
	}, got)
}

func TestBuild_CumulativeKeepsVectorConstant(t *testing.T) {
	b := newBuilder(t, triangle.DefaultOptions)
	req := request("Loss Ratio", 12, 12)
	req.Cumulative = true

	got, err := b.Build(context.Background(), triangle.Input{
		Request:  req,
		Table:    yearlyRows(),
		VPS:      vps(),
		Settings: window(201701, 201812, 201812),
	})
	require.NoError(t, err)

	// Paid accumulates to 1 then 3 while the 2017 premium stays 10.
	assertMatrix(t, &domain.Matrix{
		Rows:   []string{"2017", "2018"},
		Cols:   []string{"12m", "24m"},
		Values: [][]float64{{0.1, 0.3}, {0.2, nan}},
	}, got)
}

func TestBuild_HierarchySignAndExposure(t *testing.T) {
	opts := triangle.DefaultOptions
	opts.ExposureMeasure = "EP"
	opts.ExposureLevel = 1
	b := newBuilder(t, opts)

	rows := table(
		[]string{"201701", "201712", "Gross", "10", "100", "0", "0"},
		[]string{"201701", "201712", "Ceded", "3", "30", "0", "0"},
		[]string{"201701", "201712", "Other", "1000", "1000", "0", "0"},
	)
	in := triangle.Input{
		Table:    rows,
		VPS:      vps(),
		Settings: window(201701, 201712, 201712),
	}

	in.Request = request("Paid", 12, 12)
	in.Request.Path = "net"
	paid, err := b.Build(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{7}}, paid.Values)

	in.Request.Dataset = "Premium"
	premium, err := b.Build(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{100}}, premium.Values)
}

func TestBuild_RowsOutsideWindowAreDropped(t *testing.T) {
	b := newBuilder(t, triangle.DefaultOptions)

	got, err := b.Build(context.Background(), triangle.Input{
		Request: request("Paid", 12, 12),
		Table: table(
			[]string{"201612", "201701", "Gross", "7", "0", "0", "0"},
			[]string{"201701", "201901", "Gross", "9", "0", "0", "0"},
			[]string{"201701", "201701", "Gross", "1", "0", "0", "0"},
		),
		VPS:      vps(),
		Settings: window(201701, 201712, 201712),
	})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1}}, got.Values)
}

func TestBuild_Failures(t *testing.T) {
	tests := []struct {
		name     string
		dataset  string
		path     string
		sentinel error
		key      string
	}{
		{"unknown dataset", "Reported", "", domain.ErrUnknownDataset, "Reported"},
		{"unknown category", "Paid", "Marine", domain.ErrUnknownCategory, "Marine"},
		{"missing measure column", "Broken", "", domain.ErrMissingColumn, "Incurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder(t, triangle.DefaultOptions)
			req := request(tt.dataset, 12, 12)
			req.Path = tt.path

			_, err := b.Build(context.Background(), triangle.Input{
				Request:  req,
				Table:    yearlyRows(),
				VPS:      vps(),
				Settings: window(201701, 201812, 201812),
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.Equal(t, tt.key, domain.NameOf(err))
		})
	}
}

func TestBuild_InvalidMonth(t *testing.T) {
	b := newBuilder(t, triangle.DefaultOptions)

	_, err := b.Build(context.Background(), triangle.Input{
		Request:  request("Paid", 12, 12),
		Table:    table([]string{"someday", "201712", "Gross", "1", "0", "0", "0"}),
		VPS:      vps(),
		Settings: window(201701, 201712, 201712),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidMonth))
}
