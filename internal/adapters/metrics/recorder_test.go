package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tri/internal/adapters/metrics"
	"go.trai.ch/tri/internal/core/ports"
)

func TestRecorder_Requests(t *testing.T) {
	r := metrics.NewRecorder()
	r.RequestHandled("ADASTri", ports.OutcomeOK, 20*time.Millisecond)
	r.RequestHandled("ADASTri", ports.OutcomeOK, 30*time.Millisecond)
	r.RequestHandled("", ports.OutcomeDropped, time.Millisecond)

	expected := `
# HELP tri_requests_total Requests handled by function and outcome
# TYPE tri_requests_total counter
tri_requests_total{function="ADASTri",outcome="ok"} 2
tri_requests_total{function="unknown",outcome="dropped"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "tri_requests_total"))

	n, err := testutil.GatherAndCount(r.Gatherer(), "tri_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecorder_CacheAndBeats(t *testing.T) {
	r := metrics.NewRecorder()
	r.CacheAccess("tables", ports.CacheMiss)
	r.CacheAccess("tables", ports.CacheHit)
	r.CacheAccess("tables", ports.CacheHit)
	r.Beat()

	expected := `
# HELP tri_cache_events_total Cache store interactions by store and event
# TYPE tri_cache_events_total counter
tri_cache_events_total{event="hit",store="tables"} 2
tri_cache_events_total{event="miss",store="tables"} 1
# HELP tri_heartbeats_total Heartbeats of the liveness loop
# TYPE tri_heartbeats_total counter
tri_heartbeats_total 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected),
		"tri_cache_events_total", "tri_heartbeats_total"))
}

func TestRecorder_Flush(t *testing.T) {
	r := metrics.NewRecorder()
	require.NoError(t, r.Flush(), "flush without a textfile is a no-op")

	path := filepath.Join(t.TempDir(), "tri.prom")
	r.SetTextfile(path)
	r.Beat()
	require.NoError(t, r.Flush())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "tri_heartbeats_total 1")
}

func TestRecorder_FlushFailure(t *testing.T) {
	r := metrics.NewRecorder()
	r.SetTextfile(filepath.Join(t.TempDir(), "missing", "tri.prom"))
	assert.Error(t, r.Flush())
}
