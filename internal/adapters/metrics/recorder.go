// Package metrics records agent activity in a Prometheus registry.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/tri/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "tri"

// Recorder implements ports.Metrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cache    *prometheus.CounterVec
	beats    prometheus.Counter
	lastBeat prometheus.Gauge

	mu       sync.RWMutex
	textfile string
}

// NewRecorder creates a Recorder with its collectors registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests handled by function and outcome",
		}, []string{"function", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time from reading a request to publishing its response",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"function"}),
		cache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache store interactions by store and event",
		}, []string{"store", "event"}),
		beats: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "heartbeats_total",
			Help:      "Heartbeats of the liveness loop",
		}),
		lastBeat: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_heartbeat_timestamp_seconds",
			Help:      "Unix time of the latest heartbeat",
		}),
	}
}

// SetTextfile makes Flush write the registry to path in the node exporter textfile
// format. An empty path disables the export.
func (r *Recorder) SetTextfile(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textfile = path
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RequestHandled records one finished request.
func (r *Recorder) RequestHandled(function string, outcome ports.Outcome, elapsed time.Duration) {
	if function == "" {
		function = "unknown"
	}
	r.requests.WithLabelValues(function, string(outcome)).Inc()
	r.duration.WithLabelValues(function).Observe(elapsed.Seconds())
}

// CacheAccess records one interaction with the named store.
func (r *Recorder) CacheAccess(store string, event ports.CacheEvent) {
	r.cache.WithLabelValues(store, string(event)).Inc()
}

// Beat records one heartbeat.
func (r *Recorder) Beat() {
	r.beats.Inc()
	r.lastBeat.SetToCurrentTime()
}

// Flush writes the textfile when one is configured.
func (r *Recorder) Flush() error {
	r.mu.RLock()
	path := r.textfile
	r.mu.RUnlock()

	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics textfile"), "path", path)
	}
	return nil
}
