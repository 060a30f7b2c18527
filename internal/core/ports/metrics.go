package ports

import "time"

// Outcome classifies how a request ended.
type Outcome string

const (
	// OutcomeOK means a result was published.
	OutcomeOK Outcome = "ok"
	// OutcomeErrorRow means a descriptive error row was published.
	OutcomeErrorRow Outcome = "error_row"
	// OutcomeSentinel means an unexpected failure published the generic sentinel.
	OutcomeSentinel Outcome = "sentinel"
	// OutcomeDropped means the request was left for another consumer.
	OutcomeDropped Outcome = "dropped"
)

// CacheEvent classifies a cache store interaction.
type CacheEvent string

const (
	// CacheHit means a fresh entry was served.
	CacheHit CacheEvent = "hit"
	// CacheMiss means the entry was absent and got loaded.
	CacheMiss CacheEvent = "miss"
	// CacheReload means a stale entry was replaced.
	CacheReload CacheEvent = "reload"
	// CacheEvict means an entry was dropped to make room.
	CacheEvict CacheEvent = "evict"
)

// Metrics records agent activity.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// RequestHandled records one finished request.
	RequestHandled(function string, outcome Outcome, elapsed time.Duration)
	// CacheAccess records one interaction with the named store.
	CacheAccess(store string, event CacheEvent)
	// Beat records one heartbeat of the liveness loop.
	Beat()
	// Flush exports the current values, if an export target is configured.
	Flush() error
}
