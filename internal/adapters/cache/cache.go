// Package cache holds the agent's three in-memory stores: the project map,
// the per-project virtual settings and the raw data tables.
package cache

// Store names reported to ports.Metrics.
const (
	StoreProjectMap = "project_map"
	StoreVPS        = "vps"
	StoreTable      = "table"
)
