package ports

import "go.trai.ch/tri/internal/core/domain"

// ConfigLoader reads the agent configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for the agent rooted at root. An empty path
	// selects the default file inside root; a missing default file yields the defaults.
	Load(root, path string) (*domain.Config, error)
	// KillRequested re-reads the kill switch from the file behind cfg.
	KillRequested(cfg *domain.Config) (bool, error)
}
