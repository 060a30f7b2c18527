package config

import (
	"time"

	"go.trai.ch/tri/internal/engine/triangle"
)

// Agentfile represents the structure of the tri.yaml configuration file.
type Agentfile struct {
	Root              string        `yaml:"root"`
	Inbox             string        `yaml:"inbox" validate:"required"`
	Instances         string        `yaml:"instances" validate:"required"`
	ProjectMap        string        `yaml:"project_map" validate:"required"`
	ProjectsDir       string        `yaml:"projects_dir" validate:"required"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval" validate:"gt=0"`
	KillAll           bool          `yaml:"kill_all"`
	LogLevel          string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	Cache             CacheDTO      `yaml:"cache"`
	IO                IODTO         `yaml:"io"`
	Pipeline          PipelineDTO   `yaml:"pipeline"`
	Metrics           MetricsDTO    `yaml:"metrics"`
}

// CacheDTO bounds the in-memory caches.
type CacheDTO struct {
	MaxTables int `yaml:"max_tables" validate:"gte=1"`
}

// IODTO tunes the retry loops around request and response files.
type IODTO struct {
	ReadAttempts  int           `yaml:"read_attempts" validate:"gte=1"`
	ReadDelay     time.Duration `yaml:"read_delay" validate:"gte=0"`
	WriteAttempts int           `yaml:"write_attempts" validate:"gte=1"`
	WriteDelay    time.Duration `yaml:"write_delay" validate:"gte=0"`
}

// PipelineDTO tunes the triangle pipeline.
type PipelineDTO struct {
	Div0AsZero      bool   `yaml:"div0_as_zero"`
	ExposureMeasure string `yaml:"exposure_measure"`
	ExposureLevel   int    `yaml:"exposure_level" validate:"gte=1"`
}

// MetricsDTO configures the Prometheus textfile export.
type MetricsDTO struct {
	Textfile string `yaml:"textfile"`
}

// Defaults returns the configuration used for every field the file leaves out.
func Defaults() Agentfile {
	return Agentfile{
		Root:              ".",
		Inbox:             "requests",
		Instances:         "instances",
		ProjectMap:        "projects/map.json",
		ProjectsDir:       "projects",
		HeartbeatInterval: 5 * time.Second,
		LogLevel:          "info",
		Cache:             CacheDTO{MaxTables: 10},
		IO: IODTO{
			ReadAttempts:  50,
			ReadDelay:     20 * time.Millisecond,
			WriteAttempts: 5,
			WriteDelay:    100 * time.Millisecond,
		},
		Pipeline: PipelineDTO{
			Div0AsZero:      triangle.DefaultOptions.Div0AsZero,
			ExposureMeasure: triangle.DefaultOptions.ExposureMeasure,
			ExposureLevel:   triangle.DefaultOptions.ExposureLevel,
		},
	}
}
