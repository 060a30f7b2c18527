package domain

import "time"

// Config is the resolved agent configuration. Every path is absolute.
type Config struct {
	// Path is the configuration file the values were read from, if any.
	Path string

	Root        string
	Inbox       string
	Instances   string
	ProjectMap  string
	ProjectsDir string

	HeartbeatInterval time.Duration
	KillAll           bool
	LogLevel          string

	MaxTables int

	ReadAttempts  int
	ReadDelay     time.Duration
	WriteAttempts int
	WriteDelay    time.Duration

	Div0AsZero      bool
	ExposureMeasure string
	ExposureLevel   int

	MetricsTextfile string
}
