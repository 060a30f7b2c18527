// Package config provides the configuration loader for tri.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Loader{Logger: logger, validate: v}
}

// Load reads the agent configuration. An explicit path must exist; without one the
// loader looks for tri.yaml inside root and falls back to the defaults.
func (l *Loader) Load(root, path string) (*domain.Config, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigRead, "resolve root"), "cause", err.Error())
	}

	agentfile := Defaults()
	configPath := path
	if configPath == "" {
		configPath = filepath.Join(root, domain.ConfigFileName)
	}

	found, err := readAndUnmarshalYAML(configPath, &agentfile)
	switch {
	case err != nil:
		return nil, zerr.With(err, "path", configPath)
	case !found && path != "":
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigRead, "config file does not exist"), "path", configPath)
	case !found:
		l.Logger.Debug(fmt.Sprintf("no %s in %s, using defaults", domain.ConfigFileName, root))
		configPath = ""
	}

	if err := l.validate.Struct(agentfile); err != nil {
		return nil, invalid(err, configPath)
	}

	base := root
	if configPath != "" {
		base = resolveRoot(configPath, agentfile.Root)
	}
	return toConfig(configPath, base, &agentfile), nil
}

// KillRequested re-reads the kill_all flag from the file the configuration came from.
func (l *Loader) KillRequested(cfg *domain.Config) (bool, error) {
	if cfg == nil || cfg.Path == "" {
		return false, nil
	}
	agentfile := Defaults()
	found, err := readAndUnmarshalYAML(cfg.Path, &agentfile)
	if err != nil {
		return false, zerr.With(err, "path", cfg.Path)
	}
	return found && agentfile.KillAll, nil
}

func toConfig(configPath, root string, a *Agentfile) *domain.Config {
	return &domain.Config{
		Path:              configPath,
		Root:              root,
		Inbox:             resolvePath(root, a.Inbox),
		Instances:         resolvePath(root, a.Instances),
		ProjectMap:        resolvePath(root, a.ProjectMap),
		ProjectsDir:       resolvePath(root, a.ProjectsDir),
		HeartbeatInterval: a.HeartbeatInterval,
		KillAll:           a.KillAll,
		LogLevel:          a.LogLevel,
		MaxTables:         a.Cache.MaxTables,
		ReadAttempts:      a.IO.ReadAttempts,
		ReadDelay:         a.IO.ReadDelay,
		WriteAttempts:     a.IO.WriteAttempts,
		WriteDelay:        a.IO.WriteDelay,
		Div0AsZero:        a.Pipeline.Div0AsZero,
		ExposureMeasure:   a.Pipeline.ExposureMeasure,
		ExposureLevel:     a.Pipeline.ExposureLevel,
		MetricsTextfile:   optionalPath(root, a.Metrics.Textfile),
	}
}

func invalid(err error, configPath string) error {
	out := zerr.Wrap(domain.ErrConfigInvalid, "validate configuration")
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		// Namespace starts with the struct name, which means nothing to the user.
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		out = zerr.With(out, "field", field)
		out = zerr.With(out, "rule", fe.Tag())
	}
	if configPath != "" {
		out = zerr.With(out, "path", configPath)
	}
	return out
}

func resolveRoot(configPath, configuredRoot string) string {
	return resolvePath(filepath.Dir(configPath), configuredRoot)
}

func resolvePath(base, p string) string {
	if p == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}

func optionalPath(base, p string) string {
	if p == "" {
		return ""
	}
	return resolvePath(base, p)
}

// readAndUnmarshalYAML strictly decodes a YAML file over target.
// It reports false without an error when the file does not exist.
func readAndUnmarshalYAML[T any](configPath string, target *T) (bool, error) {
	// #nosec G304 -- configPath is chosen by the operator
	configFile, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(domain.ErrConfigRead, "read configuration"), "cause", err.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(configFile))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return false, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "parse configuration"), "cause", err.Error())
	}
	return true, nil
}
