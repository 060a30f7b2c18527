package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tri/internal/adapters/config"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_Load_Defaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := newLoader(t).Load(root, "")
	require.NoError(t, err)

	assert.Empty(t, cfg.Path)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "requests"), cfg.Inbox)
	assert.Equal(t, filepath.Join(root, "instances"), cfg.Instances)
	assert.Equal(t, filepath.Join(root, "projects", "map.json"), cfg.ProjectMap)
	assert.Equal(t, filepath.Join(root, "projects"), cfg.ProjectsDir)
	assert.Equal(t, 5*time.Second, cfg.HeartbeatInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.MaxTables)
	assert.Equal(t, 50, cfg.ReadAttempts)
	assert.Equal(t, 20*time.Millisecond, cfg.ReadDelay)
	assert.Equal(t, 5, cfg.WriteAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.WriteDelay)
	assert.True(t, cfg.Div0AsZero)
	assert.Equal(t, "Earned_Exposure", cfg.ExposureMeasure)
	assert.Equal(t, 5, cfg.ExposureLevel)
	assert.Empty(t, cfg.MetricsTextfile)
	assert.False(t, cfg.KillAll)
}

func TestLoader_Load_File(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, domain.ConfigFileName, `
root: data
inbox: /srv/inbox
heartbeat_interval: 2s
log_level: debug
cache:
  max_tables: 3
io:
  write_attempts: 2
pipeline:
  div0_as_zero: false
  exposure_measure: EP
metrics:
  textfile: metrics/tri.prom
`)

	cfg, err := newLoader(t).Load(root, "")
	require.NoError(t, err)

	dataRoot := filepath.Join(root, "data")
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, dataRoot, cfg.Root)
	assert.Equal(t, "/srv/inbox", cfg.Inbox)
	assert.Equal(t, filepath.Join(dataRoot, "instances"), cfg.Instances)
	assert.Equal(t, 2*time.Second, cfg.HeartbeatInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.MaxTables)
	assert.Equal(t, 50, cfg.ReadAttempts, "unset fields keep their defaults")
	assert.Equal(t, 2, cfg.WriteAttempts)
	assert.False(t, cfg.Div0AsZero)
	assert.Equal(t, "EP", cfg.ExposureMeasure)
	assert.Equal(t, filepath.Join(dataRoot, "metrics", "tri.prom"), cfg.MetricsTextfile)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "")

	cfg, err := newLoader(t).Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxTables)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		sentinel  error
		wantField string
	}{
		{
			name:     "unknown field",
			content:  "inbxo: requests\n",
			sentinel: domain.ErrConfigInvalid,
		},
		{
			name:     "malformed yaml",
			content:  "cache: [\n",
			sentinel: domain.ErrConfigInvalid,
		},
		{
			name:      "bad log level",
			content:   "log_level: verbose\n",
			sentinel:  domain.ErrConfigInvalid,
			wantField: "log_level",
		},
		{
			name:      "zero table cap",
			content:   "cache:\n  max_tables: 0\n",
			sentinel:  domain.ErrConfigInvalid,
			wantField: "cache.max_tables",
		},
		{
			name:      "empty inbox",
			content:   "inbox: \"\"\n",
			sentinel:  domain.ErrConfigInvalid,
			wantField: "inbox",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			createFile(t, root, domain.ConfigFileName, tt.content)

			_, err := newLoader(t).Load(root, "")
			require.Error(t, err)
			require.ErrorIs(t, err, tt.sentinel)

			if tt.wantField != "" {
				var zErr *zerr.Error
				require.ErrorAs(t, err, &zErr)
				assert.Equal(t, tt.wantField, zErr.Metadata()["field"])
			}
		})
	}
}

func TestLoader_Load_ExplicitPathMustExist(t *testing.T) {
	root := t.TempDir()

	_, err := newLoader(t).Load(root, filepath.Join(root, "missing.yaml"))
	require.ErrorIs(t, err, domain.ErrConfigRead)
}

func TestLoader_KillRequested(t *testing.T) {
	root := t.TempDir()
	path := createFile(t, root, "agent.yaml", "kill_all: false\n")
	loader := newLoader(t)

	cfg, err := loader.Load(root, path)
	require.NoError(t, err)

	kill, err := loader.KillRequested(cfg)
	require.NoError(t, err)
	assert.False(t, kill)

	createFile(t, root, "agent.yaml", "kill_all: true\n")
	kill, err = loader.KillRequested(cfg)
	require.NoError(t, err)
	assert.True(t, kill)

	require.NoError(t, os.Remove(path))
	kill, err = loader.KillRequested(cfg)
	require.NoError(t, err)
	assert.False(t, kill)
}

func TestLoader_KillRequested_WithoutFile(t *testing.T) {
	kill, err := newLoader(t).KillRequested(&domain.Config{})
	require.NoError(t, err)
	assert.False(t, kill)
}
