package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tri/internal/adapters/metrics"
	"go.trai.ch/tri/internal/adapters/telemetry"
	"go.trai.ch/tri/internal/adapters/watcher"
	"go.trai.ch/tri/internal/app"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
	"go.trai.ch/tri/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const settingsDump = "Name,Motor\n" +
	"Origin Type,Accident\n" +
	"Origin Start Date,2017-01-01\n" +
	"Origin End Date,2018-12-31\n" +
	"Development End Date,2018-12-31\n" +
	"Origin Length,12\n" +
	"Development Length,12\n" +
	"Folder,ADAS Virtual Project\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// projectRoot lays out a root holding the Motor project.
func projectRoot(t *testing.T) *domain.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &domain.Config{
		Root:              root,
		Inbox:             filepath.Join(root, "requests"),
		Instances:         filepath.Join(root, "instances"),
		ProjectMap:        filepath.Join(root, "projects", "map.json"),
		ProjectsDir:       filepath.Join(root, "projects"),
		HeartbeatInterval: 20 * time.Millisecond,
		LogLevel:          "info",
		MaxTables:         10,
		ReadAttempts:      3,
		ReadDelay:         time.Millisecond,
		WriteAttempts:     3,
		WriteDelay:        time.Millisecond,
		Div0AsZero:        true,
		ExposureMeasure:   "Earned_Exposure",
		ExposureLevel:     5,
	}

	writeFile(t, cfg.ProjectMap, `{"Virtual Projects": {
		"headers": ["Project Name", "Table Path"],
		"rows": [["Motor", "data/motor.csv"]]
	}}`)
	dir := filepath.Join(cfg.ProjectsDir, "Motor")
	writeFile(t, filepath.Join(dir, domain.FieldMappingFile), `[
		{"field_name": "AccMonth", "significance": "Origin Date", "level": ""},
		{"field_name": "ValMonth", "significance": "Development Date", "level": ""},
		{"field_name": "LOB", "significance": "Reserving Class", "level": 1},
		{"field_name": "Paid", "significance": "Measure", "level": ""}
	]`)
	writeFile(t, filepath.Join(dir, domain.DatasetTypesFile), `[{"Name": "Paid", "Source": "Paid", "Data Format": "Triangle"}]`)
	writeFile(t, filepath.Join(dir, domain.ReservingClassTypesFile), `[{"Name": "Gross", "Formula": "", "EEX Formula": ""}]`)
	writeFile(t, filepath.Join(dir, domain.GeneralSettingsFile), `{
		"origin_start_date": "201701", "origin_end_date": "Dec 2018", "development_end_date": "2018-12"
	}`)
	writeFile(t, filepath.Join(root, "data", "motor.csv"),
		"AccMonth,ValMonth,LOB,Paid\n201701,201703,Gross,1\n201702,201805,Gross,2\n201803,201806,Gross,4\n")
	return cfg
}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func newApp(t *testing.T, cfg *domain.Config, w ports.Watcher) (*app.App, *mocks.MockConfigLoader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	configs := mocks.NewMockConfigLoader(ctrl)
	configs.EXPECT().Load(gomock.Any(), gomock.Any()).Return(cfg, nil).AnyTimes()
	log := quietLogger(ctrl)
	if w == nil {
		w = mocks.NewMockWatcher(ctrl)
	}
	return app.New(configs, w, metrics.NewRecorder(), telemetry.NewNoOpTracer(), log), configs
}

func requestFile(t *testing.T, dir, name, output string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	writeFile(t, path, "Function = ADASProjectSettings\nProjectName = Motor\nDataPath = "+output+"\n")
	return path
}

func TestApp_Process(t *testing.T) {
	cfg := projectRoot(t)
	a, _ := newApp(t, cfg, nil)
	output := filepath.Join(cfg.Root, "out", "settings.csv")
	req := requestFile(t, filepath.Join(cfg.Root, "adhoc"), "req.txt", output)

	require.NoError(t, a.Process(context.Background(), req, app.Options{Root: cfg.Root}))

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, settingsDump, string(got))
	assert.NoFileExists(t, req)
}

func TestApp_Process_UnknownProject(t *testing.T) {
	cfg := projectRoot(t)
	a, _ := newApp(t, cfg, nil)
	output := filepath.Join(cfg.Root, "out", "settings.csv")
	req := filepath.Join(cfg.Root, "adhoc", "req.txt")
	writeFile(t, req, "Function = ADASTri\nProjectName = Home\nDataPath = "+output+"\n")

	require.NoError(t, a.Process(context.Background(), req, app.Options{Root: cfg.Root}))

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "(project not found: Home)\n", string(got))
	assert.FileExists(t, req)
}

func TestApp_Process_ConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)
	configs := mocks.NewMockConfigLoader(ctrl)
	configs.EXPECT().Load(".", "missing.yaml").Return(nil, domain.ErrConfigRead)
	a := app.New(configs, mocks.NewMockWatcher(ctrl), metrics.NewRecorder(), telemetry.NewNoOpTracer(), quietLogger(ctrl))

	err := a.Process(context.Background(), "req.txt", app.Options{ConfigPath: "missing.yaml"})

	require.ErrorIs(t, err, domain.ErrConfigRead)
}

func TestApp_Headers(t *testing.T) {
	cfg := projectRoot(t)
	a, _ := newApp(t, cfg, nil)
	var out bytes.Buffer

	err := a.Headers(context.Background(), &out, domain.HeadersRequest{
		Project: "Motor", PeriodLength: 6, PeriodType: 1,
	}, app.Options{Root: cfg.Root})

	require.NoError(t, err)
	assert.Equal(t, "6m,12m,18m,24m\n", out.String())
}

func newWatcher(t *testing.T) ports.Watcher {
	t.Helper()
	w, err := watcher.NewWatcher(quietLogger(gomock.NewController(t)))
	require.NoError(t, err)
	return w
}

func serve(t *testing.T, ctx context.Context, a *app.App, cfg *domain.Config) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		done <- a.Serve(ctx, app.Options{Root: cfg.Root})
	}()
	return done
}

func livenessFiles(t *testing.T, cfg *domain.Config) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(cfg.Instances, "*.txt"))
	require.NoError(t, err)
	return matches
}

func TestApp_Serve_HandlesInboxUntilLivenessLost(t *testing.T) {
	cfg := projectRoot(t)
	cfg.MetricsTextfile = filepath.Join(cfg.Root, "tri.prom")
	a, configs := newApp(t, cfg, newWatcher(t))
	configs.EXPECT().KillRequested(cfg).Return(false, nil).AnyTimes()
	output := filepath.Join(cfg.Root, "out", "settings.csv")

	// A request waiting before start and one renamed in while serving.
	requestFile(t, cfg.Inbox, "early.txt", output)
	done := serve(t, context.Background(), a, cfg)

	require.Eventually(t, func() bool {
		_, err := os.Stat(output)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, os.Remove(output))

	staged := requestFile(t, filepath.Join(cfg.Root, "drafts"), "late.txt", output)
	require.NoError(t, os.Rename(staged, filepath.Join(cfg.Inbox, "late.txt")))

	require.Eventually(t, func() bool {
		got, err := os.ReadFile(output)
		return err == nil && string(got) == settingsDump
	}, 5*time.Second, 10*time.Millisecond)
	assert.FileExists(t, cfg.MetricsTextfile)

	live := livenessFiles(t, cfg)
	require.Len(t, live, 1)
	require.NoError(t, os.Remove(live[0]))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("agent did not stop after its liveness file was removed")
	}
}

func TestApp_Serve_StopsOnCancel(t *testing.T) {
	cfg := projectRoot(t)
	a, configs := newApp(t, cfg, newWatcher(t))
	configs.EXPECT().KillRequested(cfg).Return(false, nil).AnyTimes()
	ctx, cancel := context.WithCancel(context.Background())

	done := serve(t, ctx, a, cfg)
	require.Eventually(t, func() bool {
		return len(livenessFiles(t, cfg)) == 1
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	assert.Empty(t, livenessFiles(t, cfg))
}

func TestApp_Serve_StopsOnKillRequest(t *testing.T) {
	cfg := projectRoot(t)
	a, configs := newApp(t, cfg, newWatcher(t))
	gomock.InOrder(
		configs.EXPECT().KillRequested(cfg).Return(false, nil),
		configs.EXPECT().KillRequested(cfg).Return(true, nil),
	)

	require.NoError(t, <-serve(t, context.Background(), a, cfg))
	assert.Empty(t, livenessFiles(t, cfg))
}

func TestApp_Serve_WatchFailure(t *testing.T) {
	cfg := projectRoot(t)
	ctrl := gomock.NewController(t)
	w := mocks.NewMockWatcher(ctrl)
	w.EXPECT().Start(gomock.Any(), cfg.Inbox).Return(domain.ErrInboxWatch)
	a, _ := newApp(t, cfg, w)

	err := a.Serve(context.Background(), app.Options{Root: cfg.Root})

	require.True(t, errors.Is(err, domain.ErrInboxWatch))
}
