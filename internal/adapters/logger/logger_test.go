package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tri/internal/adapters/logger"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/zerr"
)

func newJSON(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetJSON(true)
	l.SetOutput(buf)
	return l, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestLogger_JSONLevels(t *testing.T) {
	l, buf := newJSON(t)

	l.Debug("hidden")
	l.Info("agent started")
	l.Warn("project map reload failed")

	recs := decodeLines(t, buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "INFO", recs[0]["level"])
	assert.Equal(t, "agent started", recs[0]["msg"])
	assert.Equal(t, "WARN", recs[1]["level"])
}

func TestLogger_SetLevel(t *testing.T) {
	l, buf := newJSON(t)

	require.NoError(t, l.SetLevel("debug"))
	l.Debug("visible")
	require.NoError(t, l.SetLevel("error"))
	l.Warn("hidden")

	recs := decodeLines(t, buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "visible", recs[0]["msg"])

	require.Error(t, l.SetLevel("chatty"))
}

func TestLogger_JSONError(t *testing.T) {
	l, buf := newJSON(t)

	err := zerr.With(zerr.Wrap(domain.ErrUnknownProject, "resolve table path"), domain.KeyName, "Motor")
	l.Error(err)

	recs := decodeLines(t, buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "ERROR", recs[0]["level"])
	assert.Equal(t, "resolve table path", recs[0]["msg"])
	assert.Equal(t, "Motor", recs[0][domain.KeyName])
	assert.Contains(t, recs[0]["error"], domain.ErrUnknownProject.Error())
}

func TestLogger_PrettyError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetJSON(false)
	l.SetOutput(buf)

	l.Error(zerr.Wrap(errors.New("disk full"), "write response"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "✗ Error: write response"))
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ disk full")
}

func TestLogger_ErrorNil(t *testing.T) {
	l, buf := newJSON(t)
	l.Error(nil)
	assert.Empty(t, buf.String())
}
