package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tri/internal/adapters/fs"
	"go.trai.ch/tri/internal/core/domain"
	"go.trai.ch/tri/internal/core/ports"
)

var _ ports.ResponseWriter = (*fs.ResponseWriter)(nil)

func TestResponseWriter_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	writeFile(t, path, "stale\n")

	w := fs.NewResponseWriter(3, time.Millisecond)
	err := w.Write(context.Background(), path, [][]string{{"1", "3"}, {"4", ""}, {"a,b"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1,3\n4,\n\"a,b\"\n", string(data))

	staged, err := os.ReadDir(filepath.Join(dir, domain.StagingDirName))
	require.NoError(t, err)
	assert.Empty(t, staged, "nothing is left in the staging directory")
}

func TestResponseWriter_RetriesRename(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.csv")

		w := fs.NewResponseWriter(5, 100*time.Millisecond)
		calls := 0
		w.SetRename(func(oldpath, newpath string) error {
			calls++
			if calls < 3 {
				return os.ErrPermission
			}
			return os.Rename(oldpath, newpath)
		})

		start := time.Now()
		require.NoError(t, w.Write(context.Background(), path, [][]string{{"0"}}))
		assert.Equal(t, 3, calls)
		assert.Equal(t, 300*time.Millisecond, time.Since(start), "delays grow linearly")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "0\n", string(data))
	})
}

func TestResponseWriter_GivesUp(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.csv")

		w := fs.NewResponseWriter(2, 10*time.Millisecond)
		calls := 0
		w.SetRename(func(string, string) error {
			calls++
			return errors.New("destination held open")
		})

		err := w.Write(context.Background(), path, [][]string{{"0"}})
		require.ErrorIs(t, err, domain.ErrResponseWrite)
		assert.Equal(t, 2, calls)

		staged, err := os.ReadDir(filepath.Join(dir, domain.StagingDirName))
		require.NoError(t, err)
		assert.Empty(t, staged, "the staged file is cleaned up")
		assert.NoFileExists(t, path)
	})
}
