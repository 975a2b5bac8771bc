package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowiki/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.wiki")
		writeFile(t, path, "== Title ==")

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "== Title ==", string(got))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(got)), info.Size)
		assert.Equal(t, os.FileMode(0o644), info.Mode.Perm())
		assert.False(t, info.ModTime.IsZero())
	})

	t.Run("missing file wraps ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "none.wiki"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory wraps ErrIsDirectory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.wiki")
		writeFile(t, path, "text")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, path)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestStat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.wiki")
	writeFile(t, path, "abc")

	info, err := fsutil.Stat(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)

	_, err = fsutil.Stat(context.Background(), path+".missing")
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestIsFresh(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	source := &fsutil.FileInfo{ModTime: base}

	tests := []struct {
		name    string
		derived time.Time
		want    bool
	}{
		{"newer", base.Add(time.Second), true},
		{"equal", base, true},
		{"older", base.Add(-time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.IsFresh(&fsutil.FileInfo{ModTime: tt.derived}, source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.IsFresh(nil, source)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}
