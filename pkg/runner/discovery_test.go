package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowiki/pkg/runner"
)

// tree creates files (relative to dir) with small wiki bodies.
func tree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, name := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("== "+name+" ==\nbody\n"), 0o644))
	}
}

func rel(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		opts  runner.Options
		want  []string
	}{
		{
			name:  "default extensions",
			files: []string{"a.wiki", "b.txt", "c.md", "sub/d.WIKI"},
			want:  []string{"a.wiki", "b.txt", "sub/d.WIKI"},
		},
		{
			name:  "custom extensions",
			files: []string{"a.wiki", "b.mw"},
			opts:  runner.Options{Extensions: []string{".mw"}},
			want:  []string{"b.mw"},
		},
		{
			name:  "exclude directory",
			files: []string{"a.wiki", "vendor/b.wiki", "docs/vendor/c.wiki"},
			opts:  runner.Options{ExcludeGlobs: []string{"vendor/**"}},
			want:  []string{"a.wiki", "docs/vendor/c.wiki"},
		},
		{
			name:  "exclude anywhere",
			files: []string{"a.wiki", "drafts/b.wiki", "docs/drafts/c.wiki"},
			opts:  runner.Options{ExcludeGlobs: []string{"**/drafts"}},
			want:  []string{"a.wiki"},
		},
		{
			name:  "exclude by base name",
			files: []string{"a.wiki", "notes.txt", "sub/more.txt"},
			opts:  runner.Options{ExcludeGlobs: []string{"*.txt"}},
			want:  []string{"a.wiki"},
		},
		{
			name:  "include globs",
			files: []string{"a.wiki", "docs/b.wiki", "docs/deep/c.wiki"},
			opts:  runner.Options{IncludeGlobs: []string{"docs/**/*.wiki"}},
			want:  []string{"docs/b.wiki", "docs/deep/c.wiki"},
		},
		{
			name:  "hidden files and directories",
			files: []string{"a.wiki", ".hidden.wiki", ".git/b.wiki", "sub/.c.wiki"},
			want:  []string{"a.wiki"},
		},
		{
			name:  "empty directory",
			files: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			tree(t, dir, tt.files...)

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, dir, files))
		})
	}
}

func TestDiscover_ExplicitPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "a.wiki", "b.wiki", "sub/c.wiki", ".hidden.wiki", "notes.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"sub", "a.wiki", filepath.Join(dir, "a.wiki"), ".hidden.wiki", "notes.md"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{".hidden.wiki", "a.wiki", "sub/c.wiki"}, rel(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	tree(t, dir, "a.wiki")
	tree(t, outside, "linked/b.wiki", "c.wiki")

	if err := os.Symlink(filepath.Join(outside, "linked"), filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(outside, "c.wiki"), filepath.Join(dir, "c.wiki")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "gone.wiki"), filepath.Join(dir, "gone.wiki")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wiki", "c.wiki"}, rel(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(outside, "linked", "b.wiki"))
}
