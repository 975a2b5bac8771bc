package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowiki/internal/cli"
	"github.com/yaklabco/gowiki/internal/configloader"
	"github.com/yaklabco/gowiki/pkg/fsutil"
	"github.com/yaklabco/gowiki/pkg/reporter"
)

const greetingPage = "== Hello {{{who}}} ==\n''a'' b\n"

type harness struct {
	t      *testing.T
	dir    string
	config string
	stdin  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfgDir := t.TempDir()
	cfg := filepath.Join(cfgDir, ".gowiki.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("log_level: warn\n"), 0o644))

	return &harness{t: t, dir: t.TempDir(), config: cfg}
}

func (h *harness) file(name, content string) string {
	h.t.Helper()

	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(h.stdin))
	cmd.SetArgs(append([]string{"--color", "never", "--config", h.config}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "text", args: []string{"--var", "who=World"}, want: "Hello World\n\na b\n\n"},
		{name: "html", args: []string{"--format", "html", "--var", "who=World"}, want: "<h2>Hello World</h2>"},
		{name: "markdown", args: []string{"-f", "md", "--var", "who=World"}, want: "## Hello World"},
		{name: "standalone html", args: []string{"--format", "html", "--standalone"}, want: "<title>Hello</title>"},
		{name: "missing variable", args: nil, want: "Hello \n\na b\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			page := h.file("page.wiki", greetingPage)

			stdout, _, err := h.run(append(append([]string{"render"}, tt.args...), page)...)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestIntegration_RenderWritesCache(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	page := h.file("page.wiki", greetingPage)

	_, _, err := h.run("render", "--no-cache", page)
	require.NoError(t, err)
	assert.NoFileExists(t, page+".wikic")

	first, _, err := h.run("render", page)
	require.NoError(t, err)
	assert.FileExists(t, page+".wikic")

	second, _, err := h.run("render", page)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	cacheDir := filepath.Join(h.dir, "cache")
	_, _, err = h.run("render", "--cache-dir", cacheDir, page)
	require.NoError(t, err)
	assert.DirExists(t, cacheDir)
}

func TestIntegration_RenderManyFiles(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	one := h.file("one.wiki", "one")
	two := h.file("two.wiki", "two")

	stdout, _, err := h.run("render", "--no-cache", one, two)
	require.NoError(t, err)
	assert.Equal(t, "one\n\n\ntwo\n\n", stdout)
}

func TestIntegration_RenderStdin(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.stdin = "* a\n* b"

	stdout, _, err := h.run("render")
	require.NoError(t, err)
	assert.Equal(t, " - a\n - b\n\n", stdout)
}

func TestIntegration_RenderWrap(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.stdin = "aaaa bbbb cccc dddd"

	stdout, _, err := h.run("render", "--wrap", "10")
	require.NoError(t, err)
	assert.Contains(t, stdout, "aaaa bbbb\ncccc dddd")
}

func TestIntegration_RenderOutputFile(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	page := h.file("page.wiki", "body")
	out := filepath.Join(h.dir, "out", "page.html")

	stdout, _, err := h.run("render", "--format", "html", "--output", out, page)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<p>body</p>\n", string(content))
}

func TestIntegration_RenderErrors(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	_, _, err := h.run("render", "--format", "pdf", h.file("page.wiki", "x"))
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, _, err = h.run("render", "--var", "novalue", h.file("page.wiki", "x"))
	require.ErrorIs(t, err, cli.ErrUsage)

	_, _, err = h.run("render", "--no-such-flag")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, _, err = h.run("render", filepath.Join(h.dir, "missing.wiki"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.config, []byte("jobs: -1\n"), 0o644))

	_, _, err := h.run("render", h.file("page.wiki", "x"))
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_Debug(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	page := h.file("page.wiki", "Hi {{{name}}}")

	stdout, _, err := h.run("debug", page)
	require.NoError(t, err)
	assert.Equal(t, "\n<p>Hi [name]</p>\n", stdout)
}

func TestIntegration_Tree(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	page := h.file("page.wiki", greetingPage)

	stdout, _, err := h.run("tree", page)
	require.NoError(t, err)

	lines := strings.Split(stdout, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "Hello ("), lines[0])
	assert.Contains(t, stdout, "Header h2")
	assert.Contains(t, stdout, "{{{who}}}")
	assert.Contains(t, stdout, "<i>")
}

func TestIntegration_TreeKind(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	page := h.file("page.wiki", "== Links ==\nSee [[http://x.org|x]] and [[http://y.org]].\n")

	stdout, _, err := h.run("tree", "--kind", "LINK", page)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Links ("), stdout)
	assert.Equal(t, 2, strings.Count(stdout, "Link url"), stdout)
	assert.NotContains(t, stdout, "Header")
	assert.NotContains(t, stdout, "Para")

	_, _, err = h.run("tree", "--kind", "paragraph", page)
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_CacheBuildAndClean(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	first := h.file("docs/a.wiki", "== A ==")
	second := h.file("docs/b.txt", "b")
	h.file("docs/skip.md", "not wiki")

	stdout, _, err := h.run("cache", "build", "--jobs", "2", h.dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "FILE")
	assert.Equal(t, 2, strings.Count(stdout, "miss\n")+strings.Count(stdout, "miss "))
	assert.Contains(t, stdout, " 2 files | 0 hits | 2 misses")
	assert.FileExists(t, first+".wikic")
	assert.FileExists(t, second+".wikic")

	stdout, _, err = h.run("cache", "build", "--quiet", h.dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "2 files compiled (2 cached, 0 rebuilt)"), stdout)

	stdout, _, err = h.run("cache", "build", "--quiet", "--refresh", h.dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "2 files compiled (0 cached, 2 rebuilt)"), stdout)

	_, _, err = h.run("cache", "clean", h.dir)
	require.NoError(t, err)
	assert.NoFileExists(t, first+".wikic")
	assert.NoFileExists(t, second+".wikic")
	assert.NoFileExists(t, first+".wikic"+fsutil.LockSuffix)
}

func TestIntegration_CacheBuildReports(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.file("a.wiki", "== A ==")

	stdout, _, err := h.run("cache", "build", "--report", "json", h.dir)
	require.NoError(t, err)

	var report reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Files, 1)
	assert.False(t, report.Files[0].CacheHit)
	assert.Equal(t, 1, report.Summary.FilesCompiled)

	stdout, _, err = h.run("cache", "build", "--report", "text", h.dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "a.wiki: cached")

	_, _, err = h.run("cache", "build", "--report", "xml", h.dir)
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestIntegration_CacheDir(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	page := h.file("a.wiki", "a")
	cacheDir := filepath.Join(t.TempDir(), "cache")

	_, _, err := h.run("cache", "build", "--quiet", "--cache-dir", cacheDir, h.dir)
	require.NoError(t, err)
	assert.NoFileExists(t, page+".wikic")

	var cached []string
	require.NoError(t, filepath.WalkDir(cacheDir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() && strings.HasSuffix(path, ".wikic") {
			cached = append(cached, path)
		}
		return err
	}))
	assert.Len(t, cached, 1)
}

func TestIntegration_ConfigInit(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	target := filepath.Join(h.dir, ".gowiki.yml")

	_, _, err := h.run("config", "init", "--output", target)
	require.NoError(t, err)
	assert.FileExists(t, target)

	h.stdin = "n\n"
	stdout, _, err := h.run("config", "init", "--output", target)
	require.ErrorIs(t, err, configloader.ErrConfigExists)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	assert.Contains(t, stdout, "Overwrite?")

	original, err := os.ReadFile(target)
	require.NoError(t, err)

	_, _, err = h.run("config", "init", "--full", "--force", "--output", target)
	require.NoError(t, err)
	assert.FileExists(t, fsutil.BackupPath(target))

	_, _, err = h.run("config", "init", "--restore", "--output", target)
	require.NoError(t, err)
	restored, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(restored))
	assert.NoFileExists(t, fsutil.BackupPath(target))

	_, _, err = h.run("config", "init", "--restore", "--output", target)
	require.ErrorIs(t, err, configloader.ErrNoBackup)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, _, err = h.run("config", "init", "--restore", "--force", "--output", target)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_ConfigShow(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.config, []byte("format: html\nwrap: 60\n"), 0o644))

	stdout, _, err := h.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "format: html")
	assert.Contains(t, stdout, "wrap: 60")
}

func TestIntegration_ConfigEnv(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	stdout, _, err := h.run("config", "env")
	require.NoError(t, err)
	assert.Contains(t, stdout, "GOWIKI_FORMAT")
	assert.Contains(t, stdout, "GOWIKI_VAR_<NAME>")
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	stdout, _, err := h.run("version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "abc123")
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	t.Run("root groups commands", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := newHarness(t).run("--help")
		require.NoError(t, err)

		compiling := strings.Index(stdout, "Compiling:")
		caching := strings.Index(stdout, "Caching:")
		setup := strings.Index(stdout, "Setup:")
		require.True(t, compiling >= 0 && caching > compiling && setup > caching, stdout)

		assert.Contains(t, stdout[compiling:caching], "  render")
		assert.Contains(t, stdout[compiling:caching], "  tree")
		assert.Contains(t, stdout[caching:setup], "  cache")
		assert.Contains(t, stdout[setup:], "  config")
		assert.Contains(t, stdout[setup:], "  version")
		assert.NotContains(t, stdout, "Additional Commands:")

		assert.Contains(t, stdout, "Examples:")
		assert.Contains(t, stdout, "Environment:")
		assert.Contains(t, stdout, "  GOWIKI_FORMAT")
		assert.Contains(t, stdout, `Use "gowiki [command] --help" for more information about a command.`)
		assert.NotContains(t, stdout, "\x1b[")
	})

	t.Run("render lists formats and flags", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := newHarness(t).run("render", "--help")
		require.NoError(t, err)

		assert.Contains(t, stdout, "Formats:")
		assert.Contains(t, stdout, "  markdown  CommonMark (alias: md)")
		assert.Contains(t, stdout, "gowiki render --var user=Ann page.wiki")
		assert.Contains(t, stdout, "-f, --format string")
		assert.Contains(t, stdout, "read and write the compile cache (default true)")
		assert.Contains(t, stdout, "Global Flags:")
		assert.Contains(t, stdout, `(default "auto")`)
		assert.NotContains(t, stdout, "Environment:")
	})

	t.Run("cache build", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := newHarness(t).run("cache", "build", "--help")
		require.NoError(t, err)

		assert.Contains(t, stdout, `(default "table")`)
		assert.Contains(t, stdout, "gowiki cache build --refresh")
		assert.NotContains(t, stdout, "Formats:")
	})
}
