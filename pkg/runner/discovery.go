package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds wiki sources matching opts. It returns a sorted,
// de-duplicated list of absolute paths. Hidden files and directories are
// skipped while walking but an explicitly named hidden file is kept.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := &matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    opts.IncludeGlobs,
		exclude:    opts.ExcludeGlobs,
		follow:     opts.FollowSymlinks,
	}

	seen := make(map[string]struct{})
	for _, input := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.matches(absPath) {
				seen[absPath] = struct{}{}
			}
			continue
		}

		if err := m.walk(ctx, absPath, seen); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(seen))
	for path := range seen {
		files = append(files, path)
	}
	slices.Sort(files)

	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type matcher struct {
	workDir    string
	extensions []string
	include    []string
	exclude    []string
	follow     bool
}

// walk adds every matching file under root to seen.
func (m *matcher) walk(ctx context.Context, root string, seen map[string]struct{}) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || anyGlob(m.rel(path), m.exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !m.follow {
					return nil
				}
				// Walk the target, not the link: WalkDir lstats its root.
				return m.walk(ctx, target, seen)
			}
		}

		if m.matches(path) {
			seen[path] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (m *matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (m *matcher) matches(path string) bool {
	ext := filepath.Ext(path)
	if !slices.ContainsFunc(m.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}

	rel := m.rel(path)
	if anyGlob(rel, m.exclude) {
		return false
	}
	return len(m.include) == 0 || anyGlob(rel, m.include)
}

func anyGlob(path string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(path, pattern)
	})
}

// matchGlob matches a slash-normalized path against pattern. Patterns
// without "**" also match against the base name, so "*.txt" excludes text
// files at any depth. "**" patterns support the leading, trailing and
// middle forms ("**/drafts", "vendor/**", "docs/**/*.wiki").
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "**") {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		ok, _ := filepath.Match(pattern, filepath.Base(path))
		return ok
	}

	prefix, suffix, _ := strings.Cut(pattern, "**")
	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")

	if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
		return false
	}
	if suffix == "" {
		return true
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
	parts := strings.Split(rest, "/")
	for i := range parts {
		tail := strings.Join(parts[i:], "/")
		if ok, _ := filepath.Match(suffix, tail); ok {
			return true
		}
		if ok, _ := filepath.Match(suffix, parts[i]); ok {
			return true
		}
	}
	return false
}
