package wiki

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gowiki/internal/logging"
	"github.com/yaklabco/gowiki/pkg/fsutil"
)

// CacheExt is the file extension of compiled documents.
const CacheExt = ".wikic"

// Option configures CompileCached.
type Option func(*cacheOptions)

type cacheOptions struct {
	refresh  bool
	readOnly bool
}

// WithRefresh ignores any existing cache and always recompiles.
func WithRefresh(refresh bool) Option {
	return func(o *cacheOptions) { o.refresh = refresh }
}

// WithReadOnly uses a fresh cache when present but never writes one.
func WithReadOnly(readOnly bool) Option {
	return func(o *cacheOptions) { o.readOnly = readOnly }
}

// CompileFile reads and compiles the file at path. File errors wrap the
// fsutil sentinels.
func CompileFile(ctx context.Context, path string) (*Document, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return Compile(string(content)), nil
}

// CompileCached compiles the file at path, reusing the compiled form at
// cachePath when it is at least as new as the source and decodes cleanly.
// Otherwise the source is recompiled and the cache rewritten; a failed cache
// write is logged, not returned.
func CompileCached(ctx context.Context, path, cachePath string, opts ...Option) (*Document, error) {
	var o cacheOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.FromContext(ctx).With(logging.FieldPath, path, logging.FieldCache, cachePath)

	source, err := fsutil.Stat(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	if !o.refresh {
		if doc := loadCache(ctx, logger, source, cachePath); doc != nil {
			logger.Debug("compiled", logging.FieldCacheHit, true, logging.FieldNodes, len(doc.nodes))
			return doc, nil
		}
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	doc := Compile(string(content))
	logger.Debug("compiled", logging.FieldCacheHit, false, logging.FieldNodes, len(doc.nodes))

	if o.readOnly {
		return doc, nil
	}

	// The cache takes the source's mtime, so an edit landing while we
	// compiled still leaves it stale.
	if err := doc.store(ctx, cachePath, source.ModTime); err != nil {
		logger.Warn("cache write failed", logging.FieldError, err)
	}

	return doc, nil
}

// loadCache returns the cached document, or nil on any kind of miss.
func loadCache(ctx context.Context, logger *log.Logger, source *fsutil.FileInfo, cachePath string) *Document {
	cached, err := fsutil.Stat(ctx, cachePath)
	if err != nil {
		if !errors.Is(err, fsutil.ErrNotFound) {
			logger.Debug("cache unreadable", logging.FieldError, err)
		}
		return nil
	}

	if fresh, _ := fsutil.IsFresh(cached, source); !fresh {
		logger.Debug("cache stale")
		return nil
	}

	data, _, err := fsutil.ReadFile(ctx, cachePath)
	if err != nil {
		logger.Debug("cache unreadable", logging.FieldError, err)
		return nil
	}

	doc, err := Load(data)
	if err != nil {
		logger.Debug("cache corrupt", logging.FieldError, err)
		return nil
	}

	doc.fromCache = true
	return doc
}

// CachePath maps a source file to its cache file. With an empty cacheDir the
// cache sits beside the source; otherwise the source's absolute path is
// mirrored below cacheDir.
func CachePath(cacheDir, source string) string {
	if cacheDir == "" {
		return source + CacheExt
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		abs = filepath.Clean(source)
	}

	rel := strings.TrimPrefix(abs[len(filepath.VolumeName(abs)):], string(filepath.Separator))

	parts := strings.Split(rel, string(filepath.Separator))
	for i, part := range parts {
		if part == ".." {
			parts[i] = "_"
		}
	}

	return filepath.Join(append([]string{cacheDir}, parts...)...) + CacheExt
}
