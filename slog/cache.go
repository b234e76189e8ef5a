package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/typemap"
)

// Ensure LoggingExtractionCache implements typemap.ExtractionCache.
var _ typemap.ExtractionCache = (*LoggingExtractionCache)(nil)

// LoggingExtractionCache wraps an ExtractionCache with debug logging.
type LoggingExtractionCache struct {
	next   typemap.ExtractionCache
	logger *slog.Logger
}

// NewLoggingExtractionCache creates a new LoggingExtractionCache.
func NewLoggingExtractionCache(next typemap.ExtractionCache, logger *slog.Logger) *LoggingExtractionCache {
	return &LoggingExtractionCache{next: next, logger: logger}
}

// FindExtraction delegates to the wrapped cache and logs hits and misses.
func (c *LoggingExtractionCache) FindExtraction(ctx context.Context, path string, content []byte) (ext *typemap.Extraction, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache lookup",
			"path", path,
			"hit", err == nil,
			"duration", time.Since(begin),
			"err", ignoreNotFound(err),
		)
	}(time.Now())
	return c.next.FindExtraction(ctx, path, content)
}

// SaveExtraction delegates to the wrapped cache and logs the operation.
func (c *LoggingExtractionCache) SaveExtraction(ctx context.Context, ext *typemap.Extraction, content []byte) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache store",
			"path", ext.Path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.SaveExtraction(ctx, ext, content)
}

// ignoreNotFound hides cache misses, which are not failures.
func ignoreNotFound(err error) error {
	if typemap.ErrorCode(err) == typemap.ENOTFOUND {
		return nil
	}
	return err
}
