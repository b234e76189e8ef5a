// Package slog provides logging decorators for typemap services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/typemap"
)

// Ensure LoggingDocumentParser implements typemap.DocumentParser.
var _ typemap.DocumentParser = (*LoggingDocumentParser)(nil)

// LoggingDocumentParser wraps a DocumentParser with debug logging.
// Failures are logged at error level.
type LoggingDocumentParser struct {
	next   typemap.DocumentParser
	logger *slog.Logger
}

// NewLoggingDocumentParser creates a new LoggingDocumentParser.
func NewLoggingDocumentParser(next typemap.DocumentParser, logger *slog.Logger) *LoggingDocumentParser {
	return &LoggingDocumentParser{next: next, logger: logger}
}

// ParseDocument delegates to the wrapped parser and logs the outcome.
func (p *LoggingDocumentParser) ParseDocument(path string, content []byte) (ext *typemap.Extraction, err error) {
	defer func(begin time.Time) {
		if err != nil {
			p.logger.Error("parse document",
				"path", path,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		p.logger.Debug("parse document",
			"path", path,
			"kind", ext.Kind,
			"entries", len(ext.Entries),
			"skip", ext.SkipReason,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.ParseDocument(path, content)
}
