// Package build folds parsed reference documents into a ReferenceMap.
// Documents are processed strictly one at a time so the map has a single
// writer and every failure is attributable to one file.
package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/typemap"
)

// Builder runs one pass over a corpus.
type Builder struct {
	Corpus typemap.Corpus
	Parser typemap.DocumentParser

	// Cache is optional. When set, unchanged documents are not re-parsed.
	Cache typemap.ExtractionCache
}

// Result holds the outcome of a completed pass.
type Result struct {
	Map       *typemap.ReferenceMap
	Skipped   []typemap.Skip
	Documents int
	Cached    int
}

// ProgressEvent reports progress during a pass.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Skipped   int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressParsed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// Build parses every document of the corpus and returns the merged map.
// Skipped documents are tallied; the first hard failure aborts the pass
// and is returned annotated with the document path.
func (b *Builder) Build(ctx context.Context, progress ProgressFunc) (*Result, error) {
	paths, err := b.Corpus.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	result := &Result{
		Map:     typemap.NewReferenceMap(),
		Skipped: []typemap.Skip{},
	}
	total := len(paths)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ext, cached, err := b.extract(ctx, path)
		if err != nil {
			return nil, annotate(path, err)
		}
		if cached {
			result.Cached++
		}

		if ext.Skipped() {
			result.Skipped = append(result.Skipped, typemap.Skip{Path: path, Title: ext.Title, Reason: ext.SkipReason})
		} else {
			for _, e := range ext.Entries {
				if err := result.Map.Insert(e); err != nil {
					return nil, annotate(path, err)
				}
			}
		}
		result.Documents++

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressParsed,
				Completed: i + 1,
				Total:     total,
				Path:      path,
				Skipped:   len(result.Skipped),
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
			Skipped:   len(result.Skipped),
		})
	}

	return result, nil
}

// extract returns the extraction for path, consulting the cache first.
// The bool reports whether the extraction came from the cache.
func (b *Builder) extract(ctx context.Context, path string) (*typemap.Extraction, bool, error) {
	content, err := b.Corpus.ReadDocument(ctx, path)
	if err != nil {
		return nil, false, err
	}

	if b.Cache != nil {
		ext, err := b.Cache.FindExtraction(ctx, path, content)
		if err == nil {
			return ext, true, nil
		}
		if typemap.ErrorCode(err) != typemap.ENOTFOUND {
			return nil, false, err
		}
	}

	ext, err := b.Parser.ParseDocument(path, content)
	if err != nil {
		return nil, false, err
	}

	if b.Cache != nil {
		if err := b.Cache.SaveExtraction(ctx, ext, content); err != nil {
			return nil, false, err
		}
	}
	return ext, false, nil
}

// annotate prefixes err with the document path, keeping application error
// codes intact.
func annotate(path string, err error) error {
	var appErr *typemap.Error
	if errors.As(err, &appErr) {
		return typemap.Errorf(appErr.Code, "%s: %s", path, appErr.Message)
	}
	return fmt.Errorf("%s: %w", path, err)
}
