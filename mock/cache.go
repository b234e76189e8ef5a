package mock

import (
	"context"

	"github.com/fwojciec/typemap"
)

var _ typemap.ExtractionCache = (*ExtractionCache)(nil)

// ExtractionCache is a mock implementation of typemap.ExtractionCache.
type ExtractionCache struct {
	FindExtractionFn func(ctx context.Context, path string, content []byte) (*typemap.Extraction, error)
	SaveExtractionFn func(ctx context.Context, ext *typemap.Extraction, content []byte) error
}

func (c *ExtractionCache) FindExtraction(ctx context.Context, path string, content []byte) (*typemap.Extraction, error) {
	return c.FindExtractionFn(ctx, path, content)
}

func (c *ExtractionCache) SaveExtraction(ctx context.Context, ext *typemap.Extraction, content []byte) error {
	return c.SaveExtractionFn(ctx, ext, content)
}
