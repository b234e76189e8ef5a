package mock

import (
	"context"

	"github.com/fwojciec/typemap"
)

var (
	_ typemap.Corpus         = (*Corpus)(nil)
	_ typemap.DocumentParser = (*DocumentParser)(nil)
)

// Corpus is a mock implementation of typemap.Corpus.
type Corpus struct {
	DocumentsFn    func(ctx context.Context) ([]string, error)
	ReadDocumentFn func(ctx context.Context, path string) ([]byte, error)
}

func (c *Corpus) Documents(ctx context.Context) ([]string, error) {
	return c.DocumentsFn(ctx)
}

func (c *Corpus) ReadDocument(ctx context.Context, path string) ([]byte, error) {
	return c.ReadDocumentFn(ctx, path)
}

// DocumentParser is a mock implementation of typemap.DocumentParser.
type DocumentParser struct {
	ParseDocumentFn func(path string, content []byte) (*typemap.Extraction, error)
}

func (p *DocumentParser) ParseDocument(path string, content []byte) (*typemap.Extraction, error) {
	return p.ParseDocumentFn(path, content)
}
