// Package fs provides file-based access to the reference corpus and the
// mapping file.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/fwojciec/typemap"
)

// documentExts are the file extensions treated as reference pages.
var documentExts = map[string]struct{}{
	".htm":  {},
	".html": {},
}

// Ensure Corpus implements typemap.Corpus at compile time.
var _ typemap.Corpus = (*Corpus)(nil)

// Corpus serves the HTML pages found under a root directory.
type Corpus struct {
	root   string
	ignore *ignore.GitIgnore
}

// NewCorpus creates a Corpus rooted at root. Paths matching the
// gitignore-style patterns in ignoreFile are excluded; an empty ignoreFile
// excludes nothing.
func NewCorpus(root, ignoreFile string) (*Corpus, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, typemap.Errorf(typemap.ENOTFOUND, "corpus directory %q not found", root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, typemap.Errorf(typemap.EINVALID, "corpus %q is not a directory", root)
	}

	c := &Corpus{root: root}
	if ignoreFile != "" {
		gi, err := ignore.CompileIgnoreFile(ignoreFile)
		if err != nil {
			return nil, typemap.Errorf(typemap.EINVALID, "failed to read ignore file %q: %v", ignoreFile, err)
		}
		c.ignore = gi
	}
	return c, nil
}

// Documents returns the slash-separated paths of every page under the root,
// relative to it, in ascending order.
func (c *Corpus) Documents(ctx context.Context) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(c.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != c.root && c.ignore != nil && c.ignore.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := documentExts[strings.ToLower(filepath.Ext(rel))]; !ok {
			return nil
		}
		if c.ignore != nil && c.ignore.MatchesPath(rel) {
			return nil
		}

		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(paths)
	return paths, nil
}

// ReadDocument returns the content of the page at path.
func (c *Corpus) ReadDocument(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filepath.Join(c.root, filepath.FromSlash(path)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, typemap.Errorf(typemap.ENOTFOUND, "document %q not found", path)
	}
	return content, err
}
