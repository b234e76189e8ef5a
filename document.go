package typemap

import (
	"context"
	"time"
)

// Kind is the symbol kind of a reference page, decided by its title suffix.
type Kind string

// Kind constants.
const (
	KindUnknown     Kind = ""
	KindClass       Kind = "class"
	KindAttribute   Kind = "attribute"
	KindEnumeration Kind = "enumeration"
	KindNamespace   Kind = "namespace"
	KindProperty    Kind = "property"
	KindDelegate    Kind = "delegate"
	KindConstructor Kind = "constructor"
	KindMethod      Kind = "method"
	KindEvent       Kind = "event"
	KindStructure   Kind = "structure"
	KindInterface   Kind = "interface"
	KindMetaPage    Kind = "meta"
)

// Reasons recorded for skipped documents.
const (
	SkipNoHelpID          = "missing help identifier"
	SkipNotJavaScript     = "not a JavaScript document"
	SkipOutsideRoot       = "identifier outside namespace root"
	SkipExcludedNamespace = "excluded namespace"
	SkipInterface         = "interface page"
	SkipMetaPage          = "meta page"
	SkipUnrecognized      = "unrecognized title"
	SkipNotRepresentable  = "not representable in target language"
)

// Extraction is the outcome of parsing one reference document.
// A skipped document has a SkipReason and no entries.
type Extraction struct {
	Path       string  `json:"path"`
	Title      string  `json:"title"`
	Kind       Kind    `json:"kind"`
	SkipReason string  `json:"skipReason,omitempty"`
	Entries    []Entry `json:"entries,omitempty"`

	// ParsedAt is set when the extraction is stored in a cache.
	ParsedAt time.Time `json:"-"`
}

// Skipped reports whether the document produced no entries by design.
func (e *Extraction) Skipped() bool {
	return e.SkipReason != ""
}

// Skip records a document that was skipped during a corpus pass.
type Skip struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// Corpus supplies reference documents keyed by path.
type Corpus interface {
	// Documents returns the paths of every document in a stable order.
	Documents(ctx context.Context) ([]string, error)

	// ReadDocument returns the raw bytes of the document at path.
	// Returns ENOTFOUND if the document does not exist.
	ReadDocument(ctx context.Context, path string) ([]byte, error)
}

// DocumentParser extracts notations from one reference document.
type DocumentParser interface {
	// ParseDocument parses HTML content. Expected template deviations are
	// returned as EFORMAT errors; routine exclusions come back as a
	// skipped Extraction.
	ParseDocument(path string, content []byte) (*Extraction, error)
}

// ExtractionCache stores extractions keyed by document path and content.
type ExtractionCache interface {
	// FindExtraction returns the cached extraction for the given path and content.
	// Returns ENOTFOUND if nothing is cached or the content has changed.
	FindExtraction(ctx context.Context, path string, content []byte) (*Extraction, error)

	// SaveExtraction stores an extraction for the given content,
	// replacing any previous record for the same path.
	SaveExtraction(ctx context.Context, ext *Extraction, content []byte) error
}
