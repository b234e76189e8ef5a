// Package goquery parses WinRT reference pages into typemap entries using
// goquery for section lookup and x/net/html for type notation walking.
package goquery

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/typemap"
)

// Version identifies the extraction rules.
const Version = "1"

// Defaults for the reference documentation template.
const (
	DefaultLanguage   = "JavaScript"
	DefaultCategory   = "DevLang:javascript"
	DefaultRootMarker = ":windows"
)

// DefaultExcludedPrefixes lists namespaces that have no scripting projection.
var DefaultExcludedPrefixes = []string{"windows.ui.xaml"}

const contentRemovedTitle = "Content Removed"

var syntaxRe = regexp.MustCompile(`\sSyntax\s`)

// Ensure Parser implements typemap.DocumentParser.
var _ typemap.DocumentParser = (*Parser)(nil)

// Parser extracts notations from reference pages of a single template family.
type Parser struct {
	// Language selects the per-language type names, e.g. "JavaScript".
	Language string

	// Category is the required Microsoft.Help.Category meta value.
	Category string

	// RootMarker locates the namespace root within a help identifier.
	RootMarker string

	// ExcludedPrefixes are lowercase identifier prefixes that are skipped.
	ExcludedPrefixes []string
}

// NewParser returns a Parser configured for JavaScript projections of the
// Windows namespace.
func NewParser() *Parser {
	return &Parser{
		Language:         DefaultLanguage,
		Category:         DefaultCategory,
		RootMarker:       DefaultRootMarker,
		ExcludedPrefixes: DefaultExcludedPrefixes,
	}
}

// Fingerprint identifies the rules and configuration an extraction was made
// under. Extractions cached under another fingerprint must not be reused.
func (p *Parser) Fingerprint() string {
	return strings.Join([]string{
		Version,
		p.Language,
		p.Category,
		p.RootMarker,
		strings.Join(p.ExcludedPrefixes, ","),
	}, "/")
}

// page carries what every per-kind extractor needs from a document.
type page struct {
	id          string
	title       string
	description string
	main        *goquery.Selection
	language    string
}

// entry returns an entry keyed by the lowercased form of id.
func (pg *page) entry(id string, n typemap.Notation) typemap.Entry {
	return typemap.Entry{Key: strings.ToLower(id), CamelID: id, Notation: n}
}

// ParseDocument parses one reference page.
func (p *Parser) ParseDocument(path string, content []byte) (*typemap.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, typemap.Errorf(typemap.EFORMAT, "failed to parse HTML: %v", err)
	}

	ext := &typemap.Extraction{
		Path:  path,
		Title: Inline(doc.Find("head title").First().Text()),
	}

	id, reason := p.admit(doc)
	if reason != "" {
		ext.SkipReason = reason
		return ext, nil
	}

	main := doc.Find("div#mainSection").First()
	if main.Length() == 0 {
		return nil, typemap.Errorf(typemap.EFORMAT, "missing main section")
	}
	title := doc.Find("div.title").First()
	if title.Length() == 0 {
		return nil, typemap.Errorf(typemap.EFORMAT, "missing title")
	}
	ext.Title = Inline(title.Text())
	ext.Kind = Classify(ext.Title)

	pg := &page{
		id:          id,
		title:       ext.Title,
		description: description(main),
		main:        main,
		language:    p.Language,
	}

	var entries []typemap.Entry
	switch ext.Kind {
	case typemap.KindClass, typemap.KindAttribute:
		entries, reason, err = extractClass(pg)
	case typemap.KindEnumeration:
		entries, reason, err = extractEnumeration(pg)
	case typemap.KindNamespace:
		entries, reason, err = extractNamespace(pg)
	case typemap.KindProperty:
		entries, reason, err = extractProperty(pg)
	case typemap.KindDelegate:
		entries, reason, err = extractDelegate(pg)
	case typemap.KindConstructor:
		entries, reason, err = extractConstructor(pg)
	case typemap.KindMethod:
		entries, reason, err = extractMethod(pg)
	case typemap.KindEvent:
		entries, reason, err = extractEvent(pg)
	case typemap.KindStructure:
		entries, reason, err = extractStructure(pg)
	case typemap.KindInterface:
		reason = typemap.SkipInterface
	case typemap.KindMetaPage:
		reason = typemap.SkipMetaPage
	default:
		reason = typemap.SkipUnrecognized
	}
	if err != nil {
		return nil, err
	}

	ext.SkipReason = reason
	if reason == "" {
		ext.Entries = entries
	}
	return ext, nil
}

// admit returns the document identifier, or the reason the document is not
// processed.
func (p *Parser) admit(doc *goquery.Document) (string, string) {
	helpID, ok := doc.Find(`meta[name="Microsoft.Help.Id"]`).First().Attr("content")
	if !ok || strings.TrimSpace(helpID) == "" {
		return "", typemap.SkipNoHelpID
	}

	id, ok := RootIdentifier(helpID, p.RootMarker)
	if !ok {
		return "", typemap.SkipOutsideRoot
	}

	categorized := false
	doc.Find(`meta[name="Microsoft.Help.Category"]`).EachWithBreak(func(_ int, meta *goquery.Selection) bool {
		if v, _ := meta.Attr("content"); v == p.Category {
			categorized = true
			return false
		}
		return true
	})
	if !categorized {
		return "", typemap.SkipNotJavaScript
	}

	lower := strings.ToLower(id)
	for _, prefix := range p.ExcludedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return "", typemap.SkipExcludedNamespace
		}
	}
	return id, ""
}

// titleSuffixes maps title suffixes to kinds in match order.
var titleSuffixes = []struct {
	suffix string
	kind   typemap.Kind
}{
	{" constructors", typemap.KindMetaPage},
	{" methods", typemap.KindMetaPage},
	{" class", typemap.KindClass},
	{" attribute", typemap.KindAttribute},
	{" enumeration", typemap.KindEnumeration},
	{" namespace", typemap.KindNamespace},
	{" property", typemap.KindProperty},
	{" delegate", typemap.KindDelegate},
	{" constructor", typemap.KindConstructor},
	{" method", typemap.KindMethod},
	{" event", typemap.KindEvent},
	{" structure", typemap.KindStructure},
	{" interface", typemap.KindInterface},
}

// Classify returns the symbol kind a page title describes.
func Classify(title string) typemap.Kind {
	title = strings.TrimSpace(title)
	if title == contentRemovedTitle {
		return typemap.KindMetaPage
	}
	for _, s := range titleSuffixes {
		if strings.HasSuffix(title, s.suffix) {
			return s.kind
		}
	}
	return typemap.KindUnknown
}

// description returns the main content text that precedes the Syntax
// header, or the first section header when the page has no syntax block.
func description(main *goquery.Selection) string {
	text := main.Text()
	if loc := syntaxRe.FindStringIndex(text); loc != nil {
		return Inline(text[:loc[0]])
	}

	var b strings.Builder
	main.Contents().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Is("h2") {
			return false
		}
		b.WriteString(s.Text())
		return true
	})
	return Inline(b.String())
}
