package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/typemap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// typeMarker introduces a type notation paragraph.
	typeMarker = "Type:"

	// arrayPrefix modifies the next type name in a type notation.
	arrayPrefix = "array of"

	// helpLinkPrefix starts every cross-reference link between reference pages.
	helpLinkPrefix = "ms-xhelp:///?Id="
)

var (
	bracketRe = regexp.MustCompile(`\[[^\[\]]*\]`)
	arityRe   = regexp.MustCompile("`\\d+")
)

// primitiveAliases are written in lowercase when they appear unqualified.
var primitiveAliases = map[string]string{
	"String":  "string",
	"Boolean": "boolean",
	"Object":  "object",
	"Number":  "number",
}

// TypeText is a type name candidate together with the language tags that
// follow it, e.g. "Number [JavaScript]".
type TypeText struct {
	Type      string
	Languages []string

	// rest is the text following the language indicator.
	rest string
}

// ParseTypeText splits a fragment such as "Number [C++/JavaScript]" into a
// type name and language tags. Only the first bracket group is honored.
// A fragment without brackets is a bare type name.
func ParseTypeText(text string) TypeText {
	text = strings.TrimSpace(text)
	if text == "" {
		return TypeText{}
	}

	loc := bracketRe.FindStringIndex(text)
	if loc == nil {
		return TypeText{Type: normalizeTypeName(text)}
	}

	return TypeText{
		Type:      normalizeTypeName(strings.TrimSpace(text[:loc[0]])),
		Languages: parseLanguageIndicator(text[loc[0]:loc[1]]),
		rest:      strings.TrimSpace(text[loc[1]:]),
	}
}

// parseLanguageIndicator splits "[C++/VB]" into its slash-separated tags.
func parseLanguageIndicator(text string) []string {
	text = strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
	var languages []string
	for _, lang := range strings.Split(text, "/") {
		if lang = strings.TrimSpace(lang); lang != "" {
			languages = append(languages, lang)
		}
	}
	return languages
}

// normalizeTypeName strips generic arity suffixes and lowercases
// unqualified primitive aliases.
func normalizeTypeName(name string) string {
	name = arityRe.ReplaceAllString(name, "")
	if alias, ok := primitiveAliases[name]; ok {
		return alias
	}
	return name
}

// referenceName recovers the identifier a cross-reference anchor points to.
// Anchors that are not help links fall back to their text.
func referenceName(a *html.Node) string {
	href, _ := attr(a, "href")
	if len(href) > len(helpLinkPrefix) && strings.EqualFold(href[:len(helpLinkPrefix)], helpLinkPrefix) {
		id := href[len(helpLinkPrefix):]
		if i := strings.IndexAny(id, "&#"); i != -1 {
			id = id[:i]
		}
		if decoded, err := url.PathUnescape(id); err == nil {
			id = decoded
		}
		// Drop the member-kind prefix, e.g. "T:".
		if i := strings.Index(id, ":"); i != -1 {
			id = id[i+1:]
		}
		return normalizeTypeName(strings.TrimSpace(id))
	}
	return normalizeTypeName(Inline(nodeText(a)))
}

// TypeInfo is the result of walking a type notation: either a single type
// name, or a type name per language.
type TypeInfo struct {
	Name       string
	ByLanguage map[string]string
}

// Select returns the type name for language. A single-name notation applies
// to every language. The bool is false when the notation has no
// representation in that language.
func (t TypeInfo) Select(language string) (string, bool) {
	if t.ByLanguage == nil {
		return t.Name, t.Name != ""
	}
	name, ok := t.ByLanguage[language]
	return name, ok && name != ""
}

// IsEmpty reports whether the notation named no type at all.
func (t TypeInfo) IsEmpty() bool {
	return t.Name == "" && len(t.ByLanguage) == 0
}

// WalkTypeNotation interprets the children of n as a type notation such as
//
//	Type: <a href="ms-xhelp:///?Id=T%3aWindows.Foo">Foo</a> [JavaScript] <strong>Foo^</strong> [C++]
//
// Unless omitTypeIndication is set the first child must be a text node
// starting with "Type:". The walk stops at a nested paragraph.
func WalkTypeNotation(n *html.Node, omitTypeIndication bool) (TypeInfo, error) {
	w := &typeWalker{byLanguage: make(map[string]string)}

	node := n.FirstChild
	if !omitTypeIndication {
		for node != nil && node.Type == html.CommentNode {
			node = node.NextSibling
		}
		if node == nil || node.Type != html.TextNode {
			return TypeInfo{}, typemap.Errorf(typemap.EFORMAT, "expected %q type indication", typeMarker)
		}
		text := strings.TrimLeft(node.Data, " \t\r\n")
		if !strings.HasPrefix(text, typeMarker) {
			return TypeInfo{}, typemap.Errorf(typemap.EFORMAT, "expected %q type indication, got %q", typeMarker, Inline(text))
		}
		text = text[len(typeMarker):]

		parsed := ParseTypeText(text)
		if parsed.Type != "" && parsed.Languages == nil && parsed.rest == "" && !isArrayPrefix(parsed.Type) {
			return TypeInfo{Name: parsed.Type}, nil
		}
		w.text(text)
		node = node.NextSibling
	}

walk:
	for ; node != nil; node = node.NextSibling {
		switch node.Type {
		case html.TextNode:
			w.text(node.Data)
		case html.ElementNode:
			switch node.DataAtom {
			case atom.A:
				w.propose(referenceName(node))
			case atom.Strong, atom.Em, atom.B, atom.I, atom.Span, atom.Code:
				w.propose(normalizeTypeName(Inline(nodeText(node))))
			case atom.P:
				break walk
			default:
				return TypeInfo{}, typemap.Errorf(typemap.EFORMAT, "unexpected <%s> in type notation", node.Data)
			}
		}
	}

	return w.result(), nil
}

// typeWalker accumulates state while walking a type notation.
type typeWalker struct {
	proposed   string
	prefix     string
	byLanguage map[string]string
}

func (w *typeWalker) propose(name string) {
	if name == "" {
		return
	}
	if w.prefix != "" {
		name = w.prefix + name
		w.prefix = ""
	}
	w.proposed = name
}

func (w *typeWalker) text(s string) {
	parsed := ParseTypeText(s)
	if isArrayPrefix(parsed.Type) {
		w.prefix = arrayPrefix + " "
	} else {
		w.propose(parsed.Type)
	}
	for _, lang := range parsed.Languages {
		w.byLanguage[lang] = w.proposed
	}
	if parsed.rest != "" {
		w.text(parsed.rest)
	}
}

func (w *typeWalker) result() TypeInfo {
	if len(w.byLanguage) == 0 {
		return TypeInfo{Name: w.proposed}
	}
	return TypeInfo{ByLanguage: w.byLanguage}
}

func isArrayPrefix(s string) bool {
	return strings.EqualFold(s, arrayPrefix)
}
