package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Section headers used by the reference template.
const (
	headerSyntax           = "Syntax"
	headerParameters       = "Parameters"
	headerReturnValue      = "Return value"
	headerPropertyValue    = "Property value"
	headerMembers          = "Members"
	headerEventInformation = "Event information"
	headerInThisSection    = "In this section"

	subheaderStructures = "Structures"
	subheaderDelegates  = "Delegates"
)

// Section is the content that follows a header up to the next header of the
// same level.
type Section struct {
	// Header is the trimmed header text.
	Header string

	// Content holds the sibling elements between this header and the next.
	Content *goquery.Selection

	// Subsections maps nested header text to its section.
	Subsections map[string]*Section
}

// FindSection returns the first h2 section under main whose trimmed header
// text starts with prefix, or nil. Nested h3 headers become subsections.
func FindSection(main *goquery.Selection, prefix string) *Section {
	header := firstMatch(main.Find("h2"), prefix)
	if header == nil {
		return nil
	}

	s := &Section{
		Header:      strings.TrimSpace(header.Text()),
		Content:     header.NextUntil("h2"),
		Subsections: make(map[string]*Section),
	}
	s.Content.Filter("h3").Each(func(_ int, h3 *goquery.Selection) {
		name := strings.TrimSpace(h3.Text())
		if _, ok := s.Subsections[name]; ok {
			return
		}
		s.Subsections[name] = &Section{
			Header:  name,
			Content: h3.NextUntil("h2, h3"),
		}
	})
	return s
}

// Subsection returns the first nested section whose header starts with prefix.
func (s *Section) Subsection(prefix string) *Section {
	if s == nil {
		return nil
	}
	h3 := firstMatch(s.Content.Filter("h3"), prefix)
	if h3 == nil {
		return nil
	}
	return s.Subsections[strings.TrimSpace(h3.Text())]
}

// First returns the first content element, or nil for an empty section.
func (s *Section) First() *html.Node {
	if s == nil || s.Content.Length() == 0 {
		return nil
	}
	return s.Content.Get(0)
}

// Find returns the first element in document order, among the section
// content or nested within it, that matches selector.
func (s *Section) Find(selector string) *goquery.Selection {
	found := &goquery.Selection{}
	if s == nil {
		return found
	}
	s.Content.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if el.Is(selector) {
			found = el
			return false
		}
		if nested := el.Find(selector); nested.Length() > 0 {
			found = nested.First()
			return false
		}
		return true
	})
	return found
}

// firstMatch returns the first header in headers whose trimmed text starts
// with prefix.
func firstMatch(headers *goquery.Selection, prefix string) *goquery.Selection {
	var found *goquery.Selection
	headers.EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.HasPrefix(strings.TrimSpace(h.Text()), prefix) {
			found = h
			return false
		}
		return true
	})
	return found
}
