package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/typemap/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mainSection(t *testing.T, body string) *gq.Selection {
	t.Helper()

	doc, err := gq.NewDocumentFromReader(strings.NewReader(`<html><body><div id="mainSection">` + body + `</div></body></html>`))
	require.NoError(t, err)
	return doc.Find("div#mainSection")
}

func TestFindSection(t *testing.T) {
	t.Parallel()

	main := mainSection(t, `
<p>Intro.</p>
<h2>Syntax</h2>
<pre>code</pre>
<h2>Parameters </h2>
<dl><dt>name</dt></dl>
<p>Trailing.</p>
<h2>Members</h2>
<p>The namespace has these types.</p>
<h3>Structures</h3>
<table><tr><td>Point</td></tr></table>
<h3>Delegates</h3>
<table><tr><td>Handler</td></tr></table>
<h2>Requirements</h2>`)

	t.Run("collects content up to the next header", func(t *testing.T) {
		t.Parallel()

		s := goquery.FindSection(main, "Parameters")
		require.NotNil(t, s)
		assert.Equal(t, "Parameters", s.Header)
		assert.Equal(t, 2, s.Content.Length())
		assert.Equal(t, "dl", s.First().Data)
	})

	t.Run("matches headers by prefix", func(t *testing.T) {
		t.Parallel()

		s := goquery.FindSection(main, "Param")
		require.NotNil(t, s)
		assert.Equal(t, "Parameters", s.Header)
	})

	t.Run("matches case-sensitively", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, goquery.FindSection(main, "parameters"))
	})

	t.Run("returns nil for a missing header", func(t *testing.T) {
		t.Parallel()

		s := goquery.FindSection(main, "Return value")
		assert.Nil(t, s)
		assert.Nil(t, s.First())
		assert.Nil(t, s.Subsection("Structures"))
		assert.Equal(t, 0, s.Find("table").Length())
	})

	t.Run("nests sub-headers one level down", func(t *testing.T) {
		t.Parallel()

		s := goquery.FindSection(main, "Members")
		require.NotNil(t, s)
		require.Len(t, s.Subsections, 2)

		structures := s.Subsection("Structures")
		require.NotNil(t, structures)
		assert.Equal(t, "Point", strings.TrimSpace(structures.Find("td").Text()))

		delegates := s.Subsection("Delegates")
		require.NotNil(t, delegates)
		assert.Equal(t, "Handler", strings.TrimSpace(delegates.Find("td").Text()))
	})

	t.Run("finds the first match in document order", func(t *testing.T) {
		t.Parallel()

		s := goquery.FindSection(main, "Members")
		assert.Equal(t, "Point", strings.TrimSpace(s.Find("table").Text()))
	})
}
