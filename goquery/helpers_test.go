package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// element parses markup and returns the first element with the given tag.
func element(t *testing.T, markup, tag string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)

	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == tag {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}

	n := find(doc)
	require.NotNil(t, n, "no <%s> in markup", tag)
	return n
}
