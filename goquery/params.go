package goquery

import (
	"github.com/fwojciec/typemap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseParameterList reads a definition list of parameters: each dt names a
// parameter and the following dd holds a type notation paragraph and an
// optional description. The bool is false when some parameter has no type in
// language, in which case the whole list is unusable.
func ParseParameterList(dl *html.Node, language string) ([]typemap.Parameter, bool, error) {
	params := []typemap.Parameter{}
	var name string

	for child := dl.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.DataAtom {
		case atom.Dt:
			name = Inline(nodeText(child))
		case atom.Dd:
			notation := firstElementChild(child)
			if notation == nil {
				return nil, false, typemap.Errorf(typemap.EFORMAT, "parameter %q has no type notation", name)
			}
			info, err := WalkTypeNotation(notation, false)
			if err != nil {
				return nil, false, err
			}
			typ, ok := info.Select(language)
			if !ok {
				return nil, false, nil
			}

			p := typemap.Parameter{Key: name, Type: typ}
			if desc := nextElementSibling(notation); desc != nil {
				p.Description = Inline(nodeText(desc))
			}
			params = append(params, p)
		default:
			return nil, false, typemap.Errorf(typemap.EFORMAT, "unexpected <%s> in parameter list", child.Data)
		}
	}

	return params, true, nil
}
