package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/typemap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	eventListenerRe = regexp.MustCompile(`\w+\.addEventListener\("(\w+)", \w+\)`)
	onEventRe       = regexp.MustCompile(`\w+\.on(\w+) =`)
)

// Suffixes that classify rows of a namespace member listing.
const (
	structureSuffix = " structure"
	delegateSuffix  = " delegate"
)

func extractClass(pg *page) ([]typemap.Entry, string, error) {
	return []typemap.Entry{
		pg.entry(pg.id, &typemap.TypeNotation{Description: pg.description, Type: typemap.NotationClass}),
	}, "", nil
}

func extractEnumeration(pg *page) ([]typemap.Entry, string, error) {
	entries := []typemap.Entry{
		pg.entry(pg.id, &typemap.TypeNotation{Description: pg.description, Type: typemap.NotationEnumeration}),
	}

	members := FindSection(pg.main, headerMembers)
	if members == nil {
		return entries, "", nil
	}
	table := members.Find("table")
	if table.Length() == 0 {
		return nil, "", typemap.Errorf(typemap.EFORMAT, "enumeration members are not a table")
	}

	for _, row := range tableRows(table) {
		cells := rowCells(row)
		if cells.Length() == 0 {
			continue
		}
		// The member name is linked as the second element of the first cell.
		name := cells.First().Children().Eq(1)
		if name.Length() == 0 {
			continue
		}
		member := Inline(name.Text())
		desc := ""
		if cells.Length() > 2 {
			desc = Inline(cells.Eq(2).Text())
		}
		entries = append(entries, pg.entry(pg.id+"."+member, &typemap.TypeNotation{
			Description: desc,
			Type:        "Number",
		}))
	}
	return entries, "", nil
}

func extractNamespace(pg *page) ([]typemap.Entry, string, error) {
	ns := &typemap.NamespaceNotation{Description: pg.description}

	members := FindSection(pg.main, headerMembers)
	structures := members.Subsection(subheaderStructures)
	delegates := members.Subsection(subheaderDelegates)

	if structures != nil || delegates != nil {
		ns.Members.Structures = memberReferences(structures.Find("table"), pg.id, structureSuffix)
		ns.Members.Delegates = memberReferences(delegates.Find("table"), pg.id, delegateSuffix)
	} else {
		table := FindSection(pg.main, headerInThisSection).Find("table")
		if table.Length() == 0 {
			table = pg.main.Find("table").Last()
		}
		for _, row := range tableRows(table) {
			first := rowCells(row).First()
			switch label := memberLabel(first); {
			case strings.HasSuffix(label, structureSuffix):
				ns.Members.Structures = append(ns.Members.Structures, memberReference(first, pg.id, structureSuffix))
			case strings.HasSuffix(label, delegateSuffix):
				ns.Members.Delegates = append(ns.Members.Delegates, memberReference(first, pg.id, delegateSuffix))
			}
		}
	}

	return []typemap.Entry{pg.entry(pg.id, ns)}, "", nil
}

// memberLabel returns the text that classifies a namespace listing row: the
// cell text, or the link title when the text carries no kind suffix.
func memberLabel(cell *goquery.Selection) string {
	label := Inline(cell.Text())
	if strings.HasSuffix(label, structureSuffix) || strings.HasSuffix(label, delegateSuffix) {
		return label
	}
	if title, ok := cell.Find("a").First().Attr("title"); ok {
		return Inline(title)
	}
	return label
}

// memberReferences returns the identifier of every row of a member table.
func memberReferences(table *goquery.Selection, nsID, suffix string) []string {
	var refs []string
	for _, row := range tableRows(table) {
		if ref := memberReference(rowCells(row).First(), nsID, suffix); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// memberReference resolves the identifier a listing cell refers to. Help
// links carry the full identifier; plain names are qualified with nsID.
func memberReference(cell *goquery.Selection, nsID, suffix string) string {
	if a := cell.Find("a").First(); a.Length() > 0 {
		if href, _ := a.Attr("href"); strings.HasPrefix(strings.ToLower(href), strings.ToLower(helpLinkPrefix)) {
			return referenceName(a.Get(0))
		}
	}
	name := strings.TrimSuffix(Inline(cell.Text()), suffix)
	if name == "" {
		return ""
	}
	return nsID + "." + arityRe.ReplaceAllString(name, "")
}

func extractProperty(pg *page) ([]typemap.Entry, string, error) {
	value := FindSection(pg.main, headerPropertyValue).First()
	if value == nil {
		return nil, "", typemap.Errorf(typemap.EFORMAT, "missing %q section", headerPropertyValue)
	}
	info, err := WalkTypeNotation(value, false)
	if err != nil {
		return nil, "", err
	}
	typ, ok := info.Select(pg.language)
	if !ok {
		return nil, typemap.SkipNotRepresentable, nil
	}
	return []typemap.Entry{
		pg.entry(pg.id, &typemap.TypeNotation{Description: pg.description, Type: typ}),
	}, "", nil
}

func extractDelegate(pg *page) ([]typemap.Entry, string, error) {
	sig, reason, err := signature(pg)
	if err != nil || reason != "" {
		return nil, reason, err
	}
	sig.CodeSnippet = ""
	sig.TypeParameters = typeParameters(pg.title)
	return []typemap.Entry{
		pg.entry(pg.id, &typemap.DelegateNotation{Description: pg.description, Signature: sig}),
	}, "", nil
}

func extractConstructor(pg *page) ([]typemap.Entry, string, error) {
	id, ok := ConstructorIdentifier(pg.id)
	if !ok {
		return nil, "", typemap.Errorf(typemap.EFORMAT, "expected %s in constructor identifier %q", constructorMarker, pg.id)
	}
	sig, reason, err := signature(pg)
	if err != nil || reason != "" {
		return nil, reason, err
	}
	sig.Description = pg.description
	sig.Return = typemap.InstanceReturn()
	return []typemap.Entry{
		pg.entry(id, &typemap.FunctionNotation{Signatures: []*typemap.Signature{sig}}),
	}, "", nil
}

func extractMethod(pg *page) ([]typemap.Entry, string, error) {
	sig, reason, err := signature(pg)
	if err != nil || reason != "" {
		return nil, reason, err
	}
	sig.Description = pg.description
	return []typemap.Entry{
		pg.entry(MethodIdentifier(pg.id), &typemap.FunctionNotation{Signatures: []*typemap.Signature{sig}}),
	}, "", nil
}

// signature reads the parts shared by every callable page: parameters,
// return value and the code sample.
func signature(pg *page) (*typemap.Signature, string, error) {
	params, ok, err := parameters(pg)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, typemap.SkipNotRepresentable, nil
	}

	ret, ok, err := returnValue(pg)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, typemap.SkipNotRepresentable, nil
	}

	return &typemap.Signature{
		Parameters:  params,
		Return:      ret,
		CodeSnippet: codeSnippet(pg),
	}, "", nil
}

// parameters reads the Parameters section. A page without one, or whose
// section holds only prose, takes no parameters.
func parameters(pg *page) ([]typemap.Parameter, bool, error) {
	section := FindSection(pg.main, headerParameters)
	if section == nil {
		return []typemap.Parameter{}, true, nil
	}
	dl := section.Find("dl")
	if dl.Length() == 0 {
		if section.Find("table").Length() > 0 {
			return nil, false, typemap.Errorf(typemap.EFORMAT, "parameters are not a definition list")
		}
		return []typemap.Parameter{}, true, nil
	}
	return ParseParameterList(dl.Get(0), pg.language)
}

// returnValue reads the Return value section. An absent section yields no
// return; a section without a type notation yields the unknown type and is
// read as the description.
func returnValue(pg *page) (*typemap.Return, bool, error) {
	section := FindSection(pg.main, headerReturnValue)
	if section == nil {
		return nil, true, nil
	}
	notation := section.First()
	if notation == nil {
		return nil, false, typemap.Errorf(typemap.EFORMAT, "empty %q section", headerReturnValue)
	}

	typ := typemap.TypeUnknown
	described := section.Content.First()
	if firstElementChild(notation) != nil || strings.HasPrefix(strings.TrimSpace(nodeText(notation)), typeMarker) {
		info, err := WalkTypeNotation(notation, false)
		if err != nil {
			return nil, false, err
		}
		if !info.IsEmpty() {
			name, ok := info.Select(pg.language)
			if !ok {
				return nil, false, nil
			}
			typ = name
		}
		described = section.Content.Eq(1)
	}

	ret := &typemap.Return{Value: typemap.TypeNotation{Type: typ}}
	if described.Length() > 0 && !described.Is("h3") {
		ret.Value.Description = Inline(described.Text())
	}
	return ret, true, nil
}

// codeSnippet returns the code sample of the Syntax section written in the
// page language, or the empty string.
func codeSnippet(pg *page) string {
	section := FindSection(pg.main, headerSyntax)
	if section == nil {
		return ""
	}
	var snippet string
	section.Content.Filter("codesnippet").AddSelection(section.Content.Find("codesnippet")).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if lang, _ := s.Attr("language"); strings.EqualFold(lang, pg.language) {
			snippet = strings.TrimSpace(s.Text())
			return false
		}
		return true
	})
	return snippet
}

func extractEvent(pg *page) ([]typemap.Entry, string, error) {
	snippet := codeSnippet(pg)
	if snippet == "" {
		return nil, typemap.SkipNotRepresentable, nil
	}

	if !eventListenerRe.MatchString(snippet) || !onEventRe.MatchString(snippet) {
		return nil, "", typemap.Errorf(typemap.EFORMAT, "expected both addEventListener and on-event syntax")
	}

	info := FindSection(pg.main, headerEventInformation)
	if info == nil {
		return nil, "", typemap.Errorf(typemap.EFORMAT, "missing %q section", headerEventInformation)
	}
	table := info.Find("table")
	if table.Length() == 0 {
		return nil, "", typemap.Errorf(typemap.EFORMAT, "event information is not a table")
	}
	rows := tableRows(table)
	if len(rows) != 1 {
		return nil, "", typemap.Errorf(typemap.EFORMAT, "expected one event information row, got %d", len(rows))
	}
	cells := rowCells(rows[0])
	if cells.Length() < 2 {
		return nil, "", typemap.Errorf(typemap.EFORMAT, "event information row has no delegate cell")
	}

	delegate, err := WalkTypeNotation(cells.Get(1), true)
	if err != nil {
		return nil, "", err
	}
	name, ok := delegate.Select(pg.language)
	if !ok {
		return nil, "", typemap.Errorf(typemap.EFORMAT, "expected %s delegate type", pg.language)
	}

	return []typemap.Entry{
		pg.entry(EventIdentifier(pg.id), &typemap.EventNotation{Description: pg.description, Delegate: name}),
	}, "", nil
}

func extractStructure(pg *page) ([]typemap.Entry, string, error) {
	st := &typemap.StructureNotation{Description: pg.description, Members: []typemap.Parameter{}}

	layout := FindSection(pg.main, headerMembers).Find("table, ul, ol")
	if layout.Length() > 0 {
		var (
			fields []typemap.Parameter
			ok     bool
			err    error
		)
		if layout.Is("table") {
			fields, ok, err = tableFields(layout, pg.language)
		} else {
			fields, ok, err = listFields(layout, pg.language)
		}
		if err != nil {
			return nil, "", err
		}
		if !ok {
			return nil, typemap.SkipNotRepresentable, nil
		}
		st.Members = fields
	}

	return []typemap.Entry{pg.entry(pg.id, st)}, "", nil
}

// tableFields reads structure fields from rows of name, type and
// description cells.
func tableFields(table *goquery.Selection, language string) ([]typemap.Parameter, bool, error) {
	fields := []typemap.Parameter{}
	for _, row := range tableRows(table) {
		cells := rowCells(row)
		if cells.Length() < 2 {
			return nil, false, typemap.Errorf(typemap.EFORMAT, "structure member row has %d cells", cells.Length())
		}
		typ, ok, err := cellType(cells.Get(1), language)
		if err != nil || !ok {
			return nil, ok, err
		}
		field := typemap.Parameter{Key: Inline(cells.First().Text()), Type: typ}
		if cells.Length() > 2 {
			field.Description = Inline(cells.Eq(2).Text())
		}
		fields = append(fields, field)
	}
	return fields, true, nil
}

// listFields reads structure fields from list items, each holding the field
// name, a table whose last cell is the type and a description paragraph.
func listFields(list *goquery.Selection, language string) ([]typemap.Parameter, bool, error) {
	fields := []typemap.Parameter{}
	items := list.ChildrenFiltered("li")
	for i := range items.Length() {
		item := items.Get(i)

		var name strings.Builder
		var typeCell *html.Node
		var desc string
		for c := item.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.ElementNode && c.DataAtom == atom.Table:
				if typeCell == nil {
					typeCell = lastCellOfFirstRow(c)
				}
			case c.Type == html.ElementNode && c.DataAtom == atom.P:
				if desc == "" {
					desc = Inline(nodeText(c))
				}
			case c.Type == html.TextNode || c.Type == html.ElementNode:
				name.WriteString(nodeText(c))
			}
		}
		if typeCell == nil {
			return nil, false, typemap.Errorf(typemap.EFORMAT, "structure member %q has no type table", Inline(name.String()))
		}

		typ, ok, err := cellType(typeCell, language)
		if err != nil || !ok {
			return nil, ok, err
		}
		fields = append(fields, typemap.Parameter{Key: Inline(name.String()), Type: typ, Description: desc})
	}
	return fields, true, nil
}

// cellType walks a table cell that holds a type notation without a "Type:"
// marker.
func cellType(cell *html.Node, language string) (string, bool, error) {
	info, err := WalkTypeNotation(cell, true)
	if err != nil {
		return "", false, err
	}
	typ, ok := info.Select(language)
	return typ, ok, nil
}

func lastCellOfFirstRow(table *html.Node) *html.Node {
	rows := tableRows(goquery.NewDocumentFromNode(table).Selection)
	if len(rows) == 0 {
		return nil
	}
	cells := rowCells(rows[0])
	if cells.Length() == 0 {
		return nil
	}
	return cells.Last().Get(0)
}
