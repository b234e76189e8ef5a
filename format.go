package typemap

import "strings"

// FormatEntry renders an entry as a declaration-style summary for display.
// Descriptions are written as comment lines above each declaration.
func FormatEntry(e Entry) string {
	var b strings.Builder

	switch n := e.Notation.(type) {
	case *TypeNotation:
		comment(&b, n.Description)
		b.WriteString(e.CamelID + ": " + n.Type)
	case *FunctionNotation:
		for i, sig := range n.Signatures {
			if i > 0 {
				b.WriteString("\n")
			}
			comment(&b, sig.Description)
			b.WriteString(e.CamelID + formatSignature(sig))
		}
	case *DelegateNotation:
		comment(&b, n.Description)
		b.WriteString("delegate " + e.CamelID)
		if n.Signature != nil {
			b.WriteString(formatSignature(n.Signature))
		}
	case *EventNotation:
		comment(&b, n.Description)
		b.WriteString("event " + e.CamelID + ": " + n.Delegate)
	case *StructureNotation:
		comment(&b, n.Description)
		b.WriteString("struct " + e.CamelID + " {")
		for _, m := range n.Members {
			b.WriteString("\n  " + m.Key + ": " + m.Type + ";")
		}
		b.WriteString("\n}")
	case *NamespaceNotation:
		comment(&b, n.Description)
		b.WriteString("namespace " + e.CamelID)
		for _, s := range n.Members.Structures {
			b.WriteString("\n  struct " + s)
		}
		for _, d := range n.Members.Delegates {
			b.WriteString("\n  delegate " + d)
		}
	}

	return b.String()
}

// formatSignature renders "<T>(a: string, b: number): type".
func formatSignature(sig *Signature) string {
	var b strings.Builder
	if len(sig.TypeParameters) > 0 {
		b.WriteString("<" + strings.Join(sig.TypeParameters, ", ") + ">")
	}

	params := make([]string, 0, len(sig.Parameters))
	for _, p := range sig.Parameters {
		params = append(params, p.Key+": "+p.Type)
	}
	b.WriteString("(" + strings.Join(params, ", ") + ")")

	switch {
	case sig.Return == nil:
		b.WriteString(": void")
	case sig.Return.Instance:
		b.WriteString(": " + TypeInstance)
	default:
		b.WriteString(": " + sig.Return.Value.Type)
	}
	return b.String()
}

func comment(b *strings.Builder, desc string) {
	if desc != "" {
		b.WriteString("// " + desc + "\n")
	}
}
