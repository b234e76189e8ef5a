package goquery

import (
	"regexp"
	"strings"
)

const constructorMarker = ".#ctor"

var parenthesisRe = regexp.MustCompile(`\([^(]*\)`)

// RootIdentifier returns the identifier that follows marker in a help
// identifier, with generic arity suffixes removed, e.g.
// "T:Windows.Foundation.Collections.IVector`1" → "Windows.Foundation.Collections.IVector".
// Matching is case-insensitive; leading colons of marker are not part of the result.
func RootIdentifier(helpID, marker string) (string, bool) {
	i := strings.Index(strings.ToLower(helpID), strings.ToLower(marker))
	if i == -1 {
		return "", false
	}
	start := i + len(marker) - len(strings.TrimLeft(marker, ":"))
	return arityRe.ReplaceAllString(strings.TrimSpace(helpID[start:]), ""), true
}

// ConstructorIdentifier rewrites "Windows.Foo.#ctor(System.String)" to
// "Windows.Foo.constructor".
func ConstructorIdentifier(id string) (string, bool) {
	i := strings.Index(strings.ToLower(id), constructorMarker)
	if i == -1 {
		return "", false
	}
	return id[:i] + ".constructor", true
}

// MethodIdentifier drops the parenthesized overload disambiguator so that
// every overload shares one identifier.
func MethodIdentifier(id string) string {
	if loc := parenthesisRe.FindStringIndex(id); loc != nil {
		return id[:loc[0]]
	}
	return id
}

// EventIdentifier prefixes the trailing segment of id with "on", naming the
// handler property: "Windows.Foo.Changed" becomes "Windows.Foo.onChanged".
func EventIdentifier(id string) string {
	i := strings.LastIndex(id, ".")
	return id[:i+1] + "on" + id[i+1:]
}

// typeParameters returns the generic parameters of a delegate title such as
// "TypedEventHandler<TSender, TResult> delegate". Only the angle brackets
// directly following the name count; nested brackets stay in their parameter.
func typeParameters(title string) []string {
	name := strings.TrimSpace(title)
	open := strings.IndexAny(name, "< ")
	if open == -1 || name[open] != '<' {
		return nil
	}

	var params []string
	depth, start := 0, open+1
	for i := open; i < len(name); i++ {
		switch name[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				if p := strings.TrimSpace(name[start:i]); p != "" {
					params = append(params, p)
				}
				return params
			}
		case ',':
			if depth == 1 {
				if p := strings.TrimSpace(name[start:i]); p != "" {
					params = append(params, p)
				}
				start = i + 1
			}
		}
	}
	return nil
}
