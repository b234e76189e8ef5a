// Package typemap extracts JavaScript-targeted type notations from Windows
// Runtime reference documentation pages and merges them into a lookup table
// keyed by lowercased fully-qualified identifier.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, fs/).
package typemap
