// Package wpath builds the dotted path strings used to address a node
// inside a value tree, for the binary-forcing path set an encode call
// takes.
package wpath

import "strings"

// Path is rooted at "-" and extended one dotted segment at a time.
type Path struct {
	segments []string
}

// Root returns the path to the value being encoded at the top level.
func Root() Path { return Path{} }

// Child returns the path to segment (a map key or 1-based array index, in
// its string form) beneath p.
func (p Path) Child(segment string) Path {
	next := make([]string, len(p.segments)+1)
	copy(next, p.segments)
	next[len(p.segments)] = segment
	return Path{segments: next}
}

// String renders the path in "-.key.index" form.
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('-')
	for _, s := range p.segments {
		b.WriteByte('.')
		b.WriteString(s)
	}
	return b.String()
}
