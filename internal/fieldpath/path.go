package fieldpath

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Segment is one component of a path, e.g. `name` or `name[index]`.
type Segment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// Field returns a segment without an index.
func Field(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// Element returns a segment addressing one element of a collection field.
func Element(name string, index int) Segment {
	return Segment{Name: name, Index: index}
}

// HasIndex returns true if the segment has an explicit index.
func (s Segment) HasIndex() bool {
	return s.Index != -1
}

func (s Segment) String() string {
	if !s.HasIndex() {
		return s.Name
	}
	return s.Name + "[" + strconv.Itoa(s.Index) + "]"
}

// Path locates a node relative to the root. The empty path is the root.
type Path []Segment

// Root is the path of the top node.
var Root Path

// Child returns a new path extended by seg. The receiver is not modified.
func (p Path) Child(seg Segment) Path {
	return append(slices.Clip(p), seg)
}

// IsRoot reports whether p addresses the top node.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// String renders the path as dot-separated segments.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}
	return strings.Join(parts, ".")
}

// Key renders the key of the node's own value: the path followed by a dot.
func (p Path) Key() string {
	return p.String() + "."
}

// HasPrefix reports whether p lies in the subtree rooted at prefix.
func (p Path) HasPrefix(prefix Path) bool {
	return len(prefix) <= len(p) && slices.Equal(p[:len(prefix)], prefix)
}

// Equal reports whether both paths address the same node.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("fieldpath: %v", err))
	}
	return p
}
