//
// This file defines the node graph: typed records that know their parent
// without owning it. Children are held by strong references in their parent's
// fields; the reverse link is a weak pointer, so an orphaned subtree never
// keeps its former parent alive.

package node

import (
	"errors"
	"fmt"
	"reflect"
	"weak"
)

// ErrNotFound is returned when an ancestor lookup exhausts the parent chain.
var ErrNotFound = errors.New("ancestor not found")

// Field is one named value of a node, in declaration order.
type Field struct {
	Name  string
	Value any
}

// Node is a record in the model tree. Concrete types embed Base and list
// their fields, nested nodes included, through Fields.
type Node interface {
	Fields() []Field
	base() *Base
}

// Base carries the graph bookkeeping for a node. Embed it by value.
type Base struct {
	// self is allocated the first time the node becomes a parent, and is
	// only strongly reachable from the node itself.
	self   *handle
	parent weak.Pointer[handle]
}

type handle struct {
	owner Node
}

func (b *Base) base() *Base { return b }

func (b *Base) bind(owner Node) *handle {
	if b.self == nil {
		b.self = &handle{owner: owner}
	}
	return b.self
}

// SetParent replaces the non-owning parent reference of n. A nil parent
// clears it.
func SetParent(n, parent Node) {
	if isNil(parent) {
		n.base().parent = weak.Pointer[handle]{}
		return
	}
	n.base().parent = weak.Make(parent.base().bind(parent))
}

// ParentOf resolves the parent of n. It reports false when no parent was set
// or the parent has been garbage collected.
func ParentOf(n Node) (Node, bool) {
	h := n.base().parent.Value()
	if h == nil {
		return nil, false
	}
	return h.owner, true
}

// Wire sets n as the parent of every node found in its fields, either held
// directly or inside a slice or array. Other values are skipped. Call it once,
// right after the fields of n are populated.
func Wire[T Node](n T) T {
	for _, f := range n.Fields() {
		for _, child := range childNodes(f.Value) {
			SetParent(child, n)
		}
	}
	return n
}

// FindAncestorFunc walks up from the parent of n and returns the first
// ancestor accepted by match.
func FindAncestorFunc(n Node, match func(Node) bool) (Node, error) {
	p, ok := ParentOf(n)
	for ok {
		if match(p) {
			return p, nil
		}
		p, ok = ParentOf(p)
	}
	return nil, ErrNotFound
}

// FindAncestor returns the nearest ancestor of n whose dynamic type is T,
// or an error wrapping ErrNotFound.
func FindAncestor[T any](n Node) (T, error) {
	found, err := FindAncestorFunc(n, func(p Node) bool {
		_, ok := p.(T)
		return ok
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: no ancestor of type %s above %T", err, reflect.TypeFor[T](), n)
	}
	return found.(T), nil
}

// Children returns the nodes held in the fields of n, in field order.
func Children(n Node) []Node {
	var out []Node
	for _, f := range n.Fields() {
		out = append(out, childNodes(f.Value)...)
	}
	return out
}

func childNodes(v any) []Node {
	if isNil(v) {
		return nil
	}
	if n, ok := v.(Node); ok {
		return []Node{n}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	var out []Node
	for i := range rv.Len() {
		elem := rv.Index(i)
		if !elem.CanInterface() {
			continue
		}
		if n, ok := elem.Interface().(Node); ok && !isNil(n) {
			out = append(out, n)
		}
	}
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
