// Package evaluate computes every evaluable node of a model tree over a list
// of periods and flattens the result into keyed rows.
package evaluate

import (
	"fmt"
	"iter"
	"reflect"
	"time"

	"github.com/vk/seriesgrid/internal/fieldpath"
	"github.com/vk/seriesgrid/internal/node"
	"github.com/vk/seriesgrid/internal/period"
)

// Evaluable is a node that produces a value for the window (from, to].
type Evaluable interface {
	node.Node
	Call(from, to time.Time) (float64, error)
}

// Tree holds the values of one node and of its evaluable fields.
type Tree struct {
	Own      []float64
	Children []Child
}

// Child is a named subtree, in field order.
type Child struct {
	Segment fieldpath.Segment
	Tree    *Tree
}

// Row is one flattened series.
type Row struct {
	Key    string
	Values []float64
}

// FieldValues evaluates n and, depth first, every evaluable node among its
// fields, over each period. Fields that are not evaluable are skipped;
// elements of a collection field are addressed as field[i].
func FieldValues(n Evaluable, periods []period.Period) (*Tree, error) {
	return fieldValues(n, periods, fieldpath.Root)
}

func fieldValues(n Evaluable, periods []period.Period, at fieldpath.Path) (*Tree, error) {
	tree := &Tree{}

	for _, f := range n.Fields() {
		for seg, child := range evaluableFields(f) {
			sub, err := fieldValues(child, periods, at.Child(seg))
			if err != nil {
				return nil, err
			}
			tree.Children = append(tree.Children, Child{Segment: seg, Tree: sub})
		}
	}

	tree.Own = make([]float64, len(periods))
	for i, p := range periods {
		v, err := n.Call(p.Start, p.End)
		if err != nil {
			return nil, fmt.Errorf("evaluating %q over %s: %w", at.Key(), p, err)
		}
		tree.Own[i] = v
	}
	return tree, nil
}

// evaluableFields yields the evaluable values held by f, directly or as
// elements of a slice.
func evaluableFields(f node.Field) iter.Seq2[fieldpath.Segment, Evaluable] {
	return func(yield func(fieldpath.Segment, Evaluable) bool) {
		if f.Value == nil {
			return
		}
		if e, ok := f.Value.(Evaluable); ok {
			if !isNilPointer(e) {
				yield(fieldpath.Field(f.Name), e)
			}
			return
		}

		rv := reflect.ValueOf(f.Value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return
		}
		for i := range rv.Len() {
			e, ok := rv.Index(i).Interface().(Evaluable)
			if !ok || isNilPointer(e) {
				continue
			}
			if !yield(fieldpath.Element(f.Name, i), e) {
				return
			}
		}
	}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Flatten turns a tree into rows keyed by the dot-joined field path of each
// node plus a trailing dot; the root's own row is ".". A node's fields come
// before its own row.
func Flatten(t *Tree) []Row {
	var rows []Row
	flatten(t, fieldpath.Root, &rows)
	return rows
}

func flatten(t *Tree, at fieldpath.Path, rows *[]Row) {
	for _, c := range t.Children {
		flatten(c.Tree, at.Child(c.Segment), rows)
	}
	*rows = append(*rows, Row{Key: at.Key(), Values: t.Own})
}

// AsMap indexes rows by key.
func AsMap(rows []Row) map[string][]float64 {
	m := make(map[string][]float64, len(rows))
	for _, r := range rows {
		m[r.Key] = r.Values
	}
	return m
}

// Select keeps the rows whose path lies under one of the given prefixes. With
// no prefixes every row is kept.
func Select(rows []Row, prefixes ...fieldpath.Path) ([]Row, error) {
	if len(prefixes) == 0 {
		return rows, nil
	}
	var out []Row
	for _, r := range rows {
		p, err := fieldpath.ParseKey(r.Key)
		if err != nil {
			return nil, err
		}
		for _, prefix := range prefixes {
			if p.HasPrefix(prefix) {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}
