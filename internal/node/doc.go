/*
Package node provides the tree that formula nodes live in.

# Purpose

A node owns its children through ordinary struct fields. Each child can look
back at its parent through a weak reference, which lets formulas find shared
context higher up the tree (FindAncestor) without creating ownership cycles.

# Usage

	type Revenue struct {
		node.Base
		Rent *Rent
	}

	func (r *Revenue) Fields() []node.Field {
		return []node.Field{{Name: "rent", Value: r.Rent}}
	}

	rev := node.Wire(&Revenue{Rent: &Rent{}})
	parent, ok := node.ParentOf(rev.Rent) // parent == rev, ok == true
*/
package node
