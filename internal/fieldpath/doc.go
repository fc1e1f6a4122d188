/*
Package fieldpath names a position in a model tree by the chain of field
names that leads to it, e.g. `effective_gross_income.gross_potential_rent`
or `units[2].rent`.

Flattened evaluation output is keyed by the path of each node followed by a
trailing dot, which stands for "the node's own value" as opposed to one of
its fields. The root's own key is therefore ".".

This package centralizes formatting and parsing of both forms.
*/
package fieldpath
