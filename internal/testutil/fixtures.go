package testutil

import _ "embed"

// ExampleHCL is a document with one model, "downtown", equal to
// multifamily.NewExample, written with variables.
//
//go:embed testdata/example.hcl
var ExampleHCL string

// ExampleJSON is a JSON document with one model, "uptown": the example
// building plus 3% management fees.
//
//go:embed testdata/example.json
var ExampleJSON string
