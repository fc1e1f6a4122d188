package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// Format is the syntax of a configuration document.
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatJSON Format = "json"
)

// FormatOf picks the syntax from a file name: ".json" is JSON, anything else HCL.
func FormatOf(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatHCL
}

// fileRoot decodes the blocks that need no evaluation context.
type fileRoot struct {
	Variables []*Variable `hcl:"variable,block"`
	Remain    hcl.Body    `hcl:",remain"`
}

// modelsRoot decodes what is left once variables are known.
type modelsRoot struct {
	Models []*Model `hcl:"model,block"`
}

// File is a parsed document whose models have not been decoded yet, because
// they may refer to its variables.
type File struct {
	Name      string
	Variables []*Variable
	remain    hcl.Body
}

// Parse parses src, in the syntax implied by filename, and decodes its
// variable blocks.
func Parse(filename string, src []byte) (*File, error) {
	parser := hclparse.NewParser()

	var (
		f     *hcl.File
		diags hcl.Diagnostics
	)
	switch FormatOf(filename) {
	case FormatJSON:
		f, diags = parser.ParseJSON(src, filename)
	default:
		f, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}
	if diags := uniqueNames(root.Variables, "variable", func(v *Variable) string { return v.Name }); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}

	return &File{Name: filename, Variables: root.Variables, remain: root.Remain}, nil
}

// DecodeModels decodes the model blocks, evaluating expressions in evalCtx.
func (f *File) DecodeModels(evalCtx *hcl.EvalContext) ([]*Model, error) {
	var root modelsRoot
	if diags := gohcl.DecodeBody(f.remain, evalCtx, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode models in %s: %w", f.Name, diags)
	}
	if diags := uniqueNames(root.Models, "model", func(m *Model) string { return m.Name }); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode models in %s: %w", f.Name, diags)
	}
	return root.Models, nil
}

// Encode writes models in the given syntax. Encoding is deterministic, so
// decoding the output and encoding it again yields the same bytes.
func Encode(format Format, models []*Model) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(models)
	case FormatHCL:
		return EncodeHCL(models), nil
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// EncodeHCL writes models as `model "name" { ... }` blocks.
func EncodeHCL(models []*Model) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, m := range models {
		if i > 0 {
			body.AppendNewline()
		}
		body.AppendBlock(gohcl.EncodeAsBlock(m, "model"))
	}
	return hclwrite.Format(f.Bytes())
}

// EncodeJSON writes models in HCL's JSON syntax: {"model": {"name": {...}}}.
func EncodeJSON(models []*Model) ([]byte, error) {
	byName := make(map[string]*Model, len(models))
	for _, m := range models {
		byName[m.Name] = m
	}
	doc := map[string]map[string]*Model{"model": byName}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode models as JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// uniqueNames reports labels used by more than one block.
func uniqueNames[T any](items []T, blockType string, name func(T) string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		n := name(item)
		if seen[n] {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("Duplicate %s %q", blockType, n),
				Detail:   fmt.Sprintf("Each %s label must be unique within a document.", blockType),
			})
			continue
		}
		seen[n] = true
	}
	return diags
}
