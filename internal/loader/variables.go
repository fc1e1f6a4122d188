package loader

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/seriesgrid/internal/ctxlog"
	"github.com/vk/seriesgrid/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// EvalContext resolves every variable to a value of its declared type and
// returns an evaluation context exposing them as var.<name>. Overrides are
// raw strings, as given on a command line, and win over defaults.
func EvalContext(ctx context.Context, vars []*schema.Variable, overrides map[string]string) (*hcl.EvalContext, error) {
	logger := ctxlog.FromContext(ctx)

	declared := make(map[string]bool, len(vars))
	values := make(map[string]cty.Value, len(vars))
	for _, v := range vars {
		declared[v.Name] = true

		typ, err := typeExprToCtyType(ctx, v.Type)
		if err != nil {
			return nil, fmt.Errorf("variable %q: invalid type: %w", v.Name, err)
		}

		var raw cty.Value
		if s, ok := overrides[v.Name]; ok {
			raw = cty.StringVal(s)
			logger.Debug("Variable overridden.", "name", v.Name)
		} else if v.Default != nil && !v.Default.IsNull() {
			raw = *v.Default
		} else {
			return nil, fmt.Errorf("variable %q has no default and no value was given", v.Name)
		}

		val, err := convert.Convert(raw, typ)
		if err != nil {
			return nil, fmt.Errorf("variable %q: value does not match type %s: %w", v.Name, typ.FriendlyName(), err)
		}
		values[v.Name] = val
	}

	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		if !declared[name] {
			return nil, fmt.Errorf("value given for undeclared variable %q", name)
		}
	}

	obj := cty.EmptyObjectVal
	if len(values) > 0 {
		obj = cty.ObjectVal(values)
	}
	logger.Debug("Variables resolved.", "count", len(values))
	return &hcl.EvalContext{Variables: map[string]cty.Value{"var": obj}}, nil
}

// typeExprToCtyType converts a type expression such as `number` or
// `list(number)` into its cty.Type. An absent type accepts any value. Only
// the syntax-agnostic hcl helpers are used, so JSON documents can spell the
// type as a string.
func typeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return cty.DynamicPseudoType, nil
	}
	if val, diags := expr.Value(nil); !diags.HasErrors() && val.IsNull() {
		logger.Debug("Type expression is absent, defaulting to any.")
		return cty.DynamicPseudoType, nil
	}

	if keyword := hcl.ExprAsKeyword(expr); keyword != "" {
		switch keyword {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", keyword)
		}
	}

	call, diags := hcl.ExprCall(expr)
	if diags.HasErrors() {
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %w", diags)
	}
	if len(call.Arguments) != 1 {
		return cty.DynamicPseudoType, fmt.Errorf("type constructors (list, map, set) require exactly one argument, got %d", len(call.Arguments))
	}
	elementType, err := typeExprToCtyType(ctx, call.Arguments[0])
	if err != nil {
		return cty.DynamicPseudoType, err
	}
	if elementType == cty.DynamicPseudoType {
		return cty.DynamicPseudoType, fmt.Errorf("collection types cannot contain type 'any'")
	}

	switch call.Name {
	case "list":
		return cty.List(elementType), nil
	case "map":
		return cty.Map(elementType), nil
	case "set":
		return cty.Set(elementType), nil
	default:
		return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", call.Name)
	}
}
