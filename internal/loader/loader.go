package loader

import (
	"context"
	"fmt"

	"github.com/vk/seriesgrid/internal/ctxlog"
	"github.com/vk/seriesgrid/internal/multifamily"
	"github.com/vk/seriesgrid/internal/schema"
)

// Model is a named, fully wired model tree.
type Model struct {
	Name string
	Root *multifamily.NetOperatingIncome
}

// Load parses a document, resolves its variables and builds every model it
// declares, in document order.
func Load(ctx context.Context, filename string, src []byte, overrides map[string]string) ([]Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loader started.", "file", filename, "format", schema.FormatOf(filename))

	f, err := schema.Parse(filename, src)
	if err != nil {
		return nil, err
	}
	logger.Debug("Document parsed.", "variables", len(f.Variables))

	evalCtx, err := EvalContext(ctx, f.Variables, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve variables in %s: %w", filename, err)
	}

	decoded, err := f.DecodeModels(evalCtx)
	if err != nil {
		return nil, err
	}

	models := make([]Model, 0, len(decoded))
	for _, m := range decoded {
		root, err := Build(m)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", filename, err)
		}
		models = append(models, Model{Name: m.Name, Root: root})
		logger.Debug("Model built.", "model", m.Name)
	}

	logger.Debug("Loading complete.", "models", len(models))
	return models, nil
}

// Select returns the model called name. An empty name selects the only model
// of a single-model document.
func Select(models []Model, name string) (Model, error) {
	if name == "" {
		if len(models) == 1 {
			return models[0], nil
		}
		return Model{}, fmt.Errorf("document declares %d models, choose one by name", len(models))
	}
	for _, m := range models {
		if m.Name == name {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("model %q not found", name)
}
