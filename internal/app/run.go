package app

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/vk/seriesgrid/internal/ctxlog"
	"github.com/vk/seriesgrid/internal/evaluate"
	"github.com/vk/seriesgrid/internal/export"
	"github.com/vk/seriesgrid/internal/fsutil"
	"github.com/vk/seriesgrid/internal/loader"
	"github.com/vk/seriesgrid/internal/multifamily"
	"github.com/vk/seriesgrid/internal/period"
	"github.com/vk/seriesgrid/internal/schema"
)

// exampleName names the built-in model.
const exampleName = "example"

// Run executes one run: load the models, then either normalize them or
// evaluate the selected one and export the result.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "run_id", ulid.Make().String())
	logger := ctxlog.FromContext(ctx)
	started := time.Now()
	logger.Debug("App.Run method started.")

	models, err := a.loadModels(ctx)
	if err != nil {
		return err
	}

	if a.config.NormalizePath != "" {
		if err := a.normalize(ctx, models); err != nil {
			return err
		}
		logger.Info("Run finished.", "mode", "normalize", "elapsed", time.Since(started))
		return nil
	}

	m, err := loader.Select(models, a.config.ModelName)
	if err != nil {
		return err
	}
	logger.Info("Evaluating model.", "model", m.Name, "periods", a.config.Periods)

	report, err := a.evaluate(m)
	if err != nil {
		return fmt.Errorf("failed to evaluate model %q: %w", m.Name, err)
	}
	if err := a.export(ctx, report); err != nil {
		return err
	}

	logger.Info("Run finished.", "mode", "evaluate", "model", m.Name, "rows", len(report.Rows), "elapsed", time.Since(started))
	return nil
}

func (a *App) loadModels(ctx context.Context) ([]loader.Model, error) {
	logger := ctxlog.FromContext(ctx)

	if a.config.Example {
		logger.Debug("Using the built-in example model.")
		return []loader.Model{{Name: exampleName, Root: multifamily.NewExample()}}, nil
	}

	locations := []string{a.config.ModelPath}
	if fsutil.IsDir(a.config.ModelPath) {
		found, err := fsutil.FindFilesByExtension(a.config.ModelPath, ".hcl", ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to search %s for model documents: %w", a.config.ModelPath, err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no .hcl or .json documents found in %s", a.config.ModelPath)
		}
		logger.Debug("Discovered model documents.", "count", len(found))
		locations = found
	}

	var models []loader.Model
	seen := make(map[string]string)
	for _, location := range locations {
		src, err := a.store.Read(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to read model: %w", err)
		}
		loaded, err := loader.Load(ctx, location, src, a.config.Vars)
		if err != nil {
			return nil, err
		}
		for _, m := range loaded {
			if first, ok := seen[m.Name]; ok {
				return nil, fmt.Errorf("model %q is declared in both %s and %s", m.Name, first, location)
			}
			seen[m.Name] = location
		}
		models = append(models, loaded...)
	}

	logger.Info("Models loaded.", "location", a.config.ModelPath, "count", len(models))
	return models, nil
}

// normalize writes every model back out without variables, in the syntax
// implied by the target location.
func (a *App) normalize(ctx context.Context, models []loader.Model) error {
	docs := make([]*schema.Model, len(models))
	for i, m := range models {
		docs[i] = loader.ToSchema(m.Name, m.Root)
	}

	data, err := schema.Encode(schema.FormatOf(a.config.NormalizePath), docs)
	if err != nil {
		return err
	}
	return a.write(ctx, a.config.NormalizePath, data)
}

func (a *App) evaluate(m loader.Model) (export.Report, error) {
	root := m.Root
	periods, err := period.Schedule(root.RefDate, root.Freq, a.config.Periods)
	if err != nil {
		return export.Report{}, err
	}

	tree, err := evaluate.FieldValues(root, periods)
	if err != nil {
		return export.Report{}, err
	}
	rows, err := evaluate.Select(evaluate.Flatten(tree), a.config.selectPaths()...)
	if err != nil {
		return export.Report{}, err
	}
	return export.Report{Model: m.Name, Periods: periods, Rows: rows}, nil
}

func (a *App) export(ctx context.Context, report export.Report) error {
	data, err := export.Render(a.config.exportFormat(), report)
	if err != nil {
		return err
	}
	return a.write(ctx, a.config.OutputPath, data)
}

// write sends data to location, or to the output writer for "" and "-".
func (a *App) write(ctx context.Context, location string, data []byte) error {
	if location == "" || location == "-" {
		if _, err := a.outW.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := a.store.Write(ctx, location, data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Output written.", "location", location, "bytes", len(data))
	return nil
}
