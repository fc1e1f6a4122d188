package app

import (
	"errors"
	"fmt"

	"github.com/vk/seriesgrid/internal/export"
	"github.com/vk/seriesgrid/internal/fieldpath"
)

// DefaultPeriods is ten years of monthly periods.
const DefaultPeriods = 120

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath string // local path, http(s) URL or s3://bucket/key
	Example   bool   // use the built-in example model instead of ModelPath
	ModelName string
	Vars      map[string]string

	Periods    int
	Format     string // empty: implied by OutputPath, else text
	OutputPath string // empty or "-": the app's output writer
	Select     []string

	// NormalizePath switches the run to re-encoding the document's models
	// instead of evaluating them.
	NormalizePath string

	LogFormat string
	LogLevel  string

	AWSRegion  string
	AWSProfile string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" && !cfg.Example {
		return nil, errors.New("a model location is required unless the example model is used")
	}
	if cfg.ModelPath != "" && cfg.Example {
		return nil, errors.New("a model location and the example model are mutually exclusive")
	}
	if cfg.Periods < 0 {
		return nil, fmt.Errorf("periods must not be negative, got %d", cfg.Periods)
	}
	if cfg.Periods == 0 {
		cfg.Periods = DefaultPeriods
	}
	if cfg.Format != "" {
		f, err := export.ParseFormat(cfg.Format)
		if err != nil {
			return nil, err
		}
		cfg.Format = string(f)
	}
	for _, s := range cfg.Select {
		if _, err := fieldpath.Parse(s); err != nil {
			return nil, fmt.Errorf("invalid select path %q: %w", s, err)
		}
	}

	return &cfg, nil
}

// exportFormat is the configured format or the one implied by the output
// location.
func (c *Config) exportFormat() export.Format {
	if c.Format != "" {
		return export.Format(c.Format)
	}
	return export.FormatOf(c.OutputPath, export.Text)
}

func (c *Config) selectPaths() []fieldpath.Path {
	paths := make([]fieldpath.Path, 0, len(c.Select))
	for _, s := range c.Select {
		paths = append(paths, fieldpath.MustParse(s))
	}
	return paths
}
