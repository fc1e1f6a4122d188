package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/seriesgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// listFlag collects a repeatable or comma-separated flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// varsFlag collects repeatable name=value pairs.
type varsFlag map[string]string

func (v varsFlag) String() string {
	parts := make([]string, 0, len(v))
	for name, value := range v {
		parts = append(parts, name+"="+value)
	}
	return strings.Join(parts, ",")
}

func (v varsFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return errors.New("expected name=value")
	}
	v[strings.TrimSpace(name)] = value
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("seriesgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
SeriesGrid - Evaluates periodic financial models over a schedule of periods.

Usage:
  seriesgrid [options] [MODEL]
  seriesgrid -example [options]

Arguments:
  MODEL
    Location of an .hcl or .json model document: a local path,
    an http(s):// URL or s3://bucket/key.

Options:
`)
		flagSet.PrintDefaults()
	}

	var (
		selects listFlag
		vars    = varsFlag{}
	)
	modelFlag := flagSet.String("model", "", "Location of the model document.")
	mFlag := flagSet.String("m", "", "Location of the model document (shorthand).")
	exampleFlag := flagSet.Bool("example", false, "Evaluate the built-in example model.")
	nameFlag := flagSet.String("name", "", "Model to evaluate when the document declares several.")
	flagSet.Var(vars, "var", "Set a document variable, as name=value. Repeatable.")
	periodsFlag := flagSet.Int("periods", app.DefaultPeriods, "Number of periods to evaluate, at the model's frequency.")
	formatFlag := flagSet.String("format", "", "Output format: 'csv', 'json' or 'text'. Defaults to the output extension, else text.")
	outputFlag := flagSet.String("output", "", "Output location. Defaults to standard output.")
	oFlag := flagSet.String("o", "", "Output location (shorthand).")
	flagSet.Var(&selects, "select", "Only output rows under these field paths, e.g. 'total_expenses'. Repeatable.")
	normalizeFlag := flagSet.String("normalize", "", "Write the loaded models to this location, as HCL or JSON by extension, instead of evaluating. '-' is standard output.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	awsRegionFlag := flagSet.String("aws-region", "", "AWS region for s3:// locations. Defaults to the shared AWS configuration.")
	awsProfileFlag := flagSet.String("aws-profile", "", "AWS shared config profile for s3:// locations.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *modelFlag != "" {
		path = *modelFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Model location determined.", "path", path)

	if path == "" && !*exampleFlag {
		slog.Debug("No model provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if *periodsFlag <= 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid periods: must be positive"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ModelPath:     path,
		Example:       *exampleFlag,
		ModelName:     *nameFlag,
		Vars:          vars,
		Periods:       *periodsFlag,
		Format:        *formatFlag,
		OutputPath:    outputPath,
		Select:        selects,
		NormalizePath: *normalizeFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		AWSRegion:     *awsRegionFlag,
		AWSProfile:    *awsProfileFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
