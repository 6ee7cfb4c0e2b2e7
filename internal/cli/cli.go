package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/config"
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

// Options is the validated result of Parse.
type Options struct {
	Settings config.Settings

	// File holds templates one per line. Empty means positional arguments
	// or, when there are none, standard input.
	File string

	// Templates are the positional arguments.
	Templates []string
}

// Parse processes command-line arguments. It returns populated Options,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Flags given explicitly override values from -config.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("mtparse", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mtparse - parse structured-logging message templates.

Usage:
  mtparse [options] [TEMPLATE...]

Templates are read from the arguments, from -file (one per line) or from
standard input when neither is given.

Options:
`)
		flagSet.PrintDefaults()
	}

	d := config.Default()
	configFlag := flagSet.String("config", "", "Settings file (.yaml, .yml, .json or .hcl).")
	fileFlag := flagSet.String("file", "", "Read templates from this file, one per line.")
	dialectFlag := flagSet.String("dialect", d.Dialect, "Grammar dialect: 'permissive' or 'strict'.")
	missingFlag := flagSet.String("missing", d.MissingAction, "Unbound properties when rendering: 'keep', 'empty' or 'error'.")
	outputFlag := flagSet.String("output", d.Output, "Output format: 'text', 'json' or 'yaml'.")
	catalogFlag := flagSet.String("catalog", d.CatalogPath, "Record templates in this SQLite catalog.")
	sourceFlag := flagSet.String("source", d.Source, "Source name for catalog entries.")
	cacheFlag := flagSet.Int("cache-size", d.CacheMaxEntries, "Maximum cached templates. 0 is unlimited.")
	logLevelFlag := flagSet.String("log-level", d.LogLevel, "Logging level: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", d.LogFormat, "Log output format: 'text' or 'json'.")
	metricsFlag := flagSet.Bool("metrics", d.Metrics, "Record OpenTelemetry metrics.")
	tracingFlag := flagSet.Bool("tracing", d.Tracing, "Record OpenTelemetry spans.")
	var renderPairs []string
	flagSet.Func("render", "Render each template with `key=value` (repeatable).", func(s string) error {
		renderPairs = append(renderPairs, s)
		return nil
	})

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	settings := d
	if *configFlag != "" {
		loaded, err := config.LoadSettings(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		settings = loaded
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dialect":
			settings.Dialect = strings.ToLower(*dialectFlag)
		case "missing":
			settings.MissingAction = strings.ToLower(*missingFlag)
		case "output":
			settings.Output = strings.ToLower(*outputFlag)
		case "catalog":
			settings.CatalogPath = *catalogFlag
		case "source":
			settings.Source = *sourceFlag
		case "cache-size":
			settings.CacheMaxEntries = *cacheFlag
		case "log-level":
			settings.LogLevel = strings.ToLower(*logLevelFlag)
		case "log-format":
			settings.LogFormat = strings.ToLower(*logFormatFlag)
		case "metrics":
			settings.Metrics = *metricsFlag
		case "tracing":
			settings.Tracing = *tracingFlag
		case "render":
			settings.Render = append(settings.Render, renderPairs...)
		}
	})

	if err := settings.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if *fileFlag != "" && flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: "cannot combine -file with template arguments"}
	}

	return &Options{
		Settings:  settings,
		File:      *fileFlag,
		Templates: flagSet.Args(),
	}, false, nil
}
