// Command mtparse parses message templates and prints their structure.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/msgtemplate/internal/cli"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/cache"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/catalog"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/config"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/observability"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/render"
)

func main() {
	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run is the testable body of main. Logs go to errW.
func run(in io.Reader, outW, errW io.Writer, args []string) (err error) {
	opts, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	s := opts.Settings

	logger := newLogger(errW, s)
	dialect, _ := msgtemplate.ParseDialect(s.Dialect)
	logger = observability.EnrichLogger(logger, s.Source, dialect.String())

	texts, err := readTemplates(in, opts)
	if err != nil {
		return err
	}

	tel, err := newTelemetry(errW, s)
	if err != nil {
		return err
	}
	defer func() {
		if ferr := tel.flush(context.Background()); ferr != nil && err == nil {
			err = ferr
		}
	}()
	metrics, spans := tel.metrics, tel.spans

	parser := msgtemplate.NewParser(s.ParserOptions(logger)...)
	templates := cache.New(parser,
		cache.WithMaxEntries(s.CacheMaxEntries),
		cache.WithLogger(logger),
		cache.WithMetrics(metrics),
	)

	var renderer *render.Renderer
	vars := s.RenderVars()
	if len(vars) > 0 {
		renderer = render.NewRenderer(append(s.RendererOptions(logger), render.WithMetrics(metrics))...)
	}

	var recorder *catalog.Recorder
	if s.CatalogPath != "" {
		store, err := catalog.NewSQLiteStore(s.CatalogPath)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer store.Close()
		recorder = catalog.NewRecorder(store, catalog.WithLogger(logger), catalog.WithMetrics(metrics))
	}

	ctx, scanSpan := spans.StartScanSpan(context.Background(), s.Source, dialect.String())
	done := observability.TimedOperation()

	results := make([]result, 0, len(texts))
	properties := 0
	var runErr error
	for i, text := range texts {
		res, err := process(ctx, spans, i, text, templates, renderer, vars, recorder, s.Source, dialect)
		if err != nil {
			runErr = err
			break
		}
		properties += len(res.Properties)
		results = append(results, res)
	}
	spans.EndSpanWithError(scanSpan, runErr)
	observability.LogScanComplete(logger, s.Source, len(results), properties, done())

	if runErr != nil {
		return runErr
	}
	return writeResults(outW, s.Output, results)
}

func process(
	ctx context.Context,
	spans observability.SpanManager,
	index int,
	text string,
	templates *cache.Cache,
	renderer *render.Renderer,
	vars map[string]any,
	recorder *catalog.Recorder,
	source string,
	dialect msgtemplate.Dialect,
) (res result, err error) {
	ctx, span := spans.StartTemplateSpan(ctx, index)
	defer func() { spans.EndSpanWithError(span, err) }()

	tmpl := templates.Parse(ctx, text)
	res = newResult(tmpl)

	if renderer != nil {
		out, err := renderer.RenderContext(ctx, tmpl, vars)
		if err != nil {
			return result{}, &cli.ExitError{Code: 1, Message: fmt.Sprintf("template %d: %v", index+1, err)}
		}
		res.Rendered = &out
	}

	if recorder != nil {
		e, err := recorder.Record(ctx, source, tmpl, dialect)
		if err != nil {
			return result{}, fmt.Errorf("record template %d: %w", index+1, err)
		}
		res.CatalogID = e.ID
	}
	return res, nil
}

// readTemplates returns the positional templates, the lines of -file, or
// the lines of in, in that order of preference.
func readTemplates(in io.Reader, opts *cli.Options) ([]string, error) {
	if len(opts.Templates) > 0 {
		return opts.Templates, nil
	}
	if opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil {
			return nil, fmt.Errorf("open templates file: %w", err)
		}
		defer f.Close()
		in = f
	}

	var lines []string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return lines, nil
}

func newLogger(w io.Writer, s config.Settings) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: s.SlogLevel()}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

func writeResults(w io.Writer, format string, results []result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, r := range results {
			writeText(w, r)
		}
		return nil
	}
}
