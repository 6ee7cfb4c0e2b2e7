package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/render"
)

// Configuration keys shared by every file format.
const (
	KeyDialect         = "dialect"
	KeyMissingAction   = "missing_action"
	KeyOutput          = "output"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyCatalogPath     = "catalog_path"
	KeySource          = "source"
	KeyCacheMaxEntries = "cache_max_entries"
	KeyMetrics         = "metrics"
	KeyTracing         = "tracing"
	KeyRender          = "render"
)

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("invalid config")

// ConfigError describes one invalid setting.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Settings are the typed settings for the parser, renderer and CLI.
type Settings struct {
	Dialect         string   `yaml:"dialect" json:"dialect"`
	MissingAction   string   `yaml:"missing_action" json:"missing_action"`
	Output          string   `yaml:"output" json:"output"`
	LogLevel        string   `yaml:"log_level" json:"log_level"`
	LogFormat       string   `yaml:"log_format" json:"log_format"`
	CatalogPath     string   `yaml:"catalog_path,omitempty" json:"catalog_path,omitempty"`
	Source          string   `yaml:"source" json:"source"`
	CacheMaxEntries int      `yaml:"cache_max_entries" json:"cache_max_entries"`
	Metrics         bool     `yaml:"metrics" json:"metrics"`
	Tracing         bool     `yaml:"tracing" json:"tracing"`
	Render          []string `yaml:"render,omitempty" json:"render,omitempty"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Dialect:       msgtemplate.DialectPermissive.String(),
		MissingAction: "keep",
		Output:        "text",
		LogLevel:      "warn",
		LogFormat:     "text",
		Source:        "cli",
	}
}

// FromConfig reads Settings from c, using Default() for absent or null
// keys. Unknown keys and values of the wrong type are reported as a
// *ConfigError; range checks are left to Validate.
func FromConfig(c Config) (Settings, error) {
	if unknown := c.Unknown(); len(unknown) > 0 {
		v, _ := c.Lookup(unknown[0])
		return Settings{}, &ConfigError{Field: unknown[0], Value: fmt.Sprint(v), Reason: "is not a setting"}
	}

	s := Default()
	d := &decoder{c: c}
	decodeInto(d, KeyDialect, "a string", asString, &s.Dialect)
	decodeInto(d, KeyMissingAction, "a string", asString, &s.MissingAction)
	decodeInto(d, KeyOutput, "a string", asString, &s.Output)
	decodeInto(d, KeyLogLevel, "a string", asString, &s.LogLevel)
	decodeInto(d, KeyLogFormat, "a string", asString, &s.LogFormat)
	decodeInto(d, KeyCatalogPath, "a string", asString, &s.CatalogPath)
	decodeInto(d, KeySource, "a string", asString, &s.Source)
	decodeInto(d, KeyCacheMaxEntries, "a whole number", asInt, &s.CacheMaxEntries)
	decodeInto(d, KeyMetrics, "true or false", asBool, &s.Metrics)
	decodeInto(d, KeyTracing, "true or false", asBool, &s.Tracing)
	decodeInto(d, KeyRender, "a list of strings", asStrings, &s.Render)
	if d.err != nil {
		return Settings{}, d.err
	}
	return s, nil
}

// LoadSettings loads path with FromFile, reads it into Settings and
// validates the result.
func LoadSettings(path string) (Settings, error) {
	c, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	s, err := FromConfig(c)
	if err != nil {
		return Settings{}, fmt.Errorf("load %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Validate checks every field and returns the first problem found.
func (s Settings) Validate() error {
	if _, ok := msgtemplate.ParseDialect(s.Dialect); !ok {
		return &ConfigError{Field: KeyDialect, Value: s.Dialect, Reason: "must be permissive or strict"}
	}
	if _, ok := render.ParseMissingAction(s.MissingAction); !ok {
		return &ConfigError{Field: KeyMissingAction, Value: s.MissingAction, Reason: "must be keep, empty or error"}
	}
	switch s.Output {
	case "text", "json", "yaml":
	default:
		return &ConfigError{Field: KeyOutput, Value: s.Output, Reason: "must be text, json or yaml"}
	}
	if _, ok := parseLevel(s.LogLevel); !ok {
		return &ConfigError{Field: KeyLogLevel, Value: s.LogLevel, Reason: "must be debug, info, warn or error"}
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return &ConfigError{Field: KeyLogFormat, Value: s.LogFormat, Reason: "must be text or json"}
	}
	if s.CacheMaxEntries < 0 {
		return &ConfigError{Field: KeyCacheMaxEntries, Value: fmt.Sprint(s.CacheMaxEntries), Reason: "must not be negative"}
	}
	for _, pair := range s.Render {
		if k, _, ok := strings.Cut(pair, "="); !ok || k == "" {
			return &ConfigError{Field: KeyRender, Value: pair, Reason: "must be key=value"}
		}
	}
	return nil
}

// ParserOptions converts the settings into parser options. Call Validate
// first; an unknown dialect falls back to permissive.
func (s Settings) ParserOptions(logger *slog.Logger) []msgtemplate.Option {
	d, _ := msgtemplate.ParseDialect(s.Dialect)
	return []msgtemplate.Option{
		msgtemplate.WithDialect(d),
		msgtemplate.WithLogger(logger),
	}
}

// RendererOptions converts the settings into renderer options.
func (s Settings) RendererOptions(logger *slog.Logger) []render.Option {
	action, _ := render.ParseMissingAction(s.MissingAction)
	return []render.Option{
		render.WithMissingAction(action),
		render.WithParser(msgtemplate.NewParser(s.ParserOptions(logger)...)),
		render.WithLogger(logger),
	}
}

// RenderVars returns the render pairs as a map. Later pairs win.
func (s Settings) RenderVars() map[string]any {
	vars := make(map[string]any, len(s.Render))
	for _, pair := range s.Render {
		if k, v, ok := strings.Cut(pair, "="); ok && k != "" {
			vars[k] = v
		}
	}
	return vars
}

// SlogLevel returns the configured log level, defaulting to warn.
func (s Settings) SlogLevel() slog.Level {
	level, ok := parseLevel(s.LogLevel)
	if !ok {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}
