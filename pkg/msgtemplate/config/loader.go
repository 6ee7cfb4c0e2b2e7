package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// FromFile loads configuration from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json, .hcl
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	case ".hcl":
		return FromHCL(data, path)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}

// hclFile is the decoding target for HCL settings files. Every attribute
// is optional; only the ones present end up in the Config.
type hclFile struct {
	Dialect         *string  `hcl:"dialect,optional"`
	MissingAction   *string  `hcl:"missing_action,optional"`
	Output          *string  `hcl:"output,optional"`
	LogLevel        *string  `hcl:"log_level,optional"`
	LogFormat       *string  `hcl:"log_format,optional"`
	CatalogPath     *string  `hcl:"catalog_path,optional"`
	Source          *string  `hcl:"source,optional"`
	CacheMaxEntries *int     `hcl:"cache_max_entries,optional"`
	Metrics         *bool    `hcl:"metrics,optional"`
	Tracing         *bool    `hcl:"tracing,optional"`
	Render          []string `hcl:"render,optional"`
}

// FromHCL parses HCL data into a Config. filename is used in diagnostics.
func FromHCL(data []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("parse hcl %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(f.Body, nil, &parsed)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("decode hcl %s: %w", filename, diags)
	}
	return New(parsed.toMap()), nil
}

func (h hclFile) toMap() map[string]any {
	m := make(map[string]any)
	setString := func(key string, v *string) {
		if v != nil {
			m[key] = *v
		}
	}
	setString(KeyDialect, h.Dialect)
	setString(KeyMissingAction, h.MissingAction)
	setString(KeyOutput, h.Output)
	setString(KeyLogLevel, h.LogLevel)
	setString(KeyLogFormat, h.LogFormat)
	setString(KeyCatalogPath, h.CatalogPath)
	setString(KeySource, h.Source)
	if h.CacheMaxEntries != nil {
		m[KeyCacheMaxEntries] = *h.CacheMaxEntries
	}
	if h.Metrics != nil {
		m[KeyMetrics] = *h.Metrics
	}
	if h.Tracing != nil {
		m[KeyTracing] = *h.Tracing
	}
	if h.Render != nil {
		m[KeyRender] = h.Render
	}
	return m
}
