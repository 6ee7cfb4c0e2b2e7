package config

import (
	"fmt"
	"slices"
	"sort"
)

// Config holds the raw values decoded from a settings file, keyed by the
// Key* constants. FromConfig turns it into Settings.
type Config struct {
	values map[string]any
}

// New creates a Config from decoded values. A nil map is treated as empty.
func New(values map[string]any) Config {
	if values == nil {
		values = make(map[string]any)
	}
	return Config{values: values}
}

// settingKeys is every key FromConfig reads.
var settingKeys = []string{
	KeyDialect, KeyMissingAction, KeyOutput, KeyLogLevel, KeyLogFormat,
	KeyCatalogPath, KeySource, KeyCacheMaxEntries, KeyMetrics, KeyTracing, KeyRender,
}

// Has reports whether key was present in the file, even with a null value.
func (c Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Lookup returns the decoded value for key as the file format produced it.
func (c Config) Lookup(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Unknown returns the keys that do not name a setting, sorted.
func (c Config) Unknown() []string {
	var unknown []string
	for k := range c.values {
		if !slices.Contains(settingKeys, k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// decoder copies config values into settings fields and keeps the first
// type mismatch. Absent and null values leave the field untouched.
type decoder struct {
	c   Config
	err error
}

func decodeInto[T any](d *decoder, key, want string, conv func(any) (T, bool), dst *T) {
	if d.err != nil {
		return
	}
	v, ok := d.c.values[key]
	if !ok || v == nil {
		return
	}
	t, ok := conv(v)
	if !ok {
		d.err = &ConfigError{Field: key, Value: fmt.Sprint(v), Reason: "must be " + want}
		return
	}
	*dst = t
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asInt accepts the integer shapes the decoders produce: int from YAML and
// HCL, float64 from JSON when it has no fractional part.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// asStrings accepts []string from HCL and []any of strings from YAML and JSON.
func asStrings(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return slices.Clone(list), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
