/*
Package config loads msgtemplate tool settings from YAML, JSON or HCL.

# Overview

Loading happens in two steps. A file is decoded into a Config, the raw
values keyed by the Key* constants. FromConfig then reads the Config into
Settings, the typed settings consumed by the parser, renderer and CLI.
Absent keys take their Default value; unknown keys and values of the wrong
type are errors.

	settings, err := config.LoadSettings("mtparse.yaml")
	if err != nil {
	    return err
	}
	p := msgtemplate.NewParser(settings.ParserOptions(logger)...)

# File Formats

FromFile picks the decoder by extension: .yaml and .yml use gopkg.in/yaml.v3,
.json uses encoding/json, and .hcl uses hashicorp/hcl/v2:

	dialect           = "strict"
	missing_action    = "error"
	cache_max_entries = 512
	render            = ["env=prod", "region=eu"]

Unknown keys are rejected in every format: HCL when the file is decoded,
YAML and JSON by FromConfig.

# Validation

Settings.Validate reports the first invalid field as a *ConfigError, which
wraps ErrInvalidConfig:

	if errors.Is(err, config.ErrInvalidConfig) { ... }
*/
package config
