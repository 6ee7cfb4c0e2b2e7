package config_test

import (
	"log/slog"
	"testing"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/config"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := config.Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, "permissive", s.Dialect)
	assert.Equal(t, "keep", s.MissingAction)
	assert.Equal(t, "text", s.Output)
	assert.Equal(t, slog.LevelWarn, s.SlogLevel())
}

func TestFromConfig_UsesDefaults(t *testing.T) {
	s, err := config.FromConfig(config.New(map[string]any{"output": "json", "source": nil}))
	require.NoError(t, err)

	want := config.Default()
	want.Output = "json"
	assert.Equal(t, want, s)
}

func TestFromConfig_WrongType(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"dialect number", config.KeyDialect, 5},
		{"cache size string", config.KeyCacheMaxEntries, "ten"},
		{"cache size fraction", config.KeyCacheMaxEntries, 1.5},
		{"metrics string", config.KeyMetrics, "yes"},
		{"render scalar", config.KeyRender, "env=prod"},
		{"render mixed list", config.KeyRender, []any{"env=prod", 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.FromConfig(config.New(map[string]any{tt.key: tt.value}))
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)

			var cfgErr *config.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.key, cfgErr.Field)
			assert.Contains(t, cfgErr.Reason, "must be")
		})
	}
}

func TestFromConfig_UnknownKey(t *testing.T) {
	_, err := config.FromConfig(config.New(map[string]any{"dialect": "strict", "colour": "blue"}))

	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "colour", cfgErr.Field)
	assert.Equal(t, "is not a setting", cfgErr.Reason)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Settings)
		field  string
	}{
		{"bad dialect", func(s *config.Settings) { s.Dialect = "loose" }, config.KeyDialect},
		{"bad missing action", func(s *config.Settings) { s.MissingAction = "ignore" }, config.KeyMissingAction},
		{"bad output", func(s *config.Settings) { s.Output = "xml" }, config.KeyOutput},
		{"bad log level", func(s *config.Settings) { s.LogLevel = "trace" }, config.KeyLogLevel},
		{"bad log format", func(s *config.Settings) { s.LogFormat = "logfmt" }, config.KeyLogFormat},
		{"negative cache size", func(s *config.Settings) { s.CacheMaxEntries = -1 }, config.KeyCacheMaxEntries},
		{"render pair without equals", func(s *config.Settings) { s.Render = []string{"env"} }, config.KeyRender},
		{"render pair without key", func(s *config.Settings) { s.Render = []string{"=prod"} }, config.KeyRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.Default()
			tt.modify(&s)

			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)

			var cfgErr *config.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	path := writeFile(t, "mtparse.yaml", "dialect: strict\nmissing_action: error\n")
	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "strict", s.Dialect)

	typo := writeFile(t, "typo.yaml", "dialet: strict\n")
	_, err = config.LoadSettings(typo)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "typo.yaml")

	bad := writeFile(t, "bad.yaml", "dialect: loose\n")
	_, err = config.LoadSettings(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestParserOptions(t *testing.T) {
	s := config.Default()
	s.Dialect = "strict"

	p := msgtemplate.NewParser(s.ParserOptions(nil)...)
	assert.Equal(t, msgtemplate.DialectStrict, p.Dialect())
	assert.False(t, p.Parse("${}").HasProperties())
}

func TestRendererOptions(t *testing.T) {
	s := config.Default()
	s.MissingAction = "error"

	r := render.NewRenderer(s.RendererOptions(nil)...)
	_, err := r.RenderString("{missing}", nil)
	assert.Error(t, err)

	s.MissingAction = "empty"
	r = render.NewRenderer(s.RendererOptions(nil)...)
	out, err := r.RenderString("a{missing}b", nil)
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestRenderVars(t *testing.T) {
	s := config.Default()
	s.Render = []string{"env=prod", "url=http://x?a=b", "env=dev"}
	assert.Equal(t, map[string]any{"env": "dev", "url": "http://x?a=b"}, s.RenderVars())
}

func TestSlogLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warning": slog.LevelWarn, "error": slog.LevelError,
	} {
		s := config.Settings{LogLevel: name}
		assert.Equal(t, want, s.SlogLevel(), name)
	}
}
