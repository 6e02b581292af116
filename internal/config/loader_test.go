package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/boxschema/internal/option"
	"github.com/creamcroissant/boxschema/internal/schema"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "schema.json", cfg.Schema.Output)
	assert.Equal(t, []string{"en"}, cfg.Schema.Languages)
	assert.Equal(t, schema.DefaultMaxDepth, cfg.Validate.MaxDepth)
	assert.False(t, cfg.Validate.AllowUnknownFields)
	assert.Equal(t, "en-US", cfg.Validate.Lang)
	assert.Equal(t, 4, cfg.Validate.Concurrency)
	assert.Equal(t, option.Version, cfg.Version.Expected)
	assert.Equal(t, "schema/package.json", cfg.Version.Manifest)
	assert.Contains(t, cfg.Version.Files, "internal/option/config.go")
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxschema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
schema:
  output: dist/schema.json
  languages: [en, zh]
validate:
  max_depth: 64
  allow_unknown_fields: true
`), 0o644))
	t.Setenv("BOXSCHEMA_VALIDATE_LANG", "zh-CN")
	t.Setenv("BOXSCHEMA_VALIDATE_CONCURRENCY", "8")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dist/schema.json", cfg.Schema.Output)
	assert.Equal(t, []string{"en", "zh"}, cfg.Schema.Languages)
	assert.Equal(t, 64, cfg.Validate.MaxDepth)
	assert.True(t, cfg.Validate.AllowUnknownFields)
	assert.Equal(t, "zh-CN", cfg.Validate.Lang)
	assert.Equal(t, 8, cfg.Validate.Concurrency)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())

	opts, err := cfg.Log.LoggingOptions()
	require.NoError(t, err)
	assert.Equal(t, "json", opts.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"depth":     "validate:\n  max_depth: 0\n",
		"workers":   "validate:\n  concurrency: -1\n",
		"languages": "schema:\n  languages: []\n",
		"log level": "log:\n  level: chatty\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
