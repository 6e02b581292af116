package versioncheck

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMinorSeriesComparison(t *testing.T) {
	c, err := NewChecker("1.11.1", WithLogger(quietLogger()))
	require.NoError(t, err)

	refs := c.CheckContent("README.md", []byte("Supports Sing-box v1.11.x configuration."))
	require.Len(t, refs, 1)
	assert.True(t, refs[0].Match)
	assert.Equal(t, "1.11", refs[0].Found)

	refs = c.CheckContent("README.md", []byte("Supports Sing-box v1.10.x configuration."))
	require.Len(t, refs, 1)
	assert.False(t, refs[0].Match)
}

func TestCheckContentPatterns(t *testing.T) {
	c, err := NewChecker("v1.12.0", WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, "1.12.0", c.Expected())

	tests := []struct {
		name    string
		line    string
		pattern string
		found   string
		match   bool
	}{
		{"badge", "![](https://img.shields.io/badge/sing--box-v1.12.0-blue)", "badge", "1.12.0", true},
		{"badge upper", "![](https://img.shields.io/badge/Sing--box-1.11.0-blue)", "badge", "1.11.0", false},
		{"schema package", "npm install @creamcroissant/sing-box-schema@1.12.0", "schema package", "1.12.0", true},
		{"release", "https://github.com/x/y/releases/download/v1.12.1/schema.json", "release download", "1.12.1", false},
		{"cdn", "https://cdn.jsdelivr.net/npm/sing-box-config@1.12.0/schema.json", "cdn download", "1.12.0", true},
		{"declared", `	Version  = "1.12.0"`, "declared version", "1.12.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := c.CheckContent("f", []byte(tt.line))
			require.Len(t, refs, 1)
			assert.Equal(t, tt.pattern, refs[0].Pattern)
			assert.Equal(t, tt.found, refs[0].Found)
			assert.Equal(t, tt.match, refs[0].Match)
		})
	}
}

func TestCheckContentOverlappingPatterns(t *testing.T) {
	c, err := NewChecker("1.12.0", WithLogger(quietLogger()))
	require.NoError(t, err)

	// schema@ 与 jsdelivr 写法命中同一处版本号，只记录一次
	refs := c.CheckContent("README.md", []byte(
		"line one\n<https://cdn.jsdelivr.net/npm/sing-box-schema@1.12.0/schema.json> and Sing-box v1.12.x\n",
	))
	require.Len(t, refs, 2)
	assert.Equal(t, 2, refs[0].Line)
	assert.Equal(t, "schema package", refs[0].Pattern)
	assert.Equal(t, "minor series", refs[1].Pattern)
}

func TestRunCollectsEveryMismatch(t *testing.T) {
	dir := t.TempDir()
	readme := writeFile(t, dir, "README.md", "badge/sing--box-v1.12.0-blue\nSing-box v1.11.x\n")
	zh := writeFile(t, dir, "README.zh.md", "releases/download/v1.10.0/schema.json\n")
	manifest := writeFile(t, dir, "schema/package.json", "{\n  \"name\": \"sing-box-schema\",\n  \"version\": \"1.11.0\"\n}\n")
	source := writeFile(t, dir, "config.go", "const (\n\tVersion  = \"1.12.0\"\n)\n")

	c, err := NewChecker("1.12.0", WithManifest(manifest), WithLogger(quietLogger()))
	require.NoError(t, err)

	report, err := c.Run([]string{readme, zh, manifest, source})
	require.NoError(t, err)
	assert.Len(t, report.References, 5)
	require.Len(t, report.Mismatches, 3)
	assert.False(t, report.OK())

	err = report.Err()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.True(t, errors.Is(err, ErrMismatch))

	var mismatch *Mismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, readme, mismatch.File)
	assert.Equal(t, 2, mismatch.Line)

	last := report.Mismatches[2]
	assert.Equal(t, "manifest", last.Pattern)
	assert.Equal(t, 3, last.Line)
	assert.Contains(t, last.Error(), "1.11.0 does not match 1.12.0")
}

func TestRunMissingFile(t *testing.T) {
	c, err := NewChecker("1.12.0", WithLogger(quietLogger()))
	require.NoError(t, err)

	report, err := c.Run([]string{filepath.Join(t.TempDir(), "nope.md")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, report.OK())
}

func TestNewCheckerRejectsInvalidVersion(t *testing.T) {
	_, err := NewChecker("latest")
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestManifestVersion(t *testing.T) {
	v, err := ManifestVersion([]byte(`{"version": "1.12.0"}`))
	require.NoError(t, err)
	assert.Equal(t, "1.12.0", v)

	_, err = ManifestVersion([]byte(`{"version": 1}`))
	assert.ErrorIs(t, err, ErrInvalidVersion)
	_, err = ManifestVersion([]byte(`{`))
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestSync(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "package.json", "{\n  \"name\": \"sing-box-schema\",\n  \"version\": \"1.11.0\",\n  \"files\": [\"schema.json\"]\n}\n")

	previous, changed, err := Sync(path, "v1.12.0")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "1.11.0", previous)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"sing-box-schema\",\n  \"version\": \"1.12.0\",\n  \"files\": [\"schema.json\"]\n}\n", string(data))

	_, changed, err = Sync(path, "1.12.0")
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = Sync(path, "not-a-version")
	assert.ErrorIs(t, err, ErrInvalidVersion)
}
