package jsonschema

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/boxschema/internal/option"
)

func newTestGenerator() *Generator {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return NewGenerator(option.Root(), meta, WithLogger(logger))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "schema.json", OutputPath("schema.json", "en"))
	assert.Equal(t, "schema.json", OutputPath("schema.json", ""))
	assert.Equal(t, "dist/schema.zh.json", OutputPath("dist/schema.json", "zh"))
}

func TestRenderDeterministic(t *testing.T) {
	g := newTestGenerator()
	first, err := g.Render("en")
	require.NoError(t, err)
	second, err := g.Render("en")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, bytes.HasSuffix(first, []byte("}\n")))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(first, &doc))
	assert.Equal(t, option.Version, doc["version"])
	assert.Equal(t, option.SchemaID, doc["$id"])
	assert.Contains(t, doc["definitions"], "Inbound")
}

func TestWriteThenCheck(t *testing.T) {
	g := newTestGenerator()
	path := filepath.Join(t.TempDir(), "out", "schema.json")

	_, err := g.Check(path, "en")
	assert.ErrorIs(t, err, ErrStale)

	require.NoError(t, g.Write(path, "en"))
	patch, err := g.Check(path, "en")
	require.NoError(t, err)
	assert.Empty(t, patch)

	// 缩进不同但内容相同时不算过期
	compact := NewGenerator(option.Root(), meta, WithIndent(""))
	require.NoError(t, compact.Write(path, "en"))
	_, err = g.Check(path, "en")
	require.NoError(t, err)

	zh := OutputPath(path, "zh")
	require.NoError(t, g.Write(zh, "zh"))
	patch, err = g.Check(zh, "en")
	assert.ErrorIs(t, err, ErrStale)
	assert.NotEmpty(t, patch)
}

func TestCheckDetectsDrift(t *testing.T) {
	g := newTestGenerator()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, g.Write(path, "en"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	doc["version"] = "0.0.1"
	delete(doc["definitions"].(map[string]any), "Service")
	data, err = json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	patch, err := g.Check(path, "en")
	require.ErrorIs(t, err, ErrStale)
	require.Len(t, patch, 2)

	pointers := []string{string(patch[0].Path), string(patch[1].Path)}
	assert.ElementsMatch(t, []string{"/version", "/definitions/Service"}, pointers)
}
