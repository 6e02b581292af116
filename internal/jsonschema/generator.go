package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wI2L/jsondiff"

	"github.com/creamcroissant/boxschema/internal/schema"
)

// ErrStale 表示已提交的 schema 文件与当前规则图派生结果不一致。
var ErrStale = errors.New("schema artifact is out of date / schema 文件已过期")

// Generator 派生并写出 schema 文件。
type Generator struct {
	root   *schema.ObjectRule
	meta   Options
	indent string
	logger *slog.Logger
}

// GeneratorOption 用于配置 Generator。
type GeneratorOption func(*Generator)

// WithLogger 设置日志实例。
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithIndent 设置输出缩进，空串输出紧凑 JSON。
func WithIndent(indent string) GeneratorOption {
	return func(g *Generator) {
		g.indent = indent
	}
}

// NewGenerator 创建生成器。meta 中的 Language 会被每次调用的 lang 覆盖。
func NewGenerator(root *schema.ObjectRule, meta Options, opts ...GeneratorOption) *Generator {
	g := &Generator{
		root:   root,
		meta:   meta,
		indent: "  ",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OutputPath 返回指定语言的输出路径：英文为 base 本身，其他语言在扩展名前插入语言代码，
// 例如 schema.json 与 schema.zh.json。
func OutputPath(base, lang string) string {
	if lang == "" || lang == "en" {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "." + lang + ext
}

// Render 派生指定语言的文档并编码为 JSON，末尾带换行。
func (g *Generator) Render(lang string) ([]byte, error) {
	meta := g.meta
	meta.Language = lang
	doc, err := Derive(g.root, meta)
	if err != nil {
		return nil, fmt.Errorf("derive schema: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", g.indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return buf.Bytes(), nil
}

// Write 将派生结果写入 path，必要时创建父目录。
func (g *Generator) Write(path, lang string) error {
	data, err := g.Render(lang)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	g.logger.Info("schema generated", "path", path, "lang", lang, "bytes", len(data))
	return nil
}

// Check 将 path 处已有文件与新派生结果比较，返回两者之间的差异。
// 存在差异时返回的错误包装 ErrStale；文件不存在同样视为过期。
func (g *Generator) Check(path, lang string) (jsondiff.Patch, error) {
	fresh, err := g.Render(lang)
	if err != nil {
		return nil, err
	}
	existing, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrStale, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	patch, err := jsondiff.CompareJSON(existing, fresh)
	if err != nil {
		return nil, fmt.Errorf("compare %s: %w", path, err)
	}
	if len(patch) > 0 {
		for _, op := range patch {
			g.logger.Debug("schema drift", "path", path, "op", op.Type, "pointer", op.Path)
		}
		return patch, fmt.Errorf("%w: %s (%d change(s))", ErrStale, path, len(patch))
	}
	g.logger.Debug("schema up to date", "path", path, "lang", lang)
	return nil, nil
}
