// Package schema 提供配置文档的组合式校验模型：字段规则、可列表规则、
// 字段包（mixin）、判别联合以及递归规则树的惰性引用。
//
// 所有规则在包初始化阶段构建完成后即不可变，可以被多个 goroutine
// 并发用于校验。
package schema

import (
	"fmt"

	"go.uber.org/multierr"
)

// Kind 标识规则的结构类别。
type Kind string

const (
	KindString       Kind = "string"
	KindLiteral      Kind = "literal"
	KindInteger      Kind = "integer"
	KindNumber       Kind = "number"
	KindBoolean      Kind = "boolean"
	KindAny          Kind = "any"
	KindArray        Kind = "array"
	KindMap          Kind = "map"
	KindListable     Kind = "listable"
	KindObject       Kind = "object"
	KindUnion        Kind = "union"
	KindFallback     Kind = "fallback"
	KindAlternatives Kind = "alternatives"
	KindLazy         Kind = "lazy"
)

// Desc 保存多语言说明文本，键为语言代码（"en"、"zh"）。
type Desc map[string]string

// Doc 以英文和中文构造说明。
func Doc(en, zh string) Desc {
	d := Desc{}
	if en != "" {
		d["en"] = en
	}
	if zh != "" {
		d["zh"] = zh
	}
	return d
}

// Text 返回指定语言的说明，缺失时回退到英文。
func (d Desc) Text(lang string) string {
	if s, ok := d[lang]; ok {
		return s
	}
	return d["en"]
}

// Rule 是所有字段规则的公共接口。
//
// 实现集合是封闭的：派生 JSON Schema 时按具体类型分派。
type Rule interface {
	Kind() Kind
	check(c *checker, path string, v any) any
	expect() string
}

// Named 由可作为独立定义输出的规则实现。
type Named interface {
	Rule
	Name() string
}

// Field 描述对象中的一个字段。值类型，复制即不可变。
type Field struct {
	Name       string
	Rule       Rule
	Required   bool
	Doc        Desc
	Default    any
	Deprecated string

	origin string
}

// Opt 声明可选字段。
func Opt(name string, rule Rule) Field {
	return Field{Name: name, Rule: rule}
}

// Req 声明必填字段。
func Req(name string, rule Rule) Field {
	return Field{Name: name, Rule: rule, Required: true}
}

// Tag 声明判别字段，值固定为 literal。
func Tag(key, literal string) Field {
	return Req(key, Literal(literal))
}

// OptTag 声明可省略的判别字段（联合的默认成员使用）。
func OptTag(key, literal string) Field {
	return Opt(key, Literal(literal))
}

// Describe 设置中英文说明。
func (f Field) Describe(en, zh string) Field {
	f.Doc = Doc(en, zh)
	return f
}

// WithDefault 记录默认值。默认值仅用于文档，校验时不会填充。
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// Deprecate 将字段标记为废弃，note 会作为告警内容输出。
func (f Field) Deprecate(note string) Field {
	f.Deprecated = note
	return f
}

// IsDeprecated 报告字段是否已废弃。
func (f Field) IsDeprecated() bool {
	return f.Deprecated != ""
}

// Origin 返回声明该字段的字段包名称。
func (f Field) Origin() string {
	return f.origin
}

func (f Field) fields() []Field {
	return []Field{f}
}

// Part 是可以合并进对象的组成部分：单个字段或字段包。
type Part interface {
	fields() []Field
}

// Bundle 是具名的可复用字段组。
type Bundle struct {
	name  string
	items []Field
}

// NewBundle 合并字段与子字段包。任意两个来源声明同名字段都会返回错误。
func NewBundle(name string, parts ...Part) (Bundle, error) {
	items, err := flatten(name, parts)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{name: name, items: items}, nil
}

// MustBundle 与 NewBundle 相同，出错时 panic。
func MustBundle(name string, parts ...Part) Bundle {
	b, err := NewBundle(name, parts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Name 返回字段包名称。
func (b Bundle) Name() string {
	return b.name
}

// Fields 返回字段副本。
func (b Bundle) Fields() []Field {
	out := make([]Field, len(b.items))
	copy(out, b.items)
	return out
}

// Deprecate 返回所有字段都被标记为废弃的新字段包。
func (b Bundle) Deprecate(note string) Bundle {
	items := make([]Field, len(b.items))
	for i, f := range b.items {
		items[i] = f.Deprecate(note)
	}
	return Bundle{name: b.name, items: items}
}

func (b Bundle) fields() []Field {
	return b.items
}

// flatten 按声明顺序展开各部分，并检查字段名冲突。
func flatten(owner string, parts []Part) ([]Field, error) {
	var (
		out  []Field
		errs error
		seen = make(map[string]string)
	)
	for _, p := range parts {
		if p == nil {
			continue
		}
		for _, f := range p.fields() {
			if f.Name == "" || f.Rule == nil {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s declares a field without name or rule", ErrInvalidField, owner))
				continue
			}
			origin := f.origin
			if origin == "" {
				origin = owner
			}
			if prev, ok := seen[f.Name]; ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: %q declared by both %s and %s", ErrFieldCollision, f.Name, prev, origin))
				continue
			}
			seen[f.Name] = origin
			f.origin = origin
			out = append(out, f)
		}
	}
	return out, errs
}
