package jsonschema

import (
	"errors"
	"fmt"

	"github.com/creamcroissant/boxschema/internal/schema"
)

var (
	// ErrDefinitionConflict 表示两个不同的规则使用了同一个定义名称。
	ErrDefinitionConflict = errors.New("definition name conflict / 定义名称冲突")
	// ErrUnsupportedRule 表示规则图中出现了无法派生的规则类型。
	ErrUnsupportedRule = errors.New("unsupported rule / 不支持的规则类型")
)

// 前缀格式同时接受 CIDR 与单个地址，Draft-07 没有对应的 format，使用模式描述。
const (
	IPv4PrefixPattern = `^(25[0-5]|2[0-4]\d|1?\d?\d)(\.(25[0-5]|2[0-4]\d|1?\d?\d)){3}(/(3[0-2]|[12]?\d))?$`
	IPv6PrefixPattern = `^[0-9A-Fa-f]{0,4}(:[0-9A-Fa-f]{0,4}){2,7}(:(25[0-5]|2[0-4]\d|1?\d?\d)(\.(25[0-5]|2[0-4]\d|1?\d?\d)){3})?(%[^/]+)?(/(12[0-8]|1[01]\d|[1-9]?\d))?$`
)

// Options 控制派生结果的元数据与说明语言。
type Options struct {
	// Language 为 "en" 或 "zh"，缺失的说明回退到英文。
	Language string
	ID       string
	Title    string
	Version  string
}

// deriver 持有一次派生过程的状态。命名规则在构建主体前先登记，
// 因此递归引用只会生成 $ref，不会无限展开。
type deriver struct {
	lang  string
	defs  map[string]*Schema
	owner map[string]schema.Rule
}

// Derive 从根对象规则派生完整文档。根对象的字段直接展开在顶层，
// 其余命名规则（对象、联合、有序匹配联合）各自成为 definitions 中的一项。
func Derive(root *schema.ObjectRule, opts Options) (*Schema, error) {
	if opts.Language == "" {
		opts.Language = "en"
	}
	d := &deriver{
		lang:  opts.Language,
		defs:  make(map[string]*Schema),
		owner: make(map[string]schema.Rule),
	}

	doc, err := d.object(root)
	if err != nil {
		return nil, err
	}
	doc.Schema = Draft07
	doc.Description = root.Doc().Text(opts.Language)
	doc.ID = opts.ID
	doc.Title = opts.Title
	doc.Version = opts.Version
	if len(d.defs) > 0 {
		doc.Definitions = d.defs
	}
	return doc, nil
}

func (d *deriver) rule(r schema.Rule) (*Schema, error) {
	switch r := r.(type) {
	case *schema.StringRule:
		return d.str(r), nil
	case *schema.LiteralRule:
		return &Schema{Type: "string", Const: r.Value()}, nil
	case *schema.IntegerRule:
		s := &Schema{Type: "integer"}
		s.Minimum, s.Maximum = r.Bounds()
		for _, v := range r.EnumValues() {
			s.Enum = append(s.Enum, v)
		}
		return s, nil
	case *schema.NumberRule:
		return &Schema{Type: "number"}, nil
	case *schema.BooleanRule:
		return &Schema{Type: "boolean"}, nil
	case *schema.AnyRule:
		return &Schema{}, nil
	case *schema.ArrayRule:
		item, err := d.rule(r.Item())
		if err != nil {
			return nil, err
		}
		s := &Schema{Type: "array", Items: item}
		if n := r.MinLength(); n > 0 {
			s.MinItems = &n
		}
		return s, nil
	case *schema.MapRule:
		value, err := d.rule(r.Value())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: value}, nil
	case *schema.ListableRule:
		item, err := d.rule(r.Item())
		if err != nil {
			return nil, err
		}
		// 单个值与数组两种写法都合法
		return &Schema{AnyOf: []*Schema{item, {Type: "array", Items: item}}}, nil
	case *schema.AnyOfRule:
		s := &Schema{}
		for _, alt := range r.Rules() {
			sub, err := d.rule(alt)
			if err != nil {
				return nil, err
			}
			s.AnyOf = append(s.AnyOf, sub)
		}
		return s, nil
	case *schema.ObjectRule:
		if r.Name() == "" {
			return d.object(r)
		}
		return d.named(r.Name(), r, func() (*Schema, error) { return d.object(r) })
	case *schema.UnionRule:
		return d.named(r.Name(), r, func() (*Schema, error) { return d.union(r) })
	case *schema.FallbackRule:
		return d.named(r.Name(), r, func() (*Schema, error) { return d.fallback(r) })
	case *schema.LazyRule:
		target, ok := r.Target().(schema.Named)
		if !ok || target.Name() != r.Name() {
			return nil, fmt.Errorf("%w: lazy reference %s must resolve to a definition of the same name", ErrUnsupportedRule, r.Name())
		}
		if _, err := d.rule(target); err != nil {
			return nil, err
		}
		return RefTo(r.Name()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRule, r.Kind())
	}
}

// named 登记定义并返回引用。同名且为同一规则时直接复用。
func (d *deriver) named(name string, r schema.Rule, build func() (*Schema, error)) (*Schema, error) {
	if owner, ok := d.owner[name]; ok {
		if owner != r {
			return nil, fmt.Errorf("%w: %s", ErrDefinitionConflict, name)
		}
		return RefTo(name), nil
	}
	d.owner[name] = r

	body, err := build()
	if err != nil {
		return nil, err
	}
	if doc, ok := r.(interface{ Doc() schema.Desc }); ok {
		body.Description = doc.Doc().Text(d.lang)
	}
	d.defs[name] = body
	return RefTo(name), nil
}

func (d *deriver) str(r *schema.StringRule) *Schema {
	s := &Schema{Type: "string", Pattern: r.PatternString()}
	for _, v := range r.EnumValues() {
		s.Enum = append(s.Enum, v)
	}
	if n := r.MinLength(); n > 0 {
		s.MinLength = &n
	}
	switch r.FormatName() {
	case schema.FormatUUID:
		s.Format = "uuid"
	case schema.FormatIP:
		s.AnyOf = []*Schema{{Format: "ipv4"}, {Format: "ipv6"}}
	case schema.FormatPrefix:
		s.AnyOf = []*Schema{{Pattern: IPv4PrefixPattern}, {Pattern: IPv6PrefixPattern}}
	case schema.FormatDuration:
		if s.Pattern == "" {
			s.Pattern = schema.DurationPattern
		}
	}
	return s
}

func (d *deriver) object(r *schema.ObjectRule) (*Schema, error) {
	s := &Schema{
		Type:                 "object",
		Properties:           make(map[string]*Schema),
		AdditionalProperties: false,
	}
	for _, f := range r.Fields() {
		prop, err := d.field(f)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", r.Name(), f.Name, err)
		}
		s.Properties[f.Name] = prop
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	if r.Name() == "" {
		s.Description = r.Doc().Text(d.lang)
	}
	return s, nil
}

func (d *deriver) field(f schema.Field) (*Schema, error) {
	s, err := d.rule(f.Rule)
	if err != nil {
		return nil, err
	}
	desc := f.Doc.Text(d.lang)
	if f.IsDeprecated() {
		if desc != "" {
			desc += " "
		}
		desc += "Deprecated: " + f.Deprecated
	}
	if desc == "" && f.Default == nil && !f.IsDeprecated() {
		return s, nil
	}
	// draft-07 中与 $ref 并列的关键字会被忽略，需要用 allOf 包一层
	if s.Ref != "" {
		s = &Schema{AllOf: []*Schema{s}}
	}
	s.Description = desc
	s.Default = f.Default
	s.Deprecated = f.IsDeprecated()
	return s, nil
}

func (d *deriver) union(r *schema.UnionRule) (*Schema, error) {
	s := &Schema{}
	for _, cs := range r.Cases() {
		member, err := d.rule(cs.Rule)
		if err != nil {
			return nil, fmt.Errorf("%s[%s=%s]: %w", r.Name(), r.Key(), cs.Literal, err)
		}
		s.OneOf = append(s.OneOf, member)
	}
	return s, nil
}

func (d *deriver) fallback(r *schema.FallbackRule) (*Schema, error) {
	s := &Schema{}
	for _, alt := range r.Alternatives() {
		sub, err := d.rule(alt.Rule)
		if err != nil {
			return nil, fmt.Errorf("%s[%s]: %w", r.Name(), alt.Name, err)
		}
		if sub.Ref == "" && sub.Description == "" {
			sub.Title = alt.Name
		}
		s.AnyOf = append(s.AnyOf, sub)
	}
	return s, nil
}
