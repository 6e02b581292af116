package schema

import (
	"fmt"
	"sort"
)

// ObjectRule 是由字段与字段包组合而成的实体规则。
type ObjectRule struct {
	name   string
	doc    Desc
	fields []Field
	index  map[string]int
}

// NewObject 展开 parts 构造对象规则。任意两个来源声明同名字段都会返回错误，
// 不会出现后者覆盖前者的情况。
//
// name 为空的对象在派生 JSON Schema 时内联输出。
func NewObject(name string, parts ...Part) (*ObjectRule, error) {
	owner := name
	if owner == "" {
		owner = "<inline object>"
	}
	fields, err := flatten(owner, parts)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return &ObjectRule{name: name, fields: fields, index: index}, nil
}

// MustObject 与 NewObject 相同，出错时 panic。
func MustObject(name string, parts ...Part) *ObjectRule {
	o, err := NewObject(name, parts...)
	if err != nil {
		panic(fmt.Errorf("schema: object %s: %w", name, err))
	}
	return o
}

// Inline 构造匿名对象。
func Inline(parts ...Part) *ObjectRule {
	return MustObject("", parts...)
}

// Describe 返回带说明的新对象规则。
func (o *ObjectRule) Describe(en, zh string) *ObjectRule {
	c := *o
	c.doc = Doc(en, zh)
	return &c
}

// Name 返回定义名称。
func (o *ObjectRule) Name() string { return o.name }

// Doc 返回对象说明。
func (o *ObjectRule) Doc() Desc { return o.doc }

// Fields 返回字段副本（按声明顺序）。
func (o *ObjectRule) Fields() []Field {
	out := make([]Field, len(o.fields))
	copy(out, o.fields)
	return out
}

// Field 按名称查找字段。
func (o *ObjectRule) Field(name string) (Field, bool) {
	i, ok := o.index[name]
	if !ok {
		return Field{}, false
	}
	return o.fields[i], true
}

func (o *ObjectRule) Kind() Kind { return KindObject }

func (o *ObjectRule) expect() string {
	if o.name != "" {
		return o.name + " object"
	}
	return "object"
}

func (o *ObjectRule) check(c *checker, path string, v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		c.fail(ErrorTypeShape, path, o.expect(), v)
		return nil
	}
	out := make(map[string]any, len(m))
	for _, f := range o.fields {
		raw, present := m[f.Name]
		fp := joinPath(path, f.Name)
		// null 视同未设置
		if !present || raw == nil {
			if f.Required {
				c.result.AddError(&Error{Type: ErrorTypeRequired, Path: fp, Expected: f.Rule.expect()})
			}
			continue
		}
		if f.Deprecated != "" {
			c.result.AddWarning(fp, "%s", f.Deprecated)
		}
		out[f.Name] = f.Rule.check(c, fp, raw)
	}

	var unknown []string
	for k := range m {
		if _, declared := o.index[k]; !declared {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		if c.opts.AllowUnknownFields {
			out[k] = m[k]
			continue
		}
		c.result.AddError(&Error{Type: ErrorTypeUnknownField, Path: joinPath(path, k), Detail: "not declared by " + o.expect()})
	}
	return out
}
