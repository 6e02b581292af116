// Package jsonschema 将组合好的规则图派生为 draft-07 JSON Schema 文档，
// 供编辑器补全与外部校验器使用。
package jsonschema

// Draft07 是输出文档声明的元模式地址。
const Draft07 = "http://json-schema.org/draft-07/schema#"

// Schema 是 draft-07 JSON Schema 的一个节点。
//
// 字段按 encoding/json 的声明顺序输出；Definitions 是 map，键按字典序输出，
// 因此同一规则图总是生成逐字节相同的文档。
type Schema struct {
	// 仅根节点使用
	Schema  string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	ID      string `json:"$id,omitempty" yaml:"$id,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Const  any    `json:"const,omitempty" yaml:"const,omitempty"`
	Enum   []any  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// --- 字符串 ---
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`

	// --- 数值 ---
	Minimum *int64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *int64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	// --- 数组 ---
	Items    *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`

	// --- 对象 ---
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`
	// AdditionalProperties 为 false 或 *Schema
	AdditionalProperties any `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// --- 组合 ---
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`

	Definitions map[string]*Schema `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// RefTo 返回指向命名定义的引用节点。
func RefTo(name string) *Schema {
	return &Schema{Ref: DefinitionPrefix + name}
}

// DefinitionPrefix 是 $ref 指向 definitions 时使用的前缀。
const DefinitionPrefix = "#/definitions/"

// RefName 返回引用节点指向的定义名称，不是本地引用时返回空串。
func (s *Schema) RefName() string {
	if s == nil || len(s.Ref) <= len(DefinitionPrefix) || s.Ref[:len(DefinitionPrefix)] != DefinitionPrefix {
		return ""
	}
	return s.Ref[len(DefinitionPrefix):]
}
