package schema

import (
	"errors"
	"fmt"
	"strings"
)

// 构建期错误：说明规则图本身不一致，属于编程错误。
var (
	ErrFieldCollision       = errors.New("field name collision / 字段名冲突")
	ErrInvalidField         = errors.New("invalid field declaration / 字段声明无效")
	ErrDuplicateVariant     = errors.New("duplicate discriminator value / 判别值重复")
	ErrMissingDiscriminator = errors.New("member lacks discriminator field / 成员缺少判别字段")
	ErrInvalidDefault       = errors.New("invalid default member / 默认成员无效")
)

// 校验期错误类别对应的哨兵错误，可用 errors.Is 判断。
var (
	ErrShapeMismatch  = errors.New("shape mismatch / 类型不匹配")
	ErrUnknownVariant = errors.New("unrecognized variant / 未知的判别值")
	ErrRequired       = errors.New("missing required field / 缺少必填字段")
	ErrDepthExceeded  = errors.New("maximum nesting depth exceeded / 超出最大嵌套深度")
	ErrNoMatch        = errors.New("no alternative matched / 没有匹配的分支")
	ErrUnknownField   = errors.New("unknown field / 未知字段")
)

// ErrorType 标识校验错误的类别。
type ErrorType string

const (
	ErrorTypeShape          ErrorType = "shape"
	ErrorTypeUnknownVariant ErrorType = "unknown_variant"
	ErrorTypeRequired       ErrorType = "required"
	ErrorTypeDepth          ErrorType = "depth"
	ErrorTypeNoMatch        ErrorType = "no_match"
	ErrorTypeUnknownField   ErrorType = "unknown_field"
)

// Sentinel 返回该类别对应的哨兵错误。
func (t ErrorType) Sentinel() error {
	switch t {
	case ErrorTypeShape:
		return ErrShapeMismatch
	case ErrorTypeUnknownVariant:
		return ErrUnknownVariant
	case ErrorTypeRequired:
		return ErrRequired
	case ErrorTypeDepth:
		return ErrDepthExceeded
	case ErrorTypeNoMatch:
		return ErrNoMatch
	case ErrorTypeUnknownField:
		return ErrUnknownField
	default:
		return ErrShapeMismatch
	}
}

func (t ErrorType) message() string {
	switch t {
	case ErrorTypeShape:
		return "shape mismatch"
	case ErrorTypeUnknownVariant:
		return "unrecognized variant"
	case ErrorTypeRequired:
		return "missing required field"
	case ErrorTypeDepth:
		return "maximum nesting depth exceeded"
	case ErrorTypeNoMatch:
		return "no alternative matched"
	case ErrorTypeUnknownField:
		return "unknown field"
	default:
		return string(t)
	}
}

// Error 是单条结构化校验错误。
type Error struct {
	Type     ErrorType // 错误类别
	Path     string    // 字段路径，例如 inbounds[0].tls.server_name
	Expected string    // 期望的类型或取值
	Actual   string    // 实际值描述
	Detail   string    // 附加说明
}

// Error 实现 error 接口。
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(DisplayPath(e.Path))
	b.WriteString(": ")
	b.WriteString(e.Type.message())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	switch {
	case e.Expected != "" && e.Actual != "":
		fmt.Fprintf(&b, " (expected %s, got %s)", e.Expected, e.Actual)
	case e.Expected != "":
		fmt.Fprintf(&b, " (expected %s)", e.Expected)
	case e.Actual != "":
		fmt.Fprintf(&b, " (got %s)", e.Actual)
	}
	return b.String()
}

// Unwrap 返回类别对应的哨兵错误。
func (e *Error) Unwrap() error {
	return e.Type.Sentinel()
}

// ErrorList 聚合多条校验错误。
type ErrorList []*Error

// Error 实现 error 接口，每条错误占一行。
func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap 支持 errors.Is / errors.As 遍历全部错误。
func (l ErrorList) Unwrap() []error {
	out := make([]error, len(l))
	for i, e := range l {
		out[i] = e
	}
	return out
}

// ByType 返回指定类别的错误。
func (l ErrorList) ByType(t ErrorType) ErrorList {
	var out ErrorList
	for _, e := range l {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Warning 表示不影响校验结果的提示，目前用于废弃字段。
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return DisplayPath(w.Path) + ": " + w.Message
}

// DisplayPath 将空路径显示为 (root)。
func DisplayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// describeValue 生成用于错误信息的实际值描述。
func describeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		if r := []rune(x); len(r) > 48 {
			x = string(r[:45]) + "..."
		}
		return fmt.Sprintf("string %q", x)
	case bool:
		return fmt.Sprintf("boolean %t", x)
	case []any:
		return fmt.Sprintf("array of %d", len(x))
	case map[string]any:
		return "object"
	}
	if _, ok := toFloat(v); ok {
		return fmt.Sprintf("number %v", v)
	}
	return fmt.Sprintf("%T", v)
}
