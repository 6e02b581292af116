package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"net/netip"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Format 是字符串的语义格式约束。
type Format string

const (
	FormatNone     Format = ""
	FormatUUID     Format = "uuid"
	FormatIP       Format = "ip"
	FormatPrefix   Format = "prefix"
	FormatDuration Format = "duration"
)

// DurationPattern 匹配 sing-box 的时长写法，例如 "5m"、"1h30m"、"300ms"、"7d"。
const DurationPattern = `^(\d+(\.\d+)?(ns|us|µs|ms|s|m|h|d))+$`

var durationRegexp = regexp.MustCompile(DurationPattern)

// StringRule 校验字符串，可附加枚举、正则与格式约束。
type StringRule struct {
	enum    []string
	pattern *regexp.Regexp
	format  Format
	minLen  int
}

// String 创建字符串规则。
func String() *StringRule {
	return &StringRule{}
}

// Enum 限定取值集合。
func (r *StringRule) Enum(values ...string) *StringRule {
	c := *r
	c.enum = slices.Clone(values)
	return &c
}

// Pattern 要求匹配正则表达式。
func (r *StringRule) Pattern(expr string) *StringRule {
	c := *r
	c.pattern = regexp.MustCompile(expr)
	return &c
}

// Format 要求满足语义格式。
func (r *StringRule) Format(f Format) *StringRule {
	c := *r
	c.format = f
	return &c
}

// MinLen 要求最小长度（字节）。
func (r *StringRule) MinLen(n int) *StringRule {
	c := *r
	c.minLen = n
	return &c
}

// EnumValues 返回枚举取值副本。
func (r *StringRule) EnumValues() []string { return slices.Clone(r.enum) }

// PatternString 返回正则表达式源文本。
func (r *StringRule) PatternString() string {
	if r.pattern == nil {
		return ""
	}
	return r.pattern.String()
}

// FormatName 返回格式约束。
func (r *StringRule) FormatName() Format { return r.format }

// MinLength 返回最小长度。
func (r *StringRule) MinLength() int { return r.minLen }

func (r *StringRule) Kind() Kind { return KindString }

func (r *StringRule) expect() string {
	switch {
	case len(r.enum) > 0:
		return "one of: " + strings.Join(r.enum, ", ")
	case r.format != FormatNone:
		return string(r.format) + " string"
	case r.pattern != nil:
		return "string matching " + r.pattern.String()
	default:
		return "string"
	}
}

func (r *StringRule) check(c *checker, path string, v any) any {
	s, ok := v.(string)
	if !ok {
		c.fail(ErrorTypeShape, path, "string", v)
		return nil
	}
	if len(r.enum) > 0 && !slices.Contains(r.enum, s) {
		c.fail(ErrorTypeShape, path, r.expect(), v)
		return s
	}
	if len(s) < r.minLen {
		c.fail(ErrorTypeShape, path, fmt.Sprintf("string of at least %d characters", r.minLen), v)
		return s
	}
	if r.pattern != nil && !r.pattern.MatchString(s) {
		c.fail(ErrorTypeShape, path, "string matching "+r.pattern.String(), v)
		return s
	}
	if r.format != FormatNone && !validFormat(r.format, s) {
		c.fail(ErrorTypeShape, path, string(r.format)+" string", v)
	}
	return s
}

func validFormat(f Format, s string) bool {
	switch f {
	case FormatUUID:
		_, err := uuid.Parse(s)
		return err == nil
	case FormatIP:
		_, err := netip.ParseAddr(s)
		return err == nil
	case FormatPrefix:
		if _, err := netip.ParsePrefix(s); err == nil {
			return true
		}
		_, err := netip.ParseAddr(s)
		return err == nil
	case FormatDuration:
		return durationRegexp.MatchString(s)
	default:
		return true
	}
}

// LiteralRule 只接受一个固定字符串，用作判别字段。
type LiteralRule struct {
	value string
}

// Literal 创建固定值规则。
func Literal(value string) *LiteralRule {
	return &LiteralRule{value: value}
}

// Value 返回固定值。
func (r *LiteralRule) Value() string { return r.value }

func (r *LiteralRule) Kind() Kind { return KindLiteral }

func (r *LiteralRule) expect() string { return strconv.Quote(r.value) }

func (r *LiteralRule) check(c *checker, path string, v any) any {
	if s, ok := v.(string); ok && s == r.value {
		return s
	}
	c.fail(ErrorTypeShape, path, r.expect(), v)
	return nil
}

// IntegerRule 校验整数，可附加上下界或取值集合。
type IntegerRule struct {
	min, max *int64
	enum     []int64
}

// Integer 创建整数规则。
func Integer() *IntegerRule {
	return &IntegerRule{}
}

// Min 设置下界（含）。
func (r *IntegerRule) Min(n int64) *IntegerRule {
	c := *r
	c.min = &n
	return &c
}

// Max 设置上界（含）。
func (r *IntegerRule) Max(n int64) *IntegerRule {
	c := *r
	c.max = &n
	return &c
}

// Enum 限定取值集合。
func (r *IntegerRule) Enum(values ...int64) *IntegerRule {
	c := *r
	c.enum = slices.Clone(values)
	return &c
}

// EnumValues 返回取值集合副本。
func (r *IntegerRule) EnumValues() []int64 { return slices.Clone(r.enum) }

// Bounds 返回上下界，未设置时为 nil。
func (r *IntegerRule) Bounds() (min, max *int64) { return r.min, r.max }

func (r *IntegerRule) Kind() Kind { return KindInteger }

func (r *IntegerRule) expect() string {
	switch {
	case len(r.enum) > 0:
		parts := make([]string, len(r.enum))
		for i, v := range r.enum {
			parts[i] = strconv.FormatInt(v, 10)
		}
		return "one of: " + strings.Join(parts, ", ")
	case r.min != nil && r.max != nil:
		return fmt.Sprintf("integer in [%d, %d]", *r.min, *r.max)
	case r.min != nil:
		return fmt.Sprintf("integer >= %d", *r.min)
	case r.max != nil:
		return fmt.Sprintf("integer <= %d", *r.max)
	default:
		return "integer"
	}
}

func (r *IntegerRule) check(c *checker, path string, v any) any {
	n, ok := toInt(v)
	if !ok {
		c.fail(ErrorTypeShape, path, "integer", v)
		return nil
	}
	if (r.min != nil && n < *r.min) || (r.max != nil && n > *r.max) || (len(r.enum) > 0 && !slices.Contains(r.enum, n)) {
		c.fail(ErrorTypeShape, path, r.expect(), v)
	}
	return n
}

// NumberRule 校验任意数字。
type NumberRule struct{}

// Number 创建数字规则。
func Number() *NumberRule {
	return &NumberRule{}
}

func (r *NumberRule) Kind() Kind { return KindNumber }

func (r *NumberRule) expect() string { return "number" }

func (r *NumberRule) check(c *checker, path string, v any) any {
	f, ok := toFloat(v)
	if !ok {
		c.fail(ErrorTypeShape, path, "number", v)
		return nil
	}
	return f
}

// BooleanRule 校验布尔值。
type BooleanRule struct{}

// Boolean 创建布尔规则。
func Boolean() *BooleanRule {
	return &BooleanRule{}
}

func (r *BooleanRule) Kind() Kind { return KindBoolean }

func (r *BooleanRule) expect() string { return "boolean" }

func (r *BooleanRule) check(c *checker, path string, v any) any {
	b, ok := v.(bool)
	if !ok {
		c.fail(ErrorTypeShape, path, "boolean", v)
		return nil
	}
	return b
}

// AnyRule 接受任意 JSON 值，用于结构由外部定义的字段。
type AnyRule struct{}

// Any 创建任意值规则。
func Any() *AnyRule {
	return &AnyRule{}
}

func (r *AnyRule) Kind() Kind { return KindAny }

func (r *AnyRule) expect() string { return "any value" }

func (r *AnyRule) check(_ *checker, _ string, v any) any {
	return v
}

// toInt 接受 json.Number、整数值的浮点数以及 Go 整数类型（YAML 解码结果）。
func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		n, err := x.Int64()
		return n, err == nil
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float32:
		return toInt(float64(x))
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	if n, ok := toInt(v); ok {
		return float64(n), true
	}
	return 0, false
}
