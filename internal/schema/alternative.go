package schema

import (
	"slices"
	"strings"
)

// Predicate 判断原始值是否应由某个分支处理。
type Predicate func(v any) bool

// Alternative 是非判别联合中的一个有序分支。
type Alternative struct {
	Name string
	When Predicate
	Rule Rule
}

// FallbackRule 按声明顺序求值各分支的谓词，第一个命中的分支负责校验。
//
// 顺序是契约的一部分：前缀可能互相覆盖时，先声明的分支优先。
type FallbackRule struct {
	name string
	doc  Desc
	alts []Alternative
}

// FirstMatch 构造有序的非判别联合。
func FirstMatch(name string, alts ...Alternative) *FallbackRule {
	return &FallbackRule{name: name, alts: slices.Clone(alts)}
}

// Describe 返回带说明的新规则。
func (r *FallbackRule) Describe(en, zh string) *FallbackRule {
	c := *r
	c.doc = Doc(en, zh)
	return &c
}

// Name 返回定义名称。
func (r *FallbackRule) Name() string { return r.name }

// Doc 返回说明。
func (r *FallbackRule) Doc() Desc { return r.doc }

// Alternatives 返回分支副本。
func (r *FallbackRule) Alternatives() []Alternative { return slices.Clone(r.alts) }

// Match 返回第一个谓词命中的分支。
func (r *FallbackRule) Match(v any) (Alternative, bool) {
	for _, alt := range r.alts {
		if alt.When(v) {
			return alt, true
		}
	}
	return Alternative{}, false
}

func (r *FallbackRule) Kind() Kind { return KindFallback }

func (r *FallbackRule) expect() string {
	names := make([]string, len(r.alts))
	for i, alt := range r.alts {
		names[i] = alt.Name
	}
	return strings.Join(names, " | ")
}

func (r *FallbackRule) check(c *checker, path string, v any) any {
	alt, ok := r.Match(v)
	if !ok {
		c.fail(ErrorTypeNoMatch, path, r.expect(), v)
		return nil
	}
	return alt.Rule.check(c, path, v)
}

// AnyOfRule 依次尝试各规则，第一个完全通过的规则生效。
type AnyOfRule struct {
	rules []Rule
}

// AnyOf 构造按形状选择的联合，例如 "整数或字符串"。
func AnyOf(rules ...Rule) *AnyOfRule {
	return &AnyOfRule{rules: slices.Clone(rules)}
}

// Rules 返回分支规则副本。
func (r *AnyOfRule) Rules() []Rule { return slices.Clone(r.rules) }

func (r *AnyOfRule) Kind() Kind { return KindAlternatives }

func (r *AnyOfRule) expect() string {
	parts := make([]string, len(r.rules))
	for i, rule := range r.rules {
		parts[i] = rule.expect()
	}
	return strings.Join(parts, " | ")
}

func (r *AnyOfRule) check(c *checker, path string, v any) any {
	for _, rule := range r.rules {
		t := c.trial()
		out := rule.check(t, path, v)
		if t.ok() {
			c.result.Merge(t.result)
			return out
		}
	}
	c.fail(ErrorTypeShape, path, r.expect(), v)
	return nil
}

// HasPrefix 匹配带指定前缀的字符串。
func HasPrefix(prefix string) Predicate {
	return func(v any) bool {
		s, ok := v.(string)
		return ok && strings.HasPrefix(s, prefix)
	}
}

// Equals 匹配取值在给定集合中的字符串。
func Equals(values ...string) Predicate {
	return func(v any) bool {
		s, ok := v.(string)
		return ok && slices.Contains(values, s)
	}
}

// IsString 匹配任意字符串。
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsObject 匹配任意对象。
func IsObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// HasKey 匹配包含指定键的对象。
func HasKey(key string) Predicate {
	return func(v any) bool {
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		_, found := m[key]
		return found
	}
}

// Not 取反。
func Not(p Predicate) Predicate {
	return func(v any) bool { return !p(v) }
}

// All 要求所有谓词同时成立。
func All(ps ...Predicate) Predicate {
	return func(v any) bool {
		for _, p := range ps {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Contains 匹配包含子串的字符串。
func Contains(sub string) Predicate {
	return func(v any) bool {
		s, ok := v.(string)
		return ok && strings.Contains(s, sub)
	}
}
