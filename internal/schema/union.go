package schema

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Case 是判别联合中的一个成员。
type Case struct {
	Literal string
	Rule    Rule
	Default bool
}

// On 声明判别值 literal 对应的成员。
func On(literal string, rule Rule) Case {
	return Case{Literal: literal, Rule: rule}
}

// DefaultOn 声明默认成员：判别字段缺失时按 literal 分派。
func DefaultOn(literal string, rule Rule) Case {
	return Case{Literal: literal, Rule: rule, Default: true}
}

// UnionRule 按判别字段分派到成员规则。
type UnionRule struct {
	name     string
	doc      Desc
	key      string
	cases    []Case
	byValue  map[string]Rule
	fallback string
}

// NewUnion 构造判别联合，判别字段为 key。
//
// 构造时检查：判别值两两不同；对象成员必须声明值与判别值一致的 key 字段；
// 默认成员至多一个，且其 key 字段必须可省略。
func NewUnion(name, key string, cases ...Case) (*UnionRule, error) {
	u := &UnionRule{name: name, key: key, byValue: make(map[string]Rule, len(cases))}
	var errs error
	for _, cs := range cases {
		if cs.Rule == nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s case %q has no rule", ErrInvalidField, name, cs.Literal))
			continue
		}
		if _, dup := u.byValue[cs.Literal]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s.%s = %q", ErrDuplicateVariant, name, key, cs.Literal))
			continue
		}
		if obj, ok := cs.Rule.(*ObjectRule); ok {
			f, found := obj.Field(key)
			lit, isLit := f.Rule.(*LiteralRule)
			switch {
			case !found || !isLit || lit.Value() != cs.Literal:
				errs = multierr.Append(errs, fmt.Errorf("%w: %s member %s must declare %s = %q", ErrMissingDiscriminator, name, obj.Name(), key, cs.Literal))
			case cs.Default && f.Required:
				errs = multierr.Append(errs, fmt.Errorf("%w: %s default member %s requires %s", ErrInvalidDefault, name, obj.Name(), key))
			}
		}
		if cs.Default {
			if u.fallback != "" {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s has defaults %q and %q", ErrInvalidDefault, name, u.fallback, cs.Literal))
			} else {
				u.fallback = cs.Literal
			}
		}
		u.byValue[cs.Literal] = cs.Rule
		u.cases = append(u.cases, cs)
	}
	if errs != nil {
		return nil, errs
	}
	return u, nil
}

// MustUnion 与 NewUnion 相同，出错时 panic。
func MustUnion(name, key string, cases ...Case) *UnionRule {
	u, err := NewUnion(name, key, cases...)
	if err != nil {
		panic(fmt.Errorf("schema: union %s: %w", name, err))
	}
	return u
}

// Describe 返回带说明的新联合规则。
func (u *UnionRule) Describe(en, zh string) *UnionRule {
	c := *u
	c.doc = Doc(en, zh)
	return &c
}

// Name 返回定义名称。
func (u *UnionRule) Name() string { return u.name }

// Doc 返回说明。
func (u *UnionRule) Doc() Desc { return u.doc }

// Key 返回判别字段名。
func (u *UnionRule) Key() string { return u.key }

// Cases 返回成员副本（按声明顺序）。
func (u *UnionRule) Cases() []Case {
	out := make([]Case, len(u.cases))
	copy(out, u.cases)
	return out
}

// DefaultLiteral 返回默认成员的判别值，没有时为空。
func (u *UnionRule) DefaultLiteral() string { return u.fallback }

// Literals 返回排序后的全部判别值。
func (u *UnionRule) Literals() []string {
	out := make([]string, 0, len(u.cases))
	for _, cs := range u.cases {
		out = append(out, cs.Literal)
	}
	sort.Strings(out)
	return out
}

// Resolve 返回判别值对应的成员规则。
func (u *UnionRule) Resolve(literal string) (Rule, bool) {
	r, ok := u.byValue[literal]
	return r, ok
}

func (u *UnionRule) Kind() Kind { return KindUnion }

func (u *UnionRule) expect() string {
	return fmt.Sprintf("%s with %s one of: %s", u.displayName(), u.key, strings.Join(u.Literals(), ", "))
}

func (u *UnionRule) displayName() string {
	if u.name != "" {
		return u.name
	}
	return "object"
}

func (u *UnionRule) check(c *checker, path string, v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		c.fail(ErrorTypeShape, path, u.displayName()+" object", v)
		return nil
	}
	keyPath := joinPath(path, u.key)
	raw, present := m[u.key]
	if !present || raw == nil {
		if u.fallback == "" {
			c.result.AddError(&Error{Type: ErrorTypeRequired, Path: keyPath, Expected: "one of: " + strings.Join(u.Literals(), ", ")})
			return nil
		}
		return u.byValue[u.fallback].check(c, path, v)
	}
	literal, ok := raw.(string)
	if !ok {
		c.fail(ErrorTypeShape, keyPath, "string", raw)
		return nil
	}
	member, ok := u.byValue[literal]
	if !ok {
		c.fail(ErrorTypeUnknownVariant, keyPath, "one of: "+strings.Join(u.Literals(), ", "), raw)
		return nil
	}
	return member.check(c, path, v)
}
