package schema

import (
	"fmt"
	"sort"
)

// ArrayRule 校验元素均满足 item 的数组。
type ArrayRule struct {
	item     Rule
	minItems int
}

// Array 创建数组规则。
func Array(item Rule) *ArrayRule {
	return &ArrayRule{item: item}
}

// MinItems 设置最少元素个数。
func (r *ArrayRule) MinItems(n int) *ArrayRule {
	c := *r
	c.minItems = n
	return &c
}

// Item 返回元素规则。
func (r *ArrayRule) Item() Rule { return r.item }

// MinLength 返回最少元素个数。
func (r *ArrayRule) MinLength() int { return r.minItems }

func (r *ArrayRule) Kind() Kind { return KindArray }

func (r *ArrayRule) expect() string { return "array of " + r.item.expect() }

func (r *ArrayRule) check(c *checker, path string, v any) any {
	items, ok := v.([]any)
	if !ok {
		c.fail(ErrorTypeShape, path, r.expect(), v)
		return nil
	}
	if len(items) < r.minItems {
		c.fail(ErrorTypeShape, path, fmt.Sprintf("at least %d items", r.minItems), v)
	}
	return checkItems(c, path, r.item, items)
}

func checkItems(c *checker, path string, item Rule, items []any) []any {
	out := make([]any, len(items))
	for i, elem := range items {
		out[i] = item.check(c, indexPath(path, i), elem)
	}
	return out
}

// MapRule 校验键任意、值满足 value 的对象，例如 HTTP 头。
type MapRule struct {
	value Rule
}

// Map 创建映射规则。
func Map(value Rule) *MapRule {
	return &MapRule{value: value}
}

// Value 返回值规则。
func (r *MapRule) Value() Rule { return r.value }

func (r *MapRule) Kind() Kind { return KindMap }

func (r *MapRule) expect() string { return "object of " + r.value.expect() }

func (r *MapRule) check(c *checker, path string, v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		c.fail(ErrorTypeShape, path, r.expect(), v)
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]any, len(m))
	for _, k := range keys {
		out[k] = r.value.check(c, joinPath(path, k), m[k])
	}
	return out
}

// ListableRule 接受单个值或由该值组成的数组。
//
// 单个值与单元素数组语义相同，规范化结果总是数组。
type ListableRule struct {
	item Rule
}

// Listable 包装 item，使其同时接受单值与数组。空数组同样合法。
func Listable(item Rule) *ListableRule {
	return &ListableRule{item: item}
}

// Item 返回被包装的规则。
func (r *ListableRule) Item() Rule { return r.item }

func (r *ListableRule) Kind() Kind { return KindListable }

func (r *ListableRule) expect() string {
	e := r.item.expect()
	return e + " or array of " + e
}

func (r *ListableRule) check(c *checker, path string, v any) any {
	if items, ok := v.([]any); ok {
		return checkItems(c, path, r.item, items)
	}
	t := c.trial()
	single := r.item.check(t, path, v)
	if t.ok() {
		c.result.Merge(t.result)
		return []any{single}
	}
	// 值本身类型不符时，同时列出两种解释；否则按单值报告内部错误。
	if len(t.result.Errors) == 1 && t.result.Errors[0].Path == path && t.result.Errors[0].Type == ErrorTypeShape {
		c.fail(ErrorTypeShape, path, r.expect(), v)
		return nil
	}
	c.result.Merge(t.result)
	return []any{single}
}
