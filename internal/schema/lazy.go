package schema

import (
	"fmt"
	"sync"
)

// LazyRule 是对尚未构造完成的规则的延迟引用，用于递归规则树。
//
// 目标在第一次被使用时通过 resolve 求值并缓存，sync.Once 保证并发首用安全。
// 校验时每进入一层 LazyRule 深度加一，超过 Options.MaxDepth 即报错返回，
// 不会继续递归。
type LazyRule struct {
	name    string
	resolve func() Rule
	once    sync.Once
	target  Rule
}

// Lazy 创建名为 name 的延迟引用。派生 JSON Schema 时输出为 $ref。
func Lazy(name string, resolve func() Rule) *LazyRule {
	return &LazyRule{name: name, resolve: resolve}
}

// Name 返回被引用定义的名称。
func (l *LazyRule) Name() string { return l.name }

// Target 返回解析后的规则。目标为 nil 属于规则定义错误，直接 panic。
func (l *LazyRule) Target() Rule {
	l.once.Do(func() {
		l.target = l.resolve()
	})
	if l.target == nil {
		panic(fmt.Sprintf("schema: lazy reference %q resolved to nil", l.name))
	}
	return l.target
}

func (l *LazyRule) Kind() Kind { return KindLazy }

func (l *LazyRule) expect() string { return l.name }

func (l *LazyRule) check(c *checker, path string, v any) any {
	if c.depth >= c.opts.maxDepth() {
		c.result.AddError(&Error{
			Type:   ErrorTypeDepth,
			Path:   path,
			Detail: fmt.Sprintf("%s nested deeper than %d levels", l.name, c.opts.maxDepth()),
		})
		return nil
	}
	c.depth++
	defer func() { c.depth-- }()
	return l.Target().check(c, path, v)
}
