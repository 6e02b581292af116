package schema

import "fmt"

// DefaultMaxDepth 是惰性引用（递归规则）默认允许的最大嵌套层数。
const DefaultMaxDepth = 128

// Options 控制一次校验的策略。零值即默认策略。
type Options struct {
	// MaxDepth 限制递归规则的嵌套层数，<= 0 时使用 DefaultMaxDepth
	MaxDepth int

	// AllowUnknownFields 为 true 时保留未声明字段而不报错
	AllowUnknownFields bool
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Result 包含校验结果与规范化后的文档。
type Result struct {
	// Value 为规范化后的文档：可列表字段统一为数组，整数统一为 int64
	Value    any       `json:"-"`
	Errors   ErrorList `json:"errors,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Valid 报告是否没有任何错误。
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Err 在存在错误时返回 ErrorList，否则返回 nil。
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// AddError 添加错误。
func (r *Result) AddError(e *Error) {
	r.Errors = append(r.Errors, e)
}

// AddWarning 添加告警信息。
func (r *Result) AddWarning(path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Merge 合并另一个结果的错误与告警。
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Validate 使用 rule 校验 doc。doc 通常来自 DecodeJSON 或 YAML 解码。
//
// 校验不会修改规则图，可以并发调用。
func Validate(rule Rule, doc any, opts Options) *Result {
	c := &checker{opts: opts, result: &Result{}}
	c.result.Value = rule.check(c, "", doc)
	return c.result
}

// checker 保存单次校验的可变状态。
type checker struct {
	opts   Options
	depth  int
	result *Result
}

// trial 创建共享深度与策略的子检查器，用于尝试联合分支。
func (c *checker) trial() *checker {
	return &checker{opts: c.opts, depth: c.depth, result: &Result{}}
}

func (c *checker) fail(t ErrorType, path, expected string, v any) {
	c.result.AddError(&Error{Type: t, Path: path, Expected: expected, Actual: describeValue(v)})
}

func (c *checker) ok() bool {
	return c.result.Valid()
}
