package schema

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logicalRule() *UnionRule {
	var rule *UnionRule
	self := Lazy("Rule", func() Rule { return rule })
	leaf := MustObject("DefaultRule", OptTag("type", "default"), Opt("domain", Listable(String())), Opt("outbound", String()))
	logical := MustObject("LogicalRule",
		Tag("type", "logical"),
		Req("mode", String().Enum("and", "or")),
		Req("rules", Array(self).MinItems(1)),
		Opt("invert", Boolean()),
	)
	rule = MustUnion("Rule", "type", DefaultOn("default", leaf), On("logical", logical))
	return rule
}

// nest 以循环方式构造 depth 层逻辑规则，避免递归构造本身触发栈溢出。
func nest(depth int) any {
	var doc any = map[string]any{"domain": "example.com", "outbound": "direct"}
	for i := 0; i < depth; i++ {
		doc = map[string]any{"type": "logical", "mode": "and", "rules": []any{doc}}
	}
	return doc
}

func TestLogicalRuleDepth(t *testing.T) {
	rule := logicalRule()

	res := Validate(rule, nest(50), Options{})
	require.True(t, res.Valid(), res.Err())

	res = Validate(rule, nest(DefaultMaxDepth), Options{})
	require.True(t, res.Valid(), res.Err())

	res = Validate(rule, nest(DefaultMaxDepth+1), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ErrorTypeDepth, res.Errors[0].Type)
}

func TestLogicalRuleDeepInputTerminates(t *testing.T) {
	res := Validate(logicalRule(), nest(100000), Options{})
	require.False(t, res.Valid())
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Err(), ErrDepthExceeded)
}

func TestLogicalRuleCustomDepth(t *testing.T) {
	rule := logicalRule()
	assert.True(t, Validate(rule, nest(10), Options{MaxDepth: 10}).Valid())
	assert.False(t, Validate(rule, nest(11), Options{MaxDepth: 10}).Valid())
}

func TestLogicalRuleNestedErrorPath(t *testing.T) {
	doc := mustDecode(t, `{
		"type": "logical",
		"mode": "or",
		"rules": [
			{"domain": ["a.com"]},
			{"type": "logical", "mode": "and", "rules": [{"domain": 5}]}
		]
	}`)
	res := Validate(logicalRule(), doc, Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "rules[1].rules[0].domain", res.Errors[0].Path)
}

func TestLogicalRuleEmptyRules(t *testing.T) {
	res := Validate(logicalRule(), mustDecode(t, `{"type": "logical", "mode": "and", "rules": []}`), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "rules", res.Errors[0].Path)
}

func TestConcurrentValidation(t *testing.T) {
	rule := logicalRule()
	var wg sync.WaitGroup
	results := make([]bool, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Validate(rule, nest(i+1), Options{}).Valid()
		}(i)
	}
	wg.Wait()
	for i, ok := range results {
		assert.True(t, ok, "goroutine %d", i)
	}
}

func TestLazyNilTargetPanics(t *testing.T) {
	l := Lazy("Missing", func() Rule { return nil })
	assert.Panics(t, func() { l.Target() })
}
