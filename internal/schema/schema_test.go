package schema

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, text string) any {
	t.Helper()
	doc, err := DecodeJSON([]byte(text))
	require.NoError(t, err)
	return doc
}

func TestListableAcceptsSingleAndArray(t *testing.T) {
	rule := Listable(String())

	single := Validate(rule, mustDecode(t, `"example.com"`), Options{})
	array := Validate(rule, mustDecode(t, `["example.com"]`), Options{})

	require.True(t, single.Valid(), single.Err())
	require.True(t, array.Valid(), array.Err())
	assert.Empty(t, cmp.Diff(single.Value, array.Value))
	assert.Equal(t, []any{"example.com"}, single.Value)
}

func TestListableEmptyArray(t *testing.T) {
	res := Validate(Listable(Integer()), []any{}, Options{})
	require.True(t, res.Valid())
	assert.Equal(t, []any{}, res.Value)
}

func TestListableRejectsWrongShape(t *testing.T) {
	res := Validate(Listable(String()), mustDecode(t, `42`), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ErrorTypeShape, res.Errors[0].Type)
	assert.Equal(t, "string or array of string", res.Errors[0].Expected)

	res = Validate(Listable(String()), mustDecode(t, `["a", 1]`), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "[1]", res.Errors[0].Path)
}

func TestListableOfObjectsReportsInnerPath(t *testing.T) {
	rule := Listable(MustObject("Item", Req("name", String())))
	res := Validate(rule, mustDecode(t, `{"name": 1}`), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "name", res.Errors[0].Path)
}

func TestBundleCollision(t *testing.T) {
	a := MustBundle("ListenFields", Opt("listen", String()))
	b := MustBundle("DialerFields", Opt("listen", String()), Opt("detour", String()))

	_, err := NewObject("Broken", a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFieldCollision))
	assert.Contains(t, err.Error(), "ListenFields")
	assert.Contains(t, err.Error(), "DialerFields")

	_, err = NewBundle("Nested", a, Opt("listen", Integer()))
	assert.ErrorIs(t, err, ErrFieldCollision)

	assert.Panics(t, func() { MustObject("Broken", a, b) })
}

func TestBundleFieldsKeepOrigin(t *testing.T) {
	listen := MustBundle("ListenFields", Opt("listen", String()), Opt("listen_port", Integer()))
	obj := MustObject("Inbound", Tag("type", "mixed"), listen)

	f, ok := obj.Field("listen_port")
	require.True(t, ok)
	assert.Equal(t, "ListenFields", f.Origin())

	f, ok = obj.Field("type")
	require.True(t, ok)
	assert.Equal(t, "Inbound", f.Origin())

	names := make([]string, 0)
	for _, f := range obj.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"type", "listen", "listen_port"}, names)
}

func TestObjectRequiredAndUnknown(t *testing.T) {
	obj := MustObject("Server", Req("server", String()), Opt("server_port", Integer().Min(0).Max(65535)))

	res := Validate(obj, mustDecode(t, `{"server_port": 70000, "extra": true}`), Options{})
	require.False(t, res.Valid())
	assert.Len(t, res.Errors.ByType(ErrorTypeRequired), 1)
	assert.Len(t, res.Errors.ByType(ErrorTypeShape), 1)
	assert.Len(t, res.Errors.ByType(ErrorTypeUnknownField), 1)
	assert.ErrorIs(t, res.Err(), ErrUnknownField)

	res = Validate(obj, mustDecode(t, `{"server": "1.1.1.1", "extra": true}`), Options{AllowUnknownFields: true})
	require.True(t, res.Valid(), res.Err())
	assert.Equal(t, map[string]any{"server": "1.1.1.1", "extra": true}, res.Value)
}

func TestObjectNullIsAbsent(t *testing.T) {
	obj := MustObject("Log", Opt("level", String()))
	res := Validate(obj, mustDecode(t, `{"level": null}`), Options{})
	require.True(t, res.Valid())
	assert.Equal(t, map[string]any{}, res.Value)
}

func TestDeprecatedFieldWarns(t *testing.T) {
	obj := MustObject("Inbound", Opt("sniff", Boolean()).Deprecate("use route rule action sniff"))
	res := Validate(obj, mustDecode(t, `{"sniff": true}`), Options{})
	require.True(t, res.Valid())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "sniff", res.Warnings[0].Path)
}

func TestPrimitiveFormats(t *testing.T) {
	cases := []struct {
		name  string
		rule  Rule
		value any
		valid bool
	}{
		{"uuid", String().Format(FormatUUID), "bf000d23-0752-40b4-affe-68f7707a9661", true},
		{"bad uuid", String().Format(FormatUUID), "not-a-uuid", false},
		{"ip", String().Format(FormatIP), "::1", true},
		{"prefix", String().Format(FormatPrefix), "10.0.0.0/8", true},
		{"bad prefix", String().Format(FormatPrefix), "10.0.0.0/33", false},
		{"duration", String().Format(FormatDuration), "1h30m", true},
		{"bad duration", String().Format(FormatDuration), "soon", false},
		{"enum", String().Enum("tcp", "udp"), "udp", true},
		{"bad enum", String().Enum("tcp", "udp"), "icmp", false},
		{"integer from json", Integer(), json.Number("443"), true},
		{"fraction", Integer(), json.Number("1.5"), false},
		{"yaml integer", Integer(), 443, true},
		{"number", Number(), json.Number("0.5"), true},
		{"literal", Literal("direct"), "direct", true},
		{"bad literal", Literal("direct"), "block", false},
		{"boolean", Boolean(), "true", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.rule, tc.value, Options{})
			assert.Equal(t, tc.valid, res.Valid(), res.Err())
		})
	}
}

func TestIntegerNormalized(t *testing.T) {
	res := Validate(Integer(), json.Number("8080"), Options{})
	require.True(t, res.Valid())
	assert.Equal(t, int64(8080), res.Value)
}

func TestIntegerRejectsOutOfRangeFloat(t *testing.T) {
	for _, v := range []float64{1e19, -1e19, math.Pow(2, 63), math.Inf(1), math.NaN(), 1.5} {
		res := Validate(Integer(), v, Options{})
		assert.False(t, res.Valid(), "%v", v)
	}

	res := Validate(Integer(), float64(-1<<63), Options{})
	require.True(t, res.Valid())
	assert.Equal(t, int64(math.MinInt64), res.Value)

	res = Validate(Integer(), float64(1<<53), Options{})
	require.True(t, res.Valid())
	assert.Equal(t, int64(1<<53), res.Value)
}

func TestDescribeValueTruncatesOnRuneBoundary(t *testing.T) {
	got := describeValue(strings.Repeat("域名", 40))
	assert.True(t, utf8.ValidString(got), got)
	assert.Equal(t, `string "`+strings.Repeat("域名", 22)+`域..."`, got)

	assert.Equal(t, `string "short"`, describeValue("short"))
}

func TestErrorFormatting(t *testing.T) {
	e := &Error{Type: ErrorTypeShape, Path: "inbounds[0].listen_port", Expected: "integer", Actual: `string "x"`}
	assert.Equal(t, `inbounds[0].listen_port: shape mismatch (expected integer, got string "x")`, e.Error())
	assert.ErrorIs(t, e, ErrShapeMismatch)

	root := &Error{Type: ErrorTypeRequired}
	assert.Equal(t, "(root): missing required field", root.Error())
}
