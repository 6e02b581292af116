package jsonschema

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/boxschema/internal/option"
	"github.com/creamcroissant/boxschema/internal/schema"
)

var meta = Options{ID: option.SchemaID, Title: option.Title, Version: option.Version}

func deriveRoot(t *testing.T, lang string) *Schema {
	t.Helper()
	opts := meta
	opts.Language = lang
	doc, err := Derive(option.Root(), opts)
	require.NoError(t, err)
	return doc
}

func TestDeriveIdempotent(t *testing.T) {
	first := deriveRoot(t, "en")
	second := deriveRoot(t, "en")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("derivation is not idempotent (-first +second):\n%s", diff)
	}
}

func TestDeriveRootMetadata(t *testing.T) {
	doc := deriveRoot(t, "en")

	assert.Equal(t, Draft07, doc.Schema)
	assert.Equal(t, option.SchemaID, doc.ID)
	assert.Equal(t, option.Title, doc.Title)
	assert.Equal(t, option.Version, doc.Version)
	assert.Equal(t, "object", doc.Type)
	assert.Equal(t, false, doc.AdditionalProperties)
	assert.Empty(t, doc.Required)

	for _, section := range []string{"$schema", "log", "dns", "ntp", "endpoints", "inbounds", "outbounds", "route", "services", "experimental"} {
		assert.Contains(t, doc.Properties, section)
	}
	assert.NotContains(t, doc.Definitions, option.Root().Name())
}

func TestDeriveFamiliesAsDefinitions(t *testing.T) {
	doc := deriveRoot(t, "en")

	for name, family := range option.Families() {
		t.Run(name, func(t *testing.T) {
			def, ok := doc.Definitions[name]
			require.True(t, ok)

			cases := family.Cases()
			require.Len(t, def.OneOf, len(cases))
			for i, cs := range cases {
				member := cs.Rule.(schema.Named)
				assert.Equal(t, member.Name(), def.OneOf[i].RefName())

				body, ok := doc.Definitions[member.Name()]
				require.True(t, ok, member.Name())
				key := body.Properties[family.Key()]
				require.NotNil(t, key)
				assert.Equal(t, cs.Literal, key.Const)
			}
		})
	}
}

func TestDeriveRecursiveRuleIsSelfReference(t *testing.T) {
	doc := deriveRoot(t, "en")

	tree := doc.Definitions["RouteRule"]
	require.NotNil(t, tree)
	require.Len(t, tree.OneOf, 2)
	assert.Equal(t, "DefaultRouteRule", tree.OneOf[0].RefName())
	assert.Equal(t, "LogicalRouteRule", tree.OneOf[1].RefName())

	logical := doc.Definitions["LogicalRouteRuleRoute"]
	require.NotNil(t, logical)
	rules := logical.Properties["rules"]
	require.NotNil(t, rules)
	assert.Equal(t, "array", rules.Type)
	assert.Equal(t, "NestedRouteRule", rules.Items.RefName())
	require.NotNil(t, rules.MinItems)
	assert.Equal(t, 1, *rules.MinItems)
	assert.Equal(t, []string{"type", "mode", "rules", "outbound"}, logical.Required)

	nested := doc.Definitions["NestedRouteRule"]
	require.NotNil(t, nested)
	require.Len(t, nested.OneOf, 2)
	assert.Equal(t, "DefaultNestedRouteRule", nested.OneOf[0].RefName())
	assert.Equal(t, "LogicalNestedRouteRule", nested.OneOf[1].RefName())

	inner := doc.Definitions["LogicalNestedRouteRuleRoute"]
	require.NotNil(t, inner)
	assert.Equal(t, "NestedRouteRule", inner.Properties["rules"].Items.RefName())
	assert.Equal(t, []string{"type", "mode", "rules"}, inner.Required)
	assert.Contains(t, inner.Properties, "outbound")
	assert.Empty(t, doc.Definitions["DefaultNestedRouteRuleRoute"].Required)

	headless := doc.Definitions["LogicalHeadlessRule"]
	require.NotNil(t, headless)
	assert.Equal(t, "HeadlessRule", headless.Properties["rules"].Items.RefName())
}

func TestDeriveRendersConstraints(t *testing.T) {
	doc := deriveRoot(t, "en")

	level := doc.Definitions["Log"].Properties["level"]
	assert.Contains(t, level.Enum, "info")
	assert.Contains(t, level.Enum, "panic")
	assert.Equal(t, "info", level.Default)

	ipVersion := doc.Definitions["DefaultRouteRuleRoute"].Properties["ip_version"]
	assert.Equal(t, []any{int64(4), int64(6)}, ipVersion.Enum)

	address := doc.Definitions["LegacyDNSServer"].Properties["address"]
	assert.True(t, address.Deprecated)
	require.Len(t, address.AllOf, 1)
	assert.Equal(t, "LegacyDNSAddress", address.AllOf[0].RefName())
	assert.Contains(t, address.Description, "Deprecated:")

	legacy := doc.Definitions["LegacyDNSAddress"]
	assert.Len(t, legacy.AnyOf, len(option.LegacyDNSAddress.Alternatives()))
	assert.Equal(t, "local", legacy.AnyOf[0].Const)
}

func TestDeriveListableAndFormats(t *testing.T) {
	item := schema.MustObject("Item",
		schema.Opt("names", schema.Listable(schema.String())),
		schema.Req("id", schema.String().Format(schema.FormatUUID)),
		schema.Opt("timeout", schema.String().Format(schema.FormatDuration)),
		schema.Opt("port", schema.Integer().Min(0).Max(65535)),
		schema.Opt("headers", schema.Map(schema.String())),
		schema.Opt("extra", schema.Any()),
	)
	doc, err := Derive(schema.MustObject("Root", schema.Opt("item", item)), Options{})
	require.NoError(t, err)

	def := doc.Definitions["Item"]
	require.NotNil(t, def)
	want := &Schema{AnyOf: []*Schema{
		{Type: "string"},
		{Type: "array", Items: &Schema{Type: "string"}},
	}}
	assert.Empty(t, cmp.Diff(want, def.Properties["names"]))
	assert.Equal(t, "uuid", def.Properties["id"].Format)
	assert.Equal(t, schema.DurationPattern, def.Properties["timeout"].Pattern)
	assert.Equal(t, int64(65535), *def.Properties["port"].Maximum)
	assert.Equal(t, &Schema{Type: "string"}, def.Properties["headers"].AdditionalProperties)
	assert.Equal(t, &Schema{}, def.Properties["extra"])
	assert.Equal(t, []string{"id"}, def.Required)
}

func TestDeriveAddressFormats(t *testing.T) {
	obj := schema.MustObject("Addr",
		schema.Opt("listen", schema.String().Format(schema.FormatIP)),
		schema.Opt("cidr", schema.Listable(schema.String().Format(schema.FormatPrefix))),
	)
	doc, err := Derive(schema.MustObject("Root", schema.Opt("addr", obj)), Options{})
	require.NoError(t, err)
	def := doc.Definitions["Addr"]

	want := &Schema{Type: "string", AnyOf: []*Schema{{Format: "ipv4"}, {Format: "ipv6"}}}
	assert.Empty(t, cmp.Diff(want, def.Properties["listen"]))

	prefix := def.Properties["cidr"].AnyOf[0]
	require.Len(t, prefix.AnyOf, 2)
	assert.Equal(t, "string", prefix.Type)

	v4 := regexp.MustCompile(prefix.AnyOf[0].Pattern)
	v6 := regexp.MustCompile(prefix.AnyOf[1].Pattern)
	matches := func(s string) bool { return v4.MatchString(s) || v6.MatchString(s) }
	for _, ok := range []string{"10.0.0.0/8", "198.18.0.0/15", "127.0.0.1", "fdfe:dcba:9876::1/126", "::", "::ffff:1.2.3.4", "2001:db8::/32"} {
		assert.True(t, matches(ok), ok)
		assert.True(t, schema.Validate(schema.String().Format(schema.FormatPrefix), ok, schema.Options{}).Valid(), ok)
	}
	for _, bad := range []string{"10.0.0.0/33", "256.1.1.1", "example.com", "2001:db8::/129"} {
		assert.False(t, matches(bad), bad)
		assert.False(t, schema.Validate(schema.String().Format(schema.FormatPrefix), bad, schema.Options{}).Valid(), bad)
	}
}

func TestDeriveLanguage(t *testing.T) {
	en := deriveRoot(t, "en")
	zh := deriveRoot(t, "zh")

	assert.Equal(t, "sing-box configuration file.", en.Description)
	assert.Equal(t, "sing-box 配置文件。", zh.Description)
	assert.Equal(t, "Log level.", en.Definitions["Log"].Properties["level"].Description)
	assert.Equal(t, "日志等级。", zh.Definitions["Log"].Properties["level"].Description)
}

func TestDeriveDefinitionConflict(t *testing.T) {
	a := schema.MustObject("Dup", schema.Opt("a", schema.String()))
	b := schema.MustObject("Dup", schema.Opt("b", schema.String()))

	_, err := Derive(schema.MustObject("Root", schema.Opt("a", a), schema.Opt("b", b)), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDefinitionConflict)

	// 同一规则多次引用只生成一个定义
	doc, err := Derive(schema.MustObject("Root", schema.Opt("a", a), schema.Opt("b", a)), Options{})
	require.NoError(t, err)
	assert.Len(t, doc.Definitions, 1)
}

func TestDeriveLazyMustMatchDefinition(t *testing.T) {
	target := schema.MustObject("Target", schema.Opt("a", schema.String()))
	ref := schema.Lazy("Other", func() schema.Rule { return target })

	_, err := Derive(schema.MustObject("Root", schema.Opt("x", ref)), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedRule)
}
