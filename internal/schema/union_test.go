package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protocolUnion() *UnionRule {
	socks := MustObject("SocksOutbound", Tag("type", "socks"), Req("server", String()), Opt("version", String().Enum("4", "4a", "5")))
	vless := MustObject("VLESSOutbound", Tag("type", "vless"), Req("server", String()), Req("uuid", String().Format(FormatUUID)))
	return MustUnion("Outbound", "type", On("socks", socks), On("vless", vless))
}

func TestUnionDispatch(t *testing.T) {
	u := protocolUnion()
	res := Validate(u, mustDecode(t, `{"type": "socks", "server": "127.0.0.1", "version": "5"}`), Options{})
	require.True(t, res.Valid(), res.Err())

	res = Validate(u, mustDecode(t, `{"type": "vless", "server": "a", "uuid": "bf000d23-0752-40b4-affe-68f7707a9661"}`), Options{})
	require.True(t, res.Valid(), res.Err())
}

func TestUnionRejectsForeignFields(t *testing.T) {
	u := protocolUnion()
	res := Validate(u, mustDecode(t, `{"type": "socks", "server": "a", "uuid": "bf000d23-0752-40b4-affe-68f7707a9661"}`), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ErrorTypeUnknownField, res.Errors[0].Type)
	assert.Equal(t, "uuid", res.Errors[0].Path)
}

func TestUnionUnknownVariant(t *testing.T) {
	res := Validate(protocolUnion(), mustDecode(t, `{"type": "carrier-pigeon"}`), Options{})
	require.Len(t, res.Errors, 1)
	e := res.Errors[0]
	assert.Equal(t, ErrorTypeUnknownVariant, e.Type)
	assert.Equal(t, "type", e.Path)
	assert.Equal(t, "one of: socks, vless", e.Expected)
	assert.ErrorIs(t, res.Err(), ErrUnknownVariant)
}

func TestUnionMissingKey(t *testing.T) {
	res := Validate(protocolUnion(), mustDecode(t, `{"server": "a"}`), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ErrorTypeRequired, res.Errors[0].Type)

	res = Validate(protocolUnion(), mustDecode(t, `{"type": 5}`), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ErrorTypeShape, res.Errors[0].Type)

	res = Validate(protocolUnion(), mustDecode(t, `"socks"`), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ErrorTypeShape, res.Errors[0].Type)
}

func TestUnionDefaultMember(t *testing.T) {
	route := MustObject("RouteAction", OptTag("action", "route"), Opt("outbound", String()))
	reject := MustObject("RejectAction", Tag("action", "reject"), Opt("method", String().Enum("default", "drop")))
	u := MustUnion("Action", "action", DefaultOn("route", route), On("reject", reject))

	res := Validate(u, mustDecode(t, `{"outbound": "direct"}`), Options{})
	require.True(t, res.Valid(), res.Err())
	assert.Equal(t, "route", u.DefaultLiteral())

	res = Validate(u, mustDecode(t, `{"method": "drop"}`), Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "method", res.Errors[0].Path)
}

func TestUnionConstruction(t *testing.T) {
	a := MustObject("A", Tag("type", "a"))
	optA := MustObject("OptA", OptTag("type", "a"))
	b := MustObject("B", Tag("type", "b"))

	_, err := NewUnion("Dup", "type", On("a", a), On("a", optA))
	assert.ErrorIs(t, err, ErrDuplicateVariant)

	_, err = NewUnion("Mislabeled", "type", On("b", a))
	assert.ErrorIs(t, err, ErrMissingDiscriminator)

	_, err = NewUnion("RequiredDefault", "type", DefaultOn("a", a))
	assert.ErrorIs(t, err, ErrInvalidDefault)

	_, err = NewUnion("TwoDefaults", "type", DefaultOn("a", optA), DefaultOn("b", MustObject("OptB", OptTag("type", "b"))))
	assert.ErrorIs(t, err, ErrInvalidDefault)

	u, err := NewUnion("Ok", "type", On("b", b), DefaultOn("a", optA))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, u.Literals())

	assert.Panics(t, func() { MustUnion("Dup", "type", On("a", a), On("a", a)) })
}

func TestNestedUnionMember(t *testing.T) {
	route := MustObject("RouteAction", OptTag("action", "route"), OptTag("type", "default"), Opt("outbound", String()))
	reject := MustObject("RejectAction", Tag("action", "reject"), OptTag("type", "default"))
	actions := MustUnion("DefaultRule", "action", DefaultOn("route", route), On("reject", reject))
	logical := MustObject("LogicalRule", Tag("type", "logical"), Req("mode", String().Enum("and", "or")))
	u := MustUnion("Rule", "type", DefaultOn("default", actions), On("logical", logical))

	res := Validate(u, mustDecode(t, `{"type": "default", "action": "reject"}`), Options{})
	require.True(t, res.Valid(), res.Err())

	res = Validate(u, mustDecode(t, `{"outbound": "proxy"}`), Options{})
	require.True(t, res.Valid(), res.Err())
}
