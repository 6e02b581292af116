package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/boxschema/internal/schema"
)

const fullConfig = `{
  "$schema": "https://github.com/creamcroissant/boxschema/releases/latest/download/schema.json",
  "log": {"level": "info", "timestamp": true},
  "dns": {
    "servers": [
      {"type": "https", "tag": "cloudflare", "server": "1.1.1.1", "tls": {"enabled": true}},
      {"type": "local", "tag": "local"},
      {"type": "fakeip", "tag": "fakeip", "inet4_range": "198.18.0.0/15"},
      {"tag": "legacy", "address": "tls://8.8.8.8", "detour": "direct"}
    ],
    "rules": [
      {"query_type": ["A", "AAAA", 65], "server": "fakeip"},
      {"rule_set": "geosite-ads", "action": "reject"},
      {"domain_suffix": ".lan", "action": "predefined", "rcode": "NXDOMAIN"},
      {
        "type": "logical",
        "mode": "or",
        "rules": [{"domain": "example.com", "server": "local"}, {"clash_mode": "direct", "server": "local"}],
        "server": "local"
      }
    ],
    "final": "cloudflare",
    "strategy": "prefer_ipv4"
  },
  "inbounds": [
    {"type": "mixed", "tag": "mixed-in", "listen": "127.0.0.1", "listen_port": 2080},
    {
      "type": "vless",
      "tag": "vless-in",
      "listen": "::",
      "listen_port": 443,
      "users": [{"name": "alice", "uuid": "bf000d23-0752-40b4-affe-68f7707a9661", "flow": "xtls-rprx-vision"}],
      "tls": {
        "enabled": true,
        "server_name": "www.example.com",
        "reality": {
          "enabled": true,
          "handshake": {"server": "www.example.com", "server_port": 443},
          "private_key": "UuMBgl7MXTPx9inmQp2UC7Jcnwc6XYbwDNebonM-FCc",
          "short_id": ["0123456789abcdef"]
        }
      }
    },
    {"type": "tun", "address": ["172.19.0.1/30", "fdfe:dcba:9876::1/126"], "auto_route": true, "strict_route": true}
  ],
  "outbounds": [
    {"type": "direct", "tag": "direct"},
    {
      "type": "vmess",
      "tag": "vmess-out",
      "server": "203.0.113.1",
      "server_port": 8443,
      "uuid": "bf000d23-0752-40b4-affe-68f7707a9661",
      "transport": {"type": "ws", "path": "/ray", "headers": {"Host": "cdn.example.com"}},
      "multiplex": {"enabled": true, "protocol": "smux", "max_streams": 8}
    },
    {"type": "selector", "tag": "proxy", "outbounds": ["vmess-out", "direct"], "default": "vmess-out"}
  ],
  "route": {
    "rules": [
      {"action": "sniff"},
      {"protocol": "dns", "action": "hijack-dns"},
      {"ip_is_private": true, "outbound": "direct"},
      {
        "type": "logical",
        "mode": "and",
        "rules": [{"port": 443, "outbound": "proxy"}, {"network": "udp", "outbound": "proxy"}],
        "action": "reject",
        "method": "drop"
      }
    ],
    "rule_set": [
      {"type": "remote", "tag": "geosite-ads", "format": "binary", "url": "https://example.com/ads.srs", "download_detour": "proxy"},
      {"type": "inline", "tag": "lan", "rules": [{"ip_cidr": ["192.168.0.0/16"]}]}
    ],
    "final": "proxy",
    "auto_detect_interface": true
  },
  "experimental": {
    "cache_file": {"enabled": true},
    "clash_api": {"external_controller": "127.0.0.1:9090"}
  }
}`

func TestRootEmptyDocument(t *testing.T) {
	res := Validate(map[string]any{}, schema.Options{})
	require.True(t, res.Valid(), "%v", res.Err())
	assert.Empty(t, res.Warnings)
}

func TestRootFullDocument(t *testing.T) {
	doc, err := schema.DecodeJSON([]byte(fullConfig))
	require.NoError(t, err)

	res := Validate(doc, schema.Options{})
	require.True(t, res.Valid(), "%v", res.Err())

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "dns.servers[3].address", res.Warnings[0].Path)

	value := res.Value.(map[string]any)
	rules := value["dns"].(map[string]any)["rules"].([]any)
	first := rules[0].(map[string]any)
	assert.Equal(t, []any{"A", "AAAA", int64(65)}, first["query_type"])
	assert.Equal(t, []any{"geosite-ads"}, rules[1].(map[string]any)["rule_set"])
}

func TestRootRejectsUnknownSection(t *testing.T) {
	res := Validate(map[string]any{"outbound": []any{}}, schema.Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, schema.ErrorTypeUnknownField, res.Errors[0].Type)
	assert.Equal(t, "outbound", res.Errors[0].Path)
}

func TestRootErrorPaths(t *testing.T) {
	doc, err := schema.DecodeJSON([]byte(`{
		"inbounds": [{"type": "vmess", "listen": "::", "users": [{"uuid": "nope"}]}],
		"outbounds": [{"type": "carrier-pigeon"}],
		"route": {"rules": [{"action": "reject", "method": "ignore"}]}
	}`))
	require.NoError(t, err)

	res := Validate(doc, schema.Options{})
	paths := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		paths = append(paths, e.Path)
	}
	assert.ElementsMatch(t, []string{
		"inbounds[0].users[0].uuid",
		"outbounds[0].type",
		"route.rules[0].method",
	}, paths)
}

func TestLegacyDNSAddress(t *testing.T) {
	alt, ok := LegacyDNSAddress.Match("tls://8.8.8.8")
	require.True(t, ok)
	assert.Equal(t, "tls://", alt.Name)

	alt, ok = LegacyDNSAddress.Match("8.8.8.8")
	require.True(t, ok)
	assert.Equal(t, "udp address", alt.Name)

	for _, rcode := range RCodeAddresses {
		assert.True(t, schema.Validate(LegacyDNSAddress, rcode, schema.Options{}).Valid(), rcode)
	}
	assert.False(t, schema.Validate(LegacyDNSAddress, "rcode://teapot", schema.Options{}).Valid())

	res := schema.Validate(LegacyDNSAddress, "ftp://x", schema.Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, schema.ErrorTypeNoMatch, res.Errors[0].Type)
	assert.ErrorIs(t, res.Err(), schema.ErrNoMatch)
}

func nestedRouteRule(depth int) any {
	var doc any = map[string]any{"domain": "example.com", "outbound": "direct"}
	for i := 0; i < depth; i++ {
		doc = map[string]any{"type": "logical", "mode": "and", "rules": []any{doc}, "outbound": "direct"}
	}
	return doc
}

func TestRouteRuleRecursion(t *testing.T) {
	doc, err := schema.DecodeJSON([]byte(`{
		"type": "logical",
		"mode": "and",
		"rules": [{"domain": "a.com", "outbound": "direct"}, {"port": 80, "outbound": "direct"}],
		"outbound": "direct"
	}`))
	require.NoError(t, err)
	require.True(t, schema.Validate(RouteRule, doc, schema.Options{}).Valid())

	require.True(t, schema.Validate(RouteRule, nestedRouteRule(50), schema.Options{}).Valid())

	res := schema.Validate(RouteRule, nestedRouteRule(100000), schema.Options{})
	require.False(t, res.Valid())
	assert.ErrorIs(t, res.Err(), schema.ErrDepthExceeded)
}

func TestLogicalRuleChildrenAreMatchers(t *testing.T) {
	doc, err := schema.DecodeJSON([]byte(`{
		"route": {"rules": [{
			"type": "logical",
			"mode": "and",
			"rules": [
				{"domain": "a.com"},
				{"type": "logical", "mode": "or", "rules": [{"port": 443}, {"network": "udp"}]}
			],
			"outbound": "proxy"
		}]},
		"dns": {"rules": [{
			"type": "logical",
			"mode": "or",
			"rules": [{"domain_suffix": ".lan"}, {"query_type": "AAAA"}],
			"server": "local"
		}]}
	}`))
	require.NoError(t, err)
	res := Validate(doc, schema.Options{})
	require.True(t, res.Valid(), "%v", res.Err())

	// 逻辑规则本身仍需动作目标
	res = schema.Validate(RouteRule, map[string]any{
		"type": "logical", "mode": "and", "rules": []any{map[string]any{"domain": "a.com"}},
	}, schema.Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "outbound", res.Errors[0].Path)
	assert.Equal(t, schema.ErrorTypeRequired, res.Errors[0].Type)

	res = schema.Validate(DNSRule, map[string]any{"domain": "a.com"}, schema.Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "server", res.Errors[0].Path)

	// 子规则上的字段照常校验
	res = schema.Validate(RouteRule, map[string]any{
		"type": "logical", "mode": "and", "outbound": "proxy",
		"rules": []any{map[string]any{"domain": "a.com", "outbound": int64(1)}, map[string]any{"prot": int64(1)}},
	}, schema.Options{})
	paths := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		paths = append(paths, e.Path)
	}
	assert.ElementsMatch(t, []string{"rules[0].outbound", "rules[1].prot"}, paths)
}

func TestRuleActionMembers(t *testing.T) {
	tests := []struct {
		name string
		rule schema.Rule
		doc  map[string]any
	}{
		{"route-options", RouteRule, map[string]any{"action": "route-options", "override_port": int64(53), "udp_connect": true}},
		{"resolve", RouteRule, map[string]any{"action": "resolve", "server": "local", "strategy": "ipv4_only", "disable_cache": true}},
		{"sniff", RouteRule, map[string]any{"action": "sniff", "sniffer": "tls", "timeout": "1s"}},
		{"logical reject", RouteRule, map[string]any{"type": "logical", "mode": "or", "rules": []any{map[string]any{"port": int64(25)}}, "action": "reject"}},
		{"dns route-options", DNSRule, map[string]any{"action": "route-options", "rewrite_ttl": int64(60), "client_subnet": "1.1.1.0/24"}},
		{"dns reject", DNSRule, map[string]any{"rule_set": "ads", "action": "reject", "method": "drop", "no_drop": true}},
		{"dns predefined", DNSRule, map[string]any{"action": "predefined", "rcode": "NOERROR", "answer": "a.com. IN A 1.1.1.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := schema.Validate(tt.rule, tt.doc, schema.Options{})
			require.True(t, res.Valid(), "%v", res.Err())
		})
	}

	res := schema.Validate(DNSRule, map[string]any{"action": "reject", "server": "local"}, schema.Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, schema.ErrorTypeUnknownField, res.Errors[0].Type)
	assert.Equal(t, "server", res.Errors[0].Path)
}

func TestHeadlessRuleHasNoAction(t *testing.T) {
	res := schema.Validate(HeadlessRule, map[string]any{"domain": "a.com", "action": "reject"}, schema.Options{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "action", res.Errors[0].Path)

	res = schema.Validate(RuleSetSource, map[string]any{
		"version": int64(3),
		"rules": []any{
			map[string]any{"domain_suffix": []any{".cn"}},
			map[string]any{"type": "logical", "mode": "or", "rules": []any{map[string]any{"port": int64(53)}}},
		},
	}, schema.Options{})
	require.True(t, res.Valid(), "%v", res.Err())
}
