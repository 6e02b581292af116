package option

import "github.com/creamcroissant/boxschema/internal/schema"

const geoNote = "geoip/geosite are deprecated, use rule sets / geoip 与 geosite 已废弃，请使用规则集"

var (
	portList      = schema.Listable(port)
	portRangeList = schema.Listable(portRange)
	queryType     = schema.Listable(schema.AnyOf(schema.Integer().Min(0).Max(65535), str))
	sniffProtocol = schema.String().Enum("http", "tls", "quic", "stun", "dns", "bittorrent", "dtls", "ssh", "rdp", "ntp")
	logicalMode   = schema.String().Enum("and", "or")
)

// RuleMatchFields 是路由规则、DNS 规则与无头规则共享的匹配条件。
var RuleMatchFields = schema.MustBundle("RuleMatchFields",
	opt("network", networkList, "tcp or udp.", "tcp 或 udp。"),
	opt("domain", stringList, "Match full domain.", "匹配完整域名。"),
	opt("domain_suffix", stringList, "Match domain suffix.", "匹配域名后缀。"),
	opt("domain_keyword", stringList, "Match domain using keyword.", "匹配域名关键字。"),
	opt("domain_regex", stringList, "Match domain using regular expression.", "使用正则表达式匹配域名。"),
	opt("source_ip_cidr", prefixes, "Match source IP CIDR.", "匹配源 IP CIDR。"),
	opt("ip_cidr", prefixes, "Match IP CIDR.", "匹配 IP CIDR。"),
	opt("source_port", portList, "Match source port.", "匹配源端口。"),
	opt("source_port_range", portRangeList, "Match source port range.", "匹配源端口范围。"),
	opt("port", portList, "Match port.", "匹配端口。"),
	opt("port_range", portRangeList, "Match port range.", "匹配端口范围。"),
	opt("process_name", stringList, "Match process name.", "匹配进程名称。"),
	opt("process_path", stringList, "Match process path.", "匹配进程路径。"),
	opt("process_path_regex", stringList, "Match process path using regular expression.", "使用正则表达式匹配进程路径。"),
	opt("package_name", stringList, "Match android package name.", "匹配 Android 包名。"),
	opt("network_type", networkType, "Match network type.", "匹配网络类型。"),
	opt("network_is_expensive", boolean, "Match if network is considered Metered or Cellular.", "匹配按流量计费或蜂窝网络。"),
	opt("network_is_constrained", boolean, "Match if network is in Low Data Mode.", "匹配低数据模式网络。"),
	opt("wifi_ssid", stringList, "Match WiFi SSID.", "匹配 WiFi SSID。"),
	opt("wifi_bssid", stringList, "Match WiFi BSSID.", "匹配 WiFi BSSID。"),
	opt("invert", boolean, "Invert match result.", "反转匹配结果。"),
)

// RuleContextFields 是路由规则与 DNS 规则共享、规则集不支持的匹配条件。
var RuleContextFields = schema.MustBundle("RuleContextFields",
	opt("inbound", stringList, "Tags of Inbound.", "入站标签。"),
	opt("ip_version", schema.Integer().Enum(4, 6), "4 or 6.", "4 或 6。"),
	opt("auth_user", stringList, "Username, see each inbound for details.", "用户名，详见各入站。"),
	opt("protocol", stringList, "Sniffed protocol.", "嗅探出的协议。"),
	opt("client", stringList, "Sniffed client type.", "嗅探出的客户端类型。"),
	opt("source_ip_is_private", boolean, "Match non-public source IP.", "匹配非公网源 IP。"),
	opt("user", stringList, "Match user name.", "匹配用户名。"),
	opt("user_id", schema.Listable(schema.Integer().Min(0)), "Match user id.", "匹配用户 ID。"),
	opt("clash_mode", str, "Match Clash mode.", "匹配 Clash 模式。"),
	opt("rule_set", stringList, "Match rule-set.", "匹配规则集。"),
	opt("rule_set_ip_cidr_match_source", boolean, "Make ip_cidr in rule-sets match the source IP.", "使规则集中的 ip_cidr 匹配源 IP。"),
	opt("geosite", stringList, "Match geosite.", "匹配 geosite。").Deprecate(geoNote),
	opt("source_geoip", stringList, "Match source geoip.", "匹配源 geoip。").Deprecate(geoNote),
)

// RouteOptionsFields 调整连接的拨号行为而不选择出站。
var RouteOptionsFields = schema.MustBundle("RouteOptionsFields",
	opt("override_address", str, "Override the connection destination address.", "覆盖连接目标地址。"),
	opt("override_port", port, "Override the connection destination port.", "覆盖连接目标端口。"),
	opt("network_strategy", networkPolicy, "Strategy for selecting network interfaces.", "选择网络接口的策略。"),
	opt("fallback_delay", duration, "Delay before trying the fallback network.", "尝试备用网络前的等待时间。"),
	opt("udp_disable_domain_unmapping", boolean, "Do not unmap the destination address in UDP responses.", "不在 UDP 响应中还原目标地址。"),
	opt("udp_connect", boolean, "Connect to the destination instead of listen for UDP.", "UDP 连接目标而非监听。"),
	opt("udp_timeout", duration, "Timeout for UDP connections.", "UDP 连接超时。"),
	opt("tls_fragment", boolean, "Fragment TLS handshakes.", "分片 TLS 握手。"),
	opt("tls_fragment_fallback_delay", duration, "The fallback value used when TLS segmentation cannot automatically determine the wait time.", "TLS 分片无法自动确定等待时间时使用的回退值。"),
	opt("tls_record_fragment", boolean, "Fragment TLS handshake into multiple TLS records.", "将 TLS 握手拆分为多个 TLS 记录。"),
)

// RejectActionFields 是 reject 动作的参数，路由规则与 DNS 规则共用。
//
// 未配置 method 时，若 30 秒内触发 50 次，method 会被临时强制为 drop。
// 该行为只在运行时生效，校验阶段仅做说明。
var RejectActionFields = schema.MustBundle("RejectActionFields",
	opt("method", schema.String().Enum("default", "drop"), "default: Reply with TCP RST for TCP and ICMP port unreachable for UDP. drop: Drop packets. If not configured, after 50 triggers within 30 seconds the method is temporarily forced to drop.", "default：TCP 回复 RST，UDP 回复 ICMP 端口不可达；drop：丢弃数据包。未配置时 30 秒内触发 50 次后临时强制为 drop。").WithDefault("default"),
	opt("no_drop", boolean, "Do not automatically switch to drop after 50 triggers in 30 seconds.", "30 秒内触发 50 次后不自动切换为 drop。"),
)

// DNSRouteOptionsFields 调整 DNS 查询行为而不选择服务器。
var DNSRouteOptionsFields = schema.MustBundle("DNSRouteOptionsFields",
	opt("disable_cache", boolean, "Disable cache and save cache in this query.", "本次查询不读写缓存。"),
	opt("rewrite_ttl", schema.Integer().Min(0), "Rewrite TTL in DNS responses.", "重写 DNS 响应中的 TTL。"),
	opt("client_subnet", prefix, "Append an edns0-subnet OPT extra record with the specified IP prefix.", "附加指定前缀的 edns0-subnet OPT 记录。"),
)

// action 是规则叶子上的一种动作。nested 为逻辑规则子规则使用的字段，
// 为空时与 fields 相同。
type action struct {
	literal string
	suffix  string
	en, zh  string
	fields  schema.Bundle
	nested  []schema.Part
	dflt    bool
}

func (a action) parts(nested bool) []schema.Part {
	if nested && a.nested != nil {
		return a.nested
	}
	return []schema.Part{a.fields}
}

// optional 返回去掉必填标记的字段副本。
func optional(f schema.Field) schema.Field {
	f.Required = false
	return f
}

var (
	routeOutbound  = req("outbound", str, "Tag of the target outbound.", "目标出站标签。")
	dnsRouteServer = req("server", str, "Tag of target server.", "目标服务器标签。")
	dnsStrategy    = opt("strategy", domainStrategy, "Set domain strategy for this query.", "为本次查询设置域名策略。")
)

var routeActions = []action{
	{
		literal: "route", suffix: "Route", dflt: true,
		en: "Route connections to the specified outbound.", zh: "将连接路由到指定出站。",
		fields: schema.MustBundle("RouteActionFields", routeOutbound, RouteOptionsFields),
		nested: []schema.Part{optional(routeOutbound), RouteOptionsFields},
	},
	{
		literal: "route-options", suffix: "RouteOptions",
		en: "Set options for routing.", zh: "设置路由选项。",
		fields: RouteOptionsFields,
	},
	{
		literal: "reject", suffix: "Reject",
		en: "Reject connections.", zh: "拒绝连接。",
		fields: RejectActionFields,
	},
	{
		literal: "hijack-dns", suffix: "HijackDNS",
		en: "Hijack DNS requests to the sing-box DNS module.", zh: "将 DNS 请求劫持到 sing-box DNS 模块。",
		fields: schema.MustBundle("HijackDNSActionFields"),
	},
	{
		literal: "sniff", suffix: "Sniff",
		en: "Perform protocol sniffing on connections.", zh: "对连接执行协议嗅探。",
		fields: schema.MustBundle("SniffActionFields",
			opt("sniffer", schema.Listable(sniffProtocol), "Enabled sniffers. All sniffers enabled by default.", "启用的嗅探器，默认全部启用。"),
			opt("timeout", duration, "Timeout for sniffing.", "嗅探超时时间。").WithDefault("300ms"),
		),
	},
	{
		literal: "resolve", suffix: "Resolve",
		en: "Resolve request destination from domain to IP addresses.", zh: "将请求目标域名解析为 IP 地址。",
		fields: schema.MustBundle("ResolveActionFields",
			opt("server", str, "Specifies DNS server tag to use instead of selecting through DNS routing.", "指定使用的 DNS 服务器标签，不经过 DNS 路由。"),
			opt("strategy", domainStrategy, "DNS resolution strategy.", "DNS 解析策略。"),
			DNSRouteOptionsFields,
		),
	},
}

var dnsActions = []action{
	{
		literal: "route", suffix: "Route", dflt: true,
		en: "Route DNS requests to the specified server.", zh: "将 DNS 请求路由到指定服务器。",
		fields: schema.MustBundle("DNSRouteActionFields", dnsRouteServer, dnsStrategy, DNSRouteOptionsFields),
		nested: []schema.Part{optional(dnsRouteServer), dnsStrategy, DNSRouteOptionsFields},
	},
	{
		literal: "route-options", suffix: "RouteOptions",
		en: "Set options for DNS routing.", zh: "设置 DNS 路由选项。",
		fields: DNSRouteOptionsFields,
	},
	{
		literal: "reject", suffix: "Reject",
		en: "Reject DNS requests.", zh: "拒绝 DNS 请求。",
		fields: RejectActionFields,
	},
	{
		literal: "predefined", suffix: "Predefined",
		en: "Respond with predefined DNS records.", zh: "以预定义记录应答 DNS 请求。",
		fields: schema.MustBundle("PredefinedActionFields",
			opt("rcode", schema.String().Enum("NOERROR", "FORMERR", "SERVFAIL", "NXDOMAIN", "NOTIMP", "REFUSED"), "The response code.", "响应码。").WithDefault("NOERROR"),
			opt("answer", stringList, "List of text DNS record to respond as answers.", "作为 answer 返回的文本记录。"),
			opt("ns", stringList, "List of text DNS record to respond as name servers.", "作为 ns 返回的文本记录。"),
			opt("extra", stringList, "List of text DNS record to respond as extra records.", "作为 extra 返回的文本记录。"),
		),
	},
}

// actionUnion 将同一组匹配条件与各动作组合为按 action 分派的联合。
// nested 为 true 时动作目标可省略，动作由外层逻辑规则决定。
func actionUnion(name string, base []schema.Part, actions []action, nested bool) *schema.UnionRule {
	cases := make([]schema.Case, 0, len(actions))
	for _, a := range actions {
		tag := schema.Tag("action", a.literal)
		if a.dflt {
			tag = schema.OptTag("action", a.literal)
		}
		parts := append(append([]schema.Part{}, base...), tag.Describe("Rule action.", "规则动作。"))
		parts = append(parts, a.parts(nested)...)
		member := schema.MustObject(name+a.suffix, parts...).Describe(a.en, a.zh)
		if a.dflt {
			cases = append(cases, schema.DefaultOn(a.literal, member))
		} else {
			cases = append(cases, schema.On(a.literal, member))
		}
	}
	return schema.MustUnion(name, "action", cases...)
}

func logicalFields(self schema.Rule) []schema.Part {
	return []schema.Part{
		schema.Tag("type", "logical"),
		req("mode", logicalMode, "and or or.", "and 或 or。"),
		req("rules", schema.Array(self).MinItems(1), "Included rules.", "包含的规则。"),
		opt("invert", boolean, "Invert match result.", "反转匹配结果。"),
	}
}

func defaultType() schema.Field {
	return schema.OptTag("type", "default").Describe("Rule type, default when omitted.", "规则类型，省略时为 default。")
}

// newRuleTree 构造带逻辑组合的递归规则联合。带动作的规则树中，logical 成员的
// rules 指向 Nested 前缀的子规则联合，子规则的动作目标可省略；子规则联合的
// logical 成员通过惰性引用指回自身。无动作的规则树直接引用自身。
func newRuleTree(name, en, zh string, leaf []schema.Part, actions []action) *schema.UnionRule {
	leafParts := append([]schema.Part{defaultType()}, leaf...)
	if len(actions) == 0 {
		var tree *schema.UnionRule
		self := schema.Lazy(name, func() schema.Rule { return tree })
		tree = schema.MustUnion(name, "type",
			schema.DefaultOn("default", schema.MustObject("Default"+name, leafParts...)),
			schema.On("logical", schema.MustObject("Logical"+name, logicalFields(self)...)),
		).Describe(en, zh)
		return tree
	}

	nestedName := "Nested" + name
	var nested *schema.UnionRule
	nestedSelf := schema.Lazy(nestedName, func() schema.Rule { return nested })
	nested = schema.MustUnion(nestedName, "type",
		schema.DefaultOn("default", actionUnion("Default"+nestedName, leafParts, actions, true)),
		schema.On("logical", actionUnion("Logical"+nestedName, logicalFields(nestedSelf), actions, true)),
	).Describe("Sub-rule of a logical rule. The action is taken from the enclosing logical rule.", "逻辑规则的子规则，动作由外层逻辑规则决定。")

	return schema.MustUnion(name, "type",
		schema.DefaultOn("default", actionUnion("Default"+name, leafParts, actions, false)),
		schema.On("logical", actionUnion("Logical"+name, logicalFields(nested), actions, false)),
	).Describe(en, zh)
}

// RouteRule 是路由规则联合：默认规则或逻辑规则，各自按 action 分派。
var RouteRule = newRuleTree("RouteRule", "Route rule.", "路由规则。",
	[]schema.Part{
		RuleMatchFields,
		RuleContextFields,
		opt("ip_is_private", boolean, "Match non-public IP.", "匹配非公网 IP。"),
		opt("geoip", stringList, "Match geoip.", "匹配 geoip。").Deprecate(geoNote),
		opt("rule_set_ipcidr_match_source", boolean, "Make ip_cidr in rule-sets match the source IP.", "使规则集中的 ip_cidr 匹配源 IP。").
			Deprecate("renamed to rule_set_ip_cidr_match_source / 已更名为 rule_set_ip_cidr_match_source"),
	},
	routeActions,
)

// DNSRule 是 DNS 规则联合。
var DNSRule = newRuleTree("DNSRule", "DNS rule.", "DNS 规则。",
	[]schema.Part{
		RuleMatchFields,
		RuleContextFields,
		opt("query_type", queryType, "DNS query type. Values can be integers or type name strings.", "DNS 查询类型，可为整数或类型名。"),
		opt("outbound", stringList, "Match outbound.", "匹配出站。").
			Deprecate("DNS rule outbound matching is deprecated / DNS 规则的 outbound 匹配已废弃"),
		opt("ip_is_private", boolean, "Match private IP with query response.", "使用查询响应匹配私有 IP。"),
		opt("ip_accept_any", boolean, "Match any IP with query response.", "使用查询响应匹配任意 IP。"),
		opt("rule_set_ip_cidr_accept_empty", boolean, "Make ip_cidr rules in rule-sets accept empty query response.", "使规则集中的 ip_cidr 规则接受空查询响应。"),
	},
	dnsActions,
)

// HeadlessRule 是规则集中使用的无动作规则。
var HeadlessRule = newRuleTree("HeadlessRule", "Headless rule, used in rule-sets.", "无头规则，用于规则集。",
	[]schema.Part{
		RuleMatchFields,
		opt("query_type", queryType, "DNS query type. Values can be integers or type name strings.", "DNS 查询类型，可为整数或类型名。"),
	},
	nil,
)
