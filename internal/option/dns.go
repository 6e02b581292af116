package option

import "github.com/creamcroissant/boxschema/internal/schema"

// RCodeAddresses 是旧版 DNS 服务器可用的 rcode:// 固定地址。
var RCodeAddresses = []string{
	"rcode://success",
	"rcode://format_error",
	"rcode://server_failure",
	"rcode://name_error",
	"rcode://not_implemented",
	"rcode://refused",
}

func schemeAddress(scheme string) schema.Alternative {
	prefix := scheme + "://"
	return schema.Alternative{
		Name: prefix,
		When: schema.HasPrefix(prefix),
		Rule: schema.String().Pattern(`^` + scheme + `://\S+$`),
	}
}

// LegacyDNSAddress 是旧版 DNS 服务器地址的有序匹配联合。
//
// 分支按声明顺序匹配，第一个命中的分支生效；没有 scheme 的字符串视为 UDP 服务器地址。
var LegacyDNSAddress = schema.FirstMatch("LegacyDNSAddress",
	schema.Alternative{Name: "local", When: schema.Equals("local"), Rule: schema.Literal("local")},
	schema.Alternative{Name: "fakeip", When: schema.Equals("fakeip"), Rule: schema.Literal("fakeip")},
	schema.Alternative{Name: "rcode://", When: schema.HasPrefix("rcode://"), Rule: schema.String().Enum(RCodeAddresses...)},
	schema.Alternative{Name: "dhcp://", When: schema.HasPrefix("dhcp://"), Rule: schema.String().Pattern(`^dhcp://\S+$`)},
	schemeAddress("tcp"),
	schemeAddress("tls"),
	schemeAddress("https"),
	schemeAddress("h3"),
	schemeAddress("quic"),
	schemeAddress("udp"),
	schema.Alternative{
		Name: "udp address",
		When: schema.All(schema.IsString, schema.Not(schema.Contains("://"))),
		Rule: schema.String().MinLen(1),
	},
).Describe("The address of the legacy DNS server.", "旧版 DNS 服务器地址。")

const legacyDNSNote = "legacy DNS server format is deprecated, use typed DNS servers / 旧版 DNS 服务器格式已废弃，请使用带 type 的 DNS 服务器"

// LegacyDNSServer 是不带 type 字段的旧版 DNS 服务器。
var LegacyDNSServer = schema.MustObject("LegacyDNSServer",
	opt("tag", str, "The tag of the DNS server.", "DNS 服务器的标签。"),
	req("address", LegacyDNSAddress, "The address of the DNS server.", "DNS 服务器地址。").Deprecate(legacyDNSNote),
	opt("address_resolver", str, "Tag of another server to resolve the domain name in the address.", "用于解析地址中域名的其他服务器标签。"),
	opt("address_strategy", domainStrategy, "The domain strategy for resolving the domain name in the address.", "解析地址中域名时的域名策略。"),
	opt("address_fallback_delay", duration, "The fallback delay for resolving the domain name in the address.", "解析地址中域名时的回退延迟。"),
	opt("strategy", domainStrategy, "Default domain strategy for resolving the domain names.", "默认域名解析策略。"),
	opt("detour", str, "Tag of an outbound for connecting to the DNS server.", "连接 DNS 服务器使用的出站标签。"),
	opt("client_subnet", prefix, "Append an edns0-subnet OPT extra record.", "附加 edns0-subnet OPT 记录。"),
).Describe("Legacy DNS server.", "旧版 DNS 服务器。")

func dnsServer(name, typ, en, zh string, parts ...schema.Part) schema.Case {
	all := append([]schema.Part{schema.Tag("type", typ), tagField("DNS server")}, parts...)
	return schema.On(typ, schema.MustObject(name, all...).Describe(en, zh))
}

var (
	dnsTLS = opt("tls", OutboundTLS, "TLS configuration.", "TLS 配置。")

	fakeIPRanges = schema.MustBundle("FakeIPRangeFields",
		opt("inet4_range", prefix, "IPv4 address range for FakeIP.", "FakeIP 的 IPv4 地址段。"),
		opt("inet6_range", prefix, "IPv6 address range for FakeIP.", "FakeIP 的 IPv6 地址段。"),
	)
)

// TypedDNSServer 是按 type 分派的 DNS 服务器联合。
var TypedDNSServer = schema.MustUnion("TypedDNSServer", "type",
	dnsServer("LocalDNSServer", "local",
		"Local DNS server uses the system resolver.", "local DNS 服务器使用系统解析器。",
		opt("prefer_go", boolean, "Use the Go resolver instead of the platform resolver.", "使用 Go 解析器替代平台解析器。"),
		DialerFields,
	),
	dnsServer("HostsDNSServer", "hosts",
		"Hosts DNS server answers from hosts files.", "hosts DNS 服务器从 hosts 文件应答。",
		opt("path", stringList, "List of paths to hosts files.", "hosts 文件路径列表。"),
		opt("predefined", schema.Map(stringList), "Predefined hosts.", "预定义的主机记录。"),
	),
	dnsServer("TCPDNSServer", "tcp",
		"DNS over TCP.", "基于 TCP 的 DNS。",
		ServerFields,
		DialerFields,
	),
	dnsServer("UDPDNSServer", "udp",
		"DNS over UDP.", "基于 UDP 的 DNS。",
		ServerFields,
		DialerFields,
	),
	dnsServer("TLSDNSServer", "tls",
		"DNS over TLS.", "基于 TLS 的 DNS。",
		ServerFields,
		dnsTLS,
		DialerFields,
	),
	dnsServer("QUICDNSServer", "quic",
		"DNS over QUIC.", "基于 QUIC 的 DNS。",
		ServerFields,
		dnsTLS,
		DialerFields,
	),
	dnsServer("HTTPSDNSServer", "https",
		"DNS over HTTPS.", "基于 HTTPS 的 DNS。",
		ServerFields,
		opt("path", str, "The path of the DNS server.", "DNS 服务器路径。").WithDefault("/dns-query"),
		opt("headers", httpHeaders, "Additional headers to be sent to the DNS server.", "发送给 DNS 服务器的额外头部。"),
		dnsTLS,
		DialerFields,
	),
	dnsServer("H3DNSServer", "h3",
		"DNS over HTTP/3.", "基于 HTTP/3 的 DNS。",
		ServerFields,
		opt("path", str, "The path of the DNS server.", "DNS 服务器路径。").WithDefault("/dns-query"),
		opt("headers", httpHeaders, "Additional headers to be sent to the DNS server.", "发送给 DNS 服务器的额外头部。"),
		dnsTLS,
		DialerFields,
	),
	dnsServer("DHCPDNSServer", "dhcp",
		"DHCP DNS server uses the DNS servers from DHCP.", "dhcp DNS 服务器使用 DHCP 下发的 DNS 服务器。",
		opt("interface", str, "Interface name to listen on. The default interface will be used if empty.", "监听的接口名，为空时使用默认接口。"),
		DialerFields,
	),
	dnsServer("FakeIPDNSServer", "fakeip",
		"FakeIP DNS server.", "FakeIP DNS 服务器。",
		fakeIPRanges,
	),
	dnsServer("TailscaleDNSServer", "tailscale",
		"Tailscale DNS server.", "Tailscale DNS 服务器。",
		req("endpoint", str, "The tag of the Tailscale endpoint.", "Tailscale 端点的标签。"),
		opt("accept_default_resolvers", boolean, "Accept default resolvers from the Tailscale network.", "接受 Tailscale 网络的默认解析器。"),
	),
	dnsServer("ResolvedDNSServer", "resolved",
		"Resolved DNS server forwards to the resolved service.", "resolved DNS 服务器转发到 resolved 服务。",
		req("service", str, "The tag of the Resolved service.", "resolved 服务的标签。"),
		opt("accept_default_resolvers", boolean, "Accept default resolvers.", "接受默认解析器。"),
	),
).Describe("DNS server.", "DNS 服务器。")

// DNSServer 按是否存在 type 字段在新旧两种格式间选择。
var DNSServer = schema.FirstMatch("DNSServer",
	schema.Alternative{Name: "typed", When: schema.HasKey("type"), Rule: TypedDNSServer},
	schema.Alternative{Name: "legacy", When: schema.IsObject, Rule: LegacyDNSServer},
).Describe("A DNS server, typed or legacy.", "DNS 服务器（新格式或旧格式）。")

var legacyFakeIP = schema.MustObject("LegacyDNSFakeIP",
	opt("enabled", boolean, "Enable FakeIP service.", "启用 FakeIP 服务。"),
	fakeIPRanges,
).Describe("Legacy FakeIP settings.", "旧版 FakeIP 设置。")

// DNS 是 dns 配置段。
var DNS = schema.MustObject("DNS",
	opt("servers", schema.Array(DNSServer), "List of DNS servers.", "DNS 服务器列表。"),
	opt("rules", schema.Array(DNSRule), "List of DNS rules.", "DNS 规则列表。"),
	opt("final", str, "Default DNS server tag. The first server will be used if empty.", "默认 DNS 服务器标签，为空时使用第一个。"),
	opt("strategy", domainStrategy, "Default domain strategy for resolving the domain names.", "默认域名解析策略。"),
	opt("disable_cache", boolean, "Disable dns cache.", "禁用 DNS 缓存。"),
	opt("disable_expire", boolean, "Disable dns cache expire.", "禁用 DNS 缓存过期。"),
	opt("independent_cache", boolean, "Make each DNS server's cache independent for special purposes.", "为每个 DNS 服务器使用独立缓存。"),
	opt("cache_capacity", schema.Integer().Min(0), "LRU cache capacity.", "LRU 缓存容量。"),
	opt("reverse_mapping", boolean, "Stores a reverse mapping of IP addresses after responding to a DNS query.", "响应 DNS 查询后保存 IP 地址的反向映射。"),
	opt("client_subnet", prefix, "Append an edns0-subnet OPT extra record with the specified IP prefix to every query by default.", "默认向每个查询附加指定前缀的 edns0-subnet OPT 记录。"),
	opt("fakeip", legacyFakeIP, "Legacy FakeIP settings.", "旧版 FakeIP 设置。").
		Deprecate("use fakeip DNS server / 请使用 fakeip DNS 服务器"),
).Describe("DNS settings.", "DNS 设置。")
