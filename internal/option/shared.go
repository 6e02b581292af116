// Package option 定义 sing-box 配置文件的完整字段目录：共享字段包、
// 入站/出站/端点/服务/DNS 服务器等协议族联合、路由与 DNS 规则树，
// 以及根配置文档。
//
// 所有规则在包初始化时构建，任何字段名冲突或判别值重复都会直接 panic。
package option

import "github.com/creamcroissant/boxschema/internal/schema"

func opt(name string, rule schema.Rule, en, zh string) schema.Field {
	return schema.Opt(name, rule).Describe(en, zh)
}

func req(name string, rule schema.Rule, en, zh string) schema.Field {
	return schema.Req(name, rule).Describe(en, zh)
}

// 常用叶子规则
var (
	str         = schema.String()
	boolean     = schema.Boolean()
	integer     = schema.Integer()
	port        = schema.Integer().Min(0).Max(65535)
	mbps        = schema.Integer().Min(0)
	duration    = schema.String().Format(schema.FormatDuration)
	ipAddr      = schema.String().Format(schema.FormatIP)
	prefix      = schema.String().Format(schema.FormatPrefix)
	uuidString  = schema.String().Format(schema.FormatUUID)
	stringList  = schema.Listable(schema.String())
	prefixes    = schema.Listable(prefix)
	httpHeaders = schema.Map(schema.Listable(schema.String()))

	// portRange 形如 "1000:2000"、":3000" 或 "4000:"
	portRange = schema.String().Pattern(`^\d*:\d*$`)

	domainStrategy = schema.String().Enum("", "prefer_ipv4", "prefer_ipv6", "ipv4_only", "ipv6_only")
	networkList    = schema.Listable(schema.String().Enum("tcp", "udp"))
	network        = schema.String().Enum("", "tcp", "udp")
	networkType    = schema.Listable(schema.String().Enum("wifi", "cellular", "ethernet", "other"))
	networkPolicy  = schema.String().Enum("default", "fallback", "hybrid")
	tlsVersion     = schema.String().Enum("1.0", "1.1", "1.2", "1.3")
	congestion     = schema.String().Enum("cubic", "new_reno", "bbr")
	vlessFlow      = schema.String().Enum("", "xtls-rprx-vision")
	packetEncoding = schema.String().Enum("", "packetaddr", "xudp")

	routingMark = schema.AnyOf(schema.Integer().Min(0), schema.String())
)

func tagField(family string) schema.Field {
	return opt("tag", str, "The tag of the "+family+".", family+" 的标签。")
}

// DomainResolver 描述解析服务器域名时使用的 DNS 服务器与策略。
var DomainResolver = schema.AnyOf(str, schema.MustObject("DomainResolver",
	req("server", str, "Tag of the DNS server used to resolve domain names.", "用于解析域名的 DNS 服务器标签。"),
	opt("strategy", domainStrategy, "Domain strategy for resolving.", "解析时使用的域名策略。"),
	opt("disable_cache", boolean, "Disable cache for this lookup.", "本次解析禁用缓存。"),
	opt("rewrite_ttl", schema.Integer().Min(0), "Rewrite TTL in DNS responses.", "重写 DNS 响应中的 TTL。"),
	opt("client_subnet", prefix, "Append an edns0-subnet OPT extra record.", "附加 edns0-subnet OPT 记录。"),
).Describe("Resolver options for server domain names.", "服务器域名解析选项。"))

// InboundLegacySniffFields 是入站上已废弃的嗅探选项，仍按原类型校验。
var InboundLegacySniffFields = schema.MustBundle("InboundLegacySniffFields",
	opt("sniff", boolean, "Enable sniffing.", "启用协议嗅探。"),
	opt("sniff_override_destination", boolean, "Override the connection destination address with the sniffed domain.", "用嗅探出的域名覆盖连接目标地址。"),
	opt("sniff_timeout", duration, "Timeout for sniffing.", "嗅探超时时间。").WithDefault("300ms"),
	opt("domain_strategy", domainStrategy, "Resolve the sniffed domain with this strategy.", "使用该策略解析嗅探出的域名。"),
	opt("udp_disable_domain_unmapping", boolean, "Do not unmap the destination address in UDP responses.", "不在 UDP 响应中还原目标地址。"),
).Deprecate("inbound sniff fields are deprecated, use rule actions instead / 入站嗅探字段已废弃，请改用规则动作")

// ListenFields 是所有监听类组件共享的监听选项。
var ListenFields = schema.MustBundle("ListenFields",
	req("listen", ipAddr, "Listen address.", "监听地址。"),
	opt("listen_port", port, "Listen port.", "监听端口。"),
	opt("bind_interface", str, "Network interface to bind to.", "绑定的网络接口。"),
	opt("routing_mark", routingMark, "Set netfilter routing mark.", "设置 netfilter 路由标记。"),
	opt("reuse_addr", boolean, "Reuse listener address.", "重用监听地址。"),
	opt("netns", str, "Set network namespace, name or path.", "设置网络命名空间（名称或路径）。"),
	opt("tcp_keep_alive", duration, "TCP keep alive initial period.", "TCP keep alive 初始周期。").WithDefault("5m"),
	opt("tcp_keep_alive_interval", duration, "TCP keep-alive interval.", "TCP keep alive 间隔。").WithDefault("75s"),
	opt("tcp_fast_open", boolean, "Enable TCP Fast Open.", "启用 TCP Fast Open。"),
	opt("tcp_multi_path", boolean, "Enable TCP Multi Path.", "启用 TCP Multi Path。"),
	opt("udp_fragment", boolean, "Enable UDP fragmentation.", "启用 UDP 分段。"),
	opt("udp_timeout", duration, "UDP NAT expiration time.", "UDP NAT 过期时间。").WithDefault("5m"),
	opt("detour", str, "If set, connections will be forwarded to the specified inbound.", "设置后连接将被转发到指定入站。"),
	InboundLegacySniffFields,
)

// DialerFields 是所有出站类组件共享的拨号选项。
var DialerFields = schema.MustBundle("DialerFields",
	opt("detour", str, "The tag of the upstream outbound.", "上游出站的标签。"),
	opt("bind_interface", str, "The network interface to bind to.", "绑定的网络接口。"),
	opt("inet4_bind_address", ipAddr, "The IPv4 address to bind to.", "绑定的 IPv4 地址。"),
	opt("inet6_bind_address", ipAddr, "The IPv6 address to bind to.", "绑定的 IPv6 地址。"),
	opt("routing_mark", routingMark, "Set netfilter routing mark.", "设置 netfilter 路由标记。"),
	opt("reuse_addr", boolean, "Reuse listener address.", "重用监听地址。"),
	opt("netns", str, "Set network namespace, name or path.", "设置网络命名空间（名称或路径）。"),
	opt("connect_timeout", duration, "Connect timeout.", "连接超时时间。"),
	opt("tcp_fast_open", boolean, "Enable TCP Fast Open.", "启用 TCP Fast Open。"),
	opt("tcp_multi_path", boolean, "Enable TCP Multi Path.", "启用 TCP Multi Path。"),
	opt("udp_fragment", boolean, "Enable UDP fragmentation.", "启用 UDP 分段。"),
	opt("domain_resolver", DomainResolver, "Set domain resolver to use for resolving domain names.", "设置用于解析域名的域名解析器。"),
	opt("network_strategy", networkPolicy, "Strategy for selecting network interfaces.", "选择网络接口的策略。"),
	opt("network_type", networkType, "Network interface types to use.", "使用的网络接口类型。"),
	opt("fallback_network_type", networkType, "Fallback network interface types.", "备用网络接口类型。"),
	opt("fallback_delay", duration, "Delay before trying the fallback network.", "尝试备用网络前的等待时间。").WithDefault("300ms"),
	opt("domain_strategy", domainStrategy, "Domain resolution strategy.", "域名解析策略。").
		Deprecate("dialer domain_strategy is deprecated, use domain_resolver / 拨号 domain_strategy 已废弃，请使用 domain_resolver"),
)

// ServerFields 是远端服务器地址选项。
var ServerFields = schema.MustBundle("ServerFields",
	req("server", str, "The server address.", "服务器地址。"),
	opt("server_port", port, "The server port.", "服务器端口。"),
)

// UDPOverTCP 接受布尔值或完整对象。
var UDPOverTCP = schema.AnyOf(boolean, schema.MustObject("UDPOverTCP",
	opt("enabled", boolean, "Enable the UDP over TCP protocol.", "启用 UDP over TCP 协议。"),
	opt("version", schema.Integer().Min(1).Max(2), "The protocol version.", "协议版本。").WithDefault(2),
).Describe("UDP over TCP protocol settings.", "UDP over TCP 协议设置。"))

func userList(name string, parts ...schema.Part) *schema.ArrayRule {
	return schema.Array(schema.MustObject(name, parts...))
}

var (
	nameField     = opt("name", str, "User name.", "用户名称。")
	passwordField = opt("password", str, "Password.", "密码。")
)

// authUsers 是 socks/http/mixed/naive 入站的用户名密码列表。
var authUsers = userList("AuthUser",
	req("username", str, "Username.", "用户名。"),
	req("password", str, "Password.", "密码。"),
)
