package option

import "github.com/creamcroissant/boxschema/internal/schema"

func inbound(name, typ, en, zh string, parts ...schema.Part) schema.Case {
	all := append([]schema.Part{schema.Tag("type", typ), tagField("inbound")}, parts...)
	return schema.On(typ, schema.MustObject(name, all...).Describe(en, zh))
}

var (
	inboundTLS       = opt("tls", InboundTLS, "TLS configuration.", "TLS 配置。")
	inboundMultiplex = opt("multiplex", InboundMultiplex, "Multiplex configuration.", "多路复用配置。")
	transportField   = opt("transport", V2RayTransport, "V2Ray transport configuration.", "V2Ray 传输层配置。")
	networkField     = opt("network", network, "Listen network, one of tcp udp. Both if empty.", "监听网络，tcp 或 udp，为空时同时监听。")
)

var hysteriaObfs = schema.MustObject("Hysteria2Obfs",
	schema.Tag("type", "salamander"),
	req("password", str, "Obfuscation password.", "混淆密码。"),
).Describe("QUIC traffic obfuscator, only available with salamander.", "QUIC 流量混淆器，仅支持 salamander。")

var masquerade = schema.AnyOf(str, schema.MustUnion("Hysteria2Masquerade", "type",
	schema.On("file", schema.MustObject("Hysteria2MasqueradeFile",
		schema.Tag("type", "file"),
		req("directory", str, "File server root directory.", "文件服务器根目录。"),
	)),
	schema.On("proxy", schema.MustObject("Hysteria2MasqueradeProxy",
		schema.Tag("type", "proxy"),
		req("url", str, "Reverse proxy target URL.", "反向代理目标 URL。"),
		opt("rewrite_host", boolean, "Rewrite the Host header to the target URL.", "将 Host 头部改写为目标 URL。"),
	)),
	schema.On("string", schema.MustObject("Hysteria2MasqueradeString",
		schema.Tag("type", "string"),
		opt("status_code", schema.Integer().Min(100).Max(599), "Fixed response status code.", "固定响应状态码。"),
		opt("headers", httpHeaders, "Fixed response headers.", "固定响应头部。"),
		req("content", str, "Fixed response content.", "固定响应内容。"),
	)),
).Describe("HTTP3 server behavior when authentication fails.", "认证失败时的 HTTP3 服务端行为。"))

var tunPlatform = schema.MustObject("TunPlatform",
	opt("http_proxy", schema.MustObject("TunHTTPProxy",
		opt("enabled", boolean, "Enable system HTTP proxy.", "启用系统 HTTP 代理。"),
		req("server", str, "HTTP proxy server address.", "HTTP 代理服务器地址。"),
		req("server_port", port, "HTTP proxy server port.", "HTTP 代理服务器端口。"),
		opt("bypass_domain", stringList, "Hostnames that bypass the HTTP proxy.", "绕过 HTTP 代理的主机名。"),
		opt("match_domain", stringList, "Hostnames that use the HTTP proxy.", "使用 HTTP 代理的主机名。"),
	), "System HTTP proxy settings.", "系统 HTTP 代理设置。"),
).Describe("Platform-specific settings, provided by client applications.", "由客户端应用提供的平台相关设置。")

var tunLegacyFields = schema.MustBundle("TunLegacyFields",
	opt("inet4_address", prefixes, "IPv4 prefix for the tun interface.", "tun 接口的 IPv4 前缀。"),
	opt("inet6_address", prefixes, "IPv6 prefix for the tun interface.", "tun 接口的 IPv6 前缀。"),
	opt("inet4_route_address", prefixes, "Use custom IPv4 routes instead of default when auto_route is enabled.", "启用 auto_route 时使用自定义 IPv4 路由。"),
	opt("inet6_route_address", prefixes, "Use custom IPv6 routes instead of default when auto_route is enabled.", "启用 auto_route 时使用自定义 IPv6 路由。"),
	opt("inet4_route_exclude_address", prefixes, "Exclude custom IPv4 routes when auto_route is enabled.", "启用 auto_route 时排除的 IPv4 路由。"),
	opt("inet6_route_exclude_address", prefixes, "Exclude custom IPv6 routes when auto_route is enabled.", "启用 auto_route 时排除的 IPv6 路由。"),
	opt("gso", boolean, "Enable generic segmentation offload.", "启用通用分段卸载。"),
).Deprecate("merged into address / route_address / route_exclude_address / 已合并到 address、route_address、route_exclude_address")

var inboundCases = []schema.Case{
	inbound("DirectInbound", "direct",
		"Direct inbound is a tunnel server.", "direct 入站是一个隧道服务器。",
		ListenFields,
		networkField,
		opt("override_address", str, "Override the connection destination address.", "覆盖连接目标地址。"),
		opt("override_port", port, "Override the connection destination port.", "覆盖连接目标端口。"),
	),
	inbound("MixedInbound", "mixed",
		"Mixed inbound is a socks4, socks4a, socks5 and http server.", "mixed 入站同时提供 socks4/4a/5 与 http 服务。",
		ListenFields,
		opt("users", authUsers, "SOCKS and HTTP users. No authentication required if empty.", "SOCKS 与 HTTP 用户，为空时不需要认证。"),
		opt("set_system_proxy", boolean, "Automatically set system proxy configuration when start and clean up when stop.", "启动时自动设置系统代理，停止时清理。"),
	),
	inbound("SocksInbound", "socks",
		"Socks inbound is a socks4, socks4a, socks5 server.", "socks 入站是 socks4/4a/5 服务器。",
		ListenFields,
		opt("users", authUsers, "SOCKS users. No authentication required if empty.", "SOCKS 用户，为空时不需要认证。"),
	),
	inbound("HTTPInbound", "http",
		"HTTP inbound is a http server.", "http 入站是 HTTP 代理服务器。",
		ListenFields,
		opt("users", authUsers, "HTTP users. No authentication required if empty.", "HTTP 用户，为空时不需要认证。"),
		opt("set_system_proxy", boolean, "Automatically set system proxy configuration when start and clean up when stop.", "启动时自动设置系统代理，停止时清理。"),
		inboundTLS,
	),
	inbound("ShadowsocksInbound", "shadowsocks",
		"Shadowsocks inbound.", "Shadowsocks 入站。",
		ListenFields,
		networkField,
		req("method", str, "Shadowsocks encryption method.", "Shadowsocks 加密方法。"),
		req("password", str, "Shadowsocks password.", "Shadowsocks 密码。"),
		opt("users", userList("ShadowsocksUser", nameField, req("password", str, "User password.", "用户密码。")), "Shadowsocks multi-user list.", "Shadowsocks 多用户列表。"),
		opt("destinations", userList("ShadowsocksDestination",
			nameField,
			ServerFields,
			req("password", str, "Relay password.", "中转密码。"),
		), "Shadowsocks relay destinations.", "Shadowsocks 中转目标。"),
		inboundMultiplex,
	),
	inbound("VMessInbound", "vmess",
		"VMess inbound.", "VMess 入站。",
		ListenFields,
		req("users", userList("VMessUser",
			nameField,
			req("uuid", uuidString, "VMess user id.", "VMess 用户 ID。"),
			opt("alterId", schema.Integer().Min(0), "VMess alter id.", "VMess 额外 ID。"),
		), "VMess users.", "VMess 用户。"),
		inboundTLS,
		inboundMultiplex,
		transportField,
	),
	inbound("TrojanInbound", "trojan",
		"Trojan inbound.", "Trojan 入站。",
		ListenFields,
		req("users", userList("TrojanUser", nameField, req("password", str, "Trojan password.", "Trojan 密码。")), "Trojan users.", "Trojan 用户。"),
		inboundTLS,
		opt("fallback", schema.MustObject("TrojanFallback", ServerFields), "Fallback server configuration.", "回落服务器配置。"),
		opt("fallback_for_alpn", schema.Map(schema.MustObject("TrojanALPNFallback", ServerFields)), "Fallback server configuration for specified ALPN.", "按 ALPN 指定的回落服务器配置。"),
		inboundMultiplex,
		transportField,
	),
	inbound("NaiveInbound", "naive",
		"Naive inbound.", "Naive 入站。",
		ListenFields,
		networkField,
		req("users", authUsers, "Naive users.", "Naive 用户。"),
		inboundTLS,
		opt("quic_congestion_control", schema.String().Enum("bbr", "bbr_standard", "bbr2", "bbr2_variant", "cubic", "reno"), "QUIC congestion control algorithm.", "QUIC 拥塞控制算法。"),
	),
	inbound("HysteriaInbound", "hysteria",
		"Hysteria inbound.", "Hysteria 入站。",
		ListenFields,
		opt("up", str, "Upload bandwidth, format: [Integer] [Unit].", "上传带宽，格式：[整数] [单位]。"),
		opt("up_mbps", mbps, "Upload bandwidth in Mbps.", "上传带宽（Mbps）。"),
		opt("down", str, "Download bandwidth, format: [Integer] [Unit].", "下载带宽，格式：[整数] [单位]。"),
		opt("down_mbps", mbps, "Download bandwidth in Mbps.", "下载带宽（Mbps）。"),
		opt("obfs", str, "Obfuscated password.", "混淆密码。"),
		opt("users", userList("HysteriaUser",
			nameField,
			opt("auth", str, "Authentication password, in base64.", "base64 编码的认证密码。"),
			opt("auth_str", str, "Authentication password.", "认证密码。"),
		), "Hysteria users.", "Hysteria 用户。"),
		opt("recv_window_conn", schema.Integer().Min(0), "The QUIC stream-level flow control window for receiving data.", "QUIC 流级接收窗口。"),
		opt("recv_window_client", schema.Integer().Min(0), "The QUIC connection-level flow control window for receiving data.", "QUIC 连接级接收窗口。"),
		opt("max_conn_client", schema.Integer().Min(0), "The maximum number of QUIC concurrent bidirectional streams that a peer is allowed to open.", "对端允许打开的 QUIC 并发双向流上限。"),
		opt("disable_mtu_discovery", boolean, "Disables Path MTU Discovery.", "禁用路径 MTU 发现。"),
		req("tls", InboundTLS, "TLS configuration.", "TLS 配置。"),
	),
	inbound("ShadowTLSInbound", "shadowtls",
		"ShadowTLS inbound.", "ShadowTLS 入站。",
		ListenFields,
		opt("version", schema.Integer().Min(1).Max(3), "ShadowTLS protocol version.", "ShadowTLS 协议版本。").WithDefault(1),
		opt("password", str, "Set password. Only available in the ShadowTLS v2 protocol.", "设置密码，仅用于 ShadowTLS v2。"),
		opt("users", userList("ShadowTLSUser", nameField, req("password", str, "User password.", "用户密码。")), "ShadowTLS users. Only available in the ShadowTLS v3 protocol.", "ShadowTLS 用户，仅用于 ShadowTLS v3。"),
		req("handshake", realityHandshake, "Handshake server address and dialer options.", "握手服务器地址与拨号选项。"),
		opt("handshake_for_server_name", schema.Map(realityHandshake), "Handshake server address and dialer options for specific server name.", "按服务器名称指定的握手服务器。"),
		opt("strict_mode", boolean, "ShadowTLS strict mode.", "ShadowTLS 严格模式。"),
		opt("wildcard_sni", schema.String().Enum("off", "authed", "all"), "ShadowTLS wildcard SNI mode.", "ShadowTLS 通配 SNI 模式。").WithDefault("off"),
	),
	inbound("TUICInbound", "tuic",
		"TUIC inbound.", "TUIC 入站。",
		ListenFields,
		req("users", userList("TUICUser",
			nameField,
			req("uuid", uuidString, "TUIC user uuid.", "TUIC 用户 UUID。"),
			opt("password", str, "TUIC user password.", "TUIC 用户密码。"),
		), "TUIC users.", "TUIC 用户。"),
		opt("congestion_control", congestion, "QUIC congestion control algorithm.", "QUIC 拥塞控制算法。").WithDefault("cubic"),
		opt("auth_timeout", duration, "How long the server should wait for the client to send the authentication command.", "服务端等待客户端发送认证命令的时长。").WithDefault("3s"),
		opt("zero_rtt_handshake", boolean, "Enable 0-RTT QUIC connection handshake on the client side.", "启用客户端 0-RTT QUIC 握手。"),
		opt("heartbeat", duration, "Interval for sending heartbeat packets for keeping the connection alive.", "保活心跳包发送间隔。").WithDefault("10s"),
		req("tls", InboundTLS, "TLS configuration.", "TLS 配置。"),
	),
	inbound("Hysteria2Inbound", "hysteria2",
		"Hysteria2 inbound.", "Hysteria2 入站。",
		ListenFields,
		opt("up_mbps", mbps, "Max bandwidth, in Mbps.", "最大带宽（Mbps）。"),
		opt("down_mbps", mbps, "Max bandwidth, in Mbps.", "最大带宽（Mbps）。"),
		opt("obfs", hysteriaObfs, "QUIC traffic obfuscator.", "QUIC 流量混淆器。"),
		opt("users", userList("Hysteria2User", nameField, req("password", str, "Authentication password.", "认证密码。")), "Hysteria2 users.", "Hysteria2 用户。"),
		opt("ignore_client_bandwidth", boolean, "Commands clients to use the BBR CC instead of Hysteria CC.", "要求客户端使用 BBR 拥塞控制。"),
		req("tls", InboundTLS, "TLS configuration.", "TLS 配置。"),
		opt("masquerade", masquerade, "HTTP3 server behavior when authentication fails.", "认证失败时的 HTTP3 服务端行为。"),
		opt("brutal_debug", boolean, "Enable debug information logging for Hysteria Brutal CC.", "输出 Hysteria Brutal 拥塞控制调试日志。"),
	),
	inbound("VLESSInbound", "vless",
		"VLESS inbound.", "VLESS 入站。",
		ListenFields,
		req("users", userList("VLESSUser",
			nameField,
			req("uuid", uuidString, "VLESS user id.", "VLESS 用户 ID。"),
			opt("flow", vlessFlow, "VLESS Sub-protocol.", "VLESS 子协议。"),
		), "VLESS users.", "VLESS 用户。"),
		inboundTLS,
		inboundMultiplex,
		transportField,
	),
	inbound("AnyTLSInbound", "anytls",
		"AnyTLS inbound.", "AnyTLS 入站。",
		ListenFields,
		req("users", userList("AnyTLSUser", nameField, req("password", str, "AnyTLS user password.", "AnyTLS 用户密码。")), "AnyTLS users.", "AnyTLS 用户。"),
		opt("padding_scheme", stringList, "AnyTLS padding scheme line array.", "AnyTLS 填充方案行。"),
		inboundTLS,
	),
	inbound("TunInbound", "tun",
		"Tun inbound.", "Tun 入站。",
		opt("interface_name", str, "Virtual device name, automatically selected if empty.", "虚拟设备名，为空时自动选择。"),
		opt("mtu", schema.Integer().Min(0), "The maximum transmission unit.", "最大传输单元。").WithDefault(9000),
		opt("address", prefixes, "IPv4 and IPv6 prefix for the tun interface.", "tun 接口的 IPv4 与 IPv6 前缀。"),
		opt("auto_route", boolean, "Set the default route to the Tun.", "将默认路由设置到 Tun。"),
		opt("iproute2_table_index", schema.Integer().Min(0), "Linux iproute2 table index generated by auto_route.", "auto_route 生成的 iproute2 路由表索引。").WithDefault(2022),
		opt("iproute2_rule_index", schema.Integer().Min(0), "Linux iproute2 rule start index generated by auto_route.", "auto_route 生成的 iproute2 规则起始索引。").WithDefault(9000),
		opt("auto_redirect", boolean, "Automatically configure iptables/nftables to redirect connections.", "自动配置 iptables/nftables 重定向连接。"),
		opt("auto_redirect_input_mark", str, "Connection input mark used by auto_redirect.", "auto_redirect 使用的连接入站标记。"),
		opt("auto_redirect_output_mark", str, "Connection output mark used by auto_redirect.", "auto_redirect 使用的连接出站标记。"),
		opt("strict_route", boolean, "Enforce strict routing rules when auto_route is enabled.", "启用 auto_route 时强制严格路由。"),
		opt("route_address", prefixes, "Use custom routes instead of default when auto_route is enabled.", "启用 auto_route 时使用的自定义路由。"),
		opt("route_exclude_address", prefixes, "Exclude custom routes when auto_route is enabled.", "启用 auto_route 时排除的路由。"),
		opt("route_address_set", stringList, "Add the destination IP CIDR rules in the specified rule-sets to the firewall.", "将指定规则集中的目标 IP CIDR 规则加入防火墙。"),
		opt("route_exclude_address_set", stringList, "Exclude the destination IP CIDR rules in the specified rule-sets from the firewall.", "从防火墙中排除指定规则集中的目标 IP CIDR 规则。"),
		opt("endpoint_independent_nat", boolean, "Enable endpoint-independent NAT.", "启用端点无关 NAT。"),
		opt("udp_timeout", duration, "UDP NAT expiration time.", "UDP NAT 过期时间。").WithDefault("5m"),
		opt("stack", schema.String().Enum("system", "gvisor", "mixed"), "TCP/IP stack.", "TCP/IP 协议栈。").WithDefault("mixed"),
		opt("include_interface", stringList, "Limit interfaces in route.", "限制路由的接口。"),
		opt("exclude_interface", stringList, "Exclude interfaces in route.", "从路由中排除的接口。"),
		opt("include_uid", schema.Listable(schema.Integer().Min(0)), "Limit users in route.", "限制路由的用户。"),
		opt("include_uid_range", stringList, "Limit user ranges in route.", "限制路由的用户范围。"),
		opt("exclude_uid", schema.Listable(schema.Integer().Min(0)), "Exclude users in route.", "从路由中排除的用户。"),
		opt("exclude_uid_range", stringList, "Exclude user ranges in route.", "从路由中排除的用户范围。"),
		opt("include_android_user", schema.Listable(schema.Integer().Min(0)), "Limit android users in route.", "限制路由的 Android 用户。"),
		opt("include_package", stringList, "Limit android packages in route.", "限制路由的 Android 应用。"),
		opt("exclude_package", stringList, "Exclude android packages in route.", "从路由中排除的 Android 应用。"),
		opt("platform", tunPlatform, "Platform-specific settings.", "平台相关设置。"),
		tunLegacyFields,
		InboundLegacySniffFields,
	),
	inbound("RedirectInbound", "redirect",
		"Redirect inbound, only supported on Linux and macOS.", "redirect 入站，仅支持 Linux 与 macOS。",
		ListenFields,
	),
	inbound("TProxyInbound", "tproxy",
		"TProxy inbound, only supported on Linux.", "tproxy 入站，仅支持 Linux。",
		ListenFields,
		networkField,
	),
}

// Inbound 是入站协议族联合。
var Inbound = schema.MustUnion("Inbound", "type", inboundCases...).
	Describe("An inbound accepts connections.", "入站负责接受连接。")
