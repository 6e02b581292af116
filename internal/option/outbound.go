package option

import "github.com/creamcroissant/boxschema/internal/schema"

func outbound(name, typ, en, zh string, parts ...schema.Part) schema.Case {
	all := append([]schema.Part{schema.Tag("type", typ), tagField("outbound")}, parts...)
	return schema.On(typ, schema.MustObject(name, all...).Describe(en, zh))
}

// deprecatedOutbound 的判别字段本身带废弃标记，使用时总会产生告警。
func deprecatedOutbound(name, typ, note, en, zh string, parts ...schema.Part) schema.Case {
	all := append([]schema.Part{schema.Tag("type", typ).Deprecate(note), tagField("outbound")}, parts...)
	return schema.On(typ, schema.MustObject(name, all...).Describe(en, zh))
}

var (
	outboundTLS       = opt("tls", OutboundTLS, "TLS configuration.", "TLS 配置。")
	outboundMultiplex = opt("multiplex", OutboundMultiplex, "Multiplex configuration.", "多路复用配置。")
	outboundNetwork   = opt("network", network, "Enabled network, one of tcp udp. Both are enabled by default.", "启用的网络，tcp 或 udp，默认两者均启用。")
	udpOverTCPField   = opt("udp_over_tcp", UDPOverTCP, "UDP over TCP protocol settings.", "UDP over TCP 协议设置。")
	packetEncodingOpt = opt("packet_encoding", packetEncoding, "UDP packet encoding, none by default.", "UDP 包编码，默认不编码。")
	requiredTLS       = req("tls", OutboundTLS, "TLS configuration.", "TLS 配置。")
)

var wireGuardPeer = schema.MustObject("WireGuardOutboundPeer",
	ServerFields,
	opt("public_key", str, "WireGuard peer public key.", "WireGuard 对端公钥。"),
	opt("pre_shared_key", str, "WireGuard pre-shared key.", "WireGuard 预共享密钥。"),
	opt("allowed_ips", prefixes, "WireGuard allowed IPs.", "WireGuard 允许的 IP。"),
	opt("reserved", schema.AnyOf(schema.Array(schema.Integer().Min(0).Max(255)), str), "WireGuard reserved field bytes.", "WireGuard 保留字段字节。"),
)

var groupOutboundsField = req("outbounds", schema.Array(str).MinItems(1), "List of outbound tags.", "出站标签列表。")

var outboundCases = []schema.Case{
	outbound("DirectOutbound", "direct",
		"Direct outbound send requests directly.", "direct 出站直接发送请求。",
		DialerFields,
		opt("override_address", str, "Override the connection destination address.", "覆盖连接目标地址。").
			Deprecate("use route action options instead / 请改用路由动作选项"),
		opt("override_port", port, "Override the connection destination port.", "覆盖连接目标端口。").
			Deprecate("use route action options instead / 请改用路由动作选项"),
		opt("proxy_protocol", schema.Integer().Min(0).Max(2), "Write proxy protocol in the connection header.", "在连接头部写入 proxy protocol。").
			Deprecate("proxy_protocol is removed / proxy_protocol 已移除"),
	),
	deprecatedOutbound("BlockOutbound", "block",
		"block outbound is deprecated, use rule action reject / block 出站已废弃，请使用 reject 规则动作",
		"Block outbound closes all incoming requests.", "block 出站关闭所有请求。",
	),
	deprecatedOutbound("DNSOutbound", "dns",
		"dns outbound is deprecated, use rule action hijack-dns / dns 出站已废弃，请使用 hijack-dns 规则动作",
		"DNS outbound is an internal DNS server.", "dns 出站是内部 DNS 服务器。",
	),
	outbound("SocksOutbound", "socks",
		"Socks outbound is a socks4/socks4a/socks5 client.", "socks 出站是 socks4/4a/5 客户端。",
		ServerFields,
		opt("version", schema.String().Enum("4", "4a", "5"), "The SOCKS version.", "SOCKS 版本。").WithDefault("5"),
		opt("username", str, "SOCKS username.", "SOCKS 用户名。"),
		opt("password", str, "SOCKS5 password.", "SOCKS5 密码。"),
		outboundNetwork,
		udpOverTCPField,
		DialerFields,
	),
	outbound("HTTPOutbound", "http",
		"HTTP outbound is a http proxy client.", "http 出站是 HTTP 代理客户端。",
		ServerFields,
		opt("username", str, "Basic authorization username.", "Basic 认证用户名。"),
		opt("password", str, "Basic authorization password.", "Basic 认证密码。"),
		opt("path", str, "Path of HTTP request.", "HTTP 请求路径。"),
		opt("headers", httpHeaders, "Extra headers of HTTP request.", "HTTP 请求额外头部。"),
		outboundTLS,
		DialerFields,
	),
	outbound("ShadowsocksOutbound", "shadowsocks",
		"Shadowsocks outbound.", "Shadowsocks 出站。",
		ServerFields,
		req("method", str, "Encryption methods.", "加密方法。"),
		req("password", str, "The shadowsocks password.", "Shadowsocks 密码。"),
		opt("plugin", schema.String().Enum("obfs-local", "v2ray-plugin"), "Shadowsocks SIP003 plugin.", "Shadowsocks SIP003 插件。"),
		opt("plugin_opts", str, "Shadowsocks SIP003 plugin options.", "Shadowsocks SIP003 插件参数。"),
		outboundNetwork,
		udpOverTCPField,
		outboundMultiplex,
		DialerFields,
	),
	outbound("VMessOutbound", "vmess",
		"VMess outbound.", "VMess 出站。",
		ServerFields,
		req("uuid", uuidString, "The VMess user id.", "VMess 用户 ID。"),
		opt("security", schema.String().Enum("auto", "none", "zero", "aes-128-gcm", "chacha20-poly1305", "aes-128-ctr"), "Encryption methods.", "加密方法。").WithDefault("auto"),
		opt("alter_id", schema.Integer().Min(0), "Alter id.", "额外 ID。"),
		opt("global_padding", boolean, "Protocol parameter. Will waste traffic randomly if enabled.", "协议参数，启用后会随机浪费流量。"),
		opt("authenticated_length", boolean, "Protocol parameter. Enable length block encryption.", "协议参数，启用长度块加密。"),
		outboundNetwork,
		outboundTLS,
		packetEncodingOpt,
		transportField,
		outboundMultiplex,
		DialerFields,
	),
	outbound("TrojanOutbound", "trojan",
		"Trojan outbound.", "Trojan 出站。",
		ServerFields,
		req("password", str, "The Trojan password.", "Trojan 密码。"),
		outboundNetwork,
		outboundTLS,
		outboundMultiplex,
		transportField,
		DialerFields,
	),
	deprecatedOutbound("WireGuardOutbound", "wireguard",
		"WireGuard outbound is deprecated, use WireGuard endpoint / WireGuard 出站已废弃，请使用 WireGuard 端点",
		"WireGuard outbound.", "WireGuard 出站。",
		ServerFields,
		opt("system_interface", boolean, "Use system interface.", "使用系统接口。"),
		opt("gso", boolean, "Try to enable generic segmentation offload.", "尝试启用通用分段卸载。"),
		opt("interface_name", str, "Custom interface name for system interface.", "系统接口的自定义名称。"),
		req("local_address", prefixes, "List of IP (v4 or v6) address prefixes to be assigned to the interface.", "分配给接口的 IP 前缀列表。"),
		req("private_key", str, "WireGuard requires base64-encoded public and private keys.", "WireGuard 的 base64 编码私钥。"),
		opt("peers", schema.Array(wireGuardPeer), "Multi-peer support.", "多对端支持。"),
		opt("peer_public_key", str, "WireGuard peer public key.", "WireGuard 对端公钥。"),
		opt("pre_shared_key", str, "WireGuard pre-shared key.", "WireGuard 预共享密钥。"),
		opt("reserved", schema.AnyOf(schema.Array(schema.Integer().Min(0).Max(255)), str), "WireGuard reserved field bytes.", "WireGuard 保留字段字节。"),
		opt("workers", schema.Integer().Min(0), "WireGuard worker count.", "WireGuard 工作协程数量。"),
		opt("mtu", schema.Integer().Min(0), "WireGuard MTU.", "WireGuard MTU。").WithDefault(1408),
		outboundNetwork,
		DialerFields,
	),
	outbound("HysteriaOutbound", "hysteria",
		"Hysteria outbound.", "Hysteria 出站。",
		ServerFields,
		opt("up", str, "Upload bandwidth, format: [Integer] [Unit].", "上传带宽，格式：[整数] [单位]。"),
		opt("up_mbps", mbps, "Upload bandwidth in Mbps.", "上传带宽（Mbps）。"),
		opt("down", str, "Download bandwidth, format: [Integer] [Unit].", "下载带宽，格式：[整数] [单位]。"),
		opt("down_mbps", mbps, "Download bandwidth in Mbps.", "下载带宽（Mbps）。"),
		opt("obfs", str, "Obfuscated password.", "混淆密码。"),
		opt("auth", str, "Authentication password, in base64.", "base64 编码的认证密码。"),
		opt("auth_str", str, "Authentication password.", "认证密码。"),
		opt("recv_window_conn", schema.Integer().Min(0), "The QUIC stream-level flow control window for receiving data.", "QUIC 流级接收窗口。"),
		opt("recv_window", schema.Integer().Min(0), "The QUIC connection-level flow control window for receiving data.", "QUIC 连接级接收窗口。"),
		opt("disable_mtu_discovery", boolean, "Disables Path MTU Discovery.", "禁用路径 MTU 发现。"),
		outboundNetwork,
		requiredTLS,
		DialerFields,
	),
	outbound("VLESSOutbound", "vless",
		"VLESS outbound.", "VLESS 出站。",
		ServerFields,
		req("uuid", uuidString, "VLESS user id.", "VLESS 用户 ID。"),
		opt("flow", vlessFlow, "VLESS Sub-protocol.", "VLESS 子协议。"),
		outboundNetwork,
		outboundTLS,
		packetEncodingOpt,
		outboundMultiplex,
		transportField,
		DialerFields,
	),
	outbound("ShadowTLSOutbound", "shadowtls",
		"ShadowTLS outbound.", "ShadowTLS 出站。",
		ServerFields,
		opt("version", schema.Integer().Min(1).Max(3), "ShadowTLS protocol version.", "ShadowTLS 协议版本。").WithDefault(1),
		opt("password", str, "Set password. Only available in the ShadowTLS v2/v3 protocol.", "设置密码，仅用于 ShadowTLS v2/v3。"),
		requiredTLS,
		DialerFields,
	),
	outbound("TUICOutbound", "tuic",
		"TUIC outbound.", "TUIC 出站。",
		ServerFields,
		req("uuid", uuidString, "TUIC user uuid.", "TUIC 用户 UUID。"),
		opt("password", str, "TUIC user password.", "TUIC 用户密码。"),
		opt("congestion_control", congestion, "QUIC congestion control algorithm.", "QUIC 拥塞控制算法。").WithDefault("cubic"),
		opt("udp_relay_mode", schema.String().Enum("native", "quic"), "UDP packet relay mode.", "UDP 包中继模式。").WithDefault("native"),
		opt("udp_over_stream", boolean, "Transmit UDP traffic over a TUIC stream. Conflict with udp_relay_mode.", "通过 TUIC 流传输 UDP，与 udp_relay_mode 冲突。"),
		opt("zero_rtt_handshake", boolean, "Enable 0-RTT QUIC connection handshake on the client side.", "启用客户端 0-RTT QUIC 握手。"),
		opt("heartbeat", duration, "Interval for sending heartbeat packets for keeping the connection alive.", "保活心跳包发送间隔。").WithDefault("10s"),
		outboundNetwork,
		requiredTLS,
		DialerFields,
	),
	outbound("Hysteria2Outbound", "hysteria2",
		"Hysteria2 outbound.", "Hysteria2 出站。",
		ServerFields,
		opt("server_ports", stringList, "Server port range list. Conflicts with server_port.", "服务器端口范围列表，与 server_port 冲突。"),
		opt("hop_interval", duration, "Port hopping interval.", "端口跳跃间隔。").WithDefault("30s"),
		opt("up_mbps", mbps, "Max bandwidth, in Mbps.", "最大带宽（Mbps）。"),
		opt("down_mbps", mbps, "Max bandwidth, in Mbps.", "最大带宽（Mbps）。"),
		opt("obfs", hysteriaObfs, "QUIC traffic obfuscator.", "QUIC 流量混淆器。"),
		opt("password", str, "Authentication password.", "认证密码。"),
		outboundNetwork,
		requiredTLS,
		opt("brutal_debug", boolean, "Enable debug information logging for Hysteria Brutal CC.", "输出 Hysteria Brutal 拥塞控制调试日志。"),
		DialerFields,
	),
	outbound("AnyTLSOutbound", "anytls",
		"AnyTLS outbound.", "AnyTLS 出站。",
		ServerFields,
		req("password", str, "The AnyTLS password.", "AnyTLS 密码。"),
		opt("idle_session_check_interval", duration, "Interval checking for idle sessions.", "空闲会话检查间隔。").WithDefault("30s"),
		opt("idle_session_timeout", duration, "In the check, close sessions that have been idle for longer than this.", "关闭空闲时间超过该值的会话。").WithDefault("30s"),
		opt("min_idle_session", schema.Integer().Min(0), "In the check, at least the first n idle sessions are kept open.", "检查时至少保留的空闲会话数。"),
		outboundTLS,
		DialerFields,
	),
	outbound("TorOutbound", "tor",
		"Tor outbound.", "Tor 出站。",
		opt("executable_path", str, "The path to the Tor executable.", "Tor 可执行文件路径。"),
		opt("extra_args", stringList, "List of extra arguments passed to the Tor instance when started.", "启动 Tor 时传入的额外参数。"),
		opt("data_directory", str, "The data directory of Tor.", "Tor 数据目录。"),
		opt("torrc", schema.Map(str), "Map of torrc options.", "torrc 选项映射。"),
		DialerFields,
	),
	outbound("SSHOutbound", "ssh",
		"SSH outbound.", "SSH 出站。",
		ServerFields,
		opt("user", str, "SSH user, root will be used if empty.", "SSH 用户，为空时使用 root。"),
		opt("password", str, "Password.", "密码。"),
		opt("private_key", stringList, "Private key.", "私钥。"),
		opt("private_key_path", str, "Private key path.", "私钥路径。"),
		opt("private_key_passphrase", str, "Private key passphrase.", "私钥口令。"),
		opt("host_key", stringList, "Host key. Accept any if empty.", "主机密钥，为空时接受任意。"),
		opt("host_key_algorithms", stringList, "Host key algorithms.", "主机密钥算法。"),
		opt("client_version", str, "Client version. Random version will be used if empty.", "客户端版本，为空时随机。"),
		DialerFields,
	),
	outbound("SelectorOutbound", "selector",
		"Selector outbound selects an outbound manually.", "selector 出站手动选择出站。",
		groupOutboundsField,
		opt("default", str, "The default outbound tag. The first outbound will be used if empty.", "默认出站标签，为空时使用第一个。"),
		opt("interrupt_exist_connections", boolean, "Interrupt existing connections when the selected outbound has changed.", "切换出站时中断现有连接。"),
	),
	outbound("URLTestOutbound", "urltest",
		"URLTest outbound selects the outbound with the lowest latency.", "urltest 出站选择延迟最低的出站。",
		groupOutboundsField,
		opt("url", str, "The URL to test.", "测试 URL。").WithDefault("https://www.gstatic.com/generate_204"),
		opt("interval", duration, "The test interval.", "测试间隔。").WithDefault("3m"),
		opt("tolerance", schema.Integer().Min(0), "The test tolerance in milliseconds.", "测试容差（毫秒）。").WithDefault(50),
		opt("idle_timeout", duration, "The idle timeout.", "空闲超时。").WithDefault("30m"),
		opt("interrupt_exist_connections", boolean, "Interrupt existing connections when the selected outbound has changed.", "切换出站时中断现有连接。"),
	),
}

// Outbound 是出站协议族联合，包含 selector/urltest 分组出站。
var Outbound = schema.MustUnion("Outbound", "type", outboundCases...).
	Describe("An outbound makes connections.", "出站负责建立连接。")
