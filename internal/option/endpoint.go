package option

import "github.com/creamcroissant/boxschema/internal/schema"

var wireGuardEndpointPeer = schema.MustObject("WireGuardPeer",
	opt("address", str, "WireGuard peer address.", "WireGuard 对端地址。"),
	opt("port", port, "WireGuard peer port.", "WireGuard 对端端口。"),
	req("public_key", str, "WireGuard peer public key.", "WireGuard 对端公钥。"),
	opt("pre_shared_key", str, "WireGuard peer pre-shared key.", "WireGuard 对端预共享密钥。"),
	req("allowed_ips", prefixes, "WireGuard allowed IPs.", "WireGuard 允许的 IP。"),
	opt("persistent_keepalive_interval", schema.Integer().Min(0), "WireGuard persistent keepalive interval, in seconds.", "WireGuard 持久保活间隔（秒）。"),
	opt("reserved", schema.Array(schema.Integer().Min(0).Max(255)), "WireGuard reserved field bytes.", "WireGuard 保留字段字节。"),
).Describe("WireGuard peer.", "WireGuard 对端。")

// Endpoint 是同时具备入站与出站行为的端点联合。
var Endpoint = schema.MustUnion("Endpoint", "type",
	schema.On("wireguard", schema.MustObject("WireGuardEndpoint",
		schema.Tag("type", "wireguard"),
		tagField("endpoint"),
		opt("system", boolean, "Use system interface.", "使用系统接口。"),
		opt("name", str, "Custom interface name for system interface.", "系统接口的自定义名称。"),
		opt("mtu", schema.Integer().Min(0), "WireGuard MTU.", "WireGuard MTU。").WithDefault(1408),
		req("address", prefixes, "List of IP (v4 or v6) address prefixes to be assigned to the interface.", "分配给接口的 IP 前缀列表。"),
		req("private_key", str, "WireGuard requires base64-encoded public and private keys.", "WireGuard 的 base64 编码私钥。"),
		opt("listen_port", port, "Listen port.", "监听端口。"),
		req("peers", schema.Array(wireGuardEndpointPeer).MinItems(1), "List of WireGuard peers.", "WireGuard 对端列表。"),
		opt("udp_timeout", duration, "UDP NAT expiration time.", "UDP NAT 过期时间。").WithDefault("5m"),
		opt("workers", schema.Integer().Min(0), "WireGuard worker count.", "WireGuard 工作协程数量。"),
		DialerFields,
	).Describe("WireGuard endpoint.", "WireGuard 端点。")),
	schema.On("tailscale", schema.MustObject("TailscaleEndpoint",
		schema.Tag("type", "tailscale"),
		tagField("endpoint"),
		opt("state_directory", str, "The directory where the Tailscale state is stored.", "Tailscale 状态存储目录。").WithDefault("tailscale"),
		opt("auth_key", str, "The auth key to create the node.", "用于创建节点的认证密钥。"),
		opt("control_url", str, "The coordination server URL.", "协调服务器 URL。"),
		opt("ephemeral", boolean, "Indicates whether the instance should register as an Ephemeral node.", "是否注册为临时节点。"),
		opt("hostname", str, "The hostname of the node.", "节点主机名。"),
		opt("accept_routes", boolean, "Indicates whether the node should accept routes advertised by other nodes.", "是否接受其他节点通告的路由。"),
		opt("exit_node", str, "The exit node name or IP address to use.", "使用的出口节点名称或 IP。"),
		opt("exit_node_allow_lan_access", boolean, "Allow LAN access when using an exit node.", "使用出口节点时允许访问局域网。"),
		opt("advertise_routes", prefixes, "CIDR prefixes to advertise into the Tailscale network.", "向 Tailscale 网络通告的 CIDR 前缀。"),
		opt("advertise_exit_node", boolean, "Indicates whether the node should advertise itself as an exit node.", "是否将自身通告为出口节点。"),
		opt("udp_timeout", duration, "UDP NAT expiration time.", "UDP NAT 过期时间。").WithDefault("5m"),
		DialerFields,
	).Describe("Tailscale endpoint.", "Tailscale 端点。")),
).Describe("An endpoint is a protocol with inbound and outbound behavior.", "端点是同时具备入站与出站行为的协议。")
