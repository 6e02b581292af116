package option

import "github.com/creamcroissant/boxschema/internal/schema"

var derpVerifyURL = schema.AnyOf(str, schema.MustObject("DERPVerifyClientURL",
	req("url", str, "URL used to verify clients.", "用于校验客户端的 URL。"),
	DialerFields,
))

var derpMesh = schema.AnyOf(str, schema.MustObject("DERPMeshPeer",
	ServerFields,
	opt("host", str, "Custom DERP hostname.", "自定义 DERP 主机名。"),
	opt("tls", OutboundTLS, "TLS configuration.", "TLS 配置。"),
	DialerFields,
))

var derpSTUN = schema.AnyOf(boolean, port, schema.MustObject("DERPSTUN",
	opt("enabled", boolean, "Enable STUN server.", "启用 STUN 服务。"),
	opt("listen", ipAddr, "STUN listen address.", "STUN 监听地址。"),
	opt("listen_port", port, "STUN listen port.", "STUN 监听端口。").WithDefault(3478),
))

// Service 是服务组件联合。
var Service = schema.MustUnion("Service", "type",
	schema.On("derp", schema.MustObject("DERPService",
		schema.Tag("type", "derp"),
		tagField("service"),
		ListenFields,
		opt("tls", InboundTLS, "TLS configuration.", "TLS 配置。"),
		req("config_path", str, "Derper configuration file path.", "Derper 配置文件路径。"),
		opt("verify_client_endpoint", stringList, "Tailscale endpoints tags to verify clients.", "用于校验客户端的 Tailscale 端点标签。"),
		opt("verify_client_url", schema.Listable(derpVerifyURL), "URL to verify clients.", "用于校验客户端的 URL。"),
		opt("home", str, "What to serve at the root path.", "根路径返回的内容。"),
		opt("mesh_with", schema.Listable(derpMesh), "Mesh with other DERP servers.", "与其他 DERP 服务器组网。"),
		opt("mesh_psk", str, "Pre-shared key for DERP mesh.", "DERP 组网的预共享密钥。"),
		opt("mesh_psk_file", str, "Pre-shared key file for DERP mesh.", "DERP 组网的预共享密钥文件。"),
		opt("stun", derpSTUN, "STUN server listen options.", "STUN 服务监听选项。"),
	).Describe("DERP service is a Tailscale DERP server.", "DERP 服务是 Tailscale DERP 服务器。")),
	schema.On("resolved", schema.MustObject("ResolvedService",
		schema.Tag("type", "resolved"),
		tagField("service"),
		ListenFields,
	).Describe("Resolved service is a fake systemd-resolved DBUS service.", "resolved 服务模拟 systemd-resolved DBUS 服务。")),
	schema.On("ssm-api", schema.MustObject("SSMAPIService",
		schema.Tag("type", "ssm-api"),
		tagField("service"),
		ListenFields,
		req("servers", schema.Map(str), "A mapping object from HTTP endpoints to Shadowsocks inbound tags.", "HTTP 端点到 Shadowsocks 入站标签的映射。"),
		opt("cache_path", str, "If set, when the server is about to stop, traffic and user state will be saved to the specified JSON file.", "设置后服务停止时将流量与用户状态保存到该 JSON 文件。"),
		opt("tls", InboundTLS, "TLS configuration.", "TLS 配置。"),
	).Describe("SSM API service is a RESTful API server for managing Shadowsocks servers.", "SSM API 服务是管理 Shadowsocks 服务器的 RESTful API。")),
).Describe("A service provides functionality outside of proxying.", "服务提供代理之外的功能。")
