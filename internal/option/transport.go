package option

import "github.com/creamcroissant/boxschema/internal/schema"

// V2RayTransport 是 V2Ray 传输层联合，按 type 分派到五种传输。
var V2RayTransport = schema.MustUnion("V2RayTransport", "type",
	schema.On("http", schema.MustObject("HTTPTransport",
		schema.Tag("type", "http"),
		opt("host", stringList, "List of host domain. The client will choose randomly and the server will verify if not empty.", "主机域名列表，客户端随机选择，服务端在非空时校验。"),
		opt("path", str, "Path of HTTP request.", "HTTP 请求路径。"),
		opt("method", str, "Method of HTTP request.", "HTTP 请求方法。"),
		opt("headers", httpHeaders, "Extra headers of HTTP request.", "HTTP 请求额外头部。"),
		opt("idle_timeout", duration, "Health check interval in idle state.", "空闲状态下的健康检查间隔。").WithDefault("15s"),
		opt("ping_timeout", duration, "Timeout for health check responses.", "健康检查响应超时。").WithDefault("15s"),
	).Describe("Plain HTTP/2 transport.", "HTTP/2 传输。")),
	schema.On("ws", schema.MustObject("WebSocketTransport",
		schema.Tag("type", "ws"),
		opt("path", str, "Path of HTTP request.", "HTTP 请求路径。"),
		opt("headers", httpHeaders, "Extra headers of HTTP request.", "HTTP 请求额外头部。"),
		opt("max_early_data", schema.Integer().Min(0), "Allowed payload size in the request.", "请求中允许携带的早期数据大小。"),
		opt("early_data_header_name", str, "Early data is sent in the path instead of a header by default.", "默认通过路径而非头部发送早期数据。"),
	).Describe("WebSocket transport.", "WebSocket 传输。")),
	schema.On("quic", schema.MustObject("QUICTransport",
		schema.Tag("type", "quic"),
	).Describe("QUIC transport. No additional encryption support.", "QUIC 传输，不提供额外加密。")),
	schema.On("grpc", schema.MustObject("GRPCTransport",
		schema.Tag("type", "grpc"),
		opt("service_name", str, "Service name of gRPC.", "gRPC 服务名称。"),
		opt("idle_timeout", duration, "Health check interval in idle state.", "空闲状态下的健康检查间隔。"),
		opt("ping_timeout", duration, "Timeout for health check responses.", "健康检查响应超时。"),
		opt("permit_without_stream", boolean, "Allow health checks without active connections.", "允许在无活动连接时进行健康检查。"),
	).Describe("gRPC transport.", "gRPC 传输。")),
	schema.On("httpupgrade", schema.MustObject("HTTPUpgradeTransport",
		schema.Tag("type", "httpupgrade"),
		opt("host", str, "Host domain.", "主机域名。"),
		opt("path", str, "Path of HTTP request.", "HTTP 请求路径。"),
		opt("headers", httpHeaders, "Extra headers of HTTP request.", "HTTP 请求额外头部。"),
	).Describe("HTTP Upgrade transport.", "HTTP Upgrade 传输。")),
).Describe("V2Ray transport.", "V2Ray 传输层。")
