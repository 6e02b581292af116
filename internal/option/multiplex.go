package option

import "github.com/creamcroissant/boxschema/internal/schema"

// Brutal 是 TCP Brutal 拥塞控制选项。
var Brutal = schema.MustObject("Brutal",
	opt("enabled", boolean, "Enable TCP Brutal congestion control algorithm.", "启用 TCP Brutal 拥塞控制算法。"),
	req("up_mbps", mbps, "Upload bandwidth, in Mbps.", "上传带宽（Mbps）。"),
	req("down_mbps", mbps, "Download bandwidth, in Mbps.", "下载带宽（Mbps）。"),
).Describe("TCP Brutal congestion control settings.", "TCP Brutal 拥塞控制设置。")

var multiplexCommonFields = schema.MustBundle("MultiplexCommonFields",
	opt("enabled", boolean, "Enable multiplex support.", "启用多路复用。"),
	opt("padding", boolean, "If enabled, non-padded connections will be rejected.", "启用后将拒绝未填充的连接。"),
	opt("brutal", Brutal, "TCP Brutal congestion control settings.", "TCP Brutal 拥塞控制设置。"),
)

// InboundMultiplex 是服务端多路复用选项。
var InboundMultiplex = schema.MustObject("InboundMultiplex",
	multiplexCommonFields,
).Describe("Inbound multiplex settings.", "入站多路复用设置。")

// OutboundMultiplex 是客户端多路复用选项。
var OutboundMultiplex = schema.MustObject("OutboundMultiplex",
	multiplexCommonFields,
	opt("protocol", schema.String().Enum("smux", "yamux", "h2mux"), "Multiplex protocol.", "多路复用协议。").WithDefault("h2mux"),
	opt("max_connections", schema.Integer().Min(0), "Maximum connections. Conflict with max_streams.", "最大连接数，与 max_streams 冲突。"),
	opt("min_streams", schema.Integer().Min(0), "Minimum multiplexed streams in a connection before opening a new connection.", "打开新连接前单个连接内的最少流数。"),
	opt("max_streams", schema.Integer().Min(0), "Maximum multiplexed streams in a connection before opening a new connection.", "打开新连接前单个连接内的最多流数。"),
).Describe("Outbound multiplex settings.", "出站多路复用设置。")
