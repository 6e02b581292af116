package option

import "github.com/creamcroissant/boxschema/internal/schema"

var ruleSetFormat = schema.String().Enum("source", "binary")

// RuleSet 是规则集定义联合：内联、本地文件或远程下载。
var RuleSet = schema.MustUnion("RuleSet", "type",
	schema.On("inline", schema.MustObject("InlineRuleSet",
		schema.Tag("type", "inline"),
		req("tag", str, "Tag of rule-set.", "规则集标签。"),
		req("rules", schema.Array(HeadlessRule), "List of headless rules.", "无头规则列表。"),
	).Describe("Inline rule-set.", "内联规则集。")),
	schema.On("local", schema.MustObject("LocalRuleSet",
		schema.Tag("type", "local"),
		req("tag", str, "Tag of rule-set.", "规则集标签。"),
		opt("format", ruleSetFormat, "Format of rule-set file, source or binary.", "规则集文件格式，source 或 binary。"),
		req("path", str, "File path of rule-set.", "规则集文件路径。"),
	).Describe("Local rule-set file.", "本地规则集文件。")),
	schema.On("remote", schema.MustObject("RemoteRuleSet",
		schema.Tag("type", "remote"),
		req("tag", str, "Tag of rule-set.", "规则集标签。"),
		opt("format", ruleSetFormat, "Format of rule-set file, source or binary.", "规则集文件格式，source 或 binary。"),
		req("url", str, "Download URL of rule-set.", "规则集下载 URL。"),
		opt("download_detour", str, "Tag of the outbound to download rule-set.", "下载规则集使用的出站标签。"),
		opt("update_interval", duration, "Update interval of rule-set.", "规则集更新间隔。").WithDefault("1d"),
	).Describe("Remote rule-set.", "远程规则集。")),
).Describe("Rule-set definition.", "规则集定义。")

// RuleSetSource 是 source 格式规则集文件的根对象。
var RuleSetSource = schema.MustObject("RuleSetSource",
	req("version", schema.Integer().Enum(1, 2, 3), "Version of rule-set source file.", "规则集源文件版本。"),
	req("rules", schema.Array(HeadlessRule), "List of headless rules.", "无头规则列表。"),
).Describe("Source format rule-set file.", "source 格式规则集文件。")

var legacyGeoResource = schema.MustBundle("LegacyGeoResourceFields",
	opt("path", str, "The path of the database.", "数据库路径。"),
	opt("download_url", str, "The download URL of the database.", "数据库下载 URL。"),
	opt("download_detour", str, "The tag of the outbound to download the database.", "下载数据库使用的出站标签。"),
)

// Route 是 route 配置段。
var Route = schema.MustObject("Route",
	opt("rules", schema.Array(RouteRule), "List of route rules.", "路由规则列表。"),
	opt("rule_set", schema.Array(RuleSet), "List of rule-sets.", "规则集列表。"),
	opt("final", str, "Default outbound tag. The first outbound will be used if empty.", "默认出站标签，为空时使用第一个出站。"),
	opt("auto_detect_interface", boolean, "Bind outbound connections to the default NIC by default to prevent routing loops under tun.", "默认将出站连接绑定到默认网卡，避免 tun 下的路由环路。"),
	opt("override_android_vpn", boolean, "Accept Android VPN as upstream NIC when auto_detect_interface enabled.", "启用 auto_detect_interface 时接受 Android VPN 作为上游网卡。"),
	opt("default_interface", str, "Bind outbound connections to the specified NIC by default.", "默认将出站连接绑定到指定网卡。"),
	opt("default_mark", routingMark, "Set routing mark by default.", "默认设置路由标记。"),
	opt("default_domain_resolver", DomainResolver, "Default domain resolver for outbound connections.", "出站连接的默认域名解析器。"),
	opt("default_network_strategy", networkPolicy, "Default network strategy.", "默认网络策略。"),
	opt("default_network_type", networkType, "Default network interface types.", "默认网络接口类型。"),
	opt("default_fallback_network_type", networkType, "Default fallback network interface types.", "默认备用网络接口类型。"),
	opt("default_fallback_delay", duration, "Default fallback delay.", "默认回退延迟。"),
	opt("find_process", boolean, "Enable process search for logging when no process_name, process_path, package_name rule exists.", "在没有进程相关规则时也为日志查找进程。"),
	opt("geoip", schema.MustObject("LegacyGeoIP", legacyGeoResource), "GeoIP database settings.", "GeoIP 数据库设置。").Deprecate(geoNote),
	opt("geosite", schema.MustObject("LegacyGeosite", legacyGeoResource), "Geosite database settings.", "Geosite 数据库设置。").Deprecate(geoNote),
).Describe("Route settings.", "路由设置。")
