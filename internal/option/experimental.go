package option

import "github.com/creamcroissant/boxschema/internal/schema"

// Log 是 log 配置段。
var Log = schema.MustObject("Log",
	opt("disabled", boolean, "Disable logging, no output after start.", "禁用日志，启动后不再输出。"),
	opt("level", schema.String().Enum("trace", "debug", "info", "warn", "error", "fatal", "panic"), "Log level.", "日志等级。").WithDefault("info"),
	opt("output", str, "Output file path. Will not write log to console after enable.", "输出文件路径，启用后不再输出到控制台。"),
	opt("timestamp", boolean, "Add time to each line.", "为每行添加时间。"),
).Describe("Log settings.", "日志设置。")

// NTP 是内置 NTP 客户端配置段。
var NTP = schema.MustObject("NTP",
	opt("enabled", boolean, "Enable NTP service.", "启用 NTP 服务。"),
	opt("server", str, "NTP server address. Required when enabled.", "NTP 服务器地址，启用时必填。"),
	opt("server_port", port, "NTP server port.", "NTP 服务器端口。").WithDefault(123),
	opt("interval", duration, "Time synchronization interval.", "时间同步间隔。").WithDefault("30m"),
	DialerFields,
).Describe("Built-in NTP client service.", "内置 NTP 客户端服务。")

var cacheFile = schema.MustObject("CacheFile",
	opt("enabled", boolean, "Enable cache file.", "启用缓存文件。"),
	opt("path", str, "Path to the cache file.", "缓存文件路径。").WithDefault("cache.db"),
	opt("cache_id", str, "Identifier in the cache file.", "缓存文件中的标识符。"),
	opt("store_fakeip", boolean, "Store fakeip in the cache file.", "在缓存文件中保存 fakeip。"),
	opt("store_rdrc", boolean, "Store rejected DNS response cache in the cache file.", "在缓存文件中保存被拒绝的 DNS 响应缓存。"),
	opt("rdrc_timeout", duration, "Timeout of rejected DNS response cache.", "被拒绝的 DNS 响应缓存超时。").WithDefault("7d"),
).Describe("Cache file settings.", "缓存文件设置。")

var clashAPI = schema.MustObject("ClashAPI",
	opt("external_controller", str, "RESTful web API listening address. Clash API will be disabled if empty.", "RESTful API 监听地址，为空时禁用 Clash API。"),
	opt("external_ui", str, "A relative path to the configuration directory or an absolute path to a directory in which you put some static web resource.", "静态网页资源目录，可为相对配置目录的路径或绝对路径。"),
	opt("external_ui_download_url", str, "ZIP download URL for the external UI.", "外部 UI 的 ZIP 下载地址。"),
	opt("external_ui_download_detour", str, "The tag of the outbound to download the external UI.", "下载外部 UI 使用的出站标签。"),
	opt("secret", str, "Secret for the RESTful API.", "RESTful API 密钥。"),
	opt("default_mode", str, "Default mode in clash.", "Clash 默认模式。").WithDefault("Rule"),
	opt("access_control_allow_origin", stringList, "CORS allowed origins.", "CORS 允许的来源。"),
	opt("access_control_allow_private_network", boolean, "Allow access from private network.", "允许来自私有网络的访问。"),
	opt("store_mode", boolean, "Store Clash mode in cache file.", "在缓存文件中保存 Clash 模式。").Deprecate("moved to cache_file / 已移至 cache_file"),
	opt("store_selected", boolean, "Store selected outbound in cache file.", "在缓存文件中保存已选出站。").Deprecate("moved to cache_file / 已移至 cache_file"),
	opt("store_fakeip", boolean, "Store fakeip in cache file.", "在缓存文件中保存 fakeip。").Deprecate("moved to cache_file / 已移至 cache_file"),
	opt("cache_file", str, "Cache file path.", "缓存文件路径。").Deprecate("moved to cache_file / 已移至 cache_file"),
	opt("cache_id", str, "Identifier in cache file.", "缓存文件中的标识符。").Deprecate("moved to cache_file / 已移至 cache_file"),
).Describe("Clash API settings.", "Clash API 设置。")

var v2rayAPI = schema.MustObject("V2RayAPI",
	opt("listen", str, "gRPC API listening address. V2Ray API will be disabled if empty.", "gRPC API 监听地址，为空时禁用 V2Ray API。"),
	opt("stats", schema.MustObject("V2RayAPIStats",
		opt("enabled", boolean, "Enable statistics service.", "启用统计服务。"),
		opt("inbounds", stringList, "Inbound list to count traffic.", "统计流量的入站列表。"),
		opt("outbounds", stringList, "Outbound list to count traffic.", "统计流量的出站列表。"),
		opt("users", stringList, "User list to count traffic.", "统计流量的用户列表。"),
	), "Traffic statistics service settings.", "流量统计服务设置。"),
).Describe("V2Ray API settings.", "V2Ray API 设置。")

// Experimental 是 experimental 配置段。
var Experimental = schema.MustObject("Experimental",
	opt("cache_file", cacheFile, "Cache file settings.", "缓存文件设置。"),
	opt("clash_api", clashAPI, "Clash API settings.", "Clash API 设置。"),
	opt("v2ray_api", v2rayAPI, "V2Ray API settings.", "V2Ray API 设置。"),
).Describe("Experimental settings.", "实验性设置。")
