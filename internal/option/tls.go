package option

import "github.com/creamcroissant/boxschema/internal/schema"

var dns01Challenge = schema.MustUnion("DNS01Challenge", "provider",
	schema.On("alidns", schema.MustObject("AliDNSChallenge",
		schema.Tag("provider", "alidns"),
		req("access_key_id", str, "Aliyun access key ID.", "阿里云 AccessKey ID。"),
		req("access_key_secret", str, "Aliyun access key secret.", "阿里云 AccessKey Secret。"),
		opt("region_id", str, "Aliyun region ID.", "阿里云地域 ID。"),
	)),
	schema.On("cloudflare", schema.MustObject("CloudflareChallenge",
		schema.Tag("provider", "cloudflare"),
		req("api_token", str, "Cloudflare API token.", "Cloudflare API 令牌。"),
	)),
).Describe("ACME DNS01 challenge field.", "ACME DNS01 验证配置。")

// ACME 是入站 TLS 的自动证书签发选项。
var ACME = schema.MustObject("ACME",
	opt("domain", stringList, "List of domains.", "域名列表。"),
	opt("data_directory", str, "The directory to store ACME data.", "ACME 数据存储目录。"),
	opt("default_server_name", str, "Server name to use when choosing a certificate if the ClientHello's ServerName field is empty.", "ClientHello 未携带 ServerName 时用于选择证书的服务器名称。"),
	opt("email", str, "The email address to use when creating or selecting an existing ACME server account.", "创建或选择 ACME 账户时使用的邮箱。"),
	opt("provider", str, "The ACME CA provider to use: letsencrypt, zerossl or a URL.", "使用的 ACME CA：letsencrypt、zerossl 或 URL。").WithDefault("letsencrypt"),
	opt("disable_http_challenge", boolean, "Disable all HTTP challenges.", "禁用 HTTP 验证。"),
	opt("disable_tls_alpn_challenge", boolean, "Disable all TLS-ALPN challenges.", "禁用 TLS-ALPN 验证。"),
	opt("alternative_http_port", port, "The alternate port to use for the ACME HTTP challenge.", "ACME HTTP 验证使用的备用端口。"),
	opt("alternative_tls_port", port, "The alternate port to use for the ACME TLS-ALPN challenge.", "ACME TLS-ALPN 验证使用的备用端口。"),
	opt("external_account", schema.MustObject("ACMEExternalAccount",
		opt("key_id", str, "The key identifier.", "密钥标识。"),
		opt("mac_key", str, "The MAC key.", "MAC 密钥。"),
	), "EAB (External Account Binding) contains information necessary to bind or map an ACME account to some other account known by the CA.", "EAB（外部账户绑定）信息。"),
	opt("dns01_challenge", dns01Challenge, "ACME DNS01 challenge field.", "ACME DNS01 验证配置。"),
).Describe("ACME certificate issuance.", "ACME 自动签发证书。")

var inboundECH = schema.MustObject("InboundECH",
	opt("enabled", boolean, "Enable ECH support.", "启用 ECH。"),
	opt("key", stringList, "ECH key line array, in PEM format.", "PEM 格式的 ECH 密钥行。"),
	opt("key_path", str, "The path to the ECH key, in PEM format.", "PEM 格式的 ECH 密钥路径。"),
	opt("pq_signature_schemes_enabled", boolean, "Enable support for post-quantum peer certificate signature schemes.", "启用后量子证书签名算法。").
		Deprecate("ECH pq_signature_schemes_enabled is deprecated / ECH pq_signature_schemes_enabled 已废弃"),
	opt("dynamic_record_sizing_disabled", boolean, "Disable adaptive sizing of TLS records.", "禁用 TLS 记录的自适应大小。").
		Deprecate("ECH dynamic_record_sizing_disabled is deprecated / ECH dynamic_record_sizing_disabled 已废弃"),
).Describe("Encrypted Client Hello server settings.", "ECH 服务端设置。")

var outboundECH = schema.MustObject("OutboundECH",
	opt("enabled", boolean, "Enable ECH support.", "启用 ECH。"),
	opt("config", stringList, "ECH configuration line array, in PEM format.", "PEM 格式的 ECH 配置行。"),
	opt("config_path", str, "The path to the ECH configuration, in PEM format.", "PEM 格式的 ECH 配置路径。"),
	opt("pq_signature_schemes_enabled", boolean, "Enable support for post-quantum peer certificate signature schemes.", "启用后量子证书签名算法。").
		Deprecate("ECH pq_signature_schemes_enabled is deprecated / ECH pq_signature_schemes_enabled 已废弃"),
	opt("dynamic_record_sizing_disabled", boolean, "Disable adaptive sizing of TLS records.", "禁用 TLS 记录的自适应大小。").
		Deprecate("ECH dynamic_record_sizing_disabled is deprecated / ECH dynamic_record_sizing_disabled 已废弃"),
).Describe("Encrypted Client Hello client settings.", "ECH 客户端设置。")

var utls = schema.MustObject("UTLS",
	opt("enabled", boolean, "Enable uTLS.", "启用 uTLS。"),
	opt("fingerprint", schema.String().Enum("chrome", "firefox", "edge", "safari", "360", "qq", "ios", "android", "random", "randomized"), "uTLS fingerprint.", "uTLS 指纹。").WithDefault("chrome"),
).Describe("uTLS is a fork of crypto/tls which provides ClientHello fingerprinting resistance.", "uTLS 提供 ClientHello 指纹伪装。")

var realityHandshake = schema.MustObject("RealityHandshake",
	ServerFields,
	DialerFields,
).Describe("Handshake server address and dialer options.", "握手服务器地址与拨号选项。")

var inboundReality = schema.MustObject("InboundReality",
	opt("enabled", boolean, "Enable Reality.", "启用 Reality。"),
	req("handshake", realityHandshake, "Handshake server address and dialer options.", "握手服务器地址与拨号选项。"),
	req("private_key", str, "Private key, generated by `sing-box generate reality-keypair`.", "私钥，由 `sing-box generate reality-keypair` 生成。"),
	opt("short_id", stringList, "A hexadecimal string with zero to eight digits.", "零到八位的十六进制字符串。"),
	opt("max_time_difference", duration, "The maximum time difference between the server and the client.", "服务端与客户端之间允许的最大时间差。"),
).Describe("Reality server settings.", "Reality 服务端设置。")

var outboundReality = schema.MustObject("OutboundReality",
	opt("enabled", boolean, "Enable Reality.", "启用 Reality。"),
	req("public_key", str, "Public key, generated by `sing-box generate reality-keypair`.", "公钥，由 `sing-box generate reality-keypair` 生成。"),
	opt("short_id", str, "A hexadecimal string with zero to eight digits.", "零到八位的十六进制字符串。"),
).Describe("Reality client settings.", "Reality 客户端设置。")

// TLSCommonFields 是入站与出站 TLS 共有的字段。
var TLSCommonFields = schema.MustBundle("TLSCommonFields",
	opt("enabled", boolean, "Enable TLS.", "启用 TLS。"),
	opt("server_name", str, "Used to verify the hostname on the returned certificates unless insecure is given.", "用于校验返回证书中的主机名（insecure 时除外）。"),
	opt("alpn", stringList, "List of supported application level protocols, in order of preference.", "按优先级排列的应用层协议列表。"),
	opt("min_version", tlsVersion, "The minimum TLS version that is acceptable.", "可接受的最低 TLS 版本。").WithDefault("1.2"),
	opt("max_version", tlsVersion, "The maximum TLS version that is acceptable.", "可接受的最高 TLS 版本。").WithDefault("1.3"),
	opt("cipher_suites", stringList, "List of enabled TLS 1.0–1.2 cipher suites.", "启用的 TLS 1.0–1.2 密码套件列表。"),
	opt("certificate", stringList, "The certificate line array, in PEM format.", "PEM 格式的证书行。"),
	opt("certificate_path", str, "The path to the certificate, in PEM format.", "PEM 格式的证书路径。"),
)

// InboundTLS 是服务端 TLS 选项。
var InboundTLS = schema.MustObject("InboundTLS",
	TLSCommonFields,
	opt("key", stringList, "The server private key line array, in PEM format.", "PEM 格式的服务端私钥行。"),
	opt("key_path", str, "The path to the server private key, in PEM format.", "PEM 格式的服务端私钥路径。"),
	opt("acme", ACME, "ACME certificate issuance.", "ACME 自动签发证书。"),
	opt("ech", inboundECH, "Encrypted Client Hello.", "加密客户端问候（ECH）。"),
	opt("reality", inboundReality, "Reality server settings.", "Reality 服务端设置。"),
).Describe("Inbound TLS settings.", "入站 TLS 设置。")

// OutboundTLS 是客户端 TLS 选项。
var OutboundTLS = schema.MustObject("OutboundTLS",
	TLSCommonFields,
	opt("disable_sni", boolean, "Do not send server name in ClientHello.", "不在 ClientHello 中发送服务器名称。"),
	opt("insecure", boolean, "Accepts any server certificate.", "接受任意服务器证书。"),
	opt("fragment", boolean, "Fragment TLS handshakes to bypass firewalls.", "分片 TLS 握手以绕过防火墙。"),
	opt("record_fragment", boolean, "Fragment TLS handshake into multiple TLS records.", "将 TLS 握手拆分为多个 TLS 记录。"),
	opt("ech", outboundECH, "Encrypted Client Hello.", "加密客户端问候（ECH）。"),
	opt("utls", utls, "uTLS fingerprint settings.", "uTLS 指纹设置。"),
	opt("reality", outboundReality, "Reality client settings.", "Reality 客户端设置。"),
).Describe("Outbound TLS settings.", "出站 TLS 设置。")
