package option

import "github.com/creamcroissant/boxschema/internal/schema"

// 根配置文档的元数据。Version 是版本号的唯一来源，
// 其他文件中的版本号由 versions sync / versions check 维护。
const (
	SchemaID = "https://github.com/creamcroissant/boxschema/releases/latest/download/schema.json"
	Version  = "1.12.0"
	Title    = "sing-box configuration"
)

var root = schema.MustObject("Options",
	opt("$schema", str, "URL of the JSON Schema used by editors.", "编辑器使用的 JSON Schema 地址。"),
	opt("log", Log, "Log settings.", "日志设置。"),
	opt("dns", DNS, "DNS settings.", "DNS 设置。"),
	opt("ntp", NTP, "NTP settings.", "NTP 设置。"),
	opt("endpoints", schema.Array(Endpoint), "List of endpoints.", "端点列表。"),
	opt("inbounds", schema.Array(Inbound), "List of inbounds.", "入站列表。"),
	opt("outbounds", schema.Array(Outbound), "List of outbounds.", "出站列表。"),
	opt("route", Route, "Route settings.", "路由设置。"),
	opt("services", schema.Array(Service), "List of services.", "服务列表。"),
	opt("experimental", Experimental, "Experimental settings.", "实验性设置。"),
).Describe("sing-box configuration file.", "sing-box 配置文件。")

// Root 返回根配置文档规则。每个配置段都是可选的，空文档 {} 合法。
func Root() *schema.ObjectRule {
	return root
}

// Validate 使用根规则校验配置文档。
func Validate(doc any, opts schema.Options) *schema.Result {
	return schema.Validate(root, doc, opts)
}

// Families 返回按名称索引的全部判别联合，供生成与测试遍历：协议族、无头规则，
// 以及路由规则与 DNS 规则中按 action 分派的联合（含逻辑规则的子规则）。
func Families() map[string]*schema.UnionRule {
	out := map[string]*schema.UnionRule{
		Inbound.Name():        Inbound,
		Outbound.Name():       Outbound,
		Endpoint.Name():       Endpoint,
		Service.Name():        Service,
		TypedDNSServer.Name(): TypedDNSServer,
		V2RayTransport.Name(): V2RayTransport,
		RuleSet.Name():        RuleSet,
		HeadlessRule.Name():   HeadlessRule,
	}
	seen := map[string]bool{}
	collectActionUnions(RouteRule, out, seen)
	collectActionUnions(DNSRule, out, seen)
	return out
}

// collectActionUnions 沿规则树收集 action 联合。惰性引用只会指回已访问的联合，遇到即停止。
func collectActionUnions(rule schema.Rule, out map[string]*schema.UnionRule, seen map[string]bool) {
	switch r := rule.(type) {
	case *schema.UnionRule:
		if seen[r.Name()] {
			return
		}
		seen[r.Name()] = true
		if r.Key() == "action" {
			out[r.Name()] = r
		}
		for _, cs := range r.Cases() {
			collectActionUnions(cs.Rule, out, seen)
		}
	case *schema.ObjectRule:
		if f, ok := r.Field("rules"); ok {
			if items, ok := f.Rule.(*schema.ArrayRule); ok {
				collectActionUnions(items.Item(), out, seen)
			}
		}
	}
}
