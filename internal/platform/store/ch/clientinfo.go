package ch

import (
	"cmp"
	"os"
	"runtime"

	"trendspull/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// clientInfo tags every query in system.query_log with the service, its role (api or cli) and the build
func clientInfo(role, tag string) clickhouse.ClientInfo {
	bi := version.Info()
	host, _ := os.Hostname()
	info := clickhouse.ClientInfo{}
	for _, p := range [][2]string{
		{cmp.Or(tag, bi.Service), bi.Version},
		{"role", cmp.Or(role, "unknown")},
		{"commit", bi.Commit},
		{"go", runtime.Version()},
		{"host", cmp.Or(host, "unknown")},
	} {
		info.Products = append(info.Products, struct{ Name, Version string }{p[0], p[1]})
	}
	return info
}
