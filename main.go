// Package main is the entry point of the fxbilibili embed service.
//
// Architecture overview:
//   - HTTP API: internal/api.Server routes /video/BV{code} and /video/av{aid}. Browsers (User-Agent containing
//     "Mozilla") receive a permanent redirect to the canonical bilibili.com page; every other client receives an
//     Open Graph preview document.
//   - Resolution: internal/embed.Resolver asks the internal/bilibili client for metadata and fills an
//     internal/opengraph.Document. The client shares one http.Client for the life of the process.
//   - Configuration & plumbing: cobra parses flags, gotenv loads .env, viper merges env/file/flags; zap provides
//     structured logging; Prometheus metrics are exported on /metrics; OpenTelemetry traces inbound and upstream calls.
//
// Operational notes:
//   - No caching: every preview request costs exactly one upstream call; redirects cost none.
//   - The process reacts to SIGINT/SIGTERM by draining in-flight requests within server.shutdown_timeout_seconds.
//   - Configure with HTTP_HOST/HTTP_PORT (or FXBILIBILI_SERVER_HOST/FXBILIBILI_SERVER_PORT) or --http-host/--http-port.
package main

import (
	"github.com/JakeFAU/fxbilibili/cmd"
)

// main defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
