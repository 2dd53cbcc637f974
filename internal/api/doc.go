// Package api hosts the HTTP server, middleware, and handlers. Notable routes:
//   - GET / redirects to the project repository.
//   - GET /video/BV{code} and /video/av{aid} redirect browsers to the canonical
//     page and serve an Open Graph document to everything else.
//   - GET /healthz / readyz for liveness and readiness checks.
//   - GET /metrics for Prometheus scraping.
package api
