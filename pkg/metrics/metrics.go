// Package metrics provides the centralized Prometheus metrics registry for
// the CMS proxy. All metrics are defined in their respective packages
// (webflow, snapshot, service, server) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the proxy.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Upstream Metrics (pkg/webflow):
//   - cms_requests_total{collection, status} (Counter): List calls by collection and HTTP status
//   - cms_request_duration_seconds{collection} (Histogram): List call duration by collection
//   - cms_errors_total{class} (Counter): Upstream errors by class (client, server, network, decode)
//
// Cache Metrics (pkg/snapshot):
//   - cms_cache_hits_total (Counter): Snapshot reads that found a valid document
//   - cms_cache_misses_total (Counter): Snapshot reads with no usable document
//   - cms_cache_size_bytes (Gauge): Size of the persisted snapshot file
//   - cms_cache_errors_total{operation} (Counter): Cache operation errors
//
// Service Metrics (pkg/service):
//   - cms_refresh_total{outcome} (Counter): Refresh attempts by outcome (success, fetch_error, write_error)
//   - cms_refresh_duration_seconds (Histogram): End-to-end refresh duration
//   - cms_search_total{source} (Counter): Coverage searches by source (live, cache)
//
// HTTP Metrics (internal/server):
//   - cms_http_requests_total{route, method, status} (Counter): Handled requests
//   - cms_http_request_duration_seconds{route} (Histogram): Handler latency
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(cms_cache_hits_total[5m])) /
//   (sum(rate(cms_cache_hits_total[5m])) + sum(rate(cms_cache_misses_total[5m])))
//
//   # Refresh Failure Rate
//   rate(cms_refresh_total{outcome!="success"}[1h])
//
//   # Upstream Error Rate
//   rate(cms_errors_total[5m])
//
//   # P95 Upstream Latency
//   histogram_quantile(0.95, rate(cms_request_duration_seconds_bucket[5m]))
