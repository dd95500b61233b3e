// Package metrics exposes the Prometheus registry used by the directory
// client. All metrics are defined in their respective packages (client,
// cache, controller, broadcast) via promauto and land in the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gatherer is the default Prometheus gatherer.
var Gatherer = prometheus.DefaultGatherer

// Handler returns an HTTP handler serving all registered metrics in the
// Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Gateway Metrics (pkg/client):
//   - directory_requests_total{resource, status} (Counter): Requests by resource and HTTP status
//   - directory_request_duration_seconds{resource} (Histogram): Request duration
//   - directory_errors_total{class} (Counter): Errors by class (network, decode, status)
//   - directory_records_decoded (Gauge): Records in the last successful response
//
// Revalidation Metrics (pkg/cache):
//   - directory_cache_hits_total (Counter): Stored responses found
//   - directory_cache_misses_total (Counter): Lookups without a stored response
//   - directory_cache_entries (Gauge): Stored responses
//   - directory_conditional_requests_total (Counter): Requests sent with If-None-Match/If-Modified-Since
//   - directory_304_responses_total (Counter): 304 Not Modified responses
//
// Controller Metrics (pkg/controller):
//   - directory_fetches_total{outcome} (Counter): Resolved fetches (loaded, failed)
//   - directory_fetch_duration_seconds (Histogram): StartFetch to resolution, delay included
//   - directory_controller_state{state} (Gauge): 1 for the current state
//   - directory_page_navigations_total{direction} (Counter): Accepted page moves (next, previous)
//   - directory_resets_total (Counter): Accepted resets
//
// Broadcast Metrics (pkg/broadcast):
//   - directory_broadcast_published_total (Counter): Snapshots published
//   - directory_broadcast_errors_total (Counter): Failed publishes or undecodable messages
//
// Example Prometheus Queries:
//
//   # Fetch failure ratio
//   sum(rate(directory_fetches_total{outcome="failed"}[5m])) /
//   sum(rate(directory_fetches_total[5m]))
//
//   # Decode errors (service changed its shape)
//   rate(directory_errors_total{class="decode"}[5m])
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(directory_request_duration_seconds_bucket[5m]))
//
//   # 304 share when revalidation is enabled
//   rate(directory_304_responses_total[5m]) / rate(directory_requests_total[5m])
