// Package cache provides an in-process revalidation store for service
// responses.
//
// The store never answers a fetch on its own: every fetch still performs one
// round trip. It only remembers the last successful body together with its
// validators so the next request can be made conditional:
//
// - ETag support for conditional requests (If-None-Match)
// - Last-Modified support (If-Modified-Since)
// - 304 Not Modified answers are served from the remembered body
// - Prometheus metrics for observability
// - Deterministic cache key generation
//
// Entries live only as long as the process. Nothing is written to disk or to
// an external store.
//
// # Basic Usage
//
//	store := cache.NewStore()
//
//	key := cache.Key{Resource: "/users"}
//
//	entry, err := store.Get(key)
//	if err == nil && cache.ShouldMakeConditionalRequest(entry) {
//		cache.AddConditionalHeaders(req, entry)
//	}
//
// # HTTP Response Handling
//
//	// 200 OK: remember the body and its validators
//	entry, err := cache.ResponseToEntry(resp)
//	if err != nil {
//		return err
//	}
//	store.Set(key, entry)
//
//	// 304 Not Modified: replay the remembered body
//	resp = cache.EntryToResponse(entry)
//
// # Metrics
//
//   - directory_cache_hits_total - Stored entries found for a request
//   - directory_cache_misses_total - No stored entry for a request
//   - directory_cache_entries - Entries currently held
//   - directory_conditional_requests_total - Conditional requests sent
//   - directory_304_responses_total - 304 Not Modified answers replayed
package cache
