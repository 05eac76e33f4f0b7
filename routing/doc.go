// Package routing resolves an (origin, destination) coordinate pair to a
// (kilometres, minutes) estimate, backed by an external routing service
// with bounded retries and exponential backoff, falling back to a
// great-circle (haversine) estimate on any terminal failure. Results are
// memoized in a bounded, TTL-expiring, process-scoped Cache shared across
// concurrent runs.
//
// Errors:
//
//	ErrRoutingUnavailable - both the external call and the haversine
//	  fallback failed. Since the fallback is a pure function of its two
//	  coordinates, this can only happen if the coordinates themselves are
//	  non-finite (NaN/Inf) -- in practice, never.
package routing
