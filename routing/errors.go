package routing

import "errors"

// ErrRoutingUnavailable indicates both the external routing service and
// the haversine fallback failed to produce a result.
var ErrRoutingUnavailable = errors.New("routing: service and fallback both unavailable")
