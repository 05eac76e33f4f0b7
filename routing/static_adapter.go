package routing

import (
	"context"

	"github.com/cdst-net/netopt/netmodel"
)

// StaticAdapter is a deterministic test double: it resolves every call via
// a caller-supplied function, or via the haversine fallback when Fn is
// nil. FailFor, keyed by Key(origin, destination), forces a given pair to
// error (simulating a terminal routing failure) so callers can exercise
// the haversine fallback path.
type StaticAdapter struct {
	Fn      func(origin, destination netmodel.Coordinate) (RouteResult, error)
	FailFor map[string]bool
}

// Route implements Adapter.
func (s *StaticAdapter) Route(_ context.Context, origin, destination netmodel.Coordinate) (RouteResult, error) {
	if s.FailFor != nil && s.FailFor[Key(origin, destination)] {
		km, minutes, err := Fallback(origin, destination)
		if err != nil {
			return RouteResult{}, err
		}
		return RouteResult{DistanceKM: km, DurationMinutes: minutes}, nil
	}
	if s.Fn != nil {
		return s.Fn(origin, destination)
	}
	km, minutes, err := Fallback(origin, destination)
	if err != nil {
		return RouteResult{}, err
	}
	return RouteResult{DistanceKM: km, DurationMinutes: minutes}, nil
}
