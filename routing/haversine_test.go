package routing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdst-net/netopt/netmodel"
)

func TestHaversineKM_ZeroDistance(t *testing.T) {
	p := netmodel.Coordinate{Lat: 10, Lon: 20}
	assert.InDelta(t, 0.0, HaversineKM(p, p), 1e-9)
}

func TestHaversineKM_KnownValue(t *testing.T) {
	// One degree of longitude at the equator is ~111.195 km.
	a := netmodel.Coordinate{Lat: 0, Lon: 0}
	b := netmodel.Coordinate{Lat: 0, Lon: 1}
	assert.InDelta(t, 111.195, HaversineKM(a, b), 0.01)
}

func TestEstimateMinutes(t *testing.T) {
	assert.InDelta(t, 60.0, EstimateMinutes(50.0), 1e-9)
}

func TestFallback_NonFiniteCoordinateFails(t *testing.T) {
	bad := netmodel.Coordinate{Lat: math.NaN(), Lon: 0}
	_, _, err := Fallback(bad, netmodel.Coordinate{})
	assert.ErrorIs(t, err, ErrRoutingUnavailable)
}
