package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdst-net/netopt/netmodel"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache(10, time.Hour)
	key := Key(netmodel.Coordinate{Lat: 0, Lon: 0}, netmodel.Coordinate{Lat: 1, Lon: 1})
	c.Set(key, RouteResult{DistanceKM: 5, DurationMinutes: 6})

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, 5.0, got.DistanceKM)
}

func TestCache_ExpiresByTTL(t *testing.T) {
	c := NewCache(10, time.Millisecond)
	key := "k"
	c.Set(key, RouteResult{DistanceKM: 1})
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestCache_BoundedEviction(t *testing.T) {
	c := NewCache(2, 0)
	c.Set("a", RouteResult{DistanceKM: 1})
	c.Set("b", RouteResult{DistanceKM: 2})
	c.Set("c", RouteResult{DistanceKM: 3})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestCachedAdapter_HitsUnderlyingOnceThenCaches(t *testing.T) {
	calls := 0
	underlying := &StaticAdapter{Fn: func(origin, destination netmodel.Coordinate) (RouteResult, error) {
		calls++
		return RouteResult{DistanceKM: 42}, nil
	}}
	cached := NewCachedAdapter(underlying, NewCache(10, time.Hour))

	a := netmodel.Coordinate{Lat: 1, Lon: 2}
	b := netmodel.Coordinate{Lat: 3, Lon: 4}

	r1, err := cached.Route(nil, a, b) //nolint:staticcheck // test double ignores ctx
	require.NoError(t, err)
	r2, err := cached.Route(nil, a, b)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, calls)
}
