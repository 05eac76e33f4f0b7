package matrixbuild

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdst-net/netopt/netmodel"
	"github.com/cdst-net/netopt/routing"
)

func TestBuild_ProducesFiniteNonNegativeMatrices(t *testing.T) {
	labs := []netmodel.Laboratory{
		{ID: "L1", Location: netmodel.Coordinate{Lat: 0, Lon: 0}},
		{ID: "L2", Location: netmodel.Coordinate{Lat: 1, Lon: 1}},
	}
	areas := []netmodel.ServiceArea{
		{ID: "A1", Location: netmodel.Coordinate{Lat: 0, Lon: 0.5}},
		{ID: "A2", Location: netmodel.Coordinate{Lat: 2, Lon: 2}},
		{ID: "A3", Location: netmodel.Coordinate{Lat: -1, Lon: -1}},
	}

	adapter := &routing.StaticAdapter{}
	result, err := Build(context.Background(), labs, areas, adapter, 2)
	require.NoError(t, err)

	require.Equal(t, len(areas), result.D.Rows())
	require.Equal(t, len(labs), result.D.Cols())

	for i := range areas {
		for j := range labs {
			dv, err := result.D.At(i, j)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, dv, 0.0)

			tv, err := result.T.At(i, j)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, tv, 0.0)
		}
	}
}

func TestBuild_ScenarioOneDistance(t *testing.T) {
	labs := []netmodel.Laboratory{{ID: "L1", Location: netmodel.Coordinate{Lat: 0, Lon: 0}}}
	areas := []netmodel.ServiceArea{{ID: "A1", Location: netmodel.Coordinate{Lat: 0, Lon: 1}}}

	result, err := Build(context.Background(), labs, areas, &routing.StaticAdapter{}, 1)
	require.NoError(t, err)

	d, err := result.D.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 111.195, d, 0.01)
}

func TestBuild_RespectsCancellation(t *testing.T) {
	labs := make([]netmodel.Laboratory, 50)
	for i := range labs {
		labs[i] = netmodel.Laboratory{ID: "L", Location: netmodel.Coordinate{}}
	}
	areas := make([]netmodel.ServiceArea, 50)
	for i := range areas {
		areas[i] = netmodel.ServiceArea{ID: "A", Location: netmodel.Coordinate{}}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, labs, areas, &routing.StaticAdapter{}, 4)
	assert.Error(t, err)
}

func TestBuild_UsesCacheViaCachedAdapter(t *testing.T) {
	calls := 0
	underlying := &routing.StaticAdapter{Fn: func(origin, destination netmodel.Coordinate) (routing.RouteResult, error) {
		calls++
		return routing.RouteResult{DistanceKM: 10, DurationMinutes: 20}, nil
	}}
	cache := routing.NewCache(100, 0)
	adapter := routing.NewCachedAdapter(underlying, cache)

	labs := []netmodel.Laboratory{{ID: "L1"}}
	areas := []netmodel.ServiceArea{{ID: "A1"}, {ID: "A2"}}
	// Same coordinates for both areas -> same cache key -> one call.
	_, err := Build(context.Background(), labs, areas, adapter, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
