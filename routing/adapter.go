package routing

import (
	"context"

	"github.com/cdst-net/netopt/netmodel"
)

// Adapter resolves an (origin, destination) coordinate pair to a route
// result. Implementations must treat ctx cancellation as cooperative:
// check it before issuing a call and after receiving a response.
type Adapter interface {
	Route(ctx context.Context, origin, destination netmodel.Coordinate) (RouteResult, error)
}

// CachedAdapter wraps an Adapter with a shared Cache, consulting the cache
// before dispatching to the underlying adapter and writing the result back
// on a cache miss.
type CachedAdapter struct {
	Underlying Adapter
	Cache      *Cache
}

// NewCachedAdapter returns a CachedAdapter over underlying and cache.
func NewCachedAdapter(underlying Adapter, cache *Cache) *CachedAdapter {
	return &CachedAdapter{Underlying: underlying, Cache: cache}
}

// Route consults the cache first; on a miss it delegates to Underlying and
// stores the result.
func (c *CachedAdapter) Route(ctx context.Context, origin, destination netmodel.Coordinate) (RouteResult, error) {
	key := Key(origin, destination)
	if result, ok := c.Cache.Get(key); ok {
		return result, nil
	}

	result, err := c.Underlying.Route(ctx, origin, destination)
	if err != nil {
		return RouteResult{}, err
	}
	c.Cache.Set(key, result)
	return result, nil
}
