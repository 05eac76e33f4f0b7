// Package matrixbuild produces the dense distance matrix D (kilometres)
// and time matrix T
// (minutes) of shape |areas| x |labs|, issuing routing calls concurrently
// bounded by a configurable parallelism. Build calls the adapter it is
// given for every pair; the shared routing cache is consulted only when
// that adapter is a routing.CachedAdapter.
package matrixbuild
