package matrixbuild

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/cdst-net/netopt/netmodel"
	"github.com/cdst-net/netopt/routing"
)

// DefaultParallelism is the default bound on concurrent routing calls
// during matrix construction.
const DefaultParallelism = 8

// Result holds the two matrices produced by Build.
type Result struct {
	D *netmodel.Dense // kilometres, |areas| x |labs|
	T *netmodel.Dense // minutes, |areas| x |labs|
}

// Build iterates every (area, lab) pair and resolves it via adapter,
// producing dense D (km) and T (minutes) matrices. Calls are fanned out
// with bounded parallelism (parallelism <= 0 defaults to
// DefaultParallelism); ctx cancellation is checked between batches of
// routing calls.
//
// Guarantees: every D[i,j] >= 0 and T[i,j] >= 0, both finite; symmetry is
// not required and not assumed.
func Build(ctx context.Context, labs []netmodel.Laboratory, areas []netmodel.ServiceArea, adapter routing.Adapter, parallelism int) (Result, error) {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	nAreas := len(areas)
	nLabs := len(labs)

	d, err := netmodel.NewDense(nAreas, nLabs)
	if err != nil {
		return Result{}, fmt.Errorf("matrixbuild: %w", err)
	}
	tm, err := netmodel.NewDense(nAreas, nLabs)
	if err != nil {
		return Result{}, fmt.Errorf("matrixbuild: %w", err)
	}

	sem := semaphore.NewWeighted(int64(parallelism))
	group, groupCtx := errgroup.WithContext(ctx)

outer:
	for i, area := range areas {
		i, area := i, area
		for j, lab := range labs {
			j, lab := j, lab
			if err := sem.Acquire(groupCtx, 1); err != nil {
				// Context was cancelled while waiting for a slot; stop
				// launching new work and let the group report the cause.
				break outer
			}
			group.Go(func() error {
				defer sem.Release(1)

				if err := groupCtx.Err(); err != nil {
					return err
				}

				result, err := adapter.Route(groupCtx, area.Location, lab.Location)
				if err != nil {
					return fmt.Errorf("matrixbuild: route(%s,%s): %w", area.ID, lab.ID, err)
				}
				if err := d.Set(i, j, result.DistanceKM); err != nil {
					return err
				}
				return tm.Set(i, j, result.DurationMinutes)
			})
		}
	}

	if err := group.Wait(); err != nil {
		return Result{}, err
	}
	// A cancellation observed while waiting for a semaphore slot breaks the
	// launch loop without any goroutine carrying the error; surface it here.
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	return Result{D: d, T: tm}, nil
}
