package optimizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/cdst-net/netopt/feasibility"
	"github.com/cdst-net/netopt/matrixbuild"
	"github.com/cdst-net/netopt/netmodel"
	"github.com/cdst-net/netopt/nsga2"
	"github.com/cdst-net/netopt/objective"
	"github.com/cdst-net/netopt/routing"
	"github.com/cdst-net/netopt/seeding"
)

// convergenceWindow is the number of trailing generations over which the
// best weighted fitness's improvement is measured for the convergence
// termination check.
const convergenceWindow = 20

// ProgressObserver receives non-blocking, fire-and-forget status snapshots
// during a run. progress is monotonically non-decreasing within one run.
type ProgressObserver func(runID string, status netmodel.Status, progress float64, generation int, bestFitness float64)

// Driver orchestrates one run end to end: matrix construction, feasibility
// setup, population seeding, and the NSGA-II generation loop, reporting
// progress and honoring cancellation throughout.
type Driver struct {
	adapter routing.Adapter
	cfg     config
	sem     *semaphore.Weighted
}

// NewDriver builds a Driver over adapter with opts applied to the default
// configuration (5 concurrent runs, 900s timeout, 8-wide matrix
// parallelism, progress every 10 generations, a no-op logger).
func NewDriver(adapter routing.Adapter, opts ...Option) *Driver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Driver{
		adapter: adapter,
		cfg:     cfg,
		sem:     semaphore.NewWeighted(int64(cfg.maxConcurrentRuns)),
	}
}

// Run executes one optimization run to completion, cancellation, or
// failure. It never panics on caller input; invalid input is reported as a
// Failed result with ErrorKind "InvalidInput".
func (d *Driver) Run(ctx context.Context, input netmodel.RunInput, observer ProgressObserver) netmodel.RunResult {
	start := time.Now()
	runID := input.ScenarioID
	if runID == "" {
		runID = uuid.NewString()
	}

	if err := netmodel.ValidateRunInput(input); err != nil {
		return d.fail(runID, "InvalidInput", err, netmodel.Statistics{})
	}

	if err := d.sem.Acquire(ctx, 1); err != nil {
		return d.cancelled(runID, observer, netmodel.Solution{}, nil, 0, 0, start, runCause(err))
	}
	defer d.sem.Release(1)

	runCtx, cancel := context.WithTimeout(ctx, d.cfg.runTimeout)
	defer cancel()

	log := d.cfg.logger.With().Str("scenario_id", runID).Logger()
	log.Info().Msg("starting network optimization")
	notify(observer, runID, netmodel.StatusRunning, 0.0, 0, 0)

	matrices, err := matrixbuild.Build(runCtx, input.Laboratories, input.ServiceAreas, d.adapter, d.cfg.matrixParallelism)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return d.cancelled(runID, observer, netmodel.Solution{}, nil, 0, 0, start, runCause(err))
		}
		kind := "RoutingUnavailable"
		if !errors.Is(err, routing.ErrRoutingUnavailable) {
			kind = "InternalError"
			err = fmt.Errorf("%w: matrix construction: %v", netmodel.ErrInternal, err)
		}
		log.Error().Err(err).Msg("matrix construction failed")
		return d.fail(runID, kind, err, netmodel.Statistics{WallTime: time.Since(start)})
	}
	notify(observer, runID, netmodel.StatusRunning, 0.1, 0, 0)

	checker := feasibility.NewChecker(input.Laboratories, input.ServiceAreas, input.TestDemands, matrices.D, matrices.T, input.Constraints)

	seeder := seeding.NewSeeder(input.Laboratories, input.ServiceAreas, input.TestDemands, checker)
	population := seeder.Seed(input.Algorithm.PopulationSize, input.Algorithm.Seed)

	for _, demand := range input.TestDemands {
		if demand.Count > 0 && !checker.HasEligibleLab(demand) {
			err := fmt.Errorf("%w: no eligible laboratory for (%s,%s)", netmodel.ErrInfeasibleProblem, demand.AreaID, demand.TestType)
			log.Error().Err(err).Msg("infeasible problem detected after seeding setup")
			return d.fail(runID, "InfeasibleProblem", err, netmodel.Statistics{WallTime: time.Since(start), Progress: 0.1})
		}
	}

	evaluator := objective.NewEvaluator(input.Laboratories, input.ServiceAreas, matrices.D, matrices.T)
	if err := evaluateAll(runCtx, population, evaluator, input.Weights, d.cfg.populationParallelism); err != nil {
		return d.cancelled(runID, observer, netmodel.Solution{}, nil, 0, 0, start, runCause(err))
	}

	// bestSoFar is the elitist running best by weighted fitness across every
	// generation, independent of whether that solution survives replacement.
	// It is what the observer sees as best_fitness, what convergence is
	// measured on, and what the run ultimately returns.
	bestSoFar := bestSolution(population)
	notify(observer, runID, netmodel.StatusRunning, 0.2, 0, bestSoFar.WeightedFitness)

	maxGen := input.Algorithm.MaxGenerations
	recentBest := make([]float64, 0, convergenceWindow)
	generation := 0
	cancelledRun := false
	var cancelCause error
	progress := 0.2

	for ; generation < maxGen; generation++ {
		select {
		case <-runCtx.Done():
			cancelledRun = true
			cancelCause = runCause(runCtx.Err())
		default:
		}
		if cancelledRun {
			break
		}

		population = rankAndCrowd(population)

		offspring, err := generateOffspring(runCtx, population, checker, input.Algorithm, uint64(generation)+1, d.cfg.populationParallelism)
		if err != nil {
			cancelledRun = true
			cancelCause = runCause(err)
			break
		}
		if err := evaluateAll(runCtx, offspring, evaluator, input.Weights, d.cfg.populationParallelism); err != nil {
			cancelledRun = true
			cancelCause = runCause(err)
			break
		}

		population = nsga2.Replace(population, offspring, input.Algorithm.PopulationSize)

		if cand := bestSolution(population); cand.WeightedFitness > bestSoFar.WeightedFitness {
			bestSoFar = cand
		}
		recentBest = append(recentBest, bestSoFar.WeightedFitness)
		if len(recentBest) > convergenceWindow {
			recentBest = recentBest[1:]
		}

		progress = 0.2 + 0.7*float64(generation+1)/float64(maxGen)
		if generation%d.cfg.progressEvery == 0 || generation == maxGen-1 {
			notify(observer, runID, netmodel.StatusRunning, progress, generation+1, bestSoFar.WeightedFitness)
		}

		if len(recentBest) == convergenceWindow {
			improvement := recentBest[len(recentBest)-1] - recentBest[0]
			if improvement < input.Algorithm.ConvergenceThreshold {
				generation++
				break
			}
		}
	}

	fronts := nsga2.NonDominatedSort(population)
	for _, front := range fronts {
		nsga2.AssignCrowdingDistance(front)
	}
	paretoFront := fronts[0]
	best := bestSoFar

	stats := netmodel.Statistics{Generations: generation, WallTime: time.Since(start)}

	if cancelledRun {
		if cancelCause == nil {
			cancelCause = netmodel.ErrCancelled
		}
		kind := "Cancelled"
		if errors.Is(cancelCause, netmodel.ErrTimeout) {
			kind = "Timeout"
		}
		stats.Progress = progress
		log.Warn().Int("generation", generation).Str("solution_id", best.ID).Msg("run cancelled, returning best so far")
		notify(observer, runID, netmodel.StatusCancelled, progress, generation, best.WeightedFitness)
		return netmodel.RunResult{
			Status:       netmodel.StatusCancelled,
			Solution:     best,
			ParetoFront:  paretoFront,
			Statistics:   stats,
			ErrorKind:    kind,
			ErrorMessage: cancelCause.Error(),
		}
	}

	stats.Progress = 1.0
	log.Info().Int("generations", generation).Float64("best_fitness", best.WeightedFitness).Str("solution_id", best.ID).Msg("optimization completed")
	notify(observer, runID, netmodel.StatusCompleted, 1.0, generation, best.WeightedFitness)
	return netmodel.RunResult{Status: netmodel.StatusCompleted, Solution: best, ParetoFront: paretoFront, Statistics: stats}
}

// runCause maps a low-level context or phase error to the run-level
// sentinel it represents: deadline expiry to ErrTimeout, cancellation to
// ErrCancelled, anything else wrapped in ErrInternal.
func runCause(err error) error {
	switch {
	case err == nil:
		return netmodel.ErrCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return netmodel.ErrTimeout
	case errors.Is(err, context.Canceled):
		return netmodel.ErrCancelled
	default:
		return fmt.Errorf("%w: %v", netmodel.ErrInternal, err)
	}
}

// cancelled builds a Cancelled RunResult carrying cause's kind (Cancelled
// or Timeout), used for cancellation observed before the generation loop
// produces a population (admission, matrix construction, first evaluation).
func (d *Driver) cancelled(runID string, observer ProgressObserver, best netmodel.Solution, front []netmodel.Solution, generation int, progress float64, start time.Time, cause error) netmodel.RunResult {
	if cause == nil {
		cause = netmodel.ErrCancelled
	}
	kind := "Cancelled"
	if errors.Is(cause, netmodel.ErrTimeout) {
		kind = "Timeout"
	}
	notify(observer, runID, netmodel.StatusCancelled, progress, generation, best.WeightedFitness)
	return netmodel.RunResult{
		Status:       netmodel.StatusCancelled,
		Solution:     best,
		ParetoFront:  front,
		Statistics:   netmodel.Statistics{Generations: generation, WallTime: time.Since(start), Progress: progress},
		ErrorKind:    kind,
		ErrorMessage: cause.Error(),
	}
}

// fail builds a Failed RunResult carrying err's kind and message.
func (d *Driver) fail(runID, kind string, err error, stats netmodel.Statistics) netmodel.RunResult {
	return netmodel.RunResult{
		Status:       netmodel.StatusFailed,
		Statistics:   stats,
		ErrorKind:    kind,
		ErrorMessage: err.Error(),
	}
}

// notify invokes observer if non-nil.
func notify(observer ProgressObserver, runID string, status netmodel.Status, progress float64, generation int, bestFitness float64) {
	if observer == nil {
		return
	}
	observer(runID, status, progress, generation, bestFitness)
}

// evaluateAll recomputes Objectives and WeightedFitness for every solution
// in population, in place. Evaluation is a pure, read-only computation over
// evaluator's matrices, so solutions are fanned out across goroutines
// bounded by parallelism (parallelism <= 0 defaults to
// DefaultPopulationParallelism); each goroutine writes only its own
// population index, so the result never depends on completion order.
func evaluateAll(ctx context.Context, population []netmodel.Solution, evaluator *objective.Evaluator, weights netmodel.Weights, parallelism int) error {
	if parallelism <= 0 {
		parallelism = DefaultPopulationParallelism
	}

	sem := semaphore.NewWeighted(int64(parallelism))
	group, groupCtx := errgroup.WithContext(ctx)

	for i := range population {
		i := i
		if err := sem.Acquire(groupCtx, 1); err != nil {
			break
		}
		group.Go(func() error {
			defer sem.Release(1)
			if err := groupCtx.Err(); err != nil {
				return err
			}
			obj := evaluator.Evaluate(population[i].Allocation)
			population[i].Objectives = obj
			population[i].WeightedFitness = objective.WeightedFitness(obj, weights)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	// A cancellation observed while waiting for a semaphore slot breaks the
	// launch loop without any goroutine carrying the error; surface it so
	// the caller never proceeds with a partially evaluated population.
	return ctx.Err()
}

// generateOffspring produces len(population) child solutions via
// tournament selection, crossover, mutation, and repair. Each offspring
// pair is an independent unit of work evaluated by its own goroutine, so
// pairs are fanned out with bounded concurrency (parallelism <= 0 defaults
// to DefaultPopulationParallelism). Every pair draws from its own
// deterministic RNG sub-stream derived from (genStream, pairIndex) via
// netmodel.RNGForStream, and writes only to its own fixed slice positions,
// so the resulting offspring are independent of goroutine scheduling order
// -- required for reproducible runs under parallel variation.
func generateOffspring(ctx context.Context, population []netmodel.Solution, checker *feasibility.Checker, algo netmodel.AlgorithmParams, genStream uint64, parallelism int) ([]netmodel.Solution, error) {
	if parallelism <= 0 {
		parallelism = DefaultPopulationParallelism
	}

	n := len(population)
	numPairs := (n + 1) / 2
	offspring := make([]netmodel.Solution, n)

	sem := semaphore.NewWeighted(int64(parallelism))
	group, groupCtx := errgroup.WithContext(ctx)

	for p := 0; p < numPairs; p++ {
		p := p
		if err := sem.Acquire(groupCtx, 1); err != nil {
			break
		}
		group.Go(func() error {
			defer sem.Release(1)
			if err := groupCtx.Err(); err != nil {
				return err
			}

			stream := genStream<<32 | uint64(uint32(p))
			rng := netmodel.RNGForStream(algo.Seed, stream)

			p1 := nsga2.TournamentSelect(population, rng)
			p2 := nsga2.TournamentSelect(population, rng)
			c1, c2 := nsga2.Crossover(p1, p2, algo.CrossoverRate, rng)
			c1 = nsga2.Mutate(c1, checker, algo.MutationRate, rng)
			c2 = nsga2.Mutate(c2, checker, algo.MutationRate, rng)

			repaired1, soft1 := checker.Repair(c1.Allocation)
			c1.Allocation, c1.SoftViolations = repaired1, soft1
			repaired2, soft2 := checker.Repair(c2.Allocation)
			c2.Allocation, c2.SoftViolations = repaired2, soft2

			offspring[2*p] = c1
			if 2*p+1 < n {
				offspring[2*p+1] = c2
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return offspring, nil
}

// rankAndCrowd runs non-dominated sorting and crowding distance assignment
// over population and returns the front-ordered, fully annotated result
// (NonDominatedSort's fronts hold copies, so the annotated values must be
// re-flattened back into a single slice for subsequent selection).
func rankAndCrowd(population []netmodel.Solution) []netmodel.Solution {
	fronts := nsga2.NonDominatedSort(population)
	ranked := make([]netmodel.Solution, 0, len(population))
	for _, front := range fronts {
		nsga2.AssignCrowdingDistance(front)
		ranked = append(ranked, front...)
	}
	return ranked
}

// bestSolution returns the solution with maximum WeightedFitness across
// population.
func bestSolution(population []netmodel.Solution) netmodel.Solution {
	best := population[0]
	for _, s := range population[1:] {
		if s.WeightedFitness > best.WeightedFitness {
			best = s
		}
	}
	return best
}
