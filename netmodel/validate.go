package netmodel

import (
	"fmt"
	"math"
)

// ValidateRunInput performs the InvalidInput checks that must surface
// before any matrix or generation work starts: weights must sum
// to 1 within WeightsSumTolerance, demand counts must be non-negative,
// laboratories and service areas must be non-empty, and every demand must
// reference a known test type on at least one laboratory's capability map
// (existence of the reference, not feasibility of assignment -- that is
// InfeasibleProblem, checked later by package feasibility).
func ValidateRunInput(in RunInput) error {
	if len(in.Laboratories) == 0 {
		return fmt.Errorf("%w: no laboratories provided", ErrInvalidInput)
	}
	if len(in.ServiceAreas) == 0 {
		return fmt.Errorf("%w: no service areas provided", ErrInvalidInput)
	}
	if diff := math.Abs(in.Weights.Sum() - 1.0); diff > WeightsSumTolerance {
		return fmt.Errorf("%w: weights sum to %.6f, want 1.0 +/- %.1e", ErrInvalidInput, in.Weights.Sum(), WeightsSumTolerance)
	}
	for _, w := range []float64{in.Weights.Distance, in.Weights.Time, in.Weights.Cost, in.Weights.Utilization, in.Weights.Accessibility} {
		if w < 0 {
			return fmt.Errorf("%w: negative weight component %.6f", ErrInvalidInput, w)
		}
	}

	knownTestTypes := make(map[string]bool)
	for _, lab := range in.Laboratories {
		for tt := range lab.TestTypes {
			knownTestTypes[tt] = true
		}
	}

	areaIDs := make(map[string]bool, len(in.ServiceAreas))
	for _, area := range in.ServiceAreas {
		areaIDs[area.ID] = true
	}

	for _, d := range in.TestDemands {
		if d.Count < 0 {
			return fmt.Errorf("%w: negative demand count %d for (%s,%s)", ErrInvalidInput, d.Count, d.AreaID, d.TestType)
		}
		if !areaIDs[d.AreaID] {
			return fmt.Errorf("%w: demand references unknown area %q", ErrInvalidInput, d.AreaID)
		}
		if !knownTestTypes[d.TestType] {
			return fmt.Errorf("%w: demand references unknown test type %q", ErrInvalidInput, d.TestType)
		}
	}

	if in.Algorithm.PopulationSize < 10 || in.Algorithm.PopulationSize > 10000 {
		return fmt.Errorf("%w: population_size %d out of range [10,10000]", ErrInvalidInput, in.Algorithm.PopulationSize)
	}
	if in.Algorithm.MaxGenerations < 1 || in.Algorithm.MaxGenerations > 10000 {
		return fmt.Errorf("%w: max_generations %d out of range [1,10000]", ErrInvalidInput, in.Algorithm.MaxGenerations)
	}
	if in.Algorithm.CrossoverRate < 0 || in.Algorithm.CrossoverRate > 1 {
		return fmt.Errorf("%w: crossover_rate %.3f out of range [0,1]", ErrInvalidInput, in.Algorithm.CrossoverRate)
	}
	if in.Algorithm.MutationRate < 0 || in.Algorithm.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate %.3f out of range [0,1]", ErrInvalidInput, in.Algorithm.MutationRate)
	}
	if in.Algorithm.ConvergenceThreshold < 0 {
		return fmt.Errorf("%w: convergence_threshold %.6f must be >= 0", ErrInvalidInput, in.Algorithm.ConvergenceThreshold)
	}

	return nil
}
