package nsga2

import (
	"math/rand"
	"slices"

	"github.com/cdst-net/netopt/netmodel"
)

// TournamentSize is the number of candidates drawn per tournament.
const TournamentSize = 3

// TournamentSelect runs one binary tournament of TournamentSize distinct
// candidates drawn from population (every member when population is
// smaller than TournamentSize) and returns the winner: lowest Rank first,
// then fewest soft violations, then highest CrowdingDistance, then highest
// WeightedFitness. Soft violations enter selection only here; they never
// distort the objective values themselves.
func TournamentSelect(population []netmodel.Solution, rng *rand.Rand) netmodel.Solution {
	size := TournamentSize
	if size > len(population) {
		size = len(population)
	}
	drawn := make([]int, 0, size)
	var best netmodel.Solution
	for len(drawn) < size {
		idx := rng.Intn(len(population))
		if slices.Contains(drawn, idx) {
			continue
		}
		drawn = append(drawn, idx)
		if len(drawn) == 1 || better(population[idx], best) {
			best = population[idx]
		}
	}
	return best
}

// better reports whether a wins a head-to-head tie-break against b.
func better(a, b netmodel.Solution) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	if len(a.SoftViolations) != len(b.SoftViolations) {
		return len(a.SoftViolations) < len(b.SoftViolations)
	}
	if a.CrowdingDistance != b.CrowdingDistance {
		return a.CrowdingDistance > b.CrowdingDistance
	}
	return a.WeightedFitness > b.WeightedFitness
}
