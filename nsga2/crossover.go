package nsga2

import (
	"math/rand"
	"sort"

	"github.com/cdst-net/netopt/netmodel"
)

// Crossover produces two children from parent1 and parent2. With
// probability 1-rate both children are exact clones of their respective
// parent. Otherwise, for every demand key present in either parent, a coin
// flip (p=0.5) decides whether child1 inherits that key's per-lab
// assignment from parent1 or parent2; child2 always takes the key from
// whichever parent child1 did not.
func Crossover(parent1, parent2 netmodel.Solution, rate float64, rng *rand.Rand) (netmodel.Solution, netmodel.Solution) {
	child1 := parent1.CloneForVariation()
	child2 := parent2.CloneForVariation()

	if rng.Float64() >= rate {
		return child1, child2
	}

	child1.Allocation = netmodel.NewAllocation()
	child2.Allocation = netmodel.NewAllocation()

	keys := unionKeys(parent1.Allocation, parent2.Allocation)
	for _, key := range keys {
		fromFirst := rng.Float64() < 0.5
		if fromFirst {
			copyAssignment(child1.Allocation, key, parent1.Allocation[key])
			copyAssignment(child2.Allocation, key, parent2.Allocation[key])
		} else {
			copyAssignment(child1.Allocation, key, parent2.Allocation[key])
			copyAssignment(child2.Allocation, key, parent1.Allocation[key])
		}
	}
	return child1, child2
}

// unionKeys returns the set of demand keys present in either allocation,
// sorted by (AreaID, TestType) so the per-key rng draw order in Crossover
// depends only on the run seed, never on Go's unspecified map iteration
// order -- required for runs to be reproducible.
func unionKeys(a, b netmodel.Allocation) []netmodel.DemandKey {
	seen := make(map[netmodel.DemandKey]struct{}, len(a)+len(b))
	out := make([]netmodel.DemandKey, 0, len(a)+len(b))
	for k := range a {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	for k := range b {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AreaID != out[j].AreaID {
			return out[i].AreaID < out[j].AreaID
		}
		return out[i].TestType < out[j].TestType
	})
	return out
}

// copyAssignment copies a key's per-lab assignment from source into dst.
func copyAssignment(dst netmodel.Allocation, key netmodel.DemandKey, source map[string]int) {
	if len(source) == 0 {
		return
	}
	for lab, count := range source {
		dst.Add(key, lab, count)
	}
}
