package nsga2

import "github.com/cdst-net/netopt/netmodel"

// NonDominatedSort partitions population into fronts F0, F1, ... by
// iteratively extracting the set of members not dominated by any
// remaining member, assigning each solution's Rank as it is placed.
// Runs in O(M*N^2) with M the objective count and N the population size.
func NonDominatedSort(population []netmodel.Solution) [][]netmodel.Solution {
	n := len(population)
	dominationCount := make([]int, n)
	dominatedBy := make([][]int, n)

	var fronts [][]int
	first := []int{}
	for i := range population {
		for j := range population {
			if i == j {
				continue
			}
			switch {
			case Dominates(population[i].Objectives, population[j].Objectives):
				dominatedBy[i] = append(dominatedBy[i], j)
			case Dominates(population[j].Objectives, population[i].Objectives):
				dominationCount[i]++
			}
		}
		if dominationCount[i] == 0 {
			population[i].Rank = 0
			first = append(first, i)
		}
	}
	fronts = append(fronts, first)

	for f := 0; len(fronts[f]) > 0; f++ {
		var next []int
		for _, p := range fronts[f] {
			for _, q := range dominatedBy[p] {
				dominationCount[q]--
				if dominationCount[q] == 0 {
					population[q].Rank = f + 1
					next = append(next, q)
				}
			}
		}
		fronts = append(fronts, next)
	}

	out := make([][]netmodel.Solution, 0, len(fronts)-1)
	for _, idxFront := range fronts {
		if len(idxFront) == 0 {
			continue
		}
		solutions := make([]netmodel.Solution, len(idxFront))
		for k, idx := range idxFront {
			solutions[k] = population[idx]
		}
		out = append(out, solutions)
	}
	return out
}
