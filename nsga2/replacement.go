package nsga2

import (
	"sort"

	"github.com/cdst-net/netopt/netmodel"
)

// Replace performs elitist mu+lambda replacement: parents and offspring are
// merged, re-ranked via NonDominatedSort, and filled front-by-front into a
// next generation of exactly targetSize. When a front would overflow the
// remaining slots, its members are ranked by descending crowding distance
// and only the least crowded fill the remainder.
func Replace(parents, offspring []netmodel.Solution, targetSize int) []netmodel.Solution {
	merged := make([]netmodel.Solution, 0, len(parents)+len(offspring))
	merged = append(merged, parents...)
	merged = append(merged, offspring...)

	fronts := NonDominatedSort(merged)

	next := make([]netmodel.Solution, 0, targetSize)
	for _, front := range fronts {
		if len(next)+len(front) <= targetSize {
			next = append(next, front...)
			continue
		}

		remaining := targetSize - len(next)
		if remaining <= 0 {
			break
		}
		AssignCrowdingDistance(front)
		sort.Slice(front, func(i, j int) bool {
			return front[i].CrowdingDistance > front[j].CrowdingDistance
		})
		next = append(next, front[:remaining]...)
		break
	}
	return next
}
