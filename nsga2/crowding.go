package nsga2

import (
	"math"
	"sort"

	"github.com/cdst-net/netopt/netmodel"
)

// objectiveAccessor reads one objective component from a Solution.
type objectiveAccessor func(netmodel.Objectives) float64

var crowdingObjectives = []objectiveAccessor{
	func(o netmodel.Objectives) float64 { return o.Distance },
	func(o netmodel.Objectives) float64 { return o.Time },
	func(o netmodel.Objectives) float64 { return o.Cost },
	func(o netmodel.Objectives) float64 { return o.Utilization },
	func(o netmodel.Objectives) float64 { return o.Accessibility },
}

// AssignCrowdingDistance computes and sets the CrowdingDistance field for
// every solution in front, in place. Fronts of size <= 2 are entirely
// boundary points and receive +Inf.
func AssignCrowdingDistance(front []netmodel.Solution) {
	n := len(front)
	if n == 0 {
		return
	}
	if n <= 2 {
		for i := range front {
			front[i].CrowdingDistance = math.Inf(1)
		}
		return
	}

	for i := range front {
		front[i].CrowdingDistance = 0
	}

	for _, get := range crowdingObjectives {
		sort.Slice(front, func(i, j int) bool {
			return get(front[i].Objectives) < get(front[j].Objectives)
		})

		front[0].CrowdingDistance = math.Inf(1)
		front[n-1].CrowdingDistance = math.Inf(1)

		lo := get(front[0].Objectives)
		hi := get(front[n-1].Objectives)
		objRange := hi - lo
		if objRange == 0 {
			continue
		}

		for i := 1; i < n-1; i++ {
			if math.IsInf(front[i].CrowdingDistance, 1) {
				continue
			}
			next := get(front[i+1].Objectives)
			prev := get(front[i-1].Objectives)
			front[i].CrowdingDistance += (next - prev) / objRange
		}
	}
}
