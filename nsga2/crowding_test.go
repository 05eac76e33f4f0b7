package nsga2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdst-net/netopt/netmodel"
)

func TestAssignCrowdingDistance_SmallFrontAllInfinite(t *testing.T) {
	front := []netmodel.Solution{
		solutionWith(netmodel.Objectives{Distance: 10, Time: 10, Cost: 10, Utilization: 0.5, Accessibility: 0.5}),
		solutionWith(netmodel.Objectives{Distance: 20, Time: 20, Cost: 20, Utilization: 0.6, Accessibility: 0.6}),
	}
	AssignCrowdingDistance(front)
	for _, s := range front {
		assert.True(t, math.IsInf(s.CrowdingDistance, 1))
	}
}

func TestAssignCrowdingDistance_EndpointsInfiniteInteriorFinite(t *testing.T) {
	front := []netmodel.Solution{
		solutionWith(netmodel.Objectives{Distance: 10, Time: 10, Cost: 10, Utilization: 0.1, Accessibility: 0.1}),
		solutionWith(netmodel.Objectives{Distance: 20, Time: 20, Cost: 20, Utilization: 0.2, Accessibility: 0.2}),
		solutionWith(netmodel.Objectives{Distance: 30, Time: 30, Cost: 30, Utilization: 0.3, Accessibility: 0.3}),
	}
	AssignCrowdingDistance(front)

	infinites := 0
	var interior netmodel.Solution
	for _, s := range front {
		if math.IsInf(s.CrowdingDistance, 1) {
			infinites++
			continue
		}
		interior = s
	}
	assert.Equal(t, 2, infinites)
	// Each objective is evenly spaced here, so every term contributes 1.0;
	// summed across all five objectives the interior point gets 5.0.
	assert.InDelta(t, 5.0, interior.CrowdingDistance, 1e-9)
}

func TestAssignCrowdingDistance_ZeroRangeContributesZero(t *testing.T) {
	front := []netmodel.Solution{
		solutionWith(netmodel.Objectives{Distance: 10, Time: 10, Cost: 10, Utilization: 0.1, Accessibility: 0.1}),
		solutionWith(netmodel.Objectives{Distance: 10, Time: 20, Cost: 10, Utilization: 0.2, Accessibility: 0.1}),
		solutionWith(netmodel.Objectives{Distance: 10, Time: 30, Cost: 10, Utilization: 0.3, Accessibility: 0.1}),
	}
	AssignCrowdingDistance(front)

	for _, s := range front {
		if math.IsInf(s.CrowdingDistance, 1) {
			continue
		}
		// Distance, cost, and accessibility all have zero range and
		// contribute nothing; only time and utilization contribute (1.0 each).
		assert.InDelta(t, 2.0, s.CrowdingDistance, 1e-9)
	}
}
