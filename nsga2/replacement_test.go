package nsga2

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdst-net/netopt/netmodel"
)

func TestReplace_FillsExactlyTargetSize(t *testing.T) {
	parents := []netmodel.Solution{
		solutionWith(netmodel.Objectives{Distance: 10, Time: 30, Cost: 10, Utilization: 0.8, Accessibility: 0.8}),
		solutionWith(netmodel.Objectives{Distance: 20, Time: 20, Cost: 10, Utilization: 0.5, Accessibility: 0.5}),
	}
	offspring := []netmodel.Solution{
		solutionWith(netmodel.Objectives{Distance: 30, Time: 10, Cost: 10, Utilization: 0.9, Accessibility: 0.9}),
		solutionWith(netmodel.Objectives{Distance: 50, Time: 50, Cost: 50, Utilization: 0.1, Accessibility: 0.1}),
	}

	next := Replace(parents, offspring, 3)
	assert.Len(t, next, 3)
}

func TestReplace_PrefersLowerRankFrontsFirst(t *testing.T) {
	dominator := solutionWith(netmodel.Objectives{Distance: 1, Time: 1, Cost: 1, Utilization: 0.9, Accessibility: 0.9})
	dominated := solutionWith(netmodel.Objectives{Distance: 100, Time: 100, Cost: 100, Utilization: 0.1, Accessibility: 0.1})
	dominator.ID = "dominator"
	dominated.ID = "dominated"

	next := Replace([]netmodel.Solution{dominator}, []netmodel.Solution{dominated}, 1)
	assert.Len(t, next, 1)
	assert.Equal(t, "dominator", next[0].ID)
}

func TestReplace_OverflowingFrontKeepsLeastCrowded(t *testing.T) {
	// Three mutually non-dominated solutions spread evenly across distance;
	// the middle one is the most crowded and should be dropped when only
	// two slots remain.
	a := solutionWith(netmodel.Objectives{Distance: 10, Time: 30, Cost: 10, Utilization: 0.1, Accessibility: 0.1})
	b := solutionWith(netmodel.Objectives{Distance: 20, Time: 20, Cost: 10, Utilization: 0.1, Accessibility: 0.1})
	c := solutionWith(netmodel.Objectives{Distance: 30, Time: 10, Cost: 10, Utilization: 0.1, Accessibility: 0.1})
	a.ID, b.ID, c.ID = "a", "b", "c"

	next := Replace([]netmodel.Solution{a, b, c}, nil, 2)
	assert.Len(t, next, 2)

	ids := map[string]bool{}
	for _, s := range next {
		ids[s.ID] = true
	}
	assert.True(t, ids["a"])
	assert.True(t, ids["c"])
	assert.False(t, ids["b"])
}
