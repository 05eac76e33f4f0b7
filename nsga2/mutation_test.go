package nsga2

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdst-net/netopt/feasibility"
	"github.com/cdst-net/netopt/netmodel"
)

func twoLabMutationChecker() (*feasibility.Checker, netmodel.DemandKey) {
	labs := []netmodel.Laboratory{
		{ID: "L1", UtilizationFactor: 1, MaxTestsPerDay: 1000, MaxTestsPerMonth: 10000, TestTypes: map[string]netmodel.TestCapability{
			"cbc": {Available: true, MinutesPerTest: 10, QualityScore: 0.9},
		}},
		{ID: "L2", UtilizationFactor: 1, MaxTestsPerDay: 1000, MaxTestsPerMonth: 10000, TestTypes: map[string]netmodel.TestCapability{
			"cbc": {Available: true, MinutesPerTest: 10, QualityScore: 0.9},
		}},
	}
	areas := []netmodel.ServiceArea{{ID: "A1"}}
	demands := []netmodel.TestDemand{{AreaID: "A1", TestType: "cbc", Count: 10}}
	d, _ := netmodel.NewDense(1, 2)
	_ = d.Set(0, 0, 1)
	_ = d.Set(0, 1, 2)
	tm, _ := netmodel.NewDense(1, 2)
	_ = tm.Set(0, 0, 1)
	_ = tm.Set(0, 1, 2)

	checker := feasibility.NewChecker(labs, areas, demands, d, tm, netmodel.Constraints{QualityThreshold: 0.5})
	return checker, netmodel.DemandKey{AreaID: "A1", TestType: "cbc"}
}

func TestMutate_ZeroRateNeverChangesAllocation(t *testing.T) {
	checker, key := twoLabMutationChecker()
	alloc := netmodel.NewAllocation()
	alloc.Add(key, "L1", 10)
	sol := netmodel.NewSolution(alloc)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		mutated := Mutate(sol, checker, 0, rng)
		assert.Equal(t, 10, mutated.Allocation[key]["L1"])
		assert.Equal(t, 0, mutated.Allocation[key]["L2"])
	}
}

func TestMutate_MovesSubcountToAlternativeLabAndConservesTotal(t *testing.T) {
	checker, key := twoLabMutationChecker()
	alloc := netmodel.NewAllocation()
	alloc.Add(key, "L1", 10)
	sol := netmodel.NewSolution(alloc)

	rng := rand.New(rand.NewSource(42))
	mutated := Mutate(sol, checker, 1.0, rng)

	assert.Equal(t, 10, mutated.Allocation.TotalFor(key))
	assert.Less(t, mutated.Allocation[key]["L1"], 10)
	assert.Greater(t, mutated.Allocation[key]["L2"], 0)
}

// TestMutate_DeterministicAcrossRepeatedCallsWithMultipleKeysAndLabs guards
// against the demand-key and source-lab selections depending on Go's
// unspecified map iteration order: with >=2 demand keys and >=2 labs
// already assigned under one key, a fixed rng seed must always pick the
// same key and the same source/destination lab, run after run.
func TestMutate_DeterministicAcrossRepeatedCallsWithMultipleKeysAndLabs(t *testing.T) {
	labs := []netmodel.Laboratory{
		{ID: "L1", UtilizationFactor: 1, MaxTestsPerDay: 1000, MaxTestsPerMonth: 10000, TestTypes: map[string]netmodel.TestCapability{
			"cbc": {Available: true, MinutesPerTest: 10, QualityScore: 0.9},
		}},
		{ID: "L2", UtilizationFactor: 1, MaxTestsPerDay: 1000, MaxTestsPerMonth: 10000, TestTypes: map[string]netmodel.TestCapability{
			"cbc": {Available: true, MinutesPerTest: 10, QualityScore: 0.9},
		}},
		{ID: "L3", UtilizationFactor: 1, MaxTestsPerDay: 1000, MaxTestsPerMonth: 10000, TestTypes: map[string]netmodel.TestCapability{
			"cbc": {Available: true, MinutesPerTest: 10, QualityScore: 0.9},
		}},
	}
	areas := []netmodel.ServiceArea{{ID: "A1"}, {ID: "A2"}}
	demands := []netmodel.TestDemand{
		{AreaID: "A1", TestType: "cbc", Count: 10},
		{AreaID: "A2", TestType: "cbc", Count: 8},
	}
	d, _ := netmodel.NewDense(2, 3)
	tm, _ := netmodel.NewDense(2, 3)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			_ = d.Set(i, j, float64(j+1))
			_ = tm.Set(i, j, float64(j+1))
		}
	}
	checker := feasibility.NewChecker(labs, areas, demands, d, tm, netmodel.Constraints{QualityThreshold: 0.5})
	keyA := netmodel.DemandKey{AreaID: "A1", TestType: "cbc"}
	keyB := netmodel.DemandKey{AreaID: "A2", TestType: "cbc"}

	baseAlloc := netmodel.NewAllocation()
	baseAlloc.Add(keyA, "L1", 6)
	baseAlloc.Add(keyA, "L2", 4)
	baseAlloc.Add(keyB, "L2", 5)
	baseAlloc.Add(keyB, "L3", 3)
	sol := netmodel.NewSolution(baseAlloc)

	var first netmodel.Solution
	for run := 0; run < 50; run++ {
		rng := rand.New(rand.NewSource(99))
		mutated := Mutate(sol, checker, 1.0, rng)
		if run == 0 {
			first = mutated
			continue
		}
		for _, key := range []netmodel.DemandKey{keyA, keyB} {
			for _, lab := range []string{"L1", "L2", "L3"} {
				assert.Equal(t, first.Allocation[key][lab], mutated.Allocation[key][lab])
			}
		}
	}
}

func TestMutate_NoOpWhenNoAlternativeLabExists(t *testing.T) {
	labs := []netmodel.Laboratory{
		{ID: "L1", UtilizationFactor: 1, MaxTestsPerDay: 1000, MaxTestsPerMonth: 10000, TestTypes: map[string]netmodel.TestCapability{
			"cbc": {Available: true, MinutesPerTest: 10, QualityScore: 0.9},
		}},
	}
	areas := []netmodel.ServiceArea{{ID: "A1"}}
	demands := []netmodel.TestDemand{{AreaID: "A1", TestType: "cbc", Count: 10}}
	d, _ := netmodel.NewDense(1, 1)
	_ = d.Set(0, 0, 1)
	tm, _ := netmodel.NewDense(1, 1)
	_ = tm.Set(0, 0, 1)
	checker := feasibility.NewChecker(labs, areas, demands, d, tm, netmodel.Constraints{QualityThreshold: 0.5})
	key := netmodel.DemandKey{AreaID: "A1", TestType: "cbc"}

	alloc := netmodel.NewAllocation()
	alloc.Add(key, "L1", 10)
	sol := netmodel.NewSolution(alloc)

	rng := rand.New(rand.NewSource(9))
	mutated := Mutate(sol, checker, 1.0, rng)

	assert.Equal(t, 10, mutated.Allocation[key]["L1"])
}
