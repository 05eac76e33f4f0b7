package objective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdst-net/netopt/netmodel"
)

func denseFrom(rows, cols int, values []float64) *netmodel.Dense {
	d, err := netmodel.NewDense(rows, cols)
	if err != nil {
		panic(err)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if err := d.Set(i, j, values[i*cols+j]); err != nil {
				panic(err)
			}
		}
	}
	return d
}

func TestEvaluator_ScenarioOneTrivial(t *testing.T) {
	labs := []netmodel.Laboratory{{ID: "L1", MaxTestsPerDay: 100}}
	areas := []netmodel.ServiceArea{{ID: "A1"}}
	d := denseFrom(1, 1, []float64{111.195})
	tm := denseFrom(1, 1, []float64{20})

	eval := NewEvaluator(labs, areas, d, tm)

	alloc := netmodel.NewAllocation()
	alloc.Add(netmodel.DemandKey{AreaID: "A1", TestType: "T"}, "L1", 10)

	obj := eval.Evaluate(alloc)
	assert.InDelta(t, 1111.95, obj.Distance, 0.01)
	assert.InDelta(t, 805.98, obj.Cost, 0.01)
	assert.InDelta(t, 0.1, obj.Utilization, 1e-9)
}

func TestEvaluator_AccessibilityOneWhenNoTests(t *testing.T) {
	labs := []netmodel.Laboratory{{ID: "L1", MaxTestsPerDay: 100}}
	areas := []netmodel.ServiceArea{{ID: "A1"}}
	d := denseFrom(1, 1, []float64{10})
	tm := denseFrom(1, 1, []float64{10})

	eval := NewEvaluator(labs, areas, d, tm)
	obj := eval.Evaluate(netmodel.NewAllocation())

	assert.Equal(t, 0.0, obj.Distance)
	assert.Equal(t, 1.0, obj.Accessibility)
	assert.Equal(t, 0.0, obj.Utilization)
}

func TestEvaluator_UtilizationIgnoresLabsWithoutDailyCapacity(t *testing.T) {
	labs := []netmodel.Laboratory{
		{ID: "L1", MaxTestsPerDay: 100},
		{ID: "L2", MaxTestsPerDay: 0},
	}
	areas := []netmodel.ServiceArea{{ID: "A1"}}
	d := denseFrom(1, 2, []float64{1, 1})
	tm := denseFrom(1, 2, []float64{1, 1})

	eval := NewEvaluator(labs, areas, d, tm)
	alloc := netmodel.NewAllocation()
	alloc.Add(netmodel.DemandKey{AreaID: "A1", TestType: "T"}, "L1", 50)
	alloc.Add(netmodel.DemandKey{AreaID: "A1", TestType: "T"}, "L2", 999)

	obj := eval.Evaluate(alloc)
	// Only L1 contributes to the utilization mean; L2 has no declared
	// daily capacity and is excluded.
	assert.InDelta(t, 0.5, obj.Utilization, 1e-9)
}

func TestEvaluator_UtilizationClampedAtOne(t *testing.T) {
	labs := []netmodel.Laboratory{{ID: "L1", MaxTestsPerDay: 10}}
	areas := []netmodel.ServiceArea{{ID: "A1"}}
	d := denseFrom(1, 1, []float64{1})
	tm := denseFrom(1, 1, []float64{1})

	eval := NewEvaluator(labs, areas, d, tm)
	alloc := netmodel.NewAllocation()
	alloc.Add(netmodel.DemandKey{AreaID: "A1", TestType: "T"}, "L1", 100)

	obj := eval.Evaluate(alloc)
	assert.InDelta(t, 1.0, obj.Utilization, 1e-9)
}

func TestWeightedFitness_DistanceHeavyWeightsFavorsShorterDistance(t *testing.T) {
	weights := netmodel.Weights{Distance: 1.0}
	near := netmodel.Objectives{Distance: 100}
	far := netmodel.Objectives{Distance: 9000}

	require.Greater(t, WeightedFitness(near, weights), WeightedFitness(far, weights))
}

func TestWeightedFitness_NormalizationClampsAtBoundaries(t *testing.T) {
	weights := netmodel.Weights{Distance: 1.0}
	atCap := netmodel.Objectives{Distance: DistanceNormCap}
	overCap := netmodel.Objectives{Distance: DistanceNormCap * 2}

	assert.Equal(t, 0.0, WeightedFitness(atCap, weights))
	assert.Equal(t, 0.0, WeightedFitness(overCap, weights))
}
