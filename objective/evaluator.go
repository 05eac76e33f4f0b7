package objective

import "github.com/cdst-net/netopt/netmodel"

// Pinned normalization and cost-model constants.
const (
	BaseCostPerTest = 25.0
	CostPerKM       = 0.5

	DistanceNormCap = 10000.0
	TimeNormCap     = 5000.0
	CostNormCap     = 100000.0

	AccessibilityDistanceScale = 50.0
)

// Evaluator computes objective scalars against one run's fixed laboratory
// network and distance/time matrices.
type Evaluator struct {
	Indices netmodel.Indices
	D, T    *netmodel.Dense
}

// NewEvaluator builds an Evaluator over the run's laboratories, service
// areas, and precomputed matrices.
func NewEvaluator(labs []netmodel.Laboratory, areas []netmodel.ServiceArea, d, t *netmodel.Dense) *Evaluator {
	return &Evaluator{Indices: netmodel.BuildIndices(labs, areas), D: d, T: t}
}

// Evaluate computes the five raw objective scalars for alloc in
// O(E + L) time, E being alloc's edge count and L the laboratory count.
func (e *Evaluator) Evaluate(alloc netmodel.Allocation) netmodel.Objectives {
	var totalDistance, totalTime, totalCost float64
	var totalTests int
	labCounts := make(map[string]int, len(e.Indices.Labs))

	for _, edge := range alloc.Edges() {
		areaIdx, ok := e.Indices.AreaIndex[edge.Key.AreaID]
		if !ok {
			continue
		}
		labIdx, ok := e.Indices.LabIndex[edge.LabID]
		if !ok {
			continue
		}
		// Indices were built from the same labs/areas the matrices were
		// built from, so the lookup can never be out of bounds.
		d := e.D.MustAt(areaIdx, labIdx)
		t := e.T.MustAt(areaIdx, labIdx)
		count := float64(edge.Count)

		totalDistance += d * count
		totalTime += t * count
		totalCost += (BaseCostPerTest + CostPerKM*d) * count
		totalTests += edge.Count
		labCounts[edge.LabID] += edge.Count
	}

	var utilizationScores []float64
	for _, lab := range e.Indices.Labs {
		if lab.MaxTestsPerDay <= 0 {
			continue
		}
		ratio := float64(labCounts[lab.ID]) / float64(lab.MaxTestsPerDay)
		if ratio > 1.0 {
			ratio = 1.0
		}
		utilizationScores = append(utilizationScores, ratio)
	}
	avgUtilization := 0.0
	if len(utilizationScores) > 0 {
		sum := 0.0
		for _, s := range utilizationScores {
			sum += s
		}
		avgUtilization = sum / float64(len(utilizationScores))
	}

	avgDistance := 0.0
	if totalTests > 0 {
		avgDistance = totalDistance / float64(totalTests)
	}
	accessibility := 1.0 / (1.0 + avgDistance/AccessibilityDistanceScale)

	return netmodel.Objectives{
		Distance:      totalDistance,
		Time:          totalTime,
		Cost:          totalCost,
		Utilization:   avgUtilization,
		Accessibility: accessibility,
	}
}

// clamp01Min returns 1 - min(x/limit, 1), the shared "lower is better"
// normalization used by distance, time, and cost.
func clamp01Min(x, limit float64) float64 {
	ratio := x / limit
	if ratio > 1.0 {
		ratio = 1.0
	}
	return 1.0 - ratio
}

// WeightedFitness combines obj's normalized objectives under weights into
// the single scalar used for tournament tie-breaking and for selecting
// the returned "best" solution. It is never used for Pareto dominance.
func WeightedFitness(obj netmodel.Objectives, weights netmodel.Weights) float64 {
	nDist := clamp01Min(obj.Distance, DistanceNormCap)
	nTime := clamp01Min(obj.Time, TimeNormCap)
	nCost := clamp01Min(obj.Cost, CostNormCap)
	nUtil := obj.Utilization
	nAcc := obj.Accessibility

	return nDist*weights.Distance +
		nTime*weights.Time +
		nCost*weights.Cost +
		nUtil*weights.Utilization +
		nAcc*weights.Accessibility
}
