package netmodel

import "github.com/google/uuid"

// DemandKey identifies one (area, test-type) demand line.
type DemandKey struct {
	AreaID   string
	TestType string
}

// Allocation maps a demand key to the non-negative integer count assigned
// to each laboratory. Invariant: for every demand key, the sum over
// laboratories equals that demand's count.
type Allocation map[DemandKey]map[string]int

// NewAllocation returns an empty Allocation.
func NewAllocation() Allocation {
	return make(Allocation)
}

// Add assigns count additional tests for (key) to labID, merging with any
// existing assignment for that lab.
func (a Allocation) Add(key DemandKey, labID string, count int) {
	if count == 0 {
		return
	}
	labs, ok := a[key]
	if !ok {
		labs = make(map[string]int)
		a[key] = labs
	}
	labs[labID] += count
}

// TotalFor returns the sum of counts assigned across labs for key.
func (a Allocation) TotalFor(key DemandKey) int {
	total := 0
	for _, c := range a[key] {
		total += c
	}
	return total
}

// Clone returns a deep copy; the original's inner maps are never shared
// with the result, so crossover/mutation children never alias a parent's
// allocation: each solution owns its allocation maps exclusively.
func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	for k, labs := range a {
		cp := make(map[string]int, len(labs))
		for lab, count := range labs {
			cp[lab] = count
		}
		out[k] = cp
	}
	return out
}

// Edge is one (area, test-type, lab, count) allocation edge.
type Edge struct {
	Key   DemandKey
	LabID string
	Count int
}

// Edges flattens the allocation into a slice of edges. Iteration order is
// not significant to any invariant; callers needing a stable order should
// sort the result.
func (a Allocation) Edges() []Edge {
	edges := make([]Edge, 0, len(a))
	for key, labs := range a {
		for lab, count := range labs {
			edges = append(edges, Edge{Key: key, LabID: lab, Count: count})
		}
	}
	return edges
}

// Objectives holds the five raw objective scalars computed by package
// objective: distance, time, and cost are minimized; utilization and
// accessibility are maximized.
type Objectives struct {
	Distance      float64
	Time          float64
	Cost          float64
	Utilization   float64
	Accessibility float64
}

// SoftViolation records a feasibility repair that could not fully resolve
// an edge: the tests that no eligible lab could absorb stay on the lab the
// edge was already assigned to (even when that lab is not capable), not on
// another capable lab, instead of being dropped. The violation is tracked
// here for tournament tie-breaking only, never for objective distortion.
type SoftViolation struct {
	Key    DemandKey
	LabID  string
	Reason string
}

// Solution is one candidate allocation plus its fitness bookkeeping.
// Created by the seeder or by crossover/mutation; mutated only during its
// own generation's variation phase; discarded once it falls out of the
// elitist selection.
type Solution struct {
	// ID is an ephemeral, non-persisted tracking identifier emitted with
	// the driver's completion and cancellation log lines for correlation;
	// it is never part of the returned objective values.
	ID string

	Allocation Allocation
	Objectives Objectives

	Rank             int
	CrowdingDistance float64
	WeightedFitness  float64

	SoftViolations []SoftViolation
}

// NewSolution wraps alloc in a freshly identified Solution.
func NewSolution(alloc Allocation) Solution {
	return Solution{ID: uuid.NewString(), Allocation: alloc}
}

// CloneForVariation returns a copy of s suitable as a crossover/mutation
// parent or child: a fresh ID, a deep-cloned allocation, and reset fitness
// bookkeeping (objectives/rank/crowding/fitness are recomputed by the next
// evaluation pass).
func (s Solution) CloneForVariation() Solution {
	return Solution{
		ID:         uuid.NewString(),
		Allocation: s.Allocation.Clone(),
	}
}
