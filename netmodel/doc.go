// Package netmodel defines the read-only data model shared by every stage
// of the laboratory network allocation optimizer: Laboratory, ServiceArea,
// TestDemand, Allocation, Solution, the distance/time Dense matrices,
// Weights, Constraints, AlgorithmParams, and the RunInput/RunResult pair
// that forms the optimizer's external contract.
//
// Ownership:
//
//	Laboratory, ServiceArea, and TestDemand are immutable snapshots for the
//	lifetime of a run. Allocation maps are owned exclusively by the Solution
//	that holds them. Dense matrices are built once and shared read-only.
//	Integer indices (area-index, lab-index, test-type-index) replace the
//	pointer-heavy, cyclic relationships of the originating persistence model;
//	nothing here reaches back into a caller's object graph.
//
// Errors:
//
//	ErrInvalidInput     - malformed run input (weights, negative demand, ...)
//	ErrInfeasibleProblem - no capable/reachable laboratory exists for a demand
//	ErrCancelled        - run was cancelled before completion
//	ErrTimeout          - wall-clock budget exhausted (treated as Cancelled)
//	ErrInternal         - an invariant was violated during evaluation
package netmodel
