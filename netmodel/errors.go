package netmodel

import "errors"

// Sentinel errors surfaced across package boundaries. Wrap with fmt.Errorf
// and %w where extra detail (an invariant name, a field name) helps a
// caller diagnose the failure; never replace the sentinel.
var (
	// ErrInvalidInput indicates the run input failed validation before any
	// matrix or generation work started: weights not summing to 1, a
	// negative demand count, an empty lab/area list, or a reference to an
	// unknown test-type.
	ErrInvalidInput = errors.New("netmodel: invalid run input")

	// ErrInfeasibleProblem indicates no capable, reachable laboratory
	// exists for some demand after seeding.
	ErrInfeasibleProblem = errors.New("netmodel: no feasible laboratory for demand")

	// ErrCancelled indicates the run was cancelled via the caller's context
	// before reaching Completed.
	ErrCancelled = errors.New("netmodel: run cancelled")

	// ErrTimeout indicates the wall-clock budget elapsed; treated
	// identically to ErrCancelled by the Driver (spec: Timeout => Cancelled).
	ErrTimeout = errors.New("netmodel: run timed out")

	// ErrInternal indicates an invariant was violated during evaluation or
	// matrix construction. Always wrapped with the invariant's name.
	ErrInternal = errors.New("netmodel: internal invariant violated")
)
