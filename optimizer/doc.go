// Package optimizer is the run orchestrator: it owns the
// Pending->Running->{Completed,Failed,Cancelled} state machine, the
// progress counter, the admission gate bounding concurrent runs, and the
// generation loop that drives package nsga2 to termination. It is the
// only package that touches routing, matrix construction, feasibility,
// seeding, objective evaluation, and the evolutionary core together.
package optimizer
