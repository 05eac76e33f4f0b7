// Package feasibility validates a candidate Allocation against capability,
// reachability, daily and monthly capacity, and demand-conservation
// constraints, and repairs violations by reassigning offending tests to
// the nearest capable laboratory with remaining capacity. Violations that
// cannot be fully repaired are recorded as soft violations on the
// solution's metadata and penalize it only through tournament/crowding
// tie-breaking in package nsga2, never through the objective values
// themselves.
package feasibility
