// Package objective computes the five raw objective scalars for a
// solution's allocation -- distance, time, cost, utilization,
// accessibility -- and their normalized, weighted-fitness combination.
// Evaluation never mutates its inputs; it reads the run's D/T matrices,
// laboratories, and service areas and returns a netmodel.Objectives value.
package objective
