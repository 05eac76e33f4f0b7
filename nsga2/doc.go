// Package nsga2 implements the evolutionary core: Pareto dominance,
// non-dominated sorting, crowding distance, tournament selection, uniform
// crossover, local mutation, and elitist µ+λ replacement. It operates
// purely on netmodel.Solution values; it knows nothing about matrices,
// routing, or feasibility beyond what a feasibility.Checker exposes for
// mutation's alternative-lab lookup.
package nsga2
