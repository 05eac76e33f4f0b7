// Package seeding generates a population's initial solutions via three
// heuristics -- random, nearest, and hybrid (distance/utilization
// blended) -- splitting the population into thirds across them. Every
// seed is passed through a feasibility.Checker's repair step before being
// returned, and demand order within each seed is independently permuted
// per solution so repeated hybrid seeds diversify the pool.
package seeding
