package seeding

import (
	"math/rand"
	"sort"

	"github.com/cdst-net/netopt/feasibility"
	"github.com/cdst-net/netopt/netmodel"
)

// hybridDistanceWeight and hybridLoadWeight are the pinned coefficients of
// the hybrid heuristic's blended score. The distance term is in
// kilometres and the load term is a percentage point, a unit mismatch
// carried over verbatim from the originating platform's contract.
const (
	hybridDistanceWeight = 0.7
	hybridLoadWeight     = 0.3
	hybridLoadScale      = 100.0
)

// Seeder builds a population's initial solutions using the random,
// nearest, and hybrid heuristics, repairing every seed through checker
// before returning it.
type Seeder struct {
	Indices netmodel.Indices
	Checker *feasibility.Checker
	Demands []netmodel.TestDemand
}

// NewSeeder builds a Seeder over the run's laboratories, service areas,
// demands, and feasibility checker.
func NewSeeder(labs []netmodel.Laboratory, areas []netmodel.ServiceArea, demands []netmodel.TestDemand, checker *feasibility.Checker) *Seeder {
	return &Seeder{
		Indices: netmodel.BuildIndices(labs, areas),
		Checker: checker,
		Demands: demands,
	}
}

// Seed returns a population of size populationSize, split into thirds
// across the random, nearest, and hybrid heuristics. Each solution's
// demand order is permuted by its own RNG stream (derived from runSeed
// and its population index), and every seed is repaired before being
// added to the population.
func (s *Seeder) Seed(populationSize int, runSeed int64) []netmodel.Solution {
	population := make([]netmodel.Solution, 0, populationSize)
	third := populationSize / 3

	for i := 0; i < populationSize; i++ {
		rng := netmodel.RNGForStream(runSeed, uint64(i))
		order := netmodel.PermRange(len(s.Demands), rng)

		var alloc netmodel.Allocation
		switch {
		case i < third:
			alloc = s.randomSeed(order, rng)
		case i < 2*third:
			alloc = s.nearestSeed(order)
		default:
			alloc = s.hybridSeed(order)
		}

		repaired, soft := s.Checker.Repair(alloc)
		sol := netmodel.NewSolution(repaired)
		sol.SoftViolations = soft
		population = append(population, sol)
	}

	return population
}

func (s *Seeder) randomSeed(order []int, rng *rand.Rand) netmodel.Allocation {
	alloc := netmodel.NewAllocation()
	for _, idx := range order {
		demand := s.Demands[idx]
		eligible := s.Checker.EligibleLabs(demand)
		var labID string
		if len(eligible) == 0 {
			labID = s.fallbackLab()
		} else {
			labID = s.Indices.Labs[eligible[rng.Intn(len(eligible))]].ID
		}
		if labID == "" {
			continue
		}
		alloc.Add(netmodel.DemandKey{AreaID: demand.AreaID, TestType: demand.TestType}, labID, demand.Count)
	}
	return alloc
}

func (s *Seeder) nearestSeed(order []int) netmodel.Allocation {
	alloc := netmodel.NewAllocation()
	for _, idx := range order {
		demand := s.Demands[idx]
		eligible := s.Checker.EligibleLabs(demand)
		labID := s.fallbackLab()
		if len(eligible) > 0 {
			labID = s.Indices.Labs[eligible[0]].ID // nearest-first
		}
		if labID == "" {
			continue
		}
		alloc.Add(netmodel.DemandKey{AreaID: demand.AreaID, TestType: demand.TestType}, labID, demand.Count)
	}
	return alloc
}

func (s *Seeder) hybridSeed(order []int) netmodel.Allocation {
	alloc := netmodel.NewAllocation()
	currentLoad := make(map[string]int, len(s.Indices.Labs))

	for _, idx := range order {
		demand := s.Demands[idx]
		eligible := s.Checker.EligibleLabs(demand)
		labID := s.fallbackLab()
		if len(eligible) > 0 {
			areaIdx := s.Indices.AreaIndex[demand.AreaID]
			bestScore := 0.0
			bestSet := false
			for _, labIdx := range eligible {
				lab := s.Indices.Labs[labIdx]
				dist, _ := s.Checker.D.At(areaIdx, labIdx)
				loadRatio := 0.0
				if lab.MaxTestsPerDay > 0 {
					loadRatio = float64(currentLoad[lab.ID]) / float64(lab.MaxTestsPerDay)
				}
				score := hybridDistanceWeight*dist + hybridLoadWeight*hybridLoadScale*loadRatio
				if !bestSet || score < bestScore {
					bestScore = score
					labID = lab.ID
					bestSet = true
				}
			}
		}
		if labID == "" {
			continue
		}
		alloc.Add(netmodel.DemandKey{AreaID: demand.AreaID, TestType: demand.TestType}, labID, demand.Count)
		currentLoad[labID] += demand.Count
	}
	return alloc
}

// fallbackLab returns the lowest-ID laboratory in the network, used when a
// demand has no eligible lab so the seed still assigns somewhere and
// demand conservation holds structurally; the feasibility checker will
// surface the resulting capability violation rather than silently drop
// the demand.
func (s *Seeder) fallbackLab() string {
	if len(s.Indices.Labs) == 0 {
		return ""
	}
	ids := make([]string, len(s.Indices.Labs))
	for i, lab := range s.Indices.Labs {
		ids[i] = lab.ID
	}
	sort.Strings(ids)
	return ids[0]
}
