package feasibility

import (
	"sort"

	"github.com/cdst-net/netopt/netmodel"
)

// capacityState tracks the minutes and test counts committed to each
// laboratory while Repair redistributes edges. testCount serves both the
// daily and monthly count caps: an allocation is one day's workload, so
// the per-lab total is checked against both limits.
type capacityState struct {
	dailyMinutes map[string]float64
	testCount    map[string]int
}

func newCapacityState() *capacityState {
	return &capacityState{dailyMinutes: make(map[string]float64), testCount: make(map[string]int)}
}

func (s *capacityState) commit(labID string, count int, minutesPerTest float64) {
	s.dailyMinutes[labID] += float64(count) * minutesPerTest
	s.testCount[labID] += count
}

// headroomCount returns how many additional testType tests candIdx can
// absorb before breaching its daily or monthly capacity, given state.
func (c *Checker) headroomCount(candIdx int, testType string, state *capacityState) int {
	cap, ok := c.Capability.Get(candIdx, testType)
	if !ok || !cap.Available {
		return 0
	}
	lab := c.Indices.Labs[candIdx]
	util := lab.UtilizationFactor
	if util <= 0 {
		util = 1
	}
	threshold := 60 * float64(c.openMinutes(lab)) * util
	remainMinutes := threshold - state.dailyMinutes[lab.ID]
	if remainMinutes <= 0 {
		return 0
	}
	headroom := maxInt
	if cap.MinutesPerTest > 0 {
		headroom = int(remainMinutes / cap.MinutesPerTest)
	}
	if lab.MaxTestsPerDay > 0 {
		remain := lab.MaxTestsPerDay - state.testCount[lab.ID]
		if remain <= 0 {
			return 0
		}
		if remain < headroom {
			headroom = remain
		}
	}
	if lab.MaxTestsPerMonth > 0 {
		remain := lab.MaxTestsPerMonth - state.testCount[lab.ID]
		if remain <= 0 {
			return 0
		}
		if remain < headroom {
			headroom = remain
		}
	}
	return headroom
}

const maxInt = int(^uint(0) >> 1)

// Repair returns a copy of alloc with capability, reachability, and
// capacity violations reassigned to the nearest eligible laboratory with
// remaining headroom. Edges that cannot be fully relocated are left in
// place (preserving demand conservation) and reported as soft violations.
func (c *Checker) Repair(alloc netmodel.Allocation) (netmodel.Allocation, []netmodel.SoftViolation) {
	working := alloc.Clone()
	var soft []netmodel.SoftViolation

	edges := working.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Key.AreaID != edges[j].Key.AreaID {
			return edges[i].Key.AreaID < edges[j].Key.AreaID
		}
		if edges[i].Key.TestType != edges[j].Key.TestType {
			return edges[i].Key.TestType < edges[j].Key.TestType
		}
		return edges[i].LabID < edges[j].LabID
	})

	state := newCapacityState()
	var invalid []netmodel.Edge
	for _, e := range edges {
		demand, ok := c.demandByKey[e.Key]
		if !ok {
			continue
		}
		areaIdx, ok := c.Indices.AreaIndex[demand.AreaID]
		if !ok {
			continue
		}
		labIdx, ok := c.Indices.LabIndex[e.LabID]
		if !ok {
			continue
		}
		if c.eligible(areaIdx, labIdx, demand) {
			if cap, ok := c.Capability.Get(labIdx, demand.TestType); ok {
				state.commit(e.LabID, e.Count, cap.MinutesPerTest)
			}
			continue
		}
		invalid = append(invalid, e)
	}

	for _, e := range invalid {
		demand := c.demandByKey[e.Key]
		labs := working[e.Key]
		labs[e.LabID] -= e.Count
		if labs[e.LabID] <= 0 {
			delete(labs, e.LabID)
		}

		remaining := e.Count
		for _, candIdx := range c.EligibleLabs(demand) {
			cand := c.Indices.Labs[candIdx]
			if cand.ID == e.LabID {
				continue
			}
			headroom := c.headroomCount(candIdx, demand.TestType, state)
			if headroom <= 0 {
				continue
			}
			move := remaining
			if headroom < move {
				move = headroom
			}
			working.Add(e.Key, cand.ID, move)
			cap, _ := c.Capability.Get(candIdx, demand.TestType)
			state.commit(cand.ID, move, cap.MinutesPerTest)
			remaining -= move
			if remaining == 0 {
				break
			}
		}
		if remaining > 0 {
			working.Add(e.Key, e.LabID, remaining)
			soft = append(soft, netmodel.SoftViolation{
				Key: e.Key, LabID: e.LabID,
				Reason: "no eligible laboratory has capacity for this test type",
			})
		}
	}

	soft = append(soft, c.repairCapacityOverflow(working, state)...)
	soft = append(soft, c.utilizationSoftViolations(working)...)
	return working, soft
}

// utilizationSoftViolations reports laboratories whose resulting
// utilization falls outside the configured min/max utilization rates.
// Utilization preferences never force reassignment; they only penalize
// the solution in tournament tie-breaking.
func (c *Checker) utilizationSoftViolations(alloc netmodel.Allocation) []netmodel.SoftViolation {
	if c.Constraints.MinUtilizationRate <= 0 && !c.Constraints.HasMaxUtilization() {
		return nil
	}

	counts := make(map[string]int, len(c.Indices.Labs))
	for _, e := range alloc.Edges() {
		counts[e.LabID] += e.Count
	}

	var soft []netmodel.SoftViolation
	for _, lab := range c.Indices.Labs {
		if lab.MaxTestsPerDay <= 0 {
			continue
		}
		ratio := float64(counts[lab.ID]) / float64(lab.MaxTestsPerDay)
		if c.Constraints.HasMaxUtilization() && ratio > c.Constraints.MaxUtilizationRate {
			soft = append(soft, netmodel.SoftViolation{LabID: lab.ID, Reason: "utilization above configured maximum"})
		}
		if c.Constraints.MinUtilizationRate > 0 && counts[lab.ID] > 0 && ratio < c.Constraints.MinUtilizationRate {
			soft = append(soft, netmodel.SoftViolation{LabID: lab.ID, Reason: "utilization below configured minimum"})
		}
	}
	return soft
}

// repairCapacityOverflow moves excess load off laboratories that exceed
// their daily or monthly capacity after the eligibility repair pass,
// reporting any excess that could not be relocated.
func (c *Checker) repairCapacityOverflow(working netmodel.Allocation, state *capacityState) []netmodel.SoftViolation {
	var soft []netmodel.SoftViolation

	for _, lab := range c.Indices.Labs {
		util := lab.UtilizationFactor
		if util <= 0 {
			util = 1
		}
		threshold := 60 * float64(c.openMinutes(lab)) * util
		excessMinutes := state.dailyMinutes[lab.ID] - threshold
		excessCount := 0
		if lab.MaxTestsPerDay > 0 {
			if over := state.testCount[lab.ID] - lab.MaxTestsPerDay; over > excessCount {
				excessCount = over
			}
		}
		if lab.MaxTestsPerMonth > 0 {
			if over := state.testCount[lab.ID] - lab.MaxTestsPerMonth; over > excessCount {
				excessCount = over
			}
		}
		if excessMinutes <= 0 && excessCount <= 0 {
			continue
		}

		edges := c.labEdges(working, lab.ID)
		for _, e := range edges {
			if excessMinutes <= 0 && excessCount <= 0 {
				break
			}
			demand, ok := c.demandByKey[e.Key]
			if !ok {
				continue
			}
			cap, ok := c.Capability.Get(c.Indices.LabIndex[lab.ID], demand.TestType)
			if !ok {
				continue
			}
			needByMinutes := 0
			if cap.MinutesPerTest > 0 && excessMinutes > 0 {
				needByMinutes = int(excessMinutes/cap.MinutesPerTest) + 1
			}
			need := needByMinutes
			if excessCount > need {
				need = excessCount
			}
			if need > e.Count {
				need = e.Count
			}
			if need <= 0 {
				continue
			}

			moved := 0
			for _, candIdx := range c.EligibleLabs(demand) {
				cand := c.Indices.Labs[candIdx]
				if cand.ID == lab.ID {
					continue
				}
				headroom := c.headroomCount(candIdx, demand.TestType, state)
				if headroom <= 0 {
					continue
				}
				move := need - moved
				if headroom < move {
					move = headroom
				}
				working[e.Key][lab.ID] -= move
				working.Add(e.Key, cand.ID, move)
				candCap, _ := c.Capability.Get(candIdx, demand.TestType)
				state.commit(cand.ID, move, candCap.MinutesPerTest)
				state.dailyMinutes[lab.ID] -= float64(move) * cap.MinutesPerTest
				state.testCount[lab.ID] -= move
				excessMinutes -= float64(move) * cap.MinutesPerTest
				excessCount -= move
				moved += move
				if moved >= need {
					break
				}
			}
			if labs := working[e.Key]; labs[lab.ID] <= 0 {
				delete(labs, lab.ID)
			}
		}

		if excessMinutes > 0 {
			soft = append(soft, netmodel.SoftViolation{LabID: lab.ID, Reason: "daily capacity exceeded after repair"})
		}
		if excessCount > 0 {
			soft = append(soft, netmodel.SoftViolation{LabID: lab.ID, Reason: "test count cap exceeded after repair"})
		}
	}

	return soft
}

// labEdges returns the edges currently assigned to labID, sorted
// deterministically by demand key.
func (c *Checker) labEdges(alloc netmodel.Allocation, labID string) []netmodel.Edge {
	var out []netmodel.Edge
	for _, e := range alloc.Edges() {
		if e.LabID == labID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.AreaID != out[j].Key.AreaID {
			return out[i].Key.AreaID < out[j].Key.AreaID
		}
		return out[i].Key.TestType < out[j].Key.TestType
	})
	return out
}
