package feasibility

import (
	"fmt"

	"github.com/cdst-net/netopt/netmodel"
)

// Violations returns every constraint breach found in alloc: per-edge
// capability and reachability failures, per-laboratory daily and monthly
// capacity overruns, and demand-conservation mismatches. An empty result
// means alloc is fully feasible.
func (c *Checker) Violations(alloc netmodel.Allocation) []Violation {
	var out []Violation

	dailyLoad := make(map[string]float64, len(c.Indices.Labs))
	testTotal := make(map[string]int, len(c.Indices.Labs))

	for _, edge := range alloc.Edges() {
		demand, ok := c.demandByKey[edge.Key]
		if !ok {
			continue
		}
		areaIdx, ok := c.Indices.AreaIndex[demand.AreaID]
		if !ok {
			continue
		}
		labIdx, ok := c.Indices.LabIndex[edge.LabID]
		if !ok {
			continue
		}
		lab := c.Indices.Labs[labIdx]

		if !c.isCapable(labIdx, demand.TestType) {
			out = append(out, Violation{
				Kind: KindCapability, Key: edge.Key, LabID: edge.LabID,
				Detail: fmt.Sprintf("lab %s cannot perform test type %s at required quality", edge.LabID, demand.TestType),
			})
		} else if !c.isReachable(areaIdx, labIdx) {
			out = append(out, Violation{
				Kind: KindReachability, Key: edge.Key, LabID: edge.LabID,
				Detail: fmt.Sprintf("lab %s exceeds distance/time limits for area %s", edge.LabID, demand.AreaID),
			})
		} else if !c.isOpenForDemand(lab, demand) {
			out = append(out, Violation{
				Kind: KindReachability, Key: edge.Key, LabID: edge.LabID,
				Detail: fmt.Sprintf("lab %s is closed on the demand date", edge.LabID),
			})
		}

		if cap, ok := c.Capability.Get(labIdx, demand.TestType); ok {
			dailyLoad[edge.LabID] += float64(edge.Count) * cap.MinutesPerTest
		}
		testTotal[edge.LabID] += edge.Count
	}

	for _, lab := range c.Indices.Labs {
		util := lab.UtilizationFactor
		if util <= 0 {
			util = 1
		}
		openMin := c.openMinutes(lab)
		if load, ok := dailyLoad[lab.ID]; ok && openMin > 0 {
			ratio := load / (60 * float64(openMin) * util)
			if ratio > 1 {
				out = append(out, Violation{
					Kind: KindDailyCapacity, LabID: lab.ID,
					Detail: fmt.Sprintf("lab %s daily load ratio %.3f exceeds 1.0", lab.ID, ratio),
				})
			}
		}
		if lab.MaxTestsPerDay > 0 {
			if total, ok := testTotal[lab.ID]; ok && total > lab.MaxTestsPerDay {
				out = append(out, Violation{
					Kind: KindDailyCapacity, LabID: lab.ID,
					Detail: fmt.Sprintf("lab %s daily total %d exceeds cap %d", lab.ID, total, lab.MaxTestsPerDay),
				})
			}
		}
		if lab.MaxTestsPerMonth > 0 {
			if total, ok := testTotal[lab.ID]; ok && total > lab.MaxTestsPerMonth {
				out = append(out, Violation{
					Kind: KindMonthlyCapacity, LabID: lab.ID,
					Detail: fmt.Sprintf("lab %s monthly total %d exceeds cap %d", lab.ID, total, lab.MaxTestsPerMonth),
				})
			}
		}
	}

	for _, demand := range c.Demands {
		key := netmodel.DemandKey{AreaID: demand.AreaID, TestType: demand.TestType}
		if total := alloc.TotalFor(key); total != demand.Count {
			out = append(out, Violation{
				Kind: KindDemandConservation, Key: key,
				Detail: fmt.Sprintf("area %s test type %s: allocated %d, demand %d", demand.AreaID, demand.TestType, total, demand.Count),
			})
		}
	}

	return out
}
