package feasibility

import (
	"sort"

	"github.com/cdst-net/netopt/netmodel"
)

// minutesPerDay is the number of minutes in a calendar day, used as the
// default "always open" window for a laboratory with no declared
// operational hours.
const minutesPerDay = 24 * 60

// Checker validates and repairs allocations against the laboratory
// network's capability, reachability, and capacity constraints. It holds
// no mutable state; all inputs are read-only snapshots for the duration
// of a run.
type Checker struct {
	Indices     netmodel.Indices
	Capability  *netmodel.CapabilityTable
	D, T        *netmodel.Dense
	Constraints netmodel.Constraints
	Demands     []netmodel.TestDemand

	demandByKey map[netmodel.DemandKey]netmodel.TestDemand
}

// NewChecker builds a Checker from the run's laboratories, service areas,
// demands, matrices, and constraints.
func NewChecker(labs []netmodel.Laboratory, areas []netmodel.ServiceArea, demands []netmodel.TestDemand, d, t *netmodel.Dense, constraints netmodel.Constraints) *Checker {
	byKey := make(map[netmodel.DemandKey]netmodel.TestDemand, len(demands))
	for _, dem := range demands {
		byKey[netmodel.DemandKey{AreaID: dem.AreaID, TestType: dem.TestType}] = dem
	}
	return &Checker{
		Indices:     netmodel.BuildIndices(labs, areas),
		Capability:  netmodel.BuildCapabilityTable(labs, demands),
		D:           d,
		T:           t,
		Constraints: constraints,
		Demands:     demands,
		demandByKey: byKey,
	}
}

// openMinutes returns the representative daily open window for lab,
// defaulting to a full 24h day when no operational hours are declared.
// When hours are declared, the tightest (minimum) weekday window is used
// so a single run-wide daily-capacity check never overestimates capacity.
func (c *Checker) openMinutes(lab netmodel.Laboratory) int {
	if len(lab.OperationalHours) == 0 {
		return minutesPerDay
	}
	min := minutesPerDay
	for _, w := range lab.OperationalHours {
		if om := w.OpenMinutes(); om < min {
			min = om
		}
	}
	return min
}

// isCapable reports whether lab labIdx supports testType at or above the
// quality threshold and is marked available.
func (c *Checker) isCapable(labIdx int, testType string) bool {
	cap, ok := c.Capability.Get(labIdx, testType)
	if !ok || !cap.Available {
		return false
	}
	return cap.QualityScore >= c.Constraints.QualityThreshold
}

// isReachable reports whether the (area,lab) edge satisfies any configured
// maximum distance/time constraints.
func (c *Checker) isReachable(areaIdx, labIdx int) bool {
	if c.Constraints.HasMaxDistance() {
		if d, err := c.D.At(areaIdx, labIdx); err != nil || d > c.Constraints.MaxDistanceKM {
			return false
		}
	}
	if c.Constraints.HasMaxTravelTime() {
		if t, err := c.T.At(areaIdx, labIdx); err != nil || t > c.Constraints.MaxTravelTimeMinutes {
			return false
		}
	}
	return true
}

// isOpenForDemand reports whether lab is open on demand's date, when
// operational-hours enforcement is requested: enforced whenever
// Constraints.EnforceOperationalHours is true and the demand carries a
// non-zero date; otherwise this check is skipped.
func (c *Checker) isOpenForDemand(lab netmodel.Laboratory, demand netmodel.TestDemand) bool {
	if !c.Constraints.EnforceOperationalHours || demand.DemandDate.IsZero() {
		return true
	}
	if len(lab.OperationalHours) == 0 {
		return true
	}
	window, ok := lab.OperationalHours[demand.DemandDate.Weekday()]
	if !ok {
		return true
	}
	return window.OpenMinutes() > 0
}

// eligible reports whether lab labIdx is capability-, reachability-, and
// operational-hours-eligible for demand originating from area areaIdx.
func (c *Checker) eligible(areaIdx, labIdx int, demand netmodel.TestDemand) bool {
	lab := c.Indices.Labs[labIdx]
	return c.isCapable(labIdx, demand.TestType) &&
		c.isReachable(areaIdx, labIdx) &&
		c.isOpenForDemand(lab, demand)
}

// EligibleLabs returns the indices of laboratories eligible for demand,
// sorted nearest-first by distance from the demand's area.
func (c *Checker) EligibleLabs(demand netmodel.TestDemand) []int {
	areaIdx, ok := c.Indices.AreaIndex[demand.AreaID]
	if !ok {
		return nil
	}
	var out []int
	for labIdx := range c.Indices.Labs {
		if c.eligible(areaIdx, labIdx, demand) {
			out = append(out, labIdx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, _ := c.D.At(areaIdx, out[i])
		dj, _ := c.D.At(areaIdx, out[j])
		return di < dj
	})
	return out
}

// DemandForKey returns the demand registered for key, if any.
func (c *Checker) DemandForKey(key netmodel.DemandKey) (netmodel.TestDemand, bool) {
	d, ok := c.demandByKey[key]
	return d, ok
}

// HasEligibleLab reports whether any laboratory is eligible for demand.
func (c *Checker) HasEligibleLab(demand netmodel.TestDemand) bool {
	areaIdx, ok := c.Indices.AreaIndex[demand.AreaID]
	if !ok {
		return false
	}
	for labIdx := range c.Indices.Labs {
		if c.eligible(areaIdx, labIdx, demand) {
			return true
		}
	}
	return false
}
