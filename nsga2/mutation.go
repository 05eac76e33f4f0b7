package nsga2

import (
	"math/rand"
	"sort"

	"github.com/cdst-net/netopt/netmodel"

	"github.com/cdst-net/netopt/feasibility"
)

// Mutate returns sol unchanged with probability 1-rate. Otherwise it picks
// one random demand key currently present in sol's allocation, one random
// lab currently holding part of that key's count, and moves a random
// subcount (1..count) of that edge to a random alternative eligible lab.
// If the key's demand has no alternative eligible lab, Mutate is a no-op.
func Mutate(sol netmodel.Solution, checker *feasibility.Checker, rate float64, rng *rand.Rand) netmodel.Solution {
	if rng.Float64() >= rate || len(sol.Allocation) == 0 {
		return sol
	}

	child := sol.CloneForVariation()

	// keys and labIDs are sorted before indexing with rng.Intn: Go map
	// iteration order is unspecified, and which draw lands on which key/lab
	// must depend only on the run seed, never on iteration order, for
	// runs to be reproducible.
	keys := make([]netmodel.DemandKey, 0, len(child.Allocation))
	for k := range child.Allocation {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].AreaID != keys[j].AreaID {
			return keys[i].AreaID < keys[j].AreaID
		}
		return keys[i].TestType < keys[j].TestType
	})
	key := keys[rng.Intn(len(keys))]

	labs := child.Allocation[key]
	if len(labs) == 0 {
		return child
	}
	labIDs := make([]string, 0, len(labs))
	for lab := range labs {
		labIDs = append(labIDs, lab)
	}
	sort.Strings(labIDs)
	sourceLab := labIDs[rng.Intn(len(labIDs))]
	sourceCount := labs[sourceLab]
	if sourceCount <= 0 {
		return child
	}

	demand, ok := checker.DemandForKey(key)
	if !ok {
		return child
	}
	alternatives := altLabs(checker.EligibleLabs(demand), checker.Indices, sourceLab)
	if len(alternatives) == 0 {
		return child
	}
	destLab := alternatives[rng.Intn(len(alternatives))]

	moveCount := 1
	if sourceCount > 1 {
		moveCount = 1 + rng.Intn(sourceCount)
	}

	labs[sourceLab] -= moveCount
	if labs[sourceLab] <= 0 {
		delete(labs, sourceLab)
	}
	labs[destLab] += moveCount

	return child
}

// altLabs converts eligible lab indices into IDs, excluding exclude.
func altLabs(eligible []int, idx netmodel.Indices, exclude string) []string {
	out := make([]string, 0, len(eligible))
	for _, labIdx := range eligible {
		id := idx.Labs[labIdx].ID
		if id == exclude {
			continue
		}
		out = append(out, id)
	}
	return out
}
