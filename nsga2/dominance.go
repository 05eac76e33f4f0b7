package nsga2

import "github.com/cdst-net/netopt/netmodel"

// Dominates reports whether p Pareto-dominates q: converting the three
// minimized objectives to negated values, every component of p is >= the
// corresponding component of q and at least one is strictly greater.
func Dominates(p, q netmodel.Objectives) bool {
	pv := [5]float64{-p.Distance, -p.Time, -p.Cost, p.Utilization, p.Accessibility}
	qv := [5]float64{-q.Distance, -q.Time, -q.Cost, q.Utilization, q.Accessibility}

	betterInOne := false
	for i := range pv {
		if pv[i] < qv[i] {
			return false
		}
		if pv[i] > qv[i] {
			betterInOne = true
		}
	}
	return betterInOne
}
