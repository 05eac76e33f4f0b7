package feasibility

import "github.com/cdst-net/netopt/netmodel"

// Kind categorizes a feasibility violation.
type Kind int

const (
	KindCapability Kind = iota
	KindReachability
	KindDailyCapacity
	KindMonthlyCapacity
	KindDemandConservation
)

func (k Kind) String() string {
	switch k {
	case KindCapability:
		return "capability"
	case KindReachability:
		return "reachability"
	case KindDailyCapacity:
		return "daily_capacity"
	case KindMonthlyCapacity:
		return "monthly_capacity"
	case KindDemandConservation:
		return "demand_conservation"
	default:
		return "unknown"
	}
}

// Violation is one constraint breach found by Checker.Violations.
type Violation struct {
	Kind   Kind
	Key    netmodel.DemandKey
	LabID  string
	Detail string
}
