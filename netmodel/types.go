package netmodel

import "time"

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// TestCapability describes one laboratory's ability to run one test type.
type TestCapability struct {
	Available            bool
	MinutesPerTest       float64
	StaffRequired        int
	EquipmentUtilization float64
	CostPerTest          float64
	QualityScore float64 // in [0,1]
}

// OperationalWindow is an open/close pair expressed in minutes-of-day
// ([0,1440)); Open==Close means the laboratory has zero open time.
type OperationalWindow struct {
	OpenMinute  int
	CloseMinute int
}

// OpenMinutes returns the number of minutes the window is open per day.
func (w OperationalWindow) OpenMinutes() int {
	if w.CloseMinute <= w.OpenMinute {
		return 0
	}
	return w.CloseMinute - w.OpenMinute
}

// Laboratory is a read-only snapshot of one laboratory for the duration of
// a run. TestTypes maps a test-type identifier to that lab's capability
// entry for it; an absent key means "not capable" -- resolved once into a
// dense table by netmodel.BuildCapabilityTable rather than consulted by
// map lookup in the evaluator hot path.
type Laboratory struct {
	ID               string
	Location         Coordinate
	MaxTestsPerDay   int
	MaxTestsPerMonth int
	StaffCount       int
	EquipmentCount   int
	UtilizationFactor float64
	TestTypes        map[string]TestCapability
	// OperationalHours maps weekday to the lab's open window that day.
	// A nil map means "always open" -- operational-hours enforcement is
	// skipped for this lab.
	OperationalHours map[time.Weekday]OperationalWindow
}

// ServiceArea is a read-only snapshot of one geographic demand origin.
type ServiceArea struct {
	ID               string
	Location         Coordinate
	Population       int
	PriorityLevel    int // 1..5
	AccessibilityIndex float64 // [0,1]
}

// TestDemand is one (area, test-type) workload requirement.
type TestDemand struct {
	AreaID        string
	TestType      string
	Count         int
	PriorityLevel int // 1..5
	Urgency       string
	SeasonalFactor float64
	// DemandDate is consulted only when Constraints.EnforceOperationalHours
	// is set; the zero value skips operational-hours enforcement for this
	// demand.
	DemandDate time.Time
}

// Weights are the five non-negative objective weights; they must sum to
// 1.0 within WeightsSumTolerance.
type Weights struct {
	Distance     float64
	Time         float64
	Cost         float64
	Utilization  float64
	Accessibility float64
}

// WeightsSumTolerance is the allowed deviation of a Weights sum from 1.0.
const WeightsSumTolerance = 1e-3

// Sum returns the sum of the five weight components.
func (w Weights) Sum() float64 {
	return w.Distance + w.Time + w.Cost + w.Utilization + w.Accessibility
}

// Constraints are the optional feasibility limits applied to every
// allocation edge and laboratory.
type Constraints struct {
	MaxDistanceKM           float64 // 0 means unset
	MaxTravelTimeMinutes    float64 // 0 means unset
	MinUtilizationRate      float64
	MaxUtilizationRate      float64 // 0 means unset (unbounded)
	EnforceOperationalHours bool
	QualityThreshold        float64 // [0,1]
}

// HasMaxDistance reports whether a maximum distance edge constraint is set.
func (c Constraints) HasMaxDistance() bool { return c.MaxDistanceKM > 0 }

// HasMaxTravelTime reports whether a maximum travel time edge constraint is set.
func (c Constraints) HasMaxTravelTime() bool { return c.MaxTravelTimeMinutes > 0 }

// HasMaxUtilization reports whether a laboratory utilization ceiling is set.
func (c Constraints) HasMaxUtilization() bool { return c.MaxUtilizationRate > 0 }

// AlgorithmParams controls the NSGA-II driver. Defaults mirror the
// originating platform's OPTIMIZATION_* settings.
type AlgorithmParams struct {
	PopulationSize        int
	MaxGenerations        int
	CrossoverRate         float64
	MutationRate          float64
	ConvergenceThreshold  float64
	Seed                  int64
}

// DefaultAlgorithmParams returns the platform's documented defaults:
// population 200, 500 generations, crossover 0.9, mutation 0.05,
// convergence threshold 1e-3.
func DefaultAlgorithmParams() AlgorithmParams {
	return AlgorithmParams{
		PopulationSize:       200,
		MaxGenerations:       500,
		CrossoverRate:        0.9,
		MutationRate:         0.05,
		ConvergenceThreshold: 1e-3,
		Seed:                 1,
	}
}

// AlgorithmOption mutates an AlgorithmParams value, following the
// functional-option pattern used throughout this module.
type AlgorithmOption func(*AlgorithmParams)

// WithPopulationSize overrides the population size.
func WithPopulationSize(n int) AlgorithmOption {
	return func(p *AlgorithmParams) { p.PopulationSize = n }
}

// WithMaxGenerations overrides the generation cap.
func WithMaxGenerations(n int) AlgorithmOption {
	return func(p *AlgorithmParams) { p.MaxGenerations = n }
}

// WithSeed overrides the RNG seed.
func WithSeed(seed int64) AlgorithmOption {
	return func(p *AlgorithmParams) { p.Seed = seed }
}

// WithCrossoverRate overrides the crossover rate.
func WithCrossoverRate(rate float64) AlgorithmOption {
	return func(p *AlgorithmParams) { p.CrossoverRate = rate }
}

// WithMutationRate overrides the mutation rate.
func WithMutationRate(rate float64) AlgorithmOption {
	return func(p *AlgorithmParams) { p.MutationRate = rate }
}

// WithConvergenceThreshold overrides the convergence threshold.
func WithConvergenceThreshold(t float64) AlgorithmOption {
	return func(p *AlgorithmParams) { p.ConvergenceThreshold = t }
}

// NewAlgorithmParams builds an AlgorithmParams from DefaultAlgorithmParams
// with opts applied in order.
func NewAlgorithmParams(opts ...AlgorithmOption) AlgorithmParams {
	p := DefaultAlgorithmParams()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Status is one state in the run's Pending -> Running -> {Completed,
// Failed, Cancelled} state machine.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// RunInput is the optimizer's sole external input.
type RunInput struct {
	Laboratories []Laboratory
	ServiceAreas []ServiceArea
	TestDemands  []TestDemand
	Weights      Weights
	Constraints  Constraints
	Algorithm    AlgorithmParams
	ScenarioID   string
	// RequestedAt is used only for log correlation; never consulted by the
	// optimizer's own logic.
	RequestedAt time.Time
}

// Statistics summarizes one completed, failed, or cancelled run.
type Statistics struct {
	Generations int
	WallTime    time.Duration
	Progress    float64
}

// RunResult is the optimizer's sole external output. ErrorKind and
// ErrorMessage carry the failure kind and detail when Status is Failed;
// on Cancelled they carry the cancellation cause (Cancelled or Timeout).
type RunResult struct {
	Status       Status
	Solution     Solution
	ParetoFront  []Solution
	Statistics   Statistics
	ErrorKind    string
	ErrorMessage string
}
