package optimizer

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxConcurrentRuns mirrors the originating platform's
// MAX_CONCURRENT_OPTIMIZATIONS setting.
const DefaultMaxConcurrentRuns = 5

// DefaultRunTimeout mirrors the originating platform's OPTIMIZATION_TIMEOUT
// setting, in seconds.
const DefaultRunTimeout = 900 * time.Second

// DefaultMatrixParallelism is the bound on concurrent routing calls used
// when building a run's distance/time matrices.
const DefaultMatrixParallelism = 8

// DefaultProgressEvery is the maximum number of generations between
// progress observer notifications during evolution.
const DefaultProgressEvery = 10

// DefaultPopulationParallelism is the bound on concurrent goroutines used
// for per-solution evaluation and per-pair crossover/mutation during the
// NSGA-II generation loop.
const DefaultPopulationParallelism = 8

// config holds a Driver's tunables, set via Option.
type config struct {
	maxConcurrentRuns     int
	runTimeout            time.Duration
	matrixParallelism     int
	populationParallelism int
	progressEvery         int
	logger                zerolog.Logger
}

func defaultConfig() config {
	return config{
		maxConcurrentRuns:     DefaultMaxConcurrentRuns,
		runTimeout:            DefaultRunTimeout,
		matrixParallelism:     DefaultMatrixParallelism,
		populationParallelism: DefaultPopulationParallelism,
		progressEvery:         DefaultProgressEvery,
		logger:                zerolog.Nop(),
	}
}

// Option mutates a Driver's configuration, following the functional-option
// pattern used throughout this module (netmodel.AlgorithmOption).
type Option func(*config)

// WithMaxConcurrentRuns overrides the admission gate's capacity.
func WithMaxConcurrentRuns(n int) Option {
	return func(c *config) { c.maxConcurrentRuns = n }
}

// WithRunTimeout overrides the wall-clock budget after which a run is
// treated as Cancelled.
func WithRunTimeout(d time.Duration) Option {
	return func(c *config) { c.runTimeout = d }
}

// WithMatrixParallelism overrides the routing fan-out width used while
// building a run's distance/time matrices.
func WithMatrixParallelism(n int) Option {
	return func(c *config) { c.matrixParallelism = n }
}

// WithProgressEvery overrides how many generations elapse between progress
// observer notifications during evolution.
func WithProgressEvery(n int) Option {
	return func(c *config) { c.progressEvery = n }
}

// WithPopulationParallelism overrides the fan-out width used for
// per-solution evaluation and per-pair crossover/mutation within one
// generation.
func WithPopulationParallelism(n int) Option {
	return func(c *config) { c.populationParallelism = n }
}

// WithLogger attaches a logger; the zero value (zerolog.Nop()) discards
// all log output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}
