// Command netopt runs the laboratory network allocation optimizer against
// a YAML fixture scenario and prints the size of the resulting Pareto front
// and the best weighted-fitness allocation. It is demonstration tooling,
// standing in for the surrounding HTTP service that is out of scope for
// this module.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cdst-net/netopt/netmodel"
	"github.com/cdst-net/netopt/optimizer"
	"github.com/cdst-net/netopt/routing"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var scenarioPath string
	var timeout time.Duration
	var logLevel string

	cmd := &cobra.Command{
		Use:   "netopt",
		Short: "Run the laboratory network allocation optimizer against a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, scenarioPath, timeout, logLevel)
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to a YAML scenario file (required)")
	cmd.Flags().DurationVar(&timeout, "timeout", optimizer.DefaultRunTimeout, "wall-clock budget for the run")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runScenario(cmd *cobra.Command, scenarioPath string, timeout time.Duration, logLevel string) error {
	logger := newLogger(logLevel)

	input, err := loadScenario(scenarioPath)
	if err != nil {
		return fmt.Errorf("netopt: %w", err)
	}

	driver := optimizer.NewDriver(
		routing.NewCachedAdapter(&routing.StaticAdapter{}, routing.NewCache(10000, time.Hour)),
		optimizer.WithRunTimeout(timeout),
		optimizer.WithLogger(logger),
	)

	observer := func(runID string, status netmodel.Status, progress float64, generation int, bestFitness float64) {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] status=%s progress=%.2f generation=%d best_fitness=%.4f\n",
			runID, status, progress, generation, bestFitness)
	}

	result := driver.Run(context.Background(), input, observer)
	printResult(cmd, result)

	if result.Status == netmodel.StatusFailed {
		return fmt.Errorf("netopt: run failed: %s: %s", result.ErrorKind, result.ErrorMessage)
	}
	return nil
}

func printResult(cmd *cobra.Command, result netmodel.RunResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nstatus: %s\n", result.Status)
	fmt.Fprintf(out, "generations: %d  wall_time: %s  progress: %.2f\n",
		result.Statistics.Generations, result.Statistics.WallTime, result.Statistics.Progress)

	if result.Status == netmodel.StatusFailed {
		return
	}

	fmt.Fprintf(out, "pareto_front_size: %d\n", len(result.ParetoFront))
	fmt.Fprintf(out, "best solution (weighted_fitness=%.4f):\n", result.Solution.WeightedFitness)
	fmt.Fprintf(out, "  distance=%.2f time=%.2f cost=%.2f utilization=%.3f accessibility=%.3f\n",
		result.Solution.Objectives.Distance, result.Solution.Objectives.Time, result.Solution.Objectives.Cost,
		result.Solution.Objectives.Utilization, result.Solution.Objectives.Accessibility)

	for _, edge := range result.Solution.Allocation.Edges() {
		fmt.Fprintf(out, "  %s/%s -> %s: %d\n", edge.Key.AreaID, edge.Key.TestType, edge.LabID, edge.Count)
	}
}

func newLogger(level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	switch level {
	case "debug":
		return logger.Level(zerolog.DebugLevel)
	case "warn":
		return logger.Level(zerolog.WarnLevel)
	case "error":
		return logger.Level(zerolog.ErrorLevel)
	default:
		return logger.Level(zerolog.InfoLevel)
	}
}
