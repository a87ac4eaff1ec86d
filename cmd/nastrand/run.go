package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daniacca/nastrand/internal/driver"
)

var runFlags struct {
	configPath string
	runs       int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one or more simulations to completion and print a trajectory summary",
	Long: `Loads a simulation config, drives --runs independent simulations to
completion (each with its own seeded random source, per config.seed plus
a per-run offset when --runs > 1), and prints a summary: terminal state
counts, and mean simulated time and step count across all runs.`,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.configPath, "config", "", "path to the simulation config YAML file (required)")
	f.IntVar(&runFlags.runs, "runs", 1, "number of independent simulations to run")
	_ = runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadAndResolveConfig(runFlags.configPath)
	if err != nil {
		return err
	}

	var outcomes []driver.Outcome
	for i := 0; i < runFlags.runs; i++ {
		runCfg := cfg
		if cfg.Seed != 0 {
			runCfg.Seed = cfg.Seed + int64(i)
		}
		outcome, err := runOnce(cmd.Context(), runCfg, log)
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		outcomes = append(outcomes, outcome)
	}

	printRunSummary(runFlags.configPath, outcomes)
	return nil
}

func runOnce(ctx context.Context, cfg driver.Config, log *Logger) (driver.Outcome, error) {
	em := cfg.BuildEnergyModel()
	ensemble, err := driver.BuildEnsemble(cfg, em)
	if err != nil {
		return driver.Outcome{}, fmt.Errorf("building ensemble: %w", err)
	}
	predicate := driver.BuildPredicate(cfg.StopConditions)

	run := driver.NewRun(ensemble, predicate, cfg, log)
	return run.RunToCompletion(ctx), nil
}

func printRunSummary(configPath string, outcomes []driver.Outcome) {
	stateCounts := make(map[driver.State]int)
	var totalSimTime float64
	var totalSteps int

	for _, o := range outcomes {
		stateCounts[o.State]++
		totalSimTime += o.SimTime
		totalSteps += o.Steps
	}

	n := len(outcomes)
	fmt.Printf("Simulation finished (config=%s, runs=%d)\n", configPath, n)
	fmt.Println("Terminal state counts:")
	for _, s := range []driver.State{driver.StateStopped, driver.StateExpired, driver.StateError} {
		if count := stateCounts[s]; count > 0 {
			fmt.Printf("  %s: %d\n", s, count)
		}
	}
	if n > 0 {
		fmt.Printf("Mean simulated time: %.6f\n", totalSimTime/float64(n))
		fmt.Printf("Mean steps: %.2f\n", float64(totalSteps)/float64(n))
	}
}

// loadAndResolveConfig loads, env-overrides, and validates a simulation
// config, returning the concrete *Logger it implies.
func loadAndResolveConfig(path string) (driver.Config, *Logger, error) {
	cfg, err := driver.LoadConfigFile(path)
	if err != nil {
		return driver.Config{}, nil, err
	}
	if err := driver.ApplyEnvOverrides(&cfg); err != nil {
		return driver.Config{}, nil, err
	}
	if err := driver.Validate(cfg); err != nil {
		return driver.Config{}, nil, err
	}
	return cfg, NewLogger(cfg.LogLevel), nil
}
