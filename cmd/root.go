package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LearnLean/pflow/sim"
	"github.com/LearnLean/pflow/sim/flow"
	"github.com/LearnLean/pflow/sim/simlog"
)

var (
	// CLI flags for the kernel run
	seed     int64   // Seed for all stochastic sampling
	duration float64 // Simulated time units to run for
	accuracy float64 // Heartbeat step
	noFinish bool    // Leave activities registered so the run can be resumed
	logLevel string  // Log verbosity level

	// CLI flags for the production line
	items           int     // Number of items the source emits
	arrivalInterval float64 // Fixed inter-arrival time
	serviceMean     float64 // Mean station service time
	serviceStdev    float64 // Service time standard deviation
	mtbf            float64 // Mean time between induced failures (0 disables)
	mttr            float64 // Mean repair time
	stations        int     // Number of serial stations
	bufferCap       int     // Capacity of each inter-station buffer
	poll            float64 // Buffer retry interval

	// CLI flags for scenario presets and outputs
	scenarioName string // Preset name inside the scenario file
	scenarioFile string // YAML file with scenario presets
	csvPath      string // Write the state-change log as CSV
	dbPath       string // Append the state-change log to a SQLite database
	runID        string // Run tag used in the SQLite records table
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pflow",
	Short: "Discrete-event simulator for production flow",
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a production-line simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := flow.Config{
			Items:           items,
			ArrivalInterval: arrivalInterval,
			ServiceMean:     serviceMean,
			ServiceStdDev:   serviceStdev,
			MTBF:            mtbf,
			MTTR:            mttr,
			Stations:        stations,
			BufferCap:       bufferCap,
			Poll:            poll,
			Seed:            seed,
		}
		if scenarioName != "" {
			preset := GetScenario(scenarioFile, scenarioName)
			if preset == nil {
				logrus.Fatalf("Scenario %q not found in %s", scenarioName, scenarioFile)
			}
			preset.Seed = seed
			cfg = *preset
		}

		logrus.Infof("Starting simulation: seed=%d, duration=%g, stations=%d, items=%d",
			seed, duration, cfg.Stations, cfg.Items)

		clk := sim.NewClock()
		line := flow.Build(clk, cfg)
		summary := line.Run(duration, !noFinish, accuracy)
		summary.Print()

		if csvPath != "" {
			if err := simlog.SaveCSV(line.Log, csvPath); err != nil {
				logrus.Fatalf("unable to write CSV log: %v", err)
			}
			logrus.Infof("Wrote %d records to %s", line.Log.Len(), csvPath)
		}
		if dbPath != "" {
			tag := runID
			if tag == "" {
				tag = fmt.Sprintf("seed_%d", seed)
			}
			if err := simlog.SaveSQLite(line.Log, dbPath, tag); err != nil {
				logrus.Fatalf("unable to write SQLite log: %v", err)
			}
			logrus.Infof("Appended %d records to %s (run %s)", line.Log.Len(), dbPath, tag)
		}

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for all stochastic sampling")
	runCmd.Flags().Float64Var(&duration, "duration", 100, "Simulated time units to run for")
	runCmd.Flags().Float64Var(&accuracy, "accuracy", 1, "Heartbeat step for idle detection and horizon checks")
	runCmd.Flags().BoolVar(&noFinish, "no-finish", false, "Leave activities registered so the run can be resumed")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Production line configs
	runCmd.Flags().IntVar(&items, "items", 10, "Number of items the source emits")
	runCmd.Flags().Float64Var(&arrivalInterval, "arrival-interval", 2, "Fixed inter-arrival time at the source")
	runCmd.Flags().Float64Var(&serviceMean, "service-mean", 1, "Mean station service time")
	runCmd.Flags().Float64Var(&serviceStdev, "service-stdev", 0.2, "Service time standard deviation")
	runCmd.Flags().Float64Var(&mtbf, "mtbf", 0, "Mean time between induced failures (0 disables breakdowns)")
	runCmd.Flags().Float64Var(&mttr, "mttr", 1, "Mean repair time after a breakdown")
	runCmd.Flags().IntVar(&stations, "stations", 1, "Number of serial stations")
	runCmd.Flags().IntVar(&bufferCap, "buffer-capacity", 4, "Capacity of each inter-station buffer")
	runCmd.Flags().Float64Var(&poll, "poll", 0.25, "Retry interval for full/empty buffers")

	// Scenario presets and outputs
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Preset name from the scenario file")
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "scenarios.yaml", "YAML file with scenario presets")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "Write the state-change log to this CSV file")
	runCmd.Flags().StringVar(&dbPath, "db", "", "Append the state-change log to this SQLite database")
	runCmd.Flags().StringVar(&runID, "run-id", "", "Run tag for SQLite records (default seed_<seed>)")

	rootCmd.AddCommand(runCmd)
}
