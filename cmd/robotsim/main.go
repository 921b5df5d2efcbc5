// robotsim simulates robots exploring a partially burning grid world and
// writes ground truth next to noisy sensor readings for offline analysis.
//
// Usage:
//
//	robotsim run             - Run a simulation and write its facts
//	robotsim watch           - Animate a simulation in the terminal
//	robotsim render          - Print a generated map once
//	robotsim runs            - List catalogued runs
//	robotsim sensors         - Measure sensor accuracy per damage level
//
// Global flags:
//
//	--config <path>     - Simulation config YAML
//	--db <path>         - Run catalog database (default: ~/.robotsim/runs.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "robotsim",
	Short: "Robots in a burning house - a sensor data generator",
	Long: `robotsim generates a grid world with obstacles, fire and items, lets a
population of robots with damaged or malicious profiles explore it, and
records every turn as flat fact rows.

Available commands:
  run      - Run a simulation and write TSV or SQLite facts
  watch    - Animate a simulation in the terminal
  render   - Print a generated map
  runs     - List catalogued runs
  sensors  - Sensor accuracy analysis

Examples:
  robotsim run --seed 13 --turns 300 --out ./out --headers
  robotsim run --format sqlite --db ./runs.db
  robotsim watch --width 60 --height 30 --speed 5
  robotsim render --seed 7
  robotsim sensors --iterations 10000`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run catalog database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(sensorsCmd)
}

// newLogger creates the stderr logger. An empty or unknown level falls
// back to info.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "robotsim",
	})
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
