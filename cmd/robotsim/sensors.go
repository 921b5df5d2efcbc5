package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/sensor"
)

var (
	flagIterations  int
	flagSensorsSeed int64
)

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "Measure sensor accuracy per damage level",
	Long: `Sample every sensor at every damage level and report how often the
reading is exact and how often it is close. A random guessing baseline is
printed after each sensor.

Tolerances:
  GPS          exact / within the 3x3 block around the true cell
  IMU          exact / exact
  Thermometer  within 1 degree / within 5 degrees
  LiDAR, Radar exact / within one cell

Examples:
  robotsim sensors
  robotsim sensors --iterations 100000 --seed 1`,
	Args: cobra.NoArgs,
	Run:  runSensors,
}

func init() {
	sensorsCmd.Flags().IntVar(&flagIterations, "iterations", 10000, "Samples per sensor and damage level")
	sensorsCmd.Flags().Int64Var(&flagSensorsSeed, "seed", 13, "RNG seed")
}

func runSensors(cmd *cobra.Command, args []string) {
	if flagIterations <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --iterations must be positive")
		os.Exit(1)
	}

	results, err := sensor.Analyze(flagIterations, rng.New(flagSensorsSeed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-12s  %-10s  %8s  %8s\n", "Sensor", "Damage", "Exact", "Near")
	fmt.Printf("  %-12s  %-10s  %8s  %8s\n", "------", "------", "-----", "----")

	prev := ""
	for _, a := range results {
		if prev != "" && a.Sensor != prev {
			fmt.Println()
		}
		prev = a.Sensor
		fmt.Printf("  %-12s  %-10s  %7.2f%%  %7.2f%%\n", a.Sensor, a.Level, a.ExactRate(), a.NearRate())
	}
}
