package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/robotsim/internal/config"
	"github.com/vovakirdan/robotsim/internal/platform/tui"
	"github.com/vovakirdan/robotsim/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List catalogued runs",
	Long: `Show the newest runs recorded in the run catalog with their final
counters. Unfinished runs (interrupted or still playing) are marked with "...".

Examples:
  robotsim runs
  robotsim runs --limit 50
  robotsim runs -i
  robotsim runs --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in a scrollable table")
}

func runRuns(cmd *cobra.Command, args []string) {
	dbPath := flagDBPath
	if dbPath == "" {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dbPath = cfg.Output.DB
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run catalog: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunRunsBrowser(store, flagLimit, width, height); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.ListRuns(flagLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Start one with 'robotsim run'.")
		return
	}
	fmt.Print(tui.FormatRuns(runs))
}
