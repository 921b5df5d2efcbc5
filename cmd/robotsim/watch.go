package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/robotsim/internal/facts"
	"github.com/vovakirdan/robotsim/internal/platform/tui"
	"github.com/vovakirdan/robotsim/internal/sim"
)

var (
	flagSpeed int
	flagPlain bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Animate a simulation in the terminal",
	Long: `Play a simulation live. Nothing is written to disk.

Controls:
  Space/P    - Pause
  N/Right    - Single step while paused
  +/-        - Change speed (1-10 turns per second)
  G          - Toggle legend
  Q/Esc      - Quit

Examples:
  robotsim watch
  robotsim watch --width 60 --height 30 --speed 5
  robotsim watch --seed 7 --arsonist 10`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	addWorldFlags(watchCmd)
	watchCmd.Flags().IntVar(&flagSpeed, "speed", 2, "Turns per second (1-10)")
	watchCmd.Flags().BoolVar(&flagPlain, "plain", false, "Disable colours")
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: watch needs a terminal; use 'robotsim render' or 'robotsim run' instead")
		os.Exit(1)
	}
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if cfg.Map.Width > w || cfg.Map.Height > h {
			fmt.Fprintf(os.Stderr, "Warning: %dx%d map does not fit a %dx%d terminal\n",
				cfg.Map.Width, cfg.Map.Height, w, h)
		}
	}

	// Log lines would tear the alternate screen
	logger := newLogger("error")

	s, err := sim.New(cfg, facts.Discard, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.RunViewer(s, tui.ViewerOptions{Turns: cfg.Turns, Speed: flagSpeed, Plain: flagPlain}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
	printSummary(s.Summary())
}
