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

var flagLegend bool

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print a generated map",
	Long: `Generate a world, place the robots and print the map once.
Colours are disabled automatically when stdout is not a terminal.

Examples:
  robotsim render
  robotsim render --seed 7 --width 80 --height 30
  robotsim render --plain > map.txt`,
	Args: cobra.NoArgs,
	Run:  runRender,
}

func init() {
	addWorldFlags(renderCmd)
	renderCmd.Flags().BoolVar(&flagPlain, "plain", false, "Disable colours")
	renderCmd.Flags().BoolVar(&flagLegend, "legend", true, "Print the glyph legend")
}

func runRender(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s, err := sim.New(cfg, facts.Discard, newLogger(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	plain := flagPlain || !term.IsTerminal(int(os.Stdout.Fd()))
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && cfg.Map.Width > w {
		fmt.Fprintf(os.Stderr, "Warning: map is %d columns wide, terminal has %d\n", cfg.Map.Width, w)
	}

	fmt.Println(tui.RenderGrid(s.Grid(), s.Robots(), plain))
	if flagLegend {
		fmt.Println()
		fmt.Println(tui.Legend(plain))
	}

	sum := s.Summary()
	fmt.Printf("\n%d items, %d robots\n", sum.ItemsGenerated, sum.RobotsAlive)
}
