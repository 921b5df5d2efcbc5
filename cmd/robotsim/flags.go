package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/robotsim/internal/config"
)

// World flags shared by run, watch and render. They override the loaded
// config only when set on the command line.
var (
	flagSeed      int64
	flagWidth     int
	flagHeight    int
	flagItems     float64
	flagObstacles float64
	flagNormal    int
	flagBroken    int
	flagLiar      int
	flagDestroyer int
	flagArsonist  int
	flagTurns     int
)

func addWorldFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.Int64Var(&flagSeed, "seed", d.Seed, "RNG seed")
	f.IntVar(&flagWidth, "width", d.Map.Width, "Map width")
	f.IntVar(&flagHeight, "height", d.Map.Height, "Map height")
	f.Float64Var(&flagItems, "items", d.Map.ItemProbability, "Item probability per free cell")
	f.Float64Var(&flagObstacles, "obstacles", d.Map.ObstacleCoverage, "Obstacle and fire coverage")
	f.IntVar(&flagNormal, "normal", d.Roster.Normal, "Number of normal robots")
	f.IntVar(&flagBroken, "broken", d.Roster.Broken, "Number of broken robots")
	f.IntVar(&flagLiar, "liar", d.Roster.Liar, "Number of liar robots")
	f.IntVar(&flagDestroyer, "destroyer", d.Roster.ItemDestroyer, "Number of item destroyer robots")
	f.IntVar(&flagArsonist, "arsonist", d.Roster.Arsonist, "Number of arsonist robots")
	f.IntVar(&flagTurns, "turns", d.Turns, "Number of turns to simulate")
}

// loadConfig loads the config file and applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.SimConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("seed", func() { cfg.Seed = flagSeed })
	set("width", func() { cfg.Map.Width = flagWidth })
	set("height", func() { cfg.Map.Height = flagHeight })
	set("items", func() { cfg.Map.ItemProbability = flagItems })
	set("obstacles", func() { cfg.Map.ObstacleCoverage = flagObstacles })
	set("normal", func() { cfg.Roster.Normal = flagNormal })
	set("broken", func() { cfg.Roster.Broken = flagBroken })
	set("liar", func() { cfg.Roster.Liar = flagLiar })
	set("destroyer", func() { cfg.Roster.ItemDestroyer = flagDestroyer })
	set("arsonist", func() { cfg.Roster.Arsonist = flagArsonist })
	set("turns", func() { cfg.Turns = flagTurns })

	if flagDBPath != "" {
		cfg.Output.DB = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, cfg.Validate()
}
