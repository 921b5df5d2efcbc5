package config

import (
	_ "embed"
)

//go:embed defaults/robotsim.yaml
var defaultYAML []byte

//go:embed schema.json
var schemaJSON []byte

// DefaultDBPath is where the run catalog lives unless configured otherwise.
const DefaultDBPath = "~/.robotsim/runs.db"

// DefaultConfig returns the stock configuration.
func DefaultConfig() SimConfig {
	return SimConfig{
		Seed: 13,
		Map: MapConfig{
			Width:            40,
			Height:           40,
			ItemProbability:  0.05,
			ObstacleCoverage: 0.2,
		},
		Roster: RosterConfig{
			Normal:        40,
			Broken:        2,
			Liar:          2,
			ItemDestroyer: 2,
			Arsonist:      2,
		},
		Turns: 300,
		Output: OutputConfig{
			Dir:    "out",
			Format: FormatTSV,
			DB:     DefaultDBPath,
		},
		LogLevel: "info",
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
