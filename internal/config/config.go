// Package config provides YAML-based configuration loading and validation
// for simulation runs.
package config

// SimConfig contains everything needed to generate a world and run it.
type SimConfig struct {
	Seed     int64        `yaml:"seed"`
	Map      MapConfig    `yaml:"map"`
	Roster   RosterConfig `yaml:"roster"`
	Turns    int          `yaml:"turns"`
	Output   OutputConfig `yaml:"output"`
	LogLevel string       `yaml:"log_level"`
}

// MapConfig defines the generated world.
type MapConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	ItemProbability  float64 `yaml:"item_probability"`  // Chance of an item per free cell
	ObstacleCoverage float64 `yaml:"obstacle_coverage"` // Fraction of cells painted Obstacle or Fire
}

// RosterConfig holds the number of robots of each profile.
type RosterConfig struct {
	Normal        int `yaml:"normal"`
	Broken        int `yaml:"broken"`
	Liar          int `yaml:"liar"`
	ItemDestroyer int `yaml:"item_destroyer"`
	Arsonist      int `yaml:"arsonist"`
}

// Total returns the size of the roster.
func (r RosterConfig) Total() int {
	return r.Normal + r.Broken + r.Liar + r.ItemDestroyer + r.Arsonist
}

// Output formats.
const (
	FormatTSV    = "tsv"
	FormatSQLite = "sqlite"
)

// OutputConfig defines where fact rows go.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // TSV output directory
	Format   string `yaml:"format"`   // "tsv" or "sqlite"
	Headers  bool   `yaml:"headers"`  // Header line in each TSV file
	Compress bool   `yaml:"compress"` // zstd-compress TSV files
	DB       string `yaml:"db"`       // Run catalog (and sqlite facts) path
}
