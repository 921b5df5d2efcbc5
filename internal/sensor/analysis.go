package sensor

import (
	"math"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/world"
)

// Accuracy summarises repeated readings of one sensor at one damage level.
// Exact and Near use per-sensor tolerances:
//
//	GPS          exact match / within the 3x3 block around the truth
//	IMU          exact match / exact match
//	Thermometer  within 1 degree / within 5 degrees
//	LiDAR, Radar exact distance / within one cell
type Accuracy struct {
	Sensor  string
	Level   string
	Samples int
	Exact   int
	Near    int
}

// ExactRate returns the exact hit rate as a percentage.
func (a Accuracy) ExactRate() float64 {
	return rate(a.Exact, a.Samples)
}

// NearRate returns the near hit rate as a percentage.
func (a Accuracy) NearRate() float64 {
	return rate(a.Near, a.Samples)
}

func rate(hits, samples int) float64 {
	if samples == 0 {
		return 0
	}
	return float64(hits) * 100 / float64(samples)
}

// baselineLevel labels rows produced by guessing uniformly at random.
const baselineLevel = "Baseline"

const (
	analysisMapSize = 100
	tempLow         = -89.2
	tempHigh        = 400.0
)

// Analyze samples every sensor at every damage level and appends a random
// guessing baseline after each sensor. Rangefinders are sampled on a
// freshly generated default map.
func Analyze(iterations int, rnd *rng.Stream) ([]Accuracy, error) {
	var out []Accuracy
	out = append(out, analyzeGPS(iterations, rnd)...)
	out = append(out, analyzeIMU(iterations, rnd)...)
	out = append(out, analyzeThermometer(iterations, rnd)...)

	g, err := world.Generate(world.DefaultGenParams(), rnd)
	if err != nil {
		return nil, err
	}
	out = append(out, analyzeRange(LiDARSensor, g, iterations, rnd)...)
	out = append(out, analyzeRange(RadarSensor, g, iterations, rnd)...)
	return out, nil
}

func analyzeGPS(iterations int, rnd *rng.Stream) []Accuracy {
	score := func(truth core.Coord, got *core.Coord, acc *Accuracy) {
		if got == nil {
			return
		}
		if *got == truth {
			acc.Exact++
		}
		if truth.Chebyshev(*got) <= 1 {
			acc.Near++
		}
	}
	randomPos := func() core.Coord {
		return core.C(rnd.Intn(analysisMapSize), rnd.Intn(analysisMapSize))
	}

	var out []Accuracy
	for _, level := range Levels {
		acc := Accuracy{Sensor: GPS.String(), Level: level.String(), Samples: iterations}
		for range iterations {
			truth := randomPos()
			score(truth, ReadGPS(level, truth, rnd), &acc)
		}
		out = append(out, acc)
	}

	base := Accuracy{Sensor: GPS.String(), Level: baselineLevel, Samples: iterations}
	for range iterations {
		truth := randomPos()
		guess := randomPos()
		score(truth, &guess, &base)
	}
	return append(out, base)
}

func analyzeIMU(iterations int, rnd *rng.Stream) []Accuracy {
	var out []Accuracy
	for _, level := range Levels {
		acc := Accuracy{Sensor: IMU.String(), Level: level.String(), Samples: iterations}
		for range iterations {
			truth := core.Dirs[rnd.Intn(len(core.Dirs))]
			if got := ReadIMU(level, truth, rnd); got != nil && *got == truth {
				acc.Exact++
				acc.Near++
			}
		}
		out = append(out, acc)
	}

	base := Accuracy{Sensor: IMU.String(), Level: baselineLevel, Samples: iterations}
	for range iterations {
		truth := core.Dirs[rnd.Intn(len(core.Dirs))]
		if core.Dirs[rnd.Intn(len(core.Dirs))] == truth {
			base.Exact++
			base.Near++
		}
	}
	return append(out, base)
}

func analyzeThermometer(iterations int, rnd *rng.Stream) []Accuracy {
	score := func(truth float64, got *float64, acc *Accuracy) {
		if got == nil {
			return
		}
		diff := math.Abs(truth - *got)
		if diff <= 1 {
			acc.Exact++
		}
		if diff <= 5 {
			acc.Near++
		}
	}

	var out []Accuracy
	for _, level := range Levels {
		acc := Accuracy{Sensor: Thermometer.String(), Level: level.String(), Samples: iterations}
		for range iterations {
			truth := rnd.Uniform(tempLow, tempHigh)
			score(truth, ReadThermometer(level, truth, rnd), &acc)
		}
		out = append(out, acc)
	}

	base := Accuracy{Sensor: Thermometer.String(), Level: baselineLevel, Samples: iterations}
	for range iterations {
		truth := rnd.Uniform(tempLow, tempHigh)
		guess := rnd.Uniform(tempLow, tempHigh)
		score(truth, &guess, &base)
	}
	return append(out, base)
}

func analyzeRange(r Rangefinder, g *world.Grid, iterations int, rnd *rng.Stream) []Accuracy {
	score := func(truth, got *int, acc *Accuracy) {
		switch {
		case truth == nil && got == nil:
			acc.Exact++
			acc.Near++
		case truth != nil && got != nil:
			if *truth == *got {
				acc.Exact++
			}
			if core.Abs(*truth-*got) <= 1 {
				acc.Near++
			}
		}
	}
	realDistance := func(pos core.Coord, facing core.Dir) *int {
		dist, ok := cast(g, pos, facing, r.Threshold)
		if !ok {
			return nil
		}
		return &dist
	}
	randomPose := func() (core.Coord, core.Dir) {
		pos := core.C(1+rnd.Intn(g.W-2), 1+rnd.Intn(g.H-2))
		return pos, core.Dirs[rnd.Intn(len(core.Dirs))]
	}

	var out []Accuracy
	for _, level := range Levels {
		acc := Accuracy{Sensor: r.Name, Level: level.String(), Samples: iterations}
		for range iterations {
			pos, facing := randomPose()
			score(realDistance(pos, facing), r.Read(level, g, pos, facing, rnd), &acc)
		}
		out = append(out, acc)
	}

	base := Accuracy{Sensor: r.Name, Level: baselineLevel, Samples: iterations}
	for range iterations {
		truth := 1 + rnd.Intn(r.Threshold)
		guess := 1 + rnd.Intn(r.Threshold)
		score(&truth, &guess, &base)
	}
	return append(out, base)
}
