package sensor

import (
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/world"
)

// Thermometer noise is larger in the extreme band.
const (
	ExtremeColdBelow = -50.0
	ExtremeHotAbove  = 100.0
)

var (
	gpsNoise         = sigma{ok: 0.8, damaged: 1.7}
	imuNoise         = sigma{ok: 0.25, damaged: 1}
	thermoNoise      = sigma{ok: 0.3, damaged: 2}
	thermoHotNoise   = sigma{ok: 1.5, damaged: 6}
	imuTurnThreshold = 1.0
)

// ReadGPS returns the true position with independent rounded Gaussian
// noise on each axis, X drawn first.
func ReadGPS(level DamageLevel, pos core.Coord, rnd *rng.Stream) *core.Coord {
	if level == Destroyed {
		return nil
	}
	s := gpsNoise.at(level)
	dx := rnd.GaussianInt(0, s)
	dy := rnd.GaussianInt(0, s)
	measured := pos.Add(dx, dy)
	return &measured
}

// ReadIMU returns the true orientation, occasionally rotated one step.
// A single noise sample n decides: n < -1 turns counter-clockwise,
// n >= 1 turns clockwise.
func ReadIMU(level DamageLevel, facing core.Dir, rnd *rng.Stream) *core.Dir {
	if level == Destroyed {
		return nil
	}
	n := rnd.Gaussian(0, imuNoise.at(level))
	measured := facing
	switch {
	case n < -imuTurnThreshold:
		measured = facing.CounterClockwise()
	case n >= imuTurnThreshold:
		measured = facing.Clockwise()
	}
	return &measured
}

// ReadThermometer returns the temperature with Gaussian noise.
func ReadThermometer(level DamageLevel, temp float64, rnd *rng.Stream) *float64 {
	if level == Destroyed {
		return nil
	}
	s := thermoNoise
	if temp < ExtremeColdBelow || temp > ExtremeHotAbove {
		s = thermoHotNoise
	}
	measured := temp + rnd.Gaussian(0, s.at(level))
	return &measured
}

// Rangefinder is a forward-looking distance sensor. Standing on a hot cell
// shortens its visibility threshold.
type Rangefinder struct {
	Name         string
	Threshold    int
	HotThreshold int
	noise        sigma
}

// The two rangefinders carried by every robot.
var (
	LiDARSensor = Rangefinder{Name: "LiDAR", Threshold: 10, HotThreshold: 5, noise: sigma{ok: 0.5, damaged: 0.8}}
	RadarSensor = Rangefinder{Name: "Radar", Threshold: 10, HotThreshold: 7, noise: sigma{ok: 0.6, damaged: 1}}
)

// threshold returns the visibility threshold for an observer at pos.
func (r Rangefinder) threshold(g *world.Grid, pos core.Coord) int {
	if g.Temperature(pos) > ExtremeHotAbove {
		return r.HotThreshold
	}
	return r.Threshold
}

// Read casts a ray from pos along facing. It returns nil when the first
// blocking cell lies beyond the threshold or the ray leaves the grid first.
// Rays pass through Free and Fire cells.
func (r Rangefinder) Read(level DamageLevel, g *world.Grid, pos core.Coord, facing core.Dir, rnd *rng.Stream) *int {
	dist, ok := cast(g, pos, facing, r.threshold(g, pos))
	if !ok || level == Destroyed {
		return nil
	}
	measured := dist + rnd.GaussianInt(0, r.noise.at(level))
	return &measured
}

// TrueDistance is the noiseless, unthresholded distance to the first cell a
// ray from pos along facing cannot pass. A ray that leaves the grid stops
// at the first out-of-range step.
func TrueDistance(g *world.Grid, pos core.Coord, facing core.Dir) int {
	dist := 1
	for at := pos.Step(facing); g.InBounds(at) && g.Terrain(at).Passable(); at = at.Step(facing) {
		dist++
	}
	return dist
}

// cast walks the ray up to limit cells.
func cast(g *world.Grid, pos core.Coord, facing core.Dir, limit int) (int, bool) {
	dist := 1
	at := pos.Step(facing)
	for g.Terrain(at).Passable() {
		dist++
		at = at.Step(facing)
		if dist > limit || !g.InBounds(at) {
			return 0, false
		}
	}
	return dist, true
}
