// Package robot implements a single robot: its sensor suite, its private
// memory map, the actions it can take on the grid and the per-profile
// decision logic that picks exactly one action per turn.
package robot

import (
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/sensor"
	"github.com/vovakirdan/robotsim/internal/world"
)

// CommunicationRange bounds beacon discovery and the base search, as a
// square of this half-width around the robot.
const CommunicationRange = 8

// Profile selects a robot's behaviour.
type Profile uint8

const (
	Normal Profile = iota
	Broken
	Liar
	ItemDestroyer
	Arsonist
)

// String returns the name used in fact rows.
func (p Profile) String() string {
	switch p {
	case Normal:
		return "Normal"
	case Broken:
		return "Broken"
	case Liar:
		return "Liar"
	case ItemDestroyer:
		return "ItemDestroyer"
	case Arsonist:
		return "Arsonist"
	default:
		return "Unknown"
	}
}

// Role is the cooperative state of Normal, Broken and Liar robots.
type Role uint8

const (
	Walker Role = iota
	Beacon
)

func (r Role) String() string {
	if r == Beacon {
		return "Beacon"
	}
	return "Walker"
}

// Robot is one simulated agent. Position and Facing are ground truth;
// decisions only ever see them through the sensors, except for bearing
// following and the beacon scan.
type Robot struct {
	ID          int
	Profile     Profile
	Pos         core.Coord
	Facing      core.Dir
	Role        Role
	Cardinality *int
	Held        *world.Item
	Alive       bool
	Sensors     sensor.Suite

	memory   *Memory
	avoiding bool
}

// New creates a living robot with an empty memory sized to the map.
// A Broken robot has exactly one damaged sensor, chosen with one draw:
// below 0.2 GPS, 0.4 IMU, 0.6 Radar, 0.8 LiDAR, otherwise the thermometer.
func New(id int, profile Profile, width, height int, rnd *rng.Stream) *Robot {
	r := &Robot{
		ID:      id,
		Profile: profile,
		Alive:   true,
		memory:  NewMemory(width, height),
	}
	if profile == Broken {
		r.Sensors = r.Sensors.With(brokenSensor(rnd.Float()), sensor.Damaged)
	}
	return r
}

func brokenSensor(roll float64) sensor.Kind {
	switch {
	case roll < 0.2:
		return sensor.GPS
	case roll < 0.4:
		return sensor.IMU
	case roll < 0.6:
		return sensor.Radar
	case roll < 0.8:
		return sensor.LiDAR
	default:
		return sensor.Thermometer
	}
}

// Memory returns the robot's private memory map.
func (r *Robot) Memory() *Memory {
	return r.memory
}

// Kill marks the robot dead. Any held item is returned so the caller can
// account for it.
func (r *Robot) Kill() *world.Item {
	r.Alive = false
	held := r.Held
	r.Held = nil
	return held
}

func (r *Robot) becomeBeacon(cardinality int) {
	r.Role = Beacon
	r.Cardinality = &cardinality
}

func (r *Robot) becomeWalker() {
	r.Role = Walker
	r.Cardinality = nil
}
