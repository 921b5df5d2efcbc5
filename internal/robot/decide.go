package robot

import (
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/world"
)

// Decision thresholds. Each is compared against one uniform draw.
const (
	beaconRevertAbove   = 0.7
	carryInterruptAbove = 0.2
	destroyObstacleAt   = 0.95
	igniteAt            = 0.95
	destroyItemAt       = 0.30
	liarRevertAbove     = 0.95

	// A front reading above this counts as hot and the radar is trusted.
	hotFrontAbove = 100.0
)

// NearbyBeacon is a beacon found by the communication scan.
type NearbyBeacon struct {
	Pos         core.Coord
	Cardinality int
}

// turn carries the per-turn inputs of a decision.
type turn struct {
	rnd     *rng.Stream
	read    Readings
	front   world.Terrain
	beacons []NearbyBeacon
	base    *core.Coord
}

func (r *Robot) newTurn(env Env, rd Readings) *turn {
	t := &turn{rnd: env.Rand, read: rd}
	t.front = r.frontType(rd)
	// Item destroyers ignore the beacon chain
	if r.Profile != ItemDestroyer {
		t.beacons = r.nearbyBeacons(env)
	}
	if rd.GPS != nil {
		if c, ok := r.memory.FindWithin(*rd.GPS, CommunicationRange, world.Base); ok {
			t.base = &c
		}
	}
	return t
}

// measuredFacing is the IMU reading, taken as Up when missing.
func measuredFacing(rd Readings) core.Dir {
	if rd.Orientation == nil {
		return core.Up
	}
	return *rd.Orientation
}

// frontType estimates the terrain in front from memory and sensors.
//
// A remembered Free cell is trusted only if a rangefinder sees past it, or
// neither rangefinder reads at all; otherwise it is treated as a robot in
// the way. Any other remembered terrain is used as is. Without memory the
// robot trusts the radar on hot cells and the LiDAR on cool ones. When all
// else fails the front is assumed blocked.
func (r *Robot) frontType(rd Readings) world.Terrain {
	if rd.GPS != nil {
		front := rd.GPS.Step(measuredFacing(rd))
		if cell, ok := r.memory.Lookup(front); ok {
			if cell.Terrain != world.Free {
				return cell.Terrain
			}
			if (rd.Lidar == nil && rd.Radar == nil) || farther(rd.Lidar) || farther(rd.Radar) {
				return world.Free
			}
			return world.OccupiedByRobot
		}
	}

	if rd.Temperature != nil {
		if *rd.Temperature > hotFrontAbove && farther(rd.Radar) {
			return world.Free
		}
		if *rd.Temperature <= hotFrontAbove && farther(rd.Lidar) {
			return world.Free
		}
	}
	return world.OccupiedByRobot
}

// farther reports whether a distance reading shows at least one clear cell.
func farther(d *int) bool {
	return d != nil && *d > 1
}

// leftType returns the remembered terrain to the measured left.
func (r *Robot) leftType(rd Readings) (world.Terrain, bool) {
	if rd.GPS == nil {
		return 0, false
	}
	cell, ok := r.memory.Lookup(rd.GPS.Step(measuredFacing(rd).CounterClockwise()))
	return cell.Terrain, ok
}

// nearbyBeacons scans the square around the true position, x-major,
// skipping the robot's own cell.
func (r *Robot) nearbyBeacons(env Env) []NearbyBeacon {
	if env.Beacons == nil {
		return nil
	}
	g := env.Grid
	var found []NearbyBeacon
	for x := core.Max(0, r.Pos.X-CommunicationRange); x <= core.Min(g.W-1, r.Pos.X+CommunicationRange); x++ {
		for y := core.Max(0, r.Pos.Y-CommunicationRange); y <= core.Min(g.H-1, r.Pos.Y+CommunicationRange); y++ {
			c := core.C(x, y)
			if c == r.Pos {
				continue
			}
			if card, ok := env.Beacons.BeaconAt(c); ok {
				found = append(found, NearbyBeacon{Pos: c, Cardinality: card})
			}
		}
	}
	return found
}

// approach is a one-step greedy heading correction toward target, worked
// out in the robot's own lateral/forward frame from its true pose. With
// avoidCenter a target directly beside the robot is passed by stepping on.
func (r *Robot) approach(target core.Coord, avoidCenter bool) Action {
	lateral, forward := r.Facing.ToLocal(target.Sub(r.Pos))
	switch {
	case avoidCenter && forward == 0 && core.Abs(lateral) == 1:
		return StepForward
	case forward <= 0 && lateral >= 0:
		return TurnRight
	case forward <= 0:
		return TurnLeft
	default:
		return StepForward
	}
}

// decide picks this turn's action.
func (r *Robot) decide(t *turn) Action {
	switch r.Profile {
	case Normal, Broken:
		return r.decideNormal(t)
	case Liar:
		return r.decideLiar(t)
	case ItemDestroyer:
		return r.decideItemDestroyer(t)
	case Arsonist:
		return r.decideArsonist(t)
	default:
		return DoNothing
	}
}

// avoid turns away from a blocked front: left if the remembered left cell
// looks worth it, right otherwise.
func (r *Robot) avoid(t *turn, goodLeft func(world.Terrain) bool) Action {
	r.avoiding = true
	if left, ok := r.leftType(t.read); ok && goodLeft(left) {
		return TurnLeft
	}
	return TurnRight
}

// chainLeft is the left-cell rule of robots that take part in the beacon
// chain: open ground, an item to pick up, or the base when carrying.
func (r *Robot) chainLeft(t world.Terrain) bool {
	switch t {
	case world.Free:
		return true
	case world.OccupiedByItem:
		return r.Held == nil
	case world.Base:
		return r.Held != nil
	default:
		return false
	}
}

// roamLeft is the left-cell rule of the saboteurs.
func roamLeft(t world.Terrain) bool {
	return t == world.Free || t == world.OccupiedByItem
}
