package robot

import (
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/world"
)

// decideNormal drives Normal and Broken robots.
//
// A beacon stays put unless at least three other beacons are around and a
// draw lets it go. A walker with fewer than two beacons around (and not
// busy carrying, unless a draw interrupts) becomes a beacon when it remembers
// the base nearby or hears exactly one beacon, extending the chain by one
// hop. Otherwise a walker delivers, picks up or steers its item toward the
// base or the best beacon before falling back to exploring.
func (r *Robot) decideNormal(t *turn) Action {
	switch {
	case r.Role == Beacon:
		if len(t.beacons) >= 3 && t.rnd.Float() > beaconRevertAbove {
			r.becomeWalker()
		} else {
			return DoNothing
		}
	case len(t.beacons) < 2 && (r.Held == nil || t.rnd.Float() > carryInterruptAbove):
		if t.base != nil {
			r.becomeBeacon(1)
			return DoNothing
		}
		if len(t.beacons) == 1 {
			r.becomeBeacon(t.beacons[0].Cardinality + 1)
			return DoNothing
		}
	default:
		if a, ok := r.carry(t); ok {
			return a
		}
	}
	return r.explore(t)
}

// carry handles items: deliver at the base, grab an item in front, or
// steer a held item home.
func (r *Robot) carry(t *turn) (Action, bool) {
	if r.Held != nil && t.front == world.Base {
		return PutDownAnItem, true
	}
	if r.Held == nil && t.front == world.OccupiedByItem {
		return GraspAnItem, true
	}
	if r.Held == nil || r.avoiding {
		return 0, false
	}

	target, avoidCenter := t.base, false
	if target == nil && len(t.beacons) > 0 {
		best := t.beacons[0]
		for _, b := range t.beacons[1:] {
			if b.Cardinality < best.Cardinality {
				best = b
			}
		}
		target, avoidCenter = &best.Pos, true
	}
	if target == nil {
		return 0, false
	}

	switch a := r.approach(*target, avoidCenter); a {
	case StepForward:
		if t.front == world.Free {
			return StepForward, true
		}
		if t.front == world.Obstacle && t.rnd.Float() >= destroyObstacleAt {
			return Destroy, true
		}
		return 0, false
	default:
		return a, true
	}
}

// explore is the generic policy: walk into open ground, pick up or deliver
// items, occasionally break obstacles, and otherwise turn aside.
func (r *Robot) explore(t *turn) Action {
	switch t.front {
	case world.Free:
		r.avoiding = false
		return StepForward
	case world.OccupiedByItem:
		if r.Held == nil {
			return GraspAnItem
		}
	case world.Obstacle:
		if t.rnd.Float() >= destroyObstacleAt {
			return Destroy
		}
	case world.Base:
		if r.Held != nil {
			return PutDownAnItem
		}
	}
	return r.avoid(t, r.chainLeft)
}

// decideLiar drives Liar robots. A liar joins the chain when it hears two
// or three beacons and claims one hop less than the best of them, then
// rarely leaves. It never touches items.
func (r *Robot) decideLiar(t *turn) Action {
	if r.Role == Beacon {
		if t.rnd.Float() > liarRevertAbove {
			r.becomeWalker()
		} else {
			return DoNothing
		}
	} else if n := len(t.beacons); n >= 2 && n <= 3 {
		lowest := t.beacons[0].Cardinality
		for _, b := range t.beacons[1:] {
			lowest = core.Min(lowest, b.Cardinality)
		}
		r.becomeBeacon(core.Max(1, lowest-1))
		return DoNothing
	}

	if t.front == world.Free {
		r.avoiding = false
		return StepForward
	}
	return r.avoid(t, r.chainLeft)
}

// decideItemDestroyer drives robots that roam and smash items.
func (r *Robot) decideItemDestroyer(t *turn) Action {
	switch t.front {
	case world.Free:
		r.avoiding = false
		return StepForward
	case world.OccupiedByItem:
		if t.rnd.Float() >= destroyItemAt {
			return Destroy
		}
	}
	return r.avoid(t, roamLeft)
}

// decideArsonist drives robots that hunt beacons and set things alight.
func (r *Robot) decideArsonist(t *turn) Action {
	if len(t.beacons) > 0 && !r.avoiding {
		target := r.nearestBeacon(t.beacons)
		switch a := r.approach(target, false); a {
		case StepForward:
			if t.front == world.Free {
				return StepForward
			}
		default:
			return a
		}
	}

	switch t.front {
	case world.Free:
		r.avoiding = false
		return StepForward
	case world.OccupiedByItem, world.Obstacle, world.OccupiedByRobot:
		if t.rnd.Float() >= igniteAt {
			return StartFire
		}
	}
	return r.avoid(t, roamLeft)
}

// nearestBeacon picks the closest beacon by true distance, first found on
// ties.
func (r *Robot) nearestBeacon(beacons []NearbyBeacon) core.Coord {
	best := beacons[0].Pos
	for _, b := range beacons[1:] {
		if r.Pos.DistSq(b.Pos) < r.Pos.DistSq(best) {
			best = b.Pos
		}
	}
	return best
}
