package robot

import "github.com/vovakirdan/robotsim/internal/world"

// Action is the single thing a robot decides to do in a turn.
type Action uint8

const (
	DoNothing Action = iota
	StepForward
	TurnLeft
	TurnRight
	GraspAnItem
	PutDownAnItem
	Destroy
	StartFire
)

// String returns the name used in fact rows.
func (a Action) String() string {
	switch a {
	case DoNothing:
		return "DoNothing"
	case StepForward:
		return "StepForward"
	case TurnLeft:
		return "TurnLeft"
	case TurnRight:
		return "TurnRight"
	case GraspAnItem:
		return "GraspAnItem"
	case PutDownAnItem:
		return "PutDownAnItem"
	case Destroy:
		return "Destroy"
	case StartFire:
		return "StartFire"
	default:
		return "Unknown"
	}
}

// perform applies the action to the grid using the robot's true pose and
// reports whether it succeeded. Every action addresses the cell in front.
func (r *Robot) perform(a Action, g *world.Grid) bool {
	front := r.Pos.Step(r.Facing)
	switch a {
	case DoNothing:
		return true
	case StepForward:
		if !g.Move(r.Pos, front) {
			return false
		}
		r.Pos = front
		return true
	case TurnLeft:
		r.Facing = r.Facing.CounterClockwise()
		return true
	case TurnRight:
		r.Facing = r.Facing.Clockwise()
		return true
	case GraspAnItem:
		if r.Held != nil {
			return false
		}
		item, ok := g.RemoveItem(front)
		if !ok {
			return false
		}
		r.Held = &item
		return true
	case PutDownAnItem:
		if r.Held == nil || !g.PlaceItem(front, *r.Held) {
			return false
		}
		r.Held = nil
		return true
	case Destroy:
		return g.Destroy(front)
	case StartFire:
		return g.SetOnFire(front)
	default:
		return false
	}
}
