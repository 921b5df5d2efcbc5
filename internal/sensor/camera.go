package sensor

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/world"
)

// CameraDepth is how many cells ahead the camera fan reaches.
const CameraDepth = 4

// Sighting is one cell the camera saw this turn.
type Sighting struct {
	Offset  core.Coord // World-space offset from the observer
	Terrain world.Terrain
	ItemID  *int
	RobotID *int
}

// local is a (lateral, forward) position in the observer's frame.
type local struct {
	lateral int
	forward int
}

// Camera returns the visible cells of the forward fan, ordered by depth and
// then by lateral offset from left to right.
//
// The fan covers, at each depth d in 1..CameraDepth, laterals -d..d. Every
// non-Free cell in the fan hides cells behind it: a blocker on the center
// line hides the center line beyond it; a blocker off-center hides a wedge
// that starts at its own lateral and widens outwards by one cell per step
// of depth.
func Camera(g *world.Grid, pos core.Coord, facing core.Dir) []Sighting {
	type candidate struct {
		at   local
		cell world.Cell
	}

	candidates := make([]candidate, 0, CameraDepth*(CameraDepth+2))
	for f := 1; f <= CameraDepth; f++ {
		for l := -f; l <= f; l++ {
			target := pos.AddCoord(facing.ToWorld(l, f))
			if !g.InBounds(target) {
				continue
			}
			candidates = append(candidates, candidate{at: local{l, f}, cell: g.Cell(target)})
		}
	}

	hidden := mapset.New[local]()
	for _, c := range candidates {
		if c.cell.Terrain() == world.Free {
			continue
		}
		shadow(hidden, facing, c.at)
	}

	view := make([]Sighting, 0, len(candidates))
	for _, c := range candidates {
		if hidden.Has(c.at) {
			continue
		}
		s := Sighting{
			Offset:  facing.ToWorld(c.at.lateral, c.at.forward),
			Terrain: c.cell.Terrain(),
		}
		if id, ok := c.cell.ItemID(); ok {
			s.ItemID = &id
		}
		if id, ok := c.cell.RobotID(); ok {
			s.RobotID = &id
		}
		view = append(view, s)
	}
	return view
}

// shadow marks the cells hidden by a blocker at b.
func shadow(hidden mapset.Set[local], facing core.Dir, b local) {
	// Negative cross product means the blocker is on the right
	side := -core.Sign(facing.Cross(facing.ToWorld(b.lateral, b.forward)))
	for f := b.forward + 1; f <= CameraDepth; f++ {
		if side == 0 {
			hidden.Put(local{0, f})
			continue
		}
		for step := 0; step <= f-b.forward; step++ {
			hidden.Put(local{b.lateral + side*step, f})
		}
	}
}
