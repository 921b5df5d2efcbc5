package world

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
)

// ErrNotEnoughFreeCells is returned when a roster does not fit on the map.
var ErrNotEnoughFreeCells = errors.New("world: not enough free cells for robots")

// FreeCells returns all Free cells in id order.
func (g *Grid) FreeCells() []core.Coord {
	free := make([]core.Coord, 0)
	for i, cell := range g.cells {
		if cell.Terrain() == Free {
			free = append(free, g.Coord(i))
		}
	}
	return free
}

// PlaceRobots assigns one random Free cell to each robot id, in roster
// order, and returns the chosen positions. Every free cell draws an
// independent priority; cells are handed out in ascending priority.
// Nothing is placed if the roster does not fit.
func (g *Grid) PlaceRobots(robotIDs []int, rnd *rng.Stream) ([]core.Coord, error) {
	free := g.FreeCells()
	priority := make([]uint64, len(free))
	for i := range free {
		priority[i] = rnd.Uint64()
	}
	if len(free) < len(robotIDs) {
		return nil, fmt.Errorf("%w: %d robots, %d free cells", ErrNotEnoughFreeCells, len(robotIDs), len(free))
	}

	order := make([]int, len(free))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return priority[order[a]] < priority[order[b]]
	})

	positions := make([]core.Coord, len(robotIDs))
	for i, id := range robotIDs {
		c := free[order[i]]
		g.PutRobot(c, id)
		positions[i] = c
	}
	return positions, nil
}
