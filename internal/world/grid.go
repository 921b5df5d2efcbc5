package world

import (
	"fmt"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
)

// RobotKiller is notified when a terrain mutation destroys a robot.
// The grid references robots only by id; the roster owner marks them dead.
type RobotKiller interface {
	KillRobot(id int)
}

// Stats holds the grid's running counters.
type Stats struct {
	ItemsGenerated  int
	ItemsCollected  int
	ItemsDestroyed  int
	ItemsOnGrid     int
	RobotsDestroyed int
}

// Grid is the rectangular world. Cells are stored column-major:
// index = x*H + y, which is also the cell id.
type Grid struct {
	W     int
	H     int
	cells []Cell

	rnd        *rng.Stream
	killer     RobotKiller
	nextItemID int
	stats      Stats
}

// NewGrid creates a grid with every cell Free at temperature zero.
// The stream is used for fire temperatures set during the simulation.
func NewGrid(w, h int, rnd *rng.Stream) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		cells: make([]Cell, w*h),
		rnd:   rnd,
	}
	for i := range g.cells {
		g.cells[i] = Cell{ID: i, ground: Free}
	}
	return g
}

// SetRobotKiller registers the roster owner that is told about destroyed robots.
func (g *Grid) SetRobotKiller(k RobotKiller) {
	g.killer = k
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c core.Coord) int {
	return c.X*g.H + c.Y
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c core.Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// IsBorder returns true for cells on the outer ring of the grid.
func (g *Grid) IsBorder(c core.Coord) bool {
	return c.X == 0 || c.X == g.W-1 || c.Y == 0 || c.Y == g.H-1
}

// Cell returns a copy of the cell at c. Out-of-range coordinates yield an
// Obstacle cell with id -1.
func (g *Grid) Cell(c core.Coord) Cell {
	if !g.InBounds(c) {
		return Cell{ID: -1, ground: Obstacle}
	}
	return g.cells[g.index(c)]
}

// Terrain returns the terrain kind at c (Obstacle when out of range).
func (g *Grid) Terrain(c core.Coord) Terrain {
	return g.Cell(c).Terrain()
}

// Temperature returns the temperature at c.
func (g *Grid) Temperature(c core.Coord) float64 {
	return g.Cell(c).Temperature
}

// PositionID returns the id of the cell at c.
func (g *Grid) PositionID(c core.Coord) int {
	return g.Cell(c).ID
}

// Coord returns the coordinate of the cell with the given id.
func (g *Grid) Coord(id int) core.Coord {
	return core.C(id/g.H, id%g.H)
}

// Each calls fn for every cell in id order (x-major).
func (g *Grid) Each(fn func(c core.Coord, cell Cell)) {
	for i, cell := range g.cells {
		fn(g.Coord(i), cell)
	}
}

// Stats returns the current counters.
func (g *Grid) Stats() Stats {
	return g.stats
}

// SetGround sets the bare terrain of a cell, discarding any item on it.
// Occupancy kinds are rejected because they are derived from occupants.
func (g *Grid) SetGround(c core.Coord, t Terrain) error {
	if !g.InBounds(c) {
		return fmt.Errorf("world: %v out of range", c)
	}
	if t == OccupiedByRobot || t == OccupiedByItem {
		return fmt.Errorf("world: %v is not a ground terrain", t)
	}
	cell := &g.cells[g.index(c)]
	if cell.occupant.Kind == RobotOccupant {
		return fmt.Errorf("world: %v is occupied by robot %d", c, cell.occupant.ID)
	}
	if cell.occupant.Kind == ItemOccupant {
		cell.occupant = Occupant{}
		g.stats.ItemsOnGrid--
		g.stats.ItemsGenerated--
	}
	cell.ground = t
	return nil
}

// SetTemperature overrides the temperature of a cell.
func (g *Grid) SetTemperature(c core.Coord, temp float64) {
	if g.InBounds(c) {
		g.cells[g.index(c)].Temperature = temp
	}
}

// SpawnItem creates a new item on a Free cell and returns it.
func (g *Grid) SpawnItem(c core.Coord) (Item, bool) {
	if g.Terrain(c) != Free {
		return Item{}, false
	}
	item := Item{ID: g.nextItemID}
	g.nextItemID++
	g.cells[g.index(c)].occupant = Occupant{Kind: ItemOccupant, ID: item.ID}
	g.stats.ItemsGenerated++
	g.stats.ItemsOnGrid++
	return item, true
}

// PutRobot stands a robot on a Free cell.
func (g *Grid) PutRobot(c core.Coord, robotID int) bool {
	if g.Terrain(c) != Free {
		return false
	}
	g.cells[g.index(c)].occupant = Occupant{Kind: RobotOccupant, ID: robotID}
	return true
}

// DiscardHeldItem accounts for an item lost together with the robot
// carrying it.
func (g *Grid) DiscardHeldItem() {
	g.stats.ItemsDestroyed++
}

// CheckInvariants verifies the occupancy invariants of every cell.
// alive reports whether a robot id refers to a living robot.
func (g *Grid) CheckInvariants(alive func(id int) bool) error {
	onGrid := 0
	for i, cell := range g.cells {
		c := g.Coord(i)
		switch cell.occupant.Kind {
		case RobotOccupant:
			if cell.ground != Free {
				return fmt.Errorf("world: robot %d at %v stands on %v", cell.occupant.ID, c, cell.ground)
			}
			if alive != nil && !alive(cell.occupant.ID) {
				return fmt.Errorf("world: dead robot %d still occupies %v", cell.occupant.ID, c)
			}
		case ItemOccupant:
			if cell.ground != Free {
				return fmt.Errorf("world: item %d at %v lies on %v", cell.occupant.ID, c, cell.ground)
			}
			onGrid++
		}
		if cell.Terrain() == Free && cell.occupant.Kind != NoOccupant {
			return fmt.Errorf("world: free cell %v has an occupant", c)
		}
	}
	if onGrid != g.stats.ItemsOnGrid {
		return fmt.Errorf("world: %d items on grid, counter says %d", onGrid, g.stats.ItemsOnGrid)
	}
	return nil
}
