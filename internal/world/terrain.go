// Package world owns the simulated environment: the grid of cells with their
// terrain, temperature and occupants, the procedural generator that builds
// it, and every terrain mutation robots can perform.
package world

// Terrain is the observable kind of a grid cell.
type Terrain uint8

const (
	Obstacle Terrain = iota
	Fire
	OccupiedByRobot
	OccupiedByItem
	Free
	Base
)

// String returns the name used in fact rows.
func (t Terrain) String() string {
	switch t {
	case Obstacle:
		return "Obstacle"
	case Fire:
		return "Fire"
	case OccupiedByRobot:
		return "OccupiedByRobot"
	case OccupiedByItem:
		return "OccupiedByItem"
	case Free:
		return "Free"
	case Base:
		return "Base"
	default:
		return "Unknown"
	}
}

// Passable reports whether ranging sensors see through the terrain.
func (t Terrain) Passable() bool {
	return t == Free || t == Fire
}

// OccupantKind tags what, if anything, stands on a cell.
type OccupantKind uint8

const (
	NoOccupant OccupantKind = iota
	ItemOccupant
	RobotOccupant
)

// Occupant is a non-owning reference to the robot or item on a cell.
type Occupant struct {
	Kind OccupantKind
	ID   int
}

// Item is a collectible object. Items carry no state besides their id.
type Item struct {
	ID int
}

// Cell is one grid square. The occupancy terrain kinds are derived from the
// occupant and never stored, so they cannot drift from it.
type Cell struct {
	ID          int
	Temperature float64
	ground      Terrain // Free, Obstacle, Fire or Base
	occupant    Occupant
}

// Terrain returns the observable terrain kind of the cell.
func (c Cell) Terrain() Terrain {
	switch c.occupant.Kind {
	case RobotOccupant:
		return OccupiedByRobot
	case ItemOccupant:
		return OccupiedByItem
	default:
		return c.ground
	}
}

// Occupant returns the cell's occupant reference.
func (c Cell) Occupant() Occupant {
	return c.occupant
}

// ItemID returns the id of the item on the cell, if any.
func (c Cell) ItemID() (int, bool) {
	if c.occupant.Kind == ItemOccupant {
		return c.occupant.ID, true
	}
	return 0, false
}

// RobotID returns the id of the robot on the cell, if any.
func (c Cell) RobotID() (int, bool) {
	if c.occupant.Kind == RobotOccupant {
		return c.occupant.ID, true
	}
	return 0, false
}
