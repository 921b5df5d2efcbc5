package world

import "github.com/vovakirdan/robotsim/internal/core"

// Fire temperatures are drawn uniformly from this range.
const (
	FireTempMin = 300.0
	FireTempMax = 400.0
)

// Move transfers the robot on from to the cell to.
// It succeeds only if to is in range and Free.
func (g *Grid) Move(from, to core.Coord) bool {
	if !g.InBounds(to) || !g.InBounds(from) {
		return false
	}
	if g.Terrain(to) != Free {
		return false
	}
	src := &g.cells[g.index(from)]
	if src.occupant.Kind != RobotOccupant {
		return false
	}
	g.cells[g.index(to)].occupant = src.occupant
	src.occupant = Occupant{}
	return true
}

// PlaceItem puts an item down on to. On a Free cell the item is placed; on
// a Base cell it is consumed and counted as collected. Any other cell fails.
func (g *Grid) PlaceItem(to core.Coord, item Item) bool {
	if !g.InBounds(to) {
		return false
	}
	switch g.Terrain(to) {
	case Free:
		g.cells[g.index(to)].occupant = Occupant{Kind: ItemOccupant, ID: item.ID}
		g.stats.ItemsOnGrid++
		return true
	case Base:
		g.stats.ItemsCollected++
		return true
	default:
		return false
	}
}

// RemoveItem lifts the item lying on from.
func (g *Grid) RemoveItem(from core.Coord) (Item, bool) {
	if !g.InBounds(from) {
		return Item{}, false
	}
	cell := &g.cells[g.index(from)]
	if cell.occupant.Kind != ItemOccupant {
		return Item{}, false
	}
	item := Item{ID: cell.occupant.ID}
	cell.occupant = Occupant{}
	g.stats.ItemsOnGrid--
	return item, true
}

// Destroy clears an Obstacle, item or robot from pos, killing any robot
// found. The border ring is indestructible.
func (g *Grid) Destroy(pos core.Coord) bool {
	if !g.InBounds(pos) || g.IsBorder(pos) {
		return false
	}
	switch g.Terrain(pos) {
	case Obstacle, OccupiedByRobot, OccupiedByItem:
	default:
		return false
	}
	g.evict(pos)
	g.cells[g.index(pos)].ground = Free
	return true
}

// SetOnFire ignites pos, killing any robot and burning any item on it.
// Base cells never burn.
func (g *Grid) SetOnFire(pos core.Coord) bool {
	if !g.InBounds(pos) || g.Terrain(pos) == Base {
		return false
	}
	g.evict(pos)
	cell := &g.cells[g.index(pos)]
	if cell.ground != Fire && g.rnd != nil {
		cell.Temperature = g.rnd.Uniform(FireTempMin, FireTempMax)
	}
	cell.ground = Fire
	return true
}

// evict removes the occupant of pos, destroying it.
func (g *Grid) evict(pos core.Coord) {
	cell := &g.cells[g.index(pos)]
	switch cell.occupant.Kind {
	case RobotOccupant:
		g.stats.RobotsDestroyed++
		if g.killer != nil {
			g.killer.KillRobot(cell.occupant.ID)
		}
	case ItemOccupant:
		g.stats.ItemsDestroyed++
		g.stats.ItemsOnGrid--
	}
	cell.occupant = Occupant{}
}
