package robot

import (
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/world"
)

// MemoryCell is what a robot believes about one cell. Entries are
// overwritten by camera sightings and never cleared.
type MemoryCell struct {
	Position   core.Coord
	Terrain    world.Terrain
	ItemID     *int
	RobotID    *int
	ObservedBy int
	ObservedAt uint
}

// Memory is a robot-owned arena of optional cells indexed by absolute
// coordinate, laid out like the grid.
type Memory struct {
	W     int
	H     int
	cells []MemoryCell
	known []bool
}

// NewMemory creates an empty memory of the given size.
func NewMemory(w, h int) *Memory {
	return &Memory{
		W:     w,
		H:     h,
		cells: make([]MemoryCell, w*h),
		known: make([]bool, w*h),
	}
}

// InBounds reports whether c can be stored.
func (m *Memory) InBounds(c core.Coord) bool {
	return c.X >= 0 && c.X < m.W && c.Y >= 0 && c.Y < m.H
}

// Lookup returns the remembered cell at c, if any.
func (m *Memory) Lookup(c core.Coord) (MemoryCell, bool) {
	if !m.InBounds(c) {
		return MemoryCell{}, false
	}
	i := c.X*m.H + c.Y
	return m.cells[i], m.known[i]
}

// Store overwrites the cell at cell.Position. It reports false when the
// position lies outside the memory.
func (m *Memory) Store(cell MemoryCell) bool {
	if !m.InBounds(cell.Position) {
		return false
	}
	i := cell.Position.X*m.H + cell.Position.Y
	m.cells[i] = cell
	m.known[i] = true
	return true
}

// Known returns the number of remembered cells.
func (m *Memory) Known() int {
	n := 0
	for _, k := range m.known {
		if k {
			n++
		}
	}
	return n
}

// FindWithin returns the first remembered cell with terrain t inside the
// square of half-width radius around center, scanning x-major.
func (m *Memory) FindWithin(center core.Coord, radius int, t world.Terrain) (core.Coord, bool) {
	for x := core.Max(0, center.X-radius); x <= core.Min(m.W-1, center.X+radius); x++ {
		for y := core.Max(0, center.Y-radius); y <= core.Min(m.H-1, center.Y+radius); y++ {
			c := core.C(x, y)
			if cell, ok := m.Lookup(c); ok && cell.Terrain == t {
				return c, true
			}
		}
	}
	return core.Coord{}, false
}
