// Package core provides the shared geometry of the simulation: grid
// coordinates, the four facing directions and the rotations between a
// robot's local frame and world space. It has no external dependencies.
package core

import "fmt"

// Coord is a position on the grid. X grows to the right, Y grows upward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// AddCoord returns the sum of two coordinates.
func (c Coord) AddCoord(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns the offset from other to c.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// Step returns a new Coord one step in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Chebyshev returns the king-move distance to another coordinate.
func (c Coord) Chebyshev(other Coord) int {
	return Max(Abs(c.X-other.X), Abs(c.Y-other.Y))
}

// DistSq returns the squared Euclidean distance to another coordinate.
func (c Coord) DistSq(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	return dx*dx + dy*dy
}

// Dir is one of the four facing directions, ordered clockwise.
type Dir uint8

const (
	Up Dir = iota
	Right
	Down
	Left
)

// Dirs lists all directions in clockwise order starting at Up.
var Dirs = [4]Dir{Up, Right, Down, Left}

// String returns the name of the direction.
func (d Dir) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the unit (dx, dy) offset of one step in this direction.
// Up increases Y.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Right:
		return 1, 0
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Vec returns the unit offset as a Coord.
func (d Dir) Vec() Coord {
	dx, dy := d.Delta()
	return C(dx, dy)
}

// Clockwise returns the direction after a right turn.
func (d Dir) Clockwise() Dir {
	return (d + 1) % 4
}

// CounterClockwise returns the direction after a left turn.
func (d Dir) CounterClockwise() Dir {
	return (d + 3) % 4
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// ToWorld rotates a local (lateral, forward) offset into a world offset for
// an observer facing d. Positive lateral is to the observer's right.
func (d Dir) ToWorld(lateral, forward int) Coord {
	f := d.Vec()
	r := d.Clockwise().Vec()
	return C(r.X*lateral+f.X*forward, r.Y*lateral+f.Y*forward)
}

// ToLocal is the inverse of ToWorld: it returns the (lateral, forward)
// components of a world offset as seen by an observer facing d.
func (d Dir) ToLocal(offset Coord) (lateral, forward int) {
	f := d.Vec()
	r := d.Clockwise().Vec()
	return offset.X*r.X + offset.Y*r.Y, offset.X*f.X + offset.Y*f.Y
}

// Cross returns the z component of the cross product of the facing vector
// and the offset. It is negative for offsets on the observer's right.
func (d Dir) Cross(offset Coord) int {
	f := d.Vec()
	return f.X*offset.Y - f.Y*offset.X
}

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
