package core

import "testing"

func TestDirDelta(t *testing.T) {
	tests := []struct {
		dir    Dir
		dx, dy int
	}{
		{Up, 0, 1},
		{Down, 0, -1},
		{Left, -1, 0},
		{Right, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			dx, dy := tc.dir.Delta()
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Delta() = (%d, %d), expected (%d, %d)", dx, dy, tc.dx, tc.dy)
			}
		})
	}
}

func TestDirTurns(t *testing.T) {
	for _, d := range Dirs {
		if d.Clockwise().CounterClockwise() != d {
			t.Errorf("%v: clockwise then counter-clockwise should be identity", d)
		}
		if d.Clockwise().Clockwise() != d.Opposite() {
			t.Errorf("%v: two right turns should equal Opposite()", d)
		}
	}
	if Up.Clockwise() != Right || Right.Clockwise() != Down || Down.Clockwise() != Left || Left.Clockwise() != Up {
		t.Error("Clockwise order should be Up, Right, Down, Left")
	}
}

func TestToWorld(t *testing.T) {
	tests := []struct {
		name             string
		dir              Dir
		lateral, forward int
		expected         Coord
	}{
		{"up forward", Up, 0, 2, C(0, 2)},
		{"up right", Up, 1, 1, C(1, 1)},
		{"down forward", Down, 0, 2, C(0, -2)},
		{"down right", Down, 1, 1, C(-1, -1)},
		{"left forward", Left, 0, 3, C(-3, 0)},
		{"left right", Left, 1, 1, C(-1, 1)},
		{"right forward", Right, 0, 1, C(1, 0)},
		{"right right", Right, 2, 1, C(1, -2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.dir.ToWorld(tc.lateral, tc.forward)
			if got != tc.expected {
				t.Errorf("ToWorld(%d, %d) = %v, expected %v", tc.lateral, tc.forward, got, tc.expected)
			}
			l, f := tc.dir.ToLocal(got)
			if l != tc.lateral || f != tc.forward {
				t.Errorf("ToLocal(%v) = (%d, %d), expected (%d, %d)", got, l, f, tc.lateral, tc.forward)
			}
		})
	}
}

func TestCrossSignMatchesSide(t *testing.T) {
	for _, d := range Dirs {
		right := d.ToWorld(2, 1)
		left := d.ToWorld(-2, 1)
		ahead := d.ToWorld(0, 3)
		if d.Cross(right) >= 0 {
			t.Errorf("%v: right offset should have negative cross, got %d", d, d.Cross(right))
		}
		if d.Cross(left) <= 0 {
			t.Errorf("%v: left offset should have positive cross, got %d", d, d.Cross(left))
		}
		if d.Cross(ahead) != 0 {
			t.Errorf("%v: straight ahead should have zero cross, got %d", d, d.Cross(ahead))
		}
	}
}

func TestCoordDistances(t *testing.T) {
	a := C(1, 1)
	b := C(4, -1)
	if a.Chebyshev(b) != 3 {
		t.Errorf("Chebyshev() = %d, expected 3", a.Chebyshev(b))
	}
	if a.DistSq(b) != 13 {
		t.Errorf("DistSq() = %d, expected 13", a.DistSq(b))
	}
	if b.Sub(a) != C(3, -2) {
		t.Errorf("Sub() = %v, expected (3,-2)", b.Sub(a))
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestSign(t *testing.T) {
	if Sign(-4) != -1 || Sign(0) != 0 || Sign(9) != 1 {
		t.Error("Sign() returned unexpected values")
	}
}
