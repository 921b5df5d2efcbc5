package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/sensor"
	"github.com/vovakirdan/robotsim/internal/world"
)

// inFan reports whether offset lies in the camera fan of an observer facing d.
func inFan(d core.Dir, offset core.Coord) bool {
	l, f := d.ToLocal(offset)
	return f >= 1 && f <= sensor.CameraDepth && core.Abs(l) <= f
}

// clearPose finds a cool interior cell and a heading with at least three
// free cells ahead and the base out of the camera's sight.
func clearPose(g *world.Grid) (core.Coord, core.Dir, bool) {
	var base core.Coord
	g.Each(func(c core.Coord, cell world.Cell) {
		if cell.Terrain() == world.Base {
			base = c
		}
	})
	for _, c := range g.FreeCells() {
		if g.IsBorder(c) || g.Temperature(c) > 95 {
			continue
		}
		for _, d := range core.Dirs {
			if sensor.TrueDistance(g, c, d) >= 4 && !inFan(d, base.Sub(c)) {
				return c, d, true
			}
		}
	}
	return core.Coord{}, 0, false
}

func TestStepOnEmptyMap(t *testing.T) {
	p := world.DefaultGenParams()
	p.Width, p.Height = 10, 10
	p.ItemProbability = 0
	p.ObstacleCoverage = 0
	rnd := rng.New(13)
	g, err := world.Generate(p, rnd)
	require.NoError(t, err)

	pos, facing, ok := clearPose(g)
	require.True(t, ok)

	r := New(0, Normal, g.W, g.H, rnd)
	r.Pos, r.Facing = pos, facing
	require.True(t, g.PutRobot(pos, r.ID))

	rec, ok := r.Step(1, Env{Grid: g, Beacons: fakeBeacons{}, Rand: rnd})
	require.True(t, ok)
	assert.Equal(t, StepForward, rec.Action)
	assert.True(t, rec.Success)
	assert.Equal(t, pos.Step(facing), r.Pos)
	assert.Equal(t, g.PositionID(pos), rec.FromPositionID)
	assert.Equal(t, g.PositionID(r.Pos), rec.ToPositionID)
	assert.Equal(t, pos, rec.RealGPS)
	assert.Equal(t, facing, rec.RealOrientation)
	assert.GreaterOrEqual(t, rec.RealDistance, 4)
	assert.NotEmpty(t, rec.Observed)
	assert.NoError(t, g.CheckInvariants(nil))
}

func TestStepWithoutGPSRemembersNothing(t *testing.T) {
	g := world.NewGrid(9, 9, rng.New(1))
	rnd := rng.New(2)
	r := New(4, Normal, 9, 9, rnd)
	r.Sensors = r.Sensors.With(sensor.GPS, sensor.Destroyed)
	r.Pos = core.C(4, 4)
	require.True(t, g.PutRobot(r.Pos, r.ID))

	rec, ok := r.Step(3, Env{Grid: g, Rand: rnd})
	require.True(t, ok)
	assert.Nil(t, rec.GPS)
	assert.Empty(t, rec.Observed)
	assert.Zero(t, r.Memory().Known())
	assert.Equal(t, uint(3), rec.Time)
	assert.Equal(t, 4, rec.RobotID)
}

func TestStepRecordsObservations(t *testing.T) {
	g := world.NewGrid(9, 9, rng.New(1))
	rnd := rng.New(5)
	r := New(1, Normal, 9, 9, rnd)
	r.Pos = core.C(4, 1)
	require.True(t, g.PutRobot(r.Pos, r.ID))

	rec, ok := r.Step(7, Env{Grid: g, Rand: rnd})
	require.True(t, ok)
	require.NotNil(t, rec.GPS)
	require.NotEmpty(t, rec.Observed)
	for _, cell := range rec.Observed {
		assert.Equal(t, uint(7), cell.ObservedAt)
		assert.Equal(t, 1, cell.ObservedBy)
		stored, ok := r.Memory().Lookup(cell.Position)
		assert.True(t, ok)
		assert.Equal(t, cell.Terrain, stored.Terrain)
	}
}

func TestPerformItemHandling(t *testing.T) {
	g := world.NewGrid(7, 7, rng.New(1))
	r := New(0, Normal, 7, 7, rng.New(1))
	r.Pos = core.C(3, 3)
	require.True(t, g.PutRobot(r.Pos, r.ID))
	item, ok := g.SpawnItem(core.C(3, 4))
	require.True(t, ok)

	assert.False(t, r.perform(PutDownAnItem, g), "nothing to put down")
	assert.True(t, r.perform(GraspAnItem, g))
	require.NotNil(t, r.Held)
	assert.Equal(t, item.ID, r.Held.ID)
	assert.False(t, r.perform(GraspAnItem, g), "hands are full")

	require.NoError(t, g.SetGround(core.C(3, 4), world.Base))
	assert.True(t, r.perform(PutDownAnItem, g))
	assert.Nil(t, r.Held)
	assert.Equal(t, 1, g.Stats().ItemsCollected)

	assert.True(t, r.perform(TurnRight, g))
	assert.Equal(t, core.Right, r.Facing)
	assert.True(t, r.perform(TurnLeft, g))
	assert.True(t, r.perform(TurnLeft, g))
	assert.Equal(t, core.Left, r.Facing)
	assert.True(t, r.perform(StepForward, g))
	assert.Equal(t, core.C(2, 3), r.Pos)
	assert.True(t, r.perform(DoNothing, g))
	assert.NoError(t, g.CheckInvariants(nil))
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, "PutDownAnItem", PutDownAnItem.String())
	assert.Equal(t, "StartFire", StartFire.String())
	assert.Equal(t, "ItemDestroyer", ItemDestroyer.String())
	assert.Equal(t, "Beacon", Beacon.String())
}
