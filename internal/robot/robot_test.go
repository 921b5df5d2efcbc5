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

type fakeBeacons map[core.Coord]int

func (f fakeBeacons) BeaconAt(c core.Coord) (int, bool) {
	card, ok := f[c]
	return card, ok
}

func intp(v int) *int                 { return &v }
func floatp(v float64) *float64       { return &v }
func coordp(c core.Coord) *core.Coord { return &c }
func dirp(d core.Dir) *core.Dir       { return &d }

func remember(r *Robot, c core.Coord, t world.Terrain) {
	r.memory.Store(MemoryCell{Position: c, Terrain: t, ObservedBy: r.ID})
}

func TestFrontType(t *testing.T) {
	gps := core.C(5, 5)
	front := core.C(5, 6)

	tests := []struct {
		name   string
		memory *world.Terrain
		read   Readings
		want   world.Terrain
	}{
		{
			name:   "remembered free, lidar sees past",
			memory: terrainp(world.Free),
			read:   Readings{GPS: &gps, Lidar: intp(3), Radar: intp(1)},
			want:   world.Free,
		},
		{
			name:   "remembered free, radar sees past",
			memory: terrainp(world.Free),
			read:   Readings{GPS: &gps, Lidar: intp(1), Radar: intp(4)},
			want:   world.Free,
		},
		{
			name:   "remembered free, no range readings",
			memory: terrainp(world.Free),
			read:   Readings{GPS: &gps},
			want:   world.Free,
		},
		{
			name:   "remembered free, contradicted",
			memory: terrainp(world.Free),
			read:   Readings{GPS: &gps, Lidar: intp(1)},
			want:   world.OccupiedByRobot,
		},
		{
			name:   "remembered obstacle",
			memory: terrainp(world.Obstacle),
			read:   Readings{GPS: &gps, Lidar: intp(8)},
			want:   world.Obstacle,
		},
		{
			name: "no memory, cool, lidar clear",
			read: Readings{GPS: &gps, Temperature: floatp(40), Lidar: intp(2), Radar: intp(1)},
			want: world.Free,
		},
		{
			name: "no memory, cool, only radar clear",
			read: Readings{GPS: &gps, Temperature: floatp(40), Lidar: intp(1), Radar: intp(5)},
			want: world.OccupiedByRobot,
		},
		{
			name: "no memory, hot, radar clear",
			read: Readings{Temperature: floatp(300), Radar: intp(3)},
			want: world.Free,
		},
		{
			name: "no memory, hot, only lidar clear",
			read: Readings{Temperature: floatp(300), Lidar: intp(3)},
			want: world.OccupiedByRobot,
		},
		{
			name: "total uncertainty",
			read: Readings{},
			want: world.OccupiedByRobot,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(0, Normal, 10, 10, rng.New(1))
			if tc.memory != nil {
				remember(r, front, *tc.memory)
			}
			tc.read.Orientation = dirp(core.Up)
			assert.Equal(t, tc.want, r.frontType(tc.read))
		})
	}
}

func terrainp(t world.Terrain) *world.Terrain { return &t }

func TestFrontTypeUsesMeasuredPose(t *testing.T) {
	r := New(0, Normal, 10, 10, rng.New(1))
	remember(r, core.C(6, 5), world.Base)
	remember(r, core.C(5, 6), world.Obstacle)

	gps := core.C(5, 5)
	assert.Equal(t, world.Base, r.frontType(Readings{GPS: &gps, Orientation: dirp(core.Right)}))
	assert.Equal(t, world.Obstacle, r.frontType(Readings{GPS: &gps}), "missing IMU is taken as Up")
}

func TestApproach(t *testing.T) {
	tests := []struct {
		name        string
		facing      core.Dir
		target      core.Coord
		avoidCenter bool
		want        Action
	}{
		{"ahead", core.Up, core.C(5, 9), false, StepForward},
		{"ahead and left", core.Up, core.C(2, 7), false, StepForward},
		{"behind right", core.Up, core.C(7, 3), false, TurnRight},
		{"behind left", core.Up, core.C(3, 3), false, TurnLeft},
		{"directly right", core.Up, core.C(6, 5), false, TurnRight},
		{"directly left", core.Up, core.C(4, 5), false, TurnLeft},
		{"beside, avoiding center", core.Up, core.C(4, 5), true, StepForward},
		{"two beside, avoiding center", core.Up, core.C(3, 5), true, TurnLeft},
		{"facing right, target up", core.Right, core.C(5, 8), false, TurnLeft},
		{"facing down, target up", core.Down, core.C(5, 8), false, TurnRight},
		{"facing left, target behind left", core.Left, core.C(8, 2), false, TurnLeft},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := &Robot{Pos: core.C(5, 5), Facing: tc.facing}
			assert.Equal(t, tc.want, r.approach(tc.target, tc.avoidCenter))
		})
	}
}

func TestBrokenRobotHasOneDamagedSensor(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		r := New(0, Broken, 5, 5, rng.New(seed))
		damaged := 0
		for k := sensor.GPS; k <= sensor.Thermometer; k++ {
			if r.Sensors.Level(k) == sensor.Damaged {
				damaged++
			}
		}
		assert.Equal(t, 1, damaged, "seed %d", seed)
	}

	assert.Equal(t, sensor.GPS, brokenSensor(0.1))
	assert.Equal(t, sensor.IMU, brokenSensor(0.3))
	assert.Equal(t, sensor.Radar, brokenSensor(0.5))
	assert.Equal(t, sensor.LiDAR, brokenSensor(0.7))
	assert.Equal(t, sensor.Thermometer, brokenSensor(0.9))
	assert.Equal(t, sensor.Suite{}, New(0, Normal, 5, 5, rng.New(1)).Sensors)
}

func TestKillReturnsHeldItem(t *testing.T) {
	r := New(3, Normal, 5, 5, rng.New(1))
	r.Held = &world.Item{ID: 8}
	held := r.Kill()
	require.NotNil(t, held)
	assert.Equal(t, 8, held.ID)
	assert.False(t, r.Alive)
	assert.Nil(t, r.Held)
}

func TestDeadRobotDoesNotStep(t *testing.T) {
	g := world.NewGrid(5, 5, rng.New(1))
	r := New(0, Normal, 5, 5, rng.New(1))
	r.Pos = core.C(2, 2)
	require.True(t, g.PutRobot(r.Pos, r.ID))
	r.Kill()

	_, ok := r.Step(1, Env{Grid: g, Rand: rng.New(1)})
	assert.False(t, ok)
}

func TestMemoryFindWithin(t *testing.T) {
	m := NewMemory(30, 30)
	m.Store(MemoryCell{Position: core.C(20, 20), Terrain: world.Base})

	_, ok := m.FindWithin(core.C(11, 11), CommunicationRange, world.Base)
	assert.False(t, ok)
	c, ok := m.FindWithin(core.C(12, 12), CommunicationRange, world.Base)
	assert.True(t, ok)
	assert.Equal(t, core.C(20, 20), c)

	assert.False(t, m.Store(MemoryCell{Position: core.C(30, 0)}))
	assert.Equal(t, 1, m.Known())
}
