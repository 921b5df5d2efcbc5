package sensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/world"
)

func meanGPSError(level DamageLevel, samples int, rnd *rng.Stream) (float64, int) {
	truth := core.C(20, 20)
	total := 0.0
	missing := 0
	for range samples {
		got := ReadGPS(level, truth, rnd)
		if got == nil {
			missing++
			continue
		}
		total += float64(core.Abs(got.X-truth.X) + core.Abs(got.Y-truth.Y))
	}
	return total / float64(samples), missing
}

func TestGPSDegradationMonotonic(t *testing.T) {
	const samples = 10000
	rnd := rng.New(13)

	okErr, okMissing := meanGPSError(Ok, samples, rnd)
	damagedErr, damagedMissing := meanGPSError(Damaged, samples, rnd)
	_, destroyedMissing := meanGPSError(Destroyed, samples, rnd)

	assert.Zero(t, okMissing)
	assert.Zero(t, damagedMissing)
	assert.GreaterOrEqual(t, damagedErr, okErr)
	assert.Equal(t, samples, destroyedMissing, "destroyed GPS never reads")
}

func TestDestroyedSensorsNeverRead(t *testing.T) {
	rnd := rng.New(1)
	g := world.NewGrid(5, 5, rnd)
	require.NoError(t, g.SetGround(core.C(2, 4), world.Obstacle))

	assert.Nil(t, ReadGPS(Destroyed, core.C(2, 2), rnd))
	assert.Nil(t, ReadIMU(Destroyed, core.Up, rnd))
	assert.Nil(t, ReadThermometer(Destroyed, 20, rnd))
	assert.Nil(t, LiDARSensor.Read(Destroyed, g, core.C(2, 2), core.Up, rnd))
	assert.Nil(t, RadarSensor.Read(Destroyed, g, core.C(2, 2), core.Up, rnd))
}

func TestIMUMostlyCorrect(t *testing.T) {
	rnd := rng.New(4)
	correct := 0
	for range 1000 {
		got := ReadIMU(Ok, core.Left, rnd)
		require.NotNil(t, got)
		if *got == core.Left {
			correct++
		} else {
			assert.Contains(t, []core.Dir{core.Up, core.Down}, *got, "only one-step rotations")
		}
	}
	assert.Greater(t, correct, 990)
}

func TestThermometerNoiseBands(t *testing.T) {
	rnd := rng.New(8)
	spread := func(temp float64) float64 {
		sum := 0.0
		for range 5000 {
			sum += math.Abs(*ReadThermometer(Ok, temp, rnd) - temp)
		}
		return sum / 5000
	}
	assert.Greater(t, spread(250), spread(20), "extreme temperatures are noisier")
	assert.Greater(t, spread(-80), spread(20))
}

func corridor(t *testing.T, wallAt int) *world.Grid {
	t.Helper()
	g := world.NewGrid(3, 20, rng.New(1))
	for y := 0; y < 20; y++ {
		g.SetTemperature(core.C(1, y), 20)
	}
	if wallAt >= 0 {
		require.NoError(t, g.SetGround(core.C(1, wallAt), world.Obstacle))
	}
	return g
}

func TestRangefinderDistance(t *testing.T) {
	tests := []struct {
		name   string
		sensor Rangefinder
		hot    bool
		wallAt int
		want   *int
	}{
		{"lidar near wall", LiDARSensor, false, 4, ptr(4)},
		{"lidar at threshold", LiDARSensor, false, 10, ptr(10)},
		{"lidar beyond threshold", LiDARSensor, false, 11, nil},
		{"lidar hot threshold", LiDARSensor, true, 6, nil},
		{"lidar hot within", LiDARSensor, true, 5, ptr(5)},
		{"radar hot threshold", RadarSensor, true, 8, nil},
		{"radar hot within", RadarSensor, true, 7, ptr(7)},
		{"ray leaves grid", RadarSensor, false, -1, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := corridor(t, tc.wallAt)
			if tc.hot {
				g.SetTemperature(core.C(1, 0), 150)
			}
			got, ok := cast(g, core.C(1, 0), core.Up, tc.sensor.threshold(g, core.C(1, 0)))
			if tc.want == nil {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, *tc.want, got)
		})
	}
}

func TestRangefinderNoiseAroundTruth(t *testing.T) {
	g := corridor(t, 6)
	rnd := rng.New(2)
	for range 200 {
		got := LiDARSensor.Read(Ok, g, core.C(1, 0), core.Up, rnd)
		require.NotNil(t, got)
		assert.InDelta(t, 6, *got, 3)
	}
}

func TestFireIsTransparent(t *testing.T) {
	g := corridor(t, 5)
	require.NoError(t, g.SetGround(core.C(1, 2), world.Fire))
	assert.Equal(t, 5, TrueDistance(g, core.C(1, 0), core.Up))
}

func TestTrueDistanceIgnoresThreshold(t *testing.T) {
	g := corridor(t, 15)
	assert.Equal(t, 15, TrueDistance(g, core.C(1, 0), core.Up))
	assert.Equal(t, 1, TrueDistance(g, core.C(1, 0), core.Down))
}

func TestSuite(t *testing.T) {
	var s Suite
	for k := GPS; k < numKinds; k++ {
		assert.Equal(t, Ok, s.Level(k))
	}
	d := s.With(Radar, Damaged)
	assert.Equal(t, Damaged, d.Level(Radar))
	assert.Equal(t, Ok, s.Level(Radar), "With returns a copy")
	assert.Equal(t, "Destroyed", Destroyed.String())
	assert.Equal(t, "Thermometer", Thermometer.String())
}

func TestAnalyze(t *testing.T) {
	rows, err := Analyze(500, rng.New(13))
	require.NoError(t, err)
	require.Len(t, rows, 5*(len(Levels)+1))

	for _, r := range rows {
		assert.Equal(t, 500, r.Samples)
		assert.LessOrEqual(t, r.Exact, r.Near, "%s %s", r.Sensor, r.Level)
		if r.Level == Destroyed.String() && r.Sensor != LiDARSensor.Name && r.Sensor != RadarSensor.Name {
			assert.Zero(t, r.Near, "%s destroyed", r.Sensor)
		}
	}
	assert.Greater(t, rows[0].ExactRate(), rows[3].ExactRate(), "working GPS beats guessing")
}

func ptr(v int) *int { return &v }
