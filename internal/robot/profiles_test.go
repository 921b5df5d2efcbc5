package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/world"
)

func newTestTurn(seed int64, front world.Terrain, beacons ...NearbyBeacon) *turn {
	return &turn{rnd: rng.New(seed), front: front, beacons: beacons}
}

func beacon(x, y, card int) NearbyBeacon {
	return NearbyBeacon{Pos: core.C(x, y), Cardinality: card}
}

func TestNormalBecomesBeaconNearBase(t *testing.T) {
	r := New(0, Normal, 10, 10, rng.New(1))
	tt := newTestTurn(1, world.Free)
	base := core.C(3, 3)
	tt.base = &base

	assert.Equal(t, DoNothing, r.decide(tt))
	assert.Equal(t, Beacon, r.Role)
	require.NotNil(t, r.Cardinality)
	assert.Equal(t, 1, *r.Cardinality)
}

func TestNormalExtendsChainFromSingleBeacon(t *testing.T) {
	r := New(0, Normal, 10, 10, rng.New(1))
	assert.Equal(t, DoNothing, r.decide(newTestTurn(1, world.Free, beacon(2, 2, 4))))
	assert.Equal(t, Beacon, r.Role)
	assert.Equal(t, 5, *r.Cardinality)
}

func TestNormalWalksWithoutChain(t *testing.T) {
	r := New(0, Normal, 10, 10, rng.New(1))
	r.avoiding = true
	assert.Equal(t, StepForward, r.decide(newTestTurn(1, world.Free)))
	assert.Equal(t, Walker, r.Role)
	assert.False(t, r.avoiding)
}

func TestBeaconStaysWithFewPeers(t *testing.T) {
	r := New(0, Normal, 10, 10, rng.New(1))
	r.becomeBeacon(2)
	for seed := int64(0); seed < 20; seed++ {
		assert.Equal(t, DoNothing, r.decide(newTestTurn(seed, world.Free, beacon(1, 1, 1), beacon(2, 2, 3))))
	}
	assert.Equal(t, Beacon, r.Role)
}

func TestBeaconEventuallyRevertsInCrowd(t *testing.T) {
	reverted := 0
	for seed := int64(0); seed < 200; seed++ {
		r := New(0, Normal, 10, 10, rng.New(1))
		r.becomeBeacon(2)
		r.decide(newTestTurn(seed, world.Free, beacon(1, 1, 1), beacon(2, 2, 3), beacon(3, 3, 2)))
		if r.Role == Walker {
			reverted++
			assert.Nil(t, r.Cardinality)
		}
	}
	assert.InDelta(t, 60, reverted, 25, "about 30%% of beacons in a crowd revert")
}

func TestWalkerInCrowdDelivers(t *testing.T) {
	r := New(0, Normal, 10, 10, rng.New(1))
	r.Held = &world.Item{ID: 1}
	tt := newTestTurn(1, world.Base, beacon(1, 1, 1), beacon(2, 2, 2))
	assert.Equal(t, PutDownAnItem, r.decide(tt))

	r = New(0, Normal, 10, 10, rng.New(1))
	tt = newTestTurn(1, world.OccupiedByItem, beacon(1, 1, 1), beacon(2, 2, 2))
	assert.Equal(t, GraspAnItem, r.decide(tt))
}

func TestCarrierFollowsLowestBeacon(t *testing.T) {
	r := New(0, Normal, 20, 20, rng.New(1))
	r.Pos = core.C(10, 10)
	r.Facing = core.Up
	r.Held = &world.Item{ID: 1}

	// Best beacon is behind on the right
	tt := newTestTurn(1, world.Free, beacon(4, 16, 3), beacon(13, 7, 1))
	assert.Equal(t, TurnRight, r.decide(tt))
	assert.Equal(t, core.Up, r.Facing, "deciding does not move the robot")
}

func TestLiarUndercounts(t *testing.T) {
	tests := []struct {
		name    string
		beacons []NearbyBeacon
		want    *int
	}{
		{"one beacon", []NearbyBeacon{beacon(1, 1, 3)}, nil},
		{"two beacons", []NearbyBeacon{beacon(1, 1, 3), beacon(2, 2, 5)}, intp(2)},
		{"three beacons", []NearbyBeacon{beacon(1, 1, 4), beacon(2, 2, 5), beacon(3, 3, 6)}, intp(3)},
		{"floor at one", []NearbyBeacon{beacon(1, 1, 1), beacon(2, 2, 1)}, intp(1)},
		{"four beacons", []NearbyBeacon{beacon(1, 1, 4), beacon(2, 2, 5), beacon(3, 3, 6), beacon(4, 4, 2)}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(0, Liar, 10, 10, rng.New(1))
			got := r.decide(newTestTurn(1, world.Free, tc.beacons...))
			if tc.want == nil {
				assert.Equal(t, StepForward, got)
				assert.Equal(t, Walker, r.Role)
				return
			}
			assert.Equal(t, DoNothing, got)
			assert.Equal(t, Beacon, r.Role)
			assert.Equal(t, *tc.want, *r.Cardinality)
		})
	}
}

func TestLiarIgnoresItems(t *testing.T) {
	r := New(0, Liar, 10, 10, rng.New(1))
	got := r.decide(newTestTurn(1, world.OccupiedByItem))
	assert.Contains(t, []Action{TurnLeft, TurnRight}, got)
	assert.True(t, r.avoiding)
}

func TestItemDestroyerSmashesItems(t *testing.T) {
	destroyed := 0
	for seed := int64(0); seed < 300; seed++ {
		r := New(0, ItemDestroyer, 10, 10, rng.New(1))
		switch got := r.decide(newTestTurn(seed, world.OccupiedByItem)); got {
		case Destroy:
			destroyed++
		default:
			assert.Equal(t, TurnRight, got, "no memory means a right turn")
		}
	}
	assert.InDelta(t, 210, destroyed, 40)
}

func TestItemDestroyerWalksFree(t *testing.T) {
	r := New(0, ItemDestroyer, 10, 10, rng.New(1))
	assert.Equal(t, StepForward, r.decide(newTestTurn(1, world.Free)))
}

func TestArsonistHuntsNearestBeacon(t *testing.T) {
	r := New(0, Arsonist, 20, 20, rng.New(1))
	r.Pos = core.C(10, 10)

	// Nearest beacon is behind on the left; a turn ends the turn
	tt := newTestTurn(1, world.Free, beacon(2, 18, 1), beacon(9, 9, 4))
	assert.Equal(t, TurnLeft, r.decide(tt))

	tt = newTestTurn(1, world.Free, beacon(10, 14, 1))
	assert.Equal(t, StepForward, r.decide(tt))
}

func TestArsonistIgnites(t *testing.T) {
	for _, front := range []world.Terrain{world.Obstacle, world.OccupiedByItem, world.OccupiedByRobot} {
		ignited := 0
		for seed := int64(0); seed < 400; seed++ {
			r := New(0, Arsonist, 10, 10, rng.New(1))
			if r.decide(newTestTurn(seed, front)) == StartFire {
				ignited++
			}
		}
		assert.InDelta(t, 20, ignited, 15, "front %v", front)
	}

	r := New(0, Arsonist, 10, 10, rng.New(1))
	assert.NotEqual(t, StartFire, r.decide(newTestTurn(1, world.Base)))
}

func TestAvoidLeftRule(t *testing.T) {
	gps := core.C(5, 5)
	left := core.C(4, 5)

	tests := []struct {
		name    string
		profile Profile
		held    bool
		memory  *world.Terrain
		want    Action
	}{
		{"unknown left", Normal, false, nil, TurnRight},
		{"free left", Normal, false, terrainp(world.Free), TurnLeft},
		{"item left empty-handed", Normal, false, terrainp(world.OccupiedByItem), TurnLeft},
		{"item left carrying", Normal, true, terrainp(world.OccupiedByItem), TurnRight},
		{"base left carrying", Normal, true, terrainp(world.Base), TurnLeft},
		{"base left empty-handed", Normal, false, terrainp(world.Base), TurnRight},
		{"obstacle left", Normal, false, terrainp(world.Obstacle), TurnRight},
		{"destroyer item left", ItemDestroyer, true, terrainp(world.OccupiedByItem), TurnLeft},
		{"destroyer base left", ItemDestroyer, true, terrainp(world.Base), TurnRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(0, tc.profile, 10, 10, rng.New(1))
			if tc.held {
				r.Held = &world.Item{ID: 2}
			}
			if tc.memory != nil {
				remember(r, left, *tc.memory)
			}
			tt := newTestTurn(1, world.Fire)
			tt.read = Readings{GPS: &gps, Orientation: dirp(core.Up)}

			rule := roamLeft
			if tc.profile == Normal {
				rule = r.chainLeft
			}
			assert.Equal(t, tc.want, r.avoid(tt, rule))
			assert.True(t, r.avoiding)
		})
	}
}
