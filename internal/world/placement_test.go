package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
)

func TestPlaceRobotsDistinctFreeCells(t *testing.T) {
	g, err := Generate(DefaultGenParams(), rng.New(5))
	require.NoError(t, err)
	free := len(g.FreeCells())

	ids := []int{0, 1, 2, 3, 4, 5, 6, 7}
	pos, err := g.PlaceRobots(ids, rng.New(5))
	require.NoError(t, err)
	require.Len(t, pos, len(ids))

	seen := make(map[core.Coord]bool)
	for i, c := range pos {
		assert.False(t, seen[c], "cell %v assigned twice", c)
		seen[c] = true
		id, ok := g.Cell(c).RobotID()
		assert.True(t, ok)
		assert.Equal(t, ids[i], id)
	}
	assert.Len(t, g.FreeCells(), free-len(ids))
}

func TestPlaceRobotsDeterministic(t *testing.T) {
	p := DefaultGenParams()
	a, _ := Generate(p, rng.New(9))
	b, _ := Generate(p, rng.New(9))

	pa, err := a.PlaceRobots([]int{0, 1, 2}, rng.New(21))
	require.NoError(t, err)
	pb, err := b.PlaceRobots([]int{0, 1, 2}, rng.New(21))
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestPlaceRobotsNotEnoughCells(t *testing.T) {
	g := NewGrid(3, 3, rng.New(1))
	for _, c := range []core.Coord{core.C(0, 0), core.C(1, 1), core.C(2, 2), core.C(0, 1), core.C(1, 0), core.C(2, 1), core.C(1, 2)} {
		require.NoError(t, g.SetGround(c, Obstacle))
	}

	_, err := g.PlaceRobots([]int{0, 1, 2}, rng.New(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEnoughFreeCells))
	assert.Len(t, g.FreeCells(), 2, "nothing is placed on failure")
}
