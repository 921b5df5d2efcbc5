package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
)

func countTerrain(g *Grid) map[Terrain]int {
	counts := make(map[Terrain]int)
	g.Each(func(_ core.Coord, cell Cell) {
		counts[cell.Terrain()]++
	})
	return counts
}

func TestGenerateDeterministic(t *testing.T) {
	p := DefaultGenParams()
	p.Width, p.Height = 25, 18

	a, err := Generate(p, rng.New(42))
	require.NoError(t, err)
	b, err := Generate(p, rng.New(42))
	require.NoError(t, err)

	assert.Equal(t, a.cells, b.cells)
	assert.Equal(t, a.Stats(), b.Stats())
}

func TestGenerateBorderIsObstacle(t *testing.T) {
	p := DefaultGenParams()
	g, err := Generate(p, rng.New(7))
	require.NoError(t, err)

	g.Each(func(c core.Coord, cell Cell) {
		if g.IsBorder(c) {
			// The single Base may land on the border
			assert.Contains(t, []Terrain{Obstacle, Base}, cell.Terrain(), "border %v", c)
		}
	})
	assert.Equal(t, 1, countTerrain(g)[Base])
}

func TestGenerateEmptyScenario(t *testing.T) {
	p := DefaultGenParams()
	p.Width, p.Height = 10, 10
	p.ItemProbability = 0
	p.ObstacleCoverage = 0

	g, err := Generate(p, rng.New(13))
	require.NoError(t, err)

	counts := countTerrain(g)
	assert.Equal(t, 1, counts[Base])
	assert.Zero(t, counts[Fire])
	assert.Zero(t, counts[OccupiedByItem])
	g.Each(func(c core.Coord, cell Cell) {
		if !g.IsBorder(c) && cell.Terrain() != Base {
			assert.Equal(t, Free, cell.Terrain(), "interior %v", c)
		}
	})
	assert.Zero(t, g.Stats().ItemsGenerated)
}

func TestGenerateTemperatures(t *testing.T) {
	p := DefaultGenParams()
	g, err := Generate(p, rng.New(3))
	require.NoError(t, err)

	g.Each(func(c core.Coord, cell Cell) {
		if cell.Terrain() == Fire {
			assert.GreaterOrEqual(t, cell.Temperature, FireTempMin)
			assert.Less(t, cell.Temperature, FireTempMax)
			return
		}
		assert.Less(t, cell.Temperature, FireTempMax)
		assert.GreaterOrEqual(t, cell.Temperature, p.BaseTempMin)
	})
}

func TestGenerateCoverageAndItems(t *testing.T) {
	p := DefaultGenParams()
	p.Width, p.Height = 60, 60
	p.ItemProbability = 0.1
	p.ObstacleCoverage = 0.3

	g, err := Generate(p, rng.New(11))
	require.NoError(t, err)

	counts := countTerrain(g)
	stats := g.Stats()
	assert.Equal(t, counts[OccupiedByItem], stats.ItemsOnGrid)
	assert.Equal(t, stats.ItemsGenerated, stats.ItemsOnGrid)
	assert.Greater(t, stats.ItemsGenerated, 0)
	assert.Greater(t, counts[Fire], 0)
	// Fill may repaint cells, so painted cells never exceed the budget plus the border
	assert.LessOrEqual(t, counts[Obstacle]+counts[Fire], 60*60*3/10+4*59)
	assert.NoError(t, g.CheckInvariants(nil))
}

func TestGenerateRejectsBadParams(t *testing.T) {
	p := DefaultGenParams()
	p.ItemProbability = 1.5
	_, err := Generate(p, rng.New(1))
	assert.Error(t, err)

	p = DefaultGenParams()
	p.Width = 0
	_, err = Generate(p, rng.New(1))
	assert.Error(t, err)
}
