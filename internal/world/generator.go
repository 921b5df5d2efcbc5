package world

import (
	"fmt"
	"math"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
)

// GenParams configures procedural map generation.
type GenParams struct {
	Width            int
	Height           int
	ItemProbability  float64 // Chance of an item on each remaining Free cell
	ObstacleCoverage float64 // Fraction of cells painted as Obstacle or Fire

	// Flood fill behaviour
	FireProbability   float64 // Chance a fill region is Fire instead of Obstacle
	SpreadProbability float64 // Initial spread probability, halved per hop

	// BorderBaseProbability is the chance a border cell becomes Base instead
	// of Obstacle. It is zero: borders are always Obstacle, but one draw per
	// border cell is still taken so the stream stays aligned.
	BorderBaseProbability float64

	// Baseline temperature range for non-burning cells
	BaseTempMin float64
	BaseTempMax float64
}

// DefaultGenParams returns the stock generation parameters.
func DefaultGenParams() GenParams {
	return GenParams{
		Width:             40,
		Height:            40,
		ItemProbability:   0.05,
		ObstacleCoverage:  0.2,
		FireProbability:   0.3,
		SpreadProbability: 0.8,
		BaseTempMin:       18,
		BaseTempMax:       118,
	}
}

// Validate checks the parameters for fatal precondition violations.
func (p GenParams) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("world: invalid map size %dx%d", p.Width, p.Height)
	}
	for name, v := range map[string]float64{
		"item probability":  p.ItemProbability,
		"obstacle coverage": p.ObstacleCoverage,
		"fire probability":  p.FireProbability,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("world: %s %v outside [0,1]", name, v)
		}
	}
	return nil
}

// fillTask is one pending cell of the randomized flood fill.
type fillTask struct {
	at   core.Coord
	prob float64
}

// Generate builds a random map. The result depends only on the parameters
// and the state of the stream.
//
// Steps:
//  1. Every cell Free with a baseline temperature
//  2. Obstacle/Fire regions grown by randomized flood fill until the
//     coverage budget is spent
//  3. Border ring forced to Obstacle
//  4. Items scattered over the remaining Free cells
//  5. One random cell forced to Base (last write wins)
func Generate(p GenParams, rnd *rng.Stream) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := NewGrid(p.Width, p.Height, rnd)

	for i := range g.cells {
		g.cells[i].Temperature = rnd.Uniform(p.BaseTempMin, p.BaseTempMax)
	}

	budget := int(math.Round(float64(p.Width*p.Height) * p.ObstacleCoverage))
	for budget > 0 {
		start := core.C(rnd.Intn(p.Width), rnd.Intn(p.Height))
		kind := Obstacle
		if rnd.Float() < p.FireProbability {
			kind = Fire
		}
		budget = g.floodFill(start, kind, p.SpreadProbability, budget, rnd)
	}

	for x := 0; x < p.Width; x++ {
		g.paintBorder(core.C(x, 0), p, rnd)
		g.paintBorder(core.C(x, p.Height-1), p, rnd)
	}
	for y := 0; y < p.Height; y++ {
		g.paintBorder(core.C(0, y), p, rnd)
		g.paintBorder(core.C(p.Width-1, y), p, rnd)
	}

	for i := range g.cells {
		if g.cells[i].Terrain() == Free && rnd.Float() < p.ItemProbability {
			g.SpawnItem(g.Coord(i))
		}
	}

	base := core.C(rnd.Intn(p.Width), rnd.Intn(p.Height))
	if err := g.SetGround(base, Base); err != nil {
		return nil, err
	}

	return g, nil
}

// floodFill paints a randomized blob starting at start and returns the
// remaining budget. Each hop halves the spread probability; neighbours are
// visited depth-first in the order +x, +y, -x, -y.
func (g *Grid) floodFill(start core.Coord, kind Terrain, prob float64, budget int, rnd *rng.Stream) int {
	stack := []fillTask{{at: start, prob: prob}}
	for len(stack) > 0 && budget > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.InBounds(task.at) {
			continue
		}
		if rnd.Float() >= task.prob {
			continue
		}

		cell := &g.cells[g.index(task.at)]
		cell.ground = kind
		if kind == Fire {
			cell.Temperature = rnd.Uniform(FireTempMin, FireTempMax)
		}
		budget--

		next := task.prob / 2
		// Reverse order so the +x neighbour is popped first
		stack = append(stack,
			fillTask{at: task.at.Add(0, -1), prob: next},
			fillTask{at: task.at.Add(-1, 0), prob: next},
			fillTask{at: task.at.Add(0, 1), prob: next},
			fillTask{at: task.at.Add(1, 0), prob: next},
		)
	}
	return budget
}

// paintBorder sets one border cell.
func (g *Grid) paintBorder(c core.Coord, p GenParams, rnd *rng.Stream) {
	kind := Obstacle
	if rnd.Float() < p.BorderBaseProbability {
		kind = Base
	}
	g.cells[g.index(c)].ground = kind
}
