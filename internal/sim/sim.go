// Package sim wires the world, the robots and the fact sinks together and
// advances the simulation turn by turn.
package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/robotsim/internal/config"
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/facts"
	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/robot"
	"github.com/vovakirdan/robotsim/internal/world"
)

// Simulation owns one run: the grid, the roster and the shared random
// stream. It is single-goroutine; robots act one after another and see
// each other's mutations immediately.
type Simulation struct {
	cfg    config.SimConfig
	grid   *world.Grid
	robots []*robot.Robot
	order  []int
	rnd    *rng.Stream
	sink   facts.Sink
	logger *log.Logger

	turn   uint
	checks bool
}

// rosterOrder is the order in which profiles receive robot ids.
var rosterOrder = []robot.Profile{robot.Normal, robot.Broken, robot.ItemDestroyer, robot.Liar, robot.Arsonist}

func rosterCount(r config.RosterConfig, p robot.Profile) int {
	switch p {
	case robot.Normal:
		return r.Normal
	case robot.Broken:
		return r.Broken
	case robot.ItemDestroyer:
		return r.ItemDestroyer
	case robot.Liar:
		return r.Liar
	case robot.Arsonist:
		return r.Arsonist
	default:
		return 0
	}
}

// New validates cfg, generates the world, builds and places the roster, and
// writes the dimension rows to sink. A nil logger discards log output.
func New(cfg config.SimConfig, sink facts.Sink, logger *log.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = facts.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Simulation{
		cfg:    cfg,
		rnd:    rng.New(cfg.Seed),
		sink:   sink,
		logger: logger,
	}

	params := world.DefaultGenParams()
	params.Width = cfg.Map.Width
	params.Height = cfg.Map.Height
	params.ItemProbability = cfg.Map.ItemProbability
	params.ObstacleCoverage = cfg.Map.ObstacleCoverage

	grid, err := world.Generate(params, s.rnd)
	if err != nil {
		return nil, err
	}
	grid.SetRobotKiller(s)
	s.grid = grid
	logger.Info("world generated",
		"seed", cfg.Seed,
		"width", grid.W,
		"height", grid.H,
		"items", grid.Stats().ItemsGenerated,
		"free", len(grid.FreeCells()))

	var ids []int
	for _, profile := range rosterOrder {
		for range rosterCount(cfg.Roster, profile) {
			id := len(s.robots)
			s.robots = append(s.robots, robot.New(id, profile, grid.W, grid.H, s.rnd))
			ids = append(ids, id)
		}
	}

	positions, err := grid.PlaceRobots(ids, s.rnd)
	if err != nil {
		return nil, err
	}
	for i, pos := range positions {
		s.robots[i].Pos = pos
	}
	s.order = make([]int, len(s.robots))
	for i := range s.order {
		s.order[i] = i
	}
	logger.Info("robots placed", "robots", len(s.robots))

	if err := s.emitDimensions(); err != nil {
		return nil, err
	}
	return s, nil
}

// EnableChecks makes every Step verify the grid and conservation invariants.
func (s *Simulation) EnableChecks() {
	s.checks = true
}

// Grid returns the world. Callers must treat it as read-only.
func (s *Simulation) Grid() *world.Grid {
	return s.grid
}

// Robots returns the roster in id order.
func (s *Simulation) Robots() []*robot.Robot {
	return s.robots
}

// Turn returns the number of turns played so far.
func (s *Simulation) Turn() uint {
	return s.turn
}

// Config returns the configuration the run was built from.
func (s *Simulation) Config() config.SimConfig {
	return s.cfg
}

// KillRobot implements world.RobotKiller. An item carried by the robot is
// lost with it.
func (s *Simulation) KillRobot(id int) {
	if id < 0 || id >= len(s.robots) {
		return
	}
	if held := s.robots[id].Kill(); held != nil {
		s.grid.DiscardHeldItem()
	}
	s.logger.Debug("robot destroyed", "robot", id, "turn", s.turn)
}

// BeaconAt implements robot.BeaconLocator.
func (s *Simulation) BeaconAt(c core.Coord) (int, bool) {
	id, ok := s.grid.Cell(c).RobotID()
	if !ok || id < 0 || id >= len(s.robots) {
		return 0, false
	}
	r := s.robots[id]
	if !r.Alive || r.Role != robot.Beacon || r.Cardinality == nil {
		return 0, false
	}
	return *r.Cardinality, true
}

// Step plays one turn: the roster is reshuffled, every living robot acts
// once, and the turn's facts are written.
func (s *Simulation) Step() error {
	now := s.turn
	s.rnd.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})

	env := robot.Env{Grid: s.grid, Beacons: s, Rand: s.rnd}
	var (
		steps  []facts.StepRow
		memory []facts.MemoryRow
	)
	for _, i := range s.order {
		rec, ok := s.robots[i].Step(now, env)
		if !ok {
			continue
		}
		steps = append(steps, stepRow(rec))
		memory = append(memory, memoryRows(rec)...)
	}

	if err := s.sink.Steps(steps); err != nil {
		return err
	}
	if err := s.sink.Memory(memory); err != nil {
		return err
	}
	if err := s.sink.MapStates(s.mapStateRows(now)); err != nil {
		return err
	}
	s.turn++

	if s.checks {
		if err := s.CheckInvariants(); err != nil {
			return fmt.Errorf("sim: turn %d: %w", now, err)
		}
	}

	stats := s.grid.Stats()
	s.logger.Debug("turn done",
		"turn", now,
		"acted", len(steps),
		"collected", stats.ItemsCollected,
		"destroyed", stats.ItemsDestroyed,
		"robots_lost", stats.RobotsDestroyed)
	return nil
}

// Run plays turns until the count is reached or ctx is cancelled.
func (s *Simulation) Run(ctx context.Context, turns int) error {
	for range turns {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	sum := s.Summary()
	s.logger.Info("simulation finished",
		"turns", sum.Turns,
		"collected", sum.ItemsCollected,
		"generated", sum.ItemsGenerated,
		"destroyed", sum.ItemsDestroyed,
		"robots_lost", sum.RobotsDestroyed)
	return nil
}

// CheckInvariants verifies the grid occupancy invariants, item
// conservation and that every living robot stands where the grid says.
func (s *Simulation) CheckInvariants() error {
	alive := func(id int) bool {
		return id >= 0 && id < len(s.robots) && s.robots[id].Alive
	}
	if err := s.grid.CheckInvariants(alive); err != nil {
		return err
	}

	held := 0
	for _, r := range s.robots {
		if !r.Alive {
			continue
		}
		if id, ok := s.grid.Cell(r.Pos).RobotID(); !ok || id != r.ID {
			return fmt.Errorf("sim: robot %d is not on its cell %v", r.ID, r.Pos)
		}
		if r.Held != nil {
			held++
		}
	}

	st := s.grid.Stats()
	if st.ItemsCollected+st.ItemsOnGrid+st.ItemsDestroyed+held != st.ItemsGenerated {
		return fmt.Errorf("sim: items not conserved: collected %d + on grid %d + destroyed %d + held %d != generated %d",
			st.ItemsCollected, st.ItemsOnGrid, st.ItemsDestroyed, held, st.ItemsGenerated)
	}
	return nil
}

// Summary is the outcome of a run so far.
type Summary struct {
	Turns           uint
	ItemsGenerated  int
	ItemsCollected  int
	ItemsDestroyed  int
	ItemsOnGrid     int
	RobotsDestroyed int
	RobotsAlive     int
	Beacons         int
}

// CollectionRate is the share of the surviving items that reached the base.
func (s Summary) CollectionRate() float64 {
	available := s.ItemsGenerated - s.ItemsDestroyed
	if available <= 0 {
		return 0
	}
	return float64(s.ItemsCollected) / float64(available)
}

// Summary returns the current counters.
func (s *Simulation) Summary() Summary {
	st := s.grid.Stats()
	sum := Summary{
		Turns:           s.turn,
		ItemsGenerated:  st.ItemsGenerated,
		ItemsCollected:  st.ItemsCollected,
		ItemsDestroyed:  st.ItemsDestroyed,
		ItemsOnGrid:     st.ItemsOnGrid,
		RobotsDestroyed: st.RobotsDestroyed,
	}
	for _, r := range s.robots {
		if !r.Alive {
			continue
		}
		sum.RobotsAlive++
		if r.Role == robot.Beacon {
			sum.Beacons++
		}
	}
	return sum
}
