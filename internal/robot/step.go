package robot

import (
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/rng"
	"github.com/vovakirdan/robotsim/internal/sensor"
	"github.com/vovakirdan/robotsim/internal/world"
)

// BeaconLocator finds living beacon robots by cell.
type BeaconLocator interface {
	// BeaconAt returns the cardinality of the beacon standing on c.
	BeaconAt(c core.Coord) (cardinality int, ok bool)
}

// Env is everything outside the robot that a turn touches.
type Env struct {
	Grid    *world.Grid
	Beacons BeaconLocator
	Rand    *rng.Stream
}

// Readings are the sensor values of one turn. Nil means no reading.
type Readings struct {
	GPS         *core.Coord
	Orientation *core.Dir
	Temperature *float64
	Lidar       *int
	Radar       *int
}

// StepRecord is the outcome of one robot turn.
type StepRecord struct {
	Time           uint
	RobotID        int
	FromPositionID int
	ToPositionID   int

	Readings
	RealGPS         core.Coord
	RealOrientation core.Dir
	RealDistance    int
	RealTemperature float64

	Action        Action
	Success       bool
	HoldingItemID *int
	Cardinality   *int

	// Observed lists the memory cells written this turn, in camera order.
	Observed []MemoryCell
}

// Step plays one turn: read the sensors, update memory from the camera,
// decide one action and apply it. Dead robots do nothing and report false.
func (r *Robot) Step(time uint, env Env) (StepRecord, bool) {
	if !r.Alive {
		return StepRecord{}, false
	}
	g := env.Grid

	rec := StepRecord{
		Time:            time,
		RobotID:         r.ID,
		FromPositionID:  g.PositionID(r.Pos),
		RealGPS:         r.Pos,
		RealOrientation: r.Facing,
		RealTemperature: g.Temperature(r.Pos),
		RealDistance:    sensor.TrueDistance(g, r.Pos, r.Facing),
	}
	rec.Readings = r.read(env)
	rec.Observed = r.look(time, g, rec.GPS)

	t := r.newTurn(env, rec.Readings)
	rec.Action = r.decide(t)
	rec.Success = r.perform(rec.Action, g)

	rec.ToPositionID = g.PositionID(r.Pos)
	if r.Held != nil {
		id := r.Held.ID
		rec.HoldingItemID = &id
	}
	if r.Cardinality != nil {
		c := *r.Cardinality
		rec.Cardinality = &c
	}
	return rec, true
}

// read samples the sensors in a fixed order so runs are reproducible.
func (r *Robot) read(env Env) Readings {
	g, rnd := env.Grid, env.Rand
	var rd Readings
	rd.GPS = sensor.ReadGPS(r.Sensors.Level(sensor.GPS), r.Pos, rnd)
	rd.Temperature = sensor.ReadThermometer(r.Sensors.Level(sensor.Thermometer), g.Temperature(r.Pos), rnd)
	rd.Orientation = sensor.ReadIMU(r.Sensors.Level(sensor.IMU), r.Facing, rnd)
	rd.Radar = sensor.RadarSensor.Read(r.Sensors.Level(sensor.Radar), g, r.Pos, r.Facing, rnd)
	rd.Lidar = sensor.LiDARSensor.Read(r.Sensors.Level(sensor.LiDAR), g, r.Pos, r.Facing, rnd)
	return rd
}

// look writes camera sightings into memory at the measured position. The
// camera sees from the true pose; without a GPS fix nothing is stored.
func (r *Robot) look(time uint, g *world.Grid, gps *core.Coord) []MemoryCell {
	if gps == nil {
		return nil
	}
	var written []MemoryCell
	for _, s := range sensor.Camera(g, r.Pos, r.Facing) {
		cell := MemoryCell{
			Position:   gps.AddCoord(s.Offset),
			Terrain:    s.Terrain,
			ItemID:     s.ItemID,
			RobotID:    s.RobotID,
			ObservedBy: r.ID,
			ObservedAt: time,
		}
		if r.memory.Store(cell) {
			written = append(written, cell)
		}
	}
	return written
}
