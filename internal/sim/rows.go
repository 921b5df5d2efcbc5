package sim

import (
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/facts"
	"github.com/vovakirdan/robotsim/internal/robot"
	"github.com/vovakirdan/robotsim/internal/sensor"
	"github.com/vovakirdan/robotsim/internal/world"
)

// eachRowMajor visits cells from the top row down, left to right.
func eachRowMajor(g *world.Grid, fn func(c core.Coord, cell world.Cell)) {
	for y := g.H - 1; y >= 0; y-- {
		for x := 0; x < g.W; x++ {
			c := core.C(x, y)
			fn(c, g.Cell(c))
		}
	}
}

func (s *Simulation) emitDimensions() error {
	var (
		points []facts.MapPointRow
		items  []facts.ItemRow
	)
	eachRowMajor(s.grid, func(c core.Coord, cell world.Cell) {
		points = append(points, facts.MapPointRow{ID: cell.ID, X: c.X, Y: c.Y, Temperature: cell.Temperature})
		if id, ok := cell.ItemID(); ok {
			items = append(items, facts.ItemRow{ID: id})
		}
	})
	if err := s.sink.MapPoints(points); err != nil {
		return err
	}
	if err := s.sink.Items(items); err != nil {
		return err
	}

	robots := make([]facts.RobotRow, 0, len(s.robots))
	for _, r := range s.robots {
		robots = append(robots, facts.RobotRow{
			ID:          r.ID,
			Profile:     r.Profile.String(),
			GPS:         r.Sensors.Level(sensor.GPS).String(),
			IMU:         r.Sensors.Level(sensor.IMU).String(),
			LiDAR:       r.Sensors.Level(sensor.LiDAR).String(),
			Radar:       r.Sensors.Level(sensor.Radar).String(),
			Thermometer: r.Sensors.Level(sensor.Thermometer).String(),
		})
	}
	return s.sink.Robots(robots)
}

func (s *Simulation) mapStateRows(now uint) []facts.MapStateRow {
	rows := make([]facts.MapStateRow, 0, s.grid.W*s.grid.H)
	eachRowMajor(s.grid, func(_ core.Coord, cell world.Cell) {
		row := facts.MapStateRow{Time: now, MapPointID: cell.ID, Terrain: cell.Terrain().String()}
		if id, ok := cell.ItemID(); ok {
			row.ItemID = &id
		}
		if id, ok := cell.RobotID(); ok {
			row.RobotID = &id
		}
		rows = append(rows, row)
	})
	return rows
}

func stepRow(rec robot.StepRecord) facts.StepRow {
	row := facts.StepRow{
		StartTime:           rec.Time,
		RobotID:             rec.RobotID,
		FromPositionID:      rec.FromPositionID,
		ToPositionID:        rec.ToPositionID,
		RealGPSX:            rec.RealGPS.X,
		RealGPSY:            rec.RealGPS.Y,
		RealOrientation:     rec.RealOrientation.String(),
		MeasuredLidar:       rec.Lidar,
		MeasuredRadar:       rec.Radar,
		RealDistance:        rec.RealDistance,
		MeasuredTemperature: rec.Temperature,
		RealTemperature:     rec.RealTemperature,
		DecidedAction:       rec.Action.String(),
		ActionSuccessful:    rec.Success,
		HoldingItemID:       rec.HoldingItemID,
		Cardinality:         rec.Cardinality,
	}
	if rec.GPS != nil {
		x, y := rec.GPS.X, rec.GPS.Y
		row.MeasuredGPSX, row.MeasuredGPSY = &x, &y
	}
	if rec.Orientation != nil {
		o := rec.Orientation.String()
		row.MeasuredOrientation = &o
	}
	return row
}

func memoryRows(rec robot.StepRecord) []facts.MemoryRow {
	rows := make([]facts.MemoryRow, 0, len(rec.Observed))
	for _, cell := range rec.Observed {
		rows = append(rows, facts.MemoryRow{
			Time:            cell.ObservedAt,
			X:               cell.Position.X,
			Y:               cell.Position.Y,
			RobotID:         cell.ObservedBy,
			Terrain:         cell.Terrain.String(),
			ItemID:          cell.ItemID,
			RobotOccupantID: cell.RobotID,
		})
	}
	return rows
}
