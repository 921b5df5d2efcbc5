// Package facts defines the flat, append-only record streams a simulation
// emits and the sinks that persist them.
package facts

import "strconv"

// MapPointRow describes one cell, emitted once after generation.
type MapPointRow struct {
	ID          int
	X           int
	Y           int
	Temperature float64
}

// ItemRow describes one generated item.
type ItemRow struct {
	ID int
}

// RobotRow describes one robot and its sensor damage, emitted after placement.
type RobotRow struct {
	ID          int
	Profile     string
	GPS         string
	IMU         string
	LiDAR       string
	Radar       string
	Thermometer string
}

// StepRow is one robot turn: measured readings next to ground truth, and
// the decided action with its outcome.
type StepRow struct {
	StartTime           uint
	RobotID             int
	FromPositionID      int
	ToPositionID        int
	MeasuredGPSX        *int
	MeasuredGPSY        *int
	RealGPSX            int
	RealGPSY            int
	MeasuredOrientation *string
	RealOrientation     string
	MeasuredLidar       *int
	MeasuredRadar       *int
	RealDistance        int
	MeasuredTemperature *float64
	RealTemperature     float64
	DecidedAction       string
	ActionSuccessful    bool
	HoldingItemID       *int
	Cardinality         *int
}

// MemoryRow is one memory cell a robot wrote during a turn.
type MemoryRow struct {
	Time            uint
	X               int
	Y               int
	RobotID         int
	Terrain         string
	ItemID          *int
	RobotOccupantID *int
}

// MapStateRow is the ground truth of one cell at the end of a turn.
type MapStateRow struct {
	Time       uint
	MapPointID int
	Terrain    string
	ItemID     *int
	RobotID    *int
}

// Table names double as TSV file stems.
const (
	TableMapPoint = "dym_map_point"
	TableItem     = "dym_item"
	TableRobot    = "dym_robot"
	TableStep     = "fact_step"
	TableMemory   = "fact_memory_map_point"
	TableMapState = "fact_map_point_state"
)

// Tables lists every stream in a stable order.
var Tables = []string{TableMapPoint, TableItem, TableRobot, TableStep, TableMemory, TableMapState}

// Columns holds the header of each table.
var Columns = map[string][]string{
	TableMapPoint: {"id", "x", "y", "temperature"},
	TableItem:     {"id"},
	TableRobot: {"id", "profile", "gps_damage_level", "imu_damage_level", "lidar_damage_level",
		"radar_damage_level", "thermometer_damage_level"},
	TableStep: {"start_time", "robot_id", "from_position_id", "to_position_id",
		"measured_gps_x", "measured_gps_y", "real_gps_x", "real_gps_y",
		"measured_orientation", "real_orientation",
		"measured_lidar_distance", "measured_radar_distance", "real_distance",
		"measured_temperature", "real_temperature",
		"decided_action", "action_successful", "holding_item_id", "cardinality"},
	TableMemory:   {"time", "x", "y", "robot_id", "terrain_type", "occupied_by_item_id", "occupied_by_robot_id"},
	TableMapState: {"time", "map_point_id", "terrain_type", "occupied_by_item_id", "occupied_by_robot_id"},
}

// Fields returns the row's values in column order. Missing values are
// empty strings.
func (r MapPointRow) Fields() []string {
	return []string{itoa(r.ID), itoa(r.X), itoa(r.Y), ftoa(r.Temperature)}
}

func (r ItemRow) Fields() []string {
	return []string{itoa(r.ID)}
}

func (r RobotRow) Fields() []string {
	return []string{itoa(r.ID), r.Profile, r.GPS, r.IMU, r.LiDAR, r.Radar, r.Thermometer}
}

func (r StepRow) Fields() []string {
	return []string{
		utoa(r.StartTime), itoa(r.RobotID), itoa(r.FromPositionID), itoa(r.ToPositionID),
		optInt(r.MeasuredGPSX), optInt(r.MeasuredGPSY), itoa(r.RealGPSX), itoa(r.RealGPSY),
		optString(r.MeasuredOrientation), r.RealOrientation,
		optInt(r.MeasuredLidar), optInt(r.MeasuredRadar), itoa(r.RealDistance),
		optFloat(r.MeasuredTemperature), ftoa(r.RealTemperature),
		r.DecidedAction, strconv.FormatBool(r.ActionSuccessful), optInt(r.HoldingItemID), optInt(r.Cardinality),
	}
}

func (r MemoryRow) Fields() []string {
	return []string{utoa(r.Time), itoa(r.X), itoa(r.Y), itoa(r.RobotID), r.Terrain, optInt(r.ItemID), optInt(r.RobotOccupantID)}
}

func (r MapStateRow) Fields() []string {
	return []string{utoa(r.Time), itoa(r.MapPointID), r.Terrain, optInt(r.ItemID), optInt(r.RobotID)}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func utoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return itoa(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return ftoa(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
