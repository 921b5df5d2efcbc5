// Package sensor models the robot sensor suite: noisy GPS, IMU and
// thermometer readings, the LiDAR and Radar rangefinders, and the camera
// with its occlusion rules. Every reading is a pointer; nil means the
// sensor produced nothing this turn.
package sensor

import "fmt"

// DamageLevel is the degradation state of a single sensor.
type DamageLevel uint8

const (
	Ok DamageLevel = iota
	Damaged
	Destroyed
)

// String returns the name used in fact rows.
func (l DamageLevel) String() string {
	switch l {
	case Ok:
		return "Ok"
	case Damaged:
		return "Damaged"
	case Destroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Levels lists every damage level in order.
var Levels = [...]DamageLevel{Ok, Damaged, Destroyed}

// Kind identifies a damageable sensor.
type Kind uint8

const (
	GPS Kind = iota
	IMU
	LiDAR
	Radar
	Thermometer
	numKinds
)

func (k Kind) String() string {
	switch k {
	case GPS:
		return "GPS"
	case IMU:
		return "IMU"
	case LiDAR:
		return "LiDAR"
	case Radar:
		return "Radar"
	case Thermometer:
		return "Thermometer"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Suite holds the damage level of every sensor a robot carries.
// The zero value is a fully working suite.
type Suite [numKinds]DamageLevel

// Level returns the damage level of sensor k.
func (s Suite) Level(k Kind) DamageLevel {
	return s[k]
}

// With returns a copy of the suite with sensor k set to level.
func (s Suite) With(k Kind, level DamageLevel) Suite {
	s[k] = level
	return s
}

// sigma is a per-damage-level noise standard deviation.
type sigma struct {
	ok      float64
	damaged float64
}

func (s sigma) at(level DamageLevel) float64 {
	if level == Damaged {
		return s.damaged
	}
	return s.ok
}
