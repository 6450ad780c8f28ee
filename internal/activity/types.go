package activity

import (
	"github.com/trailbrake/ifind/internal/speed"
)

// SentinelActivityType marks the trailing summary row some exports append.
const SentinelActivityType = -1

// RawRecord is one row of an export as written by the device: required
// time/activityType, everything else optional. Optional numerics are
// pointers so a missing column is distinguishable from zero.
type RawRecord struct {
	TimeSeconds  int
	ActivityType int
	LapNumber    *int
	Distance     *float64
	Speed        *float64
	Calories     *int
	Lat          *float64
	Long         *float64
	Elevation    *float64
	HeartRate    *string
	Cycles       *int
}

// Sample is one normalized observation: elapsed seconds, cumulative
// distance in meters, and instantaneous speed. Samples are built once and
// never mutated; the scanner addresses them by index.
type Sample struct {
	TimeSeconds int
	Distance    float64
	Speed       speed.Speed
}
