// Package speed provides a unit-aware speed value for interval analysis.
//
// Watch exports and user-facing thresholds mix units: record streams carry
// meters per second, cyclists think in km/h, rowers and skiers in seconds
// per 500 m. All comparisons happen on the normalized m/s value.
package speed

import (
	"fmt"
	"math"
)

// Unit identifies how a Speed value was expressed.
type Unit int

const (
	// UnitMs is meters per second, the canonical unit.
	UnitMs Unit = iota
	// UnitKmph is kilometers per hour.
	UnitKmph
	// UnitSecPer500m is pace: seconds to cover 500 meters. Smaller is faster.
	UnitSecPer500m
)

// Speed is an immutable speed expressed in one of three units.
type Speed struct {
	value float64
	unit  Unit
}

// Ms builds a Speed from meters per second.
func Ms(v float64) Speed { return Speed{value: v, unit: UnitMs} }

// Kmph builds a Speed from kilometers per hour.
func Kmph(v float64) Speed { return Speed{value: v, unit: UnitKmph} }

// SecPer500m builds a Speed from a 500 m split pace in seconds.
// A non-positive pace normalizes to a non-finite m/s value; callers that
// accept user input should validate with Valid before comparing.
func SecPer500m(v float64) Speed { return Speed{value: v, unit: UnitSecPer500m} }

// Ms returns the speed normalized to meters per second.
func (s Speed) Ms() float64 {
	switch s.unit {
	case UnitKmph:
		return s.value / 3.6
	case UnitSecPer500m:
		return 500.0 / s.value
	default:
		return s.value
	}
}

// Kmph returns the speed in kilometers per hour.
func (s Speed) Kmph() float64 { return s.Ms() * 3.6 }

// SecPer500m returns the speed as a 500 m split pace in seconds.
func (s Speed) SecPer500m() float64 { return 500.0 / s.Ms() }

// Valid reports whether the normalized value is finite and non-negative.
func (s Speed) Valid() bool {
	ms := s.Ms()
	return !math.IsNaN(ms) && !math.IsInf(ms, 0) && ms >= 0
}

// Cmp compares two speeds on their normalized values. It returns -1 if
// s is slower than o, 0 if equal, +1 if faster.
func (s Speed) Cmp(o Speed) int {
	a, b := s.Ms(), o.Ms()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is at least as fast as o.
func (s Speed) AtLeast(o Speed) bool { return s.Ms() >= o.Ms() }

func (s Speed) String() string {
	switch s.unit {
	case UnitKmph:
		return fmt.Sprintf("%.2f km/h", s.value)
	case UnitSecPer500m:
		return fmt.Sprintf("%.1f s/500m", s.value)
	default:
		return fmt.Sprintf("%.2f m/s", s.value)
	}
}
