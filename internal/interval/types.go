package interval

import (
	"time"

	"github.com/trailbrake/ifind/internal/speed"
)

// Range is a half-open index range [Start, End) into a sample sequence.
type Range struct {
	Start int
	End   int
}

// Len returns the number of samples the range covers.
func (r Range) Len() int { return r.End - r.Start }

// Info is one reportable interval: start offset and duration in seconds,
// distance in meters rounded half away from zero.
type Info struct {
	StartTime int `json:"start_time"`
	Duration  int `json:"duration"`
	Distance  int `json:"distance"`
}

// Config holds detection parameters.
type Config struct {
	// Limit is the sustained average speed an interval must hold.
	Limit speed.Speed

	// MinDuration discards intervals shorter than this many seconds.
	MinDuration int
}

// DefaultConfig returns the stock detection configuration. The limit has
// no sensible default; callers must set it.
func DefaultConfig() Config {
	return Config{
		MinDuration: 20, // shorter efforts are surges, not intervals
	}
}

// Stats reports what detection found and dropped.
type Stats struct {
	// Input
	Samples       int     `json:"samples"`
	TotalDuration int     `json:"total_duration_s"`
	TotalDistance float64 `json:"total_distance_m"`

	// Detection
	LimitMs              float64 `json:"limit_ms"`
	RangesFound          int     `json:"ranges_found"`
	Intervals            int     `json:"intervals"`
	DroppedShort         int     `json:"dropped_short"`
	OpenCandidateDropped bool    `json:"open_candidate_dropped"`

	// Surviving intervals
	IntervalTime     int     `json:"interval_time_s"`
	IntervalDistance int     `json:"interval_distance_m"`
	BestIntervalKmph float64 `json:"best_interval_kmph"`

	// Sample speed distribution
	P95SpeedMs float64 `json:"p95_speed_ms"`

	ProcessingTime time.Duration `json:"processing_time_ns"`
}

// Result contains the surviving intervals, the raw ranges they came from,
// and detection statistics.
type Result struct {
	Intervals []Info
	Ranges    []Range
	Stats     Stats
}
