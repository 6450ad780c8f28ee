package interval

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/trailbrake/ifind/internal/activity"
	"github.com/trailbrake/ifind/internal/speed"
)

// ErrNoLimit is returned when detection runs without a speed limit.
var ErrNoLimit = errors.New("no speed limit configured")

// Summarize applies the minimum-duration filter to raw ranges and turns
// the survivors into reportable intervals, in input (chronological) order.
func Summarize(samples []activity.Sample, ranges []Range, minDuration int) []Info {
	var infos []Info
	for _, r := range ranges {
		first, last := samples[r.Start], samples[r.End-1]
		duration := last.TimeSeconds - first.TimeSeconds
		if duration < minDuration {
			continue
		}
		infos = append(infos, Info{
			StartTime: first.TimeSeconds,
			Duration:  duration,
			Distance:  int(math.Round(last.Distance - first.Distance)),
		})
	}
	return infos
}

// Detect runs the full analysis: repeated scan, duration filter, stats.
func Detect(samples []activity.Sample, cfg Config) (Result, error) {
	if !cfg.Limit.Valid() || cfg.Limit.Ms() == 0 {
		return Result{}, ErrNoLimit
	}
	if len(samples) == 0 {
		return Result{}, activity.ErrNoSamples
	}

	started := time.Now()

	ranges := FindAll(samples, cfg.Limit)
	intervals := Summarize(samples, ranges, cfg.MinDuration)

	stats := computeStats(samples, ranges, intervals, cfg.Limit)
	stats.ProcessingTime = time.Since(started)

	return Result{
		Intervals: intervals,
		Ranges:    ranges,
		Stats:     stats,
	}, nil
}

func computeStats(samples []activity.Sample, ranges []Range, intervals []Info, limit speed.Speed) Stats {
	first, last := samples[0], samples[len(samples)-1]

	s := Stats{
		Samples:       len(samples),
		TotalDuration: last.TimeSeconds - first.TimeSeconds,
		TotalDistance: last.Distance - first.Distance,
		LimitMs:       limit.Ms(),
		RangesFound:   len(ranges),
		Intervals:     len(intervals),
		DroppedShort:  len(ranges) - len(intervals),
	}

	// A crossing after the last confirmed interval means a qualifying
	// candidate ran into the end of the data and was discarded.
	rescanFrom := 0
	if n := len(ranges); n > 0 {
		rescanFrom = ranges[n-1].End
	}
	for i := rescanFrom; i < len(samples); i++ {
		if samples[i].Speed.AtLeast(limit) {
			s.OpenCandidateDropped = true
			break
		}
	}

	for _, info := range intervals {
		s.IntervalTime += info.Duration
		s.IntervalDistance += info.Distance
		if info.Duration > 0 {
			kmph := speed.Ms(float64(info.Distance) / float64(info.Duration)).Kmph()
			if kmph > s.BestIntervalKmph {
				s.BestIntervalKmph = kmph
			}
		}
	}

	speeds := make([]float64, len(samples))
	for i, sample := range samples {
		speeds[i] = sample.Speed.Ms()
	}
	sort.Float64s(speeds)
	s.P95SpeedMs = stat.Quantile(0.95, stat.Empirical, speeds, nil)

	return s
}
