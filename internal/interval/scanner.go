package interval

import (
	"iter"

	"github.com/trailbrake/ifind/internal/activity"
	"github.com/trailbrake/ifind/internal/speed"
)

// Find locates the next interval at or after startIndex.
//
// The scan has two phases. First it searches forward for the crossing
// index: the first sample whose instantaneous speed is at least limit.
// From there it grows the candidate one sample at a time, tracking the
// running average speed, and ends the interval at the first sample that
// drags the average below limit. That sample is excluded, so the result
// is the half-open range [crossing, j).
//
// A candidate whose average never drops below limit before the data ends
// is not an interval: an interval must have an observed end. Those
// candidates are discarded, and Find reports not found.
func Find(samples []activity.Sample, startIndex int, limit speed.Speed) (Range, bool) {
	if startIndex < 0 {
		startIndex = 0
	}

	crossing := -1
	for i := startIndex; i < len(samples); i++ {
		if samples[i].Speed.AtLeast(limit) {
			crossing = i
			break
		}
	}
	if crossing < 0 {
		return Range{}, false
	}

	limitMs := limit.Ms()
	var total float64
	for j := crossing; j < len(samples); j++ {
		total += samples[j].Speed.Ms()
		average := total / float64(j-crossing+1)
		if average < limitMs {
			return Range{Start: crossing, End: j}, true
		}
	}

	return Range{}, false
}

// All yields every interval in order, restarting each scan at the end of
// the previous interval. The sequence is lazy and finite; ranges are
// non-overlapping and start-ordered. Total cost over the whole sequence
// is O(n) amortized because no scan revisits samples before the previous
// interval's end.
func All(samples []activity.Sample, limit speed.Speed) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		start := 0
		for {
			r, ok := Find(samples, start, limit)
			if !ok {
				return
			}
			if !yield(r) {
				return
			}
			start = r.End
		}
	}
}

// FindAll collects All into a slice.
func FindAll(samples []activity.Sample, limit speed.Speed) []Range {
	var ranges []Range
	for r := range All(samples, limit) {
		ranges = append(ranges, r)
	}
	return ranges
}
