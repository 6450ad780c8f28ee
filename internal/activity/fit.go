package activity

import (
	"fmt"
	"os"

	"github.com/tormoder/fit"

	"github.com/trailbrake/ifind/internal/speed"
)

// ParseFIT reads a Garmin FIT activity file and converts its record
// messages into the normalized sample sequence. Record timestamps are
// rebased to seconds since the first valid record, so FIT and CSV inputs
// feed the scanner identically.
func ParseFIT(filename string) ([]Sample, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoded, err := fit.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT: %w", err)
	}

	act, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("not an activity file: %w", err)
	}

	return samplesFromRecords(act.Records)
}

func samplesFromRecords(records []*fit.RecordMsg) ([]Sample, error) {
	var samples []Sample
	var start int64

	for _, rec := range records {
		if rec.Timestamp.IsZero() || fit.IsBaseTime(rec.Timestamp) {
			continue
		}
		ms, ok := recordSpeed(rec)
		if !ok {
			continue
		}
		dist := rec.GetDistanceScaled()
		if !isFinite(dist) || dist < 0 {
			continue
		}

		ts := rec.Timestamp.Unix()
		if len(samples) == 0 {
			start = ts
		}
		elapsed := int(ts - start)
		// FIT devices occasionally repeat a timestamp after GPS recovery.
		if n := len(samples); n > 0 && elapsed <= samples[n-1].TimeSeconds {
			continue
		}
		if n := len(samples); n > 0 && dist < samples[n-1].Distance {
			continue
		}

		samples = append(samples, Sample{
			TimeSeconds: elapsed,
			Distance:    dist,
			Speed:       speed.Ms(ms),
		})
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

// recordSpeed prefers the enhanced speed field and falls back to the
// 16-bit field, the same way session summaries do.
func recordSpeed(rec *fit.RecordMsg) (float64, bool) {
	s := rec.GetEnhancedSpeedScaled()
	if isFinite(s) && s >= 0 {
		return s, true
	}
	s = rec.GetSpeedScaled()
	if isFinite(s) && s >= 0 {
		return s, true
	}
	return 0, false
}
