package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/trailbrake/ifind/internal/speed"
)

// ErrNoSamples is returned when an export contains no analyzable rows.
var ErrNoSamples = errors.New("no samples in input")

// ParseCSV reads and parses a CSV export file.
func ParseCSV(filename string) ([]RawRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseCSVReader(file)
}

// ParseCSVReader parses a CSV export from an io.Reader. The first row is a
// header; columns are matched by name, extra columns are ignored.
func ParseCSVReader(r io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"time", "activityType"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var records []RawRecord
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		rec, err := parseRow(fields, col)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(fields []string, col map[string]int) (RawRecord, error) {
	var rec RawRecord

	timeStr := fields[col["time"]]
	t, err := strconv.Atoi(timeStr)
	if err != nil {
		return rec, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	if t < 0 {
		return rec, fmt.Errorf("negative time %d", t)
	}
	rec.TimeSeconds = t

	typeStr := fields[col["activityType"]]
	at, err := strconv.Atoi(typeStr)
	if err != nil {
		return rec, fmt.Errorf("invalid activityType %q: %w", typeStr, err)
	}
	rec.ActivityType = at

	if rec.LapNumber, err = optionalInt(fields, col, "lapNumber"); err != nil {
		return rec, err
	}
	if rec.Distance, err = optionalFloat(fields, col, "distance"); err != nil {
		return rec, err
	}
	if rec.Speed, err = optionalFloat(fields, col, "speed"); err != nil {
		return rec, err
	}
	if rec.Calories, err = optionalInt(fields, col, "calories"); err != nil {
		return rec, err
	}
	if rec.Lat, err = optionalFloat(fields, col, "lat"); err != nil {
		return rec, err
	}
	if rec.Long, err = optionalFloat(fields, col, "long"); err != nil {
		return rec, err
	}
	if rec.Elevation, err = optionalFloat(fields, col, "elevation"); err != nil {
		return rec, err
	}
	if rec.Cycles, err = optionalInt(fields, col, "cycles"); err != nil {
		return rec, err
	}

	if idx, ok := col["heartRate"]; ok && idx < len(fields) && fields[idx] != "" {
		hr := fields[idx]
		rec.HeartRate = &hr
	}

	return rec, nil
}

// optionalFloat returns nil for an absent or blank field. A field that is
// present but malformed is an error: silently dropping it would later
// surface as "missing distance" on a row that has one.
func optionalFloat(fields []string, col map[string]int, name string) (*float64, error) {
	idx, ok := col[name]
	if !ok || idx >= len(fields) || fields[idx] == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, fields[idx], err)
	}
	return &v, nil
}

func optionalInt(fields []string, col map[string]int, name string) (*int, error) {
	idx, ok := col[name]
	if !ok || idx >= len(fields) || fields[idx] == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(fields[idx])
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, fields[idx], err)
	}
	return &v, nil
}

// TrimSentinel drops the trailing summary row (activityType == -1) that
// some exports append after the last real sample.
func TrimSentinel(records []RawRecord) []RawRecord {
	if n := len(records); n > 0 && records[n-1].ActivityType == SentinelActivityType {
		return records[:n-1]
	}
	return records
}

// BuildSamples converts raw rows into the normalized sample sequence the
// scanner consumes. Rows must carry finite distance and speed, strictly
// increasing time, and non-decreasing cumulative distance; any violation
// fails the whole build.
func BuildSamples(records []RawRecord) ([]Sample, error) {
	if len(records) == 0 {
		return nil, ErrNoSamples
	}

	samples := make([]Sample, 0, len(records))
	for i, rec := range records {
		if rec.Distance == nil {
			return nil, fmt.Errorf("record %d (t=%ds): missing distance", i, rec.TimeSeconds)
		}
		if rec.Speed == nil {
			return nil, fmt.Errorf("record %d (t=%ds): missing speed", i, rec.TimeSeconds)
		}
		if !isFinite(*rec.Distance) || *rec.Distance < 0 {
			return nil, fmt.Errorf("record %d (t=%ds): invalid distance %v", i, rec.TimeSeconds, *rec.Distance)
		}
		if !isFinite(*rec.Speed) || *rec.Speed < 0 {
			return nil, fmt.Errorf("record %d (t=%ds): invalid speed %v", i, rec.TimeSeconds, *rec.Speed)
		}
		if i > 0 {
			prev := samples[i-1]
			if rec.TimeSeconds <= prev.TimeSeconds {
				return nil, fmt.Errorf("record %d: time %ds not after %ds", i, rec.TimeSeconds, prev.TimeSeconds)
			}
			if *rec.Distance < prev.Distance {
				return nil, fmt.Errorf("record %d: cumulative distance decreased (%v < %v)", i, *rec.Distance, prev.Distance)
			}
		}

		samples = append(samples, Sample{
			TimeSeconds: rec.TimeSeconds,
			Distance:    *rec.Distance,
			Speed:       speed.Ms(*rec.Speed),
		})
	}

	return samples, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
