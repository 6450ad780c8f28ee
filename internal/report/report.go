// Package report writes detection results: a CSV interval table for
// machines, a colored summary for humans.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/trailbrake/ifind/internal/interval"
)

// WriteCSV writes intervals as CSV with a header row, in input order.
func WriteCSV(w io.Writer, intervals []interval.Info) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"start_time", "duration", "distance"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, iv := range intervals {
		row := []string{
			strconv.Itoa(iv.StartTime),
			strconv.Itoa(iv.Duration),
			strconv.Itoa(iv.Distance),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write interval: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// PrintStats renders a human-readable detection summary to w.
func PrintStats(w io.Writer, stats interval.Stats) {
	header := color.New(color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	header.Fprintf(w, "\n📊 Detection Statistics:\n")
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(w, "📍 Samples: %d over %ds (%.2f km)\n",
		stats.Samples, stats.TotalDuration, stats.TotalDistance/1000)
	fmt.Fprintf(w, "⚡ Limit: %.2f m/s, P95 sample speed: %.2f m/s\n",
		stats.LimitMs, stats.P95SpeedMs)
	good.Fprintf(w, "🏁 Intervals: %d", stats.Intervals)
	fmt.Fprintf(w, " (%d found, %d below minimum duration)\n",
		stats.RangesFound, stats.DroppedShort)
	if stats.Intervals > 0 {
		fmt.Fprintf(w, "📏 Interval time: %ds, distance: %dm, best: %.1f km/h\n",
			stats.IntervalTime, stats.IntervalDistance, stats.BestIntervalKmph)
	}
	if stats.OpenCandidateDropped {
		warn.Fprintf(w, "⚠️  A qualifying effort ran into the end of the data and was discarded\n")
	}
	fmt.Fprintf(w, "⏱️  Processed in %v\n", stats.ProcessingTime)
}
