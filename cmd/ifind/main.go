package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trailbrake/ifind/internal/activity"
	"github.com/trailbrake/ifind/internal/config"
	"github.com/trailbrake/ifind/internal/interval"
	"github.com/trailbrake/ifind/internal/report"
	"github.com/trailbrake/ifind/internal/speed"
)

var errAmbiguousLimit = errors.New("must specify exactly one of --limit-kmph or --limit-pace")

var (
	limitKmph   float64
	limitPace   float64
	minDuration int
	outputFile  string
	showStats   bool
	statsJSON   bool
	dryRun      bool
)

var rootCmd = &cobra.Command{
	Use:   "ifind [flags] <export-file>",
	Short: "Find intervals in activity exports",
	Long: `ifind scans a watch export (CSV or Garmin FIT) for intervals: contiguous
stretches where the sustained average speed stays at or above a threshold
for at least a minimum duration.

The threshold is given either as a speed (--limit-kmph) or as a 500m split
pace (--limit-pace); exactly one of the two must be set. Detected intervals
are written as CSV rows of start_time, duration and distance.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	defaults := config.Load()

	rootCmd.Flags().Float64VarP(&limitKmph, "limit-kmph", "k", 0, "interval average speed limit in km/h")
	rootCmd.Flags().Float64VarP(&limitPace, "limit-pace", "p", 0, "interval average pace limit in seconds per 500m")
	rootCmd.Flags().IntVarP(&minDuration, "min-interval-duration", "m", defaults.MinIntervalDuration, "minimum interval duration in seconds")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output CSV file (default: stdout)")
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "print detection statistics")
	rootCmd.Flags().BoolVar(&statsJSON, "stats-json", false, "print detection statistics as JSON")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "analyze without writing interval rows")
}

func run(cmd *cobra.Command, args []string) error {
	limit, err := resolveLimit(cmd)
	if err != nil {
		return err
	}

	samples, err := loadSamples(args[0])
	if err != nil {
		return err
	}

	cfg := interval.DefaultConfig()
	cfg.Limit = limit
	cfg.MinDuration = minDuration

	result, err := interval.Detect(samples, cfg)
	if err != nil {
		return err
	}

	if showStats || statsJSON || dryRun {
		if statsJSON {
			data, err := json.MarshalIndent(result.Stats, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal stats: %w", err)
			}
			fmt.Println(string(data))
		} else {
			report.PrintStats(os.Stderr, result.Stats)
		}
	}

	if dryRun {
		fmt.Fprintf(os.Stderr, "🔍 Dry run completed - no intervals written\n")
		return nil
	}

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return report.WriteCSV(out, result.Intervals)
}

// resolveLimit enforces the threshold contract: exactly one unit.
func resolveLimit(cmd *cobra.Command) (speed.Speed, error) {
	hasKmph := cmd.Flags().Changed("limit-kmph")
	hasPace := cmd.Flags().Changed("limit-pace")

	if hasKmph == hasPace {
		return speed.Speed{}, errAmbiguousLimit
	}
	if hasKmph {
		limit := speed.Kmph(limitKmph)
		if !limit.Valid() || limit.Ms() <= 0 {
			return speed.Speed{}, fmt.Errorf("invalid speed limit %v km/h", limitKmph)
		}
		return limit, nil
	}
	limit := speed.SecPer500m(limitPace)
	if !limit.Valid() {
		return speed.Speed{}, fmt.Errorf("invalid pace limit %v s/500m", limitPace)
	}
	return limit, nil
}

// loadSamples picks the decoder by extension and normalizes either format
// into the same sample sequence.
func loadSamples(path string) ([]activity.Sample, error) {
	if strings.EqualFold(filepath.Ext(path), ".fit") {
		return activity.ParseFIT(path)
	}

	records, err := activity.ParseCSV(path)
	if err != nil {
		return nil, err
	}
	return activity.BuildSamples(activity.TrimSentinel(records))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
