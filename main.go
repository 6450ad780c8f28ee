// Batch interval scanner: runs detection over every export in a directory,
// writing one interval CSV next to each input. The single-file tool with
// the full flag surface lives in cmd/ifind.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/trailbrake/ifind/internal/activity"
	"github.com/trailbrake/ifind/internal/config"
	"github.com/trailbrake/ifind/internal/interval"
	"github.com/trailbrake/ifind/internal/report"
	"github.com/trailbrake/ifind/internal/speed"
)

type batchConfig struct {
	InputDir string
	Detect   interval.Config
	Suffix   string
	Workers  int
}

// discoverExports lists the analyzable files directly inside dir, skipping
// outputs of previous runs.
func discoverExports(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".csv" && ext != ".fit" {
			continue
		}
		if strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// outputName derives the interval CSV path for an export.
func outputName(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ".csv"
}

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

func processExport(path string, cfg batchConfig) error {
	samples, err := loadSamples(path)
	if err != nil {
		return err
	}

	result, err := interval.Detect(samples, cfg.Detect)
	if err != nil {
		return err
	}

	out := outputName(path, cfg.Suffix)
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := report.WriteCSV(f, result.Intervals); err != nil {
		return err
	}

	fmt.Printf("🏁 %s: %d intervals (%d found) → %s\n",
		filepath.Base(path), result.Stats.Intervals, result.Stats.RangesFound, filepath.Base(out))
	return nil
}

func runBatch(cfg batchConfig) error {
	files, err := discoverExports(cfg.InputDir, cfg.Suffix)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no exports found in %s", cfg.InputDir)
	}

	fmt.Printf("📂 Scanning %d exports with %d workers...\n", len(files), cfg.Workers)

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error

	for range cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := processExport(path, cfg); err != nil {
					mu.Lock()
					failures = append(failures, fmt.Errorf("%s: %w", filepath.Base(path), err))
					mu.Unlock()
				}
			}
		}()
	}
	for _, path := range files {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	for _, err := range failures {
		fmt.Fprintf(os.Stderr, "⚠️  %v\n", err)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d exports failed", len(failures), len(files))
	}
	return nil
}

func main() {
	defaults := config.Load()

	inputDir := flag.String("i", "", "Directory of activity exports (.csv, .fit)")
	limitKmph := flag.Float64("k", 0, "Interval average speed limit in km/h")
	limitPace := flag.Float64("p", 0, "Interval average pace limit in seconds per 500m")
	minDuration := flag.Int("m", defaults.MinIntervalDuration, "Minimum interval duration in seconds")
	workers := flag.Int("workers", defaults.Workers, "Number of parallel workers")

	flag.Usage = func() {
		fmt.Printf("ifind-batch - Find intervals in every export in a directory\n\n")
		fmt.Printf("usage: ifind-batch -i /path/to/exports -k 12\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inputDir == "" {
		flag.Usage()
		os.Exit(2)
	}
	if (*limitKmph > 0) == (*limitPace > 0) {
		fmt.Fprintln(os.Stderr, "error: must specify exactly one of -k or -p")
		os.Exit(2)
	}

	var limit speed.Speed
	if *limitKmph > 0 {
		limit = speed.Kmph(*limitKmph)
	} else {
		limit = speed.SecPer500m(*limitPace)
	}
	if !limit.Valid() || limit.Ms() <= 0 {
		fmt.Fprintln(os.Stderr, "error: limit must be a positive, finite speed")
		os.Exit(2)
	}

	cfg := batchConfig{
		InputDir: *inputDir,
		Detect:   interval.Config{Limit: limit, MinDuration: *minDuration},
		Suffix:   defaults.OutputSuffix,
		Workers:  max(*workers, 1),
	}

	if err := runBatch(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
