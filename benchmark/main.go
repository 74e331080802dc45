// Package main times the gridiron CLI against the live provider with and
// without the response cache, across league slices of increasing size.
// The first successful cached run counts as cold and the rest are averaged as warm.
//
// Prerequisites:
// - gridiron binary installed and available in PATH
// - network access to the ESPN and Sleeper APIs
//
// Usage: go run benchmark/main.go [output-dir]
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Slice       string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	OutputDir   string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Slices      []string
	Teams       map[string]string
	Commands    map[string][]string
}

// commandOrder fixes the run and summary order of Commands.
var commandOrder = []string{"rank", "player", "recompute"}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [output-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		OutputDir:   os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     8,
		NoCacheRuns: 2,
		CacheRuns:   4,
		Slices:      []string{"one-team", "division", "conference-half", "league"},
		Teams: map[string]string{
			"one-team":        "DET",
			"division":        "DET,GB,MIN,CHI",
			"conference-half": "DET,GB,MIN,CHI,PHI,DAL,WAS,NYG,SF,LAR,SEA,ARI,TB,NO,ATL,CAR",
			"league":          "",
		},
		Commands: map[string][]string{
			"rank":      {"rank", "--limit", "25"},
			"player":    {"player", "Jahmyr Gibbs"},
			"recompute": {"recompute", "--format", "std", "--td-pts", "6", "--limit", "25"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("gridiron", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(config.OutputDir, results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the gridiron binary and output directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("gridiron"); err != nil {
		return fmt.Errorf("gridiron binary not found in PATH")
	}
	info, err := os.Stat(config.OutputDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("output directory %s not found", config.OutputDir)
	}
	return nil
}

// runBenchmarks executes every command against every league slice
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d slices, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Slices), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, slice := range config.Slices {
		fmt.Printf("Benchmarking %s\n", slice)
		for _, command := range commandOrder {
			args := append([]string{}, config.Commands[command]...)
			if teams := config.Teams[slice]; teams != "" {
				args = append(args, "--teams", teams)
			}
			args = append(args, "--workers", fmt.Sprint(config.Workers))
			results = append(results, runBenchmarkSuite(config, slice, command, args))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, slice, command string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, slice)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, args, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Slice:       slice,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark runs one gridiron command numRuns times and returns the cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, args []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	fullArgs := append(append([]string{}, args...), "--cache-backend", cacheBackend)

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "gridiron", fullArgs...).CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()
		if err == nil && isSuccess(output, command) {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	switch command {
	case "rank":
		return strings.Contains(outputStr, "Ranked in") && strings.Contains(outputStr, "workers")
	case "recompute":
		return strings.Contains(outputStr, "Recomputed") && strings.Contains(outputStr, "player seasons")
	default:
		return strings.Contains(outputStr, "overall")
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(outputDir string, results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("gridiron_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"slice", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Slice, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range commandOrder {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-16s: No-cache: %s, Cold: %s, Warm: %s\n", result.Slice, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
