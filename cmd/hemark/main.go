package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"HEMark"
	"HEMark/experiments"
	"HEMark/results"
)

func parseCSVInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid int %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

type runner func(experiments.Config) *results.Sink

var runners = map[string]runner{
	"vector":         experiments.VectorBenchmark,
	"scalar":         experiments.ScalarBenchmark,
	"rotation":       experiments.RotationBenchmark,
	"muldepth":       experiments.CipherTimesCipher,
	"muldepth-plain": experiments.CipherTimesPlain,
	"addnoise":       experiments.CipherPlusCipherNoise,
}

// runOrder keeps -experiment all deterministic.
var runOrder = []string{"vector", "scalar", "rotation", "muldepth", "muldepth-plain", "addnoise"}

func main() {
	var experiment string
	var degreesCSV string
	var sizesCSV string
	var outDir string
	var verbose bool

	flag.StringVar(&experiment, "experiment", "all", "Experiment to run: vector|scalar|rotation|muldepth|muldepth-plain|addnoise|all")
	flag.StringVar(&degreesCSV, "degrees", "", "Comma-separated polynomial ring degrees (default: all registered)")
	flag.StringVar(&sizesCSV, "sizes", "", "Comma-separated vector sizes for the throughput benchmarks")
	flag.StringVar(&outDir, "out", "results", "Directory for result CSV files")
	flag.BoolVar(&verbose, "v", false, "Verbose progress output")
	flag.Parse()

	degrees, err := parseCSVInts(degreesCSV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid degrees: %v\n", err)
		os.Exit(2)
	}
	sizes, err := parseCSVInts(sizesCSV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid sizes: %v\n", err)
		os.Exit(2)
	}

	names := runOrder
	if experiment != "all" {
		if _, ok := runners[experiment]; !ok {
			fmt.Fprintf(os.Stderr, "unknown experiment %q\n", experiment)
			os.Exit(2)
		}
		names = []string{experiment}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	cfg := experiments.Config{
		RingDegrees: degrees,
		VectorSizes: sizes,
		Logger:      HEMark.NewLogger(verbose),
	}

	failed := false
	for _, name := range names {
		sink := runners[name](cfg)
		path, err := sink.WriteCSV(outDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: failed to write results: %v\n", name, err)
			failed = true
			continue
		}
		fmt.Printf("%s: %d rows -> %s\n", name, sink.Len(), path)
	}
	if failed {
		os.Exit(1)
	}
}
