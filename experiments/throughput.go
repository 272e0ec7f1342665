// Package experiments sequences the measurement sweeps: one context per
// parameter profile, all trials against it, teardown before the next
// profile so at most one context is ever resident.
package experiments

import (
	"fmt"
	"strconv"
	"time"

	"HEMark"
	"HEMark/hebfv"
	"HEMark/profiles"
	"HEMark/results"
	"HEMark/trial"
)

// Config selects what a sweep covers. Zero values fall back to the full
// curated grid.
type Config struct {
	RingDegrees []int
	VectorSizes []int
	Logger      HEMark.Logger
}

// DefaultVectorSizes mirrors the data sizes of the original throughput runs.
var DefaultVectorSizes = []int{10_000, 100_000, 1_000_000}

func (c Config) ringDegrees() []int {
	if len(c.RingDegrees) > 0 {
		return c.RingDegrees
	}
	return profiles.Degrees()
}

func (c Config) vectorSizes() []int {
	if len(c.VectorSizes) > 0 {
		return c.VectorSizes
	}
	return DefaultVectorSizes
}

func (c Config) logger() HEMark.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return HEMark.NewLogger(HEMark.DEBUG)
}

// operandBound keeps generated values small, as the original runs did, so
// products stay far from the plaintext modulus.
const operandBound = 100

// operators in sweep order
var operators = []HEMark.Operator{HEMark.Add, HEMark.Mul}

// VectorBenchmark measures every (operand kinds, operator) combination for
// every vector size under every throughput profile.
func VectorBenchmark(cfg Config) *results.Sink {
	sink := results.NewSink("Vector_Benchmark", results.ThroughputSchema)
	runThroughput(sink, cfg, cfg.vectorSizes())
	return sink
}

// ScalarBenchmark is the single-element variant of VectorBenchmark.
func ScalarBenchmark(cfg Config) *results.Sink {
	sink := results.NewSink("Scalar_Benchmark", results.ThroughputSchema)
	runThroughput(sink, cfg, []int{1})
	return sink
}

func runThroughput(sink *results.Sink, cfg Config, sizes []int) {
	logger := cfg.logger()
	for _, degree := range cfg.ringDegrees() {
		logger.PrintHeader(fmt.Sprintf("%s | N=%d", sink.Name(), degree))
		runThroughputProfile(sink, degree, sizes, logger)
	}
}

// runThroughputProfile measures one profile end to end. Setup failures are
// recorded as one failed row per planned trial; the sweep continues with
// the next profile either way.
func runThroughputProfile(sink *results.Sink, degree int, sizes []int, logger HEMark.Logger) {
	profile, err := profiles.Throughput(degree)
	if err == nil {
		var ctx *hebfv.Context
		ctx, err = hebfv.NewContext(profile, hebfv.Options{Logger: logger})
		if err == nil {
			defer ctx.Teardown()
			var opTimes []time.Duration
			for _, size := range sizes {
				a := HEMark.RandomVector(size, operandBound, 0xA, uint64(degree))
				b := HEMark.RandomVector(size, operandBound, 0xB, uint64(degree))
				for _, kinds := range trial.AllKinds {
					for _, op := range operators {
						r := trial.Run(ctx, kinds, op, a, b)
						sink.Append(throughputRow(degree, r))
						if r.Err == nil {
							opTimes = append(opTimes, r.OpTime)
						}
						logger.PrintFormatted("N=%d size=%d %s: enc=%v op=%v dec=%v correct=%t",
							degree, size, kinds.Label(op), r.EncTime, r.OpTime, r.DecTime, r.Correct)
					}
				}
				logger.PrintMemUsage(fmt.Sprintf("N=%d size=%d", degree, size))
			}
			s := results.SummarizeDurations(opTimes)
			logger.PrintFormatted("N=%d op summary: %d trials, mean=%v, std=%v",
				degree, s.Count, s.Mean, s.Std)
			return
		}
	}

	logger.PrintMessages("setup failed for N=", degree, ": ", err)
	for _, size := range sizes {
		for _, kinds := range trial.AllKinds {
			for _, op := range operators {
				sink.Append(results.Row{
					"poly_degree":    strconv.Itoa(degree),
					"vector_size":    strconv.Itoa(size),
					"operation_type": kinds.Label(op),
					"correct":        "false",
					"error":          err.Error(),
				})
			}
		}
	}
}

func throughputRow(degree int, r trial.Result) results.Row {
	row := results.Row{
		"poly_degree":    strconv.Itoa(degree),
		"vector_size":    strconv.Itoa(r.VectorSize),
		"operation_type": r.Kinds.Label(r.Op),
		"correct":        strconv.FormatBool(r.Correct),
	}
	if r.Err != nil {
		row["error"] = r.Err.Error()
		return row
	}
	row["enc_time"] = fmt.Sprintf("%.6f", r.EncTime.Seconds())
	row["op_time"] = fmt.Sprintf("%.6f", r.OpTime.Seconds())
	row["dec_time"] = fmt.Sprintf("%.6f", r.DecTime.Seconds())
	row["memory_usage"] = strconv.FormatUint(r.PeakMemory, 10)
	return row
}
