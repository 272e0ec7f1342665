package experiments

import (
	"fmt"
	"strconv"
	"time"

	"HEMark"
	"HEMark/hebfv"
	"HEMark/profiles"
	"HEMark/results"
)

// DefaultRotationSteps are the column rotations measured per profile:
// one step in each direction, then power-of-two left rotations.
var DefaultRotationSteps = []int{1, -1, 2, 4, 8}

// RotationBenchmark times batched column rotations under every throughput
// profile and verifies each rotated vector slot-wise. Profiles whose
// rotation-key generation failed produce failure rows but keep the sweep
// alive.
func RotationBenchmark(cfg Config) *results.Sink {
	sink := results.NewSink("Rotation_Benchmark", results.RotationSchema)
	logger := cfg.logger()
	for _, degree := range cfg.ringDegrees() {
		logger.PrintHeader(fmt.Sprintf("%s | N=%d", sink.Name(), degree))
		runRotationProfile(sink, degree, logger)
	}
	return sink
}

func runRotationProfile(sink *results.Sink, degree int, logger HEMark.Logger) {
	profile, err := profiles.Throughput(degree)
	if err != nil {
		sink.Append(rotationFailureRow(degree, 0, 0, err))
		return
	}

	ctx, err := hebfv.NewContext(profile, hebfv.Options{
		RotationSteps: DefaultRotationSteps,
		Logger:        logger,
	})
	if err != nil {
		for _, step := range DefaultRotationSteps {
			sink.Append(rotationFailureRow(degree, 0, step, err))
		}
		return
	}
	defer ctx.Teardown()

	slots := ctx.SlotCount()
	vec := HEMark.RandomVector(slots, operandBound, 0xC, uint64(degree))

	pt, err := ctx.Encode(vec)
	if err != nil {
		for _, step := range DefaultRotationSteps {
			sink.Append(rotationFailureRow(degree, slots, step, err))
		}
		return
	}
	baseline := HEMark.HeapAlloc()
	ct, err := ctx.Encrypt(pt)
	if err != nil {
		for _, step := range DefaultRotationSteps {
			sink.Append(rotationFailureRow(degree, slots, step, err))
		}
		return
	}
	mem := uint64(0)
	if cur := HEMark.HeapAlloc(); cur > baseline {
		mem = cur - baseline
	}

	for _, step := range DefaultRotationSteps {
		start := time.Now()
		rotated, rerr := ctx.Rotate(ct, step)
		rotTime := time.Since(start)
		if rerr != nil {
			sink.Append(rotationFailureRow(degree, slots, step, rerr))
			continue
		}
		decrypted, derr := ctx.Decrypt(rotated)
		if derr != nil {
			sink.Append(rotationFailureRow(degree, slots, step, derr))
			continue
		}
		correct := equalPrefix(decrypted, rotatedColumns(vec, step))
		logger.PrintFormatted("N=%d rotate(%d): %v correct=%t", degree, step, rotTime, correct)
		logger.PrintSummarizedVector(fmt.Sprintf("rotate(%d)", step), decrypted, 16)
		sink.Append(results.Row{
			"poly_degree":   strconv.Itoa(degree),
			"vector_size":   strconv.Itoa(slots),
			"rotation_step": strconv.Itoa(step),
			"rot_time":      fmt.Sprintf("%.6f", rotTime.Seconds()),
			"memory_usage":  strconv.FormatUint(mem, 10),
			"correct":       strconv.FormatBool(correct),
		})
	}
}

func rotationFailureRow(degree, slots, step int, err error) results.Row {
	row := results.Row{
		"poly_degree": strconv.Itoa(degree),
		"correct":     "false",
		"error":       err.Error(),
	}
	if slots > 0 {
		row["vector_size"] = strconv.Itoa(slots)
	}
	if step != 0 {
		row["rotation_step"] = strconv.Itoa(step)
	}
	return row
}

// rotatedColumns applies the batching layout of the scheme: the slots form
// two rows of slots/2 columns and a column rotation by k cyclically shifts
// each row left by k. Negative k rotates right.
func rotatedColumns(vec HEMark.Vector, k int) HEMark.Vector {
	half := len(vec) / 2
	out := make(HEMark.Vector, len(vec))
	for row := 0; row < 2; row++ {
		base := row * half
		for i := 0; i < half; i++ {
			out[base+i] = vec[base+((i+k)%half+half)%half]
		}
	}
	return out
}

func equalPrefix(got, want HEMark.Vector) bool {
	if len(got) < len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
