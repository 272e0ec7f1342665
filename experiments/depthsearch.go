package experiments

import (
	"fmt"
	"strconv"

	"HEMark"
	"HEMark/depth"
	"HEMark/hebfv"
	"HEMark/profiles"
	"HEMark/results"
)

// seedSize and seedValue match the original searches: a short vector of
// twos keeps the closed-form expected value representable for many steps.
const (
	seedSize  = 8
	seedValue = 2
)

// CipherTimesCipher searches the maximum number of sequential
// ciphertext-by-ciphertext multiplications per depth profile, verifying
// after every operation.
func CipherTimesCipher(cfg Config) *results.Sink {
	sink := results.NewSink("Cipher_Times_Cipher_Experiment", results.DepthSchema)
	runDepthSearch(sink, cfg, "cipher_times_cipher", depth.Config{
		Op:          HEMark.Mul,
		SeedKind:    HEMark.Cipher,
		Relinearize: true,
	}, false)
	return sink
}

// CipherTimesPlain is the ciphertext-by-plaintext variant.
func CipherTimesPlain(cfg Config) *results.Sink {
	sink := results.NewSink("Cipher_Times_Plain_Experiment", results.DepthSchema)
	runDepthSearch(sink, cfg, "cipher_times_plain", depth.Config{
		Op:       HEMark.Mul,
		SeedKind: HEMark.Plain,
	}, false)
	return sink
}

// CipherPlusCipherNoise probes the additive noise budget with coarse
// power-of-two checkpoints up to the iteration cap, since additions may
// never break correctness within a bounded run. Every checkpoint lands in
// the result file as its own row with a pass/fail status.
func CipherPlusCipherNoise(cfg Config) *results.Sink {
	sink := results.NewSink("Cipher_Plus_Cipher_Noise_Experiment", results.DepthSchema)
	runDepthSearch(sink, cfg, "cipher_plus_cipher", depth.Config{
		Op:          HEMark.Add,
		SeedKind:    HEMark.Cipher,
		Checkpoints: depth.PowersOfTwoCheckpoints(depth.DefaultMaxOps),
	}, true)
	return sink
}

func runDepthSearch(sink *results.Sink, cfg Config, opType string, dcfg depth.Config, perCheckpoint bool) {
	logger := cfg.logger()
	dcfg.Seed = HEMark.ConstantVector(seedSize, seedValue)
	for _, degree := range cfg.ringDegrees() {
		logger.PrintHeader(fmt.Sprintf("%s | N=%d", sink.Name(), degree))
		runDepthProfile(sink, degree, opType, dcfg, perCheckpoint, logger)
	}
}

// runDepthProfile runs one single-use engine against one profile. The
// context is always released before returning, and any setup failure
// becomes a failure-flagged row rather than a stopped sweep.
func runDepthProfile(sink *results.Sink, degree int, opType string, dcfg depth.Config, perCheckpoint bool, logger HEMark.Logger) {
	profile, err := profiles.Depth(degree)
	if err != nil {
		sink.Append(results.Row{
			"poly_degree":    strconv.Itoa(degree),
			"operation_type": opType,
			"error":          err.Error(),
		})
		return
	}

	ctx, err := hebfv.NewContext(profile, hebfv.Options{
		RelinKey: dcfg.Relinearize,
		Logger:   logger,
	})
	if err != nil {
		sink.Append(results.Row{
			"poly_degree":        strconv.Itoa(degree),
			"total_modulus_bits": strconv.Itoa(profile.TotalQBits()),
			"modulus_chain":      profile.ChainString(),
			"operations_count":   "0",
			"operation_type":     opType,
			"error":              err.Error(),
		})
		return
	}
	defer ctx.Teardown()

	rec := depth.NewEngine(ctx, dcfg).Run()
	logger.PrintFormatted("N=%d %s: %d operations, terminal status %s",
		degree, opType, rec.OperationsCompleted, rec.Status)
	logger.PrintMemUsage(fmt.Sprintf("N=%d %s", degree, opType))

	if perCheckpoint {
		for _, cp := range rec.Checkpoints {
			sink.Append(checkpointRow(opType, rec, cp))
		}
		// a scheme failure mid-search still gets its error row
		if rec.Status == depth.Exception {
			sink.Append(depthRow(opType, rec))
		}
		return
	}
	sink.Append(depthRow(opType, rec))
}

func statusLabel(s depth.Status) string {
	if s == depth.Operational {
		return "OPERATIONAL"
	}
	return "FAILED"
}

// checkpointRow renders one verified checkpoint of an additive search.
func checkpointRow(opType string, rec depth.Record, cp depth.CheckpointResult) results.Row {
	status := "OPERATIONAL"
	if !cp.Passed {
		status = "FAILED"
	}
	return results.Row{
		"poly_degree":         strconv.Itoa(rec.Profile.RingDegree),
		"total_modulus_bits":  strconv.Itoa(rec.Profile.TotalQBits()),
		"modulus_chain":       rec.Profile.ChainString(),
		"operations_count":    strconv.Itoa(cp.Operations),
		"plaintext_modulus":   strconv.FormatUint(rec.Profile.PlainModulus, 10),
		"operation_type":      opType,
		"noise_budget_status": status,
	}
}

func depthRow(opType string, rec depth.Record) results.Row {
	row := results.Row{
		"poly_degree":         strconv.Itoa(rec.Profile.RingDegree),
		"total_modulus_bits":  strconv.Itoa(rec.Profile.TotalQBits()),
		"modulus_chain":       rec.Profile.ChainString(),
		"operations_count":    strconv.Itoa(rec.OperationsCompleted),
		"plaintext_modulus":   strconv.FormatUint(rec.Profile.PlainModulus, 10),
		"operation_type":      opType,
		"noise_budget_status": statusLabel(rec.Status),
	}
	// a mismatch is the measurement outcome; only scheme failures are errors
	if rec.Status == depth.Exception && rec.Err != nil {
		row["error"] = rec.Err.Error()
	}
	return row
}
