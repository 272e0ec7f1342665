package experiments

import (
	"errors"
	"testing"

	"HEMark"
	"HEMark/depth"
	"HEMark/profiles"

	"github.com/stretchr/testify/require"
)

func depthTestRecord(t *testing.T) depth.Record {
	t.Helper()
	profile, err := profiles.Depth(4096)
	require.NoError(t, err)
	return depth.Record{
		Profile:  profile,
		Op:       HEMark.Add,
		SeedKind: HEMark.Cipher,
	}
}

func TestCheckpointRowStatus(t *testing.T) {
	rec := depthTestRecord(t)

	passed := checkpointRow("cipher_plus_cipher", rec, depth.CheckpointResult{Operations: 8, Passed: true})
	require.Equal(t, "OPERATIONAL", passed["noise_budget_status"])
	require.Equal(t, "8", passed["operations_count"])
	require.Equal(t, "4096", passed["poly_degree"])
	require.Empty(t, passed["error"])

	failed := checkpointRow("cipher_plus_cipher", rec, depth.CheckpointResult{Operations: 16, Passed: false})
	require.Equal(t, "FAILED", failed["noise_budget_status"])
	require.Equal(t, "16", failed["operations_count"])
}

func TestDepthRowStatus(t *testing.T) {
	rec := depthTestRecord(t)

	rec.Status = depth.Operational
	rec.OperationsCompleted = 16384
	row := depthRow("cipher_plus_cipher", rec)
	require.Equal(t, "OPERATIONAL", row["noise_budget_status"])
	require.Equal(t, "16384", row["operations_count"])
	require.Empty(t, row["error"])

	rec.Status = depth.Mismatch
	rec.OperationsCompleted = 3
	row = depthRow("cipher_times_cipher", rec)
	require.Equal(t, "FAILED", row["noise_budget_status"])
	require.Equal(t, "3", row["operations_count"])
	require.Empty(t, row["error"], "a mismatch is the measurement, not an error")

	rec.Status = depth.Exception
	rec.Err = errors.New("decrypt: boom")
	row = depthRow("cipher_times_cipher", rec)
	require.Equal(t, "FAILED", row["noise_budget_status"])
	require.Equal(t, "decrypt: boom", row["error"])
}
