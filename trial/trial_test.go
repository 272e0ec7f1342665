package trial

import (
	"fmt"
	"testing"

	"HEMark"
	"HEMark/hebfv"
	"HEMark/profiles"

	"github.com/stretchr/testify/require"
)

func testString(kinds Kinds, op HEMark.Operator, size int) string {
	return fmt.Sprintf("%s/Size=%d", kinds.Label(op), size)
}

func TestRunAllKinds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping encrypted trials in short mode.")
	}
	profile, err := profiles.Throughput(1024)
	require.NoError(t, err)
	ctx, err := hebfv.NewContext(profile, hebfv.Options{})
	require.NoError(t, err)
	defer ctx.Teardown()

	// spans multiple chunks: 2500 values over 1024 slots
	size := 2500
	a := HEMark.RandomVector(size, 100, 7, 1)
	b := HEMark.RandomVector(size, 100, 8, 1)

	for _, kinds := range AllKinds {
		for _, op := range []HEMark.Operator{HEMark.Add, HEMark.Mul} {
			t.Run(testString(kinds, op, size), func(t *testing.T) {
				res := Run(ctx, kinds, op, a, b)
				require.NoError(t, res.Err)
				require.True(t, res.Correct)
				require.Equal(t, size, res.VectorSize)
				if kinds.A == HEMark.Plain && kinds.B == HEMark.Plain {
					require.Zero(t, res.ChunkCount)
					require.Zero(t, res.EncTime)
					require.Zero(t, res.DecTime)
				} else {
					require.Equal(t, 3, res.ChunkCount)
					require.Positive(t, res.EncTime)
					require.Positive(t, res.DecTime)
				}
			})
		}
	}
}

func TestRunOperandMismatch(t *testing.T) {
	kinds := Kinds{HEMark.Cipher, HEMark.Cipher}
	res := Run(nil, kinds, HEMark.Add, HEMark.Vector{1, 2}, HEMark.Vector{1})
	require.Error(t, res.Err)
	require.False(t, res.Correct)
	require.Zero(t, res.OpTime)
}

func TestRunEmptyVectors(t *testing.T) {
	kinds := Kinds{HEMark.Plain, HEMark.Cipher}
	res := Run(nil, kinds, HEMark.Mul, HEMark.Vector{}, HEMark.Vector{})
	require.Error(t, res.Err)
	require.False(t, res.Correct)
}

func TestLabel(t *testing.T) {
	require.Equal(t, "PC_add", Kinds{HEMark.Plain, HEMark.Cipher}.Label(HEMark.Add))
	require.Equal(t, "CC_mul", Kinds{HEMark.Cipher, HEMark.Cipher}.Label(HEMark.Mul))
	require.Equal(t, "CP_mul", Kinds{HEMark.Cipher, HEMark.Plain}.Label(HEMark.Mul))
}

func TestAllKindsOrder(t *testing.T) {
	require.Len(t, AllKinds, 4)
	require.Equal(t, Kinds{HEMark.Plain, HEMark.Plain}, AllKinds[0])
	require.Equal(t, Kinds{HEMark.Cipher, HEMark.Cipher}, AllKinds[3])
}
