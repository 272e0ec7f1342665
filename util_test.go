package HEMark

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomVector(t *testing.T) {
	vec := RandomVector(1000, 65537, 1, 1)
	require.Len(t, vec, 1000)
	for _, v := range vec {
		require.Less(t, v, uint64(65537))
	}

	// same nonce and counter reproduce the stream
	again := RandomVector(1000, 65537, 1, 1)
	require.Equal(t, vec, again)

	other := RandomVector(1000, 65537, 2, 1)
	require.NotEqual(t, vec, other)
}

func TestConstantVector(t *testing.T) {
	vec := ConstantVector(16, 7)
	require.Len(t, vec, 16)
	for _, v := range vec {
		require.Equal(t, uint64(7), v)
	}
}

func TestCeilDiv(t *testing.T) {
	require.Equal(t, 245, CeilDiv(1_000_000, 4096))
	require.Equal(t, 1, CeilDiv(1, 4096))
	require.Equal(t, 2, CeilDiv(4097, 4096))
}

func TestModularArithmetic(t *testing.T) {
	const tMod = 65537

	require.Equal(t, uint64(0), AddMod(65536, 1, tMod))
	require.Equal(t, uint64(1), MulMod(65536, 65536, tMod))
	require.Equal(t, uint64(65536), PowMod(2, 16, tMod))
	require.Equal(t, uint64(65535), PowMod(2, 17, tMod))
	require.Equal(t, uint64(1), PowMod(3, 0, tMod))
}

func TestOperandKindString(t *testing.T) {
	require.Equal(t, "P", Plain.String())
	require.Equal(t, "C", Cipher.String())
}

func TestOperatorString(t *testing.T) {
	require.Equal(t, "add", Add.String())
	require.Equal(t, "mul", Mul.String())
}
