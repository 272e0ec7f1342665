package profiles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDepthTable(t *testing.T) {
	expected := map[int]struct {
		modulus uint64
		chain   []int
	}{
		1024:  {65537, []int{40, 30, 30, 40}},
		2048:  {65537, []int{50, 40, 40, 50}},
		4096:  {65537, []int{50, 30, 30, 30, 50}},
		8192:  {65537, []int{60, 40, 40, 40, 60}},
		16384: {132120577, []int{60, 40, 40, 40, 40, 60}},
		32768: {265420801, []int{60, 40, 40, 40, 40, 40, 60}},
	}
	for _, n := range Degrees() {
		p, err := Depth(n)
		require.NoError(t, err)
		require.Equal(t, n, p.RingDegree)
		require.Equal(t, expected[n].modulus, p.GetPlainModulus())
		require.Equal(t, expected[n].chain, p.LogQ)
		require.Equal(t, 128, p.Security)
	}
}

func TestThroughputShallowerThanDepth(t *testing.T) {
	for _, n := range Degrees() {
		tp, err := Throughput(n)
		require.NoError(t, err)
		dp, err := Depth(n)
		require.NoError(t, err)
		require.Less(t, tp.TotalQBits(), dp.TotalQBits(),
			"throughput chain should carry less budget than depth chain for N=%d", n)
	}
}

func TestUnknownProfile(t *testing.T) {
	_, err := Depth(512)
	require.True(t, errors.Is(err, ErrUnknownProfile))
	_, err = Throughput(12345)
	require.True(t, errors.Is(err, ErrUnknownProfile))
}

func TestProfileImmutability(t *testing.T) {
	p1, err := Depth(1024)
	require.NoError(t, err)
	p1.LogQ[0] = 1

	p2, err := Depth(1024)
	require.NoError(t, err)
	require.Equal(t, 40, p2.LogQ[0], "mutating a returned profile must not touch the registry")
}

func TestGetLogN(t *testing.T) {
	p, err := Throughput(8192)
	require.NoError(t, err)
	require.Equal(t, 13, p.GetLogN())
}
