package hebfv

import (
	"testing"

	"HEMark"
	"HEMark/profiles"

	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, degree int, opts Options) *Context {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping context generation in short mode.")
	}
	profile, err := profiles.Throughput(degree)
	require.NoError(t, err)
	ctx, err := NewContext(profile, opts)
	require.NoError(t, err)
	t.Cleanup(ctx.Teardown)
	return ctx
}

func TestContextRoundTrip(t *testing.T) {
	ctx := testContext(t, 1024, Options{})

	require.Equal(t, 1024, ctx.SlotCount())
	require.Equal(t, uint64(65537), ctx.PlainModulus())
	require.Empty(t, ctx.Warnings())

	vec := HEMark.RandomVector(ctx.SlotCount(), ctx.PlainModulus(), 1, 1)
	pt, err := ctx.Encode(vec)
	require.NoError(t, err)
	ct, err := ctx.Encrypt(pt)
	require.NoError(t, err)
	out, err := ctx.Decrypt(ct)
	require.NoError(t, err)
	require.Equal(t, vec, out[:len(vec)])
}

func TestContextArithmetic(t *testing.T) {
	ctx := testContext(t, 1024, Options{RelinKey: true})
	t64 := ctx.PlainModulus()

	a := HEMark.RandomVector(ctx.SlotCount(), 100, 2, 1)
	b := HEMark.RandomVector(ctx.SlotCount(), 100, 3, 1)
	ptA, err := ctx.Encode(a)
	require.NoError(t, err)
	ptB, err := ctx.Encode(b)
	require.NoError(t, err)
	ctA, err := ctx.Encrypt(ptA)
	require.NoError(t, err)
	ctB, err := ctx.Encrypt(ptB)
	require.NoError(t, err)

	t.Run("AddCipherCipher", func(t *testing.T) {
		sum, err := ctx.Add(ctA, ctB)
		require.NoError(t, err)
		out, err := ctx.Decrypt(sum)
		require.NoError(t, err)
		for i := range a {
			require.Equal(t, HEMark.AddMod(a[i], b[i], t64), out[i])
		}
	})

	t.Run("MulCipherPlain", func(t *testing.T) {
		prod, err := ctx.Mul(ctA, ptB)
		require.NoError(t, err)
		out, err := ctx.Decrypt(prod)
		require.NoError(t, err)
		for i := range a {
			require.Equal(t, HEMark.MulMod(a[i], b[i], t64), out[i])
		}
	})

	t.Run("MulRelinearize", func(t *testing.T) {
		require.True(t, ctx.HasRelinKey())
		prod, err := ctx.Mul(ctA, ctB)
		require.NoError(t, err)
		relined, err := ctx.Relinearize(prod)
		require.NoError(t, err)
		out, err := ctx.Decrypt(relined)
		require.NoError(t, err)
		for i := range a {
			require.Equal(t, HEMark.MulMod(a[i], b[i], t64), out[i])
		}
	})
}

func TestContextRotation(t *testing.T) {
	ctx := testContext(t, 1024, Options{RotationSteps: []int{1, -1}})
	require.True(t, ctx.HasRotationKeys())

	slots := ctx.SlotCount()
	half := slots / 2
	vec := make(HEMark.Vector, slots)
	for i := range vec {
		vec[i] = uint64(i)
	}
	pt, err := ctx.Encode(vec)
	require.NoError(t, err)
	ct, err := ctx.Encrypt(pt)
	require.NoError(t, err)

	// columns rotate within each of the two batching rows, in either direction
	for _, step := range []int{1, -1} {
		rotated, err := ctx.Rotate(ct, step)
		require.NoError(t, err)
		out, err := ctx.Decrypt(rotated)
		require.NoError(t, err)
		for row := 0; row < 2; row++ {
			base := row * half
			for i := 0; i < half; i++ {
				require.Equal(t, vec[base+((i+step)%half+half)%half], out[base+i])
			}
		}
	}
}

func TestContextMissingKeys(t *testing.T) {
	ctx := testContext(t, 1024, Options{})
	require.False(t, ctx.HasRelinKey())
	require.False(t, ctx.HasRotationKeys())

	vec := HEMark.ConstantVector(ctx.SlotCount(), 1)
	pt, err := ctx.Encode(vec)
	require.NoError(t, err)
	ct, err := ctx.Encrypt(pt)
	require.NoError(t, err)

	_, err = ctx.Relinearize(ct)
	require.Error(t, err)
	_, err = ctx.Rotate(ct, 1)
	require.Error(t, err)
}

func TestContextTeardown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping context generation in short mode.")
	}
	profile, err := profiles.Throughput(1024)
	require.NoError(t, err)
	ctx, err := NewContext(profile, Options{})
	require.NoError(t, err)

	ctx.Teardown()
	ctx.Teardown() // second release is a no-op

	_, err = ctx.Encode(HEMark.ConstantVector(4, 1))
	require.Error(t, err)
}

func TestContextUnknownProfile(t *testing.T) {
	_, err := profiles.Throughput(3000)
	require.ErrorIs(t, err, profiles.ErrUnknownProfile)
}
