package HEMark

import (
	"encoding/binary"
	"runtime"

	"golang.org/x/crypto/sha3"
)

// RandomVector derives n field elements below modulus from a SHAKE128
// keystream seeded with nonce and counter. The same seed always yields the
// same vector, so every sweep and re-run measures identical operands.
func RandomVector(n int, modulus uint64, nonce uint64, counter uint64) Vector {
	seed := make([]byte, 16)
	binary.BigEndian.PutUint64(seed[:8], nonce)
	binary.BigEndian.PutUint64(seed[8:], counter)

	shake := sha3.NewShake128()
	if _, err := shake.Write(seed); err != nil {
		panic("Failed to init SHAKE128!")
	}

	mask := maskFor(modulus)
	vec := make(Vector, n)
	var randomByte [8]byte
	for i := 0; i < n; i++ {
		// rejection sampling keeps the draw uniform below modulus
		for {
			if _, err := shake.Read(randomByte[:]); err != nil {
				panic("SHAKE128 squeeze failed")
			}
			fieldElement := binary.BigEndian.Uint64(randomByte[:]) & mask
			if fieldElement < modulus {
				vec[i] = fieldElement
				break
			}
		}
	}
	return vec
}

// maskFor returns the all-ones mask covering the bit length of modulus
func maskFor(modulus uint64) uint64 {
	bits := uint64(0)
	for m := modulus; m > 0; m >>= 1 {
		bits++
	}
	return (1 << bits) - 1
}

// ConstantVector returns n copies of value
func ConstantVector(n int, value uint64) Vector {
	vec := make(Vector, n)
	for i := range vec {
		vec[i] = value
	}
	return vec
}

// CeilDiv returns ceil(a/b) for positive b
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// AddMod returns (a + b) mod modulus
func AddMod(a, b, modulus uint64) uint64 {
	return (a%modulus + b%modulus) % modulus
}

// MulMod returns (a * b) mod modulus. All supported plaintext moduli are
// below 2^29, so the product of two reduced operands fits in a uint64.
func MulMod(a, b, modulus uint64) uint64 {
	return ((a % modulus) * (b % modulus)) % modulus
}

// PowMod returns base^exp mod modulus by square and multiply
func PowMod(base, exp, modulus uint64) uint64 {
	result := uint64(1)
	base %= modulus
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, base, modulus)
		}
		base = MulMod(base, base, modulus)
		exp >>= 1
	}
	return result
}

// HeapAlloc reads the currently allocated heap bytes. Trial phases sample it
// before and after native calls to approximate peak working-set growth.
func HeapAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}
