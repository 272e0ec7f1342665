// Package profiles curates the BFV parameter sets the harness sweeps over.
// Chains are hand-tuned per ring degree: depth experiments carry deeper
// modulus chains than plain throughput runs, so the two purposes keep
// distinct tables.
package profiles

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrUnknownProfile is returned when no chain is curated for a ring degree.
var ErrUnknownProfile = errors.New("no parameter profile for this ring degree")

// Profile is an immutable BFV parameter set for one ring degree.
type Profile struct {
	RingDegree   int
	PlainModulus uint64
	LogQ         []int
	LogP         []int
	Security     int
}

// GetLogN returns log2 of the ring degree
func (p Profile) GetLogN() int {
	return bits.Len(uint(p.RingDegree)) - 1
}

// GetPlainModulus returns the plaintext modulus t
func (p Profile) GetPlainModulus() uint64 {
	return p.PlainModulus
}

// TotalQBits returns the bit budget of the ciphertext modulus chain
func (p Profile) TotalQBits() int {
	total := 0
	for _, q := range p.LogQ {
		total += q
	}
	return total
}

// ChainString renders the chain the way the result files record it
func (p Profile) ChainString() string {
	return fmt.Sprintf("%d", p.LogQ)
}

func plainModulusFor(ringDegree int) uint64 {
	switch ringDegree {
	case 16384:
		return 132120577
	case 32768:
		return 265420801
	default:
		return 65537
	}
}

// throughputChains hold just enough levels for single add/multiply trials.
var throughputChains = map[int][]int{
	1024:  {30, 30},
	2048:  {40, 40},
	4096:  {40, 30, 40},
	8192:  {50, 40, 50},
	16384: {50, 40, 40, 50},
	32768: {60, 40, 40, 60},
}

// depthChains are the deeper chains used to probe operation depth.
var depthChains = map[int][]int{
	1024:  {40, 30, 30, 40},
	2048:  {50, 40, 40, 50},
	4096:  {50, 30, 30, 30, 50},
	8192:  {60, 40, 40, 40, 60},
	16384: {60, 40, 40, 40, 40, 60},
	32768: {60, 40, 40, 40, 40, 40, 60},
}

func specialPrimesFor(ringDegree int) []int {
	// one key-switching prime, sized with the chain
	switch {
	case ringDegree <= 2048:
		return []int{40}
	case ringDegree <= 8192:
		return []int{50}
	default:
		return []int{60}
	}
}

func lookup(table map[int][]int, ringDegree int) (Profile, error) {
	chain, ok := table[ringDegree]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %d", ErrUnknownProfile, ringDegree)
	}
	return Profile{
		RingDegree:   ringDegree,
		PlainModulus: plainModulusFor(ringDegree),
		LogQ:         append([]int(nil), chain...),
		LogP:         append([]int(nil), specialPrimesFor(ringDegree)...),
		Security:     128,
	}, nil
}

// Throughput returns the profile used by operation-throughput sweeps.
func Throughput(ringDegree int) (Profile, error) {
	return lookup(throughputChains, ringDegree)
}

// Depth returns the profile used by depth-exhaustion searches.
func Depth(ringDegree int) (Profile, error) {
	return lookup(depthChains, ringDegree)
}

// Degrees lists the curated ring degrees in sweep order.
func Degrees() []int {
	return []int{1024, 2048, 4096, 8192, 16384, 32768}
}
