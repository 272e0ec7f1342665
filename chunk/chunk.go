// Package chunk splits logical vectors into slot-capacity blocks and
// reassembles decrypted blocks back into one vector.
package chunk

import (
	"HEMark"
)

// Chunk is one fixed-capacity block of a logical vector. Offset is the
// position of its first element in the source vector, kept for reassembly.
type Chunk struct {
	Offset int
	Values HEMark.Vector
}

// Split cuts vec into ceil(len(vec)/capacity) chunks of exactly capacity
// elements, zero-padding the last one. An empty vector yields no chunks.
func Split(vec HEMark.Vector, capacity int) []Chunk {
	if capacity <= 0 {
		panic("chunk: capacity must be positive")
	}
	if len(vec) == 0 {
		return nil
	}
	count := HEMark.CeilDiv(len(vec), capacity)
	chunks := make([]Chunk, count)
	for i := 0; i < count; i++ {
		offset := i * capacity
		values := make(HEMark.Vector, capacity)
		copy(values, vec[offset:min(offset+capacity, len(vec))])
		chunks[i] = Chunk{Offset: offset, Values: values}
	}
	return chunks
}

// Count returns the number of chunks Split would produce for a vector of
// length n.
func Count(n, capacity int) int {
	if capacity <= 0 {
		panic("chunk: capacity must be positive")
	}
	if n == 0 {
		return 0
	}
	return HEMark.CeilDiv(n, capacity)
}

// Reassemble concatenates chunks in order and truncates the padding so that
// Reassemble(Split(v, c), len(v)) == v.
func Reassemble(chunks []Chunk, originalLength int) HEMark.Vector {
	out := make(HEMark.Vector, 0, originalLength)
	for _, c := range chunks {
		out = append(out, c.Values...)
	}
	if len(out) > originalLength {
		out = out[:originalLength]
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
