// Package trial runs one measured (operand kinds, operator) combination
// over chunked vectors and verifies the result against closed-form modular
// arithmetic.
package trial

import (
	"fmt"
	"time"

	"HEMark"
	"HEMark/chunk"
	"HEMark/hebfv"

	"github.com/tuneinsight/lattigo/v5/core/rlwe"
)

// Kinds pairs the operand kinds of one trial.
type Kinds struct {
	A, B HEMark.OperandKind
}

// Label renders the combination the way the result files record it,
// e.g. PC_add or CC_mul.
func (k Kinds) Label(op HEMark.Operator) string {
	return fmt.Sprintf("%s%s_%s", k.A, k.B, op)
}

// AllKinds lists every operand combination in sweep order.
var AllKinds = []Kinds{
	{HEMark.Plain, HEMark.Plain},
	{HEMark.Plain, HEMark.Cipher},
	{HEMark.Cipher, HEMark.Plain},
	{HEMark.Cipher, HEMark.Cipher},
}

// Result is the outcome of one trial. On failure Err is set, Correct is
// false and the phase timings are zero.
type Result struct {
	Kinds      Kinds
	Op         HEMark.Operator
	VectorSize int
	ChunkCount int
	EncTime    time.Duration
	OpTime     time.Duration
	DecTime    time.Duration
	PeakMemory uint64
	Correct    bool
	Err        error
}

func failed(kinds Kinds, op HEMark.Operator, size int, err error) Result {
	return Result{Kinds: kinds, Op: op, VectorSize: size, Err: err}
}

// Run executes one trial. It never panics and always returns a reportable
// result, so a single failing combination cannot abort a sweep.
func Run(ctx *hebfv.Context, kinds Kinds, op HEMark.Operator, a, b HEMark.Vector) Result {
	if len(a) != len(b) {
		return failed(kinds, op, len(a), fmt.Errorf("operand length mismatch: %d vs %d", len(a), len(b)))
	}
	if len(a) == 0 {
		return failed(kinds, op, 0, fmt.Errorf("empty operand vectors"))
	}

	t := ctx.PlainModulus()
	expected := expectedVector(op, a, b, t)

	if kinds.A == HEMark.Plain && kinds.B == HEMark.Plain {
		return runPlainOnly(kinds, op, a, b, t, expected)
	}

	capacity := ctx.SlotCount()
	chunksA := chunk.Split(a, capacity)
	chunksB := chunk.Split(b, capacity)

	res := Result{Kinds: kinds, Op: op, VectorSize: len(a), ChunkCount: len(chunksA)}

	opsA, encA, memA, err := prepare(ctx, kinds.A, chunksA)
	if err != nil {
		return failed(kinds, op, len(a), err)
	}
	opsB, encB, memB, err := prepare(ctx, kinds.B, chunksB)
	if err != nil {
		return failed(kinds, op, len(a), err)
	}
	res.EncTime = encA + encB
	res.PeakMemory = memA
	if memB > memA {
		res.PeakMemory = memB
	}

	out := make([]*rlwe.Ciphertext, len(chunksA))
	start := time.Now()
	for i := range chunksA {
		x, y := arrange(opsA[i], opsB[i], kinds)
		switch op {
		case HEMark.Add:
			out[i], err = ctx.Add(x, y)
		case HEMark.Mul:
			out[i], err = ctx.Mul(x, y)
		}
		if err != nil {
			return failed(kinds, op, len(a), err)
		}
	}
	res.OpTime = time.Since(start)

	decrypted := make([]chunk.Chunk, len(out))
	start = time.Now()
	for i, ct := range out {
		vec, derr := ctx.Decrypt(ct)
		if derr != nil {
			return failed(kinds, op, len(a), derr)
		}
		if len(vec) > capacity {
			vec = vec[:capacity]
		}
		decrypted[i] = chunk.Chunk{Offset: chunksA[i].Offset, Values: vec}
	}
	res.DecTime = time.Since(start)

	actual := chunk.Reassemble(decrypted, len(a))
	res.Correct = equal(actual, expected)
	return res
}

// runPlainOnly times the cleartext baseline the way the encrypted trials
// are timed; no encode, encrypt or decrypt phase exists.
func runPlainOnly(kinds Kinds, op HEMark.Operator, a, b HEMark.Vector, t uint64, expected HEMark.Vector) Result {
	start := time.Now()
	actual := expectedVector(op, a, b, t)
	opTime := time.Since(start)
	return Result{
		Kinds:      kinds,
		Op:         op,
		VectorSize: len(a),
		OpTime:     opTime,
		Correct:    equal(actual, expected),
	}
}

// operand carries the encoded and, for Cipher kinds, encrypted form of one
// chunk. Plain operands are never encrypted.
type operand struct {
	pt *rlwe.Plaintext
	ct *rlwe.Ciphertext
}

func prepare(ctx *hebfv.Context, kind HEMark.OperandKind, chunks []chunk.Chunk) ([]operand, time.Duration, uint64, error) {
	ops := make([]operand, len(chunks))
	baseline := HEMark.HeapAlloc()
	peak := uint64(0)
	start := time.Now()
	for i, c := range chunks {
		pt, err := ctx.Encode(c.Values)
		if err != nil {
			return nil, 0, 0, err
		}
		ops[i].pt = pt
		if kind == HEMark.Cipher {
			ct, err := ctx.Encrypt(pt)
			if err != nil {
				return nil, 0, 0, err
			}
			ops[i].ct = ct
		}
		if cur := HEMark.HeapAlloc(); cur > baseline && cur-baseline > peak {
			peak = cur - baseline
		}
	}
	return ops, time.Since(start), peak, nil
}

// arrange picks the ciphertext-first argument order the evaluator needs.
// Add and Mul are slot-wise commutative, so swapping is sound.
func arrange(a, b operand, kinds Kinds) (*rlwe.Ciphertext, rlwe.Operand) {
	if kinds.A == HEMark.Cipher {
		if kinds.B == HEMark.Cipher {
			return a.ct, b.ct
		}
		return a.ct, b.pt
	}
	return b.ct, a.pt
}

func expectedVector(op HEMark.Operator, a, b HEMark.Vector, t uint64) HEMark.Vector {
	out := make(HEMark.Vector, len(a))
	for i := range a {
		if op == HEMark.Add {
			out[i] = HEMark.AddMod(a[i], b[i], t)
		} else {
			out[i] = HEMark.MulMod(a[i], b[i], t)
		}
	}
	return out
}

func equal(a, b HEMark.Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
