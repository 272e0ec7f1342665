// Package depth discovers how many sequential homomorphic operations a
// parameter profile sustains before decryption stops being correct.
package depth

import (
	"fmt"

	"HEMark"
	"HEMark/hebfv"
	"HEMark/profiles"

	"github.com/tuneinsight/lattigo/v5/core/rlwe"
)

// Status is the terminal state of one exhaustion search.
type Status int

const (
	// Operational: the search hit its iteration cap with every checkpoint
	// still decrypting correctly.
	Operational Status = iota
	// Mismatch: a checkpoint decrypted to the wrong values. This is the
	// expected measurement outcome, not a defect.
	Mismatch
	// Exception: the underlying scheme failed during an operation or a
	// decryption before any mismatch was observed.
	Exception
)

func (s Status) String() string {
	switch s {
	case Operational:
		return "operational"
	case Mismatch:
		return "mismatch"
	case Exception:
		return "exception"
	}
	return "unknown"
}

// DefaultMaxOps caps searches whose correctness may never break, such as
// additions under a deep chain.
const DefaultMaxOps = 16384

// Config describes one exhaustion search.
type Config struct {
	// Op is applied repeatedly to the running ciphertext.
	Op HEMark.Operator
	// SeedKind selects whether the constant operand stays a plaintext or is
	// encrypted, giving cipher-plain and cipher-cipher searches.
	SeedKind HEMark.OperandKind
	// Seed is the constant small vector; small values delay overflow of the
	// closed-form expected value, not the noise budget.
	Seed HEMark.Vector
	// Checkpoints is the ascending list of operation counts at which the
	// result is decrypted and verified. Nil verifies after every operation.
	Checkpoints []int
	// MaxOps bounds the loop. Zero means the last checkpoint, or
	// DefaultMaxOps when verifying every step.
	MaxOps int
	// Relinearize attempts relinearization after each multiply. A failed
	// relinearization is swallowed and the loop continues on the
	// unrelinearized ciphertext, so reported depths can be optimistic.
	Relinearize bool
}

// CheckpointResult is the outcome of one verification checkpoint: the
// operation count at which the running ciphertext was decrypted and whether
// the decryption matched the closed form.
type CheckpointResult struct {
	Operations int
	Passed     bool
}

// Record is the reportable outcome of one search.
// OperationsCompleted is the last operation count that verified correctly;
// zero means the profile failed its very first checkpoint. Checkpoints
// holds every verified checkpoint in order, the failing one included.
type Record struct {
	Profile             profiles.Profile
	Op                  HEMark.Operator
	SeedKind            HEMark.OperandKind
	OperationsCompleted int
	Checkpoints         []CheckpointResult
	Status              Status
	Err                 error
}

// Engine runs one search against one context. It is single-use: the record
// of the first Run is returned again by any later call.
type Engine struct {
	ctx    *hebfv.Context
	cfg    Config
	used   bool
	record Record
}

func NewEngine(ctx *hebfv.Context, cfg Config) *Engine {
	return &Engine{ctx: ctx, cfg: cfg}
}

// PowersOfTwoCheckpoints builds the coarse schedule 1, 2, 4, ... up to limit.
func PowersOfTwoCheckpoints(limit int) []int {
	var cps []int
	for c := 1; c <= limit; c <<= 1 {
		cps = append(cps, c)
	}
	if len(cps) == 0 || cps[len(cps)-1] != limit {
		cps = append(cps, limit)
	}
	return cps
}

func (e *Engine) maxOps() int {
	if e.cfg.MaxOps > 0 {
		return e.cfg.MaxOps
	}
	if n := len(e.cfg.Checkpoints); n > 0 {
		return e.cfg.Checkpoints[n-1]
	}
	return DefaultMaxOps
}

// Run executes the search to its terminal state and reports the record.
func (e *Engine) Run() Record {
	if e.used {
		return e.record
	}
	e.used = true
	e.record = e.search()
	return e.record
}

func (e *Engine) search() Record {
	rec := Record{
		Profile:  e.ctx.Profile(),
		Op:       e.cfg.Op,
		SeedKind: e.cfg.SeedKind,
	}
	t := e.ctx.PlainModulus()

	seed := make(HEMark.Vector, len(e.cfg.Seed))
	for i, v := range e.cfg.Seed {
		seed[i] = v % t
	}
	if len(seed) == 0 {
		rec.Status = Exception
		rec.Err = fmt.Errorf("empty seed vector")
		return rec
	}

	seedPt, err := e.ctx.Encode(seed)
	if err != nil {
		rec.Status = Exception
		rec.Err = err
		return rec
	}
	running, err := e.ctx.Encrypt(seedPt)
	if err != nil {
		rec.Status = Exception
		rec.Err = err
		return rec
	}

	var seedOperand rlwe.Operand = seedPt
	if e.cfg.SeedKind == HEMark.Cipher {
		seedCt, err := e.ctx.Encrypt(seedPt)
		if err != nil {
			rec.Status = Exception
			rec.Err = err
			return rec
		}
		seedOperand = seedCt
	}

	maxOps := e.maxOps()
	cpIdx := 0
	lastGood := 0

	for k := 1; k <= maxOps; k++ {
		switch e.cfg.Op {
		case HEMark.Add:
			running, err = e.ctx.Add(running, seedOperand)
		case HEMark.Mul:
			running, err = e.ctx.Mul(running, seedOperand)
		}
		if err != nil {
			rec.Status = Exception
			rec.Err = err
			rec.OperationsCompleted = lastGood
			return rec
		}

		if e.cfg.Op == HEMark.Mul && e.cfg.Relinearize {
			if relined, rerr := e.ctx.Relinearize(running); rerr == nil {
				running = relined
			}
			// a failed relinearization does not stop the search
		}

		if !e.isCheckpoint(k, &cpIdx) {
			continue
		}

		decrypted, derr := e.ctx.Decrypt(running)
		if derr != nil {
			rec.Status = Exception
			rec.Err = derr
			rec.OperationsCompleted = lastGood
			return rec
		}
		if !e.verify(decrypted, seed, k, t) {
			rec.Checkpoints = append(rec.Checkpoints, CheckpointResult{Operations: k, Passed: false})
			rec.Status = Mismatch
			rec.OperationsCompleted = lastGood
			return rec
		}
		rec.Checkpoints = append(rec.Checkpoints, CheckpointResult{Operations: k, Passed: true})
		lastGood = k
	}

	rec.Status = Operational
	rec.OperationsCompleted = lastGood
	return rec
}

func (e *Engine) isCheckpoint(k int, cpIdx *int) bool {
	if e.cfg.Checkpoints == nil {
		return true
	}
	if *cpIdx < len(e.cfg.Checkpoints) && e.cfg.Checkpoints[*cpIdx] == k {
		*cpIdx++
		return true
	}
	return false
}

// verify compares the seed-length prefix against the closed form:
// seed^(k+1) for repeated multiplication, seed*(k+1) for repeated addition,
// both mod t. k operations combine k+1 seed terms.
func (e *Engine) verify(decrypted, seed HEMark.Vector, k int, t uint64) bool {
	if len(decrypted) < len(seed) {
		return false
	}
	for i, s := range seed {
		var want uint64
		if e.cfg.Op == HEMark.Mul {
			want = HEMark.PowMod(s, uint64(k+1), t)
		} else {
			want = HEMark.MulMod(s, uint64(k+1), t)
		}
		if decrypted[i] != want {
			return false
		}
	}
	return true
}
