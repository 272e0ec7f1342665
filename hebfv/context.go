// Package hebfv wraps the lattigo BFV scheme behind the capability surface
// the measurement harness drives: context and key generation, encode,
// encrypt, decrypt, add, multiply, relinearize and rotate.
package hebfv

import (
	"fmt"

	"HEMark"
	"HEMark/profiles"

	"github.com/tuneinsight/lattigo/v5/core/rlwe"
	"github.com/tuneinsight/lattigo/v5/schemes/bfv"
)

// Options selects the optional key material a sweep needs. Rotation and
// relinearization keys are only generated on request since they dominate
// key-generation time for large rings.
type Options struct {
	RelinKey      bool
	RotationSteps []int
	Logger        HEMark.Logger
}

// Context owns the scheme state for exactly one parameter profile. It is
// built once per profile under test and must be released with Teardown
// before the next profile starts, so at most one context is ever live.
type Context struct {
	logger    HEMark.Logger
	profile   profiles.Profile
	params    bfv.Parameters
	encoder   *bfv.Encoder
	evaluator *bfv.Evaluator
	encryptor *rlwe.Encryptor
	decryptor *rlwe.Decryptor
	sk        *rlwe.SecretKey
	pk        *rlwe.PublicKey
	rlk       *rlwe.RelinearizationKey
	glk       []*rlwe.GaloisKey
	warnings  []string
	released  bool
}

// NewContext generates scheme parameters and key material for one profile.
// Failures of rotation or relinearization key generation are recorded as
// warnings and leave a context that still supports add and multiply.
func NewContext(profile profiles.Profile, opts Options) (ctx *Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx = nil
			err = fmt.Errorf("context generation for N=%d: %v", profile.RingDegree, r)
		}
	}()

	logger := opts.Logger
	if logger == nil {
		logger = HEMark.NewLogger(HEMark.DEBUG)
	}

	params, err := bfv.NewParametersFromLiteral(bfv.ParametersLiteral{
		LogN:             profile.GetLogN(),
		LogQ:             append([]int(nil), profile.LogQ...),
		LogP:             append([]int(nil), profile.LogP...),
		PlaintextModulus: profile.PlainModulus,
	})
	if err != nil {
		return nil, fmt.Errorf("parameter generation for N=%d: %w", profile.RingDegree, err)
	}

	ctx = &Context{
		logger:  logger,
		profile: profile,
		params:  params,
	}

	kgen := rlwe.NewKeyGenerator(params)
	ctx.sk, ctx.pk = kgen.GenKeyPairNew()

	if opts.RelinKey {
		if rlk, kerr := genRelinKey(kgen, ctx.sk); kerr == nil {
			ctx.rlk = rlk
		} else {
			ctx.warn("relinearization key generation failed: %v", kerr)
		}
	}
	if len(opts.RotationSteps) > 0 {
		if glk, kerr := genGaloisKeys(params, kgen, ctx.sk, opts.RotationSteps); kerr == nil {
			ctx.glk = glk
		} else {
			ctx.warn("rotation key generation failed: %v", kerr)
		}
	}

	evk := rlwe.NewMemEvaluationKeySet(ctx.rlk, ctx.glk...)
	ctx.encoder = bfv.NewEncoder(params)
	ctx.evaluator = bfv.NewEvaluator(params, evk)
	ctx.encryptor = bfv.NewEncryptor(params, ctx.pk)
	ctx.decryptor = bfv.NewDecryptor(params, ctx.sk)

	logger.PrintFormatted("context ready: N=%d, t=%d, LogQP=%f, slots=%d",
		1<<params.LogN(), params.PlaintextModulus(), params.LogQP(), params.MaxSlots())
	return ctx, nil
}

func genRelinKey(kgen *rlwe.KeyGenerator, sk *rlwe.SecretKey) (rlk *rlwe.RelinearizationKey, err error) {
	defer func() {
		if r := recover(); r != nil {
			rlk = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return kgen.GenRelinearizationKeyNew(sk), nil
}

func genGaloisKeys(params bfv.Parameters, kgen *rlwe.KeyGenerator, sk *rlwe.SecretKey, steps []int) (glk []*rlwe.GaloisKey, err error) {
	defer func() {
		if r := recover(); r != nil {
			glk = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	galEls := make([]uint64, len(steps))
	for i, step := range steps {
		galEls[i] = params.GaloisElement(step)
	}
	return kgen.GenGaloisKeysNew(galEls, sk), nil
}

func (c *Context) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, msg)
	c.logger.PrintMessage("warning: " + msg)
}

// Warnings reports the non-fatal capability gaps hit during key generation.
func (c *Context) Warnings() []string {
	return append([]string(nil), c.warnings...)
}

// Profile returns the parameter profile this context was built from.
func (c *Context) Profile() profiles.Profile {
	return c.profile
}

// SlotCount returns the number of values one plaintext packs.
func (c *Context) SlotCount() int {
	return c.params.MaxSlots()
}

// PlainModulus returns the plaintext modulus t.
func (c *Context) PlainModulus() uint64 {
	return c.params.PlaintextModulus()
}

// HasRelinKey reports whether relinearization is available.
func (c *Context) HasRelinKey() bool {
	return c.rlk != nil
}

// HasRotationKeys reports whether rotation is available.
func (c *Context) HasRotationKeys() bool {
	return len(c.glk) > 0
}

// guard converts panics from the native layer into errors so that a single
// failing operation never escapes the current trial.
func (c *Context) guard(op string, fn func() error) (err error) {
	if c.released {
		return fmt.Errorf("%s: context already released", op)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", op, r)
		}
	}()
	return fn()
}

// Encode packs vec into a fresh plaintext at the top level.
func (c *Context) Encode(vec HEMark.Vector) (pt *rlwe.Plaintext, err error) {
	err = c.guard("encode", func() error {
		pt = bfv.NewPlaintext(c.params, c.params.MaxLevel())
		return c.encoder.Encode([]uint64(vec), pt)
	})
	if err != nil {
		pt = nil
	}
	return
}

// Encrypt encrypts an encoded plaintext under the public key.
func (c *Context) Encrypt(pt *rlwe.Plaintext) (ct *rlwe.Ciphertext, err error) {
	err = c.guard("encrypt", func() error {
		var cerr error
		ct, cerr = c.encryptor.EncryptNew(pt)
		return cerr
	})
	if err != nil {
		ct = nil
	}
	return
}

// Decrypt decrypts and decodes ct into a full-slot vector.
func (c *Context) Decrypt(ct *rlwe.Ciphertext) (vec HEMark.Vector, err error) {
	err = c.guard("decrypt", func() error {
		pt := c.decryptor.DecryptNew(ct)
		out := make([]uint64, c.params.MaxSlots())
		if derr := c.encoder.Decode(pt, out); derr != nil {
			return derr
		}
		vec = out
		return nil
	})
	if err != nil {
		vec = nil
	}
	return
}

// Add returns x + y slot-wise. y may be a ciphertext or a plaintext.
func (c *Context) Add(x *rlwe.Ciphertext, y rlwe.Operand) (ct *rlwe.Ciphertext, err error) {
	err = c.guard("add", func() error {
		var oerr error
		ct, oerr = c.evaluator.AddNew(x, y)
		return oerr
	})
	if err != nil {
		ct = nil
	}
	return
}

// Mul returns x * y slot-wise without relinearization. y may be a
// ciphertext or a plaintext.
func (c *Context) Mul(x *rlwe.Ciphertext, y rlwe.Operand) (ct *rlwe.Ciphertext, err error) {
	err = c.guard("multiply", func() error {
		var oerr error
		ct, oerr = c.evaluator.MulNew(x, y)
		return oerr
	})
	if err != nil {
		ct = nil
	}
	return
}

// Relinearize reduces ct back to degree one. It fails when no
// relinearization key was generated; callers decide whether that stops them.
func (c *Context) Relinearize(ct *rlwe.Ciphertext) (out *rlwe.Ciphertext, err error) {
	err = c.guard("relinearize", func() error {
		if c.rlk == nil {
			return fmt.Errorf("no relinearization key")
		}
		var oerr error
		out, oerr = c.evaluator.RelinearizeNew(ct)
		return oerr
	})
	if err != nil {
		out = nil
	}
	return
}

// Rotate cyclically rotates the batched columns of ct by steps.
func (c *Context) Rotate(ct *rlwe.Ciphertext, steps int) (out *rlwe.Ciphertext, err error) {
	err = c.guard("rotate", func() error {
		if len(c.glk) == 0 {
			return fmt.Errorf("no rotation keys")
		}
		var oerr error
		out, oerr = c.evaluator.RotateColumnsNew(ct, steps)
		return oerr
	})
	if err != nil {
		out = nil
	}
	return
}

// Teardown drops all key material and scheme state. It must be called once
// per built context, on every exit path; later capability calls fail.
func (c *Context) Teardown() {
	if c.released {
		return
	}
	c.released = true
	c.encoder = nil
	c.evaluator = nil
	c.encryptor = nil
	c.decryptor = nil
	c.sk = nil
	c.pk = nil
	c.rlk = nil
	c.glk = nil
}
