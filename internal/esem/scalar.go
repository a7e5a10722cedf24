// Package esem implements the ESEM three-party signature scheme: a
// BPV-style precomputation split between a Signer, one or more Servers,
// and a Verifier that checks every signature against a single long-term
// public key.
package esem

import (
	"fmt"

	"filippo.io/edwards25519"
)

// ScalarSize is the canonical little-endian encoding length of a Scalar.
const ScalarSize = 32

// Scalar is an integer reduced modulo the group order q. It is the
// portable replacement for the reference implementation's raw digit_t
// word arrays: all storage outside the arithmetic primitives is bytes,
// and every operation returns a canonical representative in [0, q).
type Scalar struct {
	s edwards25519.Scalar
}

// ZeroScalar returns the additive identity.
func ZeroScalar() Scalar {
	var z Scalar
	z.s = *edwards25519.NewScalar()
	return z
}

// ScalarFromWideBytes reduces an arbitrary byte string (a PRF or hash
// output) modulo q. Inputs longer than 32 bytes are not expected from
// this package's callers, but any length up to 32 bytes is accepted;
// the value is treated as a little-endian integer and zero-extended
// before the wide reduction.
func ScalarFromWideBytes(b []byte) (Scalar, error) {
	if len(b) > ScalarSize {
		return Scalar{}, fmt.Errorf("esem: scalar input exceeds %d bytes (got %d)", ScalarSize, len(b))
	}
	var wide [64]byte
	copy(wide[:], b)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return Scalar{}, fmt.Errorf("esem: %w: %w", ErrCurveFailure, err)
	}
	return Scalar{s: *s}, nil
}

// ScalarFromCanonicalBytes decodes a little-endian scalar that must
// already be the canonical representative in [0, q), e.g. one produced
// by Scalar.Bytes and round-tripped across the wire.
func ScalarFromCanonicalBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, fmt.Errorf("esem: scalar must be %d bytes (got %d)", ScalarSize, len(b))
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return Scalar{}, fmt.Errorf("esem: %w: %w", ErrCurveFailure, err)
	}
	return Scalar{s: *s}, nil
}

// Bytes returns the canonical little-endian encoding in [0, q).
func (a Scalar) Bytes() []byte {
	return a.s.Bytes()
}

// Add returns a + b mod q.
func (a Scalar) Add(b Scalar) Scalar {
	var out Scalar
	out.s.Add(&a.s, &b.s)
	return out
}

// Subtract returns a - b mod q.
func (a Scalar) Subtract(b Scalar) Scalar {
	var out Scalar
	out.s.Subtract(&a.s, &b.s)
	return out
}

// MultiplyMontgomery computes a*b mod q. The reference implementation
// converts both operands to Montgomery form, multiplies, and converts
// back; edwards25519.Scalar.Multiply already performs the equivalent
// constant-time modular multiplication internally, so the Montgomery
// round-trip is folded into this single call rather than exposed as
// separate ToMontgomery/FromMontgomery steps (spec §4.3 step 4).
func (a Scalar) MultiplyMontgomery(b Scalar) Scalar {
	var out Scalar
	out.s.Multiply(&a.s, &b.s)
	return out
}

// Equal reports whether a and b are the same canonical residue.
func (a Scalar) Equal(b Scalar) bool {
	return a.s.Equal(&b.s) == 1
}

// Zeroize overwrites the scalar's backing storage. Scalars that touch
// secret material (sk, ST_j entries, r, intermediate sigma_i) must be
// zeroized by their owner once no longer needed (spec §5).
func (a *Scalar) Zeroize() {
	zero := edwards25519.NewScalar()
	a.s = *zero
}
