package esem

import (
	"fmt"
	"sync/atomic"
)

// Signer holds the master secret, the L subkeys, and — in ESEMv2 — the
// L secret tables (component C6). Tables are read-only after
// construction and may be shared across concurrent Sign calls; the
// counter is the only per-Signer mutable state (spec §5).
type Signer struct {
	variant      Variant
	params       Params
	masterSecret Scalar
	subkeys      [][]byte   // K_1..K_L, 32 bytes each
	secretTables [][]Scalar // ST_1..ST_L, v2 only; nil for v1

	// ctr is the monotonic randomiser counter. Spec §9's open question
	// notes the reference feeds a zeroed counter into every call, making
	// x — and therefore the whole signature — a deterministic function
	// of sk alone, which leaks sk across any two signatures on distinct
	// messages. This implementation resolves that open question by
	// making ctr a per-Signer monotonic counter, the "monotone counter"
	// option the spec says a correct implementation MUST use.
	ctr atomic.Uint64
}

// NewSigner builds a Signer from KeyGen output. secretTables is
// required for V2 and ignored for V1 (where sigma_i is recomputed
// on-the-fly from the subkey, per spec §1/§4.3).
func NewSigner(variant Variant, masterSecret Scalar, subkeys [][]byte, secretTables [][]Scalar) (*Signer, error) {
	params, err := ParamsFor(variant)
	if err != nil {
		return nil, err
	}
	if len(subkeys) != params.L {
		return nil, fmt.Errorf("esem: Signer needs %d subkeys, got %d", params.L, len(subkeys))
	}
	if variant == V2 {
		if len(secretTables) != params.L {
			return nil, fmt.Errorf("esem: v2 Signer needs %d secret tables, got %d", params.L, len(secretTables))
		}
		for j, t := range secretTables {
			if len(t) != params.N {
				return nil, fmt.Errorf("esem: secret table %d must have %d entries, got %d", j, params.N, len(t))
			}
		}
	}
	return &Signer{
		variant:      variant,
		params:       params,
		masterSecret: masterSecret,
		subkeys:      subkeys,
		secretTables: secretTables,
	}, nil
}

// SignatureSize is the wire length of an ESEM signature (spec §6).
const SignatureSize = RandomiserSize + ScalarSize

// Sign produces a 48-byte signature x‖s over message (component C6).
func (s *Signer) Sign(message []byte) ([]byte, error) {
	ctr := s.ctr.Add(1) - 1
	x, err := DeriveRandomiser(s.masterSecret, ctr)
	if err != nil {
		return nil, err
	}

	r := ZeroScalar()
	for j := 0; j < s.params.L; j++ {
		hj, err := RoundHash(s.subkeys[j], x, s.params.HashBytes)
		if err != nil {
			return nil, err
		}
		idx, err := DeriveIndices(s.variant, hj)
		if err != nil {
			return nil, err
		}

		var roundPRF *PRF
		if s.variant == V1 {
			roundPRF, err = NewPRF(s.subkeys[j])
			if err != nil {
				return nil, err
			}
		}

		for _, i := range idx {
			var sigma Scalar
			switch s.variant {
			case V1:
				sigma, err = roundPRF.ScalarAt(uint64(i + 1))
				if err != nil {
					return nil, err
				}
			case V2:
				sigma = s.secretTables[j][i]
			}
			r = r.Add(sigma)
		}
	}

	e, err := MessageChallenge(x, message)
	if err != nil {
		return nil, err
	}
	eSk := e.MultiplyMontgomery(s.masterSecret)
	sig := r.Subtract(eSk)

	out := make([]byte, 0, SignatureSize)
	out = append(out, x...)
	out = append(out, sig.Bytes()...)

	r.Zeroize()
	eSk.Zeroize()
	sig.Zeroize()

	return out, nil
}
