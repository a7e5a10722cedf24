package esem

import "fmt"

// RoundExchanger performs one request/reply round of the state machine
// in spec §4.6: send x to the round-th server, return its 64-byte
// reply R_j. Implementations live in internal/transport; Verifier is
// decoupled from the wire so it can be exercised with an in-process
// double in tests (spec §8 scenario S2) or a real socket in production.
type RoundExchanger interface {
	Exchange(round int, x []byte) ([]byte, error)
}

// Verifier orchestrates the L-round server exchange and checks the
// Schnorr equation against the master public key (component C8).
type Verifier struct {
	variant Variant
	params  Params
	public  CurvePoint
}

// NewVerifier builds a Verifier for a master public key.
func NewVerifier(variant Variant, masterPublic CurvePoint) (*Verifier, error) {
	params, err := ParamsFor(variant)
	if err != nil {
		return nil, err
	}
	return &Verifier{variant: variant, params: params, public: masterPublic}, nil
}

// Verify runs the L request/reply rounds (spec §4.6's state machine),
// sums the returned points, and checks R == s·G + e·P. It returns nil
// on Accept, ErrVerifyReject on a well-formed but invalid signature,
// and ErrProtocolError/ErrCurveFailure wrapped in the returned error
// for a malformed exchange or malformed input (spec §7) — callers MUST
// use errors.Is to tell VERIFY_REJECT apart from a protocol failure.
func (v *Verifier) Verify(signature, message []byte, exchange RoundExchanger) error {
	if len(signature) != SignatureSize {
		return fmt.Errorf("esem: %w: signature must be %d bytes, got %d", ErrProtocolError, SignatureSize, len(signature))
	}
	x := signature[:RandomiserSize]
	s, err := ScalarFromCanonicalBytes(signature[RandomiserSize:SignatureSize])
	if err != nil {
		return err
	}

	var acc Accumulator
	for round := 0; round < v.params.L; round++ {
		reply, err := exchange.Exchange(round, x)
		if err != nil {
			return fmt.Errorf("esem: %w: round %d: %w", ErrProtocolError, round, err)
		}
		if len(reply) != PointSize {
			return fmt.Errorf("esem: %w: round %d: reply must be %d bytes, got %d", ErrProtocolError, round, PointSize, len(reply))
		}
		rj, err := PointFromBytes(reply)
		if err != nil {
			return err
		}
		acc.Add(rj)
	}
	rSum := acc.Sum()

	e, err := MessageChallenge(x, message)
	if err != nil {
		return err
	}
	rPrime := VerifyEquation(s, e, v.public)

	if rSum.Equal(rPrime) {
		return nil
	}
	return ErrVerifyReject
}
