package esem

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// KeyedHash computes BLAKE2b with the given key, truncated/expanded to
// outLen bytes (component C3). outLen must be in [1, 64].
func KeyedHash(key, input []byte, outLen int) ([]byte, error) {
	h, err := blake2b.New(outLen, key)
	if err != nil {
		return nil, fmt.Errorf("esem: %w: %w", ErrCurveFailure, err)
	}
	if _, err := h.Write(input); err != nil {
		return nil, fmt.Errorf("esem: %w: %w", ErrCurveFailure, err)
	}
	return h.Sum(nil), nil
}

// RandomiserSize is the length in bytes of the per-signature
// randomiser x.
const RandomiserSize = 16

// DeriveRandomiser computes x = BLAKE2b(key=sk, input=ctr, outlen=16)
// per spec §4.3 step 1.
func DeriveRandomiser(sk Scalar, ctr uint64) ([]byte, error) {
	var ctrBytes [8]byte
	for i := range ctrBytes {
		ctrBytes[i] = byte(ctr >> (8 * i))
	}
	return KeyedHash(sk.Bytes(), ctrBytes[:], RandomiserSize)
}

// MessageChallenge computes e = BLAKE2b(key=x, input=m, outlen=32) mod
// q per spec §4.3 step 3 / §4.5 step 3.
func MessageChallenge(x, message []byte) (Scalar, error) {
	h, err := KeyedHash(x, message, 32)
	if err != nil {
		return Scalar{}, err
	}
	return ScalarFromWideBytes(h)
}

// RoundHash computes h_j = BLAKE2b(key=K_j, input=x, outlen=params.HashBytes)
// per spec §4.3 step 2 / §4.4 step 1.
func RoundHash(subkey, x []byte, outLen int) ([]byte, error) {
	return KeyedHash(subkey, x, outLen)
}
