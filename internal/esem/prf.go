package esem

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"
)

// AESKeySize is the size of a master or subkey AES-256 key.
const AESKeySize = 32

// PRF is a deterministic 32-byte block stream keyed by a 32-byte key
// and indexed by a 64-bit counter (component C2). It wraps a single
// cipher.Block per key, selected explicitly at each call site — the
// reference implementation instead swaps a single global round-key via
// setKey(), which spec §9 flags as a re-entrancy hazard for a portable
// rewrite; keeping one context per key removes that hazard.
type PRF struct {
	block cipher.Block
}

// NewPRF builds a PRF over a 32-byte AES-256 key.
func NewPRF(key []byte) (*PRF, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("esem: PRF key must be %d bytes (got %d)", AESKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("esem: %w: %w", ErrCurveFailure, err)
	}
	return &PRF{block: block}, nil
}

// block16 encrypts the single 16-byte counter block. Per spec §6 the
// counter occupies the full 8-byte suffix of the block (widened from
// the reference's single final octet, which silently capped N at 256).
func (p *PRF) block16(counter uint64) [16]byte {
	var in, out [16]byte
	binary.BigEndian.PutUint64(in[8:], counter)
	p.block.Encrypt(out[:], in[:])
	return out
}

// Output32 returns the 32-byte PRF output for logical index i, obtained
// per spec §6 by concatenating AES(c) ‖ AES(c+1). To keep every logical
// index's 32-byte output from overlapping another's underlying AES
// blocks (the reference's tempKey1/tempKey2 derivation silently shares
// a block when consecutive indices are requested from the same key),
// c is taken as 2*i so each call consumes a disjoint pair of blocks.
func (p *PRF) Output32(i uint64) [32]byte {
	var out [32]byte
	b0 := p.block16(2 * i)
	b1 := p.block16(2*i + 1)
	copy(out[:16], b0[:])
	copy(out[16:], b1[:])
	return out
}

// ScalarAt returns PRF(key; i) mod q, the construction used for
// SecretTable entries (C5 step 2b / C6 v1's on-the-fly recomputation,
// i = i+1 per spec §3). Subkeys are not reduced mod q: KeyGen takes
// them directly from Output32.
func (p *PRF) ScalarAt(i uint64) (Scalar, error) {
	out := p.Output32(i)
	return ScalarFromWideBytes(out[:])
}
