package esem

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SubkeyTable holds, for one round j, the subkey and its full
// precomputed secret/public tables (component C5 output).
type SubkeyTable struct {
	Subkey []byte       // 32 bytes, K_j
	Secret []Scalar     // ST_j[0..N)
	Public []CurvePoint // PT_j[0..N)
}

// KeyMaterial is the full output of KeyGen: the master key pair and
// the L round tables (spec §4.2). MasterSecret and each round's Secret
// table are confined to the Signer role; MasterPublic and each round's
// Subkey and Public table are handed out to the other roles.
type KeyMaterial struct {
	Variant      Variant
	MasterSecret Scalar
	MasterPublic CurvePoint
	Rounds       []SubkeyTable // length L
}

// Zeroize clears the master secret scalar and every secret-table
// scalar. MasterPublic and each round's Subkey and Public table are
// left intact.
func (k *KeyMaterial) Zeroize() {
	k.MasterSecret.Zeroize()
	for ri := range k.Rounds {
		for i := range k.Rounds[ri].Secret {
			k.Rounds[ri].Secret[i].Zeroize()
		}
	}
}

// KeyGen runs the table builder (component C5). If skAES is nil, a
// fresh 32-byte AES key is drawn from crypto/rand. If masterSecret is
// the zero value (never supplied), a master Schnorr scalar is drawn
// from crypto/rand and reduced mod q.
func KeyGen(variant Variant, skAES []byte, masterSecret *Scalar) (*KeyMaterial, error) {
	params, err := ParamsFor(variant)
	if err != nil {
		return nil, err
	}

	if skAES == nil {
		skAES = make([]byte, AESKeySize)
		if _, err := rand.Read(skAES); err != nil {
			return nil, fmt.Errorf("esem: %w: %w", ErrRNGFailure, err)
		}
	} else if len(skAES) != AESKeySize {
		return nil, fmt.Errorf("esem: sk_aes must be %d bytes (got %d)", AESKeySize, len(skAES))
	}

	masterPRF, err := NewPRF(skAES)
	if err != nil {
		return nil, err
	}

	var sk Scalar
	if masterSecret != nil {
		sk = *masterSecret
	} else {
		var raw [32]byte
		if _, err := rand.Read(raw[:]); err != nil {
			return nil, fmt.Errorf("esem: %w: %w", ErrRNGFailure, err)
		}
		sk, err = ScalarFromWideBytes(raw[:])
		if err != nil {
			return nil, fmt.Errorf("esem: %w: %w", ErrRNGFailure, err)
		}
	}
	pub := ScalarBaseMult(sk)

	rounds := make([]SubkeyTable, params.L)
	var g errgroup.Group
	for j := 0; j < params.L; j++ {
		j := j
		g.Go(func() error {
			// spec §4.2 step 1: K_j <- AES-ECB(sk_aes, block = encode64(j)); j
			// runs 1..L, so the PRF logical index is j+1.
			subkeyBytes := masterPRF.Output32(uint64(j + 1))
			subkeyPRF, err := NewPRF(subkeyBytes[:])
			if err != nil {
				return err
			}

			secret := make([]Scalar, params.N)
			public := make([]CurvePoint, params.N)
			for i := 0; i < params.N; i++ {
				// spec §3: SecretTable[j][i] = PRF(Subkey_j; i+1) mod q.
				s, err := subkeyPRF.ScalarAt(uint64(i + 1))
				if err != nil {
					return fmt.Errorf("%w: %w", ErrCurveFailure, err)
				}
				secret[i] = s
				public[i] = ScalarBaseMult(s)
			}
			rounds[j] = SubkeyTable{
				Subkey: append([]byte(nil), subkeyBytes[:]...),
				Secret: secret,
				Public: public,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &KeyMaterial{
		Variant:      variant,
		MasterSecret: sk,
		MasterPublic: pub,
		Rounds:       rounds,
	}, nil
}
