package esem

import (
	"fmt"
	"os"
	"path/filepath"
)

// This file lays out the out-of-band distribution bundle from spec
// §4.2's "Distribution" paragraph as a directory tree, so the three
// roles (KeyGen, Signer, Server) can be run as separate processes
// exchanging files rather than sharing memory. It is deliberately thin
// — os.ReadFile/os.WriteFile only, no index, no rotation, no database
// — because spec.md's Non-goals explicitly exclude persistent storage
// of the precomputed tables as a feature; this is key-material
// hand-off, not a storage engine.

const (
	masterPublicFile = "master_public.bin"
	masterSecretFile = "master_secret.bin"
	subkeyFile       = "subkey.bin"
	publicTableFile  = "public.bin"
	secretTableFile  = "secret.bin"
)

func roundDir(dir string, j int) string {
	return filepath.Join(dir, fmt.Sprintf("round_%d", j))
}

// SaveKeyMaterial writes the full distribution bundle: master public
// key, master secret (0600, signer-only), and per-round subkey/
// public-table/secret-table files.
func SaveKeyMaterial(dir string, km *KeyMaterial) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, masterPublicFile), km.MasterPublic.Bytes(), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, masterSecretFile), km.MasterSecret.Bytes(), 0o600); err != nil {
		return err
	}
	for j, round := range km.Rounds {
		rd := roundDir(dir, j)
		if err := os.MkdirAll(rd, 0o700); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(rd, subkeyFile), round.Subkey, 0o600); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(rd, publicTableFile), MarshalPublicTable(round.Public), 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(rd, secretTableFile), MarshalSecretTable(round.Secret), 0o600); err != nil {
			return err
		}
	}
	return nil
}

// LoadMasterPublic reads only the published master public key, the
// sole input the Verifier role needs from the bundle.
func LoadMasterPublic(dir string) (CurvePoint, error) {
	b, err := os.ReadFile(filepath.Join(dir, masterPublicFile))
	if err != nil {
		return CurvePoint{}, err
	}
	return PointFromBytes(b)
}

// SignerMaterial bundles what the Signer role reads from disk: the
// master secret, the L subkeys, and — for V2 only — the L secret
// tables. Public tables are never loaded here; they belong to Servers.
type SignerMaterial struct {
	MasterSecret Scalar
	Subkeys      [][]byte
	SecretTables [][]Scalar // nil for V1
}

// LoadSignerMaterial reads the Signer's share of the bundle.
func LoadSignerMaterial(dir string, variant Variant) (*SignerMaterial, error) {
	params, err := ParamsFor(variant)
	if err != nil {
		return nil, err
	}
	skBytes, err := os.ReadFile(filepath.Join(dir, masterSecretFile))
	if err != nil {
		return nil, err
	}
	sk, err := ScalarFromCanonicalBytes(skBytes)
	if err != nil {
		return nil, err
	}

	subkeys := make([][]byte, params.L)
	var secretTables [][]Scalar
	if variant == V2 {
		secretTables = make([][]Scalar, params.L)
	}
	for j := 0; j < params.L; j++ {
		rd := roundDir(dir, j)
		sk32, err := os.ReadFile(filepath.Join(rd, subkeyFile))
		if err != nil {
			return nil, err
		}
		subkeys[j] = sk32
		if variant == V2 {
			secBytes, err := os.ReadFile(filepath.Join(rd, secretTableFile))
			if err != nil {
				return nil, err
			}
			st, err := UnmarshalSecretTable(secBytes, params.N)
			if err != nil {
				return nil, err
			}
			secretTables[j] = st
		}
	}
	return &SignerMaterial{MasterSecret: sk, Subkeys: subkeys, SecretTables: secretTables}, nil
}

// LoadServerMaterial reads round j's share of the bundle: its subkey
// and public table. The secret table is never read here — Servers
// never hold secret scalars (spec §4.2's Distribution paragraph).
func LoadServerMaterial(dir string, variant Variant, j int) (subkey []byte, public []CurvePoint, err error) {
	params, err := ParamsFor(variant)
	if err != nil {
		return nil, nil, err
	}
	rd := roundDir(dir, j)
	subkey, err = os.ReadFile(filepath.Join(rd, subkeyFile))
	if err != nil {
		return nil, nil, err
	}
	pubBytes, err := os.ReadFile(filepath.Join(rd, publicTableFile))
	if err != nil {
		return nil, nil, err
	}
	public, err = UnmarshalPublicTable(pubBytes, params.N)
	if err != nil {
		return nil, nil, err
	}
	return subkey, public, nil
}
