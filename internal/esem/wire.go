package esem

import "fmt"

// This file implements the out-of-band distribution encodings from
// spec §6: fixed-size concatenations of Scalar/CurvePoint records in
// index-ascending order. These are Marshal/Unmarshal helpers for
// moving key material between the KeyGen process and the Signer/
// Server roles it is distributed to (spec §4.2 "Distribution") — not a
// persistence subsystem; nothing here indexes, rotates, or manages
// storage, which spec.md's Non-goals explicitly exclude.

// MarshalPublicTable encodes PT_j as N*64 bytes, index-ascending.
func MarshalPublicTable(table []CurvePoint) []byte {
	out := make([]byte, 0, len(table)*PointSize)
	for _, p := range table {
		out = append(out, p.Bytes()...)
	}
	return out
}

// UnmarshalPublicTable decodes a public table produced by
// MarshalPublicTable, validating it has exactly n entries.
func UnmarshalPublicTable(b []byte, n int) ([]CurvePoint, error) {
	if len(b) != n*PointSize {
		return nil, fmt.Errorf("esem: public table must be %d bytes for N=%d, got %d", n*PointSize, n, len(b))
	}
	out := make([]CurvePoint, n)
	for i := 0; i < n; i++ {
		p, err := PointFromBytes(b[i*PointSize : (i+1)*PointSize])
		if err != nil {
			return nil, fmt.Errorf("esem: public table entry %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

// MarshalSecretTable encodes ST_j as N*32 bytes, index-ascending.
func MarshalSecretTable(table []Scalar) []byte {
	out := make([]byte, 0, len(table)*ScalarSize)
	for _, s := range table {
		out = append(out, s.Bytes()...)
	}
	return out
}

// UnmarshalSecretTable decodes a secret table produced by
// MarshalSecretTable, validating it has exactly n entries.
func UnmarshalSecretTable(b []byte, n int) ([]Scalar, error) {
	if len(b) != n*ScalarSize {
		return nil, fmt.Errorf("esem: secret table must be %d bytes for N=%d, got %d", n*ScalarSize, n, len(b))
	}
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		s, err := ScalarFromCanonicalBytes(b[i*ScalarSize : (i+1)*ScalarSize])
		if err != nil {
			return nil, fmt.Errorf("esem: secret table entry %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}
