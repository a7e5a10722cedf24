package esem

import "fmt"

// DeriveIndices turns a hash output h into the V table indices in
// [0, N) selected by a round, per spec §4.1 (component C4). The two
// variants are not interchangeable: v1 packs two bytes per index into
// a 10-bit value, v2 consumes one byte per index and keeps the top 7
// bits.
func DeriveIndices(variant Variant, h []byte) ([]int, error) {
	params, err := ParamsFor(variant)
	if err != nil {
		return nil, err
	}
	idx := make([]int, params.V)
	switch variant {
	case V1:
		if len(h) < 2*params.V {
			return nil, fmt.Errorf("esem: %w: v1 index derivation needs %d hash bytes, got %d", ErrCurveFailure, 2*params.V, len(h))
		}
		for i := 0; i < params.V; i++ {
			idx[i] = int(h[2*i]) + (int(h[2*i+1]>>6) << 8)
		}
	case V2:
		if len(h) < params.V {
			return nil, fmt.Errorf("esem: %w: v2 index derivation needs %d hash bytes, got %d", ErrCurveFailure, params.V, len(h))
		}
		for i := 0; i < params.V; i++ {
			idx[i] = int(h[i] >> 1)
		}
	default:
		return nil, fmt.Errorf("esem: unknown variant %v", variant)
	}
	for _, i := range idx {
		if i < 0 || i >= params.N {
			return nil, fmt.Errorf("esem: %w: derived index %d out of range [0,%d)", ErrCurveFailure, i, params.N)
		}
	}
	return idx, nil
}
