package esem

import "fmt"

// Server holds one round's public table PT_j and subkey K_j (component
// C7). It is stateless and side-effect free across requests: fixed
// PT_j and K_j, Handle(x) is a pure function of x (spec §8 property 4).
type Server struct {
	variant Variant
	params  Params
	subkey  []byte
	public  []CurvePoint
}

// NewServer builds a Server for one round.
func NewServer(variant Variant, subkey []byte, public []CurvePoint) (*Server, error) {
	params, err := ParamsFor(variant)
	if err != nil {
		return nil, err
	}
	if len(public) != params.N {
		return nil, fmt.Errorf("esem: server public table must have %d entries, got %d", params.N, len(public))
	}
	return &Server{variant: variant, params: params, subkey: subkey, public: public}, nil
}

// Handle answers one request: given the randomiser x, recompute the
// round's aggregated partial public point R_j (spec §4.4). The server
// never sees the message, the signature scalar, or any secret scalar;
// all table indexing is a function of the public x and K_j (spec §5).
func (s *Server) Handle(x []byte) ([]byte, error) {
	if len(x) != RandomiserSize {
		return nil, fmt.Errorf("esem: %w: x must be %d bytes, got %d", ErrProtocolError, RandomiserSize, len(x))
	}
	hj, err := RoundHash(s.subkey, x, s.params.HashBytes)
	if err != nil {
		return nil, err
	}
	idx, err := DeriveIndices(s.variant, hj)
	if err != nil {
		return nil, err
	}

	var acc Accumulator
	for _, i := range idx {
		acc.Add(s.public[i])
	}
	return acc.Sum().Bytes(), nil
}
