package esem

import "errors"

// Error kinds per spec §7. RNG_FAILURE and CURVE_FAILURE abort KeyGen
// or Sign; PROTOCOL_ERROR aborts a verification distinguishably from
// VERIFY_REJECT, the normal negative outcome of Verify.
var (
	ErrRNGFailure    = errors.New("esem: RNG_FAILURE")
	ErrCurveFailure  = errors.New("esem: CURVE_FAILURE")
	ErrProtocolError = errors.New("esem: PROTOCOL_ERROR")
	ErrVerifyReject  = errors.New("esem: VERIFY_REJECT")
)
