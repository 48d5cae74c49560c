package credential

import "errors"

var (
	ErrInvalidSecret        = errors.New("secret is not valid Base32")
	ErrInvalidDigitsCount   = errors.New("digits count must be 6 or 8")
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	ErrUnhandledOTPType     = errors.New("unhandled OTP type")
	ErrMissingParams        = errors.New("missing OTP parameters")
	ErrParamsTypeMismatch   = errors.New("params do not match otp_type")
	ErrInvalidTimeStep      = errors.New("time step must be positive")
)
