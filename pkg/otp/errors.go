package otp

import "errors"

var (
	ErrNonPositiveDigits      = errors.New("digits count must be positive")
	ErrNonPositiveTimeStep    = errors.New("time step must be positive")
	ErrTimeBeforeInitial      = errors.New("current time precedes the initial time")
	ErrUnknownParams          = errors.New("unknown OTP parameter variant")
	ErrFailedToGenerateSecret = errors.New("failed to generate secret")
)
