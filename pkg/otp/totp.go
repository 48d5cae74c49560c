package otp

import (
	"time"

	"github.com/otpvault/otpvault/pkg/credential"
)

// TOTP computes an RFC 6238 one-time code for the time step containing
// currentTime. A TOTP is a HOTP whose counter is the number of whole time
// steps elapsed since initialTime; a currentTime before initialTime is a
// precondition violation, not a negative counter.
func TOTP(secret []byte, digitsCount int, algorithm credential.HashAlgorithm, initialTime time.Time, timeStepSeconds uint32, currentTime time.Time) (int, error) {
	counter, err := timeCounter(initialTime, timeStepSeconds, currentTime)
	if err != nil {
		return 0, err
	}
	return HOTP(secret, digitsCount, algorithm, counter)
}

// SecondsRemaining reports how long the code for the current time step
// stays valid. Callers use it to decide whether to wait for the next step.
func SecondsRemaining(params credential.TOTPParams, currentTime time.Time) (int, error) {
	if params.TimeStepSeconds == 0 {
		return 0, ErrNonPositiveTimeStep
	}
	if currentTime.Before(params.InitialTime) {
		return 0, ErrTimeBeforeInitial
	}
	elapsed := uint64(currentTime.Unix() - params.InitialTime.Unix())
	step := uint64(params.TimeStepSeconds)
	return int(step - elapsed%step), nil
}

// Code computes the one-time code for a credential, dispatching on its
// parameter variant. HOTP credentials use the counter as stored; advancing
// it is the caller's responsibility.
func Code(c credential.Credential, currentTime time.Time) (int, error) {
	secret, err := c.Secret.Bytes()
	if err != nil {
		return 0, err
	}
	switch p := c.Params.(type) {
	case credential.HOTPParams:
		return HOTP(secret, c.DigitsCount, c.HashAlgorithm, p.Counter)
	case credential.TOTPParams:
		return TOTP(secret, c.DigitsCount, c.HashAlgorithm, p.InitialTime, p.TimeStepSeconds, currentTime)
	default:
		return 0, ErrUnknownParams
	}
}

func timeCounter(initialTime time.Time, timeStepSeconds uint32, currentTime time.Time) (uint64, error) {
	if timeStepSeconds == 0 {
		return 0, ErrNonPositiveTimeStep
	}
	if currentTime.Before(initialTime) {
		return 0, ErrTimeBeforeInitial
	}
	elapsed := uint64(currentTime.Unix() - initialTime.Unix())
	return elapsed / uint64(timeStepSeconds), nil
}
