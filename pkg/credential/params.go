package credential

import "time"

// Params is the tagged union of OTP parameter variants. Exactly two
// implementations exist: HOTPParams and TOTPParams.
type Params interface {
	// Type reports which variant of the union this is.
	Type() OTPType
}

// HOTPParams holds the state of a counter-based credential. The counter is
// monotonically non-decreasing and advances by exactly one per generated
// code.
type HOTPParams struct {
	Counter uint64 `json:"counter"`
}

func (HOTPParams) Type() OTPType { return TypeHOTP }

// TOTPParams holds the configuration of a time-based credential.
type TOTPParams struct {
	InitialTime     time.Time `json:"initial_time"`
	TimeStepSeconds uint32    `json:"time_step_seconds"`
}

func (TOTPParams) Type() OTPType { return TypeTOTP }
