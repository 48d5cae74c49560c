package credential

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	DefaultDigitsCount     = 6
	DefaultTimeStepSeconds = 30
	DefaultHOTPCounter     = 0
	DefaultHashAlgorithm   = SHA1
)

// Credential is one stored OTP credential. OTPType always matches the
// variant of Params; New derives it from the params value so the pairing
// cannot diverge.
type Credential struct {
	Secret        Secret
	DigitsCount   int
	HashAlgorithm HashAlgorithm
	OTPType       OTPType
	Params        Params
	Label         string
	Issuer        string
}

// New validates all fields and builds a credential. The secret must be
// valid Base32, the digits count 6 or 8, the hash algorithm one of the
// supported names, and a TOTP time step positive.
func New(secret Secret, digitsCount int, algorithm HashAlgorithm, params Params, label, issuer string) (Credential, error) {
	if err := secret.Validate(); err != nil {
		return Credential{}, err
	}
	if digitsCount != 6 && digitsCount != 8 {
		return Credential{}, fmt.Errorf("%w, got %d", ErrInvalidDigitsCount, digitsCount)
	}
	if _, err := algorithm.Hash(); err != nil {
		return Credential{}, err
	}
	if params == nil {
		return Credential{}, ErrMissingParams
	}
	if p, ok := params.(TOTPParams); ok && p.TimeStepSeconds == 0 {
		return Credential{}, ErrInvalidTimeStep
	}
	return Credential{
		Secret:        secret.Canonical(),
		DigitsCount:   digitsCount,
		HashAlgorithm: algorithm,
		OTPType:       params.Type(),
		Params:        params,
		Label:         label,
		Issuer:        issuer,
	}, nil
}

// Validate re-checks the invariants on a credential built without New,
// including the params/otp_type pairing.
func (c Credential) Validate() error {
	if c.Params == nil {
		return ErrMissingParams
	}
	if c.OTPType != c.Params.Type() {
		return fmt.Errorf("%w: otp_type %s, params %s", ErrParamsTypeMismatch, c.OTPType, c.Params.Type())
	}
	_, err := New(c.Secret, c.DigitsCount, c.HashAlgorithm, c.Params, c.Label, c.Issuer)
	return err
}

// credentialJSON mirrors the persisted record schema. The params key is
// deferred so the variant can be selected by otp_type on decode.
type credentialJSON struct {
	Secret        Secret          `json:"secret"`
	DigitsCount   int             `json:"digits_count"`
	HashAlgorithm string          `json:"hash_algorithm"`
	OTPType       string          `json:"otp_type"`
	Params        json.RawMessage `json:"params"`
	Label         string          `json:"label,omitempty"`
	Issuer        string          `json:"issuer,omitempty"`
}

func (c Credential) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	params, err := json.Marshal(c.Params)
	if err != nil {
		return nil, err
	}
	return json.Marshal(credentialJSON{
		Secret:        c.Secret,
		DigitsCount:   c.DigitsCount,
		HashAlgorithm: string(c.HashAlgorithm),
		OTPType:       string(c.OTPType),
		Params:        params,
		Label:         c.Label,
		Issuer:        c.Issuer,
	})
}

func (c *Credential) UnmarshalJSON(data []byte) error {
	var raw credentialJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	otpType, err := ParseOTPType(raw.OTPType)
	if err != nil {
		return err
	}
	algorithm, err := ParseHashAlgorithm(raw.HashAlgorithm)
	if err != nil {
		return err
	}
	if len(raw.Params) == 0 {
		return ErrMissingParams
	}

	var params Params
	switch otpType {
	case TypeHOTP:
		var p HOTPParams
		if err := json.Unmarshal(raw.Params, &p); err != nil {
			return errors.Join(ErrParamsTypeMismatch, err)
		}
		params = p
	case TypeTOTP:
		var p TOTPParams
		if err := json.Unmarshal(raw.Params, &p); err != nil {
			return errors.Join(ErrParamsTypeMismatch, err)
		}
		params = p
	}

	cred, err := New(raw.Secret, raw.DigitsCount, algorithm, params, raw.Label, raw.Issuer)
	if err != nil {
		return err
	}
	*c = cred
	return nil
}
