package credential

import (
	"encoding/base32"
	"errors"
	"strings"
)

var base32Codec = base32.StdEncoding.WithPadding(base32.NoPadding)

// Secret is a Base32-encoded OTP secret. Decoding is case-insensitive and
// tolerates trailing padding; the canonical form is uppercase without
// padding. Some providers hand out lowercase secrets even though RFC 4648
// prescribes uppercase, so lowercase input must be accepted.
type Secret string

// NewSecret encodes raw secret bytes into canonical Base32 form.
func NewSecret(raw []byte) Secret {
	return Secret(base32Codec.EncodeToString(raw))
}

// Canonical returns the secret in canonical form: uppercase, no padding,
// surrounding whitespace removed.
func (s Secret) Canonical() Secret {
	return Secret(strings.TrimRight(strings.ToUpper(strings.TrimSpace(string(s))), "="))
}

// Bytes decodes the secret. A decoding failure is a validation error, never
// a panic.
func (s Secret) Bytes() ([]byte, error) {
	raw, err := base32Codec.DecodeString(string(s.Canonical()))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return raw, nil
}

// Validate reports whether the secret decodes as valid Base32.
func (s Secret) Validate() error {
	_, err := s.Bytes()
	return err
}
