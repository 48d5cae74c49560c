package credential

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"
)

// OTPType selects the credential's parameter variant.
type OTPType string

const (
	TypeHOTP OTPType = "HOTP"
	TypeTOTP OTPType = "TOTP"
)

// ParseOTPType matches the value case-insensitively against the supported
// OTP types.
func ParseOTPType(value string) (OTPType, error) {
	switch OTPType(strings.ToUpper(value)) {
	case TypeHOTP:
		return TypeHOTP, nil
	case TypeTOTP:
		return TypeTOTP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnhandledOTPType, value)
	}
}

// HashAlgorithm identifies the HMAC hash used for code generation.
type HashAlgorithm string

const (
	SHA1   HashAlgorithm = "SHA1"
	SHA256 HashAlgorithm = "SHA256"
	SHA512 HashAlgorithm = "SHA512"
)

// ParseHashAlgorithm matches the value case-insensitively against the
// supported hash algorithm names.
func ParseHashAlgorithm(value string) (HashAlgorithm, error) {
	switch HashAlgorithm(strings.ToUpper(value)) {
	case SHA1:
		return SHA1, nil
	case SHA256:
		return SHA256, nil
	case SHA512:
		return SHA512, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, value)
	}
}

// Hash returns the constructor for the algorithm's hash function.
func (a HashAlgorithm) Hash() (func() hash.Hash, error) {
	switch a {
	case SHA1:
		return sha1.New, nil
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
	}
}
