package otp

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/otpvault/otpvault/pkg/credential"
)

// HOTP computes an RFC 4226 one-time code for the given counter value.
// The counter is serialized as an 8-byte big-endian integer, hashed with
// HMAC under the selected algorithm, dynamically truncated to a 31-bit
// integer and reduced modulo 10^digitsCount.
func HOTP(secret []byte, digitsCount int, algorithm credential.HashAlgorithm, counter uint64) (int, error) {
	if digitsCount <= 0 {
		return 0, fmt.Errorf("%w, got %d", ErrNonPositiveDigits, digitsCount)
	}
	newHash, err := algorithm.Hash()
	if err != nil {
		return 0, err
	}

	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], counter)

	mac := hmac.New(newHash, secret)
	mac.Write(counterBytes[:])
	sum := mac.Sum(nil)

	// Dynamic truncation (RFC 4226 §5.3): the low 4 bits of the last byte
	// pick the offset, the top bit is cleared to force a non-negative value.
	offset := sum[len(sum)-1] & 0x0f
	code := (int(sum[offset]&0x7f) << 24) |
		(int(sum[offset+1]) << 16) |
		(int(sum[offset+2]) << 8) |
		int(sum[offset+3])

	return code % int(math.Pow10(digitsCount)), nil
}

// FormatCode renders a code zero-padded to the credential's digit width.
func FormatCode(code, digitsCount int) string {
	return fmt.Sprintf("%0*d", digitsCount, code)
}

// GenerateSecret creates a new random 160-bit secret (RFC 4226 recommended
// strength) in canonical Base32 form.
func GenerateSecret() (credential.Secret, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	return credential.NewSecret(raw), nil
}
