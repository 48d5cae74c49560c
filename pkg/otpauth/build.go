package otpauth

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/otpvault/otpvault/pkg/credential"
)

// BuildURI renders a credential as a canonical otpauth provisioning URI,
// suitable for re-enrolling the credential in an authenticator app. The
// credential's label is used as the account name and must be set.
func BuildURI(c credential.Credential) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if c.Label == "" {
		return "", ErrMissingAccountName
	}

	query := url.Values{}
	query.Set("secret", string(c.Secret.Canonical()))
	query.Set("algorithm", string(c.HashAlgorithm))
	query.Set("digits", strconv.Itoa(c.DigitsCount))
	if c.Issuer != "" {
		query.Set("issuer", c.Issuer)
	}

	switch p := c.Params.(type) {
	case credential.HOTPParams:
		query.Set("counter", strconv.FormatUint(p.Counter, 10))
	case credential.TOTPParams:
		query.Set("period", strconv.FormatUint(uint64(p.TimeStepSeconds), 10))
	}

	label := url.PathEscape(c.Label)
	if c.Issuer != "" {
		label = fmt.Sprintf("%s:%s", url.PathEscape(c.Issuer), url.PathEscape(c.Label))
	}

	return fmt.Sprintf("%s://%s/%s?%s", Scheme, strings.ToLower(string(c.OTPType)), label, query.Encode()), nil
}
