package otpauth

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/otpvault/otpvault/pkg/credential"
)

// Scheme is the only accepted URI scheme, matched case-sensitively.
const Scheme = "otpauth"

// Label is the decoded path component of an otpauth URI: either a bare
// account name, or "issuer:accountname".
type Label struct {
	AccountName string
	Issuer      string
}

// Descriptor is the validated result of parsing an otpauth URI. Counter is
// meaningful only for HOTP descriptors, Period only for TOTP ones.
type Descriptor struct {
	Type      credential.OTPType
	Label     Label
	Secret    string
	Issuer    string
	Algorithm credential.HashAlgorithm
	Digits    int
	Counter   uint64
	Period    uint32
}

// Parse validates an otpauth URI and returns its descriptor.
//
// The secret is carried through as raw text: Base32 validity is checked
// when the descriptor is converted into a credential record, not here.
// Duplicate query keys resolve to the first occurrence.
func Parse(rawURI string) (*Descriptor, error) {
	// url.Parse lowercases the scheme, so the case-sensitive check has to
	// look at the raw text.
	scheme, _, found := strings.Cut(rawURI, "://")
	if !found || scheme != Scheme {
		return nil, fmt.Errorf("%w: expected %q, got %q", ErrInvalidScheme, Scheme, scheme)
	}

	uri, err := url.Parse(rawURI)
	if err != nil {
		return nil, errors.Join(ErrMalformedURI, err)
	}

	otpType, err := credential.ParseOTPType(uri.Host)
	if err != nil {
		return nil, err
	}

	label, err := parseLabel(strings.TrimPrefix(uri.Path, "/"))
	if err != nil {
		return nil, err
	}

	query, err := url.ParseQuery(uri.RawQuery)
	if err != nil {
		return nil, errors.Join(ErrMalformedURI, err)
	}

	secret := query.Get("secret")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	algorithm := credential.DefaultHashAlgorithm
	if value := query.Get("algorithm"); value != "" {
		if algorithm, err = credential.ParseHashAlgorithm(value); err != nil {
			return nil, err
		}
	}

	digits := credential.DefaultDigitsCount
	if value := query.Get("digits"); value != "" {
		if digits, err = strconv.Atoi(value); err != nil {
			return nil, fmt.Errorf("%w, got %q", ErrInvalidDigits, value)
		}
	}
	if digits != 6 && digits != 8 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidDigits, digits)
	}

	issuer, err := resolveIssuer(label, query.Get("issuer"))
	if err != nil {
		return nil, err
	}

	descriptor := &Descriptor{
		Type:      otpType,
		Label:     label,
		Secret:    secret,
		Issuer:    issuer,
		Algorithm: algorithm,
		Digits:    digits,
	}

	switch otpType {
	case credential.TypeHOTP:
		value := query.Get("counter")
		if value == "" {
			return nil, ErrMissingCounter
		}
		if descriptor.Counter, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCounter, value)
		}
	case credential.TypeTOTP:
		descriptor.Period = credential.DefaultTimeStepSeconds
		if value := query.Get("period"); value != "" {
			period, err := strconv.ParseUint(value, 10, 32)
			if err != nil || period == 0 {
				return nil, fmt.Errorf("%w, got %q", ErrInvalidPeriod, value)
			}
			descriptor.Period = uint32(period)
		}
	}

	return descriptor, nil
}

// parseLabel splits the decoded label on at most one colon. Neither the
// issuer nor the account name may themselves contain a colon, so a second
// one makes the label ambiguous and is rejected outright. Leading spaces
// before the account name are formatting per the Key Uri Format and are
// stripped.
func parseLabel(decoded string) (Label, error) {
	if decoded == "" {
		return Label{}, ErrEmptyLabel
	}
	switch strings.Count(decoded, ":") {
	case 0:
		accountName := strings.TrimLeft(decoded, " ")
		if accountName == "" {
			return Label{}, ErrEmptyAccountName
		}
		return Label{AccountName: accountName}, nil
	case 1:
		issuer, accountName, _ := strings.Cut(decoded, ":")
		accountName = strings.TrimLeft(accountName, " ")
		if issuer == "" {
			return Label{}, ErrEmptyIssuer
		}
		if accountName == "" {
			return Label{}, ErrEmptyAccountName
		}
		return Label{AccountName: accountName, Issuer: issuer}, nil
	default:
		return Label{}, fmt.Errorf("%w: label %q contains more than one", ErrIllegalColon, decoded)
	}
}

// resolveIssuer cross-validates the issuer query parameter against the
// label issuer. When both are present they must be textually equal; when
// only one is, it wins.
func resolveIssuer(label Label, paramIssuer string) (string, error) {
	if strings.Contains(paramIssuer, ":") {
		return "", fmt.Errorf("%w: issuer parameter %q", ErrIllegalColon, paramIssuer)
	}
	if paramIssuer != "" && label.Issuer != "" && paramIssuer != label.Issuer {
		return "", fmt.Errorf("%w: label %q, parameter %q", ErrIssuerMismatch, label.Issuer, paramIssuer)
	}
	if paramIssuer != "" {
		return paramIssuer, nil
	}
	return label.Issuer, nil
}

// Credential converts the descriptor into a credential record. This is the
// point where the secret must prove to be valid Base32. A TOTP credential
// starts counting steps at the Unix epoch.
func (d *Descriptor) Credential() (credential.Credential, error) {
	var params credential.Params
	switch d.Type {
	case credential.TypeHOTP:
		params = credential.HOTPParams{Counter: d.Counter}
	case credential.TypeTOTP:
		params = credential.TOTPParams{
			InitialTime:     time.Unix(0, 0).UTC(),
			TimeStepSeconds: d.Period,
		}
	default:
		return credential.Credential{}, fmt.Errorf("%w: %q", credential.ErrUnhandledOTPType, string(d.Type))
	}
	return credential.New(credential.Secret(d.Secret), d.Digits, d.Algorithm, params, d.Label.AccountName, d.Issuer)
}
