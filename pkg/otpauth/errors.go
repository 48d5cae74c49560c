package otpauth

import "errors"

var (
	ErrInvalidScheme      = errors.New("invalid URI scheme")
	ErrMalformedURI       = errors.New("malformed otpauth URI")
	ErrEmptyLabel         = errors.New("label must not be empty")
	ErrEmptyAccountName   = errors.New("account name must not be empty")
	ErrEmptyIssuer        = errors.New("label issuer must not be empty")
	ErrIllegalColon       = errors.New("illegal colon")
	ErrIssuerMismatch     = errors.New("issuer mismatch between label and parameters")
	ErrMissingSecret      = errors.New("missing secret parameter")
	ErrMissingCounter     = errors.New("missing counter parameter")
	ErrInvalidCounter     = errors.New("invalid counter parameter")
	ErrInvalidDigits      = errors.New("digits parameter must be 6 or 8")
	ErrInvalidPeriod      = errors.New("period parameter must be a positive integer")
	ErrFailedToEncodeQR   = errors.New("failed to encode QR code")
	ErrMissingAccountName = errors.New("credential has no account name for the URI label")
)
