// Package otpauth parses and builds otpauth:// provisioning URIs, the de
// facto format used by QR-code based OTP enrollment:
//
//	otpauth://{hotp|totp}/{urlencoded label}?{query parameters}
//
// See https://github.com/google/google-authenticator/wiki/Key-Uri-Format.
// Parse validates the whole URI and returns a fully populated Descriptor or
// an error, never partial output. The descriptor is a short-lived value:
// callers convert it into a credential record with Descriptor.Credential
// and discard it.
package otpauth
