// Package otp implements the HOTP (RFC 4226) and TOTP (RFC 6238) code
// generation algorithms over the credential model.
//
// Every function is a pure computation: identical inputs always produce the
// identical code, nothing is retained between calls, and failures occur
// only on malformed inputs. The algorithm is implemented directly on the
// standard library crypto primitives so the package carries no third-party
// OTP dependency.
package otp
