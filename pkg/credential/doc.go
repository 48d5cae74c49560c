// Package credential defines the shared data model for one-time password
// credentials: the Base32 secret, the hash algorithm and OTP type
// enumerations, the HOTP/TOTP parameter variants, and the credential record
// persisted by the vault and consumed by the algorithm engine.
//
// The parameter variants form a tagged union: a record's params must match
// its otp_type, and the constructor makes that impossible to get wrong by
// deriving the type from the params value. Consumers dispatch with a type
// switch rather than inspecting strings.
package credential
