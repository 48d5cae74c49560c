// Package vault persists OTP credentials in a single encrypted local file.
//
// The decrypted document is a versioned JSON object mapping aliases to
// credential records. At rest the document is sealed with AES-256-GCM under
// a key derived from the caller-held 32-byte master key via HKDF-SHA256;
// the nonce is prepended to the ciphertext. A wrong key and a tampered file
// are deliberately indistinguishable.
//
// The package assumes a single process accesses the store file at a time.
// Writes go through a temporary file in the same directory followed by a
// rename, so a crash never leaves a half-written store behind.
package vault
