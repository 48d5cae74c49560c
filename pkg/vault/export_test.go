package vault

// Encrypt exposes the AEAD sealing to tests that need to craft store files
// with documents Write would refuse to produce.
var Encrypt = encrypt
