package vault

import "errors"

var (
	ErrAlreadyInitialized   = errors.New("store already initialized")
	ErrDoesNotExist         = errors.New("store does not exist")
	ErrDecryptionFailed     = errors.New("wrong key or corrupted data")
	ErrCorruption           = errors.New("store is corrupted")
	ErrInvalidDocument      = errors.New("invalid store document")
	ErrUnsupportedVersion   = errors.New("unsupported store version")
	ErrUnsupportedMigration = errors.New("store version migration is not supported")
	ErrMergeConflict        = errors.New("conflicting aliases between the stores")
	ErrAliasExists          = errors.New("alias already exists")
	ErrAliasNotFound        = errors.New("alias not found")
	ErrFailedToGenerateKey  = errors.New("failed to generate encryption key")
	ErrInvalidKeyLength     = errors.New("encryption key must be 32 bytes")
	ErrEncryptionFailed     = errors.New("failed to encrypt store")
)
