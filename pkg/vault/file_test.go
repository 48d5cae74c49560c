package vault_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otpvault/otpvault/pkg/credential"
	"github.com/otpvault/otpvault/pkg/vault"
)

func TestInitialize(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "otpvault.db")

	store, key, err := vault.Initialize(path)
	require.NoError(t, err)
	assert.Equal(t, vault.CurrentVersion, store.Version)
	assert.Empty(t, store.Aliases())
	assert.Len(t, key, vault.KeySize)
	assert.FileExists(t, path)

	// Reinitializing an initialized store is rejected.
	_, _, err = vault.Initialize(path)
	assert.ErrorIs(t, err, vault.ErrAlreadyInitialized)
}

func TestReadWrite_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "otpvault.db")
	store, key, err := vault.Initialize(path)
	require.NoError(t, err)

	require.NoError(t, store.Add("work", testCredential(t, 3)))
	require.NoError(t, store.Add("personal", testTOTPCredential(t)))
	require.NoError(t, vault.Write(store, path, key))

	loaded, err := vault.Read(path, key)
	require.NoError(t, err)
	assert.Equal(t, store.Version, loaded.Version)
	assert.Equal(t, store.Credentials, loaded.Credentials)
}

func TestRead_MissingStore(t *testing.T) {
	t.Parallel()

	key := make([]byte, vault.KeySize)
	_, err := vault.Read(filepath.Join(t.TempDir(), "nope.db"), key)
	assert.ErrorIs(t, err, vault.ErrDoesNotExist)
}

func TestRead_WrongKeyIsOpaque(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "otpvault.db")
	_, key, err := vault.Initialize(path)
	require.NoError(t, err)

	wrongKey := make([]byte, vault.KeySize)
	copy(wrongKey, key)
	wrongKey[0] ^= 0xff

	_, err = vault.Read(path, wrongKey)
	assert.ErrorIs(t, err, vault.ErrDecryptionFailed)
	// No detail beyond the generic condition may leak.
	assert.EqualError(t, err, vault.ErrDecryptionFailed.Error())
}

func TestRead_TamperedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "otpvault.db")
	_, key, err := vault.Initialize(path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	_, err = vault.Read(path, key)
	assert.ErrorIs(t, err, vault.ErrDecryptionFailed)
}

func TestRead_UnsupportedVersionLeavesFileIntact(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "otpvault.db")
	_, key, err := vault.Initialize(path)
	require.NoError(t, err)

	// Plant a store claiming a future schema version.
	future := vault.NewStore()
	future.Version = "9.9.9"
	future.Credentials = map[string]credential.Credential{}
	require.Error(t, vault.Write(future, path, key), "writing an unsupported version must fail")

	// Write bypassed validation would be needed, so craft the file directly
	// through the export document of a valid store and a doctored version.
	document := []byte(`{"otp":{},"version":"9.9.9"}`)
	sealed := encryptForTest(t, key, document)
	require.NoError(t, os.WriteFile(path, sealed, 0o600))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = vault.Read(path, key)
	assert.ErrorIs(t, err, vault.ErrCorruption)
	assert.ErrorIs(t, err, vault.ErrUnsupportedVersion)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed read must not mutate the on-disk file")
}

func TestWrite_IsAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "otpvault.db")
	store, key, err := vault.Initialize(path)
	require.NoError(t, err)

	require.NoError(t, store.Add("work", testCredential(t, 0)))
	require.NoError(t, vault.Write(store, path, key))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp file may be left behind")
	assert.Equal(t, "otpvault.db", entries[0].Name())

	loaded, err := vault.Read(path, key)
	require.NoError(t, err)
	assert.Equal(t, store.Credentials, loaded.Credentials)
}
