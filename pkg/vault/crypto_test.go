package vault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otpvault/otpvault/pkg/vault"
)

func encryptForTest(t *testing.T, key, plaintext []byte) []byte {
	t.Helper()
	sealed, err := vault.Encrypt(key, plaintext)
	require.NoError(t, err)
	return sealed
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	key, err := vault.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, vault.KeySize)

	other, err := vault.GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestKeyEncoding(t *testing.T) {
	t.Parallel()

	key, err := vault.GenerateKey()
	require.NoError(t, err)

	decoded, err := vault.DecodeKey(vault.EncodeKey(key))
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	_, err = vault.DecodeKey("not base64 !!!")
	assert.ErrorIs(t, err, vault.ErrInvalidKeyLength)

	_, err = vault.DecodeKey("c2hvcnQ=") // "short"
	assert.ErrorIs(t, err, vault.ErrInvalidKeyLength)
}

func TestEncrypt_RejectsBadKeyLength(t *testing.T) {
	t.Parallel()

	_, err := vault.Encrypt(make([]byte, 16), []byte("document"))
	assert.ErrorIs(t, err, vault.ErrInvalidKeyLength)
}
