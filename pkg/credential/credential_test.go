package credential_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otpvault/otpvault/pkg/credential"
)

func TestSecret(t *testing.T) {
	t.Parallel()

	t.Run("round-trips raw bytes through canonical Base32", func(t *testing.T) {
		t.Parallel()
		raw := []byte("12345678901234567890")
		secret := credential.NewSecret(raw)
		assert.Equal(t, credential.Secret("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"), secret)

		decoded, err := secret.Bytes()
		require.NoError(t, err)
		assert.Equal(t, raw, decoded)
	})

	t.Run("decodes case-insensitively and ignores padding", func(t *testing.T) {
		t.Parallel()
		for _, variant := range []credential.Secret{
			"gezdgnbvgy3tqojqgezdgnbvgy3tqojq",
			"GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
			" gezdgnbvgy3tqojqgezdgnbvgy3tqojq ",
			"MFRGG===",
			"mfrgg",
		} {
			require.NoError(t, variant.Validate(), "variant %q", variant)
		}
	})

	t.Run("rejects invalid Base32", func(t *testing.T) {
		t.Parallel()
		for _, invalid := range []credential.Secret{"foo", "not-base32!", "A", "12345678"} {
			err := invalid.Validate()
			assert.ErrorIs(t, err, credential.ErrInvalidSecret, "secret %q", invalid)
		}
	})
}

func TestParseOTPType(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"hotp", "HOTP", "HoTp"} {
		parsed, err := credential.ParseOTPType(value)
		require.NoError(t, err)
		assert.Equal(t, credential.TypeHOTP, parsed)
	}

	parsed, err := credential.ParseOTPType("totp")
	require.NoError(t, err)
	assert.Equal(t, credential.TypeTOTP, parsed)

	_, err = credential.ParseOTPType("motp")
	assert.ErrorIs(t, err, credential.ErrUnhandledOTPType)
}

func TestParseHashAlgorithm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    credential.HashAlgorithm
		wantErr bool
	}{
		{value: "sha1", want: credential.SHA1},
		{value: "SHA1", want: credential.SHA1},
		{value: "Sha256", want: credential.SHA256},
		{value: "SHA512", want: credential.SHA512},
		{value: "md5", wantErr: true},
		{value: "", wantErr: true},
	}
	for _, tt := range tests {
		parsed, err := credential.ParseHashAlgorithm(tt.value)
		if tt.wantErr {
			assert.ErrorIs(t, err, credential.ErrUnsupportedAlgorithm, "value %q", tt.value)
			continue
		}
		require.NoError(t, err, "value %q", tt.value)
		assert.Equal(t, tt.want, parsed)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	validSecret := credential.NewSecret([]byte("12345678901234567890"))

	t.Run("derives otp_type from the params variant", func(t *testing.T) {
		t.Parallel()
		hotp, err := credential.New(validSecret, 6, credential.SHA1, credential.HOTPParams{Counter: 42}, "alice", "Acme")
		require.NoError(t, err)
		assert.Equal(t, credential.TypeHOTP, hotp.OTPType)

		totp, err := credential.New(validSecret, 8, credential.SHA512, credential.TOTPParams{InitialTime: time.Unix(0, 0).UTC(), TimeStepSeconds: 30}, "", "")
		require.NoError(t, err)
		assert.Equal(t, credential.TypeTOTP, totp.OTPType)
	})

	t.Run("canonicalizes the secret", func(t *testing.T) {
		t.Parallel()
		c, err := credential.New("gezdgnbvgy3tqojqgezdgnbvgy3tqojq", 6, credential.SHA1, credential.HOTPParams{}, "", "")
		require.NoError(t, err)
		assert.Equal(t, validSecret, c.Secret)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name    string
			secret  credential.Secret
			digits  int
			alg     credential.HashAlgorithm
			params  credential.Params
			wantErr error
		}{
			{
				name:    "bad secret",
				secret:  "foo",
				digits:  6,
				alg:     credential.SHA1,
				params:  credential.HOTPParams{},
				wantErr: credential.ErrInvalidSecret,
			},
			{
				name:    "seven digits",
				secret:  validSecret,
				digits:  7,
				alg:     credential.SHA1,
				params:  credential.HOTPParams{},
				wantErr: credential.ErrInvalidDigitsCount,
			},
			{
				name:    "unknown algorithm",
				secret:  validSecret,
				digits:  6,
				alg:     "MD5",
				params:  credential.HOTPParams{},
				wantErr: credential.ErrUnsupportedAlgorithm,
			},
			{
				name:    "nil params",
				secret:  validSecret,
				digits:  6,
				alg:     credential.SHA1,
				params:  nil,
				wantErr: credential.ErrMissingParams,
			},
			{
				name:    "zero time step",
				secret:  validSecret,
				digits:  6,
				alg:     credential.SHA1,
				params:  credential.TOTPParams{InitialTime: time.Unix(0, 0).UTC()},
				wantErr: credential.ErrInvalidTimeStep,
			},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				_, err := credential.New(tt.secret, tt.digits, tt.alg, tt.params, "", "")
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestValidate_ParamsTypeMismatch(t *testing.T) {
	t.Parallel()

	c := credential.Credential{
		Secret:        credential.NewSecret([]byte("12345678901234567890")),
		DigitsCount:   6,
		HashAlgorithm: credential.SHA1,
		OTPType:       credential.TypeTOTP,
		Params:        credential.HOTPParams{Counter: 1},
	}
	assert.ErrorIs(t, c.Validate(), credential.ErrParamsTypeMismatch)
}

func TestCredentialJSON(t *testing.T) {
	t.Parallel()

	validSecret := credential.NewSecret([]byte("12345678901234567890"))

	t.Run("HOTP round-trip", func(t *testing.T) {
		t.Parallel()
		original, err := credential.New(validSecret, 6, credential.SHA1, credential.HOTPParams{Counter: 7}, "alice@bigco.com", "Big Corporation")
		require.NoError(t, err)

		data, err := json.Marshal(original)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"otp_type":"HOTP"`)
		assert.Contains(t, string(data), `"counter":7`)

		var decoded credential.Credential
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, original, decoded)
	})

	t.Run("TOTP round-trip", func(t *testing.T) {
		t.Parallel()
		original, err := credential.New(validSecret, 8, credential.SHA256, credential.TOTPParams{
			InitialTime:     time.Unix(0, 0).UTC(),
			TimeStepSeconds: 60,
		}, "", "")
		require.NoError(t, err)

		data, err := json.Marshal(original)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"time_step_seconds":60`)

		var decoded credential.Credential
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, original, decoded)
	})

	t.Run("accepts explicit timezone offsets in initial_time", func(t *testing.T) {
		t.Parallel()
		document := `{
			"secret": "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
			"digits_count": 6,
			"hash_algorithm": "sha1",
			"otp_type": "totp",
			"params": {"initial_time": "1970-01-01T00:00:00+00:00", "time_step_seconds": 30}
		}`
		var decoded credential.Credential
		require.NoError(t, json.Unmarshal([]byte(document), &decoded))
		assert.Equal(t, credential.TypeTOTP, decoded.OTPType)
		params, ok := decoded.Params.(credential.TOTPParams)
		require.True(t, ok)
		assert.Equal(t, int64(0), params.InitialTime.Unix())
	})

	t.Run("rejects corrupted records", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name     string
			document string
			wantErr  error
		}{
			{
				name:     "unknown otp_type",
				document: `{"secret":"GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ","digits_count":6,"hash_algorithm":"SHA1","otp_type":"MOTP","params":{"counter":0}}`,
				wantErr:  credential.ErrUnhandledOTPType,
			},
			{
				name:     "unknown algorithm",
				document: `{"secret":"GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ","digits_count":6,"hash_algorithm":"MD5","otp_type":"HOTP","params":{"counter":0}}`,
				wantErr:  credential.ErrUnsupportedAlgorithm,
			},
			{
				name:     "missing params",
				document: `{"secret":"GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ","digits_count":6,"hash_algorithm":"SHA1","otp_type":"HOTP"}`,
				wantErr:  credential.ErrMissingParams,
			},
			{
				name:     "wrong params variant for totp",
				document: `{"secret":"GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ","digits_count":6,"hash_algorithm":"SHA1","otp_type":"TOTP","params":{"counter":5}}`,
				wantErr:  credential.ErrInvalidTimeStep,
			},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				var decoded credential.Credential
				err := json.Unmarshal([]byte(tt.document), &decoded)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}
