package cryptoutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptWithKey(t *testing.T) {
	key := DeriveObjectKey("correct horse battery staple")

	testCases := []struct {
		name string
		data []byte
	}{
		{
			name: "TOML document",
			data: []byte("model = \"gpt-x\"\n\n[logging]\nlevel = \"debug\"\n"),
		},
		{
			name: "dotenv document",
			data: []byte("API_KEY=abc\nOTHER=def\n"),
		},
		{
			name: "binary data",
			data: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD},
		},
		{
			name: "long data",
			data: make([]byte, 64*1024),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encrypted, err := EncryptWithKey(key, tc.data)
			require.NoError(t, err)
			require.NotEqual(t, tc.data, encrypted)

			decrypted, err := DecryptWithKey(key, encrypted)
			require.NoError(t, err)
			assert.Equal(t, tc.data, decrypted)
		})
	}
}

func TestEncryptionIsRandomized(t *testing.T) {
	key := DeriveObjectKey("pass")
	data := []byte("same plaintext")

	first, err := EncryptWithKey(key, data)
	require.NoError(t, err)
	second, err := EncryptWithKey(key, data)
	require.NoError(t, err)

	// Fresh nonce per call means distinct ciphertexts.
	assert.NotEqual(t, first, second)
}

func TestDecryptWithWrongKey(t *testing.T) {
	encrypted, err := EncryptWithKey(DeriveObjectKey("right"), []byte("secret"))
	require.NoError(t, err)

	_, err = DecryptWithKey(DeriveObjectKey("wrong"), encrypted)
	assert.Error(t, err)
}

func TestDecryptTamperedPayload(t *testing.T) {
	key := DeriveObjectKey("pass")

	encrypted, err := EncryptWithKey(key, []byte("secret"))
	require.NoError(t, err)

	encrypted[len(encrypted)-1] ^= 0xFF
	_, err = DecryptWithKey(key, encrypted)
	assert.Error(t, err)
}

func TestDecryptTruncatedPayload(t *testing.T) {
	_, err := DecryptWithKey(DeriveObjectKey("pass"), []byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestDeriveObjectKeyDeterministic(t *testing.T) {
	assert.Equal(t, DeriveObjectKey("pass"), DeriveObjectKey("pass"))
	assert.NotEqual(t, DeriveObjectKey("pass"), DeriveObjectKey("other"))
	assert.Len(t, DeriveObjectKey("pass"), 32)
}
