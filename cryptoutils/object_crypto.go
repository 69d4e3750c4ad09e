package cryptoutils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// gcmNonceSize is the standard 12-byte nonce used by AES-GCM.
const gcmNonceSize = 12

// objectKeySalt is the fixed derivation context for remote object keys.
// Changing it invalidates every object encrypted under the old derivation.
var objectKeySalt = []byte("TRUSTEE-OBJECT-KEY-V1")

// DeriveObjectKey derives a 32-byte AES key from the user-supplied encryption
// passphrase using Argon2id. The derivation is deterministic so the same
// passphrase always opens the same objects.
//
// Parameters: time=1, memory=64MiB, threads=4, keyLen=32.
func DeriveObjectKey(passphrase string) []byte {
	return argon2.IDKey([]byte(passphrase), objectKeySalt, 1, 64*1024, 4, 32)
}

// EncryptWithKey encrypts data with AES-256-GCM under the given 32-byte key.
// A fresh random nonce is generated per call.
//
// Format: [nonce (12 bytes)][ciphertext]
func EncryptWithKey(key, data []byte) ([]byte, error) {
	aesBlock, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(aesBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcmNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return append(nonce, aesGCM.Seal(nil, nonce, data, nil)...), nil
}

// DecryptWithKey decrypts a payload produced by EncryptWithKey. Tampered or
// truncated payloads fail authentication and return an error.
func DecryptWithKey(key, payload []byte) ([]byte, error) {
	if len(payload) < gcmNonceSize {
		return nil, errors.New("encrypted payload too short")
	}

	aesBlock, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(aesBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := payload[:gcmNonceSize]
	ciphertext := payload[gcmNonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}
