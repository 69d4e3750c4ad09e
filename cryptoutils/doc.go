// Package cryptoutils provides the cryptographic operations protecting
// trustee's remotely stored configuration and secrets.
//
// Remote objects are encrypted symmetrically: the user-supplied encryption
// passphrase is stretched into a 32-byte key with Argon2id, and payloads use
// AES-GCM for authenticated encryption.
//
// # Encryption Format
//
// Encrypted payloads follow this binary format:
//
//	[nonce (12 bytes)][ciphertext]
//
// Where the ciphertext carries the GCM authentication tag, so any tampering
// or truncation fails decryption rather than producing garbage plaintext.
//
// # Key Derivation
//
// DeriveObjectKey uses Argon2id with time=1, memory=64MiB, threads=4 and a
// fixed versioned salt. Derivation is deterministic: the same passphrase
// always yields the same key, which is what allows independently produced
// objects to be decrypted on read.
package cryptoutils
