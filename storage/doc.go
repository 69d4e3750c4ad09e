// Package storage retrieves trustee's remote configuration and secrets from
// encrypted object storage.
//
// Two object store clients are provided, selected by the endpoint scheme of
// the remote connection parameters:
//
//   - S3Store: Amazon S3 or any S3-compatible service (https://, http://, or
//     a bare host which defaults to https://)
//   - VaultStore: HashiCorp Vault KV v2 (vault:// or vault+http://)
//
// Stores deal in named, encrypted byte payloads; the Fetcher layers payload
// decryption (AES-256-GCM under a key derived from the encryption-key
// parameter), UTF-8 validation and dotenv parsing on top.
//
// # Failure model
//
// Remote storage is a convenience layer, not a dependency. Every failure in
// this package - missing connection parameters, client construction, object
// fetch, decryption, text decoding - degrades to "remote unavailable" and is
// reported through logs, never as a hard error. A partial result (one of the
// two objects fetched) is treated as total failure so the caller never mixes
// remote and local sources silently.
package storage
