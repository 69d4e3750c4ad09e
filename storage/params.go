package storage

import (
	"github.com/trusteehq/trustee/interfaces"
)

// Default remote object names, overridable through the local secrets file.
const (
	DefaultConfigObject  = "trustee.toml.enc"
	DefaultSecretsObject = ".env.enc"
)

// ParamsFromSecrets extracts remote connection parameters from local secrets.
// The second return value is false when any required parameter is missing or
// empty; that is the expected outcome for locally-only deployments, not an
// error.
func ParamsFromSecrets(secrets interfaces.SecretMap) (interfaces.RemoteConnectionParams, bool) {
	params := interfaces.RemoteConnectionParams{
		Endpoint:      secrets[interfaces.RemoteEndpointKey],
		AccessKey:     secrets[interfaces.RemoteAccessKeyKey],
		SecretKey:     secrets[interfaces.RemoteSecretKeyKey],
		Bucket:        secrets[interfaces.RemoteBucketKey],
		EncryptionKey: secrets[interfaces.RemoteEncryptionKeyKey],
		Region:        secrets[interfaces.RemoteRegionKey],
	}
	return params, params.Complete()
}

// objectNames returns the remote config and secrets object names, applying
// any overrides present in the local secrets.
func objectNames(secrets interfaces.SecretMap) (configObject, secretsObject string) {
	configObject = DefaultConfigObject
	if name := secrets[interfaces.RemoteConfigObjectKey]; name != "" {
		configObject = name
	}
	secretsObject = DefaultSecretsObject
	if name := secrets[interfaces.RemoteSecretsObjectKey]; name != "" {
		secretsObject = name
	}
	return configObject, secretsObject
}
