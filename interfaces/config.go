// Package interfaces defines the core types and contracts for trustee's
// configuration resolution pipeline, separating interface definitions from
// implementations.
package interfaces

import (
	"context"
	"errors"
	"strings"
)

// Recognized local-secrets keys. File-name overrides are read from the
// default secrets path during path resolution; GETMYCONFIG_* keys carry the
// remote object storage connection parameters and object-name overrides.
const (
	ConfigFileKey  = "TRUSTEE_CONFIG_FILE"
	SecretsFileKey = "TRUSTEE_ENV_FILE"

	RemoteEndpointKey      = "GETMYCONFIG_ENDPOINT"
	RemoteAccessKeyKey     = "GETMYCONFIG_ACCESS_KEY"
	RemoteSecretKeyKey     = "GETMYCONFIG_SECRET_KEY"
	RemoteBucketKey        = "GETMYCONFIG_BUCKET"
	RemoteEncryptionKeyKey = "GETMYCONFIG_ENCRYPTION_KEY"
	RemoteRegionKey        = "GETMYCONFIG_REGION"

	RemoteConfigObjectKey  = "GETMYCONFIG_CONFIG_FILE"
	RemoteSecretsObjectKey = "GETMYCONFIG_ENV_FILE"
)

var (
	// ErrObjectNotFound is returned when a named object does not exist in the
	// remote object store.
	ErrObjectNotFound = errors.New("object not found")

	// ErrStoreUnavailable is returned when an object store cannot be reached.
	ErrStoreUnavailable = errors.New("object store unavailable")

	// ErrNoConfiguration is returned when no usable configuration source
	// exists - neither remote nor local. This is the only terminal condition
	// of the resolution pipeline; callers are expected to exit non-zero.
	ErrNoConfiguration = errors.New("no usable configuration found")
)

// SecretMap maps secret names to their values. Keys are case-sensitive and
// unique; insertion order carries no meaning. A SecretMap is built fresh per
// resolution attempt and never persisted by this subsystem.
type SecretMap map[string]string

// Clone returns an independent copy of the map.
func (m SecretMap) Clone() SecretMap {
	out := make(SecretMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Overlay merges other on top of the receiver: keys present in both take
// other's value, keys present only in the receiver survive. Neither input is
// mutated.
func (m SecretMap) Overlay(other SecretMap) SecretMap {
	out := m.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// RemoteConnectionParams holds the connection record extracted from local
// secrets. The first five fields are required for a remote fetch to be
// attempted; Region is optional.
type RemoteConnectionParams struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	EncryptionKey string
	Region        string
}

// Complete reports whether all required fields are present and non-empty.
// An incomplete record means the remote path is skipped, not that an error
// occurred.
func (p RemoteConnectionParams) Complete() bool {
	return p.Endpoint != "" &&
		p.AccessKey != "" &&
		p.SecretKey != "" &&
		p.Bucket != "" &&
		p.EncryptionKey != ""
}

// NormalizedEndpoint returns the endpoint with an explicit scheme, defaulting
// to https:// when a bare host was given.
func (p RemoteConnectionParams) NormalizedEndpoint() string {
	if p.Endpoint == "" || strings.Contains(p.Endpoint, "://") {
		return p.Endpoint
	}
	return "https://" + p.Endpoint
}

// RemoteBundle is the result of a successful remote fetch: the raw config
// document text and the parsed remote secrets.
type RemoteBundle struct {
	Config  string
	Secrets SecretMap
}

// ResolvedConfiguration is the final output of a resolution: one merged
// configuration document in serialized form and one secret mapping.
// Constructed once per process invocation and not mutated afterwards.
type ResolvedConfiguration struct {
	Config  string
	Secrets SecretMap
}

// BuildInfo carries build-time metadata handed to the runtime alongside the
// resolved configuration.
type BuildInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Profile   string
}

// ObjectStore retrieves named objects from a remote store. Implementations
// return the stored bytes as-is; payload decryption is the caller's concern.
type ObjectStore interface {
	// FetchObject retrieves an object by name. Returns ErrObjectNotFound if
	// the object does not exist.
	FetchObject(ctx context.Context, name string) ([]byte, error)

	// Name returns a unique identifier for this store, used in logs.
	Name() string
}

// AgentRuntime is the downstream runtime entrypoint. Everything after Run is
// out of this subsystem's scope.
type AgentRuntime interface {
	Run(ctx context.Context, resolved ResolvedConfiguration, build BuildInfo) error
}
