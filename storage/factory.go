package storage

import (
	"log/slog"
	"strings"

	"github.com/trusteehq/trustee/interfaces"
)

// NewObjectStore creates the object store matching the endpoint scheme of the
// connection parameters.
//
// Supported schemes:
//   - https://, http://, or a bare host - S3 or S3-compatible storage
//   - vault://, vault+http:// - HashiCorp Vault KV v2
func NewObjectStore(params interfaces.RemoteConnectionParams, log *slog.Logger) (interfaces.ObjectStore, error) {
	switch {
	case strings.HasPrefix(params.Endpoint, "vault://"), strings.HasPrefix(params.Endpoint, "vault+http://"):
		return NewVaultStore(params, log)
	default:
		return NewS3Store(params, log)
	}
}
