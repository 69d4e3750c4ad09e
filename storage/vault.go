package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/trusteehq/trustee/interfaces"
)

// VaultStore retrieves named objects from HashiCorp Vault's KV v2 secrets
// engine. The bucket parameter names the mount path, the secret key carries
// the Vault token, and object payloads live base64-encoded in the "content"
// field so binary (encrypted) data survives the JSON transport.
type VaultStore struct {
	client *api.Client
	mount  string
	log    *slog.Logger
}

// NewVaultStore creates a Vault object store from connection parameters.
// The endpoint scheme (vault:// or vault+http://) selects HTTPS or HTTP
// transport to the Vault server.
func NewVaultStore(params interfaces.RemoteConnectionParams, log *slog.Logger) (*VaultStore, error) {
	address := params.Endpoint
	switch {
	case strings.HasPrefix(address, "vault+http://"):
		address = "http://" + strings.TrimPrefix(address, "vault+http://")
	case strings.HasPrefix(address, "vault://"):
		address = "https://" + strings.TrimPrefix(address, "vault://")
	}

	config := api.DefaultConfig()
	config.Address = address
	config.Timeout = 30 * time.Second

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	client.SetToken(params.SecretKey)

	return &VaultStore{
		client: client,
		mount:  strings.Trim(params.Bucket, "/"),
		log:    log,
	}, nil
}

// FetchObject retrieves an object by name through the KV v2 API.
// Returns ErrObjectNotFound if the object doesn't exist.
func (v *VaultStore) FetchObject(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	path := fmt.Sprintf("%s/data/%s", v.mount, name)

	secret, err := v.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		v.log.Debug("Failed to read from Vault",
			slog.String("path", path), "err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrStoreUnavailable, err)
	}

	if secret == nil || secret.Data == nil {
		v.log.Debug("Object not found in Vault", slog.String("path", path))
		return nil, interfaces.ErrObjectNotFound
	}

	// KV v2 nests the stored fields under "data".
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid data format in Vault response for %s", path)
	}

	content, ok := data["content"].(string)
	if !ok {
		return nil, fmt.Errorf("content field missing in Vault data for %s", path)
	}

	payload, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Vault content for %s: %w", path, err)
	}

	v.log.Debug("Fetched object from Vault",
		slog.String("path", path),
		slog.Int("size", len(payload)),
		slog.Duration("duration", time.Since(start)))

	return payload, nil
}

// Name returns a unique identifier for this store.
func (v *VaultStore) Name() string {
	return fmt.Sprintf("vault-%s", v.mount)
}
