package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/trusteehq/trustee/cryptoutils"
	"github.com/trusteehq/trustee/envfile"
	"github.com/trusteehq/trustee/interfaces"
)

// errInvalidText marks a decrypted payload that is not valid UTF-8 text.
var errInvalidText = errors.New("object payload is not valid text")

// Fetcher retrieves the remote configuration bundle: one config document and
// one secrets document, each independently stored and encrypted.
type Fetcher struct {
	log      *slog.Logger
	newStore func(interfaces.RemoteConnectionParams, *slog.Logger) (interfaces.ObjectStore, error)
}

// NewFetcher creates a remote fetcher using the default object store factory.
func NewFetcher(log *slog.Logger) *Fetcher {
	return &Fetcher{log: log, newStore: NewObjectStore}
}

// Fetch attempts the remote path. It returns nil - remote absent, never an
// error - when connection parameters are incomplete, the store cannot be
// constructed, or either object fails to fetch, decrypt or decode. The two
// object fetches run concurrently; both must succeed for a bundle to be
// returned (a partial result is treated as total failure).
func (f *Fetcher) Fetch(ctx context.Context, secrets interfaces.SecretMap) *interfaces.RemoteBundle {
	params, ok := ParamsFromSecrets(secrets)
	if !ok {
		f.log.Debug("Remote connection parameters incomplete, skipping remote configuration")
		return nil
	}

	store, err := f.newStore(params, f.log)
	if err != nil {
		f.log.Warn("Failed to create object store, falling back to local configuration", "err", err)
		return nil
	}

	key := cryptoutils.DeriveObjectKey(params.EncryptionKey)
	configObject, secretsObject := objectNames(secrets)

	var (
		wg                      sync.WaitGroup
		configText, secretsText string
		configErr, secretsErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		configText, configErr = f.fetchText(ctx, store, configObject, key)
	}()
	go func() {
		defer wg.Done()
		secretsText, secretsErr = f.fetchText(ctx, store, secretsObject, key)
	}()
	wg.Wait()

	if configErr != nil {
		f.log.Warn("Remote config fetch failed, falling back to local configuration",
			slog.String("store", store.Name()),
			slog.String("object", configObject),
			"err", configErr)
		return nil
	}
	if secretsErr != nil {
		f.log.Warn("Remote secrets fetch failed, falling back to local configuration",
			slog.String("store", store.Name()),
			slog.String("object", secretsObject),
			"err", secretsErr)
		return nil
	}

	f.log.Info("Fetched remote configuration",
		slog.String("store", store.Name()),
		slog.String("config_object", configObject),
		slog.String("secrets_object", secretsObject))

	return &interfaces.RemoteBundle{
		Config:  configText,
		Secrets: envfile.Parse(secretsText),
	}
}

// fetchText fetches one object and decrypts it into text.
func (f *Fetcher) fetchText(ctx context.Context, store interfaces.ObjectStore, name string, key []byte) (string, error) {
	payload, err := store.FetchObject(ctx, name)
	if err != nil {
		return "", err
	}

	plaintext, err := cryptoutils.DecryptWithKey(key, payload)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", errInvalidText
	}

	return string(plaintext), nil
}
