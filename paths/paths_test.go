package paths

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	layout := Resolve("trustee", discardLogger())

	assert.Equal(t, filepath.Join(home, ".trustee"), layout.Home)
	assert.Equal(t, filepath.Join(home, ".trustee", "config", "trustee.toml"), layout.ConfigPath)
	assert.Equal(t, filepath.Join(home, ".trustee", ".env"), layout.SecretsPath)
	assert.Equal(t, "trustee.toml", layout.ConfigFileName)
	assert.Equal(t, ".env", layout.SecretsFileName)
}

func TestResolveAgentName(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	layout := Resolve("helper", discardLogger())

	assert.Equal(t, filepath.Join(home, ".helper"), layout.Home)
	assert.Equal(t, "helper.toml", layout.ConfigFileName)
}

func TestResolveFileNameOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	agentHome := filepath.Join(home, ".trustee")
	require.NoError(t, os.MkdirAll(agentHome, 0755))
	bootstrap := "TRUSTEE_CONFIG_FILE=custom.toml\nTRUSTEE_ENV_FILE=secrets.env\n"
	require.NoError(t, os.WriteFile(filepath.Join(agentHome, ".env"), []byte(bootstrap), 0600))

	layout := Resolve("trustee", discardLogger())

	assert.Equal(t, "custom.toml", layout.ConfigFileName)
	assert.Equal(t, "secrets.env", layout.SecretsFileName)
	assert.Equal(t, filepath.Join(agentHome, "config", "custom.toml"), layout.ConfigPath)
	assert.Equal(t, filepath.Join(agentHome, "secrets.env"), layout.SecretsPath)
}

func TestResolveEmptyOverridesIgnored(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	agentHome := filepath.Join(home, ".trustee")
	require.NoError(t, os.MkdirAll(agentHome, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(agentHome, ".env"),
		[]byte("TRUSTEE_CONFIG_FILE=\nOTHER=x\n"), 0600))

	layout := Resolve("trustee", discardLogger())

	assert.Equal(t, "trustee.toml", layout.ConfigFileName)
	assert.Equal(t, ".env", layout.SecretsFileName)
}

func TestResolveOverrideNeverMovesBootstrapFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	agentHome := filepath.Join(home, ".trustee")
	require.NoError(t, os.MkdirAll(agentHome, 0755))

	// The override lives in the default .env; the renamed secrets file holds a
	// conflicting override that must never be consulted.
	require.NoError(t, os.WriteFile(filepath.Join(agentHome, ".env"),
		[]byte("TRUSTEE_ENV_FILE=real.env\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(agentHome, "real.env"),
		[]byte("TRUSTEE_ENV_FILE=other.env\n"), 0600))

	layout := Resolve("trustee", discardLogger())

	assert.Equal(t, filepath.Join(agentHome, "real.env"), layout.SecretsPath)
}

func TestResolveMissingHome(t *testing.T) {
	t.Setenv("HOME", "")

	layout := Resolve("trustee", discardLogger())

	assert.Equal(t, filepath.Join(".", ".trustee"), layout.Home)
	assert.Equal(t, "trustee.toml", layout.ConfigFileName)
}
