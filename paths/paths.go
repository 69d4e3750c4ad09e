// Package paths computes the local filesystem locations of an agent's
// configuration and secrets files.
package paths

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/trusteehq/trustee/envfile"
	"github.com/trusteehq/trustee/interfaces"
)

const (
	// DefaultSecretsFileName is both the default secrets file name and the
	// fixed bootstrap location consulted for file-name overrides.
	DefaultSecretsFileName = ".env"

	// configSubdir is the directory under the agent home holding config files.
	configSubdir = "config"
)

// Layout describes where an agent's local configuration and secrets live.
type Layout struct {
	Home            string
	ConfigPath      string
	SecretsPath     string
	ConfigFileName  string
	SecretsFileName string
}

// Resolve computes the file layout for the named agent.
//
// The agent home is <HOME>/.<agentName>; when the home directory cannot be
// determined the current directory is used instead. That is a degraded but
// non-fatal condition.
//
// File names default to <agentName>.toml and .env. Before finalizing, the
// secrets file at the *default* location is consulted for the two override
// keys; overrides affect the config file name and the secrets file name used
// by subsequent loads, never the bootstrap file itself.
func Resolve(agentName string, log *slog.Logger) Layout {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		log.Warn("Home directory not set, falling back to current directory", "err", err)
		home = "."
	}

	agentHome := filepath.Join(home, "."+agentName)
	configFileName := agentName + ".toml"
	secretsFileName := DefaultSecretsFileName

	bootstrapPath := filepath.Join(agentHome, DefaultSecretsFileName)
	secrets, err := envfile.Load(bootstrapPath)
	switch {
	case err == nil:
		if name := secrets[interfaces.ConfigFileKey]; name != "" {
			log.Debug("Config file name overridden",
				slog.String("key", interfaces.ConfigFileKey),
				slog.String("name", name))
			configFileName = name
		}
		if name := secrets[interfaces.SecretsFileKey]; name != "" {
			log.Debug("Secrets file name overridden",
				slog.String("key", interfaces.SecretsFileKey),
				slog.String("name", name))
			secretsFileName = name
		}
	case !errors.Is(err, os.ErrNotExist):
		log.Warn("Could not read bootstrap secrets file",
			slog.String("path", bootstrapPath), "err", err)
	}

	return Layout{
		Home:            agentHome,
		ConfigPath:      filepath.Join(agentHome, configSubdir, configFileName),
		SecretsPath:     filepath.Join(agentHome, secretsFileName),
		ConfigFileName:  configFileName,
		SecretsFileName: secretsFileName,
	}
}
