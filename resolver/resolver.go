// Package resolver sequences trustee's configuration resolution: local path
// computation, the optional remote fetch, fallback to local files, and the
// merge against embedded defaults. The output of a resolution is one merged
// configuration document and one secret mapping, handed to the agent runtime.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/trusteehq/trustee/confmerge"
	"github.com/trusteehq/trustee/envfile"
	"github.com/trusteehq/trustee/interfaces"
	"github.com/trusteehq/trustee/paths"
)

// bootstrapConfigDir holds the project-relative minimal configuration used by
// bootstrap mode.
const bootstrapConfigDir = "config"

// RemoteFetcher attempts the remote configuration path. A nil result means
// remote is absent or unavailable; fetch failures never surface as errors.
type RemoteFetcher interface {
	Fetch(ctx context.Context, secrets interfaces.SecretMap) *interfaces.RemoteBundle
}

// Orchestrator resolves the configuration and secrets for one process
// invocation and hands them to the agent runtime. It holds no state across
// resolutions.
type Orchestrator struct {
	log       *slog.Logger
	fetcher   RemoteFetcher
	runtime   interfaces.AgentRuntime
	agentName string
	build     interfaces.BuildInfo
}

// New creates an orchestrator for the named agent.
func New(log *slog.Logger, fetcher RemoteFetcher, runtime interfaces.AgentRuntime, agentName string, build interfaces.BuildInfo) *Orchestrator {
	return &Orchestrator{
		log:       log,
		fetcher:   fetcher,
		runtime:   runtime,
		agentName: agentName,
		build:     build,
	}
}

// Resolve performs a standard-mode resolution.
//
// Precedence: remote configuration is preferred whenever the remote fetch
// fully succeeds; otherwise the local config file is used. The final secret
// mapping starts from local secrets; remote secrets, when present, win
// per-key while local-only keys (including the remote connection parameters)
// survive.
//
// Errors wrapping interfaces.ErrNoConfiguration mean no usable configuration
// source exists and carry a user-directed remediation message; callers are
// expected to exit non-zero for those.
func (o *Orchestrator) Resolve(ctx context.Context) (interfaces.ResolvedConfiguration, error) {
	layout := paths.Resolve(o.agentName, o.log)

	configExists := fileExists(layout.ConfigPath)
	secretsExists := fileExists(layout.SecretsPath)
	if !configExists && !secretsExists {
		return interfaces.ResolvedConfiguration{}, fmt.Errorf(
			"%w: neither %s nor %s exists - run '%s init' to create an initial configuration",
			interfaces.ErrNoConfiguration, layout.ConfigPath, layout.SecretsPath, o.agentName)
	}

	localSecrets := make(interfaces.SecretMap)
	if secretsExists {
		secrets, err := envfile.Load(layout.SecretsPath)
		if err != nil {
			return interfaces.ResolvedConfiguration{}, err
		}
		localSecrets = secrets
	}

	var userConfig string
	finalSecrets := localSecrets

	if bundle := o.fetcher.Fetch(ctx, localSecrets); bundle != nil {
		userConfig = bundle.Config
		finalSecrets = localSecrets.Overlay(bundle.Secrets)
	} else {
		data, err := os.ReadFile(layout.ConfigPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return interfaces.ResolvedConfiguration{}, fmt.Errorf(
				"%w: remote configuration unavailable and %s does not exist - run '%s init' to create an initial configuration",
				interfaces.ErrNoConfiguration, layout.ConfigPath, o.agentName)
		case err != nil:
			return interfaces.ResolvedConfiguration{}, fmt.Errorf("failed to read config file %s: %w", layout.ConfigPath, err)
		}
		o.log.Info("Using local configuration", slog.String("path", layout.ConfigPath))
		userConfig = string(data)
	}

	merged, err := confmerge.Merge(DefaultConfig, userConfig)
	if err != nil {
		return interfaces.ResolvedConfiguration{}, err
	}

	return interfaces.ResolvedConfiguration{Config: merged, Secrets: finalSecrets}, nil
}

// ResolveBootstrap performs a bootstrap-mode resolution: the project-relative
// minimal config document (empty when absent) merged against the embedded
// default, with an empty secret mapping. It lets a fresh environment start
// without any pre-existing per-user state.
func (o *Orchestrator) ResolveBootstrap(_ context.Context) (interfaces.ResolvedConfiguration, error) {
	bootstrapPath := filepath.Join(bootstrapConfigDir, o.agentName+".toml")

	var userConfig string
	data, err := os.ReadFile(bootstrapPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		o.log.Info("Bootstrap config absent, using embedded defaults only",
			slog.String("path", bootstrapPath))
	case err != nil:
		return interfaces.ResolvedConfiguration{}, fmt.Errorf("failed to read bootstrap config %s: %w", bootstrapPath, err)
	default:
		userConfig = string(data)
	}

	merged, err := confmerge.Merge(DefaultConfig, userConfig)
	if err != nil {
		return interfaces.ResolvedConfiguration{}, err
	}

	return interfaces.ResolvedConfiguration{Config: merged, Secrets: make(interfaces.SecretMap)}, nil
}

// Handoff passes the resolved configuration to the agent runtime. Everything
// after this call is the runtime's responsibility.
func (o *Orchestrator) Handoff(ctx context.Context, resolved interfaces.ResolvedConfiguration) error {
	o.log.Info("Handing off to agent runtime",
		slog.String("agent", o.agentName),
		slog.Int("secrets", len(resolved.Secrets)))
	return o.runtime.Run(ctx, resolved, o.build)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
