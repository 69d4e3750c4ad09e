// Package agent hands the resolved configuration to the agent runtime. The
// runtime itself is an external program (the ABK CLI); this package only
// implements the handoff boundary: serialize the merged document, inject the
// secret mapping and build metadata, and transfer control.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/trusteehq/trustee/interfaces"
)

// DefaultCommand is the runtime command used when the merged configuration
// does not name one under [runtime].
const DefaultCommand = "abk"

// Environment variables set for the runtime process.
const (
	EnvConfigPath   = "TRUSTEE_CONFIG"
	EnvBuildCommit  = "TRUSTEE_BUILD_COMMIT"
	EnvBuildDate    = "TRUSTEE_BUILD_DATE"
	EnvBuildProfile = "TRUSTEE_BUILD_PROFILE"
)

// ExecRuntime runs the agent runtime as a child process, inheriting stdio.
type ExecRuntime struct {
	log *slog.Logger
}

// NewExecRuntime creates the exec-based runtime handoff.
func NewExecRuntime(log *slog.Logger) *ExecRuntime {
	return &ExecRuntime{log: log}
}

// Run writes the merged configuration document to a private temp file and
// starts the runtime command with the secret mapping and build metadata in
// its environment. It blocks until the runtime exits.
func (r *ExecRuntime) Run(ctx context.Context, resolved interfaces.ResolvedConfiguration, build interfaces.BuildInfo) error {
	command, args := runtimeCommand(resolved.Config)

	dir, err := os.MkdirTemp("", "trustee-")
	if err != nil {
		return fmt.Errorf("failed to create runtime config dir: %w", err)
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte(resolved.Config), 0600); err != nil {
		return fmt.Errorf("failed to write runtime config: %w", err)
	}

	env := os.Environ()
	for key, value := range resolved.Secrets {
		env = append(env, key+"="+value)
	}
	env = append(env,
		EnvConfigPath+"="+configPath,
		EnvBuildCommit+"="+build.Commit,
		EnvBuildDate+"="+build.Date,
		EnvBuildProfile+"="+build.Profile,
	)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	r.log.Info("Starting agent runtime",
		slog.String("command", command),
		slog.String("config", configPath))

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("agent runtime failed: %w", err)
	}
	return nil
}

// runtimeCommand extracts the runtime command and arguments from the merged
// configuration's [runtime] table, falling back to DefaultCommand. The
// document was produced by the merger, so a decode failure here only means
// falling back to defaults.
func runtimeCommand(config string) (string, []string) {
	var doc struct {
		Runtime struct {
			Command string   `toml:"command"`
			Args    []string `toml:"args"`
		} `toml:"runtime"`
	}
	if _, err := toml.Decode(config, &doc); err != nil || doc.Runtime.Command == "" {
		return DefaultCommand, nil
	}
	return doc.Runtime.Command, doc.Runtime.Args
}
