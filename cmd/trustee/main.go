package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/trusteehq/trustee/agent"
	"github.com/trusteehq/trustee/cmd/flags"
	"github.com/trusteehq/trustee/common"
	"github.com/trusteehq/trustee/interfaces"
	"github.com/trusteehq/trustee/paths"
	"github.com/trusteehq/trustee/resolver"
	"github.com/trusteehq/trustee/storage"
)

func main() {
	app := &cli.App{
		Name:   "trustee",
		Usage:  "a general-purpose agent that can morph into different specialized agents",
		Flags:  flags.CLIFlags,
		Action: runStandard,
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "initialize a fresh environment and start the agent with bootstrap configuration",
				Flags:  flags.CLIFlags,
				Action: runInit,
			},
			{
				Name:  "version",
				Usage: "print build information",
				Action: func(cCtx *cli.Context) error {
					fmt.Println(common.VersionString())
					return nil
				},
			},
			{
				Name:    "hello",
				Aliases: []string{"hi"},
				Hidden:  true,
				Action: func(cCtx *cli.Context) error {
					fmt.Println("Hello!")
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newOrchestrator wires the resolution pipeline for one invocation.
func newOrchestrator(cCtx *cli.Context, logger *slog.Logger) *resolver.Orchestrator {
	return resolver.New(
		logger,
		storage.NewFetcher(logger),
		agent.NewExecRuntime(logger),
		cCtx.String(flags.AgentNameFlag.Name),
		common.Build(),
	)
}

// runStandard resolves configuration in standard mode and hands off to the
// agent runtime. The only directly fatal condition is the complete absence of
// a usable configuration source.
func runStandard(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	orch := newOrchestrator(cCtx, logger)

	resolved, err := orch.Resolve(cCtx.Context)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoConfiguration) {
			return cli.Exit(err.Error(), 1)
		}
		return err
	}

	return orch.Handoff(cCtx.Context, resolved)
}

// runInit resolves configuration in bootstrap mode, seeds the per-user state
// so subsequent standard runs find local configuration, and hands off.
func runInit(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	orch := newOrchestrator(cCtx, logger)

	resolved, err := orch.ResolveBootstrap(cCtx.Context)
	if err != nil {
		return err
	}

	if err := seedLocalState(logger, cCtx.String(flags.AgentNameFlag.Name), resolved); err != nil {
		return err
	}

	return orch.Handoff(cCtx.Context, resolved)
}

// secretsTemplate seeds a fresh secrets file with the recognized keys
// commented out.
const secretsTemplate = `# Secrets for the trustee agent. KEY=VALUE per line.
#
# Remote configuration storage (all five required to enable):
# GETMYCONFIG_ENDPOINT=s3.example.com
# GETMYCONFIG_ACCESS_KEY=
# GETMYCONFIG_SECRET_KEY=
# GETMYCONFIG_BUCKET=
# GETMYCONFIG_ENCRYPTION_KEY=
# GETMYCONFIG_REGION=
`

// seedLocalState writes the bootstrap configuration and an empty secrets file
// into the agent home. Existing files are never overwritten.
func seedLocalState(logger *slog.Logger, agentName string, resolved interfaces.ResolvedConfiguration) error {
	layout := paths.Resolve(agentName, logger)

	if err := os.MkdirAll(layout.Home, 0700); err != nil {
		return fmt.Errorf("failed to create agent home %s: %w", layout.Home, err)
	}

	if _, err := os.Stat(layout.ConfigPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(layout.ConfigPath), 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(layout.ConfigPath, []byte(resolved.Config), 0600); err != nil {
			return fmt.Errorf("failed to write initial config: %w", err)
		}
		logger.Info("Wrote initial configuration", slog.String("path", layout.ConfigPath))
	}

	if _, err := os.Stat(layout.SecretsPath); os.IsNotExist(err) {
		if err := os.WriteFile(layout.SecretsPath, []byte(secretsTemplate), 0600); err != nil {
			return fmt.Errorf("failed to write initial secrets file: %w", err)
		}
		logger.Info("Wrote initial secrets file", slog.String("path", layout.SecretsPath))
	}

	return nil
}
