// Package main (cmd/trustee) implements the trustee bootstrap binary. It
// resolves the agent's runtime configuration and secret material, then hands
// control to the agent runtime.
//
// Resolution is layered and fallback-aware. The embedded default document is
// always the merge base. On top of it, trustee prefers configuration fetched
// from remote encrypted object storage whenever the local secrets file
// carries a complete set of GETMYCONFIG_* connection parameters; otherwise it
// falls back to the local config file under ~/.<agent>/config/. Secret
// mappings combine local and remote sources, with remote values winning
// per-key and local-only keys surviving.
//
// Two modes exist:
//
//   - Standard (default action): requires pre-existing local state. When
//     neither the local config file nor the local secrets file exists and
//     remote storage is unreachable or unconfigured, the process prints a
//     remediation message and exits non-zero.
//
//   - Bootstrap (trustee init): reads the project-relative minimal config
//     (config/<agent>.toml, empty when absent), merges it against the
//     embedded defaults, seeds the per-user state and starts the agent with
//     an empty secret mapping. This lets a fresh environment be initialized
//     without any pre-existing per-user files.
//
// Remote storage is a convenience layer, not a dependency: any remote
// failure degrades to the local path and is never fatal on its own.
package main
