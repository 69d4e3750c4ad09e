package resolver

import _ "embed"

// DefaultConfig is the embedded default configuration document. It is loaded
// once at process start and is always the base layer of a merge, never the
// override.
//
//go:embed default.toml
var DefaultConfig string
