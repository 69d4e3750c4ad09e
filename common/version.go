package common

import (
	"fmt"
	"runtime"

	"github.com/trusteehq/trustee/interfaces"
)

// Build-time metadata, injected via -ldflags:
//
//	go build -ldflags "-X github.com/trusteehq/trustee/common.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/trusteehq/trustee/common.Date=$(date -u +%Y-%m-%d) \
//	  -X github.com/trusteehq/trustee/common.Profile=release"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
	Profile = "debug"
)

// Build returns the build metadata handed to the agent runtime.
func Build() interfaces.BuildInfo {
	return interfaces.BuildInfo{
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Profile:   Profile,
	}
}

// VersionString formats the metadata for the version command.
func VersionString() string {
	return fmt.Sprintf("trustee %s (commit %s, built %s, %s, %s)",
		Version, Commit, Date, runtime.Version(), Profile)
}
