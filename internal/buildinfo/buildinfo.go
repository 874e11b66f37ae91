// Package buildinfo holds build-time variables injected via ldflags.
package buildinfo

// Set with -ldflags "-X github.com/go-ports/sebas/internal/buildinfo.Version=...".
// Version is reported by `sebas --version` and the MCP server handshake.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)
