// Package version holds build metadata injected at link time.
package version

// Overridden via -ldflags "-X github.com/vigile-dev/vigile-mcp/internal/version.Version=..."
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// UserAgent is the client identifier sent with every registry request.
func UserAgent() string {
	return "vigile-mcp/" + Version
}
