package cli

import (
	"log/slog"

	"github.com/vigile-dev/vigile-mcp/internal/client"
	"github.com/vigile-dev/vigile-mcp/internal/config"
	"github.com/vigile-dev/vigile-mcp/internal/report"
	"github.com/vigile-dev/vigile-mcp/internal/service"
	"github.com/vigile-dev/vigile-mcp/internal/telemetry"
	"github.com/vigile-dev/vigile-mcp/internal/version"
)

// Runtime carries what every command needs, built once by the root command.
type Runtime struct {
	Config *config.Config
	// APIBase is the validated registry origin.
	APIBase string
	Logger  *slog.Logger
}

var current *Runtime

// SetRuntime installs the runtime used by the commands in this package.
func SetRuntime(rt *Runtime) {
	current = rt
}

func currentRuntime() (*Runtime, error) {
	if current == nil {
		return nil, errRuntimeNotInitialized
	}
	return current, nil
}

// NewTrustService wires the registry client and the trust service. A nil
// metrics disables instrumentation.
func (rt *Runtime) NewTrustService(metrics *telemetry.Metrics) service.TrustService {
	c := client.New(rt.APIBase, rt.Config.APIKey,
		client.WithTimeout(rt.Config.HTTPTimeout),
		client.WithUserAgent(version.UserAgent()),
		client.WithLogger(rt.Logger),
		client.WithMetrics(metrics),
	)
	return service.NewTrustService(c, report.NewRenderer(rt.Config.WebURL), rt.Logger)
}
