package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/vigile-dev/vigile-mcp/internal/mcp/vigileserver"
	"github.com/vigile-dev/vigile-mcp/internal/server"
	"github.com/vigile-dev/vigile-mcp/internal/telemetry"
	"github.com/vigile-dev/vigile-mcp/internal/version"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions select the transport. Empty fields fall back to the config.
type ServeOptions struct {
	HTTPAddress    string
	MetricsAddress string
}

var serveOpts ServeOptions

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Runs the Vigile MCP server. The server speaks MCP over stdio unless --http is given,
in which case it serves Streamable HTTP at /mcp together with /healthz and /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return RunServe(cmd.Context(), serveOpts)
	},
}

func init() {
	ServeCmd.Flags().StringVar(&serveOpts.HTTPAddress, "http", "", "Serve Streamable HTTP on this address (e.g. :8080) instead of stdio")
	ServeCmd.Flags().StringVar(&serveOpts.MetricsAddress, "metrics-addr", "", "In stdio mode, serve /metrics and /healthz on this address")
}

// RunServe runs the MCP server until ctx is cancelled or the client disconnects.
func RunServe(ctx context.Context, opts ServeOptions) error {
	rt, err := currentRuntime()
	if err != nil {
		return err
	}
	httpAddr := firstNonEmpty(opts.HTTPAddress, rt.Config.HTTPAddress)
	metricsAddr := firstNonEmpty(opts.MetricsAddress, rt.Config.MetricsAddress)

	shutdownMetrics, metrics, err := telemetry.InitMetrics(version.Version)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownMetrics(sctx); err != nil {
			rt.Logger.Warn("failed to shut down metrics", "error", err)
		}
	}()

	mcpServer := vigileserver.NewServer(rt.NewTrustService(metrics), vigileserver.WithMetrics(metrics))

	if httpAddr != "" {
		return serveHTTP(ctx, rt.Logger, server.New(httpAddr, mcpServer, metrics, rt.Logger))
	}

	if metricsAddr != "" {
		metricsServer := server.New(metricsAddr, nil, metrics, rt.Logger)
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				rt.Logger.Error("metrics server failed", "address", metricsAddr, "error", err)
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = metricsServer.Shutdown(sctx)
		}()
	}

	rt.Logger.Info("MCP server running on stdio", "version", version.Version, "api", rt.APIBase)
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server stopped: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, logger *slog.Logger, s *server.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
