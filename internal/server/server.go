// Package server serves the MCP endpoint over Streamable HTTP together with
// health and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/cors"

	"github.com/vigile-dev/vigile-mcp/internal/telemetry"
	"github.com/vigile-dev/vigile-mcp/internal/version"
)

// Paths served by Server.
const (
	MCPPath     = "/mcp"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

// Server is the HTTP listener for the MCP endpoint.
type Server struct {
	addr   string
	mux    *http.ServeMux
	server *http.Server
	logger *slog.Logger
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// New builds a server listening on addr. A nil mcpServer serves only the
// health and metrics endpoints, which is how stdio mode exposes metrics.
func New(addr string, mcpServer *mcp.Server, metrics *telemetry.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{addr: addr, mux: http.NewServeMux(), logger: logger}

	s.mux.HandleFunc("GET "+HealthPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: version.Version})
	})
	s.mux.Handle("GET "+MetricsPath, metrics.PrometheusHandler())
	if mcpServer != nil {
		s.mux.Handle(MCPPath, mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
			return mcpServer
		}, &mcp.StreamableHTTPOptions{}))
	}

	// MCP clients in browsers need the session header exposed.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Type", "Content-Length", "Mcp-Session-Id"},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	s.server = &http.Server{
		Addr:              addr,
		Handler:           corsHandler.Handler(s.mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the full handler chain.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins listening for incoming HTTP requests
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "address", s.addr, "mcp", MCPPath, "metrics", MetricsPath)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
