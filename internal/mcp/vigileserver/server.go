// Package vigileserver exposes the trust service as MCP tools.
package vigileserver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vigile-dev/vigile-mcp/internal/service"
	"github.com/vigile-dev/vigile-mcp/internal/telemetry"
	"github.com/vigile-dev/vigile-mcp/internal/version"
)

// Tool names.
const (
	ToolCheckServer = "vigile_check_server"
	ToolCheckSkill  = "vigile_check_skill"
	ToolScanContent = "vigile_scan_content"
	ToolSearch      = "vigile_search"
)

// Input bounds enforced by the tool schemas.
const (
	MaxNameLength     = 500
	MaxContentLength  = 500_000
	MaxFileTypeLength = 50
	MaxQueryLength    = 200
)

// Option configures the MCP server.
type Option func(*options)

type options struct {
	metrics *telemetry.Metrics
}

// WithMetrics records every tool call.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewServer constructs an MCP server that exposes the read-only trust lookups
// and the inline scan. Arguments are validated against each tool's input
// schema before the trust service is called.
func NewServer(trust service.TrustService, opts ...Option) *mcp.Server {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "vigile",
		Version: version.Version,
	}, &mcp.ServerOptions{
		HasTools: true,
	})
	if o.metrics != nil {
		server.AddReceivingMiddleware(instrumentToolCalls(o.metrics))
	}

	addLookupTools(server, trust)
	addScanTool(server, trust)
	addSearchTool(server, trust)

	return server
}

type nameArgs struct {
	Name string `json:"name"`
}

type scanArgs struct {
	Content  string `json:"content"`
	FileType string `json:"file_type,omitempty"`
	Name     string `json:"name,omitempty"`
}

type searchArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

func addLookupTools(server *mcp.Server, trust service.TrustService) {
	mcp.AddTool(server, &mcp.Tool{
		Name: ToolCheckServer,
		Description: "Look up the trust score and security findings for an MCP server in the Vigile registry. " +
			"Returns trust score (0-100), trust level, findings summary, and a link to the full report.",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"name": stringSchema(1, MaxNameLength,
				"MCP server name or npm package name (e.g., '@anthropic/mcp-server-filesystem')"),
		}, "name"),
		Annotations: readOnly("Check MCP server trust"),
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args nameArgs) (*mcp.CallToolResult, any, error) {
		return textResult(trust.CheckServer(ctx, args.Name)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name: ToolCheckSkill,
		Description: "Look up the trust score for an agent skill (claude.md, .cursorrules, skill.md, etc.) in the Vigile registry. " +
			"Returns trust score, trust level, findings summary.",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"name": stringSchema(1, MaxNameLength, "Agent skill name (e.g., 'react-component-builder')"),
		}, "name"),
		Annotations: readOnly("Check agent skill trust"),
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args nameArgs) (*mcp.CallToolResult, any, error) {
		return textResult(trust.CheckSkill(ctx, args.Name)), nil, nil
	})
}

func addScanTool(server *mcp.Server, trust service.TrustService) {
	mcp.AddTool(server, &mcp.Tool{
		Name: ToolScanContent,
		Description: "Scan the content of an agent skill file for security issues. " +
			"Submit raw content from a claude.md, .cursorrules, skill.md, or similar file for analysis. " +
			"Returns trust score and detailed findings.",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"content":   stringSchema(1, MaxContentLength, "The raw text content to scan (max 500KB)"),
			"file_type": withDefault(stringSchema(0, MaxFileTypeLength, "File type: skill.md, claude.md, cursorrules, mdc-rule (default: skill.md)"), `"skill.md"`),
			"name":      stringSchema(0, MaxNameLength, "Optional name for the scan result"),
		}, "content"),
		Annotations: &mcp.ToolAnnotations{
			Title:           "Scan skill content",
			DestructiveHint: ptr(false),
			OpenWorldHint:   ptr(true),
		},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args scanArgs) (*mcp.CallToolResult, any, error) {
		return textResult(trust.ScanContent(ctx, args.Content, args.FileType, args.Name)), nil, nil
	})
}

func addSearchTool(server *mcp.Server, trust service.TrustService) {
	mcp.AddTool(server, &mcp.Tool{
		Name: ToolSearch,
		Description: "Search the Vigile registry for MCP servers and agent skills by keyword. " +
			"Returns matching entries with trust scores. " +
			"Use this when you need to find servers by description or capability.",
		InputSchema: objectSchema(map[string]*jsonschema.Schema{
			"query": stringSchema(1, MaxQueryLength, "Search query (e.g., 'filesystem', 'database', 'code execution')"),
			"limit": withDefault(&jsonschema.Schema{
				Type:        "integer",
				Description: "Max results to return (default: 10, max: 50)",
				Minimum:     ptr(1.0),
				Maximum:     ptr(float64(service.MaxSearchLimit)),
			}, "10"),
		}, "query"),
		Annotations: readOnly("Search the Vigile registry"),
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, any, error) {
		return textResult(trust.Search(ctx, args.Query, args.Limit)), nil, nil
	})
}

func objectSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func stringSchema(minLen, maxLen int, description string) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        "string",
		Description: description,
		MaxLength:   ptr(maxLen),
	}
	if minLen > 0 {
		s.MinLength = ptr(minLen)
	}
	return s
}

func withDefault(s *jsonschema.Schema, raw string) *jsonschema.Schema {
	s.Default = json.RawMessage(raw)
	return s
}

func readOnly(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:          title,
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  ptr(true),
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// instrumentToolCalls records the outcome and latency of every tools/call.
// Calls rejected by schema validation never reach the handler and are
// recorded as rejected.
func instrumentToolCalls(metrics *telemetry.Metrics) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			call, ok := req.(*mcp.CallToolRequest)
			if !ok || call.Params == nil {
				return next(ctx, method, req)
			}

			start := time.Now()
			res, err := next(ctx, method, req)

			outcome := telemetry.OutcomeOK
			if result, _ := res.(*mcp.CallToolResult); err != nil || (result != nil && result.IsError) {
				outcome = telemetry.OutcomeRejected
			}
			metrics.RecordToolCall(ctx, call.Params.Name, outcome, time.Since(start))
			return res, err
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
