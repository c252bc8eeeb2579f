// Package client talks to the Vigile registry HTTP API.
//
// Every call returns a *Response, never an error: HTTP error statuses are
// reported through Response.Status and transport failures are reduced to a
// safe, fixed detail message so that hostnames, ports and paths from the
// underlying error never reach the calling agent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vigile-dev/vigile-mcp/internal/models"
	"github.com/vigile-dev/vigile-mcp/internal/telemetry"
	"github.com/vigile-dev/vigile-mcp/internal/version"
)

const (
	// DefaultBaseURL is the production registry API.
	DefaultBaseURL = "https://api.vigile.dev"

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 10 << 20
)

// Route templates, used as low-cardinality metric labels.
const (
	routeServer        = "/api/v1/registry/{name}"
	routeSkill         = "/api/v1/registry/skills/{name}"
	routeScanSkill     = "/api/v1/scan/skill"
	routeSearchServers = "/api/v1/search/"
	routeSearchSkills  = "/api/v1/search/skills"
)

// Client is a lightweight client for the registry API.
type Client struct {
	BaseURL    string
	httpClient *http.Client
	token      string
	userAgent  string
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the client identifier header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for local diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records every request in the given instruments.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New constructs a client with explicit baseURL and bearer token. An empty
// token sends no Authorization header.
func New(baseURL, token string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: version.UserAgent(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is the uniform outcome of a registry call.
type Response struct {
	// OK is true for 2xx statuses.
	OK bool
	// Status is the HTTP status, or 0 when no response was received.
	Status int
	// Data is the JSON body, nil when absent or not valid JSON.
	Data json.RawMessage
}

// Detail returns the registry's "detail" message when it is a string.
func (r *Response) Detail() string {
	if r == nil || len(r.Data) == 0 {
		return ""
	}
	var body models.ErrorBody
	if err := json.Unmarshal(r.Data, &body); err != nil {
		return ""
	}
	detail, _ := body.Detail.(string)
	return detail
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Data) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(r.Data, v)
}

// Fetch performs a single request against path (which may carry a query
// string). body, when non-nil, is encoded as JSON.
func (c *Client) Fetch(ctx context.Context, method, path string, body any) *Response {
	return c.do(ctx, method, path, path, body)
}

// GetServer looks up an MCP server entry.
func (c *Client) GetServer(ctx context.Context, name string) *Response {
	return c.do(ctx, http.MethodGet, routeServer, "/api/v1/registry/"+url.PathEscape(name), nil)
}

// GetSkill looks up an agent skill entry.
func (c *Client) GetSkill(ctx context.Context, name string) *Response {
	return c.do(ctx, http.MethodGet, routeSkill, "/api/v1/registry/skills/"+url.PathEscape(name), nil)
}

// ScanSkill submits raw skill content for scanning.
func (c *Client) ScanSkill(ctx context.Context, req models.ScanRequest) *Response {
	return c.do(ctx, http.MethodPost, routeScanSkill, routeScanSkill, req)
}

// SearchServers searches MCP servers by keyword.
func (c *Client) SearchServers(ctx context.Context, query string, limit int) *Response {
	return c.do(ctx, http.MethodGet, routeSearchServers, routeSearchServers+"?"+searchQuery(query, limit), nil)
}

// SearchSkills searches agent skills by keyword.
func (c *Client) SearchSkills(ctx context.Context, query string, limit int) *Response {
	return c.do(ctx, http.MethodGet, routeSearchSkills, routeSearchSkills+"?"+searchQuery(query, limit), nil)
}

func searchQuery(query string, limit int) string {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	return q.Encode()
}

func (c *Client) newRequest(ctx context.Context, method, pathWithQuery string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+pathWithQuery, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, route, pathWithQuery string, body any) *Response {
	start := time.Now()

	req, err := c.newRequest(ctx, method, pathWithQuery, body)
	if err != nil {
		return c.failed(ctx, method, route, err, start)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.failed(ctx, method, route, err, start)
	}
	defer func() { _ = resp.Body.Close() }()

	out := &Response{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Debug("failed to read registry response body", "route", route, "status", resp.StatusCode, "error", err)
	} else if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && json.Valid(trimmed) {
		out.Data = json.RawMessage(trimmed)
	}

	c.metrics.RecordAPIRequest(ctx, method, route, resp.StatusCode, "", time.Since(start))
	c.logger.Debug("registry request", "method", method, "route", route, "status", resp.StatusCode, "elapsed", time.Since(start))
	return out
}

// failed turns a transport error into the uniform outcome. The raw error stays
// in the local debug log.
func (c *Client) failed(ctx context.Context, method, route string, err error, start time.Time) *Response {
	terr := newTransportError(err)
	c.metrics.RecordAPIRequest(ctx, method, route, 0, terr.Kind.String(), time.Since(start))
	c.logger.Debug("registry request failed", "method", method, "route", route, "kind", terr.Kind.String(), "error", err)

	data, _ := json.Marshal(models.ErrorBody{Detail: terr.SafeMessage()})
	return &Response{OK: false, Status: 0, Data: data}
}
