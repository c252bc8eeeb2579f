// Package service implements the four trust operations on top of the
// registry client. Every outcome, including failures, is returned as a
// rendered Markdown report.
package service

import (
	"context"

	"github.com/vigile-dev/vigile-mcp/internal/client"
	"github.com/vigile-dev/vigile-mcp/internal/models"
)

// Search limits.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// RegistryClient is the part of *client.Client the service depends on.
type RegistryClient interface {
	GetServer(ctx context.Context, name string) *client.Response
	GetSkill(ctx context.Context, name string) *client.Response
	ScanSkill(ctx context.Context, req models.ScanRequest) *client.Response
	SearchServers(ctx context.Context, query string, limit int) *client.Response
	SearchSkills(ctx context.Context, query string, limit int) *client.Response
}

// TrustService defines the trust lookup operations
type TrustService interface {
	// CheckServer reports the trust score and findings of an MCP server
	CheckServer(ctx context.Context, name string) string
	// CheckSkill reports the trust score and findings of an agent skill
	CheckSkill(ctx context.Context, name string) string
	// ScanContent submits skill content for scanning and reports every finding
	ScanContent(ctx context.Context, content, fileType, name string) string
	// Search looks up servers and skills by keyword. limit <= 0 means the default
	Search(ctx context.Context, query string, limit int) string
}

// EffectiveLimit applies the search default and cap.
func EffectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	return min(limit, MaxSearchLimit)
}
