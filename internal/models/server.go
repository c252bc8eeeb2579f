// Package models holds the Vigile registry payloads exchanged over the HTTP API.
// All of them are request scoped; nothing here is persisted.
package models

// Trust levels produced by the registry. The set is open: unknown values
// still have to render.
const (
	TrustLevelTrusted   = "trusted"
	TrustLevelCaution   = "caution"
	TrustLevelRisky     = "risky"
	TrustLevelDangerous = "dangerous"
	TrustLevelUnknown   = "unknown"
)

// Finding severities that get distinct markers. Anything else is rendered
// with the default marker.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
)

// ServerEntry is a scanned MCP server as returned by GET /api/v1/registry/{name}.
type ServerEntry struct {
	Name            string    `json:"name"`
	TrustScore      float64   `json:"trust_score"`
	TrustLevel      string    `json:"trust_level"`
	Source          string    `json:"source"`
	Description     string    `json:"description,omitempty"`
	Maintainer      string    `json:"maintainer,omitempty"`
	DownloadsWeekly int64     `json:"downloads_weekly,omitempty"`
	Stars           int64     `json:"stars,omitempty"`
	LastScanned     string    `json:"last_scanned,omitempty"`
	LatestFindings  []Finding `json:"latest_findings,omitempty"`
}

// Finding is a single security or quality issue reported against an artifact.
type Finding struct {
	Severity       string `json:"severity"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Evidence       string `json:"evidence,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

// ServerHit is a single row of a server search.
type ServerHit struct {
	Name       string  `json:"name"`
	TrustScore float64 `json:"trust_score"`
	TrustLevel string  `json:"trust_level"`
	Source     string  `json:"source"`
}

// ErrorBody is the error envelope used by the registry API.
type ErrorBody struct {
	Detail any `json:"detail"`
}
