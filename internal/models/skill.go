package models

// SkillEntry is a scanned agent skill (claude.md, .cursorrules, skill.md, ...)
// as returned by GET /api/v1/registry/skills/{name}.
type SkillEntry struct {
	Name           string    `json:"name"`
	TrustScore     float64   `json:"trust_score"`
	TrustLevel     string    `json:"trust_level"`
	Source         string    `json:"source"`
	FileType       string    `json:"file_type"`
	Platform       string    `json:"platform"`
	Description    string    `json:"description,omitempty"`
	Author         string    `json:"author,omitempty"`
	LastScanned    string    `json:"last_scanned,omitempty"`
	LatestFindings []Finding `json:"latest_findings,omitempty"`
}

// SkillHit is a single row of a skill search.
type SkillHit struct {
	Name       string  `json:"name"`
	TrustScore float64 `json:"trust_score"`
	TrustLevel string  `json:"trust_level"`
	Platform   string  `json:"platform"`
}
