package models

// Fixed attribution for scans submitted through this server.
const (
	ScanPlatform        = "claude-code"
	ScanSource          = "mcp-scan"
	DefaultScanFileType = "skill.md"
	DefaultScanName     = "inline-scan"
)

// ScanRequest is the body of POST /api/v1/scan/skill.
type ScanRequest struct {
	SkillName string `json:"skill_name"`
	Content   string `json:"content"`
	FileType  string `json:"file_type"`
	Platform  string `json:"platform"`
	Source    string `json:"source"`
}

// NewScanRequest fills in the defaults for an inline scan.
func NewScanRequest(content, fileType, name string) ScanRequest {
	if fileType == "" {
		fileType = DefaultScanFileType
	}
	if name == "" {
		name = DefaultScanName
	}
	return ScanRequest{
		SkillName: name,
		Content:   content,
		FileType:  fileType,
		Platform:  ScanPlatform,
		Source:    ScanSource,
	}
}

// ScanResult is the registry verdict for submitted content. Findings are
// complete, unlike the latest_findings of registry entries.
type ScanResult struct {
	SkillName     string    `json:"skill_name"`
	TrustScore    float64   `json:"trust_score"`
	TrustLevel    string    `json:"trust_level"`
	FileType      string    `json:"file_type"`
	FindingsCount int       `json:"findings_count"`
	CriticalCount int       `json:"critical_count"`
	HighCount     int       `json:"high_count"`
	Findings      []Finding `json:"findings"`
}
