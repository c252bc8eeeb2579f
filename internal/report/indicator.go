// Package report renders registry payloads into the Markdown text returned to
// agents and printed by the CLI.
package report

import (
	"strings"

	"github.com/vigile-dev/vigile-mcp/internal/models"
)

// TrustIndicator maps a trust level to its marker. Unknown levels get the
// neutral marker.
func TrustIndicator(level string) string {
	switch level {
	case models.TrustLevelTrusted:
		return "🟢"
	case models.TrustLevelCaution:
		return "🟡"
	case models.TrustLevelRisky:
		return "🟠"
	case models.TrustLevelDangerous:
		return "🔴"
	default:
		return "⚪"
	}
}

// SeverityIndicator maps a finding severity to its marker.
func SeverityIndicator(severity string) string {
	switch severity {
	case models.SeverityCritical:
		return "🔴"
	case models.SeverityHigh:
		return "🟠"
	default:
		return "🟡"
	}
}

// SeverityTag is the upper-cased severity label.
func SeverityTag(severity string) string {
	if severity == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(severity)
}
