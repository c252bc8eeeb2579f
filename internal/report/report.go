package report

import (
	"fmt"
	"strings"

	"github.com/vigile-dev/vigile-mcp/internal/models"
	"github.com/vigile-dev/vigile-mcp/pkg/printer"
)

// MaxEntryFindings caps the findings listed in a registry entry report.
const MaxEntryFindings = 5

// Renderer turns registry payloads into Markdown reports.
type Renderer struct {
	Links Links
}

// NewRenderer returns a Renderer whose links point at webURL.
func NewRenderer(webURL string) *Renderer {
	return &Renderer{Links: NewLinks(webURL)}
}

// ServerNotFound is the report for an MCP server missing from the registry.
func (r *Renderer) ServerNotFound(name string) string {
	return join(
		"## MCP Server: "+name,
		"",
		"**Not found in the Vigile registry.**",
		"",
		"This server hasn't been scanned yet. You can:",
		"- Submit it for scanning at "+r.Links.Home(),
		"- Run `npx vigile-scan "+name+"` to scan it locally",
		"",
		"⚠️ An unscanned server should be treated with caution.",
	)
}

// SkillNotFound is the report for an agent skill missing from the registry.
func (r *Renderer) SkillNotFound(name string) string {
	return join(
		"## Agent Skill: "+name,
		"",
		"**Not found in the Vigile registry.**",
		"",
		"This skill hasn't been scanned yet. You can submit its content for",
		"scanning using the `vigile_scan_content` tool.",
		"",
		"⚠️ An unscanned skill should be reviewed manually before use.",
	)
}

// QuotaExceeded is the report for a rejected scan. An empty detail gets the
// generic monthly-limit message.
func (r *Renderer) QuotaExceeded(detail string) string {
	if detail == "" {
		detail = "You've reached your monthly scan limit."
	}
	return join(
		"**Scan quota exceeded.**",
		"",
		detail,
		"",
		"Upgrade your plan at "+r.Links.Pricing()+" for more scans.",
	)
}

// Server renders a registry entry for an MCP server.
func (r *Renderer) Server(entry models.ServerEntry) string {
	lines := []string{
		fmt.Sprintf("## %s %s", TrustIndicator(entry.TrustLevel), entry.Name),
		"",
		"**Trust Score:** " + printer.FormatScore(entry.TrustScore),
		"**Trust Level:** " + entry.TrustLevel,
		"**Source:** " + entry.Source,
	}
	if entry.Description != "" {
		lines = append(lines, "**Description:** "+entry.Description)
	}
	if entry.Maintainer != "" {
		lines = append(lines, "**Maintainer:** "+entry.Maintainer)
	}
	if entry.DownloadsWeekly != 0 {
		lines = append(lines, "**Weekly Downloads:** "+printer.FormatCount(entry.DownloadsWeekly))
	}
	if entry.Stars != 0 {
		lines = append(lines, "**GitHub Stars:** "+printer.FormatCount(entry.Stars))
	}
	if entry.LastScanned != "" {
		lines = append(lines, "**Last Scanned:** "+printer.FormatDate(entry.LastScanned))
	}
	lines = appendFindingSummary(lines, entry.LatestFindings)
	lines = append(lines, "", fullReport(r.Links.Server(entry.Name)))
	return join(lines...)
}

// Skill renders a registry entry for an agent skill.
func (r *Renderer) Skill(entry models.SkillEntry) string {
	lines := []string{
		fmt.Sprintf("## %s %s", TrustIndicator(entry.TrustLevel), entry.Name),
		"",
		"**Trust Score:** " + printer.FormatScore(entry.TrustScore),
		"**Trust Level:** " + entry.TrustLevel,
		"**File Type:** " + entry.FileType,
		"**Platform:** " + entry.Platform,
		"**Source:** " + entry.Source,
	}
	if entry.Description != "" {
		lines = append(lines, "**Description:** "+entry.Description)
	}
	if entry.Author != "" {
		lines = append(lines, "**Author:** "+entry.Author)
	}
	if entry.LastScanned != "" {
		lines = append(lines, "**Last Scanned:** "+printer.FormatDate(entry.LastScanned))
	}
	lines = appendFindingSummary(lines, entry.LatestFindings)
	lines = append(lines, "", fullReport(r.Links.Skill(entry.Name)))
	return join(lines...)
}

// Scan renders a scan verdict. requestedName is used as the title when the
// registry did not echo a skill name. Every finding is listed.
func (r *Renderer) Scan(result models.ScanResult, requestedName string) string {
	title := result.SkillName
	if title == "" {
		title = requestedName
	}
	if title == "" {
		title = "Inline Scan"
	}

	lines := []string{
		fmt.Sprintf("## %s Scan Result: %s", TrustIndicator(result.TrustLevel), title),
		"",
		"**Trust Score:** " + printer.FormatScore(result.TrustScore),
		"**Trust Level:** " + result.TrustLevel,
		"**File Type:** " + result.FileType,
		fmt.Sprintf("**Findings:** %d total (%d critical, %d high)", result.FindingsCount, result.CriticalCount, result.HighCount),
	}

	if len(result.Findings) == 0 {
		lines = append(lines, "", "✅ No security findings detected.")
		return join(lines...)
	}

	lines = append(lines, "", "### Findings")
	for _, f := range result.Findings {
		lines = append(lines, "", fmt.Sprintf("#### %s [%s] %s", SeverityIndicator(f.Severity), SeverityTag(f.Severity), f.Title))
		if f.Description != "" {
			lines = append(lines, f.Description)
		}
		if f.Evidence != "" {
			lines = append(lines, "**Evidence:** `"+f.Evidence+"`")
		}
		if f.Recommendation != "" {
			lines = append(lines, "**Recommendation:** "+f.Recommendation)
		}
	}
	return join(lines...)
}

// Search renders the combined search result. Servers are always listed first.
func (r *Renderer) Search(query string, servers []models.ServerHit, skills []models.SkillHit) string {
	heading := fmt.Sprintf(`## Search: "%s"`, query)
	if len(servers) == 0 && len(skills) == 0 {
		return join(
			heading,
			"",
			"No results found in the Vigile registry.",
			"",
			"Try a different search term, or submit a server/skill for scanning at "+r.Links.Home(),
		)
	}

	lines := []string{heading, ""}
	if len(servers) > 0 {
		table := printer.NewMarkdownTable("Server", "Score", "Level", "Source")
		for _, s := range servers {
			table.AddRow(
				fmt.Sprintf("[%s](%s)", s.Name, r.Links.Server(s.Name)),
				printer.FormatScore(s.TrustScore),
				TrustIndicator(s.TrustLevel)+" "+s.TrustLevel,
				s.Source,
			)
		}
		lines = append(lines, fmt.Sprintf("### MCP Servers (%d results)", len(servers)), "")
		lines = append(lines, table.Lines()...)
	}
	if len(skills) > 0 {
		if len(servers) > 0 {
			lines = append(lines, "")
		}
		table := printer.NewMarkdownTable("Skill", "Score", "Level", "Platform")
		for _, s := range skills {
			table.AddRow(
				fmt.Sprintf("[%s](%s)", s.Name, r.Links.Skill(s.Name)),
				printer.FormatScore(s.TrustScore),
				TrustIndicator(s.TrustLevel)+" "+s.TrustLevel,
				s.Platform,
			)
		}
		lines = append(lines, fmt.Sprintf("### Agent Skills (%d results)", len(skills)), "")
		lines = append(lines, table.Lines()...)
	}
	return join(lines...)
}

// LookupError is the one-line report for a failed server lookup.
func LookupError(name, detail string, status int) string {
	return fmt.Sprintf(`Error looking up "%s": %s`, name, failureText(detail, status))
}

// SkillLookupError is the one-line report for a failed skill lookup.
func SkillLookupError(name, detail string, status int) string {
	return fmt.Sprintf(`Error looking up skill "%s": %s`, name, failureText(detail, status))
}

// ScanError is the one-line report for a failed scan.
func ScanError(detail string, status int) string {
	return "Scan failed: " + failureText(detail, status)
}

func failureText(detail string, status int) string {
	if detail != "" {
		return detail
	}
	return fmt.Sprintf("HTTP %d", status)
}

func appendFindingSummary(lines []string, findings []models.Finding) []string {
	if len(findings) == 0 {
		return lines
	}
	lines = append(lines, "", "### Security Findings")
	shown := findings
	if len(shown) > MaxEntryFindings {
		shown = shown[:MaxEntryFindings]
	}
	for _, f := range shown {
		lines = append(lines, fmt.Sprintf("- %s **[%s]** %s", SeverityIndicator(f.Severity), SeverityTag(f.Severity), f.Title))
		if f.Recommendation != "" {
			lines = append(lines, "  → "+f.Recommendation)
		}
	}
	if extra := len(findings) - MaxEntryFindings; extra > 0 {
		lines = append(lines, fmt.Sprintf("  ... and %d more findings", extra))
	}
	return lines
}

func fullReport(link string) string {
	return fmt.Sprintf("🔗 [Full report on Vigile](%s)", link)
}

func join(lines ...string) string {
	return strings.Join(lines, "\n")
}
