package report

import (
	"net/url"
	"strings"
)

// DefaultWebURL is the public Vigile site.
const DefaultWebURL = "https://vigile.dev"

// Links builds public report URLs.
type Links struct {
	Base string
}

// NewLinks returns Links rooted at base, or the public site when base is empty.
func NewLinks(base string) Links {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultWebURL
	}
	return Links{Base: base}
}

func (l Links) base() string {
	if l.Base == "" {
		return DefaultWebURL
	}
	return l.Base
}

// Home is the site root.
func (l Links) Home() string { return l.base() }

// Pricing is the plans page.
func (l Links) Pricing() string { return l.base() + "/pricing" }

// Server is the full report page of an MCP server.
func (l Links) Server(name string) string {
	return l.base() + "/server/" + url.PathEscape(name)
}

// Skill is the full report page of an agent skill.
func (l Links) Skill(name string) string {
	return l.base() + "/skill/" + url.PathEscape(name)
}
