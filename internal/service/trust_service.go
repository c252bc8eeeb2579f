package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vigile-dev/vigile-mcp/internal/client"
	"github.com/vigile-dev/vigile-mcp/internal/models"
	"github.com/vigile-dev/vigile-mcp/internal/report"
)

const malformedResponse = "malformed registry response"

var errNotObject = errors.New("payload is not a JSON object")

type trustServiceImpl struct {
	client   RegistryClient
	renderer *report.Renderer
	logger   *slog.Logger
}

// NewTrustService creates a trust service backed by the given registry client.
// A nil renderer links to the public site; a nil logger discards output.
func NewTrustService(c RegistryClient, renderer *report.Renderer, logger *slog.Logger) TrustService {
	if renderer == nil {
		renderer = report.NewRenderer("")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &trustServiceImpl{
		client:   c,
		renderer: renderer,
		logger:   logger,
	}
}

func (s *trustServiceImpl) CheckServer(ctx context.Context, name string) string {
	resp := s.client.GetServer(ctx, name)
	if !resp.OK {
		if resp.Status == http.StatusNotFound {
			return s.renderer.ServerNotFound(name)
		}
		return report.LookupError(name, resp.Detail(), resp.Status)
	}

	var entry models.ServerEntry
	if err := decodeObject(resp, &entry); err != nil {
		s.logger.Warn("unexpected server lookup payload", "name", name, "error", err)
		return report.LookupError(name, malformedResponse, resp.Status)
	}
	return s.renderer.Server(entry)
}

func (s *trustServiceImpl) CheckSkill(ctx context.Context, name string) string {
	resp := s.client.GetSkill(ctx, name)
	if !resp.OK {
		if resp.Status == http.StatusNotFound {
			return s.renderer.SkillNotFound(name)
		}
		return report.SkillLookupError(name, resp.Detail(), resp.Status)
	}

	var entry models.SkillEntry
	if err := decodeObject(resp, &entry); err != nil {
		s.logger.Warn("unexpected skill lookup payload", "name", name, "error", err)
		return report.SkillLookupError(name, malformedResponse, resp.Status)
	}
	return s.renderer.Skill(entry)
}

func (s *trustServiceImpl) ScanContent(ctx context.Context, content, fileType, name string) string {
	resp := s.client.ScanSkill(ctx, models.NewScanRequest(content, fileType, name))
	if !resp.OK {
		if resp.Status == http.StatusTooManyRequests {
			return s.renderer.QuotaExceeded(resp.Detail())
		}
		return report.ScanError(resp.Detail(), resp.Status)
	}

	var result models.ScanResult
	if err := decodeObject(resp, &result); err != nil {
		s.logger.Warn("unexpected scan payload", "error", err)
		return report.ScanError(malformedResponse, resp.Status)
	}
	return s.renderer.Scan(result, name)
}

func (s *trustServiceImpl) Search(ctx context.Context, query string, limit int) string {
	limit = EffectiveLimit(limit)

	var (
		servers []models.ServerHit
		skills  []models.SkillHit
		g       errgroup.Group
	)
	g.Go(func() error {
		servers = searchSide[models.ServerHit](s.logger, "servers", s.client.SearchServers(ctx, query, limit))
		return nil
	})
	g.Go(func() error {
		skills = searchSide[models.SkillHit](s.logger, "skills", s.client.SearchSkills(ctx, query, limit))
		return nil
	})
	_ = g.Wait()

	return s.renderer.Search(query, servers, skills)
}

// searchSide degrades any failure of one half of a search to an empty result.
func searchSide[T any](logger *slog.Logger, side string, resp *client.Response) []T {
	if !resp.OK {
		logger.Warn("search request failed", "side", side, "status", resp.Status, "detail", resp.Detail())
		return nil
	}
	if !hasPrefix(resp.Data, '[') {
		logger.Warn("search returned a non-array payload", "side", side)
		return nil
	}
	var hits []T
	if err := json.Unmarshal(resp.Data, &hits); err != nil {
		logger.Warn("search returned unexpected rows", "side", side, "error", err)
		return nil
	}
	return hits
}

func decodeObject(resp *client.Response, v any) error {
	if !hasPrefix(resp.Data, '{') {
		return errNotObject
	}
	return resp.Decode(v)
}

func hasPrefix(data json.RawMessage, c byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == c
}
