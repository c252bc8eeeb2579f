// Package testing provides test utilities for the trust service.
package testing

import (
	"context"
	"fmt"
	"sync"
)

// Call records a single invocation on FakeTrustService.
type Call struct {
	Method string
	Args   []any
}

// FakeTrustService is a configurable fake implementation of service.TrustService for testing.
// Function hooks take precedence; without one each method echoes its arguments.
type FakeTrustService struct {
	mu    sync.Mutex
	Calls []Call

	CheckServerFn func(ctx context.Context, name string) string
	CheckSkillFn  func(ctx context.Context, name string) string
	ScanContentFn func(ctx context.Context, content, fileType, name string) string
	SearchFn      func(ctx context.Context, query string, limit int) string
}

// NewFakeTrustService creates a new fake trust service
func NewFakeTrustService() *FakeTrustService {
	return &FakeTrustService{}
}

func (f *FakeTrustService) record(method string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Method: method, Args: args})
}

// LastCall returns the most recent invocation, or false if there was none.
func (f *FakeTrustService) LastCall() (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return Call{}, false
	}
	return f.Calls[len(f.Calls)-1], true
}

func (f *FakeTrustService) CheckServer(ctx context.Context, name string) string {
	f.record("CheckServer", name)
	if f.CheckServerFn != nil {
		return f.CheckServerFn(ctx, name)
	}
	return fmt.Sprintf("server %s", name)
}

func (f *FakeTrustService) CheckSkill(ctx context.Context, name string) string {
	f.record("CheckSkill", name)
	if f.CheckSkillFn != nil {
		return f.CheckSkillFn(ctx, name)
	}
	return fmt.Sprintf("skill %s", name)
}

func (f *FakeTrustService) ScanContent(ctx context.Context, content, fileType, name string) string {
	f.record("ScanContent", content, fileType, name)
	if f.ScanContentFn != nil {
		return f.ScanContentFn(ctx, content, fileType, name)
	}
	return fmt.Sprintf("scan %d bytes", len(content))
}

func (f *FakeTrustService) Search(ctx context.Context, query string, limit int) string {
	f.record("Search", query, limit)
	if f.SearchFn != nil {
		return f.SearchFn(ctx, query, limit)
	}
	return fmt.Sprintf("search %s limit=%d", query, limit)
}
