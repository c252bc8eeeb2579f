package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigile-dev/vigile-mcp/internal/config"
)

func testRuntime(t *testing.T, apiBase string) {
	t.Helper()
	SetRuntime(&Runtime{
		Config: &config.Config{
			APIURL:      apiBase,
			WebURL:      "https://vigile.dev",
			HTTPTimeout: 5 * time.Second,
		},
		APIBase: apiBase,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(func() { SetRuntime(nil) })
}

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())
	return cmd, &out, &errOut
}

func TestCheckLength(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		min     int
		max     int
		wantErr string
	}{
		{"ok", "fs", 1, 500, ""},
		{"empty required", "", 1, 500, "name must not be empty"},
		{"empty optional", "", 0, 50, ""},
		{"too long", strings.Repeat("a", 51), 0, 50, "at most 50"},
		{"runes not bytes", strings.Repeat("é", 50), 0, 50, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkLength("name", tt.value, tt.min, tt.max)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestRunReport(t *testing.T) {
	t.Run("quiet and wrapped", func(t *testing.T) {
		cmd, out, errOut := newTestCommand()
		err := runReport(context.Background(), cmd, reportOptions{wrap: 12, quiet: true}, "Checking", func(context.Context) string {
			return "alpha beta gamma delta"
		})
		require.NoError(t, err)
		assert.Equal(t, "alpha beta\ngamma delta\n", out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("spinner goes to stderr", func(t *testing.T) {
		cmd, out, _ := newTestCommand()
		err := runReport(context.Background(), cmd, reportOptions{}, "Checking", func(context.Context) string {
			time.Sleep(150 * time.Millisecond)
			return "## report"
		})
		require.NoError(t, err)
		assert.Equal(t, "## report\n", out.String())
	})

	t.Run("negative wrap", func(t *testing.T) {
		cmd, _, _ := newTestCommand()
		err := runReport(context.Background(), cmd, reportOptions{wrap: -1}, "x", func(context.Context) string { return "" })
		assert.Error(t, err)
	})
}

func TestReadScanInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude.md")
	require.NoError(t, os.WriteFile(path, []byte("be helpful"), 0o600))

	got, err := readScanInput(strings.NewReader("ignored"), path)
	require.NoError(t, err)
	assert.Equal(t, "be helpful", got)

	got, err = readScanInput(strings.NewReader("from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	_, err = readScanInput(nil, filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorContains(t, err, "failed to open")
}

func TestCommandsRequireRuntime(t *testing.T) {
	SetRuntime(nil)
	cmd, _, _ := newTestCommand()
	assert.ErrorIs(t, runCheckServer(cmd, []string{"fs"}), errRuntimeNotInitialized)
	assert.ErrorIs(t, RunServe(context.Background(), ServeOptions{}), errRuntimeNotInitialized)
}

func TestRunSearch(t *testing.T) {
	var (
		mu     sync.Mutex
		limits []string
	)
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		limits = append(limits, r.URL.Query().Get("limit"))
		mu.Unlock()
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(registry.Close)
	testRuntime(t, registry.URL)

	prevLimit, prevOpts := searchLimit, searchOpts
	t.Cleanup(func() { searchLimit, searchOpts = prevLimit, prevOpts })
	searchOpts = reportOptions{quiet: true}

	searchLimit = 51
	cmd, _, _ := newTestCommand()
	assert.ErrorContains(t, runSearch(cmd, []string{"fs"}), "--limit")

	searchLimit = 20
	cmd, out, _ := newTestCommand()
	require.NoError(t, runSearch(cmd, []string{"fs"}))
	assert.Contains(t, out.String(), `## Search: "fs"`)
	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"20", "20"}, limits)
}
