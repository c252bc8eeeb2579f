package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vigile-dev/vigile-mcp/internal/mcp/vigileserver"
	"github.com/vigile-dev/vigile-mcp/internal/service"
)

var (
	searchOpts  reportOptions
	searchLimit int
)

var SearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the registry for MCP servers and agent skills",
	Long:  `Searches the Vigile registry for MCP servers and agent skills by keyword and prints the matches with their trust scores.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	SearchCmd.Flags().IntVarP(&searchLimit, "limit", "l", service.DefaultSearchLimit,
		fmt.Sprintf("Max results to return per category (1-%d)", service.MaxSearchLimit))
	addReportFlags(SearchCmd, &searchOpts)
}

func runSearch(cmd *cobra.Command, args []string) error {
	rt, err := currentRuntime()
	if err != nil {
		return err
	}
	query := args[0]
	if err := checkLength("query", query, 1, vigileserver.MaxQueryLength); err != nil {
		return err
	}
	if searchLimit < 1 || searchLimit > service.MaxSearchLimit {
		return fmt.Errorf("--limit must be between 1 and %d, got %d", service.MaxSearchLimit, searchLimit)
	}

	trust := rt.NewTrustService(nil)
	return runReport(cmd.Context(), cmd, searchOpts, "Searching", func(ctx context.Context) string {
		return trust.Search(ctx, query, searchLimit)
	})
}
