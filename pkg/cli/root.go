package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vigile-dev/vigile-mcp/internal/cli"
	"github.com/vigile-dev/vigile-mcp/internal/config"
	"github.com/vigile-dev/vigile-mcp/pkg/printer"
)

var (
	apiURL  string
	apiKey  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vigile-mcp",
	Short: "Trust scores for MCP servers and agent skills",
	Long: `vigile-mcp is an MCP server that lets AI coding agents check the Vigile trust registry
before installing an MCP server or agent skill. Without a subcommand it serves MCP over stdio.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == cli.VersionCmd {
			return nil
		}
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		cli.SetRuntime(rt)
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cli.RunServe(cmd.Context(), cli.ServeOptions{})
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Registry API URL (overrides VIGILE_API_URL; must be HTTPS except on localhost)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Registry API key (overrides VIGILE_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Verbose logging to stderr")

	// Add subcommands
	rootCmd.AddCommand(cli.ServeCmd)
	rootCmd.AddCommand(cli.CheckServerCmd)
	rootCmd.AddCommand(cli.CheckSkillCmd)
	rootCmd.AddCommand(cli.ScanCmd)
	rootCmd.AddCommand(cli.SearchCmd)
	rootCmd.AddCommand(cli.VersionCmd)
}

func Root() *cobra.Command {
	return rootCmd
}

// newRuntime loads the configuration, applies flag overrides and builds the
// stderr logger. Stdout is reserved for MCP traffic and reports.
func newRuntime(cmd *cobra.Command) (*cli.Runtime, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	base, err := config.ResolveAPIBase(cfg.APIURL)
	if err != nil {
		logger.Warn("ignoring configured API URL", "error", err, "using", base)
	}

	return &cli.Runtime{
		Config:  cfg,
		APIBase: base,
		Logger:  logger,
	}, nil
}
