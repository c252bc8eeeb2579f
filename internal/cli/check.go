package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vigile-dev/vigile-mcp/internal/mcp/vigileserver"
)

var (
	checkServerOpts reportOptions
	checkSkillOpts  reportOptions
)

var CheckServerCmd = &cobra.Command{
	Use:   "check-server <name>",
	Short: "Show the trust report of an MCP server",
	Long:  `Looks up an MCP server or npm package in the Vigile registry and prints its trust score, trust level and security findings.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckServer,
}

var CheckSkillCmd = &cobra.Command{
	Use:   "check-skill <name>",
	Short: "Show the trust report of an agent skill",
	Long:  `Looks up an agent skill (claude.md, .cursorrules, skill.md, etc.) in the Vigile registry and prints its trust report.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckSkill,
}

func init() {
	addReportFlags(CheckServerCmd, &checkServerOpts)
	addReportFlags(CheckSkillCmd, &checkSkillOpts)
}

func runCheckServer(cmd *cobra.Command, args []string) error {
	rt, err := currentRuntime()
	if err != nil {
		return err
	}
	name := args[0]
	if err := checkLength("name", name, 1, vigileserver.MaxNameLength); err != nil {
		return err
	}

	trust := rt.NewTrustService(nil)
	return runReport(cmd.Context(), cmd, checkServerOpts, "Checking "+name, func(ctx context.Context) string {
		return trust.CheckServer(ctx, name)
	})
}

func runCheckSkill(cmd *cobra.Command, args []string) error {
	rt, err := currentRuntime()
	if err != nil {
		return err
	}
	name := args[0]
	if err := checkLength("name", name, 1, vigileserver.MaxNameLength); err != nil {
		return err
	}

	trust := rt.NewTrustService(nil)
	return runReport(cmd.Context(), cmd, checkSkillOpts, "Checking "+name, func(ctx context.Context) string {
		return trust.CheckSkill(ctx, name)
	})
}
