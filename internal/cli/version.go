package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vigile-dev/vigile-mcp/internal/version"
	"github.com/vigile-dev/vigile-mcp/pkg/printer"
)

var versionOutputFormat string

// VersionInfo is the JSON form of the version command.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	VersionCmd.Flags().StringVarP(&versionOutputFormat, "output", "o", string(printer.OutputTypeText), "Output format (text, json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := VersionInfo{
		Version:   version.Version,
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	}

	p := printer.New(printer.OutputType(versionOutputFormat))
	p.SetOutput(cmd.OutOrStdout())
	switch p.OutputType() {
	case printer.OutputTypeJSON:
		return p.PrintJSON(info)
	case printer.OutputTypeText:
		return p.PrintText(fmt.Sprintf("vigile-mcp %s\n  commit: %s\n  built:  %s", info.Version, info.GitCommit, info.BuildDate))
	default:
		return fmt.Errorf("unsupported output format %q", versionOutputFormat)
	}
}
