package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vigile-dev/vigile-mcp/internal/mcp/vigileserver"
)

var (
	scanOpts     reportOptions
	scanFileType string
	scanName     string
)

var ScanCmd = &cobra.Command{
	Use:   "scan [file|-]",
	Short: "Scan agent skill content for security issues",
	Long: `Submits the content of a skill file (claude.md, .cursorrules, skill.md, etc.) to Vigile for analysis and prints every finding.
Reads standard input when no file or "-" is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	ScanCmd.Flags().StringVar(&scanFileType, "file-type", "", "File type: skill.md, claude.md, cursorrules, mdc-rule (default: skill.md)")
	ScanCmd.Flags().StringVar(&scanName, "name", "", "Name for the scan result (default: the file name)")
	addReportFlags(ScanCmd, &scanOpts)
}

func runScan(cmd *cobra.Command, args []string) error {
	rt, err := currentRuntime()
	if err != nil {
		return err
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	content, err := readScanInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	name := scanName
	if name == "" && path != "-" {
		name = filepath.Base(path)
	}
	if err := checkLength("content", content, 1, vigileserver.MaxContentLength); err != nil {
		return err
	}
	if err := checkLength("file type", scanFileType, 0, vigileserver.MaxFileTypeLength); err != nil {
		return err
	}
	if err := checkLength("name", name, 0, vigileserver.MaxNameLength); err != nil {
		return err
	}

	trust := rt.NewTrustService(nil)
	return runReport(cmd.Context(), cmd, scanOpts, "Scanning", func(ctx context.Context) string {
		return trust.ScanContent(ctx, content, scanFileType, name)
	})
}

// readScanInput reads the content of path, or stdin for "-". The read is
// bounded, so oversized input fails validation without being loaded in full.
func readScanInput(stdin io.Reader, path string) (string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, 4*vigileserver.MaxContentLength+1))
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return string(data), nil
}
