package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vigile-dev/vigile-mcp/pkg/printer"
)

var errRuntimeNotInitialized = errors.New("runtime not initialized")

// reportOptions are shared by every command that prints a report.
type reportOptions struct {
	wrap  int
	quiet bool
}

func addReportFlags(cmd *cobra.Command, opts *reportOptions) {
	cmd.Flags().IntVar(&opts.wrap, "wrap", 0, "Word-wrap the report at this many columns (0 disables wrapping)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not show a progress spinner")
}

// runReport runs fn behind a stderr spinner and prints the resulting report.
func runReport(ctx context.Context, cmd *cobra.Command, opts reportOptions, description string, fn func(context.Context) string) error {
	if opts.wrap < 0 {
		return fmt.Errorf("--wrap must not be negative")
	}

	var text string
	if opts.quiet {
		text = fn(ctx)
	} else {
		text = withSpinner(cmd.ErrOrStderr(), description, func() string { return fn(ctx) })
	}

	p := printer.New(printer.OutputTypeText)
	p.SetOutput(cmd.OutOrStdout())
	p.SetWrap(opts.wrap)
	return p.PrintText(text)
}

func withSpinner(w io.Writer, description string, fn func() string) string {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	text := fn()
	close(done)
	_ = bar.Finish()
	return text
}

// checkLength mirrors the bounds of the tool input schemas.
func checkLength(field, value string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n < minLen {
		if minLen == 1 {
			return fmt.Errorf("%s must not be empty", field)
		}
		return fmt.Errorf("%s must be at least %d characters", field, minLen)
	}
	if n > maxLen {
		return fmt.Errorf("%s must be at most %d characters, got %d", field, maxLen, n)
	}
	return nil
}
