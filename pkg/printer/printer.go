// Package printer writes CLI output and provides the formatting helpers
// shared by every report.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// OutputType defines the output format
type OutputType string

const (
	// OutputTypeText outputs rendered Markdown (default)
	OutputTypeText OutputType = "text"
	// OutputTypeJSON outputs in JSON format
	OutputTypeJSON OutputType = "json"
)

// Printer handles various output formats
type Printer struct {
	out        io.Writer
	outputType OutputType
	wrap       int
}

// New creates a new printer with the specified output type
func New(outputType OutputType) *Printer {
	if outputType == "" {
		outputType = OutputTypeText
	}
	return &Printer{
		out:        os.Stdout,
		outputType: outputType,
	}
}

// SetOutput sets the output writer
func (p *Printer) SetOutput(out io.Writer) {
	p.out = out
}

// SetWrap word-wraps text output at width columns. Zero disables wrapping.
func (p *Printer) SetWrap(width int) {
	if width < 0 {
		width = 0
	}
	p.wrap = width
}

// OutputType returns the configured format.
func (p *Printer) OutputType() OutputType {
	return p.outputType
}

// PrintJSON prints data in JSON format
func (p *Printer) PrintJSON(data any) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// PrintText prints a rendered report, wrapped if requested, with exactly one
// trailing newline.
func (p *Printer) PrintText(text string) error {
	_, err := fmt.Fprintln(p.out, Wrap(strings.TrimRight(text, "\n"), p.wrap))
	return err
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", message)
}

// Wrap word-wraps s at width columns. Table rows are left intact so that
// Markdown tables stay parseable.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "|") {
			continue
		}
		lines[i] = wordwrap.String(line, width)
	}
	return strings.Join(lines, "\n")
}
