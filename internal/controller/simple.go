package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rowmut/rowmut/internal/model"
	"github.com/rowmut/rowmut/internal/warnings"
)

// SimpleReporter implements Reporter by printing plain text to the cobra
// Command's output writer.
type SimpleReporter struct {
	cmd *cobra.Command
}

// NewSimpleReporter creates a new SimpleReporter.
func NewSimpleReporter(cmd *cobra.Command) *SimpleReporter {
	return &SimpleReporter{cmd: cmd}
}

// Start initializes the reporter.
func (s *SimpleReporter) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the reporter.
func (s *SimpleReporter) Close(ctx context.Context) {}

// DisplaySelection prints a table of the mutations that were selected, out
// of how many were possible.
func (s *SimpleReporter) DisplaySelection(ctx context.Context, possibleCount int, selected []model.SelectedMutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%d of %d possible mutations selected\n", len(selected), possibleCount)
	s.printf("%s", renderSelectionTable(selected))

	return nil
}

func renderSelectionTable(selected []model.SelectedMutation) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Line", "Pattern", "Replacement"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, sm := range selected {
		table.Append([]string{
			fmt.Sprintf("%d", sm.Flags.LineNumber),
			truncate(sm.Pattern, 40),
			truncate(sm.Replacement, 40),
		})
	}

	table.Render()

	return buf.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max-1] + "…"
}

// DisplayWarnings prints the aggregated warnings block, if any.
func (s *SimpleReporter) DisplayWarnings(ctx context.Context, warn *warnings.Aggregator) {
	if err := ctx.Err(); err != nil {
		return
	}

	if warn == nil || warn.Empty() {
		return
	}

	s.printf("%s", warn.Format())
}

// DisplayResult prints the final destination of the mutated output.
func (s *SimpleReporter) DisplayResult(ctx context.Context, outputPath string, bytesWritten int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if outputPath == "" || outputPath == "-" {
		s.printf("wrote %d bytes to stdout\n", bytesWritten)
		return
	}

	s.printf("wrote %d bytes to %s\n", bytesWritten, outputPath)
}

func (s *SimpleReporter) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
