package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rowmut/rowmut/internal/model"
	"github.com/rowmut/rowmut/internal/warnings"
)

const (
	grayColor  = "\033[2;90m"
	resetColor = "\033[0m"
)

var warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

// TUIReporter implements Reporter using Bubble Tea for interactive display
// of a mutate run's selection table, paginating when the terminal is too
// short to show every row at once.
type TUIReporter struct {
	output io.Writer
}

// NewTUIReporter creates a new TUIReporter.
func NewTUIReporter(output io.Writer) *TUIReporter {
	return &TUIReporter{output: output}
}

// Start initializes the reporter.
func (p *TUIReporter) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the reporter.
func (p *TUIReporter) Close(ctx context.Context) {}

// DisplaySelection shows the selected mutations, paginating through
// bubbletea when the list is too long to fit on one screen.
func (p *TUIReporter) DisplaySelection(ctx context.Context, possibleCount int, selected []model.SelectedMutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := make([]selectionRow, 0, len(selected))
	for _, sm := range selected {
		rows = append(rows, selectionRow{
			line:        sm.Flags.LineNumber,
			pattern:     sm.Pattern,
			replacement: sm.Replacement,
		})
	}

	mdl := newSelectionModel(rows, possibleCount)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			mdl.height = height
			mdl.width = width
		}
	}

	if !mdl.needsPagination() {
		_, err := fmt.Fprint(p.output, mdl.View())
		return err
	}

	program := tea.NewProgram(mdl, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayWarnings prints the aggregated warnings block, if any.
func (p *TUIReporter) DisplayWarnings(ctx context.Context, warn *warnings.Aggregator) {
	if err := ctx.Err(); err != nil {
		return
	}

	if warn == nil || warn.Empty() {
		return
	}

	fmt.Fprint(p.output, warningStyle.Render(warn.Format()))
}

// DisplayResult prints the final destination of the mutated output.
func (p *TUIReporter) DisplayResult(ctx context.Context, outputPath string, bytesWritten int) {
	if err := ctx.Err(); err != nil {
		return
	}

	dest := outputPath
	if dest == "" {
		dest = "-"
	}

	fmt.Fprintf(p.output, "wrote %d bytes to %s\n", bytesWritten, dest)
}

type selectionRow struct {
	line        int
	pattern     string
	replacement string
}

// selectionModel is the Bubble Tea model for paginating the selected
// mutation table.
type selectionModel struct {
	rows          []selectionRow
	possibleCount int
	height        int
	width         int
	offset        int
	quitting      bool
}

func newSelectionModel(rows []selectionRow, possibleCount int) selectionModel {
	return selectionModel{
		rows:          rows,
		possibleCount: possibleCount,
	}
}

func (sm selectionModel) Init() tea.Cmd {
	return nil
}

func (sm selectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.height = msg.Height
		sm.width = msg.Width

		return sm, nil

	case tea.KeyMsg:
		return sm.handleKeyPress(msg)
	}

	return sm, nil
}

func (sm selectionModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		sm.quitting = true
		return sm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		sm.quitting = true
		return sm, tea.Quit

	case "down", "j":
		sm.offset = clamp(sm.offset+1, 0, sm.maxOffset())
		return sm, nil

	case "up", "k":
		sm.offset = clamp(sm.offset-1, 0, sm.maxOffset())
		return sm, nil

	case "g", "home":
		sm.offset = 0
		return sm, nil

	case "G", "end":
		sm.offset = sm.maxOffset()
		return sm, nil

	case "d", "pgdown":
		sm.offset = clamp(sm.offset+sm.itemsPerPage(), 0, sm.maxOffset())
		return sm, nil

	case "u", "pgup":
		sm.offset = clamp(sm.offset-sm.itemsPerPage(), 0, sm.maxOffset())
		return sm, nil
	}

	return sm, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

const reservedLines = 6

func (sm selectionModel) itemsPerPage() int {
	if sm.height == 0 {
		return 10
	}

	available := sm.height - reservedLines
	if available < 1 {
		return 1
	}

	return available
}

func (sm selectionModel) maxOffset() int {
	perPage := sm.itemsPerPage()
	if perPage <= 0 {
		return 0
	}

	maxOff := len(sm.rows) - perPage
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

func (sm selectionModel) needsPagination() bool {
	if len(sm.rows) == 0 {
		return false
	}

	return len(sm.rows) > sm.itemsPerPage() && sm.height > 0
}

func (sm selectionModel) View() string {
	var b strings.Builder

	total := len(sm.rows)

	fmt.Fprintf(&b, "%d of %d possible mutations selected\n\n", total, sm.possibleCount)

	if total == 0 {
		b.WriteString("  no mutations selected\n")
		return b.String()
	}

	itemsPerPage := sm.itemsPerPage()
	needsPagination := sm.needsPagination()

	start := clamp(sm.offset, 0, total-1)
	end := start + itemsPerPage

	if end > total {
		end = total
	}

	for _, row := range sm.rows[start:end] {
		replColor := ""
		if row.replacement == "" {
			replColor = grayColor
		}

		fmt.Fprintf(&b, "  line %d: %s -> %s%s%s\n", row.line, row.pattern, replColor, row.replacement, resetColor)
	}

	if needsPagination {
		currentPage := (sm.offset / itemsPerPage) + 1
		totalPages := (total + itemsPerPage - 1) / itemsPerPage

		fmt.Fprintf(&b, "\n  page %d/%d | showing %d-%d of %d\n", currentPage, totalPages, start+1, end, total)
		b.WriteString("  up/k: up | down/j: down | g: top | G: bottom | q: quit\n")
	}

	return b.String()
}
