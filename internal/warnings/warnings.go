// Package warnings collects the non-fatal conditions a replacer run can
// surface — patterns that never matched, patterns that matched more than
// once, and free-form notices from the engine (such as a clamped count) —
// and formats them into a single coloured block at the end of a run.
package warnings

import (
	"fmt"
	"sort"
	"strings"
)

const (
	yellow = "\x1b[33m"
	reset  = "\x1b[0m"
)

// Aggregator accumulates the three warning bags spec.md §4.6 describes.
// It is not safe for concurrent use; the core is single-threaded.
type Aggregator struct {
	noMatchLines       []int
	multipleMatchLines []int
	freeText           []string
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// NoMatch records that the pattern on the given spec line never matched the
// source.
func (a *Aggregator) NoMatch(lineNumber int) {
	a.noMatchLines = append(a.noMatchLines, lineNumber)
}

// MultiMatch records that the pattern on the given spec line matched more
// than once.
func (a *Aggregator) MultiMatch(lineNumber int) {
	a.multipleMatchLines = append(a.multipleMatchLines, lineNumber)
}

// FreeText records a standalone notice not tied to a spec line, such as a
// clamped --count.
func (a *Aggregator) FreeText(msg string) {
	a.freeText = append(a.freeText, msg)
}

// Empty reports whether no warnings were recorded.
func (a *Aggregator) Empty() bool {
	return len(a.noMatchLines) == 0 && len(a.multipleMatchLines) == 0 && len(a.freeText) == 0
}

// NoMatchLines returns the recorded no-match spec lines in ascending order.
func (a *Aggregator) NoMatchLines() []int {
	return sortedCopy(a.noMatchLines)
}

// MultipleMatchLines returns the recorded multiple-match spec lines in
// ascending order.
func (a *Aggregator) MultipleMatchLines() []int {
	return sortedCopy(a.multipleMatchLines)
}

// FreeTextNotices returns the recorded free-text notices in insertion order.
func (a *Aggregator) FreeTextNotices() []string {
	out := make([]string, len(a.freeText))
	copy(out, a.freeText)

	return out
}

func sortedCopy(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	sort.Ints(out)

	return out
}

// Format renders the collected warnings as a single ANSI-yellow block,
// pluralising "mutation"/"spec line" wording, or the empty string if nothing
// was recorded.
func (a *Aggregator) Format() string {
	if a.Empty() {
		return ""
	}

	var b strings.Builder

	b.WriteString(yellow)

	if lines := a.NoMatchLines(); len(lines) > 0 {
		fmt.Fprintf(&b, "%s did not match in the source for %s: %s\n",
			pluralize(len(lines), "mutation", "mutations"),
			pluralize(len(lines), "spec line", "spec lines"),
			joinInts(lines))
	}

	if lines := a.MultipleMatchLines(); len(lines) > 0 {
		fmt.Fprintf(&b, "%s matched more than once in the source for %s: %s\n",
			pluralize(len(lines), "mutation", "mutations"),
			pluralize(len(lines), "spec line", "spec lines"),
			joinInts(lines))
	}

	for _, note := range a.freeText {
		fmt.Fprintf(&b, "%s\n", note)
	}

	b.WriteString(reset)

	return b.String()
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}

	return fmt.Sprintf("%d %s", n, plural)
}

func joinInts(in []int) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = fmt.Sprintf("%d", v)
	}

	return strings.Join(parts, ", ")
}
