// Package model defines the data structures shared by the spec parser,
// selector, and text replacer.
package model

// Flags carries the boolean modifiers an operator prefix can set on a row,
// plus the bookkeeping fields the selector assigns during selection.
//
// depth 0 = standalone row, 1 = group leader, 2+ = nested child ((count of
// leading '^'/'@' sigils) + 1).
type Flags struct {
	IsRegex       bool
	IsNewLined    bool
	IsIndexSynced bool
	IsOptional    bool
	MustPass      bool

	Depth       int
	GroupNumber int
	LineNumber  int
}

// PossibleMutation is one row of the parsed mutation spec: a pattern to find
// plus the ordered permutations that may replace it.
type PossibleMutation struct {
	Pattern      string
	Permutations []string
	Flags        Flags
}

// SelectedMutation is one mutation the selector chose to apply: a pattern, a
// single concrete replacement, and the flags/metadata that produced it.
type SelectedMutation struct {
	Pattern     string
	Replacement string
	Flags       Flags
}
