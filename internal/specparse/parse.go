// Package specparse consumes the rows specrow assembles and interprets each
// pattern cell's leading operator prefix (the `^ @ + ? ! /` sigil language),
// assigning nesting depth, promoting group leaders, validating the nesting
// tree, and trimming the pattern body down to the text the selector and
// replacer actually match against.
package specparse

import (
	"fmt"
	"strings"

	"github.com/rowmut/rowmut/internal/model"
	"github.com/rowmut/rowmut/internal/mutagenerr"
	"github.com/rowmut/rowmut/internal/specrow"
)

const sigilChars = "^@/+!"
const specialChars = "+?/!"

// Parse turns rows into the ordered PossibleMutation sequence: flags and
// depth assigned, group leaders promoted, nesting validated, and every
// pattern trimmed to its final body text.
func Parse(rows []specrow.Row) ([]model.PossibleMutation, error) {
	pms := make([]model.PossibleMutation, len(rows))

	for i, r := range rows {
		if len(r.Permutations) == 0 {
			return nil, mutagenerr.New(mutagenerr.SpecParse,
				fmt.Sprintf("Permutation cell missing on line number %d", r.LineNumber))
		}

		pms[i] = model.PossibleMutation{
			Pattern:      r.Pattern,
			Permutations: r.Permutations,
			Flags:        model.Flags{LineNumber: r.LineNumber},
		}
	}

	if err := categorize(pms); err != nil {
		return nil, err
	}

	if err := validateNesting(pms); err != nil {
		return nil, err
	}

	return pms, nil
}

func categorize(pms []model.PossibleMutation) error {
	for i := range pms {
		raw := pms[i].Pattern
		hasPrefix := len(raw) > 0 && strings.ContainsAny(raw[:1], sigilChars)

		if !hasPrefix {
			if i+1 < len(pms) {
				next := pms[i+1].Pattern
				if len(next) > 0 && (next[0] == '^' || next[0] == '@') {
					pms[i].Flags.Depth = 1
				}
			}
		}

		if hasPrefix {
			if err := parseSigils(&pms[i], raw); err != nil {
				return err
			}
		}

		finalizePattern(&pms[i], raw)
	}

	return nil
}

// parseSigils consumes the leading `^`/`@` run (if any), the `+?!` modifier
// letters (each at most once), and a trailing `/` that switches on regex
// mode, setting depth and flags on pm.
func parseSigils(pm *model.PossibleMutation, s string) error {
	switch s[0] {
	case '^':
		pm.Flags.Depth = 2
		idx := 1

		for idx < len(s) && s[idx] == '^' {
			pm.Flags.Depth++
			idx++
		}

		if idx >= len(s) {
			return emptyPatternErr(pm.Flags.LineNumber)
		}

		if s[idx] == '@' {
			pm.Flags.Depth++
			pm.Flags.IsIndexSynced = true
			idx++

			if idx >= len(s) {
				return emptyPatternErr(pm.Flags.LineNumber)
			}

			if strings.ContainsAny(s[idx:idx+1], specialChars) {
				return parseSpecialChars(pm, s, idx)
			}

			return nil
		}

		if strings.ContainsAny(s[idx:idx+1], specialChars) {
			return parseSpecialChars(pm, s, idx)
		}

		return nil

	case '@':
		pm.Flags.Depth = 2
		pm.Flags.IsIndexSynced = true
		idx := 1

		if idx >= len(s) {
			return emptyPatternErr(pm.Flags.LineNumber)
		}

		if strings.ContainsAny(s[idx:idx+1], specialChars) {
			return parseSpecialChars(pm, s, idx)
		}

		return nil

	default: // '/', '+', or '!'
		return parseSpecialChars(pm, s, 0)
	}
}

// parseSpecialChars consumes each of `+`, `?`, `!` at most once (in any
// order) starting at idx, then an optional trailing `/` for regex mode.
func parseSpecialChars(pm *model.PossibleMutation, s string, idx int) error {
	remaining := map[byte]bool{'+': true, '?': true, '!': true}

	for idx < len(s) {
		c := s[idx]
		if !remaining[c] {
			break
		}

		delete(remaining, c)

		switch c {
		case '+':
			pm.Flags.IsNewLined = true
		case '?':
			pm.Flags.IsOptional = true
		case '!':
			pm.Flags.MustPass = true
		}

		idx++
	}

	if idx < len(s) && s[idx] == '/' {
		pm.Flags.IsRegex = true
		idx++
	}

	if idx >= len(s) {
		return emptyPatternErr(pm.Flags.LineNumber)
	}

	return nil
}

// finalizePattern strips the sigil prefix — whose length is fully
// determined by the flags just parsed, mirroring the source's OFFSET
// computation — then trims leading and trailing Unicode whitespace from
// what remains.
func finalizePattern(pm *model.PossibleMutation, raw string) {
	prefixLen := 0
	if pm.Flags.Depth > 0 {
		prefixLen = pm.Flags.Depth - 1
	}

	if pm.Flags.IsOptional {
		prefixLen++
	}
	if pm.Flags.IsNewLined {
		prefixLen++
	}
	if pm.Flags.MustPass {
		prefixLen++
	}
	if pm.Flags.IsRegex {
		prefixLen++
	}

	body := raw
	if prefixLen <= len(body) {
		body = body[prefixLen:]
	} else {
		body = ""
	}

	body = specrow.TrimLeadingWhitespace(body)
	body = specrow.TrimTrailingWhitespace(body)

	pm.Pattern = body
}

func emptyPatternErr(lineNumber int) error {
	return mutagenerr.New(mutagenerr.SpecParse,
		fmt.Sprintf("Cell content missing for pattern cell on line number %d", lineNumber))
}

// validateNesting walks the sequence once, failing if the first row is
// already nested, if any row's depth jumps more than one level past its
// predecessor, or if a depth > 2 row appears without an open parent group.
func validateNesting(pms []model.PossibleMutation) error {
	if len(pms) == 0 {
		return nil
	}

	if pms[0].Flags.Depth > 1 {
		return invalidNestingErr(pms[0].Flags.LineNumber)
	}

	for i := 0; i+1 < len(pms); i++ {
		cur, next := pms[i].Flags.Depth, pms[i+1].Flags.Depth

		bigJump := cur < next && (next-cur) > 1
		orphanedDeepChild := next > 2 && next <= cur

		if bigJump || orphanedDeepChild {
			return invalidNestingErr(pms[i+1].Flags.LineNumber)
		}
	}

	return nil
}

func invalidNestingErr(lineNumber int) error {
	return mutagenerr.New(mutagenerr.SpecParse,
		fmt.Sprintf("Invalid group nesting syntax in TSV File: nested pattern cell in row number %d has no corresponding parent", lineNumber))
}
