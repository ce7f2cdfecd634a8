package specrow

import (
	"fmt"
	"strings"

	"github.com/rowmut/rowmut/internal/mutagenerr"
)

// Row is one logical spec entry: a pattern cell (still carrying its operator
// prefix) and the non-empty permutation cells that follow it, tagged with
// the spec line on which the row begins.
type Row struct {
	Pattern      string
	Permutations []string
	LineNumber   int
}

// Parse splits spec text into Rows: quote-aware row assembly, tab-separated
// cell extraction, the indentation check, and the permutation-cell
// requirement. Comment rows (leading '#') and empty trailing rows are
// dropped before this function returns.
func Parse(text string) ([]Row, error) {
	rawRows, err := assembleRows(text)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(rawRows))

	for _, rr := range rawRows {
		if IsWhitespace(rr.text, 0) {
			return nil, mutagenerr.New(mutagenerr.SpecParse,
				fmt.Sprintf("Indentation detected at row %d of TSV File", rr.line))
		}

		pattern, rest, err := extractCell(rr.text, 0, rr.line)
		if err != nil {
			return nil, err
		}

		perms, err := extractPermutations(rr.text, rest, rr.line)
		if err != nil {
			return nil, err
		}

		rows = append(rows, Row{Pattern: pattern, Permutations: perms, LineNumber: rr.line})
	}

	if len(rows) == 0 {
		return nil, mutagenerr.New(mutagenerr.SpecParse, "No mutations found in TSV file.")
	}

	return rows, nil
}

// extractPermutations reads every remaining cell in the row starting at
// pos, skipping the tabs that separate them, and fails if none are
// non-empty.
func extractPermutations(row string, pos int, lineNumber int) ([]string, error) {
	if noPermutationsFrom(row, pos) {
		return nil, mutagenerr.New(mutagenerr.SpecParse,
			fmt.Sprintf("Permutation cell missing on line number %d", lineNumber))
	}

	var perms []string

	for pos < len(row) {
		for pos < len(row) && row[pos] == '\t' {
			pos++
		}

		if pos >= len(row) {
			break
		}

		cell, next, err := extractCell(row, pos, lineNumber)
		if err != nil {
			return nil, err
		}

		pos = next
		perms = append(perms, cell)
	}

	return perms, nil
}

func noPermutationsFrom(row string, pos int) bool {
	for pos < len(row) && row[pos] == '\t' {
		pos++
	}

	return pos == len(row)
}

// extractCell reads one cell of row starting at pos: a literal run up to
// the next tab, or (if pos starts with a '"') a quoted cell in which a
// doubled quote `""` is an escaped literal quote and a single quote
// followed by anything but a tab (or end of row) is a syntax error. It
// returns the cell's unescaped content and the position immediately after
// the cell (at the separating tab, or at len(row)).
func extractCell(row string, pos int, lineNumber int) (string, int, error) {
	if pos >= len(row) {
		return "", pos, nil
	}

	if row[pos] != '"' {
		start := pos
		for pos < len(row) && row[pos] != '\t' {
			pos++
		}

		return row[start:pos], pos, nil
	}

	var sb strings.Builder

	i := pos + 1
	consecutiveQuotes := 0

	for i < len(row) {
		c := row[i]

		if c != '"' {
			consecutiveQuotes = 0
			sb.WriteByte(c)
			i++

			continue
		}

		consecutiveQuotes++

		hasNext := i+1 < len(row)
		var next byte
		if hasNext {
			next = row[i+1]
		}

		if (hasNext && next == '\t' && consecutiveQuotes%2 == 1) || !hasNext {
			return sb.String(), i + 1, nil
		}

		hasNextNext := i+2 < len(row)
		var nextNext byte
		if hasNextNext {
			nextNext = row[i+2]
		}

		if hasNext && next == '"' && (!hasNextNext || nextNext != '\t') {
			sb.WriteByte('"')
			i += 2
			consecutiveQuotes++

			continue
		}

		if hasNext && next != '\t' && consecutiveQuotes%2 == 1 {
			return "", i, invalidCharAfterQuote(next, lineNumber)
		}

		sb.WriteByte(c)
		i++
	}

	return "", i, mutagenerr.New(mutagenerr.SpecParse,
		fmt.Sprintf("Terminating quote missing: final cell of row beginning on line number %d is missing its terminating quotation mark", lineNumber))
}

func invalidCharAfterQuote(c byte, lineNumber int) error {
	desc := fmt.Sprintf("%q", string(c))
	if IsWhitespace(string(c), 0) {
		desc = "a space character"
	} else if c == '"' {
		desc = "a quotation mark"
	}

	return mutagenerr.New(mutagenerr.SpecParse,
		fmt.Sprintf("Invalid syntax at line number %d: expected a tab after the closing quotation mark, found %s", lineNumber, desc))
}

type rawRow struct {
	text string
	line int
}

// assembleRows partitions spec text into rows, honoring quoted cells that
// span multiple physical lines. A newline inside an odd count of quotation
// marks does not end the row; comment rows (leading '#') always end at the
// next newline regardless of quoting. An initial blank line advances the
// line counter without starting a second row, so the first row begins
// wherever the spec's first non-empty line begins.
func assembleRows(text string) ([]rawRow, error) {
	if len(text) == 0 {
		return nil, mutagenerr.New(mutagenerr.SpecParse, "No mutations found in TSV file.")
	}

	type buf struct {
		bytes []byte
		line  int
	}

	rows := []buf{{line: 1}}

	qmarkCount := 0
	lineNumber := 1
	countTheQMarks := true

	c := text[0]
	last := c

	if c == '\n' {
		lineNumber++
	} else {
		if c == '"' {
			qmarkCount++
		} else {
			countTheQMarks = false
		}

		rows[0].bytes = append(rows[0].bytes, c)
	}

	for i := 1; i < len(text); i++ {
		c = text[i]

		if c == '\t' && qmarkCount%2 == 0 && countTheQMarks {
			qmarkCount = 0
			countTheQMarks = false
		}

		if c == '"' {
			if !countTheQMarks {
				cur := &rows[len(rows)-1]
				if len(cur.bytes) == 0 || last == '\t' {
					qmarkCount++
					countTheQMarks = true
				}
			} else {
				qmarkCount++
			}
		}

		if c == '\n' {
			lineNumber++

			if last == '\n' && qmarkCount%2 == 0 {
				continue
			}

			cur := &rows[len(rows)-1]
			if (last != '\n' && qmarkCount%2 == 0) || (len(cur.bytes) > 0 && cur.bytes[0] == '#') {
				rows = append(rows, buf{line: lineNumber})
				qmarkCount = 0
				last = c

				continue
			}
		}

		cur := &rows[len(rows)-1]
		if len(cur.bytes) == 0 {
			cur.line = lineNumber
		}

		cur.bytes = append(cur.bytes, c)
		last = c
	}

	if len(rows[len(rows)-1].bytes) == 0 {
		rows = rows[:len(rows)-1]
	}

	out := make([]rawRow, 0, len(rows))

	for _, r := range rows {
		if len(r.bytes) > 0 && r.bytes[0] == '#' {
			continue
		}

		out = append(out, rawRow{text: string(r.bytes), line: r.line})
	}

	if len(out) == 0 {
		return nil, mutagenerr.New(mutagenerr.SpecParse, "No mutations found in TSV file.")
	}

	return out, nil
}
