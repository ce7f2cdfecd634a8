package replacer

import (
	"testing"

	"github.com/rowmut/rowmut/internal/model"
	"github.com/rowmut/rowmut/internal/warnings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sm(pattern, replacement string, flags model.Flags) model.SelectedMutation {
	return model.SelectedMutation{Pattern: pattern, Replacement: replacement, Flags: flags}
}

func TestIsMultilineString(t *testing.T) {
	assert.False(t, isMultilineString("single line"))
	assert.False(t, isMultilineString("a\n"))
	assert.False(t, isMultilineString("\na"))
	assert.True(t, isMultilineString("a\nb\nc"))
	assert.False(t, isMultilineString("a\n\nb"))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a\n", "b\n", "c"}, splitLines("a\nb\nc"))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"solo"}, splitLines("solo"))
}

func TestPropagateIndent(t *testing.T) {
	assert.Equal(t, "x = 1;\n    x = 2;\n    x = 3;", propagateIndent("x = 1;\nx = 2;\nx = 3;", "    "))
	assert.Equal(t, "single", propagateIndent("single", "    "))
}

func TestSingleLineReplace_BasicSplice(t *testing.T) {
	warn := warnings.New()
	out := singleLineReplace("    x = 1;\n", sm("x = 1;", "x = 2;", model.Flags{LineNumber: 4}), warn)

	assert.Equal(t, "    x = 2;\n", out)
	assert.True(t, warn.Empty())
}

func TestSingleLineReplace_NoMatchRecordsWarning(t *testing.T) {
	warn := warnings.New()
	out := singleLineReplace("nothing here", sm("x = 1;", "x = 2;", model.Flags{LineNumber: 9}), warn)

	assert.Equal(t, "nothing here", out)
	assert.Equal(t, []int{9}, warn.NoMatchLines())
}

func TestSingleLineReplace_SkipsOccurrenceWithNonWhitespaceEdges(t *testing.T) {
	warn := warnings.New()
	out := singleLineReplace("    yx = 1;\n", sm("x = 1;", "x = 2;", model.Flags{LineNumber: 1}), warn)

	assert.Equal(t, "    yx = 1;\n", out)
	assert.Equal(t, []int{1}, warn.NoMatchLines())
}

func TestSingleLineReplace_MultipleOccurrencesRecordsMultiMatch(t *testing.T) {
	warn := warnings.New()
	src := "x = 1;\nx = 1;\n"
	out := singleLineReplace(src, sm("x = 1;", "x = 2;", model.Flags{LineNumber: 2}), warn)

	assert.Equal(t, "x = 2;\nx = 2;\n", out)
	assert.Equal(t, []int{2}, warn.MultipleMatchLines())
}

func TestSingleLineReplace_IsNewLinedInsertsAfterLine(t *testing.T) {
	warn := warnings.New()
	out := singleLineReplace("    x = 1;\n", sm("x = 1;", "y = 2;", model.Flags{IsNewLined: true, LineNumber: 1}), warn)

	assert.Equal(t, "    x = 1;\n    y = 2;\n", out)
}

func TestSingleLineReplace_IsNewLinedAtEOFWithNoTrailingNewline(t *testing.T) {
	warn := warnings.New()
	out := singleLineReplace("    x = 1;", sm("x = 1;", "y = 2;", model.Flags{IsNewLined: true, LineNumber: 1}), warn)

	assert.Equal(t, "    x = 1;\n    y = 2;\n", out)
}

func TestSingleLineReplace_PropagatesIndentToMultilineReplacement(t *testing.T) {
	warn := warnings.New()
	out := singleLineReplace("    x = 1;\n", sm("x = 1;", "a;\nb;", model.Flags{LineNumber: 1}), warn)

	assert.Equal(t, "    a;\n    b;\n", out)
}

func TestMultilineReplace_LiteralFullMatch(t *testing.T) {
	warn := warnings.New()
	src := "    if (a) {\n        b();\n    }\n"
	pattern := "if (a) {\n        b();\n    }"
	out := multilineReplace(src, sm(pattern, "if (a) {\n        c();\n    }", model.Flags{LineNumber: 1}), warn)

	require.True(t, warn.Empty())
	assert.Equal(t, "    if (a) {\n        c();\n    }\n", out)
}

func TestMultilineReplace_FlushLeftContinuationLinesRetryWithIndentation(t *testing.T) {
	warn := warnings.New()
	src := "    x();\n    y();\n"
	// continuation line authored without the source's leading whitespace
	pattern := "x();\ny();"
	out := multilineReplace(src, sm(pattern, "changed();", model.Flags{LineNumber: 1}), warn)

	assert.Equal(t, "    changed();\n", out)
	assert.True(t, warn.Empty())
}

func TestMultilineReplace_NoMatchRecordsWarning(t *testing.T) {
	warn := warnings.New()
	out := multilineReplace("unrelated text\n", sm("if (a) {\nb();\n}", "x", model.Flags{LineNumber: 3}), warn)

	assert.Equal(t, "unrelated text\n", out)
	assert.Equal(t, []int{3}, warn.NoMatchLines())
}

func TestMultilineReplace_IsNewLinedInsertsAfterBlock(t *testing.T) {
	warn := warnings.New()
	src := "    if (a) {\n        b();\n    }\n"
	pattern := "if (a) {\n        b();\n    }"
	out := multilineReplace(src, sm(pattern, "// note", model.Flags{IsNewLined: true, LineNumber: 1}), warn)

	assert.Equal(t, "    if (a) {\n        b();\n    }\n    // note\n", out)
}

func TestApply_DispatchesRegexMode(t *testing.T) {
	warn := warnings.New()
	out, err := Apply("foo123\nbar456\n", []model.SelectedMutation{
		sm("[a-z]+[0-9]+/", "X", model.Flags{IsRegex: true, LineNumber: 1}),
	}, warn)

	require.NoError(t, err)
	assert.Equal(t, "X\nX\n", out)
}

func TestApply_RegexMissingFinalSlashIsFatal(t *testing.T) {
	warn := warnings.New()
	_, err := Apply("foo", []model.SelectedMutation{
		sm("foo", "bar", model.Flags{IsRegex: true, LineNumber: 1}),
	}, warn)

	require.Error(t, err)
}

func TestApply_AppliesMultipleMutationsInOrder(t *testing.T) {
	warn := warnings.New()
	out, err := Apply("a = 1;\nb = 2;\n", []model.SelectedMutation{
		sm("a = 1;", "a = 9;", model.Flags{LineNumber: 2}),
		sm("b = 2;", "b = 8;", model.Flags{LineNumber: 1}),
	}, warn)

	require.NoError(t, err)
	assert.Equal(t, "a = 9;\nb = 8;\n", out)
}

func TestMergeRegexModifiers_AppendsWithoutDash(t *testing.T) {
	assert.Equal(t, "iAFgnm", mergeRegexModifiers("i"))
}

func TestMergeRegexModifiers_DashSplitsAdditionsAndRemovals(t *testing.T) {
	got := mergeRegexModifiers("i-g")

	assert.Contains(t, got, "i")
	assert.NotContains(t, got, "g")
	assert.Contains(t, got, "A")
}
