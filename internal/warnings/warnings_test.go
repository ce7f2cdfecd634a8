package warnings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregator_EmptyByDefault(t *testing.T) {
	a := New()

	assert.True(t, a.Empty())
	assert.Equal(t, "", a.Format())
}

func TestAggregator_NoMatchLinesAreSortedAscending(t *testing.T) {
	a := New()
	a.NoMatch(9)
	a.NoMatch(2)
	a.NoMatch(5)

	assert.Equal(t, []int{2, 5, 9}, a.NoMatchLines())
}

func TestAggregator_MultipleMatchLinesAreSortedAscending(t *testing.T) {
	a := New()
	a.MultiMatch(3)
	a.MultiMatch(1)

	assert.Equal(t, []int{1, 3}, a.MultipleMatchLines())
}

func TestAggregator_FreeTextPreservesOrder(t *testing.T) {
	a := New()
	a.FreeText("count 50 clamped to 10")
	a.FreeText("generated seed ABCD")

	assert.Equal(t, []string{"count 50 clamped to 10", "generated seed ABCD"}, a.FreeTextNotices())
}

func TestAggregator_FormatIsANSIWrappedAndNotEmpty(t *testing.T) {
	a := New()
	a.NoMatch(4)

	out := a.Format()

	assert.True(t, strings.HasPrefix(out, "\x1b[33m"))
	assert.True(t, strings.HasSuffix(out, "\x1b[0m"))
	assert.Contains(t, out, "1 mutation")
	assert.Contains(t, out, "1 spec line")
	assert.Contains(t, out, "4")
}

func TestAggregator_FormatPluralizesMultipleLines(t *testing.T) {
	a := New()
	a.NoMatch(1)
	a.NoMatch(2)

	out := a.Format()

	assert.Contains(t, out, "2 mutations")
	assert.Contains(t, out, "2 spec lines")
	assert.Contains(t, out, "1, 2")
}

func TestAggregator_FormatIncludesBothBagsAndFreeText(t *testing.T) {
	a := New()
	a.NoMatch(1)
	a.MultiMatch(2)
	a.FreeText("note")

	out := a.Format()

	assert.Contains(t, out, "did not match")
	assert.Contains(t, out, "matched more than once")
	assert.Contains(t, out, "note")
}
