package replacer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments_RemovesSameLineBlockComment(t *testing.T) {
	out := StripComments("x = 1; /* note */\ny = 2;\n")

	assert.Equal(t, "x = 1; \ny = 2;\n", out)
}

func TestStripComments_LeavesMultiLineBlockCommentAlone(t *testing.T) {
	src := "x = 1; /* note\nstill going */\ny = 2;\n"

	assert.Equal(t, src, StripComments(src))
}

func TestStripComments_CollapsesTrailingLineCommentAfterSemicolon(t *testing.T) {
	out := StripComments("x = 1; // note\n")

	assert.Equal(t, "x = 1;\n", out)
}

func TestStripComments_CollapsesWholeLineComment(t *testing.T) {
	out := StripComments("x = 1;\n// a whole line note\ny = 2;\n")

	assert.Equal(t, "x = 1;\ny = 2;\n", out)
}
