package replacer

import "regexp"

var (
	blockCommentPattern             = regexp.MustCompile(`/\*.*\*/`)
	trailingSemicolonCommentPattern = regexp.MustCompile(`;.*?//[^"\n]*\n`)
	openBraceCommentPattern         = regexp.MustCompile(`\{\s*?//[^"\n]*\n`)
	closeParenCommentPattern        = regexp.MustCompile(`\)\s*?//[^"\n]*\n`)
	wholeLineCommentPattern         = regexp.MustCompile(`\n\s*?//.*\n`)
)

// StripComments is a loose heuristic comment scrubber: it drops same-line
// block comments and a handful of trailing "// ..." line-comment shapes
// that follow a ';', '{', or ')'. It mishandles strings that contain "//"
// and block comments spanning multiple lines, so engine only runs it when
// --strip-comments is explicitly requested; the default is to treat the
// source as opaque.
func StripComments(source string) string {
	s := blockCommentPattern.ReplaceAllString(source, "")
	s = trailingSemicolonCommentPattern.ReplaceAllString(s, ";\n")
	s = openBraceCommentPattern.ReplaceAllString(s, "{\n")
	s = closeParenCommentPattern.ReplaceAllString(s, ")\n")
	s = wholeLineCommentPattern.ReplaceAllString(s, "\n")

	return s
}
