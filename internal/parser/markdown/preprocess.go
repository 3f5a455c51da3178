package markdown

import (
	"regexp"
	"strings"
)

var (
	blankRunPattern      = regexp.MustCompile(`\n{3,}`)
	trailingSpacePattern = regexp.MustCompile(`(?m)[\t\f\v \x{00A0}]+$`)
	dashBulletPattern    = regexp.MustCompile(`(?m)^- `)
)

// Preprocess normalizes raw message text before line classification.
// Line endings are folded to LF, then blank-line runs are capped,
// trailing whitespace is stripped and dash bullets become "• ".
func Preprocess(source string) string {
	s := NormalizeLineEndings(source)
	s = CollapseBlankLines(s)
	s = StripTrailingSpace(s)
	return NormalizeBullets(s)
}

// NormalizeLineEndings converts CRLF and lone CR to LF.
func NormalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// CollapseBlankLines replaces every run of three or more newlines with
// exactly two.
func CollapseBlankLines(s string) string {
	return blankRunPattern.ReplaceAllString(s, "\n\n")
}

// StripTrailingSpace removes horizontal whitespace at the end of every line.
func StripTrailingSpace(s string) string {
	return trailingSpacePattern.ReplaceAllString(s, "")
}

// NormalizeBullets rewrites "- " at the start of a line to "• ".
func NormalizeBullets(s string) string {
	return dashBulletPattern.ReplaceAllString(s, bullet)
}
